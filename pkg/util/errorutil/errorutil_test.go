package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	type testcase struct {
		name string
		err  error

		wantCode   string
		wantStatus int
	}

	tests := [...]testcase{
		{
			name:       "domain error passes through",
			err:        NewInvalidRange("month must be between 1 and 12", nil),
			wantCode:   CodeInvalidRange,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrapped domain error",
			err:        fmt.Errorf("resolve: %w", NewInvalidFormat("bad date", nil)),
			wantCode:   CodeInvalidFormat,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "pgx no rows",
			err:        fmt.Errorf("get interview: %w", pgx.ErrNoRows),
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "fiber not found",
			err:        fiber.ErrNotFound,
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "fiber bad request",
			err:        fiber.NewError(http.StatusBadRequest, "invalid payload"),
			wantCode:   CodeValidationFailed,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantCode:   CodeInternal,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			require.Equal(t, tt.wantCode, got.Code)
			require.Equal(t, tt.wantStatus, got.HTTPStatus)
		})
	}
}

func TestToDomainError_Nil(t *testing.T) {
	require.Nil(t, ToDomainError(nil))
	require.NoError(t, MapError(nil))
}

func TestInternalErrorHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	got := ToDomainError(cause)

	require.Equal(t, "internal server error", got.Message)
	require.ErrorIs(t, got, cause)
}
