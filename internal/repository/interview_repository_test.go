package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/interview-service/internal/domain"
)

func TestBuildInterviewQuery(t *testing.T) {
	march1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	march31 := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	software := domain.DepartmentSoftware

	type testcase struct {
		name   string
		filter InterviewFilter

		wantClauses []string
		wantAbsent  []string
		wantArgs    []any
	}

	tests := [...]testcase{
		{
			name:       "no filter",
			filter:     InterviewFilter{},
			wantAbsent: []string{"date", "department ="},
			wantArgs:   []any{},
		},
		{
			name:        "single date is an exact match",
			filter:      InterviewFilter{From: &march1, To: &march1},
			wantClauses: []string{"date = $1"},
			wantAbsent:  []string{"date >=", "date <="},
			wantArgs:    []any{march1},
		},
		{
			name:        "range is inclusive on both ends",
			filter:      InterviewFilter{From: &march1, To: &march31},
			wantClauses: []string{"date >= $1", "date <= $2"},
			wantArgs:    []any{march1, march31},
		},
		{
			name:        "range with department",
			filter:      InterviewFilter{From: &march1, To: &march31, Department: &software},
			wantClauses: []string{"date >= $1", "date <= $2", "department = $3"},
			wantArgs:    []any{march1, march31, software},
		},
		{
			name:        "department only",
			filter:      InterviewFilter{Department: &software},
			wantClauses: []string{"department = $1"},
			wantAbsent:  []string{"date >=", "date ="},
			wantArgs:    []any{software},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildInterviewQuery(tt.filter)

			where := query[strings.Index(query, "WHERE"):]
			for _, clause := range tt.wantClauses {
				require.Contains(t, where, clause)
			}
			for _, clause := range tt.wantAbsent {
				require.NotContains(t, where, clause)
			}
			require.Equal(t, tt.wantArgs, args)
			require.True(t, strings.HasSuffix(query, "ORDER BY id"))
		})
	}
}
