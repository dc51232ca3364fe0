package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/interview-service/internal/auth"
	"github.com/spec-kit/interview-service/internal/config"
	"github.com/spec-kit/interview-service/internal/domain"
	apperrors "github.com/spec-kit/interview-service/pkg/util/errorutil"
)

func newAuthServiceForTest(users *fakeUsers, sessions *fakeSessions) *AuthService {
	cfg := config.Defaults()
	cfg.Auth.BcryptCost = 4
	return NewAuthService(cfg, AuthDependencies{
		UserRepo:     users,
		SessionStore: sessions,
		TokenManager: auth.NewTokenManager("test-secret", 15, 24),
	})
}

func registration() RegisterInput {
	return RegisterInput{
		FirstName:  "Grace",
		LastName:   "Hopper",
		Email:      "Grace@Example.COM",
		Password:   "cobol-1959",
		Password2:  "cobol-1959",
		Department: "software",
		Role:       "team lead",
	}
}

func TestAuthService_Register(t *testing.T) {
	users := newFakeUsers()
	svc := newAuthServiceForTest(users, newFakeSessions())
	ctx := context.Background()

	user, err := svc.Register(ctx, registration())
	require.NoError(t, err)
	require.Equal(t, "Grace@example.com", user.Email)
	require.Equal(t, domain.DepartmentSoftware, user.Department)
	require.Equal(t, domain.UserRoleTeamLead, user.Role)
	require.NotEqual(t, "cobol-1959", user.PasswordHash)

	_, err = svc.Register(ctx, registration())
	requireCode(t, err, apperrors.CodeConflict)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUsers(), newFakeSessions())

	cases := []struct {
		name  string
		edit  func(*RegisterInput)
		field string
	}{
		{"mismatched passwords", func(in *RegisterInput) { in.Password2 = "other-pass" }, "password2"},
		{"short password", func(in *RegisterInput) { in.Password, in.Password2 = "abc", "abc" }, "password"},
		{"numeric password", func(in *RegisterInput) { in.Password, in.Password2 = "12345678", "12345678" }, "password"},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"bad department", func(in *RegisterInput) { in.Department = "Sales" }, "department"},
		{"bad role", func(in *RegisterInput) { in.Role = "CEO" }, "role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := registration()
			tc.edit(&in)
			_, err := svc.Register(context.Background(), in)
			requireCode(t, err, apperrors.CodeValidationFailed)
			require.Contains(t, apperrors.ToDomainError(err).Details, tc.field)
		})
	}
}

func TestAuthService_LoginRefreshLogout(t *testing.T) {
	users := newFakeUsers()
	sessions := newFakeSessions()
	svc := newAuthServiceForTest(users, sessions)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "grace@example.com", "wrong-password")
	requireCode(t, err, apperrors.CodeUnauthorized)
	require.Equal(t, invalidCredentialsMessage, apperrors.ToDomainError(err).Message)

	_, _, err = svc.Login(ctx, "nobody@example.com", "cobol-1959")
	require.Equal(t, invalidCredentialsMessage, apperrors.ToDomainError(err).Message)

	user, pair, err := svc.Login(ctx, "Grace@EXAMPLE.com", "cobol-1959")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.Contains(t, sessions.sessions, pair.Refresh.ID)

	claims, err := svc.TokenManager().ParseToken(pair.Access.Token, auth.TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)

	_, err = svc.Refresh(ctx, pair.Access.Token)
	requireCode(t, err, apperrors.CodeUnauthorized)

	rotated, err := svc.Refresh(ctx, pair.Refresh.Token)
	require.NoError(t, err)
	require.NotEqual(t, pair.Refresh.ID, rotated.Refresh.ID)
	require.NotContains(t, sessions.sessions, pair.Refresh.ID)

	_, err = svc.Refresh(ctx, pair.Refresh.Token)
	requireCode(t, err, apperrors.CodeUnauthorized)

	require.NoError(t, svc.Logout(ctx, rotated.Refresh.Token))
	require.Empty(t, sessions.sessions)
	_, err = svc.Refresh(ctx, rotated.Refresh.Token)
	requireCode(t, err, apperrors.CodeUnauthorized)
}

func TestAuthService_ListUsersClampsPaging(t *testing.T) {
	users := newFakeUsers()
	svc := newAuthServiceForTest(users, newFakeSessions())
	for i := 0; i < 3; i++ {
		require.NoError(t, users.Create(context.Background(), &domain.User{Email: fmt.Sprintf("user%d@example.com", i)}))
	}

	list, err := svc.ListUsers(context.Background(), 0, -5)
	require.NoError(t, err)
	require.Len(t, list, 3)

	list, err = svc.ListUsers(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  John.Doe@Mail.EXAMPLE.org ")
	require.NoError(t, err)
	require.Equal(t, "John.Doe@mail.example.org", got)

	_, err = NormalizeEmail("john")
	require.Error(t, err)
}

func TestJobTitleService(t *testing.T) {
	svc := NewJobTitleService(&fakeJobTitles{})
	ctx := context.Background()

	created, err := svc.Create(ctx, " Engineer ")
	require.NoError(t, err)
	require.Equal(t, "Engineer", created.Title)

	_, err = svc.Create(ctx, "Engineer")
	requireCode(t, err, apperrors.CodeConflict)

	_, err = svc.Create(ctx, "")
	requireCode(t, err, apperrors.CodeValidationFailed)

	titles, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, titles, 1)
}

func TestAuthService_ChangePassword(t *testing.T) {
	users := newFakeUsers()
	svc := newAuthServiceForTest(users, newFakeSessions())
	ctx := context.Background()

	user, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	requireCode(t, svc.ChangePassword(ctx, user.ID, "wrong", "new-password-1"), apperrors.CodeUnauthorized)
	requireCode(t, svc.ChangePassword(ctx, user.ID, "cobol-1959", "123"), apperrors.CodeValidationFailed)
	requireCode(t, svc.ChangePassword(ctx, "missing", "cobol-1959", "new-password-1"), apperrors.CodeNotFound)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "cobol-1959", "new-password-1"))
	_, _, err = svc.Login(ctx, user.Email, "new-password-1")
	require.NoError(t, err)
}
