package auth

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interview-service/internal/domain"
	apperrors "github.com/spec-kit/interview-service/pkg/util/errorutil"
)

// RequireRole lets the request through only when the principal holds one of allowed.
// With no roles any authenticated principal passes.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	names := make([]string, 0, len(allowed))
	for _, role := range allowed {
		names = append(names, string(role))
	}
	denied := "requires role " + strings.Join(names, " or ")

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowed) > 0 && !slices.Contains(allowed, principal.User.Role) {
			return apperrors.NewForbidden(denied)
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal was loaded.
func RequireAuthenticated() fiber.Handler {
	return RequireRole()
}
