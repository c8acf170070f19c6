package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flowbit/helpdesk/internal/domain"
	apperrors "github.com/flowbit/helpdesk/pkg/util"
)

// RequireAdmin rejects non-admin callers. It must be registered after the
// authentication middleware; an unauthenticated request reaching it is a
// wiring bug and fails closed with 401.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if identity.User.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}
