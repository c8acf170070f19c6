package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/flowbit/helpdesk/internal/domain"
	"github.com/flowbit/helpdesk/internal/repository"
	"github.com/flowbit/helpdesk/internal/tenancy"
	apperrors "github.com/flowbit/helpdesk/pkg/util"
)

const identityKey = "auth_identity"

// Identity is the authenticated caller attached to the request scope. It is
// the single source of truth for tenant and role checks downstream; handlers
// never re-derive identity from raw request data.
type Identity struct {
	User *domain.User
}

// Scope returns the tenant scope derived from this identity.
func (id *Identity) Scope() tenancy.Scope {
	return tenancy.ScopeFor(id.User)
}

// Middleware validates bearer tokens and loads the caller's user record.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs the authentication gate.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	userID, err := m.tokens.Parse(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	// A token referencing a deleted user must not authenticate.
	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid token")
		}
		return apperrors.MapError(err)
	}

	c.Locals(identityKey, &Identity{User: user})
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
