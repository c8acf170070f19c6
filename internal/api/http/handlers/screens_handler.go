package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flowbit/helpdesk/internal/auth"
	"github.com/flowbit/helpdesk/internal/service"
	apperrors "github.com/flowbit/helpdesk/pkg/util"
)

// ScreensHandler serves the caller's micro-frontend registry.
type ScreensHandler struct {
	service *service.ScreenService
}

// NewScreensHandler constructs the handler.
func NewScreensHandler(screenService *service.ScreenService) *ScreensHandler {
	return &ScreensHandler{service: screenService}
}

// List handles GET /api/screens.
func (h *ScreensHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": h.service.ScreensFor(identity.Scope())})
}
