package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flowbit/helpdesk/internal/api/dto"
	"github.com/flowbit/helpdesk/internal/repository"
)

// TenantsHandler exposes the tenant directory to admins.
type TenantsHandler struct {
	tenants repository.TenantRepository
}

// NewTenantsHandler constructs the handler.
func NewTenantsHandler(tenantRepo repository.TenantRepository) *TenantsHandler {
	return &TenantsHandler{tenants: tenantRepo}
}

// List handles GET /api/tenants. Admin only; the role gate runs in front of
// this handler.
func (h *TenantsHandler) List(c *fiber.Ctx) error {
	tenants, err := h.tenants.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTenantResponses(tenants)})
}
