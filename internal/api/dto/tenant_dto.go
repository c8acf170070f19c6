package dto

import "github.com/flowbit/helpdesk/internal/domain"

// TenantResponse is the outward tenant shape.
type TenantResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	CustomerID string            `json:"customerId"`
	Email      string            `json:"email"`
	Plan       domain.TenantPlan `json:"plan"`
}

// NewTenantResponses maps a slice of domain tenants.
func NewTenantResponses(tenants []domain.Tenant) []TenantResponse {
	items := make([]TenantResponse, 0, len(tenants))
	for _, tenant := range tenants {
		items = append(items, TenantResponse{
			ID:         tenant.ID,
			Name:       tenant.Name,
			CustomerID: tenant.CustomerID,
			Email:      tenant.Email,
			Plan:       tenant.Plan,
		})
	}
	return items
}

// WebhookTicketDoneRequest is the workflow engine callback payload.
type WebhookTicketDoneRequest struct {
	TicketID string `json:"ticketId"`
}
