package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/flowbit/helpdesk/internal/api/dto"
	"github.com/flowbit/helpdesk/internal/service"
	apperrors "github.com/flowbit/helpdesk/pkg/util"
)

// WebhookHandler receives workflow engine callbacks. These requests carry no
// user identity; they authenticate with a shared secret header instead.
type WebhookHandler struct {
	service *service.TicketService
	secret  string
}

// NewWebhookHandler constructs the handler.
func NewWebhookHandler(ticketService *service.TicketService, secret string) *WebhookHandler {
	return &WebhookHandler{service: ticketService, secret: secret}
}

// TicketDone handles POST /webhook/ticket-done. An unset secret disables the
// endpoint entirely.
func (h *WebhookHandler) TicketDone(c *fiber.Ctx) error {
	if h.secret == "" {
		return apperrors.NewUnauthorized("webhook disabled")
	}
	provided := c.Get("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
		return apperrors.NewUnauthorized("invalid webhook secret")
	}

	var req dto.WebhookTicketDoneRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketID == "" {
		return apperrors.NewValidationError("ticketId required", nil)
	}

	ticket, err := h.service.CompleteFromWorkflow(c.Context(), req.TicketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}
