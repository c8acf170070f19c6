package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/flowbit/helpdesk/internal/domain"
	"github.com/flowbit/helpdesk/internal/events"
	"github.com/flowbit/helpdesk/internal/repository"
	"github.com/flowbit/helpdesk/internal/tenancy"
	apperrors "github.com/flowbit/helpdesk/pkg/util"
)

// TicketService coordinates ticket workflows. Every operation acting on
// behalf of a user receives the caller's tenant scope; the service never
// widens it.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes a ticket creation payload. Tenant and creator
// are intentionally absent: they are always taken from the authenticated
// identity, never from the client.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// TicketListInput describes optional list narrowing.
type TicketListInput struct {
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	Limit      int
	Offset     int
}

// Create creates a ticket owned by the creator's tenant. Client-supplied
// tenant or creator values never reach this point.
func (s *TicketService) Create(ctx context.Context, creator *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if len(title) > domain.MaxTitleLength {
		return nil, apperrors.NewValidationError("title too long", map[string]any{"max_length": domain.MaxTitleLength})
	}
	if description == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if len(description) > domain.MaxDescriptionLength {
		return nil, apperrors.NewValidationError("description too long", map[string]any{"max_length": domain.MaxDescriptionLength})
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	ticket := &domain.Ticket{
		TenantID:    creator.TenantID,
		Title:       title,
		Description: description,
		Status:      domain.TicketStatusPending,
		Priority:    priority,
		CreatedBy:   creator.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		TenantID: ticket.TenantID,
		Actor:    userActor(creator),
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// List returns the scope's tickets, newest first.
func (s *TicketService) List(ctx context.Context, scope tenancy.Scope, input TicketListInput) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, scope, repository.TicketListFilter{
		Statuses:   input.Statuses,
		Priorities: input.Priorities,
		Limit:      input.Limit,
		Offset:     input.Offset,
	})
}

// Get fetches one ticket within the scope. A ticket belonging to another
// tenant is reported as not found, never as forbidden.
func (s *TicketService) Get(ctx context.Context, scope tenancy.Scope, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id, scope)
	if err != nil {
		return nil, mapTicketErr(err)
	}
	return ticket, nil
}

// UpdateStatus transitions a ticket to the given status. All transitions
// between the three enumerated states are allowed, including reopening.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	scope := tenancy.ScopeFor(actor)
	current, err := s.tickets.GetByID(ctx, id, scope)
	if err != nil {
		return nil, mapTicketErr(err)
	}

	ticket, err := s.tickets.UpdateStatus(ctx, id, status, scope)
	if err != nil {
		return nil, mapTicketErr(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		TenantID: ticket.TenantID,
		Actor:    userActor(actor),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: ticket.Status,
		},
	})
	return ticket, nil
}

// Assign sets the ticket's assignee. The assignee must belong to the actor's
// tenant; a user outside it is reported exactly like a nonexistent one.
func (s *TicketService) Assign(ctx context.Context, actor *domain.User, id, assigneeID string) (*domain.Ticket, error) {
	scope := tenancy.ScopeFor(actor)

	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil || !scope.Allows(assignee.TenantID) {
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.NewValidationError("unknown assignee", map[string]any{"assigned_to": assigneeID})
	}

	ticket, err := s.tickets.Assign(ctx, id, assignee.ID, scope)
	if err != nil {
		return nil, mapTicketErr(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		TenantID: ticket.TenantID,
		Actor:    userActor(actor),
		Payload:  events.TicketAssignedPayload{AssigneeID: assignee.ID},
	})
	return ticket, nil
}

// Delete removes a ticket within the actor's scope.
func (s *TicketService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := s.tickets.Delete(ctx, id, tenancy.ScopeFor(actor)); err != nil {
		return mapTicketErr(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
		TenantID: actor.TenantID,
		Actor:    userActor(actor),
	})
	return nil
}

// CompleteFromWorkflow marks a ticket completed on behalf of the workflow
// engine. It is the only tenant-unscoped mutation and is reachable solely
// from the shared-secret webhook.
func (s *TicketService) CompleteFromWorkflow(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.CompleteByID(ctx, id)
	if err != nil {
		return nil, mapTicketErr(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		TenantID: ticket.TenantID,
		Actor:    events.Actor{System: true, TenantID: ticket.TenantID},
		Payload: events.TicketStatusChangedPayload{
			NewStatus: ticket.Status,
		},
	})
	return ticket, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func userActor(user *domain.User) events.Actor {
	id := user.ID
	return events.Actor{UserID: &id, TenantID: user.TenantID}
}

func mapTicketErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("ticket")
	}
	return err
}
