// Package repotest provides in-memory repository implementations used by
// service and transport tests. They mirror the Postgres implementations'
// semantics: scope filters are applied inside the fake itself and a
// cross-tenant id is indistinguishable from a missing one (pgx.ErrNoRows).
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/flowbit/helpdesk/internal/domain"
	"github.com/flowbit/helpdesk/internal/repository"
	"github.com/flowbit/helpdesk/internal/tenancy"
)

// UserRepo is an in-memory repository.UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

// NewUserRepo builds an empty user store.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]domain.User)}
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.Email = strings.ToLower(user.Email)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(email)
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

// Delete removes a user, simulating account deletion for orphaned-token tests.
func (r *UserRepo) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// TenantRepo is an in-memory repository.TenantRepository pre-seeded the same
// way the seed migration seeds Postgres.
type TenantRepo struct {
	mu      sync.Mutex
	tenants []domain.Tenant
}

// NewTenantRepo builds a tenant store seeded with the default tenants.
func NewTenantRepo() *TenantRepo {
	return &TenantRepo{tenants: []domain.Tenant{
		{ID: uuid.NewString(), Name: "TenantA", CustomerID: "LogisticsCo", Email: "admin@logisticsco.com", Plan: domain.TenantPlanStarter},
		{ID: uuid.NewString(), Name: "TenantB", CustomerID: "RetailGmbH", Email: "admin@retailgmbh.com", Plan: domain.TenantPlanStarter},
		{ID: uuid.NewString(), Name: "TestTenant", CustomerID: "test123", Email: "admin@test.com", Plan: domain.TenantPlanStarter},
	}}
}

func (r *TenantRepo) GetByCustomerID(_ context.Context, customerID string) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tenant := range r.tenants {
		if tenant.CustomerID == customerID {
			t := tenant
			return &t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *TenantRepo) List(_ context.Context) ([]domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Tenant, len(r.tenants))
	copy(out, r.tenants)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// TicketRepo is an in-memory repository.TicketRepository.
type TicketRepo struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
	seq     int
}

// NewTicketRepo builds an empty ticket store.
func NewTicketRepo() *TicketRepo {
	return &TicketRepo{tickets: make(map[string]domain.Ticket)}
}

func (r *TicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = uuid.NewString()
	// Monotonic timestamps so created_at DESC ordering is deterministic even
	// when two creates land in the same clock tick.
	r.seq++
	now := time.Now().Add(time.Duration(r.seq) * time.Microsecond)
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *TicketRepo) List(_ context.Context, scope tenancy.Scope, filter repository.TicketListFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if !scope.Allows(ticket.TenantID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, ticket.Status) {
			continue
		}
		if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, ticket.Priority) {
			continue
		}
		result = append(result, ticket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *TicketRepo) GetByID(_ context.Context, id string, scope tenancy.Scope) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok || !scope.Allows(ticket.TenantID) {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (r *TicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus, scope tenancy.Scope) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok || !scope.Allows(ticket.TenantID) {
		return nil, pgx.ErrNoRows
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now().Add(time.Microsecond)
	r.tickets[id] = ticket
	return &ticket, nil
}

func (r *TicketRepo) Assign(_ context.Context, id, assigneeID string, scope tenancy.Scope) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok || !scope.Allows(ticket.TenantID) {
		return nil, pgx.ErrNoRows
	}
	ticket.AssignedTo = &assigneeID
	ticket.UpdatedAt = time.Now().Add(time.Microsecond)
	r.tickets[id] = ticket
	return &ticket, nil
}

func (r *TicketRepo) Delete(_ context.Context, id string, scope tenancy.Scope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok || !scope.Allows(ticket.TenantID) {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *TicketRepo) CompleteByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ticket.Status = domain.TicketStatusCompleted
	ticket.UpdatedAt = time.Now().Add(time.Microsecond)
	r.tickets[id] = ticket
	return &ticket, nil
}

// Stored returns the raw stored record, bypassing scoping, for assertions on
// untouched state.
func (r *TicketRepo) Stored(id string) (domain.Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	return ticket, ok
}

func containsStatus(haystack []domain.TicketStatus, needle domain.TicketStatus) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsPriority(haystack []domain.TicketPriority, needle domain.TicketPriority) bool {
	for _, p := range haystack {
		if p == needle {
			return true
		}
	}
	return false
}
