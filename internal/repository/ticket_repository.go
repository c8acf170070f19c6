package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowbit/helpdesk/internal/domain"
	"github.com/flowbit/helpdesk/internal/tenancy"
)

// TicketListFilter captures optional narrowing for list queries. The tenant
// filter is never part of this struct; it travels as a separate mandatory
// Scope argument.
type TicketListFilter struct {
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	Limit      int
	Offset     int
}

// TicketRepository encapsulates ticket persistence. Every tenant-facing
// method takes a tenancy.Scope and applies it inside the SQL itself, so a
// cross-tenant id behaves exactly like a nonexistent one (pgx.ErrNoRows).
// CompleteByID is the single unscoped operation, reserved for the
// secret-authenticated workflow callback.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	List(ctx context.Context, scope tenancy.Scope, filter TicketListFilter) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id string, scope tenancy.Scope) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, scope tenancy.Scope) (*domain.Ticket, error)
	Assign(ctx context.Context, id, assigneeID string, scope tenancy.Scope) (*domain.Ticket, error)
	Delete(ctx context.Context, id string, scope tenancy.Scope) error
	CompleteByID(ctx context.Context, id string) (*domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, tenant_id, title, description, status, priority, created_by, assigned_to, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (tenant_id, title, description, status, priority, created_by, assigned_to)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TenantID,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.CreatedBy,
		ticket.AssignedTo,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) List(ctx context.Context, scope tenancy.Scope, filter TicketListFilter) ([]domain.Ticket, error) {
	args := []any{scope.TenantID()}
	clauses := []string{"tenant_id=$1"}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string, scope tenancy.Scope) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1 AND tenant_id=$2`, ticketColumns)
	return r.fetchSingle(ctx, query, id, scope.TenantID())
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, scope tenancy.Scope) (*domain.Ticket, error) {
	query := fmt.Sprintf(`
        UPDATE tickets SET status=$1, updated_at=NOW()
        WHERE id=$2 AND tenant_id=$3
        RETURNING %s`, ticketColumns)
	return r.fetchSingle(ctx, query, status, id, scope.TenantID())
}

func (r *ticketRepository) Assign(ctx context.Context, id, assigneeID string, scope tenancy.Scope) (*domain.Ticket, error) {
	query := fmt.Sprintf(`
        UPDATE tickets SET assigned_to=$1, updated_at=NOW()
        WHERE id=$2 AND tenant_id=$3
        RETURNING %s`, ticketColumns)
	return r.fetchSingle(ctx, query, assigneeID, id, scope.TenantID())
}

func (r *ticketRepository) Delete(ctx context.Context, id string, scope tenancy.Scope) error {
	const query = `DELETE FROM tickets WHERE id=$1 AND tenant_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, scope.TenantID())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) CompleteByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`
        UPDATE tickets SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING %s`, ticketColumns)
	return r.fetchSingle(ctx, query, domain.TicketStatusCompleted, id)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&ticket.ID,
		&ticket.TenantID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CreatedBy,
		&ticket.AssignedTo,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TenantID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Status,
			&ticket.Priority,
			&ticket.CreatedBy,
			&ticket.AssignedTo,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
