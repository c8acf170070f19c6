package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowbit/helpdesk/internal/domain"
)

// TenantRepository defines persistence access for tenants. Tenants are an
// open configuration set seeded by migrations, so this interface is
// read-only.
type TenantRepository interface {
	GetByCustomerID(ctx context.Context, customerID string) (*domain.Tenant, error)
	List(ctx context.Context) ([]domain.Tenant, error)
}

type tenantRepository struct {
	pool *pgxpool.Pool
}

// NewTenantRepository returns a Postgres-backed implementation.
func NewTenantRepository(pool *pgxpool.Pool) TenantRepository {
	return &tenantRepository{pool: pool}
}

func (r *tenantRepository) GetByCustomerID(ctx context.Context, customerID string) (*domain.Tenant, error) {
	const query = `
        SELECT id, name, customer_id, email, plan
        FROM tenants WHERE customer_id=$1`

	var tenant domain.Tenant
	if err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.CustomerID,
		&tenant.Email,
		&tenant.Plan,
	); err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepository) List(ctx context.Context) ([]domain.Tenant, error) {
	const query = `
        SELECT id, name, customer_id, email, plan
        FROM tenants ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Tenant
	for rows.Next() {
		var tenant domain.Tenant
		if err := rows.Scan(
			&tenant.ID,
			&tenant.Name,
			&tenant.CustomerID,
			&tenant.Email,
			&tenant.Plan,
		); err != nil {
			return nil, err
		}
		result = append(result, tenant)
	}
	return result, rows.Err()
}
