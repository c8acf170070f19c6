package domain

import "fmt"

// TenantPlan enumerates billing plans.
type TenantPlan string

const (
	TenantPlanStarter    TenantPlan = "starter"
	TenantPlanPro        TenantPlan = "pro"
	TenantPlanEnterprise TenantPlan = "enterprise"
)

// ParseTenantPlan validates an externally supplied plan value.
func ParseTenantPlan(raw string) (TenantPlan, error) {
	switch TenantPlan(raw) {
	case TenantPlanStarter, TenantPlanPro, TenantPlanEnterprise:
		return TenantPlan(raw), nil
	}
	return "", fmt.Errorf("invalid tenant plan %q", raw)
}

// Tenant is a customer organization. CustomerID is the authoritative key used
// for scoping; tenants form an open configuration set seeded into the store,
// not a compile-time enumeration.
type Tenant struct {
	ID         string
	Name       string
	CustomerID string
	Email      string
	Plan       TenantPlan
}
