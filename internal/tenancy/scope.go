// Package tenancy defines the tenant scoping policy: every data access
// performed on behalf of an authenticated user carries a Scope, and
// repositories accept it as a required argument so no unscoped query path
// exists for tenant-facing operations.
package tenancy

import "github.com/flowbit/helpdesk/internal/domain"

// Scope is the set of tenant identifiers a caller may touch. In the current
// model that set is always exactly one tenant, so Scope carries a single
// value; keeping it a distinct type (rather than a bare string) forces call
// sites to derive it from an authenticated identity.
type Scope struct {
	tenantID string
}

// ScopeFor derives the scope from an authenticated identity. There are no
// cross-tenant roles: admins are admins within their own tenant only.
func ScopeFor(user *domain.User) Scope {
	return Scope{tenantID: user.TenantID}
}

// ScopeForTenant builds a scope directly from a tenant key. Reserved for
// trusted non-request contexts (seeding, tests); request handlers must go
// through ScopeFor.
func ScopeForTenant(tenantID string) Scope {
	return Scope{tenantID: tenantID}
}

// TenantID returns the single tenant this scope grants access to.
func (s Scope) TenantID() string {
	return s.tenantID
}

// Allows reports whether a record with the given tenant id is visible under
// this scope. Callers translating a miss must report NotFound, never
// Forbidden, so existence is not confirmed across tenant boundaries.
func (s Scope) Allows(tenantID string) bool {
	return s.tenantID != "" && s.tenantID == tenantID
}
