package domain

import (
	"fmt"
	"time"
)

// Role enumerates the access levels a user can hold within its tenant.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole validates an externally supplied role value.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleUser:
		return Role(raw), nil
	}
	return "", fmt.Errorf("invalid role %q", raw)
}

// User is the domain model for an authenticated account. A user belongs to
// exactly one tenant for its lifetime; PasswordHash is never serialized
// outward.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	TenantID     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
