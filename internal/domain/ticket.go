package domain

import (
	"fmt"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusCompleted  TicketStatus = "completed"
)

// ParseTicketStatus validates an externally supplied status value. Any
// transition between the three states is permitted (reopening a completed
// ticket is a feature), so no ordering is enforced here.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	switch TicketStatus(raw) {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusCompleted:
		return TicketStatus(raw), nil
	}
	return "", fmt.Errorf("invalid ticket status %q", raw)
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// ParseTicketPriority validates an externally supplied priority value.
func ParseTicketPriority(raw string) (TicketPriority, error) {
	switch TicketPriority(raw) {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return TicketPriority(raw), nil
	}
	return "", fmt.Errorf("invalid ticket priority %q", raw)
}

// Title and description bounds enforced at the boundary.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// Ticket is the aggregate for support requests. TenantID is fixed at creation
// and always equals the creator's tenant.
type Ticket struct {
	ID          string
	TenantID    string
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	CreatedBy   string
	AssignedTo  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
