package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTicketStatus(t *testing.T) {
	for _, valid := range []string{"pending", "in-progress", "completed"} {
		status, err := ParseTicketStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, TicketStatus(valid), status)
	}

	for _, invalid := range []string{"", "done", "PENDING", "in_progress", "closed"} {
		_, err := ParseTicketStatus(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestParseTicketPriority(t *testing.T) {
	for _, valid := range []string{"low", "medium", "high"} {
		priority, err := ParseTicketPriority(valid)
		require.NoError(t, err)
		assert.Equal(t, TicketPriority(valid), priority)
	}

	for _, invalid := range []string{"", "urgent", "HIGH"} {
		_, err := ParseTicketPriority(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}
