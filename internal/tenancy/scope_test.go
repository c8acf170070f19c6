package tenancy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowbit/helpdesk/internal/domain"
)

func TestScopeFor(t *testing.T) {
	user := &domain.User{ID: "u1", TenantID: "LogisticsCo"}
	scope := ScopeFor(user)

	assert.Equal(t, "LogisticsCo", scope.TenantID())
	assert.True(t, scope.Allows("LogisticsCo"))
	assert.False(t, scope.Allows("RetailGmbH"))
	assert.False(t, scope.Allows(""))
}

func TestZeroScopeAllowsNothing(t *testing.T) {
	var scope Scope
	assert.False(t, scope.Allows(""))
	assert.False(t, scope.Allows("LogisticsCo"))
}
