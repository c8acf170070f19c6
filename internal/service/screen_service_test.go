package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/flowbit/helpdesk/internal/service"
	"github.com/flowbit/helpdesk/internal/tenancy"
)

func TestScreenServiceServesOnlyCallersTenant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	registry := `{
		"LogisticsCo": [{"name": "support-tickets", "url": "http://localhost:3002/remoteEntry.js", "scope": "supportTicketsApp", "module": "./App"}],
		"RetailGmbH": [{"name": "support-tickets", "url": "http://localhost:3003/remoteEntry.js", "scope": "supportTicketsApp", "module": "./App"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(registry), 0o600))

	svc, err := service.NewScreenService(path, zap.NewNop())
	require.NoError(t, err)

	screens := svc.ScreensFor(tenancy.ScopeForTenant("LogisticsCo"))
	require.Len(t, screens, 1)
	assert.Equal(t, "http://localhost:3002/remoteEntry.js", screens[0].URL)

	assert.Empty(t, svc.ScreensFor(tenancy.ScopeForTenant("UnknownCo")))
}

func TestScreenServiceToleratesMissingRegistry(t *testing.T) {
	svc, err := service.NewScreenService(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, svc.ScreensFor(tenancy.ScopeForTenant("LogisticsCo")))
}

func TestScreenServiceRejectsMalformedRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := service.NewScreenService(path, zap.NewNop())
	assert.Error(t, err)
}
