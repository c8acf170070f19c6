package service

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/flowbit/helpdesk/internal/domain"
	"github.com/flowbit/helpdesk/internal/tenancy"
)

// ScreenService serves the per-tenant micro-frontend registry. The registry
// is a JSON file keyed by tenant customer id, loaded once at startup;
// unknown tenants simply have no screens.
type ScreenService struct {
	registry map[string][]domain.Screen
}

// NewScreenService loads the registry file. A missing file is tolerated with
// a warning so the API can run without any micro-frontends configured.
func NewScreenService(path string, logger *zap.Logger) (*ScreenService, error) {
	svc := &ScreenService{registry: map[string][]domain.Screen{}}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("screen registry not found; serving empty registry", zap.String("path", path))
			return svc, nil
		}
		return nil, fmt.Errorf("read screen registry: %w", err)
	}

	if err := json.Unmarshal(content, &svc.registry); err != nil {
		return nil, fmt.Errorf("parse screen registry %s: %w", path, err)
	}
	logger.Info("screen registry loaded", zap.String("path", path), zap.Int("tenants", len(svc.registry)))
	return svc, nil
}

// ScreensFor returns the screens registered for the caller's tenant, never
// another tenant's entries.
func (s *ScreenService) ScreensFor(scope tenancy.Scope) []domain.Screen {
	screens := s.registry[scope.TenantID()]
	out := make([]domain.Screen, len(screens))
	copy(out, screens)
	return out
}
