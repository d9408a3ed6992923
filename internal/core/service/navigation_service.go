package service

import (
	"github.com/rs/zerolog"

	"github.com/schoolhub/portal-api/internal/api/metrics"
	"github.com/schoolhub/portal-api/internal/core/domain"
)

// NavigationService resolves a raw role string into the role's sidebar menu.
type NavigationService struct {
	log zerolog.Logger
}

func NewNavigationService(log zerolog.Logger) *NavigationService {
	return &NavigationService{log: log}
}

// Menu returns the menu for the canonical resolution of rawRole. An
// unrecognised raw role is logged before the student fallback applies, so
// the silent-downgrade path is at least observable in production.
func (s *NavigationService) Menu(rawRole string) []domain.NavigationEntry {
	role := domain.ResolveRole(rawRole)
	if !domain.KnownRole(domain.Role(rawRole)) {
		s.log.Warn().Str("raw_role", rawRole).Msg("unrecognised role, serving student menu")
	}
	metrics.MenuRequestsTotal.WithLabelValues(string(role)).Inc()
	return domain.BuildNavigation(role)
}

// CanAccess reports whether path is discoverable from the resolved role's
// menu. Purely informational for the client router; the server-side route
// guard stays role-blind.
func (s *NavigationService) CanAccess(rawRole, path string) bool {
	return domain.RoleMayAccess(domain.ResolveRole(rawRole), path)
}
