package ports

import "github.com/schoolhub/portal-api/internal/core/domain"

// NavigationService produces the role-scoped sidebar menu.
type NavigationService interface {
	Menu(rawRole string) []domain.NavigationEntry
	// CanAccess reports whether path falls under the role's menu, so the
	// client router can tell a hidden page from a broken link.
	CanAccess(rawRole, path string) bool
}
