package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/portal-api/internal/api/metrics"
)

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/login"

// ProtectedPrefixes lists the page path prefixes that require an
// authenticated session before render.
var ProtectedPrefixes = []string{"/homepage", "/dashboard", "/profile"}

// RouteGuard redirects unauthenticated requests for protected page prefixes
// to the login page. It runs before any page handler and checks only the
// presence of a structurally valid token — the guard is deliberately
// role-blind; role-level reachability is the navigation menu's concern.
// The redirect is terminal for that navigation attempt.
func RouteGuard(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isProtectedPath(c.Request().URL.Path) {
				return next(c)
			}

			raw := ExtractToken(c)
			if raw != "" {
				if _, err := ParseClaims(raw, jwtSecret); err == nil {
					return next(c)
				}
			}

			metrics.GuardRedirectsTotal.Inc()
			return c.Redirect(http.StatusFound, LoginPath)
		}
	}
}

func isProtectedPath(path string) bool {
	for _, prefix := range ProtectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
