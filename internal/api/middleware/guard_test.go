package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runGuard(t *testing.T, path, token string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	mw := RouteGuard("secret")
	handler := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	return rec, reached
}

func TestRouteGuard_RedirectsUnauthenticatedProtectedPath(t *testing.T) {
	rec, reached := runGuard(t, "/homepage/learning", "")
	if reached {
		t.Fatalf("handler must not run for unauthenticated protected path")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Fatalf("expected redirect to %s, got %s", LoginPath, loc)
	}
}

func TestRouteGuard_AllowsUnprotectedPathWithoutToken(t *testing.T) {
	rec, reached := runGuard(t, "/about", "")
	if !reached {
		t.Fatalf("unprotected path must pass through")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouteGuard_AllowsAuthenticatedProtectedPath(t *testing.T) {
	token := signTestToken(t, "secret", portalClaims())
	_, reached := runGuard(t, "/homepage/dashboard", token)
	if !reached {
		t.Fatalf("valid token must pass the guard")
	}
}

func TestRouteGuard_RejectsGarbageToken(t *testing.T) {
	rec, reached := runGuard(t, "/dashboard", "garbage")
	if reached {
		t.Fatalf("invalid token must not pass the guard")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}

// The guard distinguishes authenticated from anonymous only. An
// authenticated teacher requesting a super-admin page path is let through;
// the page is hidden from teachers solely by menu omission. Captured here
// as the documented access model.
func TestRouteGuard_IsRoleBlind(t *testing.T) {
	token := signTestToken(t, "secret", portalClaims()) // teacher role
	rec, reached := runGuard(t, "/homepage/schools", token)
	if !reached {
		t.Fatalf("authenticated request must not be blocked by role at the guard")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIsProtectedPath_SegmentBoundaries(t *testing.T) {
	if isProtectedPath("/homepage-news") {
		t.Fatalf("prefix match must respect path segment boundaries")
	}
	if !isProtectedPath("/homepage") {
		t.Fatalf("exact prefix must be protected")
	}
	if !isProtectedPath("/profile/settings") {
		t.Fatalf("nested path under protected prefix must be protected")
	}
}
