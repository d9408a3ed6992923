package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// authContext is the claim set the Auth middleware injects. Extracting it
// here gives handlers a single fast-fail check before any service call.
type authContext struct {
	UserID    string
	Role      string
	TenantID  string
	SchoolID  string
	TokenID   string
	ExpiresAt time.Time
}

// ctxClaims extracts the auth claims injected by the Auth middleware. A
// missing user id means the middleware never ran or the token carried no
// subject; either way the request is unusable and is rejected with 401.
func ctxClaims(c echo.Context) (authContext, error) {
	ac := authContext{}
	ac.UserID, _ = c.Get("user_id").(string)
	if ac.UserID == "" {
		return authContext{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	ac.Role, _ = c.Get("role").(string)
	ac.TenantID, _ = c.Get("tenant_id").(string)
	ac.SchoolID, _ = c.Get("school_id").(string)
	ac.TokenID, _ = c.Get("token_id").(string)
	ac.ExpiresAt, _ = c.Get("token_expires_at").(time.Time)
	return ac, nil
}
