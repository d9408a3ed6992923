package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AccessTokenCookie is the cookie carrying the access token. The route guard
// reads the same cookie, so authentication state is visible before any
// handler runs.
const AccessTokenCookie = "portal_access_token"

// ExtractToken pulls the raw access token from the request: the auth cookie
// first, then a bearer Authorization header. Empty when neither is present.
func ExtractToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// ParseClaims validates a raw token against the secret and returns its
// claims.
func ParseClaims(raw, jwtSecret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Auth validates the access token and injects its claims into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ExtractToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			claims, err := ParseClaims(raw, jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			c.Set("tenant_id", claims["tenant_id"])
			c.Set("school_id", claims["school_id"])
			c.Set("token_id", claims["jti"])
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set("token_expires_at", exp.Time)
			} else {
				c.Set("token_expires_at", time.Time{})
			}

			return next(c)
		}
	}
}
