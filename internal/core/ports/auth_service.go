package ports

import (
	"context"
	"time"

	"github.com/schoolhub/portal-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create a portal account.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	// RawRoles is the role value as supplied by the caller; it is resolved
	// into a canonical role before the account is written.
	RawRoles  []string
	TenantID  string
	SchoolID  string
	ClassID   string
	SectionID string
	Gender    string
}

// Session is the result of a successful login: the signed access token plus
// the authenticated user. Expiry mirrors the token's exp claim so the
// transport layer can set cookie lifetimes without re-parsing the JWT.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Logout revokes the token identified by its jti claim for the remainder
	// of its lifetime.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	// CurrentUser resolves the subject of a validated token back to its user
	// record, failing when the session has been revoked.
	CurrentUser(ctx context.Context, userID, tokenID string) (*domain.User, error)
}
