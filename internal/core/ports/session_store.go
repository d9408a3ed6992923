package ports

import (
	"context"
	"time"
)

// SessionStore tracks revoked access tokens. Backed by Redis: revocation
// entries carry a TTL equal to the remaining token lifetime, so the store
// cleans itself up.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
