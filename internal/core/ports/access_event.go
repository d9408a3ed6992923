package ports

import (
	"context"
	"time"

	"github.com/schoolhub/portal-api/internal/core/domain"
)

// AccessEvent records one successful signed-URL resolution for the audit
// trail.
type AccessEvent struct {
	UserID       string
	Role         domain.Role
	AttachmentID string
	MimeCategory domain.MimeCategory
	OccurredAt   time.Time
}

// AccessEventRepository persists audit events.
type AccessEventRepository interface {
	Insert(ctx context.Context, event *AccessEvent) error
}

// AccessEventService processes queued audit events.
type AccessEventService interface {
	Process(ctx context.Context, event AccessEvent) error
}
