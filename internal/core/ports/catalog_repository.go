package ports

import (
	"context"

	"github.com/schoolhub/portal-api/internal/core/domain"
)

// CatalogRepository is the read-side view of the external CRUD backend's
// catalog: flat lesson↔attachment associations scoped to a class+subject
// pair, and the lesson-id → display-name index.
type CatalogRepository interface {
	ListLessonAttachments(ctx context.Context, classID, subjectID string) ([]domain.LessonAttachmentRecord, error)
	LessonIndex(ctx context.Context, subjectID string) (map[string]string, error)
}
