package ports

import (
	"context"

	"github.com/schoolhub/portal-api/internal/core/domain"
)

// ChapterTreeInput scopes a chapter-tree request to one class+subject pair.
type ChapterTreeInput struct {
	ClassID   string
	SubjectID string
}

// ChapterTreeResult carries the assembled tree. Generation is the fetch
// sequence number that produced the snapshot; a caller observing a smaller
// generation than a previous response is reading a stale snapshot.
type ChapterTreeResult struct {
	Chapters   []domain.Chapter
	Generation uint64
}

// ContentService assembles the chapter→resource tree for a class+subject
// pair. Fetch failures degrade to an empty tree, never an error page.
type ContentService interface {
	ChapterTree(ctx context.Context, input ChapterTreeInput) (*ChapterTreeResult, error)
}
