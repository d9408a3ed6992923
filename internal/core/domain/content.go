package domain

import (
	"path/filepath"
	"strings"
)

// UnknownLessonTitle is used when a record references a lesson id missing
// from the lesson index.
const UnknownLessonTitle = "Unknown Lesson"

// MimeCategory is the coarse content kind used to pick a viewer. It is
// inferred from the filename suffix, never from a trusted content type; a
// best-effort heuristic, documented as such.
type MimeCategory string

const (
	MimeVideo       MimeCategory = "video"
	MimePDF         MimeCategory = "pdf"
	MimeGenericLink MimeCategory = "generic_link"
)

// ClassifyFilename maps a filename to its MimeCategory by suffix,
// case-insensitively: .mp4 → video, .pdf → pdf, anything else → generic
// link.
func ClassifyFilename(filename string) MimeCategory {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4":
		return MimeVideo
	case ".pdf":
		return MimePDF
	default:
		return MimeGenericLink
	}
}

// LessonAttachmentRecord is one row of the flat lesson ↔ attachment
// association the catalog backend returns for a class+subject pair.
type LessonAttachmentRecord struct {
	LessonID     string `json:"lesson_id" bson:"lesson_id"`
	AttachmentID string `json:"attachment_id" bson:"attachment_id"`
	DisplayName  string `json:"display_name" bson:"display_name"`
	Filename     string `json:"filename" bson:"filename"`
}

// Resource is a single piece of content inside a chapter.
type Resource struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	MimeCategory MimeCategory `json:"mime_category"`
	Filename     string       `json:"filename"`
}

// Chapter groups the resources of one lesson. Chapters are derived values,
// rebuilt from the flat record list on every fetch and never mutated in
// place.
type Chapter struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Resources []Resource `json:"resources"`
}

// BuildChapterTree groups flat records into an ordered chapter list.
//
// Chapter order is the first-seen order of lesson ids in records; within a
// chapter, resources keep the original record order. The function is pure:
// the same input always yields an identical tree. Nil or empty input yields
// an empty (non-nil) slice so callers can render a "no content" state
// without nil checks.
func BuildChapterTree(records []LessonAttachmentRecord, lessonIndex map[string]string) []Chapter {
	chapters := make([]Chapter, 0, len(records))
	position := make(map[string]int, len(records))

	for _, rec := range records {
		idx, seen := position[rec.LessonID]
		if !seen {
			title, ok := lessonIndex[rec.LessonID]
			if !ok {
				title = UnknownLessonTitle
			}
			idx = len(chapters)
			position[rec.LessonID] = idx
			chapters = append(chapters, Chapter{ID: rec.LessonID, Title: title})
		}
		chapters[idx].Resources = append(chapters[idx].Resources, Resource{
			ID:           rec.AttachmentID,
			Title:        rec.DisplayName,
			MimeCategory: ClassifyFilename(rec.Filename),
			Filename:     rec.Filename,
		})
	}
	return chapters
}
