package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolhub/portal-api/internal/core/domain"
)

const (
	lessonAttachmentsCollection = "lesson_attachments"
	lessonsCollection           = "lessons"
)

// MongoCatalogRepository reads the catalog collections the external CRUD
// backend maintains. This service only ever reads them.
type MongoCatalogRepository struct {
	attachments *mongo.Collection
	lessons     *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *MongoCatalogRepository {
	return &MongoCatalogRepository{
		attachments: db.Collection(lessonAttachmentsCollection),
		lessons:     db.Collection(lessonsCollection),
	}
}

type lessonAttachmentDoc struct {
	LessonID     string `bson:"lesson_id"`
	AttachmentID string `bson:"attachment_id"`
	DisplayName  string `bson:"display_name"`
	Filename     string `bson:"filename"`
	ClassID      string `bson:"class_id"`
	SubjectID    string `bson:"subject_id"`
	Position     int    `bson:"position"`
}

type lessonDoc struct {
	LessonID string `bson:"lesson_id"`
	Name     string `bson:"name"`
}

// ListLessonAttachments returns the flat association records for a
// class+subject pair in their stored position order. That order is what
// BuildChapterTree preserves, so it is load-bearing.
func (r *MongoCatalogRepository) ListLessonAttachments(ctx context.Context, classID, subjectID string) ([]domain.LessonAttachmentRecord, error) {
	filter := bson.M{"class_id": classID, "subject_id": subjectID}
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	cursor, err := r.attachments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list lesson attachments: %w", err)
	}
	defer cursor.Close(ctx)

	var records []domain.LessonAttachmentRecord
	for cursor.Next(ctx) {
		var doc lessonAttachmentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode lesson attachment: %w", err)
		}
		records = append(records, domain.LessonAttachmentRecord{
			LessonID:     doc.LessonID,
			AttachmentID: doc.AttachmentID,
			DisplayName:  doc.DisplayName,
			Filename:     doc.Filename,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate lesson attachments: %w", err)
	}
	return records, nil
}

// LessonIndex returns the lesson-id → display-name lookup for a subject.
func (r *MongoCatalogRepository) LessonIndex(ctx context.Context, subjectID string) (map[string]string, error) {
	cursor, err := r.lessons.Find(ctx, bson.M{"subject_id": subjectID})
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer cursor.Close(ctx)

	index := make(map[string]string)
	for cursor.Next(ctx) {
		var doc lessonDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode lesson: %w", err)
		}
		index[doc.LessonID] = doc.Name
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}
	return index, nil
}
