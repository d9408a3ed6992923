package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolhub/portal-api/internal/core/ports"
)

const accessEventsCollection = "attachment_access_events"

// MongoAccessEventRepository persists the attachment access audit trail.
type MongoAccessEventRepository struct {
	coll *mongo.Collection
}

func NewAccessEventRepository(db *mongo.Database) *MongoAccessEventRepository {
	return &MongoAccessEventRepository{coll: db.Collection(accessEventsCollection)}
}

type accessEventDoc struct {
	UserID       string `bson:"user_id"`
	Role         string `bson:"role"`
	AttachmentID string `bson:"attachment_id"`
	MimeCategory string `bson:"mime_category"`
	OccurredAt   int64  `bson:"occurred_at"`
}

func (r *MongoAccessEventRepository) Insert(ctx context.Context, event *ports.AccessEvent) error {
	doc := accessEventDoc{
		UserID:       event.UserID,
		Role:         string(event.Role),
		AttachmentID: event.AttachmentID,
		MimeCategory: string(event.MimeCategory),
		OccurredAt:   event.OccurredAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert access event: %w", err)
	}
	return nil
}
