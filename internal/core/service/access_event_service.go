package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/schoolhub/portal-api/internal/api/metrics"
	"github.com/schoolhub/portal-api/internal/core/ports"
)

type accessEventService struct {
	repo ports.AccessEventRepository
	log  zerolog.Logger
}

// NewAccessEventService returns the audit-trail processor consumed by the
// queue dispatcher.
func NewAccessEventService(repo ports.AccessEventRepository, log zerolog.Logger) ports.AccessEventService {
	return &accessEventService{repo: repo, log: log}
}

func (s *accessEventService) Process(ctx context.Context, event ports.AccessEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		metrics.AccessEventsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("insert access event: %w", err)
	}

	metrics.AccessEventsTotal.WithLabelValues("ok").Inc()
	s.log.Debug().
		Str("user_id", event.UserID).
		Str("attachment_id", event.AttachmentID).
		Str("mime_category", string(event.MimeCategory)).
		Msg("access event recorded")
	return nil
}
