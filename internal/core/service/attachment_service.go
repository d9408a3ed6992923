package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolhub/portal-api/internal/api/metrics"
	"github.com/schoolhub/portal-api/internal/core/ports"
)

// defaultBurstWindow bounds how long a completed resolution keeps answering
// repeat requests for the same attachment. Signed URLs are short-lived by
// contract, so this is a burst deduplicator, not a cache.
const defaultBurstWindow = 3 * time.Second

type signedCall struct {
	done        chan struct{}
	url         string
	err         error
	completedAt time.Time
}

// AttachmentService resolves attachment ids to signed viewing URLs, one
// upstream call per user interaction. Rapid repeats for the same id (a
// hover-prefetch followed by a click) share a single upstream request:
// concurrent callers join the in-flight call, and callers arriving within
// the burst window after completion reuse its result.
type AttachmentService struct {
	signer ports.AttachmentSigner
	window time.Duration
	log    zerolog.Logger
	now    func() time.Time

	mu    sync.Mutex
	calls map[string]*signedCall
}

func NewAttachmentService(signer ports.AttachmentSigner, window time.Duration, log zerolog.Logger) *AttachmentService {
	if window <= 0 {
		window = defaultBurstWindow
	}
	return &AttachmentService{
		signer: signer,
		window: window,
		log:    log,
		now:    time.Now,
		calls:  make(map[string]*signedCall),
	}
}

func (s *AttachmentService) ResolveViewableURL(ctx context.Context, attachmentID string) (*ports.ViewableURL, error) {
	s.mu.Lock()
	if call, ok := s.calls[attachmentID]; ok {
		select {
		case <-call.done:
			// Completed: reuse a fresh success, evict anything else.
			if call.err == nil && s.now().Sub(call.completedAt) < s.window {
				s.mu.Unlock()
				metrics.SignedURLDedupTotal.WithLabelValues("hit").Inc()
				return &ports.ViewableURL{URL: call.url, Shared: true}, nil
			}
			delete(s.calls, attachmentID)
		default:
			// In flight: join it.
			s.mu.Unlock()
			metrics.SignedURLDedupTotal.WithLabelValues("hit").Inc()
			return s.wait(ctx, call)
		}
	}

	s.evictExpiredLocked()
	call := &signedCall{done: make(chan struct{})}
	s.calls[attachmentID] = call
	s.mu.Unlock()

	metrics.SignedURLDedupTotal.WithLabelValues("miss").Inc()

	url, err := s.signer.SignedURL(ctx, attachmentID)

	s.mu.Lock()
	call.url = url
	call.err = err
	call.completedAt = s.now()
	if err != nil {
		// Failed calls are not remembered: the user's next click retries.
		delete(s.calls, attachmentID)
	}
	s.mu.Unlock()
	close(call.done)

	if err != nil {
		metrics.SignedURLRequestsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("attachment_id", attachmentID).Msg("signed url resolution failed")
		return nil, err
	}

	metrics.SignedURLRequestsTotal.WithLabelValues("ok").Inc()
	return &ports.ViewableURL{URL: url}, nil
}

// evictExpiredLocked drops completed entries whose burst window has lapsed,
// so the map only ever holds in-flight calls and results still inside their
// window. Runs on every miss; callers hold s.mu.
func (s *AttachmentService) evictExpiredLocked() {
	cutoff := s.now().Add(-s.window)
	for id, call := range s.calls {
		select {
		case <-call.done:
			if !call.completedAt.After(cutoff) {
				delete(s.calls, id)
			}
		default:
		}
	}
}

func (s *AttachmentService) wait(ctx context.Context, call *signedCall) (*ports.ViewableURL, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-call.done:
	}
	if call.err != nil {
		return nil, call.err
	}
	return &ports.ViewableURL{URL: call.url, Shared: true}, nil
}
