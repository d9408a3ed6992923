package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolhub/portal-api/internal/core/ports"
)

type recordingService struct {
	mu     sync.Mutex
	events []ports.AccessEvent
}

func (s *recordingService) Process(_ context.Context, event ports.AccessEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingService) snapshot() []ports.AccessEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.AccessEvent(nil), s.events...)
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Enqueue(ports.AccessEvent{UserID: "u1", AttachmentID: "att-1", OccurredAt: time.Now()})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(svc.snapshot()) == 10 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected 10 processed events, got %d", len(svc.snapshot()))
}

func TestDispatcher_SameAttachmentKeepsOrder(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	base := time.Unix(1000, 0)
	for i := 0; i < 5; i++ {
		d.Enqueue(ports.AccessEvent{AttachmentID: "att-ordered", OccurredAt: base.Add(time.Duration(i) * time.Second)})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(svc.snapshot()) < 5 {
		time.Sleep(10 * time.Millisecond)
	}

	events := svc.snapshot()
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].OccurredAt.Before(events[i-1].OccurredAt) {
			t.Fatalf("events for one attachment processed out of order")
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingService{}, zerolog.Nop())
	first := d.shardIndex("att-42")
	for i := 0; i < 100; i++ {
		if d.shardIndex("att-42") != first {
			t.Fatalf("shard index must be deterministic")
		}
	}
}
