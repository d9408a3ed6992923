package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingSigner struct {
	calls int32
	url   string
	err   error
	// block, when non-nil, holds SignedURL open until released.
	block chan struct{}
}

func (s *countingSigner) SignedURL(_ context.Context, attachmentID string) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return "", s.err
	}
	if s.url != "" {
		return s.url, nil
	}
	return "https://cdn.school.test/view/" + attachmentID + "?sig=abc", nil
}

func TestAttachmentService_ResolvesURL(t *testing.T) {
	signer := &countingSigner{}
	svc := NewAttachmentService(signer, time.Second, zerolog.Nop())

	got, err := svc.ResolveViewableURL(context.Background(), "att-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.URL == "" || got.Shared {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestAttachmentService_RapidRepeatSharesOneUpstreamCall(t *testing.T) {
	signer := &countingSigner{}
	svc := NewAttachmentService(signer, time.Second, zerolog.Nop())

	first, err := svc.ResolveViewableURL(context.Background(), "att-2")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := svc.ResolveViewableURL(context.Background(), "att-2")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if n := atomic.LoadInt32(&signer.calls); n != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", n)
	}
	if !second.Shared {
		t.Fatalf("second resolution should be marked shared")
	}
	if first.URL != second.URL {
		t.Fatalf("shared resolution must return the same URL")
	}
}

func TestAttachmentService_ConcurrentCallersJoinInFlight(t *testing.T) {
	signer := &countingSigner{block: make(chan struct{})}
	svc := NewAttachmentService(signer, time.Second, zerolog.Nop())

	var wg sync.WaitGroup
	results := make([]string, 5)
	errs := make([]error, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := svc.ResolveViewableURL(context.Background(), "att-3")
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = got.URL
		}(i)
	}

	// Let the callers pile up on the single in-flight request.
	time.Sleep(20 * time.Millisecond)
	close(signer.block)
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Fatalf("caller %d got a different URL", i)
		}
	}
	if n := atomic.LoadInt32(&signer.calls); n != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", n)
	}
}

func TestAttachmentService_DistinctAttachmentsNotShared(t *testing.T) {
	signer := &countingSigner{}
	svc := NewAttachmentService(signer, time.Second, zerolog.Nop())

	if _, err := svc.ResolveViewableURL(context.Background(), "att-4"); err != nil {
		t.Fatalf("resolve att-4: %v", err)
	}
	if _, err := svc.ResolveViewableURL(context.Background(), "att-5"); err != nil {
		t.Fatalf("resolve att-5: %v", err)
	}
	if n := atomic.LoadInt32(&signer.calls); n != 2 {
		t.Fatalf("distinct attachments must each hit upstream, got %d calls", n)
	}
}

func TestAttachmentService_FailureIsNotRemembered(t *testing.T) {
	signer := &countingSigner{err: errors.New("upstream down")}
	svc := NewAttachmentService(signer, time.Second, zerolog.Nop())

	if _, err := svc.ResolveViewableURL(context.Background(), "att-6"); err == nil {
		t.Fatalf("expected resolution failure")
	}

	// The next user action retries with a fresh upstream call.
	signer.err = nil
	got, err := svc.ResolveViewableURL(context.Background(), "att-6")
	if err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if got.Shared {
		t.Fatalf("retry after failure must not share the failed call")
	}
	if n := atomic.LoadInt32(&signer.calls); n != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", n)
	}
}

func TestAttachmentService_ExpiredResultsAreEvicted(t *testing.T) {
	signer := &countingSigner{}
	svc := NewAttachmentService(signer, time.Second, zerolog.Nop())

	current := time.Now()
	svc.now = func() time.Time { return current }

	// Resolve many distinct attachments, each well past the previous one's
	// window. The dedup map must not accumulate them.
	for i := 0; i < 50; i++ {
		id := "att-evict-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		if _, err := svc.ResolveViewableURL(context.Background(), id); err != nil {
			t.Fatalf("resolve %s: %v", id, err)
		}
		current = current.Add(10 * time.Second)
	}

	svc.mu.Lock()
	retained := len(svc.calls)
	svc.mu.Unlock()
	if retained > 1 {
		t.Fatalf("expected expired entries to be evicted, %d retained", retained)
	}
}

func TestAttachmentService_WindowExpiryTriggersFreshCall(t *testing.T) {
	signer := &countingSigner{}
	svc := NewAttachmentService(signer, time.Second, zerolog.Nop())

	base := time.Now()
	svc.now = func() time.Time { return base }

	if _, err := svc.ResolveViewableURL(context.Background(), "att-7"); err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	// Advance past the burst window; the dedup entry must not answer.
	svc.now = func() time.Time { return base.Add(2 * time.Second) }
	got, err := svc.ResolveViewableURL(context.Background(), "att-7")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if got.Shared {
		t.Fatalf("expired window must not share the old result")
	}
	if n := atomic.LoadInt32(&signer.calls); n != 2 {
		t.Fatalf("expected a fresh upstream call after window expiry, got %d", n)
	}
}
