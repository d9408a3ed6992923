package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/schoolhub/portal-api/internal/core/domain"
	"github.com/schoolhub/portal-api/internal/core/ports"
)

type stubAttachmentService struct {
	url string
	err error
}

func (s *stubAttachmentService) ResolveViewableURL(_ context.Context, attachmentID string) (*ports.ViewableURL, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.ViewableURL{URL: s.url}, nil
}

type stubRecorder struct {
	events []ports.AccessEvent
}

func (r *stubRecorder) Enqueue(event ports.AccessEvent) {
	r.events = append(r.events, event)
}

func resolveView(t *testing.T, svc ports.AttachmentService, rec *stubRecorder, filename string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	h := NewAttachmentHandler(svc, rec)
	e := newEcho()

	target := "/"
	if filename != "" {
		target = "/?filename=" + filename
	}
	req := httptest.NewRequest(http.MethodPost, target, nil)
	w := httptest.NewRecorder()
	c := e.NewContext(req, w)
	c.SetParamNames("attachment_id")
	c.SetParamValues("att-1")
	c.Set("user_id", "u1")
	c.Set("role", "student")

	return w, h.ViewURL(c)
}

func TestAttachmentHandler_ViewURL(t *testing.T) {
	recorder := &stubRecorder{}
	w, err := resolveView(t, &stubAttachmentService{url: "https://cdn.school.test/v/att-1"}, recorder, "clip.mp4")
	if err != nil {
		t.Fatalf("view url: %v", err)
	}

	var resp viewableURLResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.URL != "https://cdn.school.test/v/att-1" {
		t.Fatalf("unexpected url: %s", resp.URL)
	}
	if resp.MimeCategory != string(domain.MimeVideo) {
		t.Fatalf("expected video category, got %s", resp.MimeCategory)
	}

	if len(recorder.events) != 1 {
		t.Fatalf("expected one audit event, got %d", len(recorder.events))
	}
	ev := recorder.events[0]
	if ev.UserID != "u1" || ev.AttachmentID != "att-1" || ev.MimeCategory != domain.MimeVideo {
		t.Fatalf("unexpected audit event: %+v", ev)
	}
}

func TestAttachmentHandler_FailurePropagatesNoAudit(t *testing.T) {
	recorder := &stubRecorder{}
	_, err := resolveView(t, &stubAttachmentService{err: domain.ErrSignerUnavailable}, recorder, "notes.pdf")
	if err != domain.ErrSignerUnavailable {
		t.Fatalf("expected signer error to propagate, got %v", err)
	}
	if len(recorder.events) != 0 {
		t.Fatalf("failed resolutions must not be audited")
	}
}

func TestAttachmentHandler_NoFilenameYieldsGenericCategory(t *testing.T) {
	recorder := &stubRecorder{}
	w, err := resolveView(t, &stubAttachmentService{url: "https://cdn.school.test/v/att-1"}, recorder, "")
	if err != nil {
		t.Fatalf("view url: %v", err)
	}

	var resp viewableURLResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.MimeCategory != string(domain.MimeGenericLink) {
		t.Fatalf("missing filename should classify as generic link, got %s", resp.MimeCategory)
	}
}
