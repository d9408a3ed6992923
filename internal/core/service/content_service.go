package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/schoolhub/portal-api/internal/api/metrics"
	"github.com/schoolhub/portal-api/internal/core/domain"
	"github.com/schoolhub/portal-api/internal/core/ports"
)

// ContentService assembles the chapter→resource tree for a class+subject
// pair from the catalog backend.
//
// Concurrent fetches for the same pair are ordered by request-generation
// numbers: every fetch takes a generation on entry, and only the result
// still matching the latest issued generation is applied to the kept
// snapshot. A slow early fetch finishing after a newer one is discarded
// instead of clobbering the newer tree.
type ContentService struct {
	catalog ports.CatalogRepository
	log     zerolog.Logger

	mu        sync.Mutex
	seq       uint64
	latest    map[string]uint64
	snapshots map[string]*ports.ChapterTreeResult
}

func NewContentService(catalog ports.CatalogRepository, log zerolog.Logger) *ContentService {
	return &ContentService{
		catalog:   catalog,
		log:       log,
		latest:    make(map[string]uint64),
		snapshots: make(map[string]*ports.ChapterTreeResult),
	}
}

func (s *ContentService) ChapterTree(ctx context.Context, input ports.ChapterTreeInput) (*ports.ChapterTreeResult, error) {
	key := input.ClassID + "|" + input.SubjectID
	gen := s.begin(key)

	records, err := s.catalog.ListLessonAttachments(ctx, input.ClassID, input.SubjectID)
	if err != nil {
		// Degrade to an empty tree; the client renders "no content" and the
		// user retries by re-navigating.
		s.log.Error().Err(err).
			Str("class_id", input.ClassID).
			Str("subject_id", input.SubjectID).
			Msg("failed to fetch lesson attachments")
		return &ports.ChapterTreeResult{Chapters: []domain.Chapter{}, Generation: gen}, nil
	}

	index, err := s.catalog.LessonIndex(ctx, input.SubjectID)
	if err != nil {
		// Records without names still render, each chapter titled with the
		// unknown-lesson sentinel.
		s.log.Warn().Err(err).Str("subject_id", input.SubjectID).Msg("failed to fetch lesson index")
		index = map[string]string{}
	}

	result := &ports.ChapterTreeResult{
		Chapters:   domain.BuildChapterTree(records, index),
		Generation: gen,
	}
	metrics.ChapterTreeBuildsTotal.Inc()

	return s.apply(key, gen, result), nil
}

// begin issues the next fetch generation for key and marks it as the latest.
func (s *ContentService) begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.latest[key] = s.seq
	return s.seq
}

// apply stores result as the key's snapshot when its generation is still the
// latest issued one. A stale result is dropped and the caller gets the
// newer snapshot instead, so responses never move backwards.
func (s *ContentService) apply(key string, gen uint64, result *ports.ChapterTreeResult) *ports.ChapterTreeResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest[key] != gen {
		metrics.StaleFetchDiscardsTotal.Inc()
		s.log.Debug().
			Str("key", key).
			Uint64("generation", gen).
			Uint64("latest", s.latest[key]).
			Msg("discarding stale chapter tree fetch")
		if kept, ok := s.snapshots[key]; ok {
			return kept
		}
		return result
	}

	s.snapshots[key] = result
	return result
}
