package chapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/podscribe/backend/internal/storage"
	"github.com/podscribe/backend/internal/transcript"
)

// maxExcerptLen bounds the transcript prefix handed to the title model.
const maxExcerptLen = 2000

var (
	ErrGenerationInProgress = errors.New("chapter generation already running")
	ErrTranscriptRequired   = errors.New("a transcript is required to generate chapters")
	ErrNoChapters           = errors.New("no chapters could be generated")
)

// TitleGenerator produces a short chapter title from a transcript excerpt.
// Availability is queryable independent of invocation.
type TitleGenerator interface {
	TitlesAvailable() bool
	GenerateTitle(ctx context.Context, excerpt, episodeTitle string, index int) (string, error)
}

// Service orchestrates boundary detection, title derivation, and chapter
// persistence. One generation runs at a time, globally.
type Service struct {
	transcripts  *transcript.Service
	titles       TitleGenerator
	embedder     Embedder // nil forces lexical similarity
	chaptersPath string

	mu      sync.Mutex
	running bool
}

func NewService(transcripts *transcript.Service, titles TitleGenerator, embedder Embedder, chaptersPath string) *Service {
	return &Service{
		transcripts:  transcripts,
		titles:       titles,
		embedder:     embedder,
		chaptersPath: chaptersPath,
	}
}

// LocalPath returns the on-disk chapters path for an episode guid.
func (s *Service) LocalPath(guid string) string {
	return filepath.Join(s.chaptersPath, storage.SanitizeID(guid)+".json")
}

// Generate produces and persists the chapter list for an episode, returning
// the chapters and the artifact filename. Repeated generation replaces the
// previous file rather than accumulating.
func (s *Service) Generate(ctx context.Context, guid, episodeTitle, transcriptURL string, duration float64) ([]Chapter, string, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, "", ErrGenerationInProgress
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	segments, err := s.transcripts.Resolve(ctx, guid, transcriptURL)
	if err != nil {
		return nil, "", fmt.Errorf("resolve transcript: %w", err)
	}
	if len(segments) == 0 {
		return nil, "", ErrTranscriptRequired
	}

	// Clear the previous artifact first so regeneration is idempotent in
	// its visible side effects.
	os.Remove(s.LocalPath(guid))

	boundaries := DetectBoundaries(ctx, segments, duration, s.embedder)

	titlesUp := s.titles != nil && s.titles.TitlesAvailable()
	if !titlesUp {
		log.Printf("[chapters] title generation unavailable, using generic titles")
	}

	chapters := make([]Chapter, 0, len(boundaries))
	for i, start := range boundaries {
		end := duration
		if i < len(boundaries)-1 {
			end = boundaries[i+1]
		}

		title := fmt.Sprintf("Chapter %d", i+1)
		if titlesUp {
			excerpt := chapterExcerpt(segments, start, end)
			if generated, err := s.titles.GenerateTitle(ctx, excerpt, episodeTitle, i); err == nil {
				title = generated
			} else {
				log.Printf("[chapters] title for chapter %d failed, using fallback: %v", i+1, err)
			}
		}

		chapters = append(chapters, Chapter{
			ID:        uuid.New().String(),
			StartTime: start,
			EndTime:   end,
			Title:     title,
		})
	}
	if len(chapters) == 0 {
		return nil, "", ErrNoChapters
	}

	data, err := json.Marshal(Document{Chapters: chapters})
	if err != nil {
		return nil, "", fmt.Errorf("encode chapters: %w", err)
	}
	path := s.LocalPath(guid)
	if err := storage.WriteFileAtomic(path, data); err != nil {
		return chapters, "", fmt.Errorf("save chapters: %w", err)
	}

	log.Printf("[chapters] generated %d chapters for %s", len(chapters), guid)
	return chapters, filepath.Base(path), nil
}

// LoadLocal reads the persisted chapter list, or nil if absent/unreadable.
func (s *Service) LoadLocal(guid string) []Chapter {
	data, err := os.ReadFile(s.LocalPath(guid))
	if err != nil {
		return nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc.Chapters
}

// DeleteLocal removes the episode's persisted chapters if present.
func (s *Service) DeleteLocal(guid string) {
	os.Remove(s.LocalPath(guid))
}

// chapterExcerpt concatenates the text of every segment starting within
// [start, end), truncated to a bounded prefix.
func chapterExcerpt(segments []transcript.Segment, start, end float64) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.StartTime >= start && seg.StartTime < end {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(seg.Text)
			if b.Len() >= maxExcerptLen {
				break
			}
		}
	}
	excerpt := b.String()
	if len(excerpt) > maxExcerptLen {
		excerpt = excerpt[:maxExcerptLen]
	}
	return excerpt
}
