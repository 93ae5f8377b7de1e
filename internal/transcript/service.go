package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/podscribe/backend/internal/storage"
)

// Service resolves the transcript for an episode from the best available
// source: a locally generated transcript file first, then a remote caption
// URL. Remote fetches are cached in memory for the life of the service.
type Service struct {
	transcriptPath string
	httpClient     *http.Client

	mu    sync.Mutex
	cache map[string][]Segment
}

func NewService(transcriptPath string) *Service {
	return &Service{
		transcriptPath: transcriptPath,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		cache: make(map[string][]Segment),
	}
}

// LocalPath returns the on-disk transcript path for an episode guid.
func (s *Service) LocalPath(guid string) string {
	return filepath.Join(s.transcriptPath, storage.SanitizeID(guid)+".json")
}

// Resolve returns the episode's segments. Resolution order: local file,
// cached remote, fresh remote fetch. No local file and no URL is an empty
// result, not an error.
func (s *Service) Resolve(ctx context.Context, guid, remoteURL string) ([]Segment, error) {
	if segments := s.LoadLocal(guid); len(segments) > 0 {
		return segments, nil
	}

	if remoteURL == "" {
		return nil, nil
	}

	s.mu.Lock()
	cached, ok := s.cache[remoteURL]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", remoteURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch transcript: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}

	segments := Parse(data, remoteURL, resp.Header.Get("Content-Type"))
	log.Printf("[transcript] fetched %s: %d segments", remoteURL, len(segments))

	// Empty results are cached too, so a captionless URL is fetched once.
	s.mu.Lock()
	s.cache[remoteURL] = segments
	s.mu.Unlock()

	return segments, nil
}

// LoadLocal reads a locally persisted transcript, or nil if absent/unreadable.
func (s *Service) LoadLocal(guid string) []Segment {
	data, err := os.ReadFile(s.LocalPath(guid))
	if err != nil {
		return nil
	}
	return ParseJSON(data)
}

// Save persists segments as the episode's local transcript and returns the
// artifact filename. Speaker labels are not persisted; they only ever come
// from remote VTT sources.
func (s *Service) Save(guid string, segments []Segment) (string, error) {
	doc := Document{Segments: make([]Segment, len(segments))}
	for i, seg := range segments {
		doc.Segments[i] = Segment{StartTime: seg.StartTime, EndTime: seg.EndTime, Text: seg.Text}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode transcript: %w", err)
	}

	path := s.LocalPath(guid)
	if err := storage.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("save transcript: %w", err)
	}
	return filepath.Base(path), nil
}

// DeleteLocal removes the episode's persisted transcript if present.
func (s *Service) DeleteLocal(guid string) {
	os.Remove(s.LocalPath(guid))
}

// ClearCache drops all cached remote fetches (e.g. on episode change).
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.cache = make(map[string][]Segment)
	s.mu.Unlock()
}
