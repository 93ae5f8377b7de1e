package download

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/queue"
	"github.com/podscribe/backend/internal/storage"
)

// Manager fetches episode audio into the media directory and fires the
// transcription trigger when a download completes: either the global
// auto-transcribe setting is on, or a pending per-episode request exists.
type Manager struct {
	mediaPath  string
	db         *db.Database
	queue      *queue.Queue
	httpClient *http.Client
}

func NewManager(mediaPath string, database *db.Database, q *queue.Queue) *Manager {
	return &Manager{
		mediaPath: mediaPath,
		db:        database,
		queue:     q,
		httpClient: &http.Client{
			Timeout: 30 * time.Minute,
		},
	}
}

// Download fetches the episode's audio, records the local path and probed
// duration, and enqueues transcription when a trigger applies.
func (m *Manager) Download(ctx context.Context, guid string) error {
	ep, err := m.db.GetEpisode(guid)
	if err != nil {
		return fmt.Errorf("episode %s: %w", guid, err)
	}
	if ep.AudioURL == "" {
		return fmt.Errorf("episode %s has no audio url", guid)
	}

	ext := audioExt(ep.AudioURL)
	destPath := filepath.Join(m.mediaPath, storage.SanitizeID(guid)+ext)

	if err := m.fetch(ctx, ep.AudioURL, destPath); err != nil {
		return fmt.Errorf("download %s: %w", guid, err)
	}

	duration := ep.Duration
	if probed, err := probeDuration(destPath); err == nil && probed > 0 {
		duration = probed
	}

	if err := m.db.SetAudioPath(guid, destPath, duration); err != nil {
		return fmt.Errorf("record audio path: %w", err)
	}
	log.Printf("[download] %s complete (%.0fs) -> %s", guid, duration, destPath)

	m.onComplete(guid)
	return nil
}

// onComplete runs the post-download transcription triggers. The per-episode
// pending request is consumed exactly once.
func (m *Manager) onComplete(guid string) {
	requested := m.queue.ConsumePending(guid)
	auto := m.db.GetSetting("auto_transcribe", "false") == "true"
	if requested || auto {
		m.queue.Enqueue(guid)
	}
}

func (m *Manager) fetch(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".download-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), destPath)
}

func audioExt(url string) string {
	if i := strings.Index(url, "?"); i >= 0 {
		url = url[:i]
	}
	ext := strings.ToLower(filepath.Ext(url))
	if !storage.IsAudioFile(url) {
		return ".mp3"
	}
	return ext
}

// probeDuration reads the media duration in seconds via ffprobe.
func probeDuration(filePath string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}

	var result struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(result.Format.Duration, 64)
}
