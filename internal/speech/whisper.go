package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// WhisperRecognizer talks to a whisper.cpp HTTP server (whisper-server).
type WhisperRecognizer struct {
	baseURL    string
	languages  map[string]bool // empty means any
	httpClient *http.Client

	loadOnce sync.Once
}

// NewWhisperRecognizer creates a recognizer for the whisper.cpp server.
// languages restricts which request languages are accepted; empty allows all.
func NewWhisperRecognizer(baseURL string, languages []string) *WhisperRecognizer {
	langs := make(map[string]bool)
	for _, l := range languages {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			langs[l] = true
		}
	}
	return &WhisperRecognizer{
		baseURL:   strings.TrimRight(baseURL, "/"),
		languages: langs,
		httpClient: &http.Client{
			Timeout: 30 * time.Minute, // transcription can be very long
		},
	}
}

func (c *WhisperRecognizer) CheckAvailable(ctx context.Context) error {
	if c.baseURL == "" {
		return ErrNotAvailable
	}
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return ErrNotAvailable
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotAvailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrPermissionDenied
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: health status %d", ErrNotAvailable, resp.StatusCode)
	}

	// The server loads its model lazily on first inference; nothing to show
	// the caller for that step beyond a log line.
	c.loadOnce.Do(func() {
		log.Printf("[whisper] backend healthy at %s, model loads on first inference", c.baseURL)
	})
	return nil
}

func (c *WhisperRecognizer) SupportsLanguage(language string) bool {
	if len(c.languages) == 0 {
		return true
	}
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" || language == "auto" {
		return true
	}
	return c.languages[language]
}

// Recognize converts the audio to 16 kHz mono WAV, sends it to the server,
// and emits the returned segments in time order.
func (c *WhisperRecognizer) Recognize(ctx context.Context, audioPath, language string, emit func(Result)) error {
	wavPath, err := extractAudio(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	defer os.Remove(wavPath)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := os.Open(wavPath)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	defer audioFile.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(wavPath))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return fmt.Errorf("copy audio data: %w", err)
	}

	writer.WriteField("response_format", "verbose_json")
	writer.WriteField("temperature", "0.0")
	if language != "" && language != "auto" {
		writer.WriteField("language", language)
	}
	writer.Close()

	url := c.baseURL + "/inference"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	log.Printf("[whisper] sending request to %s (audio: %s)", url, wavPath)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("whisper server request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whisper server error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Segments []struct {
			Start float64 `json:"start"`
			End   float64 `json:"end"`
			Text  string  `json:"text"`
		} `json:"segments"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("parse whisper response: %w", err)
	}

	for _, s := range parsed.Segments {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		emit(Result{Text: s.Text, Start: s.Start, End: s.End})
	}
	return nil
}

// extractAudio uses FFmpeg to extract audio as WAV 16kHz mono (required by whisper)
func extractAudio(ctx context.Context, mediaPath string) (string, error) {
	tmpFile, err := os.CreateTemp("", "whisper-audio-*.wav")
	if err != nil {
		return "", err
	}
	tmpFile.Close()

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-i", mediaPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000", // 16kHz
		"-ac", "1", // mono
		"-y", // overwrite
		tmpFile.Name(),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("ffmpeg: %s: %w", string(output), err)
	}

	return tmpFile.Name(), nil
}
