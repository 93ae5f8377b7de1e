package models

import "time"

// Episode is one catalog entry. The guid is the stable identifier used to
// name on-disk artifacts; the path fields record where the audio and any
// derived transcript/chapter files live.
type Episode struct {
	GUID          string  `json:"guid"`
	Title         string  `json:"title"`
	AudioURL      string  `json:"audio_url,omitempty"`
	AudioPath     string  `json:"audio_path,omitempty"`
	Duration      float64 `json:"duration"`
	Language      string  `json:"language,omitempty"`
	TranscriptURL string  `json:"transcript_url,omitempty"`

	// Artifact filenames, set once the corresponding file exists.
	TranscriptPath string `json:"transcript_path,omitempty"`
	ChaptersPath   string `json:"chapters_path,omitempty"`

	// Nil when idle, 0-1 while a transcription is in flight.
	TranscriptionProgress *float64 `json:"transcription_progress,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
