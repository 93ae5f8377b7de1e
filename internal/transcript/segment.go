package transcript

import (
	"strings"

	"github.com/google/uuid"
)

// Segment is a time-coded span of spoken or captioned text.
type Segment struct {
	ID        string  `json:"-"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Text      string  `json:"body"`
	Speaker   string  `json:"speaker,omitempty"`
}

// NewSegment builds a segment with a fresh ID, or returns false when the
// trimmed text is empty. All producers drop empty segments at construction.
func NewSegment(start, end float64, text, speaker string) (Segment, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Segment{}, false
	}
	return Segment{
		ID:        uuid.New().String(),
		StartTime: start,
		EndTime:   end,
		Text:      text,
		Speaker:   speaker,
	}, true
}

// Document is the on-disk and over-the-wire transcript shape. The locally
// persisted format and the Podcast Index remote format are intentionally the
// same object so tier-1 files can be read back by the tier-3 parser.
type Document struct {
	Segments []Segment `json:"segments"`
}
