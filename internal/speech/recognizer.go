package speech

import (
	"context"
	"errors"
)

// Result is one recognized run of speech with its time range.
type Result struct {
	Text  string
	Start float64
	End   float64
}

// Recognizer is a streaming speech-to-text backend. Results arrive through
// emit in time order as the backend produces them.
type Recognizer interface {
	// CheckAvailable probes the backend before a run. Returns
	// ErrNotAvailable or ErrPermissionDenied; checked once per call, never
	// cached.
	CheckAvailable(ctx context.Context) error
	// SupportsLanguage reports whether the backend can recognize the
	// requested language.
	SupportsLanguage(language string) bool
	// Recognize feeds the audio file to the backend, emitting results as
	// they become available. Returns after all buffered results have been
	// emitted.
	Recognize(ctx context.Context, audioPath, language string, emit func(Result)) error
}

var (
	ErrNotAvailable        = errors.New("speech recognition backend not available")
	ErrUnsupportedLanguage = errors.New("no recognition language matches the request")
	ErrPermissionDenied    = errors.New("speech recognition backend rejected credentials")
)
