package speech

import (
	"context"
	"log"
	"strings"
	"sync/atomic"

	"github.com/podscribe/backend/internal/transcript"
)

type EventType int

const (
	EventSegment EventType = iota
	EventProgress
	EventDone
	EventError
)

// Event is one item on an engine run's result stream. A run ends with exactly
// one Done or Error event.
type Event struct {
	Type     EventType
	Segment  transcript.Segment
	Progress float64
	Segments []transcript.Segment // populated on Done
	NoSpeech bool                 // Done with zero segments
	Err      error
}

// Request describes a single transcription run.
type Request struct {
	AudioPath string
	Language  string
	Duration  float64 // estimated episode duration in seconds
}

// Engine drives a streaming recognizer against a local audio file, emitting
// segments and progress on an event channel. At most one run owns the engine
// at a time; a second Start while busy is rejected, not queued.
type Engine struct {
	rec  Recognizer
	busy atomic.Bool
}

func NewEngine(rec Recognizer) *Engine {
	return &Engine{rec: rec}
}

func (e *Engine) Busy() bool {
	return e.busy.Load()
}

// Start begins a transcription run. Returns (nil, false) when the engine is
// already busy; callers that need queuing use the transcription queue. The
// returned channel is closed after the terminal Done or Error event.
func (e *Engine) Start(ctx context.Context, req Request) (<-chan Event, bool) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, false
	}

	events := make(chan Event, 64)
	go func() {
		defer e.busy.Store(false)
		defer close(events)
		e.run(ctx, req, events)
	}()
	return events, true
}

func (e *Engine) run(ctx context.Context, req Request, events chan<- Event) {
	if err := e.rec.CheckAvailable(ctx); err != nil {
		events <- Event{Type: EventError, Err: err}
		return
	}
	if !e.rec.SupportsLanguage(req.Language) {
		events <- Event{Type: EventError, Err: ErrUnsupportedLanguage}
		return
	}

	log.Printf("[speech] transcribing %s (language=%s duration=%.0fs)",
		req.AudioPath, req.Language, req.Duration)

	var segments []transcript.Segment
	lastReported := -1.0

	err := e.rec.Recognize(ctx, req.AudioPath, req.Language, func(r Result) {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			return
		}
		seg, ok := transcript.NewSegment(r.Start, r.End, text, "")
		if !ok {
			return
		}
		segments = append(segments, seg)
		events <- Event{Type: EventSegment, Segment: seg}

		// Progress is reported only on whole-point advances so a run emits
		// at most ~100 updates no matter how fine-grained the results are.
		if req.Duration > 0 {
			p := r.End / req.Duration
			if p > 0.99 {
				p = 0.99
			}
			if p-lastReported >= 0.01 {
				lastReported = p
				events <- Event{Type: EventProgress, Progress: p}
			}
		}
	})
	if err != nil {
		events <- Event{Type: EventError, Err: err}
		return
	}

	events <- Event{Type: EventProgress, Progress: 1.0}
	if len(segments) == 0 {
		log.Printf("[speech] no speech detected in %s", req.AudioPath)
		events <- Event{Type: EventDone, NoSpeech: true}
		return
	}

	log.Printf("[speech] transcription complete: %d segments", len(segments))
	events <- Event{Type: EventDone, Segments: segments}
}
