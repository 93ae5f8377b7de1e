package queue

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/podscribe/backend/internal/db/models"
	"github.com/podscribe/backend/internal/speech"
	"github.com/podscribe/backend/internal/transcript"
)

// EpisodeStore is the episode catalog the queue reads audio paths from and
// writes progress and artifact paths back to.
type EpisodeStore interface {
	GetEpisode(guid string) (*models.Episode, error)
	SetTranscriptionProgress(guid string, progress *float64) error
	SetTranscriptPath(guid, filename string) error
}

// Queue serializes transcription requests from independent trigger paths
// (manual, auto-transcribe-after-download) onto the single-worker engine,
// FIFO with busy-retry: an episode the engine rejects as busy re-enters at
// the front of the queue.
type Queue struct {
	engine      *speech.Engine
	transcripts *transcript.Service
	store       EpisodeStore
	ctx         context.Context

	// busyRetryDelay spaces out retries while an unrelated manual run
	// holds the engine.
	busyRetryDelay time.Duration

	mu         sync.Mutex
	items      Deque
	processing bool
	pending    map[string]bool
}

func New(ctx context.Context, engine *speech.Engine, transcripts *transcript.Service, store EpisodeStore) *Queue {
	return &Queue{
		engine:         engine,
		transcripts:    transcripts,
		store:          store,
		ctx:            ctx,
		busyRetryDelay: 2 * time.Second,
		pending:        make(map[string]bool),
	}
}

// Enqueue appends an episode and starts the worker if idle.
func (q *Queue) Enqueue(guid string) {
	q.mu.Lock()
	q.items.PushBack(guid)
	log.Printf("[queue] enqueued %s (%d queued)", guid, q.items.Len())
	if q.processing {
		q.mu.Unlock()
		return
	}
	q.processing = true
	q.mu.Unlock()

	go q.work()
}

// work pops and processes items until the queue drains. Only one worker runs;
// q.processing is the sole coordination flag.
func (q *Queue) work() {
	for {
		q.mu.Lock()
		guid, ok := q.items.PopFront()
		if !ok {
			q.processing = false
			q.mu.Unlock()
			return
		}
		q.mu.Unlock()

		if started := q.process(guid); !started {
			// The engine is held by an unrelated manual invocation; put the
			// episode back at the front and try again shortly.
			q.mu.Lock()
			q.items.PushFront(guid)
			q.mu.Unlock()
			log.Printf("[queue] engine busy, %s re-queued at front", guid)
			if q.busyRetryDelay > 0 {
				time.Sleep(q.busyRetryDelay)
			}
		}
	}
}

// process runs one episode through the engine. Returns false only when the
// engine rejected the start as busy; hard failures surface on the event
// stream and are treated like completions.
func (q *Queue) process(guid string) bool {
	ep, err := q.store.GetEpisode(guid)
	if err != nil {
		log.Printf("[queue] episode %s not found, dropping: %v", guid, err)
		return true
	}
	if ep.AudioPath == "" {
		log.Printf("[queue] episode %s has no downloaded audio, dropping", guid)
		return true
	}

	events, started := q.engine.Start(q.ctx, speech.Request{
		AudioPath: ep.AudioPath,
		Language:  ep.Language,
		Duration:  ep.Duration,
	})
	if !started {
		return false
	}

	zero := 0.0
	q.store.SetTranscriptionProgress(guid, &zero)
	defer q.store.SetTranscriptionProgress(guid, nil)

	for ev := range events {
		switch ev.Type {
		case speech.EventProgress:
			p := ev.Progress
			q.store.SetTranscriptionProgress(guid, &p)
		case speech.EventError:
			log.Printf("[queue] transcription of %s failed: %v", guid, ev.Err)
		case speech.EventDone:
			if ev.NoSpeech {
				log.Printf("[queue] no speech detected in %s", guid)
				break
			}
			filename, err := q.transcripts.Save(guid, ev.Segments)
			if err != nil {
				log.Printf("[queue] save transcript for %s: %v", guid, err)
				break
			}
			if err := q.store.SetTranscriptPath(guid, filename); err != nil {
				log.Printf("[queue] record transcript path for %s: %v", guid, err)
			}
		}
	}
	return true
}

// RequestOnDownload marks an episode for transcription the moment its
// download finishes, independent of the global auto-transcribe setting.
func (q *Queue) RequestOnDownload(guid string) {
	q.mu.Lock()
	q.pending[guid] = true
	q.mu.Unlock()
}

// ConsumePending reports and clears a pending per-episode request. A second
// call after consumption returns false.
func (q *Queue) ConsumePending(guid string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending[guid] {
		delete(q.pending, guid)
		return true
	}
	return false
}

// Position returns the 1-based position of an episode among queued (not
// in-flight) items and the queued total. Position 1 means next after the
// current run finishes.
func (q *Queue) Position(guid string) (pos, total int, queued bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	idx := q.items.Index(guid)
	if idx < 0 {
		return 0, q.items.Len(), false
	}
	return idx + 1, q.items.Len(), true
}

// Processing reports whether a transcription is currently in flight.
func (q *Queue) Processing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.processing
}
