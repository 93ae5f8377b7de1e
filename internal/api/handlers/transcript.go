package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/queue"
	"github.com/podscribe/backend/internal/transcript"
)

type TranscriptHandler struct {
	db          *db.Database
	transcripts *transcript.Service
	queue       *queue.Queue
}

func NewTranscriptHandler(database *db.Database, transcripts *transcript.Service, q *queue.Queue) *TranscriptHandler {
	return &TranscriptHandler{db: database, transcripts: transcripts, queue: q}
}

// Get resolves the episode's transcript from the best available source. An
// empty segment list is a valid response, not an error.
func (h *TranscriptHandler) Get(w http.ResponseWriter, r *http.Request) {
	ep, err := h.db.GetEpisode(chi.URLParam(r, "guid"))
	if err != nil {
		jsonError(w, "episode not found", http.StatusNotFound)
		return
	}

	segments, err := h.transcripts.Resolve(r.Context(), ep.GUID, ep.TranscriptURL)
	if err != nil {
		jsonError(w, "failed to fetch transcript: "+err.Error(), http.StatusBadGateway)
		return
	}
	if segments == nil {
		segments = []transcript.Segment{}
	}
	jsonResponse(w, transcript.Document{Segments: segments}, http.StatusOK)
}

// Transcribe queues the episode for speech transcription.
func (h *TranscriptHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	guid := chi.URLParam(r, "guid")
	ep, err := h.db.GetEpisode(guid)
	if err != nil {
		jsonError(w, "episode not found", http.StatusNotFound)
		return
	}

	if ep.AudioPath == "" {
		// Not downloaded yet: transcribe as soon as the download lands.
		h.queue.RequestOnDownload(guid)
		jsonResponse(w, map[string]string{"status": "pending download"}, http.StatusAccepted)
		return
	}

	h.queue.Enqueue(guid)
	jsonResponse(w, map[string]string{"status": "queued"}, http.StatusAccepted)
}

// Delete removes the locally generated transcript.
func (h *TranscriptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	guid := chi.URLParam(r, "guid")
	h.transcripts.DeleteLocal(guid)
	if err := h.db.SetTranscriptPath(guid, ""); err != nil {
		jsonError(w, "failed to update episode", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

// Progress reports the in-flight transcription progress for polling clients.
func (h *TranscriptHandler) Progress(w http.ResponseWriter, r *http.Request) {
	ep, err := h.db.GetEpisode(chi.URLParam(r, "guid"))
	if err != nil {
		jsonError(w, "episode not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, map[string]interface{}{
		"progress": ep.TranscriptionProgress,
	}, http.StatusOK)
}
