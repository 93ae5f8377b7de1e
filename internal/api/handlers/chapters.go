package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podscribe/backend/internal/chapters"
	"github.com/podscribe/backend/internal/db"
)

type ChaptersHandler struct {
	db      *db.Database
	service *chapters.Service
}

func NewChaptersHandler(database *db.Database, service *chapters.Service) *ChaptersHandler {
	return &ChaptersHandler{db: database, service: service}
}

func (h *ChaptersHandler) Get(w http.ResponseWriter, r *http.Request) {
	guid := chi.URLParam(r, "guid")
	if _, err := h.db.GetEpisode(guid); err != nil {
		jsonError(w, "episode not found", http.StatusNotFound)
		return
	}
	list := h.service.LoadLocal(guid)
	if list == nil {
		list = []chapters.Chapter{}
	}
	jsonResponse(w, chapters.Document{Chapters: list}, http.StatusOK)
}

// Generate runs chapter generation for the episode and returns the result.
func (h *ChaptersHandler) Generate(w http.ResponseWriter, r *http.Request) {
	guid := chi.URLParam(r, "guid")
	ep, err := h.db.GetEpisode(guid)
	if err != nil {
		jsonError(w, "episode not found", http.StatusNotFound)
		return
	}

	list, filename, err := h.service.Generate(r.Context(), ep.GUID, ep.Title, ep.TranscriptURL, ep.Duration)
	switch {
	case errors.Is(err, chapters.ErrGenerationInProgress):
		jsonError(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, chapters.ErrTranscriptRequired):
		jsonError(w, err.Error(), http.StatusPreconditionFailed)
		return
	case errors.Is(err, chapters.ErrNoChapters):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		jsonError(w, "chapter generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.db.SetChaptersPath(guid, filename); err != nil {
		jsonError(w, "failed to record chapters file", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, chapters.Document{Chapters: list}, http.StatusOK)
}

func (h *ChaptersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	guid := chi.URLParam(r, "guid")
	h.service.DeleteLocal(guid)
	if err := h.db.SetChaptersPath(guid, ""); err != nil {
		jsonError(w, "failed to update episode", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]string{"status": "deleted"}, http.StatusOK)
}
