package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/db/models"
	"github.com/podscribe/backend/internal/download"
	"github.com/podscribe/backend/internal/storage"
)

type EpisodesHandler struct {
	db        *db.Database
	downloads *download.Manager
	mediaPath string
}

func NewEpisodesHandler(database *db.Database, downloads *download.Manager, mediaPath string) *EpisodesHandler {
	return &EpisodesHandler{db: database, downloads: downloads, mediaPath: mediaPath}
}

func (h *EpisodesHandler) List(w http.ResponseWriter, r *http.Request) {
	episodes, err := h.db.ListEpisodes()
	if err != nil {
		jsonError(w, "failed to list episodes", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, episodes, http.StatusOK)
}

func (h *EpisodesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ep, err := h.db.GetEpisode(chi.URLParam(r, "guid"))
	if err != nil {
		jsonError(w, "episode not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, ep, http.StatusOK)
}

// Upsert registers or updates an episode's feed-supplied metadata.
func (h *EpisodesHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var ep models.Episode
	if err := json.NewDecoder(r.Body).Decode(&ep); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if ep.GUID == "" {
		jsonError(w, "guid is required", http.StatusBadRequest)
		return
	}
	if err := h.db.UpsertEpisode(&ep); err != nil {
		jsonError(w, "failed to save episode", http.StatusInternalServerError)
		return
	}
	saved, err := h.db.GetEpisode(ep.GUID)
	if err != nil {
		jsonError(w, "failed to load episode", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, saved, http.StatusOK)
}

func (h *EpisodesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteEpisode(chi.URLParam(r, "guid")); err != nil {
		jsonError(w, "failed to delete episode", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

// Download starts fetching the episode's audio in the background. Completion
// fires the auto-transcribe trigger inside the download manager.
func (h *EpisodesHandler) Download(w http.ResponseWriter, r *http.Request) {
	guid := chi.URLParam(r, "guid")
	if _, err := h.db.GetEpisode(guid); err != nil {
		jsonError(w, "episode not found", http.StatusNotFound)
		return
	}

	go func() {
		if err := h.downloads.Download(context.Background(), guid); err != nil {
			log.Printf("[download] %s failed: %v", guid, err)
		}
	}()

	jsonResponse(w, map[string]string{"status": "downloading"}, http.StatusAccepted)
}

// MediaFiles lists audio files already present in the media directory.
func (h *EpisodesHandler) MediaFiles(w http.ResponseWriter, r *http.Request) {
	files, err := storage.ListAudioFiles(h.mediaPath)
	if err != nil {
		jsonError(w, "failed to scan media directory", http.StatusInternalServerError)
		return
	}
	if files == nil {
		files = []string{}
	}
	jsonResponse(w, files, http.StatusOK)
}
