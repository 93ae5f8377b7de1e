package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/llm"
)

type SettingsHandler struct {
	db         *db.Database
	capability llm.Capability
}

func NewSettingsHandler(database *db.Database, capability llm.Capability) *SettingsHandler {
	return &SettingsHandler{db: database, capability: capability}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]interface{}{
		"auto_transcribe": h.db.GetSetting("auto_transcribe", "false") == "true",
		"capability":      h.capability,
	}, http.StatusOK)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AutoTranscribe *bool `json:"auto_transcribe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.AutoTranscribe != nil {
		val := "false"
		if *req.AutoTranscribe {
			val = "true"
		}
		if err := h.db.SetSetting("auto_transcribe", val); err != nil {
			jsonError(w, "failed to save setting", http.StatusInternalServerError)
			return
		}
	}
	h.Get(w, r)
}
