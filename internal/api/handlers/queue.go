package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podscribe/backend/internal/queue"
)

type QueueHandler struct {
	queue *queue.Queue
}

func NewQueueHandler(q *queue.Queue) *QueueHandler {
	return &QueueHandler{queue: q}
}

func (h *QueueHandler) Status(w http.ResponseWriter, r *http.Request) {
	_, total, _ := h.queue.Position("")
	jsonResponse(w, map[string]interface{}{
		"processing": h.queue.Processing(),
		"queued":     total,
	}, http.StatusOK)
}

// Position returns the episode's 1-based place among queued items; the
// in-flight episode is never included.
func (h *QueueHandler) Position(w http.ResponseWriter, r *http.Request) {
	pos, total, queued := h.queue.Position(chi.URLParam(r, "guid"))
	jsonResponse(w, map[string]interface{}{
		"queued":   queued,
		"position": pos,
		"total":    total,
	}, http.StatusOK)
}
