package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CreateSubtask appends a subtask to a task.
func (h *Handlers) CreateSubtask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.svc.AddSubtask(id, req.Title)
	h.respondTask(w, id)
}

// ToggleSubtask flips a subtask's completion status.
func (h *Handlers) ToggleSubtask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	h.svc.ToggleSubtask(id, chi.URLParam(r, "subtaskID"))
	h.respondTask(w, id)
}

// DeleteSubtask removes a subtask from its parent task.
func (h *Handlers) DeleteSubtask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	h.svc.DeleteSubtask(id, chi.URLParam(r, "subtaskID"))
	h.respondTask(w, id)
}
