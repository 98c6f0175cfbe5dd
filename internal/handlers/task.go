package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"glasstodo/internal/models"
	"glasstodo/internal/query"
)

// ListTasks resolves the collection through the query pipeline: smart
// list, then category, search, and focus narrowing.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	req := query.Request{List: models.ListAll}
	q := r.URL.Query()

	if v := q.Get("list"); v != "" {
		list, err := models.ParseSmartList(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.List = list
	}

	if v := q.Get("category"); v != "" {
		cat, err := models.ParseCategory(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Category = &cat
	}

	req.Search = q.Get("q")
	req.Focus = q.Get("focus") == "1" || q.Get("focus") == "true"

	result := query.Resolve(h.svc.Tasks(), req, h.now())
	if result == nil {
		result = []models.Task{}
	}
	respondJSON(w, http.StatusOK, result)
}

type createTaskRequest struct {
	Title    string     `json:"title"`
	Category string     `json:"category"`
	Priority string     `json:"priority"`
	DueDate  *time.Time `json:"due_date"`
	Notes    string     `json:"notes"`
	Subtasks []struct {
		Title string `json:"title"`
		Done  bool   `json:"done"`
	} `json:"subtasks"`
}

// CreateTask adds a new task to the front of the collection.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	category := models.CategoryPersonal
	if req.Category != "" {
		cat, err := models.ParseCategory(req.Category)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		category = cat
	}

	priority := models.PriorityMedium
	if req.Priority != "" {
		p, err := models.ParsePriority(req.Priority)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		priority = p
	}

	var subtasks []models.Subtask
	for _, sub := range req.Subtasks {
		subtasks = append(subtasks, models.Subtask{Title: sub.Title, IsDone: sub.Done})
	}

	task := h.svc.Add(req.Title, category, priority, req.DueDate, subtasks, req.Notes)
	if task == nil {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

type updateTaskRequest struct {
	Title    *string `json:"title"`
	Category *string `json:"category"`
	Priority *string `json:"priority"`
	Notes    *string `json:"notes"`
}

// UpdateTask applies any combination of rename, category, priority, and
// notes changes. Unknown IDs are no-ops per the engine contract; the
// response is 204 when the task does not exist.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.Category != nil {
		cat, err := models.ParseCategory(*req.Category)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.svc.SetCategory(id, cat)
	}

	if req.Priority != nil {
		p, err := models.ParsePriority(*req.Priority)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.svc.SetPriority(id, p)
	}

	if req.Title != nil {
		h.svc.Rename(id, *req.Title)
	}

	if req.Notes != nil {
		h.svc.SetNotes(id, *req.Notes)
	}

	h.respondTask(w, id)
}

// DeleteTask removes a task. Deleting an unknown ID still succeeds.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	h.svc.Delete(taskID(r))
	w.WriteHeader(http.StatusOK)
}

// ToggleTask flips a task's completion status.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	h.svc.ToggleDone(id)
	h.respondTask(w, id)
}

func (h *Handlers) respondTask(w http.ResponseWriter, id string) {
	task, ok := h.svc.Get(id)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, task)
}
