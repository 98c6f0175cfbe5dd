package handlers

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"glasstodo/internal/store"
	"glasstodo/internal/tasks"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	svc   *tasks.Service
	store store.Store
	now   func() time.Time

	// rngMu guards rng: *rand.Rand is not goroutine-safe and requests
	// run concurrently.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a new Handlers instance.
func New(svc *tasks.Service, s store.Store) *Handlers {
	return &Handlers{
		svc:   svc,
		store: s,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Routes returns the API router.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.CreateTask)
	r.Put("/tasks/{id}", h.UpdateTask)
	r.Delete("/tasks/{id}", h.DeleteTask)
	r.Post("/tasks/{id}/toggle", h.ToggleTask)

	r.Post("/tasks/{id}/subtasks", h.CreateSubtask)
	r.Post("/tasks/{id}/subtasks/{subtaskID}/toggle", h.ToggleSubtask)
	r.Delete("/tasks/{id}/subtasks/{subtaskID}", h.DeleteSubtask)

	r.Get("/stats", h.Stats)

	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
	r.Get("/theme", h.GetTheme)
	r.Put("/theme", h.UpdateTheme)
	r.Get("/onboarding", h.GetOnboarding)
	r.Post("/onboarding", h.SetOnboarding)
	r.Post("/reset", h.Reset)

	return r
}

// taskID extracts the task ID from URL parameters.
func taskID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func respondJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}
