// Package tasks holds the mutable task collection and its mutation
// operations. The service is the only component allowed to modify the
// collection; every mutation is persisted synchronously before it
// returns.
package tasks

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"glasstodo/internal/models"
	"glasstodo/internal/store"
)

// Service owns the task collection. New tasks go to the front, so the
// stored order is most-recent-first independent of query-time sorting.
//
// Mutations with an unknown ID are silent no-ops: the engine never
// reports not-found to callers. All methods are safe for concurrent
// use; the HTTP layer serves each request on its own goroutine.
type Service struct {
	mu    sync.Mutex
	store store.Store
	tasks []models.Task
	now   func() time.Time
}

// NewService loads the persisted collection from s.
func NewService(s store.Store) *Service {
	return &Service{
		store: s,
		tasks: s.LoadTasks(),
		now:   time.Now,
	}
}

// Tasks returns a snapshot of the collection in store order. Callers may
// freely modify the returned tasks without affecting the service.
func (s *Service) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Get returns a copy of the task with the given ID.
func (s *Service) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Task{}, false
	}
	return cloneTask(s.tasks[i]), true
}

// Add creates a task at the front of the collection and returns a copy
// of it. It returns nil without changing anything when the title is
// empty after trimming. Subtask titles are trimmed too; empty ones are
// dropped and each survivor gets a fresh ID.
func (s *Service) Add(title string, category models.Category, priority models.Priority, dueDate *time.Time, subtasks []models.Subtask, notes string) *models.Task {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := models.Task{
		ID:        uuid.NewString(),
		Title:     trimmed,
		Category:  category,
		Priority:  priority,
		DueDate:   dueDate,
		CreatedAt: s.now(),
		Subtasks:  newSubtasks(subtasks),
		Notes:     notes,
	}

	s.tasks = append([]models.Task{task}, s.tasks...)
	s.persist()

	out := cloneTask(task)
	return &out
}

// ToggleDone flips completion and keeps the completion timestamp in
// sync: set when transitioning to done, cleared when reopening.
func (s *Service) ToggleDone(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return
	}

	task := &s.tasks[i]
	task.IsDone = !task.IsDone
	if task.IsDone {
		now := s.now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	s.persist()
}

// Rename sets a new trimmed title. An empty-after-trim title is
// rejected, keeping the previous one.
func (s *Service) Rename(id, title string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return
	}
	s.tasks[i].Title = trimmed
	s.persist()
}

// SetCategory moves the task to another category. Unknown categories
// are rejected like unknown IDs.
func (s *Service) SetCategory(id string, category models.Category) {
	if !category.Valid() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return
	}
	s.tasks[i].Category = category
	s.persist()
}

// SetPriority changes the task's priority. Out-of-range priorities are
// rejected like unknown IDs.
func (s *Service) SetPriority(id string, priority models.Priority) {
	if !priority.Valid() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return
	}
	s.tasks[i].Priority = priority
	s.persist()
}

// SetNotes replaces the task's free-text notes.
func (s *Service) SetNotes(id, notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return
	}
	s.tasks[i].Notes = notes
	s.persist()
}

// Delete removes the task from the collection.
func (s *Service) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persist()
}

// AddSubtask appends a subtask with a trimmed title. Empty titles are
// rejected.
func (s *Service) AddSubtask(taskID, title string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(taskID)
	if i < 0 {
		return
	}
	s.tasks[i].Subtasks = append(s.tasks[i].Subtasks, models.Subtask{
		ID:    uuid.NewString(),
		Title: trimmed,
	})
	s.persist()
}

// ToggleSubtask flips a subtask's completion.
func (s *Service) ToggleSubtask(taskID, subtaskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(taskID)
	if i < 0 {
		return
	}
	for j := range s.tasks[i].Subtasks {
		if s.tasks[i].Subtasks[j].ID == subtaskID {
			s.tasks[i].Subtasks[j].IsDone = !s.tasks[i].Subtasks[j].IsDone
			s.persist()
			return
		}
	}
}

// DeleteSubtask removes a subtask from its parent task.
func (s *Service) DeleteSubtask(taskID, subtaskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(taskID)
	if i < 0 {
		return
	}
	subs := s.tasks[i].Subtasks
	for j := range subs {
		if subs[j].ID == subtaskID {
			s.tasks[i].Subtasks = append(subs[:j], subs[j+1:]...)
			s.persist()
			return
		}
	}
}

// Reset drops the in-memory collection. The caller is responsible for
// clearing the backing store first.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
}

// index and persist require s.mu to be held.
func (s *Service) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) persist() {
	s.store.SaveTasks(s.tasks)
}

func newSubtasks(subs []models.Subtask) []models.Subtask {
	var out []models.Subtask
	for _, sub := range subs {
		title := strings.TrimSpace(sub.Title)
		if title == "" {
			continue
		}
		out = append(out, models.Subtask{
			ID:     uuid.NewString(),
			Title:  title,
			IsDone: sub.IsDone,
		})
	}
	return out
}

func cloneTask(t models.Task) models.Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		t.CompletedAt = &completed
	}
	if len(t.Subtasks) > 0 {
		subs := make([]models.Subtask, len(t.Subtasks))
		copy(subs, t.Subtasks)
		t.Subtasks = subs
	}
	return t
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i := range tasks {
		out[i] = cloneTask(tasks[i])
	}
	return out
}
