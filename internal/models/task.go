package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category assigns a task to one of a fixed set of life areas.
type Category string

const (
	CategoryPersonal Category = "Personal"
	CategoryWork     Category = "Work"
	CategoryHealth   Category = "Health"
	CategoryLearning Category = "Learning"
	CategoryErrands  Category = "Errands"
)

// Categories returns every category in its fixed enumeration order.
func Categories() []Category {
	return []Category{
		CategoryPersonal,
		CategoryWork,
		CategoryHealth,
		CategoryLearning,
		CategoryErrands,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryHealth, CategoryLearning, CategoryErrands:
		return true
	}
	return false
}

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Priority orders tasks by urgency: Low < Medium < High.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// String returns the lowercase name used in JSON and storage.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	}
	return "unknown"
}

// Valid reports whether p is one of the three defined levels.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// ParsePriority parses a priority name, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(s) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("priority must be 'high', 'medium', or 'low'")
}

func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Subtask is a checklist item inside a task. Its ID is unique within the
// parent task only; it has no lifecycle of its own.
type Subtask struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	IsDone bool   `json:"done"`
}

// Task is a single tracked task. ID and CreatedAt are set once at
// creation and never change; CompletedAt is present exactly when IsDone
// is true.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	IsDone      bool       `json:"done"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Subtasks    []Subtask  `json:"subtasks,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// IsOverdue reports whether the task has a due date strictly before now
// and is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.IsDone || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}

// IsDueToday reports whether the due date falls on the same calendar day
// as now, in now's location.
func (t *Task) IsDueToday(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	y1, m1, d1 := t.DueDate.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SubtaskProgress returns the completed fraction of subtasks, 0 when
// there are none.
func (t *Task) SubtaskProgress() float64 {
	if len(t.Subtasks) == 0 {
		return 0
	}
	done := 0
	for _, s := range t.Subtasks {
		if s.IsDone {
			done++
		}
	}
	return float64(done) / float64(len(t.Subtasks))
}

// HasSubtasks reports whether the task has at least one subtask.
func (t *Task) HasSubtasks() bool {
	return len(t.Subtasks) > 0
}

// Equal compares all fields by value, including subtasks in order.
func (t Task) Equal(o Task) bool {
	if t.ID != o.ID || t.Title != o.Title || t.IsDone != o.IsDone ||
		t.Category != o.Category || t.Priority != o.Priority || t.Notes != o.Notes {
		return false
	}
	if !t.CreatedAt.Equal(o.CreatedAt) ||
		!timePtrEqual(t.DueDate, o.DueDate) ||
		!timePtrEqual(t.CompletedAt, o.CompletedAt) {
		return false
	}
	if len(t.Subtasks) != len(o.Subtasks) {
		return false
	}
	for i := range t.Subtasks {
		if t.Subtasks[i] != o.Subtasks[i] {
			return false
		}
	}
	return true
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
