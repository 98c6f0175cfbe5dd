// Package query resolves a view of the task collection: a smart list
// preset narrowed by category, free-text search, and focus mode, applied
// strictly in that order.
package query

import (
	"sort"
	"strings"
	"time"

	"glasstodo/internal/models"
)

// Request bundles the filter parameters for Resolve.
type Request struct {
	List     models.SmartList
	Category *models.Category
	Search   string
	Focus    bool
}

// Resolve applies the smart list, category, search, and focus stages and
// returns a new slice. The input is never modified, and each stage only
// narrows the previous one; ordering is decided by the smart list stage.
func Resolve(tasks []models.Task, req Request, now time.Time) []models.Task {
	result := filterList(tasks, req.List, now)

	if req.Category != nil {
		result = filterCategory(result, *req.Category)
	}

	if req.Search != "" {
		result = filterSearch(result, req.Search)
	}

	if req.Focus {
		result = filterActive(result)
	}

	return result
}

func filterList(tasks []models.Task, list models.SmartList, now time.Time) []models.Task {
	var result []models.Task

	switch list {
	case models.ListToday:
		for _, t := range tasks {
			if t.IsDueToday(now) && !t.IsDone {
				result = append(result, t)
			}
		}
		// Priority only; ties keep their original relative order.
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority > result[j].Priority
		})

	case models.ListCompleted:
		for _, t := range tasks {
			if t.IsDone {
				result = append(result, t)
			}
		}
		sort.SliceStable(result, func(i, j int) bool {
			return finishedAt(result[i]).After(finishedAt(result[j]))
		})

	default: // models.ListAll
		for _, t := range tasks {
			if !t.IsDone {
				result = append(result, t)
			}
		}
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].Priority != result[j].Priority {
				return result[i].Priority > result[j].Priority
			}
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	return result
}

// finishedAt falls back to the creation time for done tasks that predate
// completion tracking.
func finishedAt(t models.Task) time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return t.CreatedAt
}

func filterCategory(tasks []models.Task, cat models.Category) []models.Task {
	var result []models.Task
	for _, t := range tasks {
		if t.Category == cat {
			result = append(result, t)
		}
	}
	return result
}

func filterSearch(tasks []models.Task, search string) []models.Task {
	q := strings.ToLower(search)
	var result []models.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) {
			result = append(result, t)
		}
	}
	return result
}

func filterActive(tasks []models.Task) []models.Task {
	var result []models.Task
	for _, t := range tasks {
		if !t.IsDone {
			result = append(result, t)
		}
	}
	return result
}
