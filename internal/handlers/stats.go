package handlers

import (
	"net/http"

	"glasstodo/internal/analytics"
)

// StatsResponse is the full analytics snapshot for the collection.
type StatsResponse struct {
	Total             int                       `json:"total"`
	Active            int                       `json:"active"`
	Completed         int                       `json:"completed"`
	Today             int                       `json:"today"`
	Overdue           int                       `json:"overdue"`
	CompletionRate    float64                   `json:"completion_rate"`
	CompletedThisWeek int                       `json:"completed_this_week"`
	CurrentStreak     int                       `json:"current_streak"`
	Categories        []analytics.CategoryCount `json:"categories"`
	Heatmap           []analytics.DayCount      `json:"heatmap"`
	MaxWeeklyCount    int                       `json:"max_weekly_count"`
	Message           string                    `json:"message"`
}

// Stats computes every analytics value at a single evaluation instant.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	tasks := h.svc.Tasks()
	now := h.now()

	heatmap := analytics.WeeklyHeatmap(tasks, now)
	categories := analytics.CategoryBreakdown(tasks)
	if categories == nil {
		categories = []analytics.CategoryCount{}
	}

	h.rngMu.Lock()
	message := analytics.Message(tasks, now, h.rng)
	h.rngMu.Unlock()

	respondJSON(w, http.StatusOK, StatsResponse{
		Total:             analytics.TotalCount(tasks),
		Active:            analytics.ActiveCount(tasks),
		Completed:         analytics.CompletedCount(tasks),
		Today:             analytics.TodayCount(tasks, now),
		Overdue:           analytics.OverdueCount(tasks, now),
		CompletionRate:    analytics.CompletionRate(tasks),
		CompletedThisWeek: analytics.CompletedThisWeek(tasks, now, analytics.DefaultWeekStart),
		CurrentStreak:     analytics.CurrentStreak(tasks, now),
		Categories:        categories,
		Heatmap:           heatmap,
		MaxWeeklyCount:    analytics.MaxWeeklyCount(heatmap),
		Message:           message,
	})
}
