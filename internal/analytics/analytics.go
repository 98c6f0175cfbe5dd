// Package analytics computes derived statistics over the task
// collection. Every function is pure: it takes the full collection plus
// an evaluation instant and holds no state of its own.
package analytics

import (
	"time"

	"glasstodo/internal/models"
)

// DefaultWeekStart is the week boundary used when no preference applies.
const DefaultWeekStart = time.Monday

// TotalCount returns the collection size.
func TotalCount(tasks []models.Task) int {
	return len(tasks)
}

// ActiveCount counts tasks that are not done.
func ActiveCount(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.IsDone {
			n++
		}
	}
	return n
}

// CompletedCount counts tasks that are done.
func CompletedCount(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if t.IsDone {
			n++
		}
	}
	return n
}

// TodayCount counts tasks due on now's calendar day and not yet done.
func TodayCount(tasks []models.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.IsDueToday(now) && !t.IsDone {
			n++
		}
	}
	return n
}

// OverdueCount counts tasks whose due date has passed without completion.
func OverdueCount(tasks []models.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.IsOverdue(now) {
			n++
		}
	}
	return n
}

// CompletionRate returns completed/total, or 0 for an empty collection.
func CompletionRate(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	return float64(CompletedCount(tasks)) / float64(len(tasks))
}

// CompletedThisWeek counts done tasks finished on or after the start of
// the current week. Tasks without a completion timestamp fall back to
// their creation time.
func CompletedThisWeek(tasks []models.Task, now time.Time, weekStart time.Weekday) int {
	start := startOfWeek(now, weekStart)
	n := 0
	for _, t := range tasks {
		if !t.IsDone {
			continue
		}
		ts := t.CreatedAt
		if t.CompletedAt != nil {
			ts = *t.CompletedAt
		}
		if !ts.Before(start) {
			n++
		}
	}
	return n
}

// CategoryCount is one entry of the category breakdown.
type CategoryCount struct {
	Category models.Category `json:"category"`
	Count    int             `json:"count"`
}

// CategoryBreakdown counts not-done tasks per category, in enumeration
// order. Categories with no active tasks are omitted.
func CategoryBreakdown(tasks []models.Task) []CategoryCount {
	var result []CategoryCount
	for _, cat := range models.Categories() {
		n := 0
		for _, t := range tasks {
			if t.Category == cat && !t.IsDone {
				n++
			}
		}
		if n > 0 {
			result = append(result, CategoryCount{Category: cat, Count: n})
		}
	}
	return result
}

// CurrentStreak counts consecutive calendar days with at least one
// completion, walking backward from today. A day without completions
// ends the streak, so a streak is 0 until something is completed today.
func CurrentStreak(tasks []models.Task, now time.Time) int {
	days := make(map[time.Time]struct{})
	for _, t := range tasks {
		if t.CompletedAt != nil {
			days[startOfDay(t.CompletedAt.In(now.Location()))] = struct{}{}
		}
	}

	streak := 0
	day := startOfDay(now)
	for {
		if _, ok := days[day]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// DayCount is one heatmap bucket: a short weekday label and the number
// of tasks completed that day.
type DayCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WeeklyHeatmap buckets completions over the 7 calendar days ending
// today, oldest first. It always returns exactly 7 buckets.
func WeeklyHeatmap(tasks []models.Task, now time.Time) []DayCount {
	today := startOfDay(now)
	buckets := make([]DayCount, 0, 7)
	for daysAgo := 6; daysAgo >= 0; daysAgo-- {
		day := today.AddDate(0, 0, -daysAgo)
		n := 0
		for _, t := range tasks {
			if t.CompletedAt == nil {
				continue
			}
			if startOfDay(t.CompletedAt.In(now.Location())).Equal(day) {
				n++
			}
		}
		buckets = append(buckets, DayCount{Label: day.Weekday().String()[:3], Count: n})
	}
	return buckets
}

// MaxWeeklyCount returns the largest heatmap bucket, floored at 1 so
// consumers can divide by it.
func MaxWeeklyCount(buckets []DayCount) int {
	max := 1
	for _, b := range buckets {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfWeek(now time.Time, weekStart time.Weekday) time.Time {
	day := startOfDay(now)
	back := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -back)
}
