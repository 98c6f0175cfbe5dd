package analytics

import (
	"fmt"
	"math/rand"
	"time"

	"glasstodo/internal/models"
)

var quotes = []string{
	"Small steps every day lead to big changes.",
	"Focus on progress, not perfection.",
	"The secret of getting ahead is getting started.",
	"One task at a time. You've got this.",
	"Discipline is choosing what you want most over what you want now.",
	"Done is better than perfect.",
}

var celebrations = []string{
	"🎉 All tasks complete! Take a well-deserved break.",
	"✨ Inbox zero achieved. You're amazing!",
	"🏆 Everything's done. What a productive day!",
	"💪 All clear! Time to set new goals.",
}

// Message picks a contextual message for the collection state. Rules
// are checked in order and the first match wins. rng drives the random
// pools; callers seed it for deterministic output in tests.
func Message(tasks []models.Task, now time.Time, rng *rand.Rand) string {
	if len(tasks) == 0 {
		return quotes[rng.Intn(len(quotes))]
	}
	if ActiveCount(tasks) == 0 && CompletedCount(tasks) > 0 {
		return celebrations[rng.Intn(len(celebrations))]
	}
	if streak := CurrentStreak(tasks, now); streak >= 7 {
		return fmt.Sprintf("🔥 %d-day streak! You're unstoppable.", streak)
	}
	if overdue := OverdueCount(tasks, now); overdue > 0 {
		return fmt.Sprintf("You have %d overdue — tackle them first!", overdue)
	}
	if today := TodayCount(tasks, now); today > 0 {
		if today == 1 {
			return "1 task due today. You got this!"
		}
		return fmt.Sprintf("%d tasks due today. You got this!", today)
	}
	return quotes[rng.Intn(len(quotes))]
}
