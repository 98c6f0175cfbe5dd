package store

import "glasstodo/internal/models"

// Store is the persistence port consumed by the task service.
//
// Implementations own their failure handling: loads fall back to zero
// values and saves are fire-and-forget, logged by the implementation and
// never surfaced to callers. The in-memory collection stays
// authoritative either way.
type Store interface {
	// LoadTasks returns the persisted collection in its stored order,
	// or an empty collection when none exists or the read fails.
	LoadTasks() []models.Task
	// SaveTasks atomically replaces the persisted collection.
	SaveTasks(tasks []models.Task)

	LoadProfile() *models.UserProfile
	SaveProfile(profile models.UserProfile)

	// LoadTheme returns the saved theme, or ThemeSystem when unset.
	LoadTheme() models.Theme
	SaveTheme(theme models.Theme)

	OnboardingDone() bool
	SetOnboardingDone(done bool)

	// ResetAll clears tasks, profile, theme, and the onboarding flag.
	ResetAll()

	Close() error
}
