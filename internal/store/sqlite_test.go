package store

import (
	"testing"
	"time"

	"glasstodo/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTasks() []models.Task {
	created := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	due := time.Date(2024, 3, 22, 18, 0, 0, 0, time.UTC)
	completed := time.Date(2024, 3, 20, 11, 30, 0, 0, time.UTC)

	return []models.Task{
		{
			ID:        "t1",
			Title:     "Write report",
			Category:  models.CategoryWork,
			Priority:  models.PriorityHigh,
			DueDate:   &due,
			CreatedAt: created,
			Notes:     "quarterly numbers",
			Subtasks: []models.Subtask{
				{ID: "s1", Title: "Collect data"},
				{ID: "s2", Title: "Draft", IsDone: true},
			},
		},
		{
			ID:          "t2",
			Title:       "Morning run",
			IsDone:      true,
			Category:    models.CategoryHealth,
			Priority:    models.PriorityLow,
			CreatedAt:   created.Add(-time.Hour),
			CompletedAt: &completed,
		},
	}
}

func TestLoadTasksEmptyDatabase(t *testing.T) {
	store := setupTestDB(t)

	if got := store.LoadTasks(); len(got) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(got))
	}
}

func TestSaveAndLoadTasks(t *testing.T) {
	store := setupTestDB(t)
	want := sampleTasks()

	store.SaveTasks(want)
	got := store.LoadTasks()

	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("position %d: expected %s, got %s (order must survive)", i, want[i].ID, got[i].ID)
		}
	}

	first := got[0]
	if first.Title != "Write report" || first.Category != models.CategoryWork || first.Priority != models.PriorityHigh {
		t.Errorf("task fields not round-tripped: %+v", first)
	}
	if first.Notes != "quarterly numbers" {
		t.Errorf("notes = %q", first.Notes)
	}
	if first.DueDate == nil || !first.DueDate.Equal(*want[0].DueDate) {
		t.Errorf("due date not round-tripped: %v", first.DueDate)
	}
	if !first.CreatedAt.Equal(want[0].CreatedAt) {
		t.Errorf("createdAt not round-tripped: %v", first.CreatedAt)
	}
	if len(first.Subtasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(first.Subtasks))
	}
	if first.Subtasks[0].ID != "s1" || first.Subtasks[1].ID != "s2" {
		t.Error("subtask order must survive")
	}
	if !first.Subtasks[1].IsDone {
		t.Error("subtask done flag not round-tripped")
	}

	second := got[1]
	if !second.IsDone || second.CompletedAt == nil || !second.CompletedAt.Equal(*want[1].CompletedAt) {
		t.Errorf("completion state not round-tripped: %+v", second)
	}
	if second.DueDate != nil {
		t.Error("expected absent due date to stay absent")
	}
}

func TestSaveTasksReplacesPriorState(t *testing.T) {
	store := setupTestDB(t)
	store.SaveTasks(sampleTasks())

	replacement := []models.Task{
		{
			ID:        "t3",
			Title:     "Only survivor",
			Category:  models.CategoryPersonal,
			Priority:  models.PriorityMedium,
			CreatedAt: time.Date(2024, 3, 21, 8, 0, 0, 0, time.UTC),
		},
	}
	store.SaveTasks(replacement)

	got := store.LoadTasks()
	if len(got) != 1 {
		t.Fatalf("expected 1 task after replace, got %d", len(got))
	}
	if got[0].ID != "t3" {
		t.Errorf("expected t3, got %s", got[0].ID)
	}

	// Old subtasks must not linger either.
	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM subtasks`).Scan(&count); err != nil {
		t.Fatalf("count subtasks: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 subtask rows, got %d", count)
	}
}

func TestSaveTasksEmptyCollection(t *testing.T) {
	store := setupTestDB(t)
	store.SaveTasks(sampleTasks())
	store.SaveTasks(nil)

	if got := store.LoadTasks(); len(got) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(got))
	}
}

func TestLoadTasksRejectsUnknownCategory(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.db.Exec(`
		INSERT INTO tasks (id, title, done, category, priority, created_at, notes, position)
		VALUES ('bad', 'Tampered', FALSE, 'Chores', 'low', ?, '', 0)
	`, time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("insert row: %v", err)
	}

	// Decode failures are swallowed and yield an empty collection.
	if got := store.LoadTasks(); len(got) != 0 {
		t.Errorf("expected empty collection for undecodable state, got %d tasks", len(got))
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store := setupTestDB(t)

	if got := store.LoadProfile(); got != nil {
		t.Errorf("expected nil profile before save, got %+v", got)
	}

	want := models.UserProfile{DisplayName: "Ada", SelectedTheme: models.ThemeSoftGlass}
	store.SaveProfile(want)

	got := store.LoadProfile()
	if got == nil {
		t.Fatal("expected profile after save")
	}
	if *got != want {
		t.Errorf("profile = %+v, want %+v", *got, want)
	}
}

func TestThemeDefaultsToSystem(t *testing.T) {
	store := setupTestDB(t)

	if got := store.LoadTheme(); got != models.ThemeSystem {
		t.Errorf("expected System default, got %v", got)
	}

	store.SaveTheme(models.ThemeDark)
	if got := store.LoadTheme(); got != models.ThemeDark {
		t.Errorf("expected Dark, got %v", got)
	}
}

func TestThemeUnrecognizedValueFallsBack(t *testing.T) {
	store := setupTestDB(t)

	if err := store.setSetting(keyTheme, "Neon"); err != nil {
		t.Fatalf("setSetting: %v", err)
	}
	if got := store.LoadTheme(); got != models.ThemeSystem {
		t.Errorf("expected System fallback, got %v", got)
	}
}

func TestOnboardingFlag(t *testing.T) {
	store := setupTestDB(t)

	if store.OnboardingDone() {
		t.Error("expected onboarding to default to false")
	}

	store.SetOnboardingDone(true)
	if !store.OnboardingDone() {
		t.Error("expected onboarding flag to persist")
	}

	store.SetOnboardingDone(false)
	if store.OnboardingDone() {
		t.Error("expected onboarding flag to be cleared")
	}
}

func TestResetAll(t *testing.T) {
	store := setupTestDB(t)
	store.SaveTasks(sampleTasks())
	store.SaveProfile(models.UserProfile{DisplayName: "Ada", SelectedTheme: models.ThemeDark})
	store.SaveTheme(models.ThemeDark)
	store.SetOnboardingDone(true)

	store.ResetAll()

	if got := store.LoadTasks(); len(got) != 0 {
		t.Errorf("expected no tasks after reset, got %d", len(got))
	}
	if got := store.LoadProfile(); got != nil {
		t.Errorf("expected no profile after reset, got %+v", got)
	}
	if got := store.LoadTheme(); got != models.ThemeSystem {
		t.Errorf("expected theme back to System, got %v", got)
	}
	if store.OnboardingDone() {
		t.Error("expected onboarding flag cleared")
	}
}
