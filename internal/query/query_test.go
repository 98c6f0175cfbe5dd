package query

import (
	"testing"
	"time"

	"glasstodo/internal/models"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func task(id, title string, priority models.Priority, createdAt time.Time) models.Task {
	return models.Task{
		ID:        id,
		Title:     title,
		Category:  models.CategoryPersonal,
		Priority:  priority,
		CreatedAt: createdAt,
	}
}

func doneTask(id, title string, completedAt time.Time) models.Task {
	c := completedAt
	return models.Task{
		ID:          id,
		Title:       title,
		IsDone:      true,
		Category:    models.CategoryPersonal,
		Priority:    models.PriorityMedium,
		CreatedAt:   testNow.Add(-48 * time.Hour),
		CompletedAt: &c,
	}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func assertOrder(t *testing.T, got []models.Task, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d (%v)", len(want), len(got), ids(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i].ID)
		}
	}
}

func TestAllListPriorityDominatesRecency(t *testing.T) {
	older := testNow.Add(-2 * time.Hour)
	newer := testNow.Add(-1 * time.Hour)

	tasks := []models.Task{
		task("b", "B", models.PriorityMedium, newer),
		task("a", "A", models.PriorityHigh, older),
	}

	got := Resolve(tasks, Request{List: models.ListAll}, testNow)
	assertOrder(t, got, "a", "b")
}

func TestAllListRecencyBreaksTies(t *testing.T) {
	tasks := []models.Task{
		task("old", "Old", models.PriorityMedium, testNow.Add(-3*time.Hour)),
		task("new", "New", models.PriorityMedium, testNow.Add(-1*time.Hour)),
	}

	got := Resolve(tasks, Request{List: models.ListAll}, testNow)
	assertOrder(t, got, "new", "old")
}

func TestAllListExcludesDone(t *testing.T) {
	tasks := []models.Task{
		task("a", "A", models.PriorityHigh, testNow),
		doneTask("d", "D", testNow),
	}

	got := Resolve(tasks, Request{List: models.ListAll}, testNow)
	assertOrder(t, got, "a")
}

func TestTodayListFiltersAndSortsByPriority(t *testing.T) {
	today := time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2024, 3, 21, 9, 0, 0, 0, time.UTC)

	low := task("low", "Low", models.PriorityLow, testNow.Add(-time.Hour))
	low.DueDate = &today
	high := task("high", "High", models.PriorityHigh, testNow.Add(-2*time.Hour))
	high.DueDate = &today
	later := task("later", "Later", models.PriorityHigh, testNow)
	later.DueDate = &tomorrow
	doneToday := doneTask("done", "Done", testNow)
	doneToday.DueDate = &today

	got := Resolve([]models.Task{low, high, later, doneToday}, Request{List: models.ListToday}, testNow)
	assertOrder(t, got, "high", "low")
}

func TestTodayListStableOnPriorityTies(t *testing.T) {
	today := time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC)

	first := task("first", "First", models.PriorityMedium, testNow.Add(-time.Hour))
	first.DueDate = &today
	second := task("second", "Second", models.PriorityMedium, testNow)
	second.DueDate = &today

	got := Resolve([]models.Task{first, second}, Request{List: models.ListToday}, testNow)
	assertOrder(t, got, "first", "second")
}

func TestCompletedListNewestFirstWithFallback(t *testing.T) {
	early := doneTask("early", "Early", testNow.Add(-4*time.Hour))
	late := doneTask("late", "Late", testNow.Add(-1*time.Hour))

	// Done but never stamped; falls back to its creation time.
	legacy := doneTask("legacy", "Legacy", testNow)
	legacy.CompletedAt = nil
	legacy.CreatedAt = testNow.Add(-2 * time.Hour)

	got := Resolve([]models.Task{early, legacy, late}, Request{List: models.ListCompleted}, testNow)
	assertOrder(t, got, "late", "legacy", "early")
}

func TestCategoryStage(t *testing.T) {
	work := task("w", "Report", models.PriorityMedium, testNow)
	work.Category = models.CategoryWork
	personal := task("p", "Groceries", models.PriorityMedium, testNow)

	cat := models.CategoryWork
	got := Resolve([]models.Task{work, personal}, Request{List: models.ListAll, Category: &cat}, testNow)
	assertOrder(t, got, "w")

	// No selection passes everything through.
	got = Resolve([]models.Task{work, personal}, Request{List: models.ListAll}, testNow)
	if len(got) != 2 {
		t.Errorf("expected 2 tasks without category filter, got %d", len(got))
	}
}

func TestSearchStageCaseInsensitiveSubstring(t *testing.T) {
	tasks := []models.Task{
		task("milk", "Buy Milk", models.PriorityMedium, testNow),
		task("call", "Call mom", models.PriorityMedium, testNow),
	}

	got := Resolve(tasks, Request{List: models.ListAll, Search: "mILk"}, testNow)
	assertOrder(t, got, "milk")

	got = Resolve(tasks, Request{List: models.ListAll, Search: ""}, testNow)
	if len(got) != 2 {
		t.Errorf("expected empty search to pass all tasks, got %d", len(got))
	}
}

func TestSearchStageWhitespaceMatchesLiterally(t *testing.T) {
	tasks := []models.Task{
		task("spaced", "Buy milk", models.PriorityMedium, testNow),
		task("single", "Groceries", models.PriorityMedium, testNow),
	}

	got := Resolve(tasks, Request{List: models.ListAll, Search: " "}, testNow)
	assertOrder(t, got, "spaced")
}

func TestFocusStageHidesDone(t *testing.T) {
	active := task("a", "Active", models.PriorityMedium, testNow)
	done := doneTask("d", "Done", testNow)

	got := Resolve([]models.Task{active, done}, Request{List: models.ListCompleted, Focus: true}, testNow)
	if len(got) != 0 {
		t.Errorf("expected focus mode to hide done tasks, got %d", len(got))
	}

	got = Resolve([]models.Task{active, done}, Request{List: models.ListAll, Focus: true}, testNow)
	assertOrder(t, got, "a")
}

func TestResolveEmptyInput(t *testing.T) {
	for _, list := range []models.SmartList{models.ListAll, models.ListToday, models.ListCompleted} {
		if got := Resolve(nil, Request{List: list}, testNow); len(got) != 0 {
			t.Errorf("list %s: expected empty output, got %d tasks", list, len(got))
		}
	}
}

func TestResolveIsPure(t *testing.T) {
	cat := models.CategoryPersonal
	req := Request{List: models.ListAll, Category: &cat, Search: "a", Focus: true}
	tasks := []models.Task{
		task("a1", "Alpha", models.PriorityHigh, testNow.Add(-time.Hour)),
		task("a2", "Again", models.PriorityLow, testNow),
		doneTask("d", "Away", testNow),
	}

	first := Resolve(tasks, req, testNow)
	second := Resolve(tasks, req, testNow)

	if len(first) != len(second) {
		t.Fatalf("repeated resolve differed in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("position %d differs between identical calls", i)
		}
	}

	// The input order must survive resolution.
	if tasks[0].ID != "a1" || tasks[1].ID != "a2" || tasks[2].ID != "d" {
		t.Error("Resolve modified its input slice")
	}
}
