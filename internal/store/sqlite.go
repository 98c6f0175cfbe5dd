package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"glasstodo/internal/models"
)

// Settings keys.
const (
	keyProfile    = "profile"
	keyTheme      = "theme"
	keyOnboarding = "onboarding_done"
)

// SQLiteStore implements the Store interface using SQLite. Failures are
// logged here and swallowed, per the port contract.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given database path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		done BOOLEAN NOT NULL DEFAULT FALSE,
		category TEXT NOT NULL,
		priority TEXT NOT NULL CHECK(priority IN ('high', 'medium', 'low')),
		due_date DATETIME,
		created_at DATETIME NOT NULL,
		completed_at DATETIME,
		notes TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS subtasks (
		id TEXT NOT NULL,
		task_id TEXT NOT NULL,
		title TEXT NOT NULL,
		done BOOLEAN NOT NULL DEFAULT FALSE,
		position INTEGER NOT NULL,
		PRIMARY KEY (task_id, id),
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position);
	CREATE INDEX IF NOT EXISTS idx_subtasks_task_id ON subtasks(task_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadTasks returns the persisted collection, or an empty collection on
// any read failure.
func (s *SQLiteStore) LoadTasks() []models.Task {
	tasks, err := s.loadTasks()
	if err != nil {
		log.Printf("store: load tasks failed: %v", err)
		return nil
	}
	return tasks
}

// SaveTasks replaces the persisted collection in a single transaction,
// so readers never observe a partial write.
func (s *SQLiteStore) SaveTasks(tasks []models.Task) {
	if err := s.saveTasks(tasks); err != nil {
		log.Printf("store: save tasks failed: %v", err)
	}
}

func (s *SQLiteStore) loadTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, title, done, category, priority, due_date, created_at, completed_at, notes
		FROM tasks ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		var priority string
		var dueDate, completedAt sql.NullTime

		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.IsDone,
			&task.Category,
			&priority,
			&dueDate,
			&task.CreatedAt,
			&completedAt,
			&task.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		task.Priority, err = models.ParsePriority(priority)
		if err != nil {
			return nil, fmt.Errorf("failed to parse priority: %w", err)
		}
		if !task.Category.Valid() {
			return nil, fmt.Errorf("unknown category: %q", task.Category)
		}
		if dueDate.Valid {
			t := dueDate.Time
			task.DueDate = &t
		}
		if completedAt.Valid {
			t := completedAt.Time
			task.CompletedAt = &t
		}

		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachSubtasks(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *SQLiteStore) attachSubtasks(tasks []models.Task) error {
	rows, err := s.db.Query(`
		SELECT task_id, id, title, done
		FROM subtasks ORDER BY task_id, position ASC
	`)
	if err != nil {
		return fmt.Errorf("failed to list subtasks: %w", err)
	}
	defer rows.Close()

	byTask := make(map[string][]models.Subtask)
	for rows.Next() {
		var taskID string
		var sub models.Subtask
		if err := rows.Scan(&taskID, &sub.ID, &sub.Title, &sub.IsDone); err != nil {
			return fmt.Errorf("failed to scan subtask: %w", err)
		}
		byTask[taskID] = append(byTask[taskID], sub)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range tasks {
		tasks[i].Subtasks = byTask[tasks[i].ID]
	}
	return nil
}

func (s *SQLiteStore) saveTasks(tasks []models.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM subtasks`); err != nil {
		return fmt.Errorf("failed to clear subtasks: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	taskStmt, err := tx.Prepare(`
		INSERT INTO tasks (id, title, done, category, priority, due_date, created_at, completed_at, notes, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare task insert: %w", err)
	}
	defer taskStmt.Close()

	subStmt, err := tx.Prepare(`
		INSERT INTO subtasks (id, task_id, title, done, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare subtask insert: %w", err)
	}
	defer subStmt.Close()

	for i, task := range tasks {
		var dueDate, completedAt interface{}
		if task.DueDate != nil {
			dueDate = *task.DueDate
		}
		if task.CompletedAt != nil {
			completedAt = *task.CompletedAt
		}

		_, err := taskStmt.Exec(
			task.ID,
			task.Title,
			task.IsDone,
			string(task.Category),
			task.Priority.String(),
			dueDate,
			task.CreatedAt,
			completedAt,
			task.Notes,
			i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert task: %w", err)
		}

		for j, sub := range task.Subtasks {
			if _, err := subStmt.Exec(sub.ID, task.ID, sub.Title, sub.IsDone, j); err != nil {
				return fmt.Errorf("failed to insert subtask: %w", err)
			}
		}
	}

	return tx.Commit()
}

// LoadProfile returns the saved profile, or nil when none exists.
func (s *SQLiteStore) LoadProfile() *models.UserProfile {
	value, ok, err := s.getSetting(keyProfile)
	if err != nil {
		log.Printf("store: load profile failed: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(value), &profile); err != nil {
		log.Printf("store: decode profile failed: %v", err)
		return nil
	}
	return &profile
}

// SaveProfile persists the profile as a JSON settings value.
func (s *SQLiteStore) SaveProfile(profile models.UserProfile) {
	data, err := json.Marshal(profile)
	if err != nil {
		log.Printf("store: encode profile failed: %v", err)
		return
	}
	if err := s.setSetting(keyProfile, string(data)); err != nil {
		log.Printf("store: save profile failed: %v", err)
	}
}

// LoadTheme returns the saved theme, falling back to ThemeSystem when
// unset or unrecognized.
func (s *SQLiteStore) LoadTheme() models.Theme {
	value, ok, err := s.getSetting(keyTheme)
	if err != nil {
		log.Printf("store: load theme failed: %v", err)
		return models.ThemeSystem
	}
	if !ok {
		return models.ThemeSystem
	}

	theme := models.Theme(value)
	if !theme.Valid() {
		return models.ThemeSystem
	}
	return theme
}

// SaveTheme persists the theme preference.
func (s *SQLiteStore) SaveTheme(theme models.Theme) {
	if err := s.setSetting(keyTheme, string(theme)); err != nil {
		log.Printf("store: save theme failed: %v", err)
	}
}

// OnboardingDone reports whether onboarding has been completed.
func (s *SQLiteStore) OnboardingDone() bool {
	value, ok, err := s.getSetting(keyOnboarding)
	if err != nil {
		log.Printf("store: load onboarding flag failed: %v", err)
		return false
	}
	if !ok {
		return false
	}
	done, _ := strconv.ParseBool(value)
	return done
}

// SetOnboardingDone records the onboarding flag.
func (s *SQLiteStore) SetOnboardingDone(done bool) {
	if err := s.setSetting(keyOnboarding, strconv.FormatBool(done)); err != nil {
		log.Printf("store: save onboarding flag failed: %v", err)
	}
}

// ResetAll clears tasks, profile, theme, and the onboarding flag.
func (s *SQLiteStore) ResetAll() {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("store: reset failed: %v", err)
		return
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM subtasks`,
		`DELETE FROM tasks`,
		`DELETE FROM settings`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			log.Printf("store: reset failed: %v", err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("store: reset failed: %v", err)
	}
}

func (s *SQLiteStore) getSetting(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) setSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
