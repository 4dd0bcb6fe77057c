package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS user (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL DEFAULT '',
		api_key TEXT,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS exercise (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		muscle_group TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS workout (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		performed_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES user(id)
	);

	CREATE TABLE IF NOT EXISTS workout_set (
		id TEXT PRIMARY KEY,
		workout_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		reps INTEGER NOT NULL CHECK (reps >= 0),
		weight REAL NOT NULL CHECK (weight >= 0),
		position INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (workout_id) REFERENCES workout(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercise(id)
	);

	CREATE TABLE IF NOT EXISTS template (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES user(id)
	);

	CREATE TABLE IF NOT EXISTS template_set (
		id TEXT PRIMARY KEY,
		template_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		reps INTEGER NOT NULL CHECK (reps >= 0),
		weight REAL NOT NULL CHECK (weight >= 0),
		position INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (template_id) REFERENCES template(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercise(id)
	);

	CREATE TABLE IF NOT EXISTS pinned_stat (
		user_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		pinned_at TEXT NOT NULL,
		PRIMARY KEY (user_id, exercise_id),
		FOREIGN KEY (user_id) REFERENCES user(id),
		FOREIGN KEY (exercise_id) REFERENCES exercise(id)
	);

	CREATE INDEX IF NOT EXISTS idx_workout_user ON workout(user_id);
	CREATE INDEX IF NOT EXISTS idx_workout_set_workout ON workout_set(workout_id);
	CREATE INDEX IF NOT EXISTS idx_workout_set_exercise ON workout_set(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_template_user ON template(user_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
