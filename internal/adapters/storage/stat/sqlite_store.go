package stat

import (
	"context"
	"fmt"
	"time"

	"ironlog/internal/adapters/storage"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new pinned-stat store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Pin marks an exercise as pinned for a user. Pinning twice is a no-op.
// PRE: userID and exerciseID are non-empty
// POST: The (user, exercise) pair is pinned
func (s *SQLiteStore) Pin(ctx context.Context, userID, exerciseID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO pinned_stat (user_id, exercise_id, pinned_at) VALUES (?, ?, ?) ON CONFLICT(user_id, exercise_id) DO NOTHING",
		userID,
		exerciseID,
		time.Now().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("pin stat: %w", err)
	}
	return nil
}

// Unpin removes the pin for a (user, exercise) pair.
// PRE: userID and exerciseID are non-empty
// POST: The pair is not pinned
func (s *SQLiteStore) Unpin(ctx context.Context, userID, exerciseID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM pinned_stat WHERE user_id = ? AND exercise_id = ?",
		userID,
		exerciseID,
	)
	return err
}

// ListPinned returns the exercise ids a user has pinned, oldest pin first.
// PRE: userID is non-empty
// POST: Returns pinned exercise ids; empty slice when none
func (s *SQLiteStore) ListPinned(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT exercise_id FROM pinned_stat WHERE user_id = ? ORDER BY pinned_at",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		results = append(results, id)
	}
	return results, rows.Err()
}

// IsPinned reports whether a user has pinned an exercise.
// PRE: userID and exerciseID are non-empty
// POST: Returns the pin state
func (s *SQLiteStore) IsPinned(ctx context.Context, userID, exerciseID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pinned_stat WHERE user_id = ? AND exercise_id = ?",
		userID,
		exerciseID,
	).Scan(&count)
	return count > 0, err
}
