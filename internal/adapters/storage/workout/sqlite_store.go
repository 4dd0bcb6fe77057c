package workout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ironlog/internal/adapters/storage"
	domain "ironlog/internal/domain/workout"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new workout store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a Workout and all of its sets in one transaction.
// PRE: entity has been validated
// POST: Workout row and every set row are persisted, or none are
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Workout) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO workout (id, user_id, name, notes, performed_at, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		entity.ID,
		entity.UserID,
		entity.Name,
		entity.Notes,
		entity.PerformedAt.Format(timeFormat),
		entity.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	if err := insertSets(ctx, tx, entity.ID, entity.Sets); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a Workout with its sets in position order.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Workout, error) {
	query := "SELECT id, user_id, name, notes, performed_at, created_at FROM workout WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanWorkout(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Workout{}, fmt.Errorf("workout not found: %w", err)
	}
	if err != nil {
		return domain.Workout{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, workout_id, exercise_id, reps, weight, position FROM workout_set WHERE workout_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return domain.Workout{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var st domain.Set
		if err := rows.Scan(&st.ID, &st.WorkoutID, &st.ExerciseID, &st.Reps, &st.Weight, &st.Position); err != nil {
			return domain.Workout{}, err
		}
		entity.Sets = append(entity.Sets, st)
	}
	return entity, rows.Err()
}

// History returns up to limit most recent workouts for a user, newest first.
// Recency is insertion order (rowid), not wall-clock workout date.
// PRE: limit >= 0, userID is non-empty
// POST: Returns at most limit rows, all owned by userID; empty slice when none
func (s *SQLiteStore) History(ctx context.Context, limit int, userID string) ([]Summary, error) {
	query := `
		SELECT w.id, w.name, w.performed_at, COUNT(ws.id), COALESCE(SUM(ws.reps * ws.weight), 0)
		FROM workout w
		LEFT JOIN workout_set ws ON ws.workout_id = w.id
		WHERE w.user_id = ?
		GROUP BY w.id
		ORDER BY w.rowid DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query workout history: %w", err)
	}
	defer rows.Close()

	results := []Summary{}
	for rows.Next() {
		var sum Summary
		var performedAt string
		if err := rows.Scan(&sum.ID, &sum.Name, &performedAt, &sum.SetCount, &sum.TotalVolume); err != nil {
			return nil, err
		}
		sum.PerformedAt, _ = parseTime(performedAt)
		sum.Date = sum.PerformedAt.Format("02-01-2006")
		sum.Hour = sum.PerformedAt.Format("15")
		sum.Minute = sum.PerformedAt.Format("04")
		results = append(results, sum)
	}
	return results, rows.Err()
}

// Replace supersedes a stored workout: the row is updated and the previous
// sets are deleted then reinserted, all in one transaction.
// PRE: entity has been validated and exists
// POST: Stored sets exactly match entity.Sets; no stale sets remain
func (s *SQLiteStore) Replace(ctx context.Context, entity domain.Workout) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE workout SET name = ?, notes = ?, performed_at = ? WHERE id = ?",
		entity.Name,
		entity.Notes,
		entity.PerformedAt.Format(timeFormat),
		entity.ID,
	)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("workout not found: %s", entity.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM workout_set WHERE workout_id = ?", entity.ID); err != nil {
		return fmt.Errorf("delete old sets: %w", err)
	}
	if err := insertSets(ctx, tx, entity.ID, entity.Sets); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a workout and, via the FK cascade, its sets.
// PRE: id is non-empty
// POST: Workout and all of its set rows are removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM workout WHERE id = ?", id)
	return err
}

// ListSetsByExercise returns all of a user's historical sets of one exercise,
// ordered by workout date ascending.
// PRE: userID and exerciseID are non-empty
// POST: Returns dated set rows; empty slice when none
func (s *SQLiteStore) ListSetsByExercise(ctx context.Context, userID, exerciseID string) ([]ExerciseSet, error) {
	query := `
		SELECT ws.workout_id, w.performed_at, ws.reps, ws.weight
		FROM workout_set ws
		JOIN workout w ON w.id = ws.workout_id
		WHERE w.user_id = ? AND ws.exercise_id = ?
		ORDER BY w.performed_at, ws.position`

	rows, err := s.db.QueryContext(ctx, query, userID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("query exercise sets: %w", err)
	}
	defer rows.Close()

	results := []ExerciseSet{}
	for rows.Next() {
		var es ExerciseSet
		var performedAt string
		if err := rows.Scan(&es.WorkoutID, &performedAt, &es.Reps, &es.Weight); err != nil {
			return nil, err
		}
		es.PerformedAt, _ = parseTime(performedAt)
		results = append(results, es)
	}
	return results, rows.Err()
}

// insertSets inserts set rows for a workout within an open transaction.
// Position is normalized to slice order.
func insertSets(ctx context.Context, tx *sql.Tx, workoutID string, sets []domain.Set) error {
	for i := range sets {
		st := sets[i]
		_, err := tx.ExecContext(ctx,
			"INSERT INTO workout_set (id, workout_id, exercise_id, reps, weight, position) VALUES (?, ?, ?, ?, ?, ?)",
			st.ID,
			workoutID,
			st.ExerciseID,
			st.Reps,
			st.Weight,
			i,
		)
		if err != nil {
			return fmt.Errorf("insert set %d: %w", i, err)
		}
	}
	return nil
}

// scanWorkout extracts a Workout (without sets) from a row scanner function.
func scanWorkout(scan func(dest ...interface{}) error) (domain.Workout, error) {
	var entity domain.Workout
	var performedAt, createdAt string
	err := scan(
		&entity.ID,
		&entity.UserID,
		&entity.Name,
		&entity.Notes,
		&performedAt,
		&createdAt,
	)
	if err != nil {
		return domain.Workout{}, err
	}
	entity.PerformedAt, _ = parseTime(performedAt)
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
