package exercise

import (
	"context"
	"database/sql"
	"fmt"

	"ironlog/internal/adapters/storage"
	domain "ironlog/internal/domain/exercise"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new exercise store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Exercise by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Exercise, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, muscle_group FROM exercise WHERE id = ?", id)
	entity, err := scanExercise(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Exercise{}, fmt.Errorf("exercise not found: %w", err)
	}
	return entity, err
}

// GetByName retrieves an Exercise by its unique name.
// PRE: name is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Exercise, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, muscle_group FROM exercise WHERE name = ?", name)
	entity, err := scanExercise(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Exercise{}, fmt.Errorf("exercise not found: %w", err)
	}
	return entity, err
}

// Save persists an Exercise to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Exercise) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO exercise (id, name, muscle_group) VALUES (?, ?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name, muscle_group=excluded.muscle_group",
		entity.ID,
		entity.Name,
		entity.MuscleGroup,
	)
	if err != nil {
		return fmt.Errorf("save exercise: %w", err)
	}
	return nil
}

// List retrieves the whole catalog, ordered by name.
// PRE: none
// POST: Returns all exercises
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Exercise, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, muscle_group FROM exercise ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Exercise
	for rows.Next() {
		entity, err := scanExercise(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the catalog size.
// PRE: none
// POST: Returns total exercise count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM exercise").Scan(&count)
	return count, err
}

// scanExercise extracts an Exercise from a row scanner function.
func scanExercise(scan func(dest ...interface{}) error) (domain.Exercise, error) {
	var entity domain.Exercise
	err := scan(&entity.ID, &entity.Name, &entity.MuscleGroup)
	if err != nil {
		return domain.Exercise{}, err
	}
	return entity, nil
}
