package template

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ironlog/internal/adapters/storage"
	domain "ironlog/internal/domain/template"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new template store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a Template and all of its sets in one transaction.
// PRE: entity has been validated
// POST: Template row and every set row are persisted, or none are
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Template) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO template (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
		entity.ID,
		entity.UserID,
		entity.Name,
		entity.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}

	if err := insertSets(ctx, tx, entity.ID, entity.Sets); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a Template with its sets in position order.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Template, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, user_id, name, created_at FROM template WHERE id = ?", id)

	entity, err := scanTemplate(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Template{}, fmt.Errorf("template not found: %w", err)
	}
	if err != nil {
		return domain.Template{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, template_id, exercise_id, reps, weight, position FROM template_set WHERE template_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return domain.Template{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var st domain.Set
		if err := rows.Scan(&st.ID, &st.TemplateID, &st.ExerciseID, &st.Reps, &st.Weight, &st.Position); err != nil {
			return domain.Template{}, err
		}
		entity.Sets = append(entity.Sets, st)
	}
	return entity, rows.Err()
}

// ListByUser returns a user's templates without their sets, newest first.
// PRE: userID is non-empty
// POST: Returns matching templates; empty slice when none
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, created_at FROM template WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Template{}
	for rows.Next() {
		entity, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Replace supersedes a stored template: the row is updated and the previous
// sets are deleted then reinserted, all in one transaction.
// PRE: entity has been validated and exists
// POST: Stored sets exactly match entity.Sets; no stale sets remain
func (s *SQLiteStore) Replace(ctx context.Context, entity domain.Template) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "UPDATE template SET name = ? WHERE id = ?", entity.Name, entity.ID)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("template not found: %s", entity.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM template_set WHERE template_id = ?", entity.ID); err != nil {
		return fmt.Errorf("delete old template sets: %w", err)
	}
	if err := insertSets(ctx, tx, entity.ID, entity.Sets); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a template and, via the FK cascade, its sets.
// PRE: id is non-empty
// POST: Template and all of its set rows are removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM template WHERE id = ?", id)
	return err
}

// insertSets inserts template set rows within an open transaction.
// Position is normalized to slice order.
func insertSets(ctx context.Context, tx *sql.Tx, templateID string, sets []domain.Set) error {
	for i := range sets {
		st := sets[i]
		_, err := tx.ExecContext(ctx,
			"INSERT INTO template_set (id, template_id, exercise_id, reps, weight, position) VALUES (?, ?, ?, ?, ?, ?)",
			st.ID,
			templateID,
			st.ExerciseID,
			st.Reps,
			st.Weight,
			i,
		)
		if err != nil {
			return fmt.Errorf("insert template set %d: %w", i, err)
		}
	}
	return nil
}

// scanTemplate extracts a Template (without sets) from a row scanner function.
func scanTemplate(scan func(dest ...interface{}) error) (domain.Template, error) {
	var entity domain.Template
	var createdAt string
	err := scan(&entity.ID, &entity.UserID, &entity.Name, &createdAt)
	if err != nil {
		return domain.Template{}, err
	}
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
