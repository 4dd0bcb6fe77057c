package workout

import (
	"context"
	"time"

	domain "ironlog/internal/domain/workout"
)

// Summary is one row of a user's workout history listing: identity plus
// display-ready date/time fields and aggregates over the workout's sets.
type Summary struct {
	ID          string
	Name        string
	Date        string // DD-MM-YYYY
	Hour        string // HH, 24h
	Minute      string // MM
	PerformedAt time.Time
	SetCount    int
	TotalVolume float64
}

// ExerciseSet is one historical set of a given exercise, dated by the
// workout it was performed in. Feeds the per-exercise stats projection.
type ExerciseSet struct {
	WorkoutID   string
	PerformedAt time.Time
	Reps        int
	Weight      float64
}

// Store defines the persistence interface for workouts and their sets.
type Store interface {
	// Save inserts the workout row and all of its set rows in one transaction.
	Save(ctx context.Context, entity domain.Workout) error
	// GetByID returns a workout with its sets in position order.
	GetByID(ctx context.Context, id string) (domain.Workout, error)
	// History returns up to limit most recent workouts for a user,
	// newest first by insertion recency.
	History(ctx context.Context, limit int, userID string) ([]Summary, error)
	// Replace supersedes the stored workout: the row is updated and the
	// previous sets are deleted and reinserted, all in one transaction.
	Replace(ctx context.Context, entity domain.Workout) error
	// Delete removes a workout; set rows cascade.
	Delete(ctx context.Context, id string) error
	// ListSetsByExercise returns all of a user's historical sets of one
	// exercise, ordered by workout date ascending.
	ListSetsByExercise(ctx context.Context, userID, exerciseID string) ([]ExerciseSet, error)
}
