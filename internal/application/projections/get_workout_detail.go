package projections

import (
	"context"
	"errors"
	"time"

	"ironlog/internal/domain/exercise"
	"ironlog/internal/domain/workout"
)

// ErrWorkoutNotFound covers both missing workouts and workouts owned by
// another user, so ownership cannot be probed through the detail view.
var ErrWorkoutNotFound = errors.New("workout not found")

// DetailWorkoutStore defines the workout store interface needed by the detail projection.
type DetailWorkoutStore interface {
	GetByID(ctx context.Context, id string) (workout.Workout, error)
}

// DetailExerciseStore defines the exercise store interface needed by the detail projection.
type DetailExerciseStore interface {
	List(ctx context.Context) ([]exercise.Exercise, error)
}

// GetWorkoutDetailQuery carries input for the detail projection.
type GetWorkoutDetailQuery struct {
	WorkoutID string
	UserID    string
}

// GetWorkoutDetailDeps holds dependencies for the detail projection.
type GetWorkoutDetailDeps struct {
	WorkoutStore  DetailWorkoutStore
	ExerciseStore DetailExerciseStore
}

// DetailSet is one set of the workout with its exercise resolved to a name.
type DetailSet struct {
	ExerciseID   string  `json:"exerciseId"`
	ExerciseName string  `json:"exerciseName"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
}

// GetWorkoutDetailResult carries the output of the detail projection.
type GetWorkoutDetailResult struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Notes       string      `json:"notes"`
	PerformedAt string      `json:"performedAt"`
	Sets        []DetailSet `json:"sets"`
	TotalVolume float64     `json:"totalVolume"`
}

// QueryGetWorkoutDetail returns one workout with its sets, exercise names resolved.
// POST: Foreign rows are indistinguishable from missing ones
func QueryGetWorkoutDetail(ctx context.Context, query GetWorkoutDetailQuery, deps GetWorkoutDetailDeps) (GetWorkoutDetailResult, error) {
	w, err := deps.WorkoutStore.GetByID(ctx, query.WorkoutID)
	if err != nil || w.UserID != query.UserID {
		return GetWorkoutDetailResult{}, ErrWorkoutNotFound
	}

	names, err := exerciseNames(ctx, deps.ExerciseStore)
	if err != nil {
		return GetWorkoutDetailResult{}, err
	}

	result := GetWorkoutDetailResult{
		ID:          w.ID,
		Name:        w.Name,
		Notes:       w.Notes,
		PerformedAt: w.PerformedAt.Format(time.RFC3339),
		Sets:        make([]DetailSet, 0, len(w.Sets)),
		TotalVolume: w.TotalVolume(),
	}
	for _, s := range w.Sets {
		result.Sets = append(result.Sets, DetailSet{
			ExerciseID:   s.ExerciseID,
			ExerciseName: names[s.ExerciseID],
			Reps:         s.Reps,
			Weight:       s.Weight,
		})
	}
	return result, nil
}

func exerciseNames(ctx context.Context, store DetailExerciseStore) (map[string]string, error) {
	exercises, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}
	return names, nil
}
