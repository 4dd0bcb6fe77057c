package projections

import (
	"context"

	workoutStore "ironlog/internal/adapters/storage/workout"
)

// DefaultHistoryLimit caps the history page when no limit is requested.
const DefaultHistoryLimit = 50

// HistoryWorkoutStore defines the workout store interface needed by the history projection.
type HistoryWorkoutStore interface {
	History(ctx context.Context, limit int, userID string) ([]workoutStore.Summary, error)
}

// GetWorkoutHistoryQuery carries input for the history projection.
type GetWorkoutHistoryQuery struct {
	UserID string
	Limit  int // <= 0 means DefaultHistoryLimit
}

// GetWorkoutHistoryDeps holds dependencies for the history projection.
type GetWorkoutHistoryDeps struct {
	WorkoutStore HistoryWorkoutStore
}

// GetWorkoutHistoryResult carries the output of the history projection.
type GetWorkoutHistoryResult struct {
	Workouts     []workoutStore.Summary
	TotalVolume  float64
	WorkoutCount int
}

// QueryGetWorkoutHistory returns a user's most recent workouts, newest first.
func QueryGetWorkoutHistory(ctx context.Context, query GetWorkoutHistoryQuery, deps GetWorkoutHistoryDeps) (GetWorkoutHistoryResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	workouts, err := deps.WorkoutStore.History(ctx, limit, query.UserID)
	if err != nil {
		return GetWorkoutHistoryResult{}, err
	}

	result := GetWorkoutHistoryResult{
		Workouts:     workouts,
		WorkoutCount: len(workouts),
	}
	for _, w := range workouts {
		result.TotalVolume += w.TotalVolume
	}
	return result, nil
}
