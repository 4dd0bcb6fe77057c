package projections

import (
	"context"

	workoutStore "ironlog/internal/adapters/storage/workout"
	"ironlog/internal/domain/exercise"
	"ironlog/internal/domain/template"
)

// RecentWorkoutLimit is how many recent workouts the dashboard shows.
const RecentWorkoutLimit = 5

// DashboardTemplateStore defines the template store interface needed by the dashboard.
type DashboardTemplateStore interface {
	ListByUser(ctx context.Context, userID string) ([]template.Template, error)
}

// DashboardWorkoutStore defines the workout store interface needed by the dashboard.
type DashboardWorkoutStore interface {
	HistoryWorkoutStore
	StatsWorkoutStore
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	UserID string
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	WorkoutStore  DashboardWorkoutStore
	ExerciseStore StatsExerciseStore
	TemplateStore DashboardTemplateStore
	PinStore      StatsPinStore
}

// GetDashboardResult carries everything the dashboard page renders.
type GetDashboardResult struct {
	RecentWorkouts []workoutStore.Summary
	Exercises      []exercise.Exercise
	Templates      []template.Template
	PinnedStats    []Stat
}

// QueryGetDashboard assembles the dashboard: the entry form's exercise
// catalog and templates, the user's recent workouts, and pinned stat charts.
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (GetDashboardResult, error) {
	recent, err := deps.WorkoutStore.History(ctx, RecentWorkoutLimit, query.UserID)
	if err != nil {
		return GetDashboardResult{}, err
	}

	exercises, err := deps.ExerciseStore.List(ctx)
	if err != nil {
		return GetDashboardResult{}, err
	}

	templates, err := deps.TemplateStore.ListByUser(ctx, query.UserID)
	if err != nil {
		return GetDashboardResult{}, err
	}

	pinned, err := QueryGetPinnedStats(ctx, GetPinnedStatsQuery{UserID: query.UserID}, GetExerciseStatsDeps{
		WorkoutStore:  deps.WorkoutStore,
		ExerciseStore: deps.ExerciseStore,
		PinStore:      deps.PinStore,
	})
	if err != nil {
		return GetDashboardResult{}, err
	}

	return GetDashboardResult{
		RecentWorkouts: recent,
		Exercises:      exercises,
		Templates:      templates,
		PinnedStats:    pinned.Stats,
	}, nil
}
