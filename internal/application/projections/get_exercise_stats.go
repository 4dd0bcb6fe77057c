package projections

import (
	"context"

	workoutStore "ironlog/internal/adapters/storage/workout"
	"ironlog/internal/domain/exercise"
)

// StatsWorkoutStore defines the workout store interface needed by the stats projection.
type StatsWorkoutStore interface {
	ListSetsByExercise(ctx context.Context, userID, exerciseID string) ([]workoutStore.ExerciseSet, error)
}

// StatsExerciseStore defines the exercise store interface needed by the stats projection.
type StatsExerciseStore interface {
	GetByID(ctx context.Context, id string) (exercise.Exercise, error)
	List(ctx context.Context) ([]exercise.Exercise, error)
}

// StatsPinStore defines the pin store interface needed by the stats projection.
type StatsPinStore interface {
	ListPinned(ctx context.Context, userID string) ([]string, error)
	IsPinned(ctx context.Context, userID, exerciseID string) (bool, error)
}

// Stat is the per-exercise progress series rendered by the stats charts.
// The four slices are index-aligned: entry i of each describes the same set.
// INVARIANT: len(Dates) == len(Reps) == len(Volumes) == len(Weights)
type Stat struct {
	ExerciseID   string    `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName"`
	MuscleGroup  string    `json:"muscleGroup"`
	Pinned       bool      `json:"pinned"`
	Dates        []string  `json:"dates"` // DD-MM-YYYY, ascending
	Reps         []int     `json:"reps"`
	Volumes      []float64 `json:"volumes"` // reps * weight per set
	Weights      []float64 `json:"weights"`
}

// GetExerciseStatsQuery carries input for the single-exercise stats projection.
type GetExerciseStatsQuery struct {
	UserID     string
	ExerciseID string
}

// GetExerciseStatsDeps holds dependencies for the stats projections.
type GetExerciseStatsDeps struct {
	WorkoutStore  StatsWorkoutStore
	ExerciseStore StatsExerciseStore
	PinStore      StatsPinStore
}

// QueryGetExerciseStats builds the progress series for one exercise from the
// user's full set history, oldest first.
func QueryGetExerciseStats(ctx context.Context, query GetExerciseStatsQuery, deps GetExerciseStatsDeps) (Stat, error) {
	ex, err := deps.ExerciseStore.GetByID(ctx, query.ExerciseID)
	if err != nil {
		return Stat{}, err
	}

	pinned, err := deps.PinStore.IsPinned(ctx, query.UserID, query.ExerciseID)
	if err != nil {
		return Stat{}, err
	}

	sets, err := deps.WorkoutStore.ListSetsByExercise(ctx, query.UserID, query.ExerciseID)
	if err != nil {
		return Stat{}, err
	}

	return buildStat(ex, pinned, sets), nil
}

// GetPinnedStatsQuery carries input for the pinned-stats projection.
type GetPinnedStatsQuery struct {
	UserID string
}

// GetPinnedStatsResult carries the output of the pinned-stats projection.
type GetPinnedStatsResult struct {
	Stats []Stat
}

// QueryGetPinnedStats builds the progress series for every exercise the user
// has pinned, in pin order.
func QueryGetPinnedStats(ctx context.Context, query GetPinnedStatsQuery, deps GetExerciseStatsDeps) (GetPinnedStatsResult, error) {
	exerciseIDs, err := deps.PinStore.ListPinned(ctx, query.UserID)
	if err != nil {
		return GetPinnedStatsResult{}, err
	}

	result := GetPinnedStatsResult{Stats: make([]Stat, 0, len(exerciseIDs))}
	for _, exerciseID := range exerciseIDs {
		ex, err := deps.ExerciseStore.GetByID(ctx, exerciseID)
		if err != nil {
			return GetPinnedStatsResult{}, err
		}
		sets, err := deps.WorkoutStore.ListSetsByExercise(ctx, query.UserID, exerciseID)
		if err != nil {
			return GetPinnedStatsResult{}, err
		}
		result.Stats = append(result.Stats, buildStat(ex, true, sets))
	}
	return result, nil
}

func buildStat(ex exercise.Exercise, pinned bool, sets []workoutStore.ExerciseSet) Stat {
	stat := Stat{
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
		MuscleGroup:  ex.MuscleGroup,
		Pinned:       pinned,
		Dates:        make([]string, 0, len(sets)),
		Reps:         make([]int, 0, len(sets)),
		Volumes:      make([]float64, 0, len(sets)),
		Weights:      make([]float64, 0, len(sets)),
	}
	for _, s := range sets {
		stat.Dates = append(stat.Dates, s.PerformedAt.Format("02-01-2006"))
		stat.Reps = append(stat.Reps, s.Reps)
		stat.Volumes = append(stat.Volumes, float64(s.Reps)*s.Weight)
		stat.Weights = append(stat.Weights, s.Weight)
	}
	return stat
}
