package orchestrators

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"ironlog/internal/domain/exercise"
)

// ExerciseStoreForSeed defines the store interface needed by SeedExercises.
type ExerciseStoreForSeed interface {
	Save(ctx context.Context, e exercise.Exercise) error
	Count(ctx context.Context) (int, error)
}

// SeedExercisesDeps holds dependencies for SeedExercises.
type SeedExercisesDeps struct {
	ExerciseStore ExerciseStoreForSeed
}

// defaultCatalog is the starter exercise catalog created on first boot.
var defaultCatalog = []exercise.Exercise{
	{Name: "Back Squat", MuscleGroup: exercise.GroupLegs},
	{Name: "Front Squat", MuscleGroup: exercise.GroupLegs},
	{Name: "Deadlift", MuscleGroup: exercise.GroupBack},
	{Name: "Romanian Deadlift", MuscleGroup: exercise.GroupLegs},
	{Name: "Bench Press", MuscleGroup: exercise.GroupChest},
	{Name: "Incline Bench Press", MuscleGroup: exercise.GroupChest},
	{Name: "Overhead Press", MuscleGroup: exercise.GroupShoulders},
	{Name: "Barbell Row", MuscleGroup: exercise.GroupBack},
	{Name: "Pull-Up", MuscleGroup: exercise.GroupBack},
	{Name: "Dip", MuscleGroup: exercise.GroupChest},
	{Name: "Barbell Curl", MuscleGroup: exercise.GroupArms},
	{Name: "Lying Triceps Extension", MuscleGroup: exercise.GroupArms},
	{Name: "Leg Press", MuscleGroup: exercise.GroupLegs},
	{Name: "Lunge", MuscleGroup: exercise.GroupLegs},
	{Name: "Plank", MuscleGroup: exercise.GroupCore},
	{Name: "Hanging Leg Raise", MuscleGroup: exercise.GroupCore},
	{Name: "Power Clean", MuscleGroup: exercise.GroupFullBody},
}

// ExecuteSeedExercises creates the default exercise catalog if none exists.
// PRE: none
// POST: Catalog is non-empty; running twice does not duplicate entries
func ExecuteSeedExercises(ctx context.Context, deps SeedExercisesDeps) error {
	count, err := deps.ExerciseStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Already seeded
	}

	for _, e := range defaultCatalog {
		e.ID = uuid.New().String()
		if err := deps.ExerciseStore.Save(ctx, e); err != nil {
			return err
		}
	}

	slog.Info("seed_event", "event", "exercises_seeded", "count", len(defaultCatalog))
	return nil
}
