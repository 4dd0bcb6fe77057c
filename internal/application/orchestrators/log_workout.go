package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ironlog/internal/domain/workout"
)

// WorkoutStoreForLog defines the store interface needed by the workout orchestrators.
type WorkoutStoreForLog interface {
	Save(ctx context.Context, w workout.Workout) error
	GetByID(ctx context.Context, id string) (workout.Workout, error)
	Replace(ctx context.Context, w workout.Workout) error
	Delete(ctx context.Context, id string) error
}

// SetInput is one submitted set from the workout entry form.
type SetInput struct {
	ExerciseID string  `json:"exerciseId"`
	Weight     float64 `json:"weight"`
	Reps       int     `json:"reps"`
}

// LogWorkoutInput carries input for the log-workout orchestrator.
type LogWorkoutInput struct {
	UserID      string
	Name        string     `json:"name"`
	Notes       string     `json:"notes"`
	PerformedAt string     `json:"performedAt"` // RFC 3339; empty means now
	Sets        []SetInput `json:"sets"`
}

// LogWorkoutDeps holds dependencies for LogWorkout.
type LogWorkoutDeps struct {
	WorkoutStore WorkoutStoreForLog
}

var ErrWorkoutNotFound = errors.New("workout not found")

// ExecuteLogWorkout validates the submission and persists the workout with
// all of its sets in one transaction.
// PRE: UserID comes from the authenticated session, not the payload
// POST: One workout row plus one set row per submitted set, or nothing
func ExecuteLogWorkout(ctx context.Context, input LogWorkoutInput, deps LogWorkoutDeps) (string, error) {
	w, err := buildWorkout(input, uuid.New().String())
	if err != nil {
		return "", err
	}

	if err := deps.WorkoutStore.Save(ctx, w); err != nil {
		return "", storageError(err)
	}

	slog.Info("workout_event", "event", "workout_logged", "workout_id", w.ID, "user_id", w.UserID, "sets", len(w.Sets))
	return w.ID, nil
}

// UpdateWorkoutInput carries input for the update-workout orchestrator.
type UpdateWorkoutInput struct {
	WorkoutID string
	UserID    string
	Payload   LogWorkoutInput
}

// ExecuteUpdateWorkout replaces a workout the user owns. The previous sets
// are superseded (deleted and reinserted), never appended to.
// PRE: WorkoutID and UserID are non-empty
// POST: Stored workout matches the payload exactly; foreign rows untouched
func ExecuteUpdateWorkout(ctx context.Context, input UpdateWorkoutInput, deps LogWorkoutDeps) error {
	existing, err := deps.WorkoutStore.GetByID(ctx, input.WorkoutID)
	if err != nil || existing.UserID != input.UserID {
		// Foreign rows are indistinguishable from missing ones
		return ErrWorkoutNotFound
	}

	input.Payload.UserID = input.UserID
	w, err := buildWorkout(input.Payload, input.WorkoutID)
	if err != nil {
		return err
	}
	w.CreatedAt = existing.CreatedAt
	if input.Payload.PerformedAt == "" {
		w.PerformedAt = existing.PerformedAt
	}

	if err := deps.WorkoutStore.Replace(ctx, w); err != nil {
		return storageError(err)
	}

	slog.Info("workout_event", "event", "workout_updated", "workout_id", w.ID, "user_id", w.UserID, "sets", len(w.Sets))
	return nil
}

// ExecuteDeleteWorkout removes a workout the user owns; its sets cascade.
// PRE: WorkoutID and UserID are non-empty
// POST: Workout and its sets are gone; foreign rows untouched
func ExecuteDeleteWorkout(ctx context.Context, workoutID, userID string, deps LogWorkoutDeps) error {
	existing, err := deps.WorkoutStore.GetByID(ctx, workoutID)
	if err != nil || existing.UserID != userID {
		return ErrWorkoutNotFound
	}

	if err := deps.WorkoutStore.Delete(ctx, workoutID); err != nil {
		return storageError(err)
	}

	slog.Info("workout_event", "event", "workout_deleted", "workout_id", workoutID, "user_id", userID)
	return nil
}

// buildWorkout maps the submitted payload onto a validated domain workout.
func buildWorkout(input LogWorkoutInput, id string) (workout.Workout, error) {
	performedAt := time.Now()
	if input.PerformedAt != "" {
		t, err := time.Parse(time.RFC3339, input.PerformedAt)
		if err != nil {
			return workout.Workout{}, errors.New("performedAt must be RFC 3339")
		}
		performedAt = t
	}

	w := workout.Workout{
		ID:          id,
		UserID:      input.UserID,
		Name:        input.Name,
		Notes:       input.Notes,
		PerformedAt: performedAt,
		CreatedAt:   time.Now(),
	}
	for i, s := range input.Sets {
		w.Sets = append(w.Sets, workout.Set{
			ID:         uuid.New().String(),
			WorkoutID:  id,
			ExerciseID: s.ExerciseID,
			Reps:       s.Reps,
			Weight:     s.Weight,
			Position:   i,
		})
	}

	if err := w.Validate(); err != nil {
		return workout.Workout{}, err
	}
	return w, nil
}
