package workout_test

import (
	"testing"

	"ironlog/internal/domain/workout"
)

// TestWorkoutValidation tests validation of Workout and its sets.
func TestWorkoutValidation(t *testing.T) {
	validSet := workout.Set{ExerciseID: "ex1", Reps: 5, Weight: 100}

	tests := []struct {
		name    string
		workout workout.Workout
		wantErr error
	}{
		{
			name: "valid workout",
			workout: workout.Workout{
				ID: "w1", UserID: "u1", Name: "Leg Day",
				Sets: []workout.Set{validSet},
			},
			wantErr: nil,
		},
		{
			name: "empty name",
			workout: workout.Workout{
				ID: "w1", UserID: "u1", Name: "  ",
				Sets: []workout.Set{validSet},
			},
			wantErr: workout.ErrEmptyName,
		},
		{
			name: "missing user",
			workout: workout.Workout{
				ID: "w1", Name: "Leg Day",
				Sets: []workout.Set{validSet},
			},
			wantErr: workout.ErrEmptyUserID,
		},
		{
			name: "no sets",
			workout: workout.Workout{
				ID: "w1", UserID: "u1", Name: "Leg Day",
			},
			wantErr: workout.ErrNoSets,
		},
		{
			name: "negative reps",
			workout: workout.Workout{
				ID: "w1", UserID: "u1", Name: "Leg Day",
				Sets: []workout.Set{{ExerciseID: "ex1", Reps: -1, Weight: 100}},
			},
			wantErr: workout.ErrNegativeReps,
		},
		{
			name: "negative weight",
			workout: workout.Workout{
				ID: "w1", UserID: "u1", Name: "Leg Day",
				Sets: []workout.Set{{ExerciseID: "ex1", Reps: 5, Weight: -10}},
			},
			wantErr: workout.ErrNegativeWeight,
		},
		{
			name: "set without exercise",
			workout: workout.Workout{
				ID: "w1", UserID: "u1", Name: "Leg Day",
				Sets: []workout.Set{{Reps: 5, Weight: 100}},
			},
			wantErr: workout.ErrEmptyExerciseID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.workout.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestVolume tests set and workout volume calculations.
func TestVolume(t *testing.T) {
	w := workout.Workout{
		ID: "w1", UserID: "u1", Name: "Leg Day",
		Sets: []workout.Set{
			{ExerciseID: "ex1", Reps: 5, Weight: 100},
			{ExerciseID: "ex1", Reps: 3, Weight: 105},
		},
	}
	if got := w.Sets[0].Volume(); got != 500 {
		t.Errorf("set volume = %v, want 500", got)
	}
	if got := w.TotalVolume(); got != 815 {
		t.Errorf("total volume = %v, want 815", got)
	}

	zero := workout.Set{ExerciseID: "ex1", Reps: 0, Weight: 100}
	if got := zero.Volume(); got != 0 {
		t.Errorf("zero-rep set volume = %v, want 0", got)
	}
}
