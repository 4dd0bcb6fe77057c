package workout

import (
	"errors"
	"strings"
	"time"
)

// MaxNameLength bounds the user-supplied workout name.
const MaxNameLength = 120

// Domain errors
var (
	ErrEmptyName       = errors.New("workout name cannot be empty")
	ErrEmptyUserID     = errors.New("workout must belong to a user")
	ErrNoSets          = errors.New("workout must contain at least one set")
	ErrNegativeReps    = errors.New("reps cannot be negative")
	ErrNegativeWeight  = errors.New("weight cannot be negative")
	ErrEmptyExerciseID = errors.New("set must reference an exercise")
)

// Set is one performance record (reps x weight) of an exercise within a workout.
type Set struct {
	ID         string
	WorkoutID  string
	ExerciseID string
	Reps       int
	Weight     float64
	Position   int
}

// Workout is one exercise session owned by a user, with its ordered sets.
type Workout struct {
	ID          string
	UserID      string
	Name        string
	Notes       string // markdown
	PerformedAt time.Time
	CreatedAt   time.Time
	Sets        []Set
}

// Validate checks if the Set has valid data.
// PRE: Set struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Set) Validate() error {
	if s.ExerciseID == "" {
		return ErrEmptyExerciseID
	}
	if s.Reps < 0 {
		return ErrNegativeReps
	}
	if s.Weight < 0 {
		return ErrNegativeWeight
	}
	return nil
}

// Volume returns the training volume of the set (reps x weight).
// INVARIANT: Set fields are not mutated
func (s *Set) Volume() float64 {
	return float64(s.Reps) * s.Weight
}

// Validate checks if the Workout and all of its sets have valid data.
// PRE: Workout struct is populated
// POST: Returns nil if valid, error otherwise
func (w *Workout) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return ErrEmptyName
	}
	if len(w.Name) > MaxNameLength {
		return errors.New("workout name cannot exceed 120 characters")
	}
	if w.UserID == "" {
		return ErrEmptyUserID
	}
	if len(w.Sets) == 0 {
		return ErrNoSets
	}
	for i := range w.Sets {
		if err := w.Sets[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TotalVolume returns the summed volume of all sets.
// INVARIANT: Workout fields are not mutated
func (w *Workout) TotalVolume() float64 {
	var total float64
	for i := range w.Sets {
		total += w.Sets[i].Volume()
	}
	return total
}
