package exercise

import (
	"errors"
	"strings"
)

// Muscle group constants for the shared catalog.
const (
	GroupLegs      = "legs"
	GroupChest     = "chest"
	GroupBack      = "back"
	GroupShoulders = "shoulders"
	GroupArms      = "arms"
	GroupCore      = "core"
	GroupFullBody  = "full_body"
)

var ErrEmptyName = errors.New("exercise name cannot be empty")

// Exercise is a shared catalog entry referenced by sets and templates.
// It is not owned by any single workout.
type Exercise struct {
	ID          string
	Name        string
	MuscleGroup string
}

// Validate checks if the Exercise has valid data.
// PRE: Exercise struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
