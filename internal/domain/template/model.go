package template

import (
	"errors"
	"strings"
	"time"
)

// MaxNameLength bounds the user-supplied template name.
const MaxNameLength = 120

// Domain errors
var (
	ErrEmptyName       = errors.New("template name cannot be empty")
	ErrEmptyUserID     = errors.New("template must belong to a user")
	ErrNoSets          = errors.New("template must contain at least one set")
	ErrNegativeReps    = errors.New("reps cannot be negative")
	ErrNegativeWeight  = errors.New("weight cannot be negative")
	ErrEmptyExerciseID = errors.New("template set must reference an exercise")
)

// Set is a reps/weight default for one exercise slot in a template.
type Set struct {
	ID         string
	TemplateID string
	ExerciseID string
	Reps       int
	Weight     float64
	Position   int
}

// Template is a reusable named blueprint of exercises and default sets,
// used to prefill a new workout entry form.
type Template struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	Sets      []Set
}

// Validate checks if the Template and all of its sets have valid data.
// PRE: Template struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if len(t.Name) > MaxNameLength {
		return errors.New("template name cannot exceed 120 characters")
	}
	if t.UserID == "" {
		return ErrEmptyUserID
	}
	if len(t.Sets) == 0 {
		return ErrNoSets
	}
	for i := range t.Sets {
		s := &t.Sets[i]
		if s.ExerciseID == "" {
			return ErrEmptyExerciseID
		}
		if s.Reps < 0 {
			return ErrNegativeReps
		}
		if s.Weight < 0 {
			return ErrNegativeWeight
		}
	}
	return nil
}

// ExerciseIDs returns the distinct exercise ids in position order.
// INVARIANT: Template fields are not mutated
func (t *Template) ExerciseIDs() []string {
	seen := make(map[string]bool, len(t.Sets))
	var ids []string
	for i := range t.Sets {
		id := t.Sets[i].ExerciseID
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
