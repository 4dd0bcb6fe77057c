package projections

import (
	"context"
	"errors"

	"ironlog/internal/domain/template"
)

// ErrTemplateNotFound covers both missing templates and templates owned by
// another user.
var ErrTemplateNotFound = errors.New("template not found")

// PrefillTemplateStore defines the template store interface needed by the prefill projection.
type PrefillTemplateStore interface {
	GetByID(ctx context.Context, id string) (template.Template, error)
}

// GetTemplatePrefillQuery carries input for the prefill projection.
type GetTemplatePrefillQuery struct {
	TemplateID string
	UserID     string
}

// GetTemplatePrefillDeps holds dependencies for the prefill projection.
type GetTemplatePrefillDeps struct {
	TemplateStore PrefillTemplateStore
	ExerciseStore DetailExerciseStore
}

// PrefillSet is one planned set within a prefill exercise block.
type PrefillSet struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// PrefillExercise groups a template's planned sets by exercise, in the order
// exercises first appear in the template.
type PrefillExercise struct {
	ExerciseID   string       `json:"exerciseId"`
	ExerciseName string       `json:"exerciseName"`
	Sets         []PrefillSet `json:"sets"`
}

// GetTemplatePrefillResult is the payload the entry form consumes when the
// user starts a workout from a template.
type GetTemplatePrefillResult struct {
	TemplateID string            `json:"templateId"`
	Name       string            `json:"name"`
	Exercises  []PrefillExercise `json:"exercises"`
}

// QueryGetTemplatePrefill returns a template's planned sets grouped by
// exercise, ready to seed the workout entry form.
// POST: Foreign rows are indistinguishable from missing ones
func QueryGetTemplatePrefill(ctx context.Context, query GetTemplatePrefillQuery, deps GetTemplatePrefillDeps) (GetTemplatePrefillResult, error) {
	tpl, err := deps.TemplateStore.GetByID(ctx, query.TemplateID)
	if err != nil || tpl.UserID != query.UserID {
		return GetTemplatePrefillResult{}, ErrTemplateNotFound
	}

	names, err := exerciseNames(ctx, deps.ExerciseStore)
	if err != nil {
		return GetTemplatePrefillResult{}, err
	}

	result := GetTemplatePrefillResult{
		TemplateID: tpl.ID,
		Name:       tpl.Name,
	}
	index := map[string]int{}
	for _, s := range tpl.Sets {
		i, ok := index[s.ExerciseID]
		if !ok {
			i = len(result.Exercises)
			index[s.ExerciseID] = i
			result.Exercises = append(result.Exercises, PrefillExercise{
				ExerciseID:   s.ExerciseID,
				ExerciseName: names[s.ExerciseID],
			})
		}
		result.Exercises[i].Sets = append(result.Exercises[i].Sets, PrefillSet{Reps: s.Reps, Weight: s.Weight})
	}
	return result, nil
}
