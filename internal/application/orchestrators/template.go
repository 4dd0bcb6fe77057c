package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ironlog/internal/domain/template"
)

// TemplateStoreForOrchestrator defines the store interface needed by the template orchestrators.
type TemplateStoreForOrchestrator interface {
	Save(ctx context.Context, t template.Template) error
	GetByID(ctx context.Context, id string) (template.Template, error)
	Replace(ctx context.Context, t template.Template) error
	Delete(ctx context.Context, id string) error
}

// SaveTemplateInput carries input for creating or replacing a template.
type SaveTemplateInput struct {
	UserID string
	Name   string     `json:"name"`
	Sets   []SetInput `json:"sets"`
}

// TemplateDeps holds dependencies for the template orchestrators.
type TemplateDeps struct {
	TemplateStore TemplateStoreForOrchestrator
}

var ErrTemplateNotFound = errors.New("template not found")

// ExecuteCreateTemplate validates and persists a new template with its sets.
// PRE: UserID comes from the authenticated session
// POST: Template and all of its default sets are persisted, or nothing
func ExecuteCreateTemplate(ctx context.Context, input SaveTemplateInput, deps TemplateDeps) (string, error) {
	tpl, err := buildTemplate(input, uuid.New().String())
	if err != nil {
		return "", err
	}

	if err := deps.TemplateStore.Save(ctx, tpl); err != nil {
		return "", storageError(err)
	}

	slog.Info("template_event", "event", "template_created", "template_id", tpl.ID, "user_id", tpl.UserID)
	return tpl.ID, nil
}

// ExecuteUpdateTemplate replaces a template the user owns;
// old sets are deleted and reinserted.
// PRE: templateID and input.UserID are non-empty
// POST: Stored template matches the payload exactly; foreign rows untouched
func ExecuteUpdateTemplate(ctx context.Context, templateID string, input SaveTemplateInput, deps TemplateDeps) error {
	existing, err := deps.TemplateStore.GetByID(ctx, templateID)
	if err != nil || existing.UserID != input.UserID {
		return ErrTemplateNotFound
	}

	tpl, err := buildTemplate(input, templateID)
	if err != nil {
		return err
	}
	tpl.CreatedAt = existing.CreatedAt

	if err := deps.TemplateStore.Replace(ctx, tpl); err != nil {
		return storageError(err)
	}

	slog.Info("template_event", "event", "template_updated", "template_id", templateID, "user_id", input.UserID)
	return nil
}

// ExecuteDeleteTemplate removes a template the user owns; its sets cascade.
// PRE: templateID and userID are non-empty
// POST: Template and its sets are gone; foreign rows untouched
func ExecuteDeleteTemplate(ctx context.Context, templateID, userID string, deps TemplateDeps) error {
	existing, err := deps.TemplateStore.GetByID(ctx, templateID)
	if err != nil || existing.UserID != userID {
		return ErrTemplateNotFound
	}

	if err := deps.TemplateStore.Delete(ctx, templateID); err != nil {
		return storageError(err)
	}

	slog.Info("template_event", "event", "template_deleted", "template_id", templateID, "user_id", userID)
	return nil
}

// buildTemplate maps the submitted payload onto a validated domain template.
func buildTemplate(input SaveTemplateInput, id string) (template.Template, error) {
	tpl := template.Template{
		ID:        id,
		UserID:    input.UserID,
		Name:      input.Name,
		CreatedAt: time.Now(),
	}
	for i, s := range input.Sets {
		tpl.Sets = append(tpl.Sets, template.Set{
			ID:         uuid.New().String(),
			TemplateID: id,
			ExerciseID: s.ExerciseID,
			Reps:       s.Reps,
			Weight:     s.Weight,
			Position:   i,
		})
	}

	if err := tpl.Validate(); err != nil {
		return template.Template{}, err
	}
	return tpl, nil
}
