package template

import (
	"context"

	domain "ironlog/internal/domain/template"
)

// Store defines the persistence interface for workout templates.
type Store interface {
	// Save inserts the template row and all of its set rows in one transaction.
	Save(ctx context.Context, entity domain.Template) error
	// GetByID returns a template with its sets in position order.
	GetByID(ctx context.Context, id string) (domain.Template, error)
	// ListByUser returns a user's templates (without sets), newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Template, error)
	// Replace supersedes the stored template: the row is updated and the
	// previous sets are deleted and reinserted, all in one transaction.
	Replace(ctx context.Context, entity domain.Template) error
	// Delete removes a template; set rows cascade.
	Delete(ctx context.Context, id string) error
}
