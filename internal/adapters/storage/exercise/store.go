package exercise

import (
	"context"

	domain "ironlog/internal/domain/exercise"
)

// Store defines the persistence interface for the shared exercise catalog.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Exercise, error)
	GetByName(ctx context.Context, name string) (domain.Exercise, error)
	Save(ctx context.Context, entity domain.Exercise) error
	List(ctx context.Context) ([]domain.Exercise, error)
	Count(ctx context.Context) (int, error)
}
