package user

import (
	"context"

	domain "ironlog/internal/domain/user"
)

// Store defines the persistence interface for users.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Save(ctx context.Context, entity domain.User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
