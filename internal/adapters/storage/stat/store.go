package stat

import "context"

// Store defines the persistence interface for per-user pinned stats.
type Store interface {
	Pin(ctx context.Context, userID, exerciseID string) error
	Unpin(ctx context.Context, userID, exerciseID string) error
	ListPinned(ctx context.Context, userID string) ([]string, error)
	IsPinned(ctx context.Context, userID, exerciseID string) (bool, error)
}
