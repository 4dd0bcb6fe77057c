package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"ironlog/internal/domain/user"
)

// UserStoreForAPIKey defines the store interface needed by RegenerateAPIKey.
type UserStoreForAPIKey interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

// RegenerateAPIKeyDeps holds dependencies for RegenerateAPIKey.
type RegenerateAPIKeyDeps struct {
	UserStore UserStoreForAPIKey
}

// ExecuteRegenerateAPIKey replaces the user's API key with a fresh one.
// PRE: userID is valid
// POST: The stored API key is replaced; the old key no longer works
func ExecuteRegenerateAPIKey(ctx context.Context, userID string, deps RegenerateAPIKeyDeps) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}

	u, err := deps.UserStore.GetByID(ctx, userID)
	if err != nil {
		return "", errors.New("account not found")
	}

	u.APIKey = uuid.New().String()
	if err := deps.UserStore.Save(ctx, u); err != nil {
		return "", storageError(err)
	}

	slog.Info("auth_event", "event", "api_key_regenerated", "user_id", userID)
	return u.APIKey, nil
}
