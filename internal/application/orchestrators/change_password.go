package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"ironlog/internal/domain/user"
)

// ChangePasswordInput carries input for the change-password orchestrator.
type ChangePasswordInput struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

// UserStoreForChangePassword defines the store interface needed by ChangePassword.
type UserStoreForChangePassword interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

// ChangePasswordDeps holds dependencies for ChangePassword.
type ChangePasswordDeps struct {
	UserStore UserStoreForChangePassword
}

var (
	ErrCurrentPasswordWrong = errors.New("current password is incorrect")
	ErrNewPasswordSame      = errors.New("new password must be different from current password")
)

// ExecuteChangePassword validates the current password and updates to the new one.
// PRE: UserID is valid, both passwords are non-empty
// POST: Password is updated
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	if input.UserID == "" || input.CurrentPassword == "" || input.NewPassword == "" {
		return errors.New("all fields are required")
	}

	u, err := deps.UserStore.GetByID(ctx, input.UserID)
	if err != nil {
		return errors.New("account not found")
	}

	// Verify current password
	if err := u.CheckPassword(input.CurrentPassword); err != nil {
		return ErrCurrentPasswordWrong
	}

	// Ensure new password is different
	if input.CurrentPassword == input.NewPassword {
		return ErrNewPasswordSame
	}

	// Set new password (validates length, hashes)
	if err := u.SetPassword(input.NewPassword); err != nil {
		return err
	}

	if err := deps.UserStore.Save(ctx, u); err != nil {
		return storageError(err)
	}

	slog.Info("auth_event", "event", "password_changed", "user_id", input.UserID)
	return nil
}
