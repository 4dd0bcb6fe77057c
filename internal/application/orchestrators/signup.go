package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ironlog/internal/adapters/email"
	"ironlog/internal/domain/user"
)

// UserStoreForSignup defines the store interface needed by Signup.
type UserStoreForSignup interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

// SignupInput carries input for the signup orchestrator.
type SignupInput struct {
	Email    string
	Username string
	Password string
}

// SignupDeps holds dependencies for Signup.
type SignupDeps struct {
	UserStore   UserStoreForSignup
	EmailSender email.Sender // optional; no welcome email when nil
	EmailFrom   string
}

var ErrEmailTaken = errors.New("an account with this email already exists")

// ExecuteSignup creates a new user with a hashed password.
// The email pre-check is advisory; the storage UNIQUE constraint is the
// backstop, and a constraint violation from Save is reported as ErrEmailTaken
// rather than propagated raw.
// PRE: Valid email, username, password >= 8 chars
// POST: User created with hashed password; no partial row on failure
// INVARIANT: Email must be unique
func ExecuteSignup(ctx context.Context, input SignupInput, deps SignupDeps) (string, error) {
	if input.Email == "" {
		return "", user.ErrEmptyEmail
	}
	if input.Username == "" {
		return "", user.ErrEmptyUsername
	}
	if input.Password == "" {
		return "", user.ErrEmptyPassword
	}

	// Check if email already exists
	if _, err := deps.UserStore.GetByEmail(ctx, input.Email); err == nil {
		return "", ErrEmailTaken
	}

	u := user.User{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Username:  input.Username,
		APIKey:    uuid.New().String(),
		CreatedAt: time.Now(),
	}

	// Validate domain rules
	if err := u.Validate(); err != nil {
		return "", err
	}

	// Set password (handles hashing and length validation)
	if err := u.SetPassword(input.Password); err != nil {
		return "", err
	}

	// Save to store; a concurrent duplicate signup trips the UNIQUE index here
	if err := deps.UserStore.Save(ctx, u); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return "", ErrEmailTaken
		}
		return "", storageError(err)
	}

	slog.Info("auth_event", "event", "signup", "email", input.Email, "username", input.Username)

	if deps.EmailSender != nil {
		req := email.SendRequest{
			To:      []string{u.Email},
			From:    deps.EmailFrom,
			Subject: "Welcome to IronLog",
			HTML:    fmt.Sprintf("<p>Hi %s,</p><p>Your IronLog account is ready. Log your first workout and start tracking progress.</p>", u.Username),
		}
		if _, err := deps.EmailSender.Send(ctx, req); err != nil {
			// Delivery failure must not fail the signup
			slog.Warn("welcome_email_failed", "email", u.Email, "error", err)
		}
	}

	return u.ID, nil
}
