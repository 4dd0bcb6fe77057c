package orchestrators

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"ironlog/internal/domain/user"
)

// mockUserStore implements the user store interfaces for testing.
type mockUserStore struct {
	users map[string]user.User
}

// GetByID implements the mock user store.
// PRE: id is non-empty
// POST: returns user or error
func (m *mockUserStore) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, sql.ErrNoRows
	}
	return u, nil
}

// GetByEmail implements the mock user store.
// PRE: email is non-empty
// POST: returns user or error
func (m *mockUserStore) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, sql.ErrNoRows
}

// Save implements the mock user store.
// PRE: user is valid
// POST: user is persisted
func (m *mockUserStore) Save(_ context.Context, u user.User) error {
	if m.users == nil {
		m.users = make(map[string]user.User)
	}
	m.users[u.ID] = u
	return nil
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]user.User)}
}

// seedTestUser creates a user with a known password in the mock store.
func seedTestUser(t *testing.T, store *mockUserStore, id, email, password string) user.User {
	t.Helper()
	u := user.User{
		ID:        id,
		Email:     email,
		Username:  "tester",
		CreatedAt: time.Now(),
	}
	if err := u.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	store.users[id] = u
	return u
}

// TestExecuteLogin_Success tests login with correct credentials.
func TestExecuteLogin_Success(t *testing.T) {
	store := newMockUserStore()
	seedTestUser(t, store, "u1", "lifter@test.com", "squat bench deadlift")

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "lifter@test.com",
		Password: "squat bench deadlift",
	}, LoginDeps{UserStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", result.UserID)
	}
	if result.Username != "tester" {
		t.Errorf("Username = %q, want tester", result.Username)
	}
}

// TestExecuteLogin_FailureModesIndistinguishable verifies unknown email and
// wrong password produce the identical error.
func TestExecuteLogin_FailureModesIndistinguishable(t *testing.T) {
	store := newMockUserStore()
	seedTestUser(t, store, "u1", "lifter@test.com", "squat bench deadlift")

	_, errUnknown := ExecuteLogin(context.Background(), LoginInput{
		Email:    "nobody@test.com",
		Password: "squat bench deadlift",
	}, LoginDeps{UserStore: store})

	_, errWrongPw := ExecuteLogin(context.Background(), LoginInput{
		Email:    "lifter@test.com",
		Password: "wrong password",
	}, LoginDeps{UserStore: store})

	if errUnknown != ErrInvalidCredentials {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", errUnknown)
	}
	if errWrongPw != ErrInvalidCredentials {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", errWrongPw)
	}
	if errUnknown != errWrongPw {
		t.Errorf("failure modes are distinguishable: %v vs %v", errUnknown, errWrongPw)
	}
}

// TestExecuteLogin_EmptyInput tests that empty fields fail generically.
func TestExecuteLogin_EmptyInput(t *testing.T) {
	store := newMockUserStore()
	if _, err := ExecuteLogin(context.Background(), LoginInput{}, LoginDeps{UserStore: store}); err != ErrInvalidCredentials {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

// TestExecuteLogin_RecordsFailedAttempts tests the lockout counter.
func TestExecuteLogin_RecordsFailedAttempts(t *testing.T) {
	store := newMockUserStore()
	seedTestUser(t, store, "u1", "lifter@test.com", "squat bench deadlift")

	for i := 0; i < 5; i++ {
		_, err := ExecuteLogin(context.Background(), LoginInput{
			Email:    "lifter@test.com",
			Password: "wrong password",
		}, LoginDeps{UserStore: store})
		if err != ErrInvalidCredentials {
			t.Fatalf("attempt %d: got %v, want ErrInvalidCredentials", i, err)
		}
	}

	// Sixth attempt, even with the right password, is blocked
	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "lifter@test.com",
		Password: "squat bench deadlift",
	}, LoginDeps{UserStore: store})
	if err != ErrAccountLocked {
		t.Errorf("got %v, want ErrAccountLocked", err)
	}
}

// TestExecuteLogin_ResetsCounterOnSuccess tests that a successful login clears failures.
func TestExecuteLogin_ResetsCounterOnSuccess(t *testing.T) {
	store := newMockUserStore()
	seedTestUser(t, store, "u1", "lifter@test.com", "squat bench deadlift")

	for i := 0; i < 3; i++ {
		ExecuteLogin(context.Background(), LoginInput{
			Email:    "lifter@test.com",
			Password: "wrong password",
		}, LoginDeps{UserStore: store})
	}
	if _, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "lifter@test.com",
		Password: "squat bench deadlift",
	}, LoginDeps{UserStore: store}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.users["u1"].FailedLogins != 0 {
		t.Errorf("FailedLogins = %d after success, want 0", store.users["u1"].FailedLogins)
	}
}
