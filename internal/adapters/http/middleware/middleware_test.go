package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	token, err := store.Create("u1", "lifter@example.com", "lifter")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(token))
	}

	session, ok := store.Get(token)
	if !ok {
		t.Fatal("session not found after create")
	}
	if session.UserID != "u1" || session.Email != "lifter@example.com" || session.Username != "lifter" {
		t.Errorf("unexpected session: %+v", session)
	}

	store.Delete(token)
	if _, ok := store.Get(token); ok {
		t.Error("session survived delete")
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore()
	token, _ := store.Create("u1", "lifter@example.com", "lifter")

	store.mu.Lock()
	s := store.sessions[token]
	s.CreatedAt = time.Now().Add(-25 * time.Hour)
	store.sessions[token] = s
	store.mu.Unlock()

	if _, ok := store.Get(token); ok {
		t.Error("expired session still returned")
	}
}

func TestSessionStoreConcurrentExpiredGets(t *testing.T) {
	store := NewSessionStore()
	token, _ := store.Create("u1", "lifter@example.com", "lifter")

	store.mu.Lock()
	s := store.sessions[token]
	s.CreatedAt = time.Now().Add(-25 * time.Hour)
	store.sessions[token] = s
	store.mu.Unlock()

	// Several requests presenting the same expired cookie at once; eviction
	// must hold the write lock or the race detector trips on the map delete.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := store.Get(token); ok {
				t.Error("expired session still returned")
			}
		}()
	}
	wg.Wait()

	store.mu.RLock()
	_, present := store.sessions[token]
	store.mu.RUnlock()
	if present {
		t.Error("expired session not evicted")
	}
}

func TestSessionStoreDeleteForUser(t *testing.T) {
	store := NewSessionStore()
	t1, _ := store.Create("u1", "a@example.com", "a")
	t2, _ := store.Create("u1", "a@example.com", "a")
	t3, _ := store.Create("u2", "b@example.com", "b")

	store.DeleteForUser("u1")

	if _, ok := store.Get(t1); ok {
		t.Error("u1 session 1 survived")
	}
	if _, ok := store.Get(t2); ok {
		t.Error("u1 session 2 survived")
	}
	if _, ok := store.Get(t3); !ok {
		t.Error("u2 session was removed")
	}
}

func TestAuthSetsSessionInContext(t *testing.T) {
	store := NewSessionStore()
	token, _ := store.Create("u1", "lifter@example.com", "lifter")

	var got Session
	var found bool
	handler := Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "ironlog_session", Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatal("session missing from context")
	}
	if got.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", got.UserID)
	}
}

func TestAuthIgnoresUnknownToken(t *testing.T) {
	store := NewSessionStore()

	var found bool
	handler := Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "ironlog_session", Value: "bogus"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if found {
		t.Error("bogus token produced a session")
	}
}

func TestRequireAuth(t *testing.T) {
	// Unauthenticated: redirect to login.
	rec := httptest.NewRecorder()
	RequireAuth(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("got %d -> %q, want 303 -> /login", rec.Code, rec.Header().Get("Location"))
	}

	// Authenticated: passes through.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{UserID: "u1"}))
	RequireAuth(okHandler()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated request got %d, want 200", rec.Code)
	}
}

func TestRequireAnon(t *testing.T) {
	// Authenticated users get bounced to the dashboard.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{UserID: "u1"}))
	RequireAnon(okHandler()).ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("got %d -> %q, want 303 -> /dashboard", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	RequireAnon(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("anonymous request got %d, want 200", rec.Code)
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d denied within limit", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request over limit allowed")
	}
	// Other IPs have their own bucket.
	if !rl.Allow("5.6.7.8") {
		t.Error("fresh IP denied")
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, header := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy"} {
		if rec.Header().Get(header) == "" {
			t.Errorf("missing %s header", header)
		}
	}
}

func TestTimingPreservesStatus(t *testing.T) {
	handler := Timing()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
}

func TestClearSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if cookies[0].Name != "ironlog_session" || cookies[0].MaxAge != -1 {
		t.Errorf("cookie = %+v, want cleared ironlog_session", cookies[0])
	}
}
