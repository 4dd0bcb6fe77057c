package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"ironlog/internal/adapters/email"
	"ironlog/internal/adapters/http/middleware"
	exerciseStore "ironlog/internal/adapters/storage/exercise"
	statStore "ironlog/internal/adapters/storage/stat"
	templateStore "ironlog/internal/adapters/storage/template"
	userStore "ironlog/internal/adapters/storage/user"
	workoutStore "ironlog/internal/adapters/storage/workout"
)

// Stores holds all storage dependencies.
type Stores struct {
	UserStore     userStore.Store
	WorkoutStore  workoutStore.Store
	ExerciseStore exerciseStore.Store
	TemplateStore templateStore.Store
	StatStore     statStore.Store
}

// loadCSRFKey reads the CSRF secret from IRONLOG_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("IRONLOG_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("IRONLOG_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("IRONLOG_ENV") == "production" {
		log.Fatal("IRONLOG_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set IRONLOG_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance (constructed by the caller, set by NewMux)
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

var emailFromAddress string

// SetEmailSender sets the email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the app. The session store is constructed
// by the caller so its lifetime is owned at startup, not by this package.
func NewMux(staticDir string, s *Stores, sessionStore *middleware.SessionStore) http.Handler {
	stores = s
	sessions = sessionStore
	middleware.SecureCookies = os.Getenv("IRONLOG_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessionStore),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}
