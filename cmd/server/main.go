package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "ironlog/internal/adapters/email"
	web "ironlog/internal/adapters/http"
	"ironlog/internal/adapters/http/middleware"
	"ironlog/internal/adapters/storage"
	exerciseStore "ironlog/internal/adapters/storage/exercise"
	statStore "ironlog/internal/adapters/storage/stat"
	templateStore "ironlog/internal/adapters/storage/template"
	userStore "ironlog/internal/adapters/storage/user"
	workoutStore "ironlog/internal/adapters/storage/workout"
	"ironlog/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("IRONLOG_DB", "ironlog.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	// Wrap DB so slow queries get logged
	timedDB := storage.NewTimedDB(db)

	exStore := exerciseStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		UserStore:     userStore.NewSQLiteStore(timedDB),
		WorkoutStore:  workoutStore.NewSQLiteStore(timedDB),
		ExerciseStore: exStore,
		TemplateStore: templateStore.NewSQLiteStore(timedDB),
		StatStore:     statStore.NewSQLiteStore(timedDB),
	}

	// Seed the shared exercise catalog (idempotent)
	if err := orchestrators.ExecuteSeedExercises(context.Background(), orchestrators.SeedExercisesDeps{ExerciseStore: exStore}); err != nil {
		log.Fatalf("failed to seed exercises: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("IRONLOG_RESEND_KEY")
	emailFrom := envOrDefault("IRONLOG_RESEND_FROM", "IronLog <noreply@ironlog.app>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if os.Getenv("IRONLOG_ENV") == "production" {
			log.Println("WARNING: IRONLOG_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set IRONLOG_RESEND_KEY for real delivery)")
		}
	}

	// Sessions live in memory; a restart logs everyone out.
	sessions := middleware.NewSessionStore()
	mux := web.NewMux("static", stores, sessions)

	addr := envOrDefault("IRONLOG_ADDR", ":8080")
	log.Printf("IronLog %s starting on %s (env=%s)", version, addr, envOrDefault("IRONLOG_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
