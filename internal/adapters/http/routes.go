package web

import (
	"net/http"

	"ironlog/internal/adapters/http/middleware"
)

// registerRoutes wires every application route onto the mux. Route guards
// (RequireAuth / RequireAnon) are applied here so handler bodies can assume
// their session preconditions hold.
func registerRoutes(mux *http.ServeMux) {
	anon := func(h http.HandlerFunc) http.Handler { return middleware.RequireAnon(h) }
	auth := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }

	// Authentication
	mux.Handle("/signup", anon(handleSignup))
	mux.Handle("/login", anon(handleLogin))
	mux.HandleFunc("/logout", handleLogout)
	mux.Handle("/change-password", auth(handleChangePassword))

	// Dashboard and workout entry
	mux.Handle("/dashboard", auth(handleDashboard))
	mux.Handle("/dashboard/workout", auth(handleWorkoutCreate))
	mux.Handle("/dashboard/workout/", auth(handleWorkoutByID))
	mux.Handle("/dashboard/template", auth(handleTemplateCreate))
	mux.Handle("/dashboard/template/", auth(handleTemplateByID))

	// History and stats
	mux.Handle("/history", auth(handleHistory))
	mux.Handle("/stats", auth(handleStats))
	mux.Handle("/stats/", auth(handleStatsByExercise))

	// JSON API (consumed by the workout form and stats page)
	mux.Handle("/api/exercises", auth(handleExercisesAPI))
	mux.Handle("/api/templates/", auth(handleTemplatePrefillAPI))
	mux.Handle("/api/stats/pin", auth(handleStatsPin))
	mux.Handle("/api/apikey", auth(handleAPIKey))
}
