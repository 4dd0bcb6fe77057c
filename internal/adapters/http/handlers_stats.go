package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"ironlog/internal/adapters/http/middleware"
	"ironlog/internal/application/projections"
)

func statsDeps() projections.GetExerciseStatsDeps {
	return projections.GetExerciseStatsDeps{
		WorkoutStore:  stores.WorkoutStore,
		ExerciseStore: stores.ExerciseStore,
		PinStore:      stores.StatStore,
	}
}

// handleStats handles GET /stats — the pinned charts plus the catalog to
// drill into any exercise.
func handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())

	pinned, err := projections.QueryGetPinnedStats(r.Context(), projections.GetPinnedStatsQuery{UserID: session.UserID}, statsDeps())
	if err != nil {
		internalError(w, err)
		return
	}

	exercises, err := stores.ExerciseStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "stats.html", map[string]any{
		"CSRFToken":   csrf.Token(r),
		"PinnedStats": pinned.Stats,
		"Exercises":   exercises,
	})
}

// handleStatsByExercise handles GET /stats/{exerciseId} — one exercise's
// progress series. HTML gets the chart page, everything else gets JSON.
func handleStatsByExercise(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	exerciseID := strings.TrimPrefix(r.URL.Path, "/stats/")
	if exerciseID == "" || strings.Contains(exerciseID, "/") {
		http.NotFound(w, r)
		return
	}

	stat, err := projections.QueryGetExerciseStats(r.Context(), projections.GetExerciseStatsQuery{
		UserID:     session.UserID,
		ExerciseID: exerciseID,
	}, statsDeps())
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "stats_detail.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Stat":      stat,
		})
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

// handleStatsPin handles POST (pin) and DELETE (unpin) for /api/stats/pin.
// Body: {"exerciseId": "..."}
func handleStatsPin(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	var payload struct {
		ExerciseID string `json:"exerciseId"`
	}
	if err := strictDecode(r, &payload); err != nil || payload.ExerciseID == "" {
		http.Error(w, "exerciseId is required", http.StatusBadRequest)
		return
	}

	// Pinning an unknown exercise is rejected rather than stored.
	if _, err := stores.ExerciseStore.GetByID(r.Context(), payload.ExerciseID); err != nil {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case "POST":
		if err := stores.StatStore.Pin(r.Context(), session.UserID, payload.ExerciseID); err != nil {
			internalError(w, err)
			return
		}
	case "DELETE":
		if err := stores.StatStore.Unpin(r.Context(), session.UserID, payload.ExerciseID); err != nil {
			internalError(w, err)
			return
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
