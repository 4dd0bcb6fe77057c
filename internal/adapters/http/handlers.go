package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"ironlog/internal/adapters/http/middleware"
	"ironlog/internal/application/orchestrators"
	"ironlog/internal/application/projections"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_error", "error", err.Error())
	}
}

// isJSONRequest reports whether the client submitted a JSON body.
func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

const templatesDir = "internal/adapters/http/templates"

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	username := ""
	email := ""
	if ok {
		username = sess.Username
		email = sess.Email
	}

	funcMap := template.FuncMap{
		"currentUsername": func() string { return username },
		"currentEmail":    func() string { return email },
		"isLoggedIn":      func() bool { return ok },
		"csrfToken":       func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"toJSON": func(v any) template.JS {
			b, err := json.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(b)
		},
		"add": func(a, b int) int { return a + b },
		"formatWeight": func(w float64) string {
			return strconv.FormatFloat(w, 'f', -1, 64)
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		internalError(w, err)
		return
	}
}

// handleSignup handles GET (form) and POST (register) for /signup
func handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "signup.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		if r.FormValue("Password") != r.FormValue("ConfirmPassword") {
			renderTemplate(w, r, "signup.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     "Passwords do not match",
			})
			return
		}

		input := orchestrators.SignupInput{
			Email:    r.FormValue("Email"),
			Username: r.FormValue("Username"),
			Password: r.FormValue("Password"),
		}
		deps := orchestrators.SignupDeps{
			UserStore:   stores.UserStore,
			EmailSender: emailSender,
			EmailFrom:   emailFromAddress,
		}

		userID, err := orchestrators.ExecuteSignup(r.Context(), input, deps)
		if err != nil {
			if errors.Is(err, orchestrators.ErrStorageFailure) {
				internalError(w, err)
				return
			}
			renderTemplate(w, r, "signup.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		// Log the new user straight in
		token, err := sessions.Create(userID, input.Email, input.Username)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}
		deps := orchestrators.LoginDeps{
			UserStore: stores.UserStore,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		token, err := sessions.Create(result.UserID, result.Email, result.Username)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles DELETE /logout (and POST for plain form submits)
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "DELETE" && r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token, ok := middleware.SessionTokenFromRequest(r); ok {
		sessions.Delete(token)
	}

	middleware.ClearSessionCookie(w)
	if r.Method == "DELETE" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleChangePassword handles GET (form) and POST (update) for /change-password
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	if r.Method == "GET" {
		renderTemplate(w, r, "change_password.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Form error", http.StatusBadRequest)
			return
		}

		if r.FormValue("NewPassword") != r.FormValue("ConfirmPassword") {
			renderTemplate(w, r, "change_password.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     "New passwords do not match",
			})
			return
		}

		input := orchestrators.ChangePasswordInput{
			UserID:          session.UserID,
			CurrentPassword: r.FormValue("CurrentPassword"),
			NewPassword:     r.FormValue("NewPassword"),
		}
		deps := orchestrators.ChangePasswordDeps{
			UserStore: stores.UserStore,
		}

		if err := orchestrators.ExecuteChangePassword(r.Context(), input, deps); err != nil {
			if errors.Is(err, orchestrators.ErrStorageFailure) {
				internalError(w, err)
				return
			}
			renderTemplate(w, r, "change_password.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		// Every session for this user is invalidated, including this one.
		sessions.DeleteForUser(session.UserID)
		middleware.ClearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDashboard handles GET /dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())

	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{UserID: session.UserID}, projections.GetDashboardDeps{
		WorkoutStore:  stores.WorkoutStore,
		ExerciseStore: stores.ExerciseStore,
		TemplateStore: stores.TemplateStore,
		PinStore:      stores.StatStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "dashboard.html", map[string]any{
		"CSRFToken":      csrf.Token(r),
		"RecentWorkouts": result.RecentWorkouts,
		"Exercises":      result.Exercises,
		"Templates":      result.Templates,
		"PinnedStats":    result.PinnedStats,
	})
}

// decodeWorkoutPayload reads a workout submission from either a JSON body
// (the form collector) or a classic form post with a Sets JSON field.
func decodeWorkoutPayload(r *http.Request) (orchestrators.LogWorkoutInput, error) {
	var input orchestrators.LogWorkoutInput
	if isJSONRequest(r) {
		if err := strictDecode(r, &input); err != nil {
			return input, err
		}
		return input, nil
	}

	if err := r.ParseForm(); err != nil {
		return input, err
	}
	input.Name = r.FormValue("Name")
	input.Notes = r.FormValue("Notes")
	input.PerformedAt = r.FormValue("PerformedAt")
	if sets := r.FormValue("Sets"); sets != "" {
		if err := json.Unmarshal([]byte(sets), &input.Sets); err != nil {
			return input, err
		}
	}
	return input, nil
}

// handleWorkoutCreate handles POST /dashboard/workout
func handleWorkoutCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	isJSON := isJSONRequest(r)

	input, err := decodeWorkoutPayload(r)
	if err != nil {
		http.Error(w, "Invalid workout payload", http.StatusBadRequest)
		return
	}
	input.UserID = session.UserID

	_, err = orchestrators.ExecuteLogWorkout(r.Context(), input, orchestrators.LogWorkoutDeps{
		WorkoutStore: stores.WorkoutStore,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrStorageFailure) {
			internalError(w, err)
			return
		}
		if isJSON {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isJSON {
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleWorkoutByID handles GET (detail), PUT (replace) and DELETE for
// /dashboard/workout/{id}
func handleWorkoutByID(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	workoutID := strings.TrimPrefix(r.URL.Path, "/dashboard/workout/")
	if workoutID == "" || strings.Contains(workoutID, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case "GET":
		detail, err := projections.QueryGetWorkoutDetail(r.Context(), projections.GetWorkoutDetailQuery{
			WorkoutID: workoutID,
			UserID:    session.UserID,
		}, projections.GetWorkoutDetailDeps{
			WorkoutStore:  stores.WorkoutStore,
			ExerciseStore: stores.ExerciseStore,
		})
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "workout_detail.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Workout":   detail,
			})
			return
		}
		writeJSON(w, http.StatusOK, detail)

	case "PUT":
		input, err := decodeWorkoutPayload(r)
		if err != nil {
			http.Error(w, "Invalid workout payload", http.StatusBadRequest)
			return
		}
		err = orchestrators.ExecuteUpdateWorkout(r.Context(), orchestrators.UpdateWorkoutInput{
			WorkoutID: workoutID,
			UserID:    session.UserID,
			Payload:   input,
		}, orchestrators.LogWorkoutDeps{WorkoutStore: stores.WorkoutStore})
		if err == orchestrators.ErrWorkoutNotFound {
			http.NotFound(w, r)
			return
		}
		if errors.Is(err, orchestrators.ErrStorageFailure) {
			internalError(w, err)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case "DELETE":
		err := orchestrators.ExecuteDeleteWorkout(r.Context(), workoutID, session.UserID, orchestrators.LogWorkoutDeps{
			WorkoutStore: stores.WorkoutStore,
		})
		if err == orchestrators.ErrWorkoutNotFound {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleHistory handles GET /history
func handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	result, err := projections.QueryGetWorkoutHistory(r.Context(), projections.GetWorkoutHistoryQuery{
		UserID: session.UserID,
		Limit:  limit,
	}, projections.GetWorkoutHistoryDeps{WorkoutStore: stores.WorkoutStore})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "history.html", map[string]any{
		"CSRFToken":    csrf.Token(r),
		"Workouts":     result.Workouts,
		"WorkoutCount": result.WorkoutCount,
		"TotalVolume":  result.TotalVolume,
	})
}

// handleAPIKey handles POST /api/apikey — regenerate the caller's API key.
func handleAPIKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())

	key, err := orchestrators.ExecuteRegenerateAPIKey(r.Context(), session.UserID, orchestrators.RegenerateAPIKeyDeps{
		UserStore: stores.UserStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"apiKey": key})
}

// handleExercisesAPI handles GET /api/exercises — the catalog for the form.
func handleExercisesAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	exercises, err := stores.ExerciseStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	type exerciseJSON struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		MuscleGroup string `json:"muscleGroup"`
	}
	out := make([]exerciseJSON, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, exerciseJSON{ID: e.ID, Name: e.Name, MuscleGroup: e.MuscleGroup})
	}
	writeJSON(w, http.StatusOK, out)
}
