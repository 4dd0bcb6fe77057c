package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ironlog/internal/adapters/http/middleware"
	"ironlog/internal/application/orchestrators"
	"ironlog/internal/application/projections"
)

// decodeTemplatePayload reads a template submission from either a JSON body
// or a classic form post with a Sets JSON field.
func decodeTemplatePayload(r *http.Request) (orchestrators.SaveTemplateInput, error) {
	var input orchestrators.SaveTemplateInput
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
	if sets := r.FormValue("Sets"); sets != "" {
		if err := json.Unmarshal([]byte(sets), &input.Sets); err != nil {
			return input, err
		}
	}
	return input, nil
}

// handleTemplateCreate handles POST /dashboard/template
func handleTemplateCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	isJSON := isJSONRequest(r)

	input, err := decodeTemplatePayload(r)
	if err != nil {
		http.Error(w, "Invalid template payload", http.StatusBadRequest)
		return
	}
	input.UserID = session.UserID

	_, err = orchestrators.ExecuteCreateTemplate(r.Context(), input, orchestrators.TemplateDeps{
		TemplateStore: stores.TemplateStore,
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

// handleTemplateByID handles PUT (replace) and DELETE for /dashboard/template/{id}
func handleTemplateByID(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	templateID := strings.TrimPrefix(r.URL.Path, "/dashboard/template/")
	if templateID == "" || strings.Contains(templateID, "/") {
		http.NotFound(w, r)
		return
	}

	deps := orchestrators.TemplateDeps{TemplateStore: stores.TemplateStore}

	switch r.Method {
	case "PUT":
		input, err := decodeTemplatePayload(r)
		if err != nil {
			http.Error(w, "Invalid template payload", http.StatusBadRequest)
			return
		}
		input.UserID = session.UserID

		err = orchestrators.ExecuteUpdateTemplate(r.Context(), templateID, input, deps)
		if err == orchestrators.ErrTemplateNotFound {
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
		err := orchestrators.ExecuteDeleteTemplate(r.Context(), templateID, session.UserID, deps)
		if err == orchestrators.ErrTemplateNotFound {
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

// handleTemplatePrefillAPI handles GET /api/templates/{id} — the prefill
// payload the workout form loads when the user starts from a template.
func handleTemplatePrefillAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	templateID := strings.TrimPrefix(r.URL.Path, "/api/templates/")
	if templateID == "" || strings.Contains(templateID, "/") {
		http.NotFound(w, r)
		return
	}

	result, err := projections.QueryGetTemplatePrefill(r.Context(), projections.GetTemplatePrefillQuery{
		TemplateID: templateID,
		UserID:     session.UserID,
	}, projections.GetTemplatePrefillDeps{
		TemplateStore: stores.TemplateStore,
		ExerciseStore: stores.ExerciseStore,
	})
	if err == projections.ErrTemplateNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
