package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/filedrive/filedrive/internal/apperr"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError maps the closed error kinds to HTTP statuses. Anything
// outside the closed set is logged and hidden behind a generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind, ok := apperr.KindOf(err)
	if !ok {
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong"})
		return
	}

	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalid:
		status = http.StatusUnprocessableEntity
	}

	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}
