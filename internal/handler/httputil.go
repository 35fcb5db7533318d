package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mergington/activities/internal/catalog"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writeJSON encode failed", "error", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// catalogErrorToHTTP maps catalog errors to HTTP responses.
func catalogErrorToHTTP(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, catalog.ErrAlreadyRegistered):
		writeError(w, http.StatusConflict, "ALREADY_REGISTERED", err.Error())
	case errors.Is(err, catalog.ErrNotRegistered):
		writeError(w, http.StatusConflict, "NOT_REGISTERED", err.Error())
	case errors.Is(err, catalog.ErrFull):
		writeError(w, http.StatusConflict, "ACTIVITY_FULL", err.Error())
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// rawFilterParams collects recognized filter values from the query string
// into the loosely-typed map the sanitizer expects. Values that fail their
// basic parse are passed through untyped so the sanitizer drops and reports
// them instead of the handler erroring.
func rawFilterParams(r *http.Request) map[string]any {
	q := r.URL.Query()
	raw := map[string]any{}

	if v := q.Get("category"); v != "" {
		raw["category"] = v
	}
	if v := q.Get("schedule"); v != "" {
		raw["schedule"] = v
	}
	if v := q.Get("day"); v != "" {
		raw["day"] = v
	}
	if v := q.Get("available"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			raw["availability"] = b
		} else {
			raw["availability"] = struct{}{}
		}
	}
	if v := q.Get("min_popularity"); v != "" {
		raw["min_popularity"] = v
	}
	return raw
}
