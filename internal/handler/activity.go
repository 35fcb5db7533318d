// Package handler implements the HTTP surface of the activities service.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mergington/activities/internal/catalog"
	"github.com/mergington/activities/internal/event"
	"github.com/mergington/activities/internal/search"
)

// Publisher sends roster events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, evt event.RosterEvent)
}

// ActivityHandler serves catalog browsing, search, suggestions, and roster
// signup/unregister.
type ActivityHandler struct {
	store  catalog.Store
	engine *search.Engine
	bus    Publisher
	logger *slog.Logger
}

// NewActivityHandler creates an ActivityHandler. bus may be nil when no live
// feed is wired.
func NewActivityHandler(store catalog.Store, engine *search.Engine, bus Publisher, logger *slog.Logger) *ActivityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityHandler{store: store, engine: engine, bus: bus, logger: logger}
}

// HandleListActivities returns the full catalog in catalog order.
// GET /v1/activities
func (h *ActivityHandler) HandleListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.store.List(r.Context())
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	if activities == nil {
		activities = []catalog.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

// HandleSearchActivities runs the full query pipeline.
// GET /v1/activities/search?q=&category=&schedule=&day=&available=&min_popularity=&sort_by=
func (h *ActivityHandler) HandleSearchActivities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	filters, dropped := search.Sanitize(rawFilterParams(r))
	if len(dropped) > 0 {
		h.logger.Debug("ignored invalid filter values", "keys", dropped)
	}

	// An unrecognized sort key is sanitized away like any other bad filter
	// value, leaving the default relevance ordering.
	sortKey, ok := search.ParseSortKey(r.URL.Query().Get("sort_by"))
	if !ok {
		h.logger.Debug("ignored invalid sort key", "sort_by", r.URL.Query().Get("sort_by"))
	}

	res, err := h.engine.Search(r.Context(), query, filters, sortKey)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleFilterActivities applies filters with no text search.
// GET /v1/activities/filter?category=&schedule=&day=&available=&min_popularity=
func (h *ActivityHandler) HandleFilterActivities(w http.ResponseWriter, r *http.Request) {
	filters, dropped := search.Sanitize(rawFilterParams(r))
	if len(dropped) > 0 {
		h.logger.Debug("ignored invalid filter values", "keys", dropped)
	}

	activities, err := h.engine.FilterActivities(r.Context(), filters)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	if activities == nil {
		activities = []catalog.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

// HandleGetSuggestions returns catalog-derived autocomplete candidates.
// GET /v1/activities/suggestions?q=
func (h *ActivityHandler) HandleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	partial := r.URL.Query().Get("q")
	if partial == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUERY", "query parameter q is required")
		return
	}

	suggestions, err := h.engine.Suggest(r.Context(), partial)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}

	resp := struct {
		Query       string              `json:"query"`
		Suggestions []search.Suggestion `json:"suggestions"`
	}{
		Query:       partial,
		Suggestions: suggestions,
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleCompleteQuery returns index- and history-derived completions. The
// partial query may be empty, which yields recent searches.
// GET /v1/activities/complete?q=
func (h *ActivityHandler) HandleCompleteQuery(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Suggestions []string `json:"suggestions"`
	}{
		Suggestions: h.engine.CompleteQuery(r.URL.Query().Get("q")),
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGetFilterOptions returns the discoverable filter vocabulary.
// GET /v1/activities/filters
func (h *ActivityHandler) HandleGetFilterOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.FilterOptions())
}

// HandleSignup adds a student to an activity roster.
// POST /v1/activities/{name}/signup?email=
func (h *ActivityHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "MISSING_EMAIL", "query parameter email is required")
		return
	}

	a, err := h.store.GetByName(r.Context(), name)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}

	updated, err := h.store.Signup(r.Context(), a.ID, email)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	h.publish(r.Context(), event.NewStudentSignedUp(updated, email))

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Signed up %s for %s", email, updated.Name),
	})
}

// HandleUnregister removes a student from an activity roster.
// DELETE /v1/activities/{name}/unregister?email=
func (h *ActivityHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "MISSING_EMAIL", "query parameter email is required")
		return
	}

	a, err := h.store.GetByName(r.Context(), name)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}

	updated, err := h.store.Unregister(r.Context(), a.ID, email)
	if err != nil {
		catalogErrorToHTTP(w, err)
		return
	}
	h.publish(r.Context(), event.NewStudentUnregistered(updated, email))

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Unregistered %s from %s", email, updated.Name),
	})
}

func (h *ActivityHandler) publish(ctx context.Context, evt event.RosterEvent) {
	if h.bus == nil {
		return
	}
	h.bus.Publish(ctx, evt)
}
