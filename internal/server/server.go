// Package server assembles the router and runs the HTTP server.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mergington/activities/internal/catalog"
	"github.com/mergington/activities/internal/eventbus"
	"github.com/mergington/activities/internal/handler"
	"github.com/mergington/activities/internal/search"
)

// Config holds server dependencies.
type Config struct {
	Addr   string
	Store  catalog.Store
	Engine *search.Engine
	Bus    *eventbus.Bus
	Logger *slog.Logger
}

// Router builds the chi router with all routes registered.
func Router(cfg Config) http.Handler {
	// A nil *Bus must stay a nil Publisher interface or the handler's nil
	// check never fires.
	var pub handler.Publisher
	if cfg.Bus != nil {
		pub = cfg.Bus
	}
	ah := handler.NewActivityHandler(cfg.Store, cfg.Engine, pub, cfg.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/v1/activities", func(r chi.Router) {
		r.Get("/", ah.HandleListActivities)
		r.Get("/search", ah.HandleSearchActivities)
		r.Get("/filter", ah.HandleFilterActivities)
		r.Get("/suggestions", ah.HandleGetSuggestions)
		r.Get("/complete", ah.HandleCompleteQuery)
		r.Get("/filters", ah.HandleGetFilterOptions)
		r.Post("/{name}/signup", ah.HandleSignup)
		r.Delete("/{name}/unregister", ah.HandleUnregister)

		if cfg.Bus != nil {
			fh := handler.NewFeedHandler(cfg.Bus, cfg.Logger)
			r.Get("/feed", fh.ServeHTTP)
		}
	})

	return r
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: Router(cfg),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
