package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mergington/activities/internal/catalog"
	"github.com/mergington/activities/internal/config"
	"github.com/mergington/activities/internal/eventbus"
	"github.com/mergington/activities/internal/search"
	"github.com/mergington/activities/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := catalog.OpenBuntStore(catalog.NormalizeDSN(cfg.DB.Path))
	if err != nil {
		logger.Error("failed to open catalog store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := catalog.Seed(ctx, store); err != nil {
		logger.Error("failed to seed catalog", "error", err)
		os.Exit(1)
	}

	engine := search.NewEngine(store, logger)
	if err := engine.RegisterActivities(ctx); err != nil {
		logger.Error("failed to index catalog", "error", err)
		os.Exit(1)
	}

	bus := eventbus.New(256, logger)
	bus.Start(ctx)

	err = server.Run(ctx, server.Config{
		Addr:   cfg.Addr(),
		Store:  store,
		Engine: engine,
		Bus:    bus,
		Logger: logger,
	})
	bus.Wait()
	if err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
