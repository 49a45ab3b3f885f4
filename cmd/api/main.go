package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ideapad/internal/config"
	"ideapad/internal/editor"
	"ideapad/internal/http"
	"ideapad/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	// A failed migration blocks startup; the recorded schema version
	// is untouched, so a later retry resumes from the same point.
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	ideaRepo := storage.NewIdeaRepo(db)
	blockRepo := storage.NewBlockRepo(db)

	// Editing sessions with debounced autosave
	sessions := editor.NewSessions(blockRepo, cfg.AutosaveDelay, logger)

	// Create router with dependencies
	deps := &http.Deps{
		DB:       db,
		Ideas:    ideaRepo,
		Blocks:   blockRepo,
		Sessions: sessions,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	server := &nethttp.Server{Addr: addr, Handler: router}

	go func() {
		slog.Info("Starting API server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	// On teardown, every open session gets one final unconditional
	// flush before the process exits.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down, flushing open sessions")
	sessions.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
