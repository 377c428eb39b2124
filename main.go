package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"notedeck/pkg/config"
	"notedeck/pkg/handlers"
	"notedeck/pkg/logging"
	"notedeck/pkg/middleware"
	"notedeck/pkg/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize stores
	noteStore := storage.NewNoteStore()
	todoStore := storage.NewTodoStore()

	// Initialize handlers
	noteHandlers := handlers.NewNoteHandlers(noteStore, logger)
	todoHandlers := handlers.NewTodoHandlers(todoStore, logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics)

	r.NotFound(handlers.NotFoundHandler)
	r.MethodNotAllowed(handlers.MethodNotAllowedHandler)

	// Probes and metrics
	r.Get("/healthz", handlers.HealthHandler)
	r.Get("/readyz", handlers.ReadyHandler)
	r.Get("/livez", handlers.LiveHandler)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/notes", func(r chi.Router) {
			r.Get("/", noteHandlers.ListHandler)
			r.Post("/", noteHandlers.CreateHandler)
			r.Get("/{id}", noteHandlers.GetHandler)
			r.Put("/{id}", noteHandlers.UpdateHandler)
			r.Delete("/{id}", noteHandlers.DeleteHandler)
		})
		r.Route("/todos", func(r chi.Router) {
			r.Get("/", todoHandlers.ListHandler)
			r.Post("/", todoHandlers.CreateHandler)
			r.Get("/types", todoHandlers.TypesHandler)
			r.Get("/{id}", todoHandlers.GetHandler)
			r.Put("/{id}", todoHandlers.UpdateHandler)
			r.Patch("/{id}/complete", todoHandlers.ToggleHandler)
			r.Delete("/{id}", todoHandlers.DeleteHandler)
		})
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Addr()),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("shutting down gracefully", zap.Duration("timeout", cfg.ShutdownTimeout))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
