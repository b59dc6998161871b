// Package server is the composition root for the HTTP API: it builds the
// App, mounts the handlers on a chi router and runs the listener until the
// process is told to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sakif/qa-backend/internal/config"
	"github.com/sakif/qa-backend/internal/handler"
	"github.com/sakif/qa-backend/internal/middleware"
)

type Server struct {
	router *chi.Mux
	config config.AppConfig
	logger *zap.Logger
	app    *App
}

// New builds the App and the router. Close (or Start, which closes on
// return) releases the database.
func New(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) (*Server, error) {
	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		app:    app,
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	// Order matters: request id first so the access log can include it,
	// recoverer inside the logger so a panic still produces a log line.
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger.Named("http")))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.HTTP.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	health := handler.NewHealthHandler(s.app.DB)
	s.router.Get("/healthz", health.HandleLive)
	s.router.Get("/readyz", health.HandleReady)

	s.router.Route("/users", handler.NewUserHandler(s.app.Users).Routes)
	s.router.Route("/questions", handler.NewQuestionHandler(s.app.Questions).Routes)
	s.router.Route("/answers", handler.NewAnswerHandler(s.app.Answers).Routes)
	s.router.Route("/comments", handler.NewCommentHandler(s.app.Comments).Routes)

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"Route not found"}` + "\n"))
	})
}

// Close releases the App without serving.
func (s *Server) Close() error {
	return s.app.Close()
}

// Start serves until ctx is cancelled, then shuts down gracefully within
// the configured timeout. main cancels ctx on SIGINT or SIGTERM.
func (s *Server) Start(ctx context.Context) error {
	defer s.app.Close()

	srv := &http.Server{
		Addr:              s.config.HTTP.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			zap.String("addr", s.config.HTTP.Addr),
			zap.String("db_driver", s.config.DB.Driver),
			zap.Bool("events", s.config.NATSURL != ""),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.HTTP.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}
	return nil
}
