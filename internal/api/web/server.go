// Package web serves the predictor page, its JSON API and the metrics endpoint
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abelzeko/water-quality/internal/api"
	"github.com/abelzeko/water-quality/internal/config"
	"github.com/abelzeko/water-quality/internal/metrics"
)

//go:embed templates/*
var templateFS embed.FS

// Server renders the predictor page and answers API requests
type Server struct {
	useCase   api.Predictor
	input     config.InputConfig
	cfg       config.ServerConfig
	metrics   *metrics.Metrics
	logger    *zap.SugaredLogger
	validate  *validator.Validate
	templates *template.Template
	router    chi.Router
}

// NewServer parses the templates and mounts the routes
func NewServer(cfg config.ServerConfig, input config.InputConfig, useCase api.Predictor, m *metrics.Metrics, logger *zap.SugaredLogger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		useCase:   useCase,
		input:     input,
		cfg:       cfg,
		metrics:   m,
		logger:    logger,
		validate:  validator.New(),
		templates: tmpl,
	}
	s.mountRoutes()
	return s, nil
}

func (s *Server) mountRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/predict", s.handlePredictForm)
	r.Get("/chart.svg", s.handleChart)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/predict", s.handlePredictAPI)
		r.Get("/proportions", s.handleProportionsAPI)
		r.Get("/stations", s.handleStationsAPI)
	})

	s.router = r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("HTTP server listening on %s", s.cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debugw("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
