package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/premium-calculator/internal/observability"
	"github.com/jonathan/premium-calculator/internal/openapi"
	"github.com/jonathan/premium-calculator/internal/premium"
	"github.com/jonathan/premium-calculator/internal/schemas"
	"github.com/jonathan/premium-calculator/internal/server/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxBodyBytes caps request bodies; a premium request is a few dozen bytes.
const maxBodyBytes = 1 << 16

// Calculator computes premiums for validated input.
type Calculator interface {
	Calculate(in premium.PremiumInput) (premium.PremiumResult, error)
	BasePremium() float64
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	calculator      Calculator
	validator       *schemas.Validator
	metrics         *observability.Metrics
	logger          *zap.Logger
	openapiDoc      []byte
	shutdownTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Port            int
	BasePremium     float64
	ShutdownTimeout time.Duration
	Logger          *zap.Logger
	Metrics         *observability.Metrics
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	validator, err := schemas.NewPremiumRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to load request schema: %w", err)
	}

	doc, err := openapi.Build(openapi.DefaultInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI document: %w", err)
	}
	var docBuf bytes.Buffer
	if err := openapi.Write(&docBuf, doc); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}

	s := &Server{
		calculator:      premium.NewCalculator(cfg.BasePremium),
		validator:       validator,
		metrics:         metrics,
		logger:          logger,
		openapiDoc:      docBuf.Bytes(),
		shutdownTimeout: shutdownTimeout,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /calculate", s.handleCalculate)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging(s.logger),
		middleware.Metrics(s.metrics, "/", "/calculate", "/health", "/openapi.json", "/metrics"),
		middleware.Recover(s.logger),
		withCORS,
	)
}

// Start begins listening for requests and blocks until ctx is cancelled or
// the process receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting",
			zap.String("addr", s.httpServer.Addr),
			zap.Float64("base_premium", s.calculator.BasePremium()),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding JSON response",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string, details []FieldError) {
	s.jsonResponse(w, r, status, ErrorResponse{Error: message, Details: details})
}
