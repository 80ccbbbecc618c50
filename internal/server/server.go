// Package server provides the HTTP REST API for candidate analysis.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hirelens/hirelens/internal/config"
	"github.com/hirelens/hirelens/internal/server/ratelimit"
)

// shutdownTimeout is how long in-flight requests get to drain on SIGINT or
// SIGTERM.
const shutdownTimeout = 30 * time.Second

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	store      *analysisStore
	limiter    *ratelimit.Limiter
}

// New creates a server from the given configuration.
func New(cfg config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		logger: logger,
		store:  newAnalysisStore(cfg.StoreCapacity),
	}
	if cfg.RateLimit.Enabled {
		s.limiter = ratelimit.New(apiRules(cfg.RateLimit))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/v1/analyze/stream", s.handleAnalyzeStream)
	mux.HandleFunc("POST /api/v1/validate-inputs", s.handleValidateInputs)
	mux.HandleFunc("GET /api/v1/analysis/{id}", s.handleGetAnalysis)
	mux.HandleFunc("GET /api/v1/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withLogging(s.withCORS(s.withRateLimit(mux))),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// apiRules maps the rate limit configuration onto the API surface. Analysis
// runs share the strict tier, reads share the default tier, and the health
// endpoint is exempt so probes are never throttled.
func apiRules(cfg config.RateLimitConfig) []ratelimit.Rule {
	return []ratelimit.Rule{
		{Method: http.MethodGet, Prefix: "/api/v1/health", PerMinute: 0},
		{Method: http.MethodPost, Prefix: "/api/v1/analyze", PerMinute: cfg.AnalyzePerMinute, Burst: cfg.AnalyzeBurst},
		{Method: http.MethodPost, Prefix: "/api/v1/analyze/stream", PerMinute: cfg.AnalyzePerMinute, Burst: cfg.AnalyzeBurst},
		{Method: http.MethodPost, Prefix: "/api/v1/validate-inputs", PerMinute: cfg.RequestsPerMinute},
		{Method: http.MethodGet, Prefix: "/api/v1/", PerMinute: cfg.RequestsPerMinute},
	}
}

// Handler exposes the middleware-wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens for requests until SIGINT or SIGTERM, then drains in-flight
// requests before returning.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers and answers preflight requests.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit throttles clients per endpoint tier and answers over-limit
// requests with 429 plus a Retry-After hint.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := s.limiter.Allow(ratelimit.ClientIP(r), r.Method, r.URL.Path)

		if decision.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		}

		if !decision.Allowed {
			retry := int(decision.RetryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			s.logger.Warn("rate limit exceeded",
				zap.String("client", ratelimit.ClientIP(r)),
				zap.String("path", r.URL.Path),
				zap.Int("limit", decision.Limit),
			)
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, retry later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON envelope.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
