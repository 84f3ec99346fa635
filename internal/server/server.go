// Package server provides the HTTP JSON API for job recommendations and résumé optimization.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/career-agent/internal/recommend"
	"github.com/jonathan/career-agent/internal/server/middleware"
	"github.com/jonathan/career-agent/internal/server/ratelimit"
	"github.com/jonathan/career-agent/internal/types"
)

// DefaultMaxUploadBytes caps résumé uploads
const DefaultMaxUploadBytes = 10 << 20

// Recommender finds job postings for a query or résumé
type Recommender interface {
	FromQuery(ctx context.Context, query string, maxResults int) ([]types.JobResult, error)
	FromResume(ctx context.Context, resumeText string, maxResults int) ([]types.JobResult, error)
	Stream(ctx context.Context, query string, maxResults int, onProgress func(recommend.Progress)) ([]types.JobResult, error)
}

// Optimizer rewrites résumé text toward a job description
type Optimizer interface {
	Optimize(ctx context.Context, req types.OptimizationRequest) (string, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	recommender    Recommender
	optimizer      Optimizer
	modelClient    io.Closer
	rateLimiter    *ratelimit.Limiter
	maxResults     int
	maxUploadBytes int64
	verbose        bool
}

// Config holds server configuration and the collaborators it serves
type Config struct {
	Port        int
	Recommender Recommender
	Optimizer   Optimizer
	// ModelClient is closed when the server stops
	ModelClient    io.Closer
	MaxResults     int
	MaxUploadBytes int64
	// RateLimit defaults to ratelimit.LoadConfig()
	RateLimit *ratelimit.Config
	Verbose   bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Recommender == nil {
		return nil, fmt.Errorf("recommender is required")
	}
	if cfg.Optimizer == nil {
		return nil, fmt.Errorf("optimizer is required")
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = recommend.DefaultMaxResults
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		recommender:    cfg.Recommender,
		optimizer:      cfg.Optimizer,
		modelClient:    cfg.ModelClient,
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		maxResults:     cfg.MaxResults,
		maxUploadBytes: cfg.MaxUploadBytes,
		verbose:        cfg.Verbose,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /jobs/search", s.handleSearchJobs)
	mux.HandleFunc("POST /jobs/search/stream", s.handleSearchJobsStream)
	mux.HandleFunc("POST /resume/extract", s.handleExtractResume)
	mux.HandleFunc("POST /resume/recommend", s.handleRecommendFromResume)
	mux.HandleFunc("POST /resume/optimize", s.handleOptimize)

	s.handler = middleware.RequestID(s.withLogging(s.withRateLimit(s.withCORS(mux))))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation on a local model can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.release()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("[server] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.release()
	log.Println("[server] stopped")
	return nil
}

// release stops background work and closes the model client
func (s *Server) release() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.modelClient != nil {
		if err := s.modelClient.Close(); err != nil {
			log.Printf("[server] closing model client: %v", err)
		}
	}
}

// withCORS adds CORS headers
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

// withRateLimit rejects clients that exceed their token bucket
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging tagged with the request ID
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := middleware.RequestIDFromContext(r.Context())
		log.Printf("[%s] %s %s %s", id, r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", id, r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] %s %s exceeded: Limit=%d Remaining=%d Reset=%s",
		r.Method, r.URL.Path, info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
