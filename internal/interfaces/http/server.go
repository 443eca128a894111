// Package http serves the resonance cross-section evaluator over a small
// read-only JSON API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/sawpanic/resxsec/internal/interaction"
	"github.com/sawpanic/resxsec/internal/kinematics"
	"github.com/sawpanic/resxsec/internal/metrics"
	"github.com/sawpanic/resxsec/internal/net/ratelimit"
	"github.com/sawpanic/resxsec/internal/xsec"
)

// Evaluator is the part of the cross-section evaluator the API uses
type Evaluator interface {
	XSec(in *interaction.Interaction, kps kinematics.PhaseSpace) float64
	Explain(in *interaction.Interaction, kps kinematics.PhaseSpace) xsec.Trace
	Parameters() xsec.Parameters
}

// Server represents the read-only HTTP server
type Server struct {
	router  *mux.Router
	server  *http.Server
	eval    Evaluator
	metrics *metrics.Registry
	limiter *ratelimit.Limiter
	config  ServerConfig
	started time.Time
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	// RPS and Burst size each client's token bucket; RPS <= 0 disables limiting
	RPS   float64
	Burst int
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	port := 8080
	if portStr := os.Getenv("HTTP_PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	return ServerConfig{
		Host:           "127.0.0.1", // Local-only by default
		Port:           port,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		RequestTimeout: 5 * time.Second,
		RPS:            50,
		Burst:          100,
	}
}

// NewServer creates a server for eval. m may be nil, in which case the
// metrics endpoint is not mounted.
func NewServer(config ServerConfig, eval Evaluator, m *metrics.Registry) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		eval:    eval,
		metrics: m,
		config:  config,
		started: time.Now(),
	}
	if config.RPS > 0 {
		s.limiter = ratelimit.NewLimiter(config.RPS, config.Burst)
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         s.Address(),
		Handler:      s.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)
	s.router.Use(s.rateLimitMiddleware)
	s.router.Use(s.timeoutMiddleware)

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	api := s.router.PathPrefix("/").Subrouter()
	api.Use(jsonContentTypeMiddleware)

	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/xsec", s.evaluate).Methods(http.MethodGet)
	api.HandleFunc("/resonances", s.resonances).Methods(http.MethodGet)

	s.router.NotFoundHandler = jsonContentTypeMiddleware(http.HandlerFunc(s.notFound))
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until Shutdown. Idle rate-limit buckets are swept while the
// server runs.
func (s *Server) Start(ctx context.Context) error {
	if s.limiter != nil {
		go s.limiter.Run(ctx, time.Minute, 10*time.Minute)
	}
	log.Info().
		Str("addr", s.Address()).
		Str("param_set", s.eval.Parameters().ParamSet).
		Msg("Starting HTTP server")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Address returns the listen address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
