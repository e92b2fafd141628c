// Package api exposes the booking service over a JSON HTTP API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ssmv/internal/config"
	"ssmv/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Server is the JSON API over the booking repository.
type Server struct {
	repo     domain.Repository
	verifier domain.CredentialVerifier
	logger   *zerolog.Logger
	validate *validator.Validate
	server   *http.Server
	limiter  *rateLimiter
}

func NewServer(cfg config.ServerConfig, rl config.RateLimitConfig, repo domain.Repository, verifier domain.CredentialVerifier, logger *zerolog.Logger) *Server {
	srv := &Server{
		repo:     repo,
		verifier: verifier,
		logger:   logger,
		validate: validator.New(),
		limiter:  newRateLimiter(rl),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings/search", srv.handleSearch)
	mux.HandleFunc("/api/bookings/export", srv.handleExport)
	mux.HandleFunc("/api/bookings/", srv.handleBookingByID)
	mux.HandleFunc("/api/bookings", srv.handleBookings)
	mux.HandleFunc("/api/admin/login", srv.handleLogin)
	mux.HandleFunc("/api/stats", srv.handleStats)
	mux.HandleFunc("/api/health", srv.handleHealth)

	handler := srv.loggingMiddleware(srv.limiter.wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler returns the composed HTTP handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("API server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
