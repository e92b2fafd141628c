// Package web serves the booking site: the public booking and search pages
// and the session-guarded admin dashboard. The JSON API is mounted under
// /api/ on the same listener.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"ssmv/internal/auth"
	"ssmv/internal/config"
	"ssmv/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Server renders the site pages over the booking repository.
type Server struct {
	repo      domain.Repository
	sessions  *auth.Sessions
	verifier  domain.CredentialVerifier
	logger    *zerolog.Logger
	templates *template.Template
	validate  *validator.Validate
	server    *http.Server
}

func NewServer(cfg config.ServerConfig, repo domain.Repository, sessions *auth.Sessions, verifier domain.CredentialVerifier, apiHandler http.Handler, logger *zerolog.Logger) (*Server, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	srv := &Server{
		repo:      repo,
		sessions:  sessions,
		verifier:  verifier,
		logger:    logger,
		templates: templates,
		validate:  validator.New(),
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/static/", http.FileServer(http.FS(staticFS)))
	mux.HandleFunc("/bookings", srv.handleCreateBooking)
	mux.HandleFunc("/my-bookings", srv.handleSearchPage)
	mux.HandleFunc("/login", srv.handleLoginPage)
	mux.HandleFunc("/logout", srv.handleLogout)
	mux.HandleFunc("/admin", srv.requireAdmin(srv.handleDashboard))
	mux.HandleFunc("/admin/bookings/", srv.requireAdmin(srv.handleAdminDelete))
	mux.HandleFunc("/", srv.handleBookingPage)

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return srv, nil
}

// Handler returns the site handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Web server listening")
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

// requireAdmin redirects anonymous requests to the login page before any
// repository access happens.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil || !s.sessions.Valid(cookie.Value) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("Failed to render page")
	}
}
