package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"ssmv/internal/auth"
	"ssmv/internal/format"
	"ssmv/internal/models"
	"ssmv/internal/render"
)

type bookingPageData struct {
	Input   models.BookingInput
	MinDate string
	Weekday string
	Error   string
}

func (s *Server) handleBookingPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.renderPage(w, "booking.html", bookingPageData{
		MinDate: time.Now().Format(models.DateLayout),
	})
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	input := models.BookingInput{
		Name:           strings.TrimSpace(r.PostFormValue("name")),
		Email:          strings.TrimSpace(r.PostFormValue("email")),
		Phone:          strings.TrimSpace(r.PostFormValue("phone")),
		Date:           strings.TrimSpace(r.PostFormValue("date")),
		Time:           strings.TrimSpace(r.PostFormValue("time")),
		NumberOfPeople: strings.TrimSpace(r.PostFormValue("numberOfPeople")),
		Details:        strings.TrimSpace(r.PostFormValue("details")),
	}

	data := bookingPageData{
		Input:   input,
		MinDate: time.Now().Format(models.DateLayout),
	}
	if weekday, err := format.Weekday(input.Date); err == nil {
		data.Weekday = weekday
	}

	if err := s.validate.Struct(&input); err != nil {
		data.Error = "Please fill in all fields correctly."
		s.renderPage(w, "booking.html", data)
		return
	}

	booking, err := s.repo.CreateBooking(r.Context(), &input)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create booking")
		data.Error = "Something went wrong, please try again."
		s.renderPage(w, "booking.html", data)
		return
	}

	summary, err := render.Confirmation(booking)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to render confirmation")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.renderPage(w, "confirmation.html", map[string]any{"Summary": summary})
}

func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	type searchData struct {
		Email    string
		Phone    string
		Searched bool
		Results  any
		Error    string
	}

	if r.Method == http.MethodGet {
		s.renderPage(w, "search.html", searchData{})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	data := searchData{
		Email: strings.TrimSpace(r.PostFormValue("email")),
		Phone: strings.TrimSpace(r.PostFormValue("phone")),
	}

	if data.Email == "" && data.Phone == "" {
		data.Error = "Enter an email or phone number to search."
		s.renderPage(w, "search.html", data)
		return
	}

	results, err := s.repo.SearchBookings(r.Context(), data.Email, data.Phone)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to search bookings")
		data.Error = "Search failed, please try again."
		s.renderPage(w, "search.html", data)
		return
	}

	fragment, err := render.SearchResults(results)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to render search results")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data.Searched = true
	data.Results = fragment
	s.renderPage(w, "search.html", data)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	type loginData struct {
		Error string
	}

	if r.Method == http.MethodGet {
		s.renderPage(w, "login.html", loginData{})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	ok, err := s.verifier.Verify(r.Context(), username, password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to verify credentials")
		s.renderPage(w, "login.html", loginData{Error: "Login is temporarily unavailable."})
		return
	}
	if !ok {
		s.logger.Warn().Str("username", username).Msg("Rejected login attempt")
		s.renderPage(w, "login.html", loginData{Error: "Invalid username or password."})
		return
	}

	token := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		s.sessions.Revoke(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.repo.Stats(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute stats")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	bookings, err := s.repo.ListBookings(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list bookings")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	tiles, err := render.StatsTiles(stats)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	table, err := render.AdminTable(bookings)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.renderPage(w, "admin.html", map[string]any{
		"Stats": tiles,
		"Table": table,
	})
}

func (s *Server) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/admin/bookings/")
	raw, ok := strings.CutSuffix(path, "/delete")
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, "invalid booking id", http.StatusBadRequest)
		return
	}

	if err := s.repo.DeleteBooking(r.Context(), id); err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("Failed to delete booking")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.logger.Info().Int64("id", id).Msg("Booking deleted from dashboard")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
