package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"ssmv/internal/auth"
	"ssmv/internal/config"
	"ssmv/internal/models"
	"ssmv/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *Server {
	t.Helper()

	store := repository.NewFileStore(filepath.Join(t.TempDir(), "bookings.json"))
	repo := repository.NewDocumentRepository(store)
	verifier := auth.NewLocalVerifier("admin", "secret")
	logger := zerolog.Nop()

	return NewServer(config.ServerConfig{Port: 0}, config.RateLimitConfig{}, repo, verifier, &logger)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func validBookingBody() map[string]string {
	return map[string]string{
		"name":           "Ivan Petrov",
		"email":          "ivan@example.com",
		"phone":          "+7 900 123-45-67",
		"date":           "2026-09-15",
		"time":           "18:30",
		"numberOfPeople": "4",
		"details":        "window seat",
	}
}

func TestCreateAndListBookingsAPI(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/bookings", validBookingBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.StatusConfirmed, created.Status)

	rec = doJSON(t, srv, http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var bookings []models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, created.ID, bookings[0].ID)
}

func TestCreateBookingValidation(t *testing.T) {
	srv := setupServer(t)

	cases := map[string]func(map[string]string){
		"missing name":  func(b map[string]string) { delete(b, "name") },
		"bad email":     func(b map[string]string) { b["email"] = "not-an-email" },
		"bad date":      func(b map[string]string) { b["date"] = "15.09.2026" },
		"bad time":      func(b map[string]string) { b["time"] = "6pm" },
		"bad people":    func(b map[string]string) { b["numberOfPeople"] = "many" },
		"missing phone": func(b map[string]string) { delete(b, "phone") },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			body := validBookingBody()
			mutate(body)
			rec := doJSON(t, srv, http.MethodPost, "/api/bookings", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestDeleteBookingAPI(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/bookings", validBookingBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+itoa(created.ID), nil)
	del := httptest.NewRecorder()
	srv.Handler().ServeHTTP(del, req)
	require.Equal(t, http.StatusOK, del.Code)

	// The second delete reports the booking as gone.
	req = httptest.NewRequest(http.MethodDelete, "/api/bookings/"+itoa(created.ID), nil)
	del = httptest.NewRecorder()
	srv.Handler().ServeHTTP(del, req)
	assert.Equal(t, http.StatusNotFound, del.Code)
}

func TestDeleteBookingBadID(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/abc", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchBookingsAPI(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/bookings", validBookingBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/bookings/search", map[string]string{"email": "ivan@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var results []models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Len(t, results, 1)

	rec = doJSON(t, srv, http.MethodPost, "/api/bookings/search", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginAPI(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/admin/login", map[string]string{
		"username": "admin", "password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	rec = doJSON(t, srv, http.MethodPost, "/api/admin/login", map[string]string{
		"username": "admin", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestStatsAPI(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/bookings", validBookingBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalBookings)
	assert.Equal(t, 4, stats.TotalPeople)
}

func TestHealthAPI(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestExportAPI(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/bookings", validBookingBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/bookings/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestRateLimitRejects(t *testing.T) {
	store := repository.NewFileStore(filepath.Join(t.TempDir(), "bookings.json"))
	repo := repository.NewDocumentRepository(store)
	verifier := auth.NewLocalVerifier("admin", "secret")
	logger := zerolog.Nop()

	srv := NewServer(config.ServerConfig{Port: 0}, config.RateLimitConfig{RPS: 1, Burst: 1}, repo, verifier, &logger)

	first := doJSON(t, srv, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, srv, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
