package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ssmv/internal/models"
)

// RemoteRepository fronts a booking API served elsewhere. Each operation is
// one HTTP request; the server owns all collection state. Non-2xx responses
// become errors carrying the server-provided message when present.
type RemoteRepository struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteRepository(baseURL string, timeout time.Duration) *RemoteRepository {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (r *RemoteRepository) CreateBooking(ctx context.Context, input *models.BookingInput) (*models.Booking, error) {
	var booking models.Booking
	if err := r.call(ctx, http.MethodPost, "/api/bookings", input, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *RemoteRepository) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.call(ctx, http.MethodGet, "/api/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (r *RemoteRepository) SearchBookings(ctx context.Context, email, phone string) ([]models.Booking, error) {
	body := map[string]string{"email": email, "phone": phone}
	var bookings []models.Booking
	if err := r.call(ctx, http.MethodPost, "/api/bookings/search", body, &bookings); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (r *RemoteRepository) DeleteBooking(ctx context.Context, id int64) error {
	err := r.call(ctx, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", id), nil, nil)
	if err != nil {
		// An already-gone booking keeps delete idempotent.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil
		}
		return err
	}
	return nil
}

func (r *RemoteRepository) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := r.call(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// APIError is a non-2xx response from the remote booking API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api request failed with status %d", e.StatusCode)
}

func (r *RemoteRepository) call(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
