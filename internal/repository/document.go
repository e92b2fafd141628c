package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"ssmv/internal/domain"
	"ssmv/internal/models"
)

// DocumentRepository keeps the whole collection in a single document behind a
// Store. Every mutation is a full load-modify-replace; a mutex serializes
// writers since the stores themselves offer no transaction.
type DocumentRepository struct {
	store domain.Store
	mu    sync.Mutex
}

func NewDocumentRepository(store domain.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (r *DocumentRepository) CreateBooking(ctx context.Context, input *models.BookingInput) (*models.Booking, error) {
	people, err := parsePeople(input.NumberOfPeople)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	booking := models.Booking{
		ID:             nextID(bookings),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Date:           input.Date,
		Time:           input.Time,
		NumberOfPeople: people,
		Details:        input.Details,
		Status:         models.StatusConfirmed,
		CreatedAt:      time.Now(),
	}

	bookings = append(bookings, booking)
	if err := r.store.SaveAll(ctx, bookings); err != nil {
		return nil, fmt.Errorf("save bookings: %w", err)
	}
	return &booking, nil
}

func (r *DocumentRepository) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	return bookings, nil
}

func (r *DocumentRepository) SearchBookings(ctx context.Context, email, phone string) ([]models.Booking, error) {
	bookings, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	results := make([]models.Booking, 0)
	for _, b := range bookings {
		if matchesContact(b, email, phone) {
			results = append(results, b)
		}
	}
	return results, nil
}

func (r *DocumentRepository) DeleteBooking(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}

	kept := bookings[:0]
	for _, b := range bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(bookings) {
		// Absent id is a no-op, not an error.
		return nil
	}

	if err := r.store.SaveAll(ctx, kept); err != nil {
		return fmt.Errorf("save bookings: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Stats(ctx context.Context) (*models.Stats, error) {
	bookings, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	return computeStats(bookings, time.Now()), nil
}

// nextID derives ids from the wall clock in milliseconds, bumping past any
// existing id so that a same-millisecond create never collides.
func nextID(bookings []models.Booking) int64 {
	id := time.Now().UnixMilli()
	for _, b := range bookings {
		if b.ID >= id {
			id = b.ID + 1
		}
	}
	return id
}

// matchesContact mirrors the search contract: exact match on email,
// substring match on phone. An empty term never matches.
func matchesContact(b models.Booking, email, phone string) bool {
	if email != "" && b.Email == email {
		return true
	}
	if phone != "" && strings.Contains(b.Phone, phone) {
		return true
	}
	return false
}

func computeStats(bookings []models.Booking, now time.Time) *models.Stats {
	today := now.Format(models.DateLayout)
	stats := &models.Stats{TotalBookings: len(bookings)}
	for _, b := range bookings {
		if b.Date == today {
			stats.TodayBookings++
		}
		stats.TotalPeople += b.NumberOfPeople
	}
	return stats
}

func parsePeople(raw string) (int, error) {
	people, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid numberOfPeople %q: %w", raw, err)
	}
	if people <= 0 {
		return 0, fmt.Errorf("invalid numberOfPeople %q: must be positive", raw)
	}
	return people, nil
}
