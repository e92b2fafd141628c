package domain

import (
	"context"

	"ssmv/internal/models"
)

// Repository is the booking collection contract. Implementations differ only
// in where the collection lives: a document store (file, redis), sqlite, or a
// remote HTTP API. Every call is a single attempt; persistence failures wrap
// and propagate without retry.
type Repository interface {
	CreateBooking(ctx context.Context, input *models.BookingInput) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	SearchBookings(ctx context.Context, email, phone string) ([]models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.Stats, error)
}

// Store persists the collection as one document: full load, full replace.
// Last write wins; callers serialize writers.
type Store interface {
	LoadAll(ctx context.Context) ([]models.Booking, error)
	SaveAll(ctx context.Context, bookings []models.Booking) error
}

// CredentialVerifier checks admin credentials. Either a local comparison
// against configured values or a round-trip to a remote login endpoint.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}
