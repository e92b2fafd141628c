package repository

import (
	"context"
	"testing"
	"time"

	"ssmv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *DocumentRepository {
	t.Helper()
	store := NewFileStore(t.TempDir() + "/bookings.json")
	return NewDocumentRepository(store)
}

func sampleInput() *models.BookingInput {
	return &models.BookingInput{
		Name:           "Ivan Petrov",
		Email:          "ivan@example.com",
		Phone:          "+7 900 123-45-67",
		Date:           "2026-09-15",
		Time:           "18:30",
		NumberOfPeople: "4",
		Details:        "window seat",
	}
}

func TestCreateBooking(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	booking, err := repo.CreateBooking(ctx, sampleInput())
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.NotZero(t, booking.ID)
	assert.Equal(t, "Ivan Petrov", booking.Name)
	assert.Equal(t, 4, booking.NumberOfPeople)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.False(t, booking.CreatedAt.IsZero())

	bookings, err := repo.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, booking.ID, bookings[0].ID)
}

func TestCreateBookingInvalidPeople(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, raw := range []string{"", "abc", "0", "-2"} {
		input := sampleInput()
		input.NumberOfPeople = raw
		_, err := repo.CreateBooking(ctx, input)
		assert.Error(t, err, "numberOfPeople=%q", raw)
	}

	bookings, err := repo.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCreateBookingUniqueIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		booking, err := repo.CreateBooking(ctx, sampleInput())
		require.NoError(t, err)
		assert.False(t, seen[booking.ID], "duplicate id %d", booking.ID)
		seen[booking.ID] = true
	}
}

func TestDeleteBooking(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	booking, err := repo.CreateBooking(ctx, sampleInput())
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBooking(ctx, booking.ID))

	bookings, err := repo.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	// Deleting again is a no-op.
	require.NoError(t, repo.DeleteBooking(ctx, booking.ID))
}

func TestSearchBookings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := sampleInput()
	_, err := repo.CreateBooking(ctx, first)
	require.NoError(t, err)

	second := sampleInput()
	second.Email = "maria@example.com"
	second.Phone = "+7 911 555-00-11"
	_, err = repo.CreateBooking(ctx, second)
	require.NoError(t, err)

	t.Run("email exact match", func(t *testing.T) {
		results, err := repo.SearchBookings(ctx, "ivan@example.com", "")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Ivan Petrov", results[0].Name)
	})

	t.Run("email partial does not match", func(t *testing.T) {
		results, err := repo.SearchBookings(ctx, "ivan", "")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("phone substring match", func(t *testing.T) {
		results, err := repo.SearchBookings(ctx, "", "911 555")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "maria@example.com", results[0].Email)
	})

	t.Run("either term matches", func(t *testing.T) {
		results, err := repo.SearchBookings(ctx, "ivan@example.com", "911 555")
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("empty query matches nothing", func(t *testing.T) {
		results, err := repo.SearchBookings(ctx, "", "")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestStats(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalBookings)
	assert.Equal(t, 0, stats.TodayBookings)
	assert.Equal(t, 0, stats.TotalPeople)

	_, err = repo.CreateBooking(ctx, sampleInput())
	require.NoError(t, err)

	second := sampleInput()
	second.NumberOfPeople = "2"
	_, err = repo.CreateBooking(ctx, second)
	require.NoError(t, err)

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 6, stats.TotalPeople)
}

func TestComputeStatsToday(t *testing.T) {
	bookings := []models.Booking{
		{Date: "2026-09-01", NumberOfPeople: 3},
		{Date: "2026-09-01", NumberOfPeople: 2},
		{Date: "2026-09-02", NumberOfPeople: 5},
	}
	now, err := time.Parse(models.DateLayout, "2026-09-01")
	require.NoError(t, err)

	stats := computeStats(bookings, now)
	assert.Equal(t, 3, stats.TotalBookings)
	assert.Equal(t, 2, stats.TodayBookings)
	assert.Equal(t, 10, stats.TotalPeople)
}
