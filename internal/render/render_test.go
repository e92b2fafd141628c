package render

import (
	"testing"

	"ssmv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooking() models.Booking {
	return models.Booking{
		ID:             1756710000000,
		Name:           "Ivan Petrov",
		Email:          "ivan@example.com",
		Phone:          "+7 900 123-45-67",
		Date:           "2026-09-15",
		Time:           "18:30",
		NumberOfPeople: 4,
		Details:        "window seat",
		Status:         models.StatusConfirmed,
	}
}

func TestAdminTable(t *testing.T) {
	html, err := AdminTable([]models.Booking{testBooking()})
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "Ivan Petrov")
	assert.Contains(t, out, "Sep 15, 2026")
	assert.Contains(t, out, "6:30 PM")
	assert.Contains(t, out, `data-id="1756710000000"`)
	assert.Contains(t, out, "/admin/bookings/1756710000000/delete")
}

func TestAdminTableEmpty(t *testing.T) {
	html, err := AdminTable(nil)
	require.NoError(t, err)
	assert.Contains(t, string(html), "No bookings yet")
}

func TestAdminTableEscapesInput(t *testing.T) {
	b := testBooking()
	b.Name = `<script>alert("x")</script>`

	html, err := AdminTable([]models.Booking{b})
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}

func TestSearchResultsTableAndCards(t *testing.T) {
	html, err := SearchResults([]models.Booking{testBooking()})
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "results-table")
	assert.Contains(t, out, "result-card")
	assert.Contains(t, out, "4 guests")
}

func TestSearchResultsEmpty(t *testing.T) {
	html, err := SearchResults(nil)
	require.NoError(t, err)
	assert.Contains(t, string(html), "No bookings found")
}

func TestConfirmation(t *testing.T) {
	b := testBooking()
	html, err := Confirmation(&b)
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "Booking Confirmed")
	assert.Contains(t, out, "1756710000000")
	assert.Contains(t, out, "Sep 15, 2026")

	_, err = Confirmation(nil)
	assert.Error(t, err)
}

func TestStatsTiles(t *testing.T) {
	html, err := StatsTiles(&models.Stats{TotalBookings: 10, TodayBookings: 2, TotalPeople: 31})
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "Total Guests")

	_, err = StatsTiles(nil)
	assert.Error(t, err)
}
