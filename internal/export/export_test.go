package export

import (
	"bytes"
	"testing"
	"time"

	"ssmv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:             1756710000000,
			Name:           "Ivan Petrov",
			Email:          "ivan@example.com",
			Phone:          "+7 900 123-45-67",
			Date:           "2026-09-15",
			Time:           "18:30",
			NumberOfPeople: 4,
			Status:         models.StatusConfirmed,
			CreatedAt:      time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	f, err := Workbook(bookings)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Bookings", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", name)

	date, err := f.GetCellValue("Bookings", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Sep 15, 2026", date)

	clock, err := f.GetCellValue("Bookings", "F2")
	require.NoError(t, err)
	assert.Equal(t, "6:30 PM", clock)
}

func TestWriteProducesReadableFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []models.Booking{{ID: 1, Name: "Maria"}}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Bookings", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)
}
