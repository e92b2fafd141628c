// Package export writes booking collections out as xlsx workbooks.
package export

import (
	"fmt"
	"io"

	"ssmv/internal/format"
	"ssmv/internal/models"

	"github.com/xuri/excelize/v2"
)

var headers = []string{"ID", "Name", "Email", "Phone", "Date", "Time", "Guests", "Details", "Status", "Created At"}

// Workbook builds an xlsx file with one row per booking.
func Workbook(bookings []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Bookings"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, b := range bookings {
		date := b.Date
		if formatted, err := format.Date(b.Date); err == nil {
			date = formatted
		}
		clock := b.Time
		if formatted, err := format.Time(b.Time); err == nil {
			clock = formatted
		}

		values := []any{
			b.ID, b.Name, b.Email, b.Phone, date, clock,
			b.NumberOfPeople, b.Details, b.Status,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
			}
		}
	}

	return f, nil
}

// Write streams the workbook for bookings to w.
func Write(w io.Writer, bookings []models.Booking) error {
	f, err := Workbook(bookings)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
