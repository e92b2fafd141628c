package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ssmv/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the sqlite-backed booking repository.
type DB struct {
	db *sql.DB
}

func NewDB(path string) (*DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &DB{db: db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
            id INTEGER PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            phone TEXT NOT NULL,
            date TEXT NOT NULL,
            time TEXT NOT NULL,
            number_of_people INTEGER NOT NULL,
            details TEXT,
            status TEXT NOT NULL DEFAULT 'confirmed',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE INDEX IF NOT EXISTS idx_bookings_email ON bookings(email)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_phone ON bookings(phone)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings(date)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

const bookingColumns = `id, name, email, phone, date, time, number_of_people, details, status, created_at`

func (db *DB) CreateBooking(ctx context.Context, input *models.BookingInput) (*models.Booking, error) {
	people, err := strconv.Atoi(strings.TrimSpace(input.NumberOfPeople))
	if err != nil || people <= 0 {
		return nil, fmt.Errorf("invalid numberOfPeople %q", input.NumberOfPeople)
	}

	booking := models.Booking{
		ID:             time.Now().UnixMilli(),
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

	query := `INSERT INTO bookings (
				id, name, email, phone, date, time,
				number_of_people, details, status, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for {
		_, err := db.db.ExecContext(ctx, query,
			booking.ID,
			booking.Name,
			booking.Email,
			booking.Phone,
			booking.Date,
			booking.Time,
			booking.NumberOfPeople,
			booking.Details,
			booking.Status,
			booking.CreatedAt,
		)
		if err == nil {
			break
		}
		// Same-millisecond creates collide on the clock-derived id.
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "PRIMARY KEY") {
			booking.ID++
			continue
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return &booking, nil
}

func (db *DB) ListBookings(ctx context.Context) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at`
	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (db *DB) SearchBookings(ctx context.Context, email, phone string) ([]models.Booking, error) {
	if email == "" && phone == "" {
		return []models.Booking{}, nil
	}

	// Email matches exactly, phone as substring.
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE (? != '' AND email = ?)
                 OR (? != '' AND instr(phone, ?) > 0)
              ORDER BY created_at`
	rows, err := db.db.QueryContext(ctx, query, email, email, phone, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (db *DB) DeleteBooking(ctx context.Context, id int64) error {
	query := `DELETE FROM bookings WHERE id = ?`
	if _, err := db.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func (db *DB) Stats(ctx context.Context) (*models.Stats, error) {
	today := time.Now().Format(models.DateLayout)

	query := `SELECT COUNT(*),
                     COALESCE(SUM(CASE WHEN date = ? THEN 1 ELSE 0 END), 0),
                     COALESCE(SUM(number_of_people), 0)
              FROM bookings`

	var stats models.Stats
	err := db.db.QueryRowContext(ctx, query, today).Scan(
		&stats.TotalBookings,
		&stats.TodayBookings,
		&stats.TotalPeople,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &stats, nil
}

func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Email,
			&b.Phone,
			&b.Date,
			&b.Time,
			&b.NumberOfPeople,
			&b.Details,
			&b.Status,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (db *DB) Close() error {
	return db.db.Close()
}
