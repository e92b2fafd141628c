package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ssmv/internal/models"
)

// FileStore persists the collection as one JSON array in a single file.
// A missing file reads as an empty collection.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) LoadAll(ctx context.Context) ([]models.Booking, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bookings file: %w", err)
	}

	var bookings []models.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("parse bookings file: %w", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (s *FileStore) SaveAll(ctx context.Context, bookings []models.Booking) error {
	if bookings == nil {
		bookings = []models.Booking{}
	}

	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bookings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bookings directory: %w", err)
	}

	// Write-then-rename keeps readers from ever seeing a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write bookings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace bookings file: %w", err)
	}
	return nil
}
