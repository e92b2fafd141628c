package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ssmv/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformBackupSQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "bookings.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	_, err = db.CreateBooking(context.Background(), testInput())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	backupDir := filepath.Join(dir, "backups")
	logger := zerolog.Nop()
	service := NewBackupService(dbPath, true, config.BackupConfig{
		Enabled:     true,
		StoragePath: backupDir,
	}, &logger)

	require.NoError(t, service.PerformBackup())

	files, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0].Name(), "backup_")
}

func TestPerformBackupFileCopy(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "bookings.json")
	require.NoError(t, os.WriteFile(srcPath, []byte(`[{"id":1}]`), 0o644))

	backupDir := filepath.Join(dir, "backups")
	logger := zerolog.Nop()
	service := NewBackupService(srcPath, false, config.BackupConfig{
		Enabled:     true,
		StoragePath: backupDir,
	}, &logger)

	require.NoError(t, service.PerformBackup())

	files, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(filepath.Join(backupDir, files[0].Name()))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(data))
}

func TestCleanupOldBackupsKeepsRecent(t *testing.T) {
	dir := t.TempDir()
	recent := filepath.Join(dir, "backup_recent.db")
	require.NoError(t, os.WriteFile(recent, []byte("x"), 0o644))

	logger := zerolog.Nop()
	service := NewBackupService("", true, config.BackupConfig{
		RetentionDays: 7,
		StoragePath:   dir,
	}, &logger)

	service.CleanupOldBackups()

	_, err := os.Stat(recent)
	assert.NoError(t, err)
}
