package repository

import (
	"path/filepath"
	"testing"

	"wordpecker/internal/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrations := filepath.Join("..", "..", "migrations", db.Dialect.MigrationsSubdir())
	if err := db.RunMigrations(migrations); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}
