package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/voicenote/pkg/config"
)

// OpenTest opens a migrated in-memory SQLite database that is closed when the
// test ends.
func OpenTest(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()),
		},
	}
	db, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if _, err := Migrate(db, "sqlite", nil); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}
