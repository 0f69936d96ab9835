// Package testutil provides an isolated database and data fixtures for tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/suteetoe/kazi/pkg/config"
	"github.com/suteetoe/kazi/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory sqlite database with the full schema.
// The database is dropped when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DBConfig{
		Driver: config.DriverSQLite,
		// A named shared-cache database lives as long as one connection is open.
		DBName:       "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     logger.Silent,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
