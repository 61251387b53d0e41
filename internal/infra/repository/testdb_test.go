package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sharpfade/barbershop-booking/internal/config"
	dbpkg "github.com/sharpfade/barbershop-booking/internal/db"
)

// openTestDB spins up an isolated in-memory sqlite database with the full
// schema and seeded day windows (morning 09:00-13:00, evening 14:00-19:00).
// A single connection keeps every goroutine on the same in-memory store.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		MorningStart: 540,
		MorningEnd:   780,
		EveningStart: 840,
		EveningEnd:   1140,
	}
	if err := dbpkg.SeedDayWindows(db, cfg); err != nil {
		t.Fatalf("failed to seed day windows: %v", err)
	}

	return db
}
