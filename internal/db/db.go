package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sharpfade/barbershop-booking/internal/config"
	"github.com/sharpfade/barbershop-booking/internal/domain/schedule"
	"github.com/sharpfade/barbershop-booking/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := SeedDayWindows(db, cfg); err != nil {
		log.Fatalf("failed to seed day windows: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Barber{},
		&models.Service{},
		&models.DayWindow{},
		&models.Booking{},
		&models.BookingItem{},
		&models.AuditLog{},
	)
}

// SeedDayWindows guarantees one window row per period and keeps the
// canonical spans in step with configuration. Cursors are left alone; the
// daily reset owns them.
func SeedDayWindows(db *gorm.DB, cfg *config.Config) error {
	spans := map[schedule.Period][2]int{
		schedule.PeriodMorning: {cfg.MorningStart, cfg.MorningEnd},
		schedule.PeriodEvening: {cfg.EveningStart, cfg.EveningEnd},
	}

	for _, period := range schedule.Periods() {
		span := spans[period]

		var row models.DayWindow
		err := db.Where("period = ?", string(period)).First(&row).Error
		if err == gorm.ErrRecordNotFound {
			row = models.DayWindow{
				Period:         string(period),
				CanonicalStart: span[0],
				CanonicalEnd:   span[1],
				NextFreeStart:  span[0],
			}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		if row.CanonicalStart != span[0] || row.CanonicalEnd != span[1] {
			row.CanonicalStart = span[0]
			row.CanonicalEnd = span[1]
			// Force a fresh reset so the cursor re-enters the new span.
			row.NextFreeStart = span[0]
			row.LastResetDate = ""
			if err := db.Save(&row).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
