package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sharpfade/barbershop-booking/internal/audit"
	"github.com/sharpfade/barbershop-booking/internal/config"
	dbpkg "github.com/sharpfade/barbershop-booking/internal/db"
	"github.com/sharpfade/barbershop-booking/internal/infra/repository"
	"github.com/sharpfade/barbershop-booking/internal/models"
)

const testTZ = "UTC"

type fixture struct {
	db      *gorm.DB
	repo    *repository.BookingGormRepository
	store   *repository.ScheduleGormStore
	guard   *memoryGuard
	intent  *BookingIntent
	confirm *ConfirmBooking

	customer models.Customer
	haircut  models.Service
	beard    models.Service
	blowdry  models.Service
}

// memoryGuard stands in for the redis guard in tests.
type memoryGuard struct {
	mu   sync.Mutex
	held map[string]bool
}

func newMemoryGuard() *memoryGuard {
	return &memoryGuard{held: make(map[string]bool)}
}

func (g *memoryGuard) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *memoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	return nil
}

func newFixture(t *testing.T) *fixture {
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

	f := &fixture{
		db:    db,
		repo:  repository.NewBookingGormRepository(db),
		store: repository.NewScheduleGormStore(db),
		guard: newMemoryGuard(),
	}

	dispatcher := audit.NewDispatcher(audit.New(db))
	f.intent = NewBookingIntent(f.repo, f.store, dispatcher, testTZ)
	f.confirm = NewConfirmBooking(f.repo, f.store, f.guard, dispatcher, testTZ)

	f.customer = models.Customer{
		FirstName: "Ravi", LastName: "Kumar", Gender: models.GenderMale,
		Email: "ravi@example.com", Phone: "9876543210", PasswordHash: "x",
	}
	if err := db.Create(&f.customer).Error; err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}

	f.haircut = models.Service{Name: "Haircut", Price: 20, DurationMin: 60, Gender: models.GenderUnisex}
	f.beard = models.Service{Name: "Beard Trim", Price: 10, DurationMin: 30, Gender: models.GenderMale}
	f.blowdry = models.Service{Name: "Blow Dry", Price: 15, DurationMin: 30, Gender: models.GenderFemale}
	for _, svc := range []*models.Service{&f.haircut, &f.beard, &f.blowdry} {
		if err := db.Create(svc).Error; err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
	}

	return f
}

func (f *fixture) morningCursor(t *testing.T) int {
	t.Helper()
	var row models.DayWindow
	if err := f.db.Where("period = ?", "morning").First(&row).Error; err != nil {
		t.Fatalf("failed to load morning window: %v", err)
	}
	return row.NextFreeStart
}
