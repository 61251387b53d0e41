package repository

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/sharpfade/barbershop-booking/internal/domain/schedule"
	"github.com/sharpfade/barbershop-booking/internal/httperr"
	"github.com/sharpfade/barbershop-booking/internal/models"
)

// ScheduleGormStore is the single owner of the day-window rows. Each period
// has its own mutex, so the reset-check / capacity-check / cursor-advance
// sequence runs as one serialized unit per period while morning and evening
// allocations proceed in parallel.
type ScheduleGormStore struct {
	db *gorm.DB
	mu map[schedule.Period]*sync.Mutex
}

func NewScheduleGormStore(db *gorm.DB) *ScheduleGormStore {
	mu := make(map[schedule.Period]*sync.Mutex, len(schedule.Periods()))
	for _, p := range schedule.Periods() {
		mu[p] = &sync.Mutex{}
	}
	return &ScheduleGormStore{db: db, mu: mu}
}

// --------------------------------------------------
// State
// --------------------------------------------------

func (s *ScheduleGormStore) State(
	ctx context.Context,
	today string,
) ([]schedule.Window, error) {

	if _, err := s.ResetIfNewDay(ctx, today); err != nil {
		return nil, err
	}

	var rows []models.DayWindow
	if err := s.db.WithContext(ctx).
		Order("canonical_start ASC").
		Find(&rows).Error; err != nil {
		return nil, schedule.TransientError{Err: err}
	}

	windows := make([]schedule.Window, 0, len(rows))
	for _, row := range rows {
		windows = append(windows, toWindow(row))
	}
	return windows, nil
}

// --------------------------------------------------
// Daily reset
// --------------------------------------------------

// ResetIfNewDay walks the periods in their fixed order, restoring any
// window not yet stamped with today. Comparison is calendar-date equality:
// after a gap in traffic the window resets to the current date, never an
// incremented one.
func (s *ScheduleGormStore) ResetIfNewDay(
	ctx context.Context,
	today string,
) (bool, error) {

	reset := false

	for _, period := range schedule.Periods() {
		didReset, err := s.resetPeriod(ctx, period, today)
		if err != nil {
			return false, schedule.TransientError{Err: err}
		}
		if didReset {
			reset = true
		}
	}

	return reset, nil
}

func (s *ScheduleGormStore) resetPeriod(
	ctx context.Context,
	period schedule.Period,
	today string,
) (bool, error) {

	mu := s.mu[period]
	mu.Lock()
	defer mu.Unlock()

	reset := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.DayWindow
		if err := tx.Where("period = ?", string(period)).First(&row).Error; err != nil {
			return err
		}

		if row.LastResetDate == today {
			return nil
		}

		row.NextFreeStart = row.CanonicalStart
		row.LastResetDate = today
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		reset = true
		return nil
	})

	return reset, err
}

// --------------------------------------------------
// Allocation
// --------------------------------------------------

func (s *ScheduleGormStore) Allocate(
	ctx context.Context,
	period schedule.Period,
	durationMinutes int,
	today string,
) (schedule.Interval, error) {

	mu, ok := s.mu[period]
	if !ok {
		return schedule.Interval{}, httperr.ErrBusiness("invalid_period")
	}

	mu.Lock()
	defer mu.Unlock()

	var iv schedule.Interval

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.DayWindow
		if err := tx.Where("period = ?", string(period)).First(&row).Error; err != nil {
			return err
		}

		// Day rollover happens-before the capacity check, so a request is
		// never rejected on yesterday's exhausted cursor.
		if row.LastResetDate != today {
			row.NextFreeStart = row.CanonicalStart
			row.LastResetDate = today
		}

		w := toWindow(row)
		carved, err := w.Carve(durationMinutes)
		if err != nil {
			return err
		}

		row.NextFreeStart = w.NextFreeStart
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		iv = carved
		return nil
	})

	if err != nil {
		// Rule rejections pass through untouched; anything else means the
		// cursor was rolled back and the caller may retry.
		if _, isCapacity := schedule.IsCapacity(err); isCapacity {
			return schedule.Interval{}, err
		}
		var be httperr.BusinessError
		if errors.As(err, &be) {
			return schedule.Interval{}, err
		}
		return schedule.Interval{}, schedule.TransientError{Err: err}
	}

	return iv, nil
}

func toWindow(row models.DayWindow) schedule.Window {
	return schedule.Window{
		Period:         schedule.Period(row.Period),
		CanonicalStart: row.CanonicalStart,
		CanonicalEnd:   row.CanonicalEnd,
		NextFreeStart:  row.NextFreeStart,
	}
}

// Compile-time check
var _ schedule.Store = (*ScheduleGormStore)(nil)
