package repository

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/sharpfade/barbershop-booking/internal/domain/schedule"
	"github.com/sharpfade/barbershop-booking/internal/httperr"
)

const (
	day1 = "2026-08-01"
	day2 = "2026-08-02"
)

func TestAllocate_ContiguousSameDay(t *testing.T) {
	store := NewScheduleGormStore(openTestDB(t))
	ctx := context.Background()

	first, err := store.Allocate(ctx, schedule.PeriodMorning, 60, day1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.StartMinute != 540 || first.EndMinute != 600 {
		t.Fatalf("expected [540,600), got %v", first)
	}

	second, err := store.Allocate(ctx, schedule.PeriodMorning, 90, day1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.StartMinute != 600 || second.EndMinute != 690 {
		t.Fatalf("expected [600,690), got %v", second)
	}

	_, err = store.Allocate(ctx, schedule.PeriodMorning, 120, day1)
	ce, ok := schedule.IsCapacity(err)
	if !ok {
		t.Fatalf("expected capacity error, got %v", err)
	}
	if ce.Remaining != 90 {
		t.Fatalf("expected remaining 90, got %d", ce.Remaining)
	}
}

func TestAllocate_NewDayResets(t *testing.T) {
	store := NewScheduleGormStore(openTestDB(t))
	ctx := context.Background()

	if _, err := store.Allocate(ctx, schedule.PeriodMorning, 240, day1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Morning is exhausted for day1.
	if _, err := store.Allocate(ctx, schedule.PeriodMorning, 30, day1); err == nil {
		t.Fatalf("expected capacity error on exhausted window")
	}

	// A new calendar day restores the full canonical span.
	iv, err := store.Allocate(ctx, schedule.PeriodMorning, 60, day2)
	if err != nil {
		t.Fatalf("expected no error after day rollover, got %v", err)
	}
	if iv.StartMinute != 540 || iv.EndMinute != 600 {
		t.Fatalf("expected [540,600) after reset, got %v", iv)
	}
}

func TestAllocate_PeriodsAreIndependent(t *testing.T) {
	store := NewScheduleGormStore(openTestDB(t))
	ctx := context.Background()

	if _, err := store.Allocate(ctx, schedule.PeriodMorning, 240, day1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Exhausting morning leaves evening untouched.
	iv, err := store.Allocate(ctx, schedule.PeriodEvening, 60, day1)
	if err != nil {
		t.Fatalf("expected no error on evening, got %v", err)
	}
	if iv.StartMinute != 840 || iv.EndMinute != 900 {
		t.Fatalf("expected [840,900), got %v", iv)
	}
}

func TestAllocate_InvalidInput(t *testing.T) {
	store := NewScheduleGormStore(openTestDB(t))
	ctx := context.Background()

	if _, err := store.Allocate(ctx, schedule.Period("afternoon"), 30, day1); !httperr.IsBusiness(err, "invalid_period") {
		t.Fatalf("expected invalid_period, got %v", err)
	}

	if _, err := store.Allocate(ctx, schedule.PeriodMorning, 0, day1); !httperr.IsBusiness(err, "invalid_duration") {
		t.Fatalf("expected invalid_duration, got %v", err)
	}
}

func TestResetIfNewDay_Idempotent(t *testing.T) {
	store := NewScheduleGormStore(openTestDB(t))
	ctx := context.Background()

	reset, err := store.ResetIfNewDay(ctx, day1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reset {
		t.Fatalf("expected first call to reset")
	}

	if _, err := store.Allocate(ctx, schedule.PeriodMorning, 60, day1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Second reset on the same date must not give back consumed capacity.
	reset, err = store.ResetIfNewDay(ctx, day1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reset {
		t.Fatalf("expected second call to be a no-op")
	}

	iv, err := store.Allocate(ctx, schedule.PeriodMorning, 30, day1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if iv.StartMinute != 600 {
		t.Fatalf("expected cursor preserved at 600, got %v", iv)
	}
}

func TestState_AppliesReset(t *testing.T) {
	store := NewScheduleGormStore(openTestDB(t))
	ctx := context.Background()

	if _, err := store.Allocate(ctx, schedule.PeriodMorning, 120, day1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	windows, err := store.State(ctx, day2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	for _, w := range windows {
		if w.NextFreeStart != w.CanonicalStart {
			t.Fatalf("window %s not reset: cursor %d", w.Period, w.NextFreeStart)
		}
	}
}

func TestAllocate_ConcurrentNoOverlap(t *testing.T) {
	store := NewScheduleGormStore(openTestDB(t))
	ctx := context.Background()

	// Morning holds 240 minutes: exactly 24 ten-minute slots.
	const callers = 30
	const duration = 10

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		got      []schedule.Interval
		rejected int
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			iv, err := store.Allocate(ctx, schedule.PeriodMorning, duration, day1)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if _, ok := schedule.IsCapacity(err); !ok {
					t.Errorf("unexpected error: %v", err)
				}
				rejected++
				return
			}
			got = append(got, iv)
		}()
	}
	wg.Wait()

	if len(got) != 24 || rejected != callers-24 {
		t.Fatalf("expected 24 allocations and %d rejections, got %d/%d", callers-24, len(got), rejected)
	}

	sort.Slice(got, func(i, j int) bool { return got[i].StartMinute < got[j].StartMinute })

	prevEnd := 540
	for _, iv := range got {
		if iv.StartMinute != prevEnd {
			t.Fatalf("gap or overlap at %v (previous end %d)", iv, prevEnd)
		}
		if iv.Width() != duration {
			t.Fatalf("interval %v has width %d, want %d", iv, iv.Width(), duration)
		}
		if iv.EndMinute > 780 {
			t.Fatalf("interval %v extends past canonical end", iv)
		}
		prevEnd = iv.EndMinute
	}
}
