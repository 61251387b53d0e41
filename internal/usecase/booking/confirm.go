package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sharpfade/barbershop-booking/internal/audit"
	domain "github.com/sharpfade/barbershop-booking/internal/domain/booking"
	"github.com/sharpfade/barbershop-booking/internal/domain/schedule"
	"github.com/sharpfade/barbershop-booking/internal/httperr"
	"github.com/sharpfade/barbershop-booking/internal/models"
	"github.com/sharpfade/barbershop-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ConfirmInput struct {
	CustomerID  uint
	Period      string
	StartMinute int
	EndMinute   int
	ServiceIDs  []uint
}

// How long a confirm fence outlives its booking day.
const confirmGuardTTL = 24 * time.Hour

// ======================================================
// USE CASE
// ======================================================

// ConfirmBooking records a reservation for an interval previously returned
// by the allocator. It never re-checks capacity (the allocator is the sole
// source of truth for interval validity) but it does recompute every derived
// total: a caller-supplied cost or mismatched interval width is rejected,
// never trusted.
type ConfirmBooking struct {
	repo  domain.Repository
	store schedule.Store
	guard IdempotencyGuard
	audit *audit.Dispatcher
	tz    string
}

func NewConfirmBooking(
	repo domain.Repository,
	store schedule.Store,
	guard IdempotencyGuard,
	auditDispatcher *audit.Dispatcher,
	tz string,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:  repo,
		store: store,
		guard: guard,
		audit: auditDispatcher,
		tz:    tz,
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	in ConfirmInput,
) (*models.Booking, error) {

	period, err := schedule.ParsePeriod(in.Period)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_period")
	}

	customer, err := uc.repo.GetCustomerByID(ctx, in.CustomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("customer_not_found")
	}

	services, err := uc.repo.GetServicesByIDs(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	items, err := domain.BuildLineItems(services, in.ServiceIDs, customer.Gender)
	if err != nil {
		return nil, err
	}

	iv := schedule.Interval{StartMinute: in.StartMinute, EndMinute: in.EndMinute}
	if err := domain.ValidateInterval(iv, items); err != nil {
		return nil, err
	}

	today := timezone.Today(uc.tz)

	window, err := uc.windowFor(ctx, period, today)
	if err != nil {
		return nil, err
	}
	if !window.Contains(iv) {
		return nil, httperr.ErrBusiness("interval_outside_window")
	}

	// Fence the interval so a retried confirm cannot record twice.
	key := confirmKey(in.CustomerID, today, period, iv)
	acquired, err := uc.guard.Acquire(ctx, key, confirmGuardTTL)
	if err != nil {
		return nil, schedule.TransientError{Err: err}
	}
	if !acquired {
		uc.auditConflict(customer.ID, period, iv)
		return nil, schedule.ErrSlotConflict
	}

	b := &models.Booking{
		Reference:  uuid.NewString(),
		CustomerID: customer.ID,

		Name:   customer.FirstName + " " + customer.LastName,
		Phone:  customer.Phone,
		Email:  customer.Email,
		Gender: customer.Gender,

		Date:        today,
		Period:      string(period),
		StartMinute: iv.StartMinute,
		EndMinute:   iv.EndMinute,

		TotalCost: domain.TotalCost(items),
		Items:     items,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		if httperr.IsUniqueViolation(err) || httperr.IsExclusionConflict(err) {
			// The slot row already exists: a concurrent confirm won.
			uc.auditConflict(customer.ID, period, iv)
			return nil, schedule.ErrSlotConflict
		}

		// Storage failed before anything durable happened; free the fence
		// so the same confirm can be retried.
		_ = uc.guard.Release(ctx, key)
		return nil, schedule.TransientError{Err: err}
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "customer",
		ActorID:   &customer.ID,
		Action:    "booking_confirmed",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	return b, nil
}

func (uc *ConfirmBooking) auditConflict(customerID uint, period schedule.Period, iv schedule.Interval) {
	uc.audit.Dispatch(audit.Event{
		ActorRole: "customer",
		ActorID:   &customerID,
		Action:    "booking_conflict",
		Entity:    "booking",
		Metadata: map[string]any{
			"period":   string(period),
			"interval": iv.String(),
		},
	})
}

func (uc *ConfirmBooking) windowFor(
	ctx context.Context,
	period schedule.Period,
	today string,
) (schedule.Window, error) {

	windows, err := uc.store.State(ctx, today)
	if err != nil {
		return schedule.Window{}, err
	}
	for _, w := range windows {
		if w.Period == period {
			return w, nil
		}
	}
	return schedule.Window{}, httperr.ErrBusiness("invalid_period")
}

func confirmKey(customerID uint, today string, period schedule.Period, iv schedule.Interval) string {
	return fmt.Sprintf(
		"booking:confirm:%d:%s:%s:%d-%d",
		customerID, today, period, iv.StartMinute, iv.EndMinute,
	)
}
