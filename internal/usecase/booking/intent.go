package booking

import (
	"context"

	"github.com/sharpfade/barbershop-booking/internal/audit"
	domain "github.com/sharpfade/barbershop-booking/internal/domain/booking"
	"github.com/sharpfade/barbershop-booking/internal/domain/schedule"
	"github.com/sharpfade/barbershop-booking/internal/httperr"
	"github.com/sharpfade/barbershop-booking/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type IntentInput struct {
	CustomerID uint
	Period     string
	ServiceIDs []uint
}

type IntentResult struct {
	Period           schedule.Period   `json:"period"`
	Interval         schedule.Interval `json:"interval"`
	TotalDurationMin int               `json:"total_duration_min"`
	TotalCost        float64           `json:"total_cost"`
	Date             string            `json:"date"`
}

// ======================================================
// USE CASE
// ======================================================

// BookingIntent validates the requested services against the customer and
// reserves a contiguous interval from the chosen period. Validation happens
// entirely before the allocator is touched, so a rejected request consumes
// no capacity.
type BookingIntent struct {
	repo  domain.Repository
	store schedule.Store
	audit *audit.Dispatcher
	tz    string
}

func NewBookingIntent(
	repo domain.Repository,
	store schedule.Store,
	auditDispatcher *audit.Dispatcher,
	tz string,
) *BookingIntent {
	return &BookingIntent{
		repo:  repo,
		store: store,
		audit: auditDispatcher,
		tz:    tz,
	}
}

func (uc *BookingIntent) Execute(
	ctx context.Context,
	in IntentInput,
) (*IntentResult, error) {

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

	totalDuration := domain.TotalDuration(items)
	today := timezone.Today(uc.tz)

	iv, err := uc.store.Allocate(ctx, period, totalDuration, today)
	if err != nil {
		if _, isCapacity := schedule.IsCapacity(err); isCapacity {
			uc.audit.Dispatch(audit.Event{
				ActorRole: "customer",
				ActorID:   &in.CustomerID,
				Action:    "booking_capacity_exceeded",
				Entity:    "day_window",
				Metadata: map[string]any{
					"period":   string(period),
					"duration": totalDuration,
				},
			})
		}
		return nil, err
	}

	return &IntentResult{
		Period:           period,
		Interval:         iv,
		TotalDurationMin: totalDuration,
		TotalCost:        domain.TotalCost(items),
		Date:             today,
	}, nil
}
