package booking

import (
	"github.com/sharpfade/barbershop-booking/internal/domain/schedule"
	"github.com/sharpfade/barbershop-booking/internal/httperr"
	"github.com/sharpfade/barbershop-booking/internal/models"
)

// ===============================
// Line items
// ===============================

// BuildLineItems snapshots the requested services into booking line-items,
// rejecting unknown ids and gender-restricted services before any
// scheduling state is touched.
func BuildLineItems(
	services []models.Service,
	requestedIDs []uint,
	customerGender string,
) ([]models.BookingItem, error) {

	if len(requestedIDs) == 0 {
		return nil, httperr.ErrBusiness("no_services_selected")
	}

	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	seen := make(map[uint]bool, len(requestedIDs))
	items := make([]models.BookingItem, 0, len(requestedIDs))

	for _, id := range requestedIDs {
		if seen[id] {
			return nil, httperr.ErrBusiness("duplicate_service")
		}
		seen[id] = true

		svc, ok := byID[id]
		if !ok {
			return nil, httperr.ErrBusiness("service_not_found")
		}

		if !svc.MatchesCustomer(customerGender) {
			return nil, httperr.ErrBusiness("service_gender_mismatch")
		}

		items = append(items, models.BookingItem{
			ServiceID:   svc.ID,
			Name:        svc.Name,
			Price:       svc.Price,
			DurationMin: svc.DurationMin,
		})
	}

	return items, nil
}

// TotalDuration sums line-item durations in minutes.
func TotalDuration(items []models.BookingItem) int {
	total := 0
	for _, it := range items {
		total += it.DurationMin
	}
	return total
}

// TotalCost sums line-item prices. Always recomputed server-side; a total
// supplied by a client is never trusted.
func TotalCost(items []models.BookingItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Price
	}
	return total
}

// ValidateInterval checks a caller-supplied interval against the line-items
// it claims to cover.
func ValidateInterval(iv schedule.Interval, items []models.BookingItem) error {
	if iv.StartMinute < 0 || iv.StartMinute >= iv.EndMinute {
		return httperr.ErrBusiness("invalid_interval")
	}
	if iv.Width() != TotalDuration(items) {
		return httperr.ErrBusiness("interval_duration_mismatch")
	}
	return nil
}
