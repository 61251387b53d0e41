package schedule

import "github.com/sharpfade/barbershop-booking/internal/httperr"

// Window is the mutable daily state of one period: a fixed canonical span
// plus the cursor separating consumed from free capacity.
// Invariant: CanonicalStart <= NextFreeStart <= CanonicalEnd.
type Window struct {
	Period         Period `json:"period"`
	CanonicalStart int    `json:"canonical_start"`
	CanonicalEnd   int    `json:"canonical_end"`
	NextFreeStart  int    `json:"next_free_start"`
}

func NewWindow(period Period, canonicalStart, canonicalEnd int) Window {
	return Window{
		Period:         period,
		CanonicalStart: canonicalStart,
		CanonicalEnd:   canonicalEnd,
		NextFreeStart:  canonicalStart,
	}
}

func (w Window) Remaining() int {
	return w.CanonicalEnd - w.NextFreeStart
}

// Carve reserves a contiguous sub-interval of the free remainder, appending
// to the consumed region. The cursor only ever moves forward within a day.
func (w *Window) Carve(durationMinutes int) (Interval, error) {
	if durationMinutes < 1 {
		return Interval{}, httperr.ErrBusiness("invalid_duration")
	}

	remaining := w.Remaining()
	if durationMinutes > remaining {
		return Interval{}, CapacityError{
			Period:    w.Period,
			Requested: durationMinutes,
			Remaining: remaining,
		}
	}

	iv := Interval{
		StartMinute: w.NextFreeStart,
		EndMinute:   w.NextFreeStart + durationMinutes,
	}
	w.NextFreeStart = iv.EndMinute
	return iv, nil
}

// Reset restores the full canonical span.
func (w *Window) Reset() {
	w.NextFreeStart = w.CanonicalStart
}

// Contains reports whether an interval lies within the canonical span.
func (w Window) Contains(iv Interval) bool {
	return iv.StartMinute >= w.CanonicalStart && iv.EndMinute <= w.CanonicalEnd
}
