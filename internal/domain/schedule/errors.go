package schedule

import (
	"errors"
	"fmt"
)

// ===============================
// Allocation errors
// ===============================

// CapacityError rejects an allocation that does not fit the free remainder
// of a period. Recoverable: the caller may retry with a shorter duration or
// the other period.
type CapacityError struct {
	Period    Period
	Requested int
	Remaining int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf(
		"capacity exceeded on %s: requested %d min, %d min remaining",
		e.Period, e.Requested, e.Remaining,
	)
}

func IsCapacity(err error) (CapacityError, bool) {
	var ce CapacityError
	if errors.As(err, &ce) {
		return ce, true
	}
	return CapacityError{}, false
}

// TransientError marks a failed durability write. No scheduling state was
// mutated, so the caller may retry the whole allocation.
type TransientError struct {
	Err error
}

func (e TransientError) Error() string {
	return "transient storage error: " + e.Err.Error()
}

func (e TransientError) Unwrap() error {
	return e.Err
}

func IsTransient(err error) bool {
	var te TransientError
	return errors.As(err, &te)
}

// ErrSlotConflict signals a confirm attempt against an interval already
// consumed by a concurrent confirm. Non-retryable: the caller must request
// a fresh allocation.
var ErrSlotConflict = errors.New("slot already confirmed")
