package schedule

import "context"

// Store owns the daily window state. All access to the windows goes through
// this contract; nothing else mutates the cursors.
//
// The reset-check, capacity-check and cursor advance of Allocate execute as
// one serialized unit per period: concurrent calls for the same period never
// overlap, and calls for different periods do not contend on each other.
type Store interface {
	// State returns both windows after applying the daily reset for today.
	State(ctx context.Context, today string) ([]Window, error)

	// ResetIfNewDay restores every window whose last reset is not today.
	// Returns whether any reset occurred. Idempotent within a day.
	ResetIfNewDay(ctx context.Context, today string) (bool, error)

	// Allocate reserves durationMinutes of contiguous capacity from the
	// period's free remainder. An allocation is reported successful only
	// after the advanced cursor is durably committed.
	Allocate(ctx context.Context, period Period, durationMinutes int, today string) (Interval, error)
}
