package timezone

import "time"

// The shop runs on one clock. Every caller computes "today" through this
// package so the daily reset compares the same calendar date everywhere.
const DefaultTimezone = "Asia/Kolkata"

const DateLayout = "2006-01-02"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today returns the shop-local calendar date, no time component.
func Today(tz string) string {
	return NowIn(tz).Format(DateLayout)
}
