package schedule

import (
	"fmt"
	"strings"
	"time"
)

// ===============================
// Period
// ===============================

type Period string

const (
	PeriodMorning Period = "morning"
	PeriodEvening Period = "evening"
)

// Periods lists every period in a fixed order. Code that touches more than
// one window must iterate in this order to keep lock acquisition consistent.
func Periods() []Period {
	return []Period{PeriodMorning, PeriodEvening}
}

func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodMorning:
		return PeriodMorning, nil
	case PeriodEvening:
		return PeriodEvening, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// ===============================
// Interval
// ===============================

// Interval is a half-open [StartMinute, EndMinute) range in minutes since
// midnight, shop-local time.
type Interval struct {
	StartMinute int `json:"start_time"`
	EndMinute   int `json:"end_time"`
}

func (iv Interval) Width() int {
	return iv.EndMinute - iv.StartMinute
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.StartMinute < other.EndMinute && iv.EndMinute > other.StartMinute
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s-%s", FormatMinute(iv.StartMinute), FormatMinute(iv.EndMinute))
}

// ===============================
// Minute-of-day helpers
// ===============================

const minutesPerDay = 24 * 60

// ParseMinute converts "HH:MM" into minutes since midnight.
func ParseMinute(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseSpan converts "HH:MM-HH:MM" into a canonical [start, end) span.
func ParseSpan(span string) (start, end int, err error) {
	parts := strings.SplitN(strings.TrimSpace(span), "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid window span %q", span)
	}

	start, err = ParseMinute(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid window span %q: %w", span, err)
	}
	end, err = ParseMinute(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid window span %q: %w", span, err)
	}

	if start >= end || end > minutesPerDay {
		return 0, 0, fmt.Errorf("invalid window span %q", span)
	}
	return start, end, nil
}
