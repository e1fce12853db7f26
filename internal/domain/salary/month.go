package salary

import (
	"fmt"
	"time"
)

// Month is a calendar-month token (year + month, no day component).
// It is part of the idempotent generation key for salary records.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the token for the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" token.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	// Day 0 of the following month normalizes to the last day of m.
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date returns the date within the month on the given day, clamped to
// the month's last day.
func (m Month) Date(day int, loc *time.Location) time.Time {
	if d := m.Days(); day > d {
		day = d
	}
	if day < 1 {
		day = 1
	}
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, loc)
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Before reports whether m is strictly earlier than other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// Bounds returns the half-open interval [start, end) covering the
// month in the given location. Range queries use start <= t < end.
func (m Month) Bounds(loc *time.Location) (start, end time.Time) {
	start = time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, 0)
	return start, end
}
