// Package types implements special types for the finance tracker.
package types

import (
	"fmt"
	"time"
)

// Month is a month in a specific year.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalText implements the encoding.TextMarshaler interface.
// This allows a Month to be used as a map key when marshaling to JSON.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (m *Month) UnmarshalText(data []byte) error {
	month, err := ParseMonth(string(data))
	if err != nil {
		return err
	}

	*m = month
	return nil
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Month returns the month of the year, 1 through 12.
func (m Month) Month() int {
	return int(time.Time(m).Month())
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return time.Time(m).After(time.Time(n))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}

// First returns the first instant of the month.
func (m Month) First() time.Time {
	return time.Time(m)
}

// Window returns the half-open window [first day of month, first day of
// next month). Using a half-open interval guards against off-by-one
// errors at month boundaries.
func (m Month) Window() Window {
	return Window{
		Start: m.First(),
		End:   m.AddDate(0, 1).First(),
	}
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	// Day zero of the following month is the last day of this month.
	t := time.Time(m)
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ResolveDate returns the effective date for a transaction created while the
// user navigates the given context month. When the context month is the
// month of now, now is used directly. Otherwise the day of month of now is
// clamped to the last valid day of the context month, so that adding an
// entry on the 31st while browsing February yields Feb 28 or 29.
func (m Month) ResolveDate(now time.Time) time.Time {
	if m.Contains(now) {
		return now
	}

	day := now.Day()
	if last := m.Days(); day > last {
		day = last
	}

	t := time.Time(m)
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, time.UTC)
}
