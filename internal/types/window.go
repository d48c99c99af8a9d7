package types

import (
	"errors"
	"time"
)

// Window is a half-open date range [Start, End) used to filter transactions
// for lists and reports.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the time instant is in the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Period is the reporting period for analytics.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

var ErrPeriodInvalid = errors.New("the period must be one of weekly, monthly or yearly")

// ParsePeriod parses a period string. The empty string defaults to monthly.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return Period(s), nil
	case "":
		return PeriodMonthly, nil
	}

	return "", ErrPeriodInvalid
}

// Window returns the reporting window for the period, anchored at now.
//
//   - weekly: the seven days up to now
//   - monthly: the current calendar month up to its last second
//   - yearly: the current calendar year up to its last second
func (p Period) Window(now time.Time) Window {
	switch p {
	case PeriodWeekly:
		return Window{Start: now.AddDate(0, 0, -7), End: now}
	case PeriodYearly:
		return Window{
			Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, time.UTC),
		}
	}

	return Window{
		Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		// Day zero of the next month is the last day of the current one
		End: time.Date(now.Year(), now.Month()+1, 0, 23, 59, 59, 0, time.UTC),
	}
}

// Previous shifts the window back by one period unit, preserving the window
// length. It is used to compute trend percentages against the preceding
// equal-length window.
func (p Period) Previous(w Window) Window {
	switch p {
	case PeriodWeekly:
		return Window{Start: w.Start.AddDate(0, 0, -7), End: w.End.AddDate(0, 0, -7)}
	case PeriodYearly:
		return Window{Start: w.Start.AddDate(-1, 0, 0), End: w.End.AddDate(-1, 0, 0)}
	}

	return Window{Start: w.Start.AddDate(0, -1, 0), End: w.End.AddDate(0, -1, 0)}
}

// Comparison returns the display label for the window a trend is compared
// against.
func (p Period) Comparison() string {
	switch p {
	case PeriodWeekly:
		return "previous week"
	case PeriodYearly:
		return "previous year"
	}

	return "previous month"
}
