package query

import (
	"errors"
	"strings"

	"expenses/internal/core"
)

var errUnknownMonth = errors.New("expected current or previous")

// Month selects a calendar month relative to today.
type Month string

const (
	CurrentMonth  Month = "current"
	PreviousMonth Month = "previous"
)

// ParseMonth accepts "current" or "previous".
func ParseMonth(s string) (Month, error) {
	switch m := Month(strings.ToLower(strings.TrimSpace(s))); m {
	case CurrentMonth, PreviousMonth:
		return m, nil
	}
	return "", &core.ValidationError{Field: "month", Value: s, Err: errUnknownMonth}
}

// MonthRange returns inclusive bounds for the month which, relative to
// today.
//
// The current month runs from its first day to tomorrow, so everything
// dated today is included. The previous month runs from its first day to
// the day before the first of the current month.
func MonthRange(which Month, today core.Date) (core.DateRange, error) {
	if err := today.Validate(); err != nil {
		return core.DateRange{}, err
	}
	first := core.NewDate(today.Year(), int(today.Month()), 1)
	switch which {
	case CurrentMonth:
		return core.DateRange{Start: first, End: today.AddDays(1)}, nil
	case PreviousMonth:
		start := core.Date{Time: first.AddDate(0, -1, 0)}
		return core.DateRange{Start: start, End: first.AddDays(-1)}, nil
	}
	return core.DateRange{}, &core.ValidationError{Field: "month", Value: string(which), Err: errUnknownMonth}
}
