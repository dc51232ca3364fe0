// Package calendar resolves the date windows interviews are queried by.
//
// All dates are civil dates carried as time.Time values at midnight UTC, the same
// shape pgx produces when scanning a Postgres DATE column.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for dates.
const DateLayout = "2006-01-02"

const (
	daysInWeek     = 7
	daysInWorkWeek = 5
)

// Window is an inclusive [Start, End] span of dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// EndExclusive returns the first date after the window.
func (w Window) EndExclusive() time.Time {
	return w.End.AddDate(0, 0, 1)
}

// Contains reports whether d falls on or between the window bounds.
func (w Window) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// SingleDay reports whether the window covers exactly one date.
func (w Window) SingleDay() bool {
	return w.Start.Equal(w.End)
}

// Days returns the number of dates covered by the window.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

func (w Window) String() string {
	return w.Start.Format(DateLayout) + ".." + w.End.Format(DateLayout)
}

// Date builds a civil date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates t to its calendar date as observed in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string. field names the parameter in the error.
func ParseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, formatError(field, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return t, nil
}

// SingleDate returns the one-day window matching exactly d.
func SingleDate(d time.Time) Window {
	d = DateOf(d)
	return Window{Start: d, End: d}
}

// ExplicitRange returns [start, end] as given. A start after end is rejected.
func ExplicitRange(start, end time.Time) (Window, error) {
	start, end = DateOf(start), DateOf(end)
	if start.After(end) {
		return Window{}, rangeError("start", "start date must not be after end date")
	}
	return Window{Start: start, End: end}, nil
}

// DateRangeStrict parses both bounds as YYYY-MM-DD and returns them unswapped.
func DateRangeStrict(startRaw, endRaw string) (Window, error) {
	start, err := ParseDate("start", startRaw)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseDate("end", endRaw)
	if err != nil {
		return Window{}, err
	}
	return ExplicitRange(start, end)
}

// WeekStart returns the Monday on or before d.
func WeekStart(d time.Time) time.Time {
	d = DateOf(d)
	// time.Weekday counts from Sunday; shift so Monday is 0.
	offset := (int(d.Weekday()) + 6) % daysInWeek
	return d.AddDate(0, 0, -offset)
}

// CalendarWeek returns the Monday through Sunday window containing today.
func CalendarWeek(today time.Time) Window {
	start := WeekStart(today)
	return Window{Start: start, End: start.AddDate(0, 0, daysInWeek-1)}
}

// WorkWeek returns the Monday through Friday window of the week containing today.
func WorkWeek(today time.Time) Window {
	start := WeekStart(today)
	return Window{Start: start, End: start.AddDate(0, 0, daysInWorkWeek-1)}
}

// MonthOf returns the window from the first to the last day of the given month.
func MonthOf(year int, month time.Month) (Window, error) {
	if month < time.January || month > time.December {
		return Window{}, rangeError("month", "month must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return Window{}, rangeError("year", "year must be between 1 and 9999")
	}
	start := Date(year, month, 1)
	return Window{Start: start, End: nextMonthStart(year, month).AddDate(0, 0, -1)}, nil
}

// Month parses year and month parameters and returns the window of that month.
func Month(yearRaw, monthRaw string) (Window, error) {
	year, err := strconv.Atoi(strings.TrimSpace(yearRaw))
	if err != nil {
		return Window{}, formatError("year", "year must be an integer")
	}
	month, err := strconv.Atoi(strings.TrimSpace(monthRaw))
	if err != nil {
		return Window{}, formatError("month", "month must be an integer")
	}
	return MonthOf(year, time.Month(month))
}

func nextMonthStart(year int, month time.Month) time.Time {
	if month == time.December {
		return Date(year+1, time.January, 1)
	}
	return Date(year, month+1, 1)
}
