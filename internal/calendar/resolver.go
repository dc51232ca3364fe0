package calendar

import (
	"strings"
	"time"
)

// Resolver answers window questions relative to "today" as seen by an injected clock.
type Resolver struct {
	now func() time.Time
	loc *time.Location
}

// NewResolver builds a resolver. A nil now falls back to time.Now and a nil loc to UTC.
func NewResolver(now func() time.Time, loc *time.Location) *Resolver {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{now: now, loc: loc}
}

// Today returns the current date in the resolver's location.
func (r *Resolver) Today() time.Time {
	return DateOf(r.now().In(r.loc))
}

// CurrentWeek returns the calendar week containing today.
func (r *Resolver) CurrentWeek() Window {
	return CalendarWeek(r.Today())
}

// CurrentWorkWeek returns the work week containing today.
func (r *Resolver) CurrentWorkWeek() Window {
	return WorkWeek(r.Today())
}

// CurrentMonth returns the window of the month containing today.
func (r *Resolver) CurrentMonth() Window {
	today := r.Today()
	w, _ := MonthOf(today.Year(), today.Month())
	return w
}

// Week resolves an optional explicit date to its calendar week, defaulting to today.
func (r *Resolver) Week(dateRaw string) (Window, error) {
	if strings.TrimSpace(dateRaw) == "" {
		return r.CurrentWeek(), nil
	}
	d, err := ParseDate("date", dateRaw)
	if err != nil {
		return Window{}, err
	}
	return CalendarWeek(d), nil
}

// Month resolves optional year and month parameters. With neither supplied the current
// month is used; supplying only one of them is rejected.
func (r *Resolver) Month(yearRaw, monthRaw string) (Window, error) {
	yearRaw, monthRaw = strings.TrimSpace(yearRaw), strings.TrimSpace(monthRaw)
	switch {
	case yearRaw == "" && monthRaw == "":
		return r.CurrentMonth(), nil
	case yearRaw == "":
		return Window{}, formatError("year", "year is required when month is given")
	case monthRaw == "":
		return Window{}, formatError("month", "month is required when year is given")
	}
	return Month(yearRaw, monthRaw)
}
