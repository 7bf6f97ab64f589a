package view

import (
	"strings"
	"time"
)

// Filterable is the contract a composite record exposes to the filter:
// the searchable text fields and the record's associated date. The date
// carries only a meaningful month and day; the year is defaulted at
// match time.
type Filterable interface {
	FilterSubject() string
	FilterCounterpartyName() string
	FilterCounterpartyEmail() string
	FilterDate() (time.Time, bool)
}

// Filter combines a free-text predicate with a half-open date range.
// Both must hold for a record to pass. The zero Filter passes everything.
type Filter struct {
	Query string
	From  *time.Time
	To    *time.Time

	// now supplies the reference year for month/day record dates;
	// defaults to time.Now
	now func() time.Time
}

// NewFilter builds a filter from explicit view state
func NewFilter(query string, from, to *time.Time) Filter {
	return Filter{Query: query, From: from, To: to}
}

// WithClock returns a copy of the filter using the given clock for the
// default-year rule. Used by tests.
func (f Filter) WithClock(now func() time.Time) Filter {
	f.now = now
	return f
}

// Match reports whether the record passes both predicates
func (f Filter) Match(rec Filterable) bool {
	return f.matchQuery(rec) && f.matchDate(rec)
}

func (f Filter) matchQuery(rec Filterable) bool {
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	for _, field := range []string{
		rec.FilterSubject(),
		rec.FilterCounterpartyName(),
		rec.FilterCounterpartyEmail(),
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (f Filter) matchDate(rec Filterable) bool {
	if f.From == nil && f.To == nil {
		return true
	}

	recDate, ok := rec.FilterDate()
	if !ok {
		// No associated date fails whenever any bound is set
		return false
	}

	clock := f.now
	if clock == nil {
		clock = time.Now
	}
	// Only the month and day of the record date are meaningful; the
	// year defaults to the current one.
	year := clock().Year()
	day := time.Date(year, recDate.Month(), recDate.Day(), 0, 0, 0, 0, time.Local)

	// Bounds are evaluated independently: an inverted range simply
	// matches nothing, it is never swapped or rejected.
	if f.From != nil {
		from := startOfDay(*f.From)
		if day.Before(from) {
			return false
		}
	}
	if f.To != nil {
		to := endOfDay(*f.To)
		if day.After(to) {
			return false
		}
	}
	return true
}

// ApplyFilter keeps the records that pass the filter, preserving input
// order
func ApplyFilter[T Filterable](f Filter, recs []T) []T {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
