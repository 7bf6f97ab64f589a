package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wady/orderhub/internal/domain/inbox"
)

// fixedClock pins the default-year rule to 2025 for deterministic tests
func fixedClock() time.Time {
	return time.Date(2025, 7, 1, 12, 0, 0, 0, time.Local)
}

func card(subject, name, email string, received *time.Time) MessageCard {
	return MessageCard{Message: inbox.Message{
		Subject:     subject,
		SenderName:  name,
		SenderEmail: email,
		ReceivedAt:  received,
	}}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return &t
}

func TestFilter_Query(t *testing.T) {
	received := time.Date(2025, 6, 12, 9, 0, 0, 0, time.Local)
	rec := card("Milk order", "Ana Torres", "ana@farm.example", &received)

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty query passes", "", true},
		{"subject substring", "milk", true},
		{"subject case-insensitive", "MILK", true},
		{"sender name substring", "torres", true},
		{"sender email substring", "farm.example", true},
		{"no field matches", "bananas", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.query, nil, nil).WithClock(fixedClock)
			assert.Equal(t, tt.want, f.Match(rec))
		})
	}
}

func TestFilter_DateRange(t *testing.T) {
	received := time.Date(2025, 6, 12, 9, 0, 0, 0, time.Local)
	rec := card("Milk order", "Ana", "ana@farm.example", &received)

	tests := []struct {
		name string
		from *time.Time
		to   *time.Time
		want bool
	}{
		{"no bounds passes", nil, nil, true},
		{"inside range", datePtr(2025, 6, 1), datePtr(2025, 6, 30), true},
		{"on from boundary", datePtr(2025, 6, 12), datePtr(2025, 6, 30), true},
		{"on to boundary", datePtr(2025, 6, 1), datePtr(2025, 6, 12), true},
		{"from only, after record", datePtr(2025, 6, 13), nil, false},
		{"from only, before record", datePtr(2025, 6, 1), nil, true},
		{"to only, before record", nil, datePtr(2025, 6, 11), false},
		{"to only, after record", nil, datePtr(2025, 6, 30), true},
		{"range strictly before record", datePtr(2025, 1, 1), datePtr(2025, 2, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter("", tt.from, tt.to).WithClock(fixedClock)
			assert.Equal(t, tt.want, f.Match(rec))
		})
	}
}

func TestFilter_YearDefaultsToCurrent(t *testing.T) {
	// Record received in another year still matches its month/day slot
	// of the current year.
	received := time.Date(2023, 6, 12, 9, 0, 0, 0, time.Local)
	rec := card("Milk order", "Ana", "ana@farm.example", &received)

	f := NewFilter("", datePtr(2025, 6, 10), datePtr(2025, 6, 14)).WithClock(fixedClock)
	assert.True(t, f.Match(rec))
}

func TestFilter_NoDateFailsWhenBoundSet(t *testing.T) {
	rec := card("Milk order", "Ana", "ana@farm.example", nil)

	assert.True(t, NewFilter("", nil, nil).WithClock(fixedClock).Match(rec))
	assert.False(t, NewFilter("", datePtr(2025, 1, 1), nil).WithClock(fixedClock).Match(rec))
	assert.False(t, NewFilter("", nil, datePtr(2025, 12, 31)).WithClock(fixedClock).Match(rec))
}

func TestFilter_InvertedRangeYieldsEmpty(t *testing.T) {
	// to precedes from: bounds are evaluated independently, so nothing
	// can satisfy both. No swap, no error.
	recs := []MessageCard{
		card("a", "", "", datePtr(2025, 6, 1)),
		card("b", "", "", datePtr(2025, 6, 15)),
		card("c", "", "", datePtr(2025, 6, 30)),
	}
	f := NewFilter("", datePtr(2025, 6, 20), datePtr(2025, 6, 10)).WithClock(fixedClock)

	assert.Empty(t, ApplyFilter(f, recs))
}

func TestApplyFilter(t *testing.T) {
	recs := []MessageCard{
		card("Milk order", "Ana", "ana@farm.example", datePtr(2025, 6, 12)),
		card("Bread order", "Bo", "bo@bakery.example", datePtr(2025, 6, 13)),
		card("Spam", "Eve", "eve@spam.example", datePtr(2025, 6, 14)),
	}

	t.Run("empty filter passes every record", func(t *testing.T) {
		got := ApplyFilter(NewFilter("", nil, nil).WithClock(fixedClock), recs)
		assert.Len(t, got, len(recs))
	})

	t.Run("query matching nothing yields empty result", func(t *testing.T) {
		got := ApplyFilter(NewFilter("zzz", nil, nil).WithClock(fixedClock), recs)
		assert.Empty(t, got)
	})

	t.Run("predicates combine with AND", func(t *testing.T) {
		f := NewFilter("order", datePtr(2025, 6, 13), datePtr(2025, 6, 14)).WithClock(fixedClock)
		got := ApplyFilter(f, recs)
		require.Len(t, got, 1)
		assert.Equal(t, "Bread order", got[0].Message.Subject)
	})

	t.Run("input order is preserved", func(t *testing.T) {
		got := ApplyFilter(NewFilter("order", nil, nil).WithClock(fixedClock), recs)
		require.Len(t, got, 2)
		assert.Equal(t, "Milk order", got[0].Message.Subject)
		assert.Equal(t, "Bread order", got[1].Message.Subject)
	})
}
