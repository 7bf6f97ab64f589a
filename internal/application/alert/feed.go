package alert

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notifier receives user-facing failure notices from background
// operations such as debounced writes that complete after the
// triggering request has already returned.
type Notifier interface {
	Notify(message string)
}

// Alert is a single user-facing notice
type Alert struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

const defaultFeedCapacity = 100

// Feed is an in-memory ring of recent alerts, drained by polling
type Feed struct {
	mu       sync.Mutex
	alerts   []Alert
	capacity int
	now      func() time.Time
}

// NewFeed creates a feed that retains up to the given number of alerts.
// A non-positive capacity falls back to the default.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = defaultFeedCapacity
	}
	return &Feed{
		capacity: capacity,
		now:      time.Now,
	}
}

// Notify appends an alert, evicting the oldest when at capacity
func (f *Feed) Notify(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.alerts = append(f.alerts, Alert{
		ID:        uuid.New().String(),
		Message:   message,
		CreatedAt: f.now(),
	})
	if len(f.alerts) > f.capacity {
		f.alerts = f.alerts[len(f.alerts)-f.capacity:]
	}
}

// Drain returns all pending alerts and clears the feed
func (f *Feed) Drain() []Alert {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.alerts
	f.alerts = nil
	return out
}

// Pending returns the number of alerts waiting to be drained
func (f *Feed) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts)
}

var _ Notifier = (*Feed)(nil)
