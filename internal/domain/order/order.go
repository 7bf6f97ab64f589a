package order

import (
	"time"

	"github.com/wady/orderhub/internal/domain/shared"
)

// Status represents the lifecycle status of an order
type Status string

const (
	StatusNew       Status = "new"
	StatusReviewing Status = "reviewing"
	StatusReviewed  Status = "reviewed"
	StatusArchived  Status = "archived"
)

// IsValid checks if the status is a valid order Status
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusReviewing, StatusReviewed, StatusArchived:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// NeedsReviewTransition reports whether opening the order's detail view
// should move it to reviewing. Orders already reviewing or reviewed must
// not regress, so reopening a reviewed order is a no-op.
func (s Status) NeedsReviewTransition() bool {
	return s != StatusReviewing && s != StatusReviewed
}

// Order is a structured purchase record, optionally traced back to an
// originating inbox message. Archival happens on the order service side
// and is never initiated here.
type Order struct {
	ID                   string
	InboxItemID          string // empty when the originating message was not traced
	PONumber             string
	CustomerID           string
	DeliveryDate         string // YYYY-MM-DD, empty when unset
	DeliveryInstructions string
	Status               Status
	CreatedAt            *time.Time
	UpdatedAt            *time.Time
}

// MarkReviewing transitions the order to reviewing. Only valid from
// states that still need review.
func (o *Order) MarkReviewing() error {
	if !o.Status.NeedsReviewTransition() {
		return shared.ErrInvalidState
	}
	o.Status = StatusReviewing
	return nil
}

// MarkReviewed transitions the order to reviewed. Fired only as the
// successful tail of a save.
func (o *Order) MarkReviewed() {
	o.Status = StatusReviewed
}

// SetDeliveryInstructions updates the free-text delivery instructions
func (o *Order) SetDeliveryInstructions(text string) {
	o.DeliveryInstructions = text
}

// SetDeliveryDate updates the delivery date (YYYY-MM-DD, empty clears it)
func (o *Order) SetDeliveryDate(date string) {
	o.DeliveryDate = date
}
