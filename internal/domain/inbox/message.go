package inbox

import "time"

// MessageStatus is the derived classification of an inbound message
type MessageStatus string

const (
	MessageStatusOrder    MessageStatus = "ORDER"
	MessageStatusNotOrder MessageStatus = "NOT_ORDER"
)

// Raw status values as the order service reports them
const (
	rawStatusOrders    = "InboxStatus.ORDERS"
	rawStatusNotOrders = "InboxStatus.NOT_ORDERS"
)

// ParseMessageStatus maps a raw service status onto the two-valued
// classification. Anything unrecognized counts as not-an-order so
// the message still lands in a bucket.
func ParseMessageStatus(raw string) MessageStatus {
	switch raw {
	case rawStatusOrders:
		return MessageStatusOrder
	case rawStatusNotOrders:
		return MessageStatusNotOrder
	default:
		return MessageStatusNotOrder
	}
}

// IsValid checks if the status is a valid MessageStatus
func (s MessageStatus) IsValid() bool {
	return s == MessageStatusOrder || s == MessageStatusNotOrder
}

// String returns the string representation of MessageStatus
func (s MessageStatus) String() string {
	return string(s)
}

// Message is an inbound communication that may or may not represent a
// purchase order. Messages are created by the ingestion side of the order
// service and are read-only here except for the derived status.
type Message struct {
	ID            string
	Subject       string
	SenderName    string
	SenderEmail   string
	SupplierEmail string
	ReceivedAt    *time.Time
	Labels        []string
	HasError      bool
	Body          string
	Status        MessageStatus
}

// IsOrder reports whether the message was classified as an order
func (m *Message) IsOrder() bool {
	return m.Status == MessageStatusOrder
}
