package dto

import (
	"time"

	"github.com/wady/orderhub/internal/domain/inbox"
	"github.com/wady/orderhub/internal/domain/order"
	"github.com/wady/orderhub/internal/view"
)

// MessageDTO is the wire shape of an inbox message
type MessageDTO struct {
	ID            string     `json:"id"`
	Subject       string     `json:"subject"`
	SenderName    string     `json:"sender_name"`
	SenderEmail   string     `json:"sender_email"`
	SupplierEmail string     `json:"supplier_email,omitempty"`
	ReceivedAt    *time.Time `json:"received_at,omitempty"`
	Labels        []string   `json:"labels,omitempty"`
	HasError      bool       `json:"has_error"`
	Body          string     `json:"body,omitempty"`
	Status        string     `json:"status"`
	IsOrder       bool       `json:"is_order"`
}

// OrderDTO is the wire shape of an order
type OrderDTO struct {
	ID                   string     `json:"id"`
	InboxItemID          string     `json:"inbox_item_id,omitempty"`
	PONumber             string     `json:"po_number"`
	CustomerID           string     `json:"customer_id,omitempty"`
	DeliveryDate         string     `json:"delivery_date,omitempty"`
	DeliveryInstructions string     `json:"delivery_instructions,omitempty"`
	Status               string     `json:"status"`
	CreatedAt            *time.Time `json:"created_at,omitempty"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

// LineItemDTO is the wire shape of an order line item
type LineItemDTO struct {
	ID                string  `json:"id"`
	OrderID           string  `json:"order_id"`
	ProductID         string  `json:"product_id,omitempty"`
	ProductName       string  `json:"product_name,omitempty"`
	SKU               string  `json:"sku,omitempty"`
	Unit              string  `json:"unit"`
	Quantity          int     `json:"quantity"`
	AIConfidenceScore float64 `json:"ai_confidence_score,omitempty"`
	AIParsedText      string  `json:"ai_parsed_text,omitempty"`
	Local             bool    `json:"local"`
}

// MessageCardDTO is an inbox message with the orders traced to it
type MessageCardDTO struct {
	Message MessageDTO `json:"message"`
	Orders  []OrderDTO `json:"orders"`
}

// OrderRowDTO is one row of the order hub table
type OrderRowDTO struct {
	Order        OrderDTO `json:"order"`
	CustomerName string   `json:"customer_name,omitempty"`
	SenderEmail  string   `json:"sender_email,omitempty"`
	ItemCount    int      `json:"item_count"`
}

// BucketDTO is one named partition of records
type BucketDTO[T any] struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Expanded bool   `json:"expanded"`
	Records  []T    `json:"records"`
}

// InboxViewDTO is the assembled inbox screen
type InboxViewDTO struct {
	Buckets []BucketDTO[MessageCardDTO] `json:"buckets"`
	Total   int                         `json:"total"`
}

// HubViewDTO is the assembled order hub screen
type HubViewDTO struct {
	Buckets []BucketDTO[OrderRowDTO] `json:"buckets"`
	Total   int                      `json:"total"`
}

// OrderDetailDTO is the detail view of one order
type OrderDetailDTO struct {
	Order   OrderDTO      `json:"order"`
	Items   []LineItemDTO `json:"items"`
	Message *MessageDTO   `json:"message,omitempty"`
}

// FromMessage converts a domain message to its wire shape
func FromMessage(m inbox.Message) MessageDTO {
	return MessageDTO{
		ID:            m.ID,
		Subject:       m.Subject,
		SenderName:    m.SenderName,
		SenderEmail:   m.SenderEmail,
		SupplierEmail: m.SupplierEmail,
		ReceivedAt:    m.ReceivedAt,
		Labels:        m.Labels,
		HasError:      m.HasError,
		Body:          m.Body,
		Status:        m.Status.String(),
		IsOrder:       m.IsOrder(),
	}
}

// FromOrder converts a domain order to its wire shape
func FromOrder(o order.Order) OrderDTO {
	return OrderDTO{
		ID:                   o.ID,
		InboxItemID:          o.InboxItemID,
		PONumber:             o.PONumber,
		CustomerID:           o.CustomerID,
		DeliveryDate:         o.DeliveryDate,
		DeliveryInstructions: o.DeliveryInstructions,
		Status:               o.Status.String(),
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

// FromLineItem converts a domain line item to its wire shape
func FromLineItem(i order.LineItem) LineItemDTO {
	return LineItemDTO{
		ID:                i.ID,
		OrderID:           i.OrderID,
		ProductID:         i.ProductID,
		ProductName:       i.ProductName,
		SKU:               i.SKU,
		Unit:              i.Unit,
		Quantity:          i.Quantity,
		AIConfidenceScore: i.AIConfidenceScore,
		AIParsedText:      i.AIParsedText,
		Local:             i.Local,
	}
}

// FromMessageCard converts a joined message card to its wire shape
func FromMessageCard(c view.MessageCard) MessageCardDTO {
	orders := make([]OrderDTO, 0, len(c.Orders))
	for _, o := range c.Orders {
		orders = append(orders, FromOrder(o))
	}
	return MessageCardDTO{
		Message: FromMessage(c.Message),
		Orders:  orders,
	}
}

// FromOrderRow converts a joined order row to its wire shape
func FromOrderRow(r view.OrderRow) OrderRowDTO {
	return OrderRowDTO{
		Order:        FromOrder(r.Order),
		CustomerName: r.CustomerName,
		SenderEmail:  r.SenderEmail,
		ItemCount:    r.ItemCount,
	}
}

// FromOrderDetail converts a joined order detail to its wire shape
func FromOrderDetail(d view.OrderDetail) OrderDetailDTO {
	items := make([]LineItemDTO, 0, len(d.Items))
	for _, i := range d.Items {
		items = append(items, FromLineItem(i))
	}
	out := OrderDetailDTO{
		Order: FromOrder(d.Order),
		Items: items,
	}
	if d.Message != nil {
		msg := FromMessage(*d.Message)
		out.Message = &msg
	}
	return out
}

// FromBucket converts one bucket using the given record converter and
// the caller's expansion state
func FromBucket[R any, T any](b view.Bucket[R], expanded bool, conv func(R) T) BucketDTO[T] {
	records := make([]T, 0, len(b.Records))
	for _, rec := range b.Records {
		records = append(records, conv(rec))
	}
	return BucketDTO[T]{
		Name:     b.Name,
		Count:    b.Count(),
		Expanded: expanded,
		Records:  records,
	}
}
