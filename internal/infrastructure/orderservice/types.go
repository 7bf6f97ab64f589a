package orderservice

import (
	"time"

	"github.com/wady/orderhub/internal/domain/catalog"
	"github.com/wady/orderhub/internal/domain/inbox"
	"github.com/wady/orderhub/internal/domain/order"
)

// InboxItem is the wire shape of an inbound message
type InboxItem struct {
	ItemID        string     `json:"item_id"`
	Subject       string     `json:"subject"`
	SenderName    string     `json:"sender_name"`
	SenderEmail   string     `json:"sender_email"`
	SupplierEmail string     `json:"supplier_email"`
	ReceivedAt    *time.Time `json:"received_at"`
	AILabels      []string   `json:"ai_labels"`
	ErrorCode     *string    `json:"error_code"`
	CurrentStatus string     `json:"current_status"`
	EmailBodyText string     `json:"email_body_text"`
}

// ToMessage converts the wire item to the domain message
func (i InboxItem) ToMessage() inbox.Message {
	return inbox.Message{
		ID:            i.ItemID,
		Subject:       i.Subject,
		SenderName:    i.SenderName,
		SenderEmail:   i.SenderEmail,
		SupplierEmail: i.SupplierEmail,
		ReceivedAt:    i.ReceivedAt,
		Labels:        append([]string(nil), i.AILabels...),
		HasError:      i.ErrorCode != nil,
		Body:          i.EmailBodyText,
		Status:        inbox.ParseMessageStatus(i.CurrentStatus),
	}
}

// OrderRecord is the wire shape of an order
type OrderRecord struct {
	OrderID              string     `json:"order_id"`
	InboxItemID          *string    `json:"inbox_item_id"`
	PONumber             string     `json:"po_number"`
	CustomerID           string     `json:"customer_id"`
	DeliveryDate         *string    `json:"delivery_date"`
	DeliveryInstructions string     `json:"delivery_instructions"`
	OrderStatus          string     `json:"order_status"`
	CreatedAt            *time.Time `json:"created_at"`
	UpdatedAt            *time.Time `json:"updated_at"`
}

// ToOrder converts the wire record to the domain order
func (r OrderRecord) ToOrder() order.Order {
	o := order.Order{
		ID:                   r.OrderID,
		PONumber:             r.PONumber,
		CustomerID:           r.CustomerID,
		DeliveryInstructions: r.DeliveryInstructions,
		Status:               order.Status(r.OrderStatus),
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
	if r.InboxItemID != nil {
		o.InboxItemID = *r.InboxItemID
	}
	if r.DeliveryDate != nil {
		o.DeliveryDate = *r.DeliveryDate
	}
	return o
}

// OrderItem is the wire shape of an order line item
type OrderItem struct {
	ItemID            string  `json:"item_id"`
	OrderID           string  `json:"order_id"`
	ProductID         *string `json:"product_id"`
	ProductName       string  `json:"product_name"`
	SKU               string  `json:"sku"`
	Unit              string  `json:"unit"`
	Quantity          int     `json:"quantity"`
	AIConfidenceScore float64 `json:"ai_confidence_score"`
	AIParsedText      string  `json:"ai_parsed_text"`
}

// ToLineItem converts the wire item to the domain line item
func (i OrderItem) ToLineItem() order.LineItem {
	item := order.LineItem{
		ID:                i.ItemID,
		OrderID:           i.OrderID,
		ProductName:       i.ProductName,
		SKU:               i.SKU,
		Unit:              i.Unit,
		Quantity:          i.Quantity,
		AIConfidenceScore: i.AIConfidenceScore,
		AIParsedText:      i.AIParsedText,
	}
	if i.ProductID != nil {
		item.ProductID = *i.ProductID
	}
	return item
}

// CatalogProduct is the wire shape of a catalog product
type CatalogProduct struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Unit        string `json:"unit"`
}

// ToProduct converts the wire product to the domain product
func (p CatalogProduct) ToProduct() catalog.Product {
	return catalog.Product{
		ID:   p.ProductID,
		Name: p.ProductName,
		SKU:  p.SKU,
		Unit: p.Unit,
	}
}

// statusUpdateRequest is the body of PUT /orders/{id}/status
type statusUpdateRequest struct {
	OrderStatus string `json:"order_status"`
}

// deliveryInstructionsRequest is the body of PUT /orders/{id}/delivery-instructions
type deliveryInstructionsRequest struct {
	DeliveryInstructions string `json:"delivery_instructions"`
}

// deliveryDateRequest is the body of PUT /orders/{id}/delivery-date;
// a null date clears the confirmed delivery
type deliveryDateRequest struct {
	DeliveryDate *string `json:"delivery_date"`
}

// replaceProductsRequest is the body of POST /order-items/{anchor}/products
type replaceProductsRequest struct {
	ProductIDs []string `json:"product_ids"`
}
