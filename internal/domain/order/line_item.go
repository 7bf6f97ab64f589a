package order

import (
	"strconv"
	"strings"

	"github.com/wady/orderhub/internal/domain/catalog"
)

// LineItem is one product/quantity entry within an order. ProductID is
// empty while the line is unmatched against the catalog. Local marks
// lines added in this session that the order service has not assigned
// an ID yet.
type LineItem struct {
	ID                string
	OrderID           string
	ProductID         string
	ProductName       string
	SKU               string
	Unit              string
	Quantity          int
	AIConfidenceScore float64
	AIParsedText      string
	Local             bool
}

// HasProduct reports whether the line carries a resolved catalog product
func (i *LineItem) HasProduct() bool {
	return i.ProductID != ""
}

// IncrementQuantity increases the quantity by one
func (i *LineItem) IncrementQuantity() {
	i.Quantity++
}

// DecrementQuantity decreases the quantity by one, never below zero
func (i *LineItem) DecrementQuantity() {
	if i.Quantity > 0 {
		i.Quantity--
	}
}

// SetQuantity sets the quantity from raw user input. Non-numeric or
// negative input coerces to zero.
func (i *LineItem) SetQuantity(raw string) {
	i.Quantity = ParseQuantity(raw)
}

// ResolveProduct copies the catalog product's identity and display
// fields onto the line item
func (i *LineItem) ResolveProduct(p catalog.Product) {
	i.ProductID = p.ID
	i.ProductName = p.Name
	i.SKU = p.SKU
	i.Unit = p.Unit
}

// ParseQuantity converts raw user input to a non-negative quantity.
// Anything that does not parse as a whole number yields zero.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NewUnmatchedLineItem returns an empty line the user still has to
// match against the catalog, mirroring the add-item action.
func NewUnmatchedLineItem(id, orderID string) LineItem {
	return LineItem{
		ID:       id,
		OrderID:  orderID,
		Unit:     "each",
		Quantity: 1,
		Local:    true,
	}
}
