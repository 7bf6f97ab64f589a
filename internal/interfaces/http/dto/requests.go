package dto

import (
	"fmt"
	"time"

	"github.com/wady/orderhub/internal/view"
)

// ViewQuery carries the filter and expansion state for the list views
type ViewQuery struct {
	Q        string   `form:"q"`
	From     string   `form:"from" binding:"omitempty,filterdate"`
	To       string   `form:"to" binding:"omitempty,filterdate"`
	Expanded []string `form:"expanded"`
}

// date layouts accepted by the from/to filter params; month-day input
// gets the current year
var dateLayouts = []string{"2006-01-02", "01-02"}

// parseFilterDate parses a filter bound, defaulting the year to the
// current one for month-day input
func parseFilterDate(raw string, now func() time.Time) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err != nil {
			continue
		}
		if layout == "01-02" {
			t = time.Date(now().Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
		}
		return &t, nil
	}
	return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or MM-DD", raw)
}

// ToState converts the query into engine view state. Unspecified
// expansion falls back to the given default state's expansion.
func (q ViewQuery) ToState(defaultState view.State) (view.State, error) {
	state := view.State{
		Query:    q.Q,
		Expanded: defaultState.Expanded,
	}

	from, err := parseFilterDate(q.From, time.Now)
	if err != nil {
		return view.State{}, err
	}
	to, err := parseFilterDate(q.To, time.Now)
	if err != nil {
		return view.State{}, err
	}
	state.From = from
	state.To = to

	if len(q.Expanded) > 0 {
		state.Expanded = make(map[string]bool, len(q.Expanded))
		for _, name := range q.Expanded {
			state.Expanded[name] = true
		}
	}
	return state, nil
}

// QuantityRequest sets a line item quantity from raw input
type QuantityRequest struct {
	Quantity string `json:"quantity"`
}

// ProductSelectionRequest matches a line item to a catalog product
type ProductSelectionRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// InstructionsRequest updates an order's delivery instructions
type InstructionsRequest struct {
	DeliveryInstructions string `json:"delivery_instructions"`
}

// DeliveryDateRequest updates an order's delivery date. An empty date
// clears it.
type DeliveryDateRequest struct {
	DeliveryDate string `json:"delivery_date" binding:"omitempty,datetime=2006-01-02"`
}
