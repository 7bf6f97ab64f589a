// Package view derives composite, filterable, grouped projections from a
// store snapshot. Everything here is a pure function of the snapshot and
// the explicit view state passed in; nothing mutates the store.
package view

import (
	"github.com/wady/orderhub/internal/domain/inbox"
	"github.com/wady/orderhub/internal/domain/order"
	"github.com/wady/orderhub/internal/store"
)

// MessageCard pairs an inbound message with the orders traced back to it
type MessageCard struct {
	Message inbox.Message
	Orders  []order.Order
}

// OrderRow is one line of the order hub table: an order enriched with
// the counterparty name from its originating message and its line-item
// count.
type OrderRow struct {
	Order        order.Order
	CustomerName string
	SenderEmail  string
	ItemCount    int
}

// OrderDetail joins one order with its line items and originating
// message for the detail view
type OrderDetail struct {
	Order   order.Order
	Items   []order.LineItem
	Message *inbox.Message
}

// MessageCards builds a card per message, attaching every order whose
// owning message matches, in order discovery order. Messages whose
// orders have not been fetched yet get an empty list so the view can
// render partial data.
func MessageCards(snap store.Snapshot) []MessageCard {
	ordersByMessage := make(map[string][]order.Order)
	for _, o := range snap.Orders {
		if o.InboxItemID == "" {
			continue
		}
		ordersByMessage[o.InboxItemID] = append(ordersByMessage[o.InboxItemID], o)
	}

	cards := make([]MessageCard, 0, len(snap.Messages))
	for _, m := range snap.Messages {
		cards = append(cards, MessageCard{
			Message: m,
			Orders:  ordersByMessage[m.ID],
		})
	}
	return cards
}

// OrderRows builds one row per order in arrival order. Enrichment data
// that has not arrived yet degrades to an empty customer name and a zero
// item count.
func OrderRows(snap store.Snapshot) []OrderRow {
	messages := make(map[string]inbox.Message, len(snap.Messages))
	for _, m := range snap.Messages {
		messages[m.ID] = m
	}

	rows := make([]OrderRow, 0, len(snap.Orders))
	for _, o := range snap.Orders {
		row := OrderRow{
			Order:     o,
			ItemCount: len(snap.ItemsByOrder[o.ID]),
		}
		if m, ok := messages[o.InboxItemID]; ok {
			row.CustomerName = m.SenderName
			row.SenderEmail = m.SenderEmail
		}
		rows = append(rows, row)
	}
	return rows
}

// OrderDetailView joins the order being viewed with its line items
// (insertion order) and its originating message, when traced. Missing
// line items yield an empty list. The second return is false only when
// the order itself is absent from the snapshot.
func OrderDetailView(snap store.Snapshot, orderID string) (OrderDetail, bool) {
	var target *order.Order
	for idx := range snap.Orders {
		if snap.Orders[idx].ID == orderID {
			target = &snap.Orders[idx]
			break
		}
	}
	if target == nil {
		return OrderDetail{}, false
	}

	detail := OrderDetail{
		Order: *target,
		Items: append([]order.LineItem(nil), snap.ItemsByOrder[orderID]...),
	}
	if target.InboxItemID != "" {
		for idx := range snap.Messages {
			if snap.Messages[idx].ID == target.InboxItemID {
				m := snap.Messages[idx]
				detail.Message = &m
				break
			}
		}
	}
	return detail, true
}
