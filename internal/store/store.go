// Package store holds the authoritative local copies of entities fetched
// from the order service. Loaders and the edit service are the only
// writers; the view engines read immutable snapshots. Entities keep
// their arrival order so derived views stay stable across refreshes.
package store

import (
	"sync"

	"github.com/wady/orderhub/internal/domain/catalog"
	"github.com/wady/orderhub/internal/domain/inbox"
	"github.com/wady/orderhub/internal/domain/order"
)

// Store is the in-memory record store
type Store struct {
	mu sync.RWMutex

	messages   map[string]inbox.Message
	messageIDs []string

	orders   map[string]order.Order
	orderIDs []string

	itemsByOrder map[string][]order.LineItem

	products   map[string]catalog.Product
	productIDs []string
}

// New creates an empty Store
func New() *Store {
	return &Store{
		messages:     make(map[string]inbox.Message),
		orders:       make(map[string]order.Order),
		itemsByOrder: make(map[string][]order.LineItem),
		products:     make(map[string]catalog.Product),
	}
}

// ReplaceMessages replaces the full message collection, keeping the
// given arrival order
func (s *Store) ReplaceMessages(msgs []inbox.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = make(map[string]inbox.Message, len(msgs))
	s.messageIDs = s.messageIDs[:0]
	for _, m := range msgs {
		if _, ok := s.messages[m.ID]; !ok {
			s.messageIDs = append(s.messageIDs, m.ID)
		}
		s.messages[m.ID] = m
	}
}

// PutMessage inserts or updates a single message
func (s *Store) PutMessage(m inbox.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[m.ID]; !ok {
		s.messageIDs = append(s.messageIDs, m.ID)
	}
	s.messages[m.ID] = m
}

// Message returns a message by ID
func (s *Store) Message(id string) (inbox.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[id]
	return m, ok
}

// ReplaceOrders replaces the full order collection, keeping the given
// arrival order
func (s *Store) ReplaceOrders(orders []order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make(map[string]order.Order, len(orders))
	s.orderIDs = s.orderIDs[:0]
	for _, o := range orders {
		if _, ok := s.orders[o.ID]; !ok {
			s.orderIDs = append(s.orderIDs, o.ID)
		}
		s.orders[o.ID] = o
	}
}

// PutOrders inserts or updates a batch of orders without touching
// orders outside the batch
func (s *Store) PutOrders(orders []order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range orders {
		if _, ok := s.orders[o.ID]; !ok {
			s.orderIDs = append(s.orderIDs, o.ID)
		}
		s.orders[o.ID] = o
	}
}

// PutOrder inserts or updates a single order
func (s *Store) PutOrder(o order.Order) {
	s.PutOrders([]order.Order{o})
}

// ReplaceOrdersForMessage replaces the set of orders traced to one
// message. Stored orders for that message absent from the new set are
// dropped along with their line items; orders traced to other messages
// are untouched.
func (s *Store) ReplaceOrdersForMessage(messageID string, orders []order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keep := make(map[string]bool, len(orders))
	for _, o := range orders {
		keep[o.ID] = true
	}

	ids := s.orderIDs[:0]
	for _, id := range s.orderIDs {
		if o := s.orders[id]; o.InboxItemID == messageID && !keep[id] {
			delete(s.orders, id)
			delete(s.itemsByOrder, id)
			continue
		}
		ids = append(ids, id)
	}
	s.orderIDs = ids

	for _, o := range orders {
		if _, ok := s.orders[o.ID]; !ok {
			s.orderIDs = append(s.orderIDs, o.ID)
		}
		s.orders[o.ID] = o
	}
}

// Order returns an order by ID
func (s *Store) Order(id string) (order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

// UpdateOrder applies fn to the stored order under the write lock.
// It reports whether the order was present. Late responses for one
// field go through here so they never clobber unrelated fields.
func (s *Store) UpdateOrder(id string, fn func(*order.Order)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return false
	}
	fn(&o)
	s.orders[id] = o
	return true
}

// ReplaceLineItems replaces the line items of one order, insertion order
// preserved
func (s *Store) ReplaceLineItems(orderID string, items []order.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemsByOrder[orderID] = append([]order.LineItem(nil), items...)
}

// LineItems returns a copy of the line items for one order. A missing
// order yields an empty slice, not an error.
func (s *Store) LineItems(orderID string) []order.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]order.LineItem(nil), s.itemsByOrder[orderID]...)
}

// UpdateLineItem applies fn to the item at idx of one order's list.
// It reports whether the index was in range.
func (s *Store) UpdateLineItem(orderID string, idx int, fn func(*order.LineItem)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.itemsByOrder[orderID]
	if idx < 0 || idx >= len(items) {
		return false
	}
	fn(&items[idx])
	return true
}

// AppendLineItem appends a line item to one order's list
func (s *Store) AppendLineItem(orderID string, item order.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemsByOrder[orderID] = append(s.itemsByOrder[orderID], item)
}

// ReplaceProducts replaces the loaded catalog page
func (s *Store) ReplaceProducts(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[string]catalog.Product, len(products))
	s.productIDs = s.productIDs[:0]
	for _, p := range products {
		if _, ok := s.products[p.ID]; !ok {
			s.productIDs = append(s.productIDs, p.ID)
		}
		s.products[p.ID] = p
	}
}

// Product returns a catalog product by ID
func (s *Store) Product(id string) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	return p, ok
}

// Snapshot is an immutable copy of the store contents used by the view
// engines. Collections keep arrival order; line items keep insertion
// order per order.
type Snapshot struct {
	Messages     []inbox.Message
	Orders       []order.Order
	ItemsByOrder map[string][]order.LineItem
	Products     []catalog.Product
}

// Snapshot copies the current store contents
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Messages:     make([]inbox.Message, 0, len(s.messageIDs)),
		Orders:       make([]order.Order, 0, len(s.orderIDs)),
		ItemsByOrder: make(map[string][]order.LineItem, len(s.itemsByOrder)),
		Products:     make([]catalog.Product, 0, len(s.productIDs)),
	}
	for _, id := range s.messageIDs {
		snap.Messages = append(snap.Messages, s.messages[id])
	}
	for _, id := range s.orderIDs {
		snap.Orders = append(snap.Orders, s.orders[id])
	}
	for orderID, items := range s.itemsByOrder {
		snap.ItemsByOrder[orderID] = append([]order.LineItem(nil), items...)
	}
	for _, id := range s.productIDs {
		snap.Products = append(snap.Products, s.products[id])
	}
	return snap
}
