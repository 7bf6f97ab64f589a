package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wady/orderhub/internal/application/alert"
	"github.com/wady/orderhub/internal/domain/catalog"
	"github.com/wady/orderhub/internal/domain/order"
	"github.com/wady/orderhub/internal/domain/shared"
	"github.com/wady/orderhub/internal/infrastructure/cache"
	"github.com/wady/orderhub/internal/store"
)

// DefaultDebounceDelay is the trailing window between the last
// instructions edit and the remote write
const DefaultDebounceDelay = 500 * time.Millisecond

// EditClient is the slice of the order service the edit flow needs
type EditClient interface {
	UpdateDeliveryInstructions(ctx context.Context, orderID, instructions string) error
	UpdateDeliveryDate(ctx context.Context, orderID, date string) error
	ReplaceOrderProducts(ctx context.Context, anchorItemID string, productIDs []string) error
	UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) error
}

// EditService coordinates detail-view edits. Quantity and product edits
// stay local until Save pushes them as a product list replacement.
// Delivery instructions commit locally at once and flush to the remote
// behind a trailing debounce; delivery dates write remote-first.
type EditService struct {
	client   EditClient
	store    *store.Store
	cache    cache.ProductCache
	notifier alert.Notifier
	logger   *zap.Logger
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer // orderID -> pending instructions flush
}

// NewEditService creates a new EditService. A zero debounce falls back
// to the default.
func NewEditService(client EditClient, st *store.Store, productCache cache.ProductCache, notifier alert.Notifier, logger *zap.Logger, debounce time.Duration) *EditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce == 0 {
		debounce = DefaultDebounceDelay
	}
	return &EditService{
		client:   client,
		store:    st,
		cache:    productCache,
		notifier: notifier,
		logger:   logger,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}
}

// IncrementItem bumps a line item's quantity by one, locally only
func (s *EditService) IncrementItem(orderID string, idx int) error {
	if !s.store.UpdateLineItem(orderID, idx, func(item *order.LineItem) {
		item.IncrementQuantity()
	}) {
		return shared.ErrNotFound
	}
	return nil
}

// DecrementItem lowers a line item's quantity by one, floored at zero,
// locally only
func (s *EditService) DecrementItem(orderID string, idx int) error {
	if !s.store.UpdateLineItem(orderID, idx, func(item *order.LineItem) {
		item.DecrementQuantity()
	}) {
		return shared.ErrNotFound
	}
	return nil
}

// SetItemQuantity sets a line item's quantity from raw input, locally
// only. Unparseable or negative input coerces to zero.
func (s *EditService) SetItemQuantity(orderID string, idx int, raw string) error {
	if !s.store.UpdateLineItem(orderID, idx, func(item *order.LineItem) {
		item.SetQuantity(raw)
	}) {
		return shared.ErrNotFound
	}
	return nil
}

// SelectProduct matches a line item against a catalog product, locally
// only. An idx one past the end appends a fresh line first. The primed
// store catalog is consulted first, then the product cache, so a failed
// catalog prime does not break selection when an earlier open cached
// the page. A product ID found in neither is ignored without error,
// mirroring a stale dropdown selection.
func (s *EditService) SelectProduct(ctx context.Context, orderID string, idx int, productID string) error {
	product, ok := s.lookupProduct(ctx, productID)
	if !ok {
		s.logger.Debug("product selection ignored, not in catalog",
			zap.String("order_id", orderID),
			zap.String("product_id", productID))
		return nil
	}

	if idx == len(s.store.LineItems(orderID)) {
		s.store.AppendLineItem(orderID, order.NewUnmatchedLineItem(uuid.New().String(), orderID))
	}

	if !s.store.UpdateLineItem(orderID, idx, func(item *order.LineItem) {
		item.ResolveProduct(product)
	}) {
		return shared.ErrNotFound
	}
	return nil
}

// lookupProduct resolves a product from the store, falling back to the
// product cache on a miss
func (s *EditService) lookupProduct(ctx context.Context, productID string) (catalog.Product, bool) {
	if product, ok := s.store.Product(productID); ok {
		return product, true
	}
	if s.cache == nil {
		return catalog.Product{}, false
	}
	cached, err := s.cache.Get(ctx, productID)
	if err != nil || cached == nil {
		return catalog.Product{}, false
	}
	return *cached, true
}

// AddItem appends an empty, unmatched line the user can then assign a
// product to
func (s *EditService) AddItem(orderID string) order.LineItem {
	item := order.NewUnmatchedLineItem(uuid.New().String(), orderID)
	s.store.AppendLineItem(orderID, item)
	return item
}

// SetDeliveryInstructions commits the text locally at once and schedules
// the remote write behind the trailing debounce window. Rapid successive
// edits collapse into a single remote call carrying the latest text.
func (s *EditService) SetDeliveryInstructions(orderID, text string) error {
	if !s.store.UpdateOrder(orderID, func(o *order.Order) {
		o.SetDeliveryInstructions(text)
	}) {
		return shared.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[orderID]; ok {
		timer.Stop()
	}
	s.timers[orderID] = time.AfterFunc(s.debounce, func() {
		s.flushInstructions(orderID)
	})
	return nil
}

// flushInstructions pushes the latest local instructions to the remote.
// It reads the store at fire time, so whichever edit lost the schedule
// race still wins the write. A remote failure keeps the local text and
// raises an alert.
func (s *EditService) flushInstructions(orderID string) {
	s.mu.Lock()
	delete(s.timers, orderID)
	s.mu.Unlock()

	o, ok := s.store.Order(orderID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.client.UpdateDeliveryInstructions(ctx, orderID, o.DeliveryInstructions); err != nil {
		s.logger.Warn("delivery instructions save failed",
			zap.String("order_id", orderID),
			zap.Error(err))
		if s.notifier != nil {
			s.notifier.Notify("Failed to save delivery instructions")
		}
	}
}

// FlushPending fires every scheduled instructions write immediately.
// Intended for shutdown so debounced edits are not lost.
func (s *EditService) FlushPending() {
	s.mu.Lock()
	pending := make([]string, 0, len(s.timers))
	for orderID, timer := range s.timers {
		if timer.Stop() {
			pending = append(pending, orderID)
		}
	}
	s.mu.Unlock()

	for _, orderID := range pending {
		s.flushInstructions(orderID)
	}
}

// SetDeliveryDate writes the date remote-first and mirrors it locally
// only on success. A failure raises an alert and leaves the local value.
func (s *EditService) SetDeliveryDate(ctx context.Context, orderID, date string) error {
	if _, ok := s.store.Order(orderID); !ok {
		return shared.ErrNotFound
	}

	if err := s.client.UpdateDeliveryDate(ctx, orderID, date); err != nil {
		s.logger.Warn("delivery date save failed",
			zap.String("order_id", orderID),
			zap.Error(err))
		if s.notifier != nil {
			s.notifier.Notify("Failed to save delivery date")
		}
		return fmt.Errorf("failed to save delivery date: %w", err)
	}

	s.store.UpdateOrder(orderID, func(o *order.Order) {
		o.SetDeliveryDate(date)
	})
	return nil
}

// Save pushes the matched products to the order service and marks the
// order reviewed. It refuses locally when no line carries a resolved
// product or when every line is a local placeholder with no server-side
// anchor to address the replacement at.
func (s *EditService) Save(ctx context.Context, orderID string) error {
	items := s.store.LineItems(orderID)

	var productIDs []string
	anchorID := ""
	for i := range items {
		if items[i].HasProduct() {
			productIDs = append(productIDs, items[i].ProductID)
		}
		if anchorID == "" && !items[i].Local {
			anchorID = items[i].ID
		}
	}
	if len(productIDs) == 0 {
		return shared.ErrNoProducts
	}
	if anchorID == "" {
		return shared.ErrNoAnchorItem
	}

	if err := s.client.ReplaceOrderProducts(ctx, anchorID, productIDs); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}

	if err := s.client.UpdateOrderStatus(ctx, orderID, order.StatusReviewed); err != nil {
		// Products landed; only the status move failed
		if s.notifier != nil {
			s.notifier.Notify("Order saved but could not be marked reviewed")
		}
		return fmt.Errorf("failed to mark order reviewed: %w", err)
	}

	s.store.UpdateOrder(orderID, func(o *order.Order) {
		o.MarkReviewed()
	})
	s.logger.Info("order saved",
		zap.String("order_id", orderID),
		zap.Int("products", len(productIDs)))
	return nil
}
