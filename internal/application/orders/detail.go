package orders

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wady/orderhub/internal/domain/catalog"
	"github.com/wady/orderhub/internal/domain/inbox"
	"github.com/wady/orderhub/internal/domain/order"
	"github.com/wady/orderhub/internal/infrastructure/cache"
	"github.com/wady/orderhub/internal/store"
	"github.com/wady/orderhub/internal/view"
)

// DetailClient is the slice of the order service the detail flow needs
type DetailClient interface {
	GetOrder(ctx context.Context, orderID string) (order.Order, error)
	GetInboxItem(ctx context.Context, itemID string) (inbox.Message, error)
	ListOrderItems(ctx context.Context, orderID string) ([]order.LineItem, error)
	ListCatalogProducts(ctx context.Context, limit int) ([]catalog.Product, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) error
	CatalogPageSize() int
}

// DetailService opens order details, priming the store with the order,
// its line items, its originating message, and the product catalog.
type DetailService struct {
	client DetailClient
	store  *store.Store
	cache  cache.ProductCache
	logger *zap.Logger
}

// NewDetailService creates a new DetailService
func NewDetailService(client DetailClient, st *store.Store, productCache cache.ProductCache, logger *zap.Logger) *DetailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailService{
		client: client,
		store:  st,
		cache:  productCache,
		logger: logger,
	}
}

// Open fetches everything the detail view needs and moves a
// not-yet-reviewed order into reviewing. Only the order fetch itself
// must succeed; line item, message, and catalog fetches degrade to
// absent data so the view renders partial data without blocking. The
// status transition is attempted remotely first and only mirrored
// locally on success, so reopening a detail never re-fires it.
func (s *DetailService) Open(ctx context.Context, orderID string) (view.OrderDetail, error) {
	var (
		fetched order.Order
		items   []order.LineItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := s.client.GetOrder(gctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to fetch order %s: %w", orderID, err)
		}
		fetched = o
		return nil
	})
	g.Go(func() error {
		its, err := s.client.ListOrderItems(gctx, orderID)
		if err != nil {
			s.logger.Warn("line item fetch for detail failed",
				zap.String("order_id", orderID),
				zap.Error(err))
			return nil
		}
		items = its
		return nil
	})
	g.Go(func() error {
		s.primeCatalog(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return view.OrderDetail{}, err
	}

	s.store.PutOrder(fetched)
	s.store.ReplaceLineItems(orderID, items)

	if fetched.InboxItemID != "" {
		if msg, err := s.client.GetInboxItem(ctx, fetched.InboxItemID); err != nil {
			s.logger.Warn("message fetch for detail failed",
				zap.String("order_id", orderID),
				zap.String("inbox_item_id", fetched.InboxItemID),
				zap.Error(err))
		} else {
			s.store.PutMessage(msg)
		}
	}

	s.transitionToReviewing(ctx, fetched)

	detail, ok := view.OrderDetailView(s.store.Snapshot(), orderID)
	if !ok {
		// Order was just stored, so this only happens under concurrent replacement
		return view.OrderDetail{}, fmt.Errorf("order %s: not found after prime", orderID)
	}
	return detail, nil
}

// transitionToReviewing moves a new or archived order into reviewing.
// Orders already reviewing or reviewed are left alone. A failed remote
// update keeps the local status untouched so the next open retries.
func (s *DetailService) transitionToReviewing(ctx context.Context, o order.Order) {
	if !o.Status.NeedsReviewTransition() {
		return
	}

	if err := s.client.UpdateOrderStatus(ctx, o.ID, order.StatusReviewing); err != nil {
		s.logger.Warn("review transition failed",
			zap.String("order_id", o.ID),
			zap.String("from_status", o.Status.String()),
			zap.Error(err))
		return
	}

	s.store.UpdateOrder(o.ID, func(stored *order.Order) {
		_ = stored.MarkReviewing()
	})
	s.logger.Debug("order moved to reviewing", zap.String("order_id", o.ID))
}

// primeCatalog loads the product catalog into the store, serving from
// cache when it can. Failures leave the catalog empty; product selection
// then simply finds no candidates.
func (s *DetailService) primeCatalog(ctx context.Context) {
	if s.cache != nil {
		if products, err := s.cache.GetAll(ctx); err == nil && products != nil {
			s.store.ReplaceProducts(products)
			return
		}
	}

	products, err := s.client.ListCatalogProducts(ctx, s.client.CatalogPageSize())
	if err != nil {
		s.logger.Warn("catalog fetch failed", zap.Error(err))
		return
	}
	s.store.ReplaceProducts(products)

	if s.cache != nil {
		if err := s.cache.SetAll(ctx, products, 0); err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
}
