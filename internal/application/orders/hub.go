// Package orders drives the order hub: loading and enriching orders,
// opening the detail view with its review transition, and coordinating
// edits against the order service.
package orders

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wady/orderhub/internal/domain/inbox"
	"github.com/wady/orderhub/internal/domain/order"
	"github.com/wady/orderhub/internal/infrastructure/cache"
	"github.com/wady/orderhub/internal/store"
	"github.com/wady/orderhub/internal/view"
)

// fan-out width for per-order enrichment fetches
const maxConcurrentEnrichments = 8

// HubClient is the slice of the order service the hub needs
type HubClient interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
	GetInboxItem(ctx context.Context, itemID string) (inbox.Message, error)
	ListOrderItems(ctx context.Context, orderID string) ([]order.LineItem, error)
	Refresh(ctx context.Context) error
}

// HubService loads the order hub table and derives its bucketed view
type HubService struct {
	client HubClient
	store  *store.Store
	cache  cache.ProductCache
	logger *zap.Logger
}

// NewHubService creates a new HubService
func NewHubService(client HubClient, st *store.Store, productCache cache.ProductCache, logger *zap.Logger) *HubService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HubService{
		client: client,
		store:  st,
		cache:  productCache,
		logger: logger,
	}
}

// Load fetches all orders and enriches each with its originating message
// and line items. Enrichment failures degrade that order to an empty
// customer name or item count instead of failing the load.
func (s *HubService) Load(ctx context.Context) error {
	orders, err := s.client.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	s.store.ReplaceOrders(orders)

	var mu sync.Mutex
	fetched := make(map[string]bool, len(orders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEnrichments)
	for i := range orders {
		o := orders[i]

		if o.InboxItemID != "" {
			mu.Lock()
			seen := fetched[o.InboxItemID]
			fetched[o.InboxItemID] = true
			mu.Unlock()
			if !seen {
				g.Go(func() error {
					msg, err := s.client.GetInboxItem(gctx, o.InboxItemID)
					if err != nil {
						s.logger.Warn("message enrichment failed",
							zap.String("order_id", o.ID),
							zap.String("inbox_item_id", o.InboxItemID),
							zap.Error(err))
						return nil
					}
					s.store.PutMessage(msg)
					return nil
				})
			}
		}

		g.Go(func() error {
			items, err := s.client.ListOrderItems(gctx, o.ID)
			if err != nil {
				s.logger.Warn("line item enrichment failed",
					zap.String("order_id", o.ID),
					zap.Error(err))
				return nil
			}
			s.store.ReplaceLineItems(o.ID, items)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to enrich orders: %w", err)
	}

	s.logger.Info("orders loaded", zap.Int("orders", len(orders)))
	return nil
}

// Refresh asks the order service to re-sync from upstream, drops the
// cached catalog so the next detail open refetches it, then reloads
func (s *HubService) Refresh(ctx context.Context) error {
	if err := s.client.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
		}
	}
	return s.Load(ctx)
}

// HubView is the assembled order hub screen: rows filtered by the given
// state and split into the four status buckets.
type HubView struct {
	Buckets []view.Bucket[view.OrderRow]
	Total   int
}

// View derives the order hub view from the current store snapshot
func (s *HubService) View(state view.State) HubView {
	snap := s.store.Snapshot()
	rows := view.ApplyFilter(state.Filter(), view.OrderRows(snap))
	buckets := view.Partition(view.OrderBucketTable(), rows, func(r view.OrderRow) string {
		return r.Order.Status.String()
	})
	return HubView{Buckets: buckets, Total: len(rows)}
}
