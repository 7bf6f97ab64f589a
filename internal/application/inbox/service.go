// Package inbox loads the message inbox from the order service and
// derives its filtered, two-column view.
package inbox

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wady/orderhub/internal/domain/inbox"
	"github.com/wady/orderhub/internal/domain/order"
	"github.com/wady/orderhub/internal/store"
	"github.com/wady/orderhub/internal/view"
)

// fan-out width for per-message order lookups
const maxConcurrentLookups = 8

// Client is the slice of the order service this service needs
type Client interface {
	ListInboxItems(ctx context.Context) ([]inbox.Message, error)
	ListOrdersForInbox(ctx context.Context, itemID string) ([]order.Order, error)
}

// Service loads inbox data into the store and derives inbox views
type Service struct {
	client Client
	store  *store.Store
	logger *zap.Logger
}

// NewService creates a new inbox Service
func NewService(client Client, st *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		store:  st,
		logger: logger,
	}
}

// Load fetches all inbox messages plus the orders traced to each one and
// primes the store. Each successful lookup replaces that message's order
// set, so orders removed upstream drop out on reload. A failed lookup
// degrades to keeping whatever the store already holds for that message
// instead of failing the whole load.
func (s *Service) Load(ctx context.Context) error {
	msgs, err := s.client.ListInboxItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to load inbox: %w", err)
	}
	s.store.ReplaceMessages(msgs)

	results := make([][]order.Order, len(msgs))
	fetched := make([]bool, len(msgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i := range msgs {
		g.Go(func() error {
			orders, err := s.client.ListOrdersForInbox(gctx, msgs[i].ID)
			if err != nil {
				s.logger.Warn("order lookup for message failed",
					zap.String("inbox_item_id", msgs[i].ID),
					zap.Error(err))
				return nil
			}
			results[i] = orders
			fetched[i] = true
			return nil
		})
	}
	// Lookup errors are swallowed above, so Wait only reflects ctx cancellation
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load inbox orders: %w", err)
	}

	total := 0
	for i := range msgs {
		if !fetched[i] {
			continue
		}
		s.store.ReplaceOrdersForMessage(msgs[i].ID, results[i])
		total += len(results[i])
	}

	s.logger.Info("inbox loaded",
		zap.Int("messages", len(msgs)),
		zap.Int("orders", total))
	return nil
}

// View is the assembled inbox screen: messages filtered by the given
// state and split into the orders / not-orders columns.
type View struct {
	Buckets []view.Bucket[view.MessageCard]
	Total   int
}

// View derives the inbox view from the current store snapshot
func (s *Service) View(state view.State) View {
	snap := s.store.Snapshot()
	cards := view.ApplyFilter(state.Filter(), view.MessageCards(snap))
	buckets := view.Partition(view.MessageBucketTable(), cards, func(c view.MessageCard) string {
		return c.Message.Status.String()
	})
	return View{Buckets: buckets, Total: len(cards)}
}
