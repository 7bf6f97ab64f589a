package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wady/orderhub/internal/domain/order"
	"github.com/wady/orderhub/internal/infrastructure/cache"
	"github.com/wady/orderhub/internal/store"
)

func newDetailService(client *fakeOrderService, st *store.Store) *DetailService {
	return NewDetailService(client, st, nil, zap.NewNop())
}

func TestDetailOpen(t *testing.T) {
	client := newFakeOrderService()
	st := store.New()
	svc := newDetailService(client, st)

	detail, err := svc.Open(context.Background(), "ord-1")
	require.NoError(t, err)

	assert.Equal(t, "ord-1", detail.Order.ID)
	assert.Len(t, detail.Items, 2)
	require.NotNil(t, detail.Message)
	assert.Equal(t, "Acme", detail.Message.SenderName)

	// Catalog primed for product selection
	_, ok := st.Product("prod-2")
	assert.True(t, ok)
}

func TestDetailOpenTransitionsNewToReviewing(t *testing.T) {
	client := newFakeOrderService()
	st := store.New()
	svc := newDetailService(client, st)

	detail, err := svc.Open(context.Background(), "ord-1")
	require.NoError(t, err)

	require.Len(t, client.statusCalls, 1)
	assert.Equal(t, order.StatusReviewing, client.statusCalls[0])
	assert.Equal(t, order.StatusReviewing, detail.Order.Status)

	stored, ok := st.Order("ord-1")
	require.True(t, ok)
	assert.Equal(t, order.StatusReviewing, stored.Status)
}

func TestDetailOpenSkipsTransitionWhenReviewing(t *testing.T) {
	client := newFakeOrderService()
	st := store.New()
	svc := newDetailService(client, st)

	_, err := svc.Open(context.Background(), "ord-2")
	require.NoError(t, err)
	assert.Empty(t, client.statusCalls)

	_, err = svc.Open(context.Background(), "ord-3")
	require.NoError(t, err)
	assert.Empty(t, client.statusCalls)
}

func TestDetailOpenTransitionFailureKeepsStatus(t *testing.T) {
	client := newFakeOrderService()
	client.statusErr = errors.New("boom")
	st := store.New()
	svc := newDetailService(client, st)

	_, err := svc.Open(context.Background(), "ord-1")
	require.NoError(t, err)

	stored, ok := st.Order("ord-1")
	require.True(t, ok)
	assert.Equal(t, order.StatusNew, stored.Status)
}

func TestDetailOpenOrderFetchFailure(t *testing.T) {
	client := newFakeOrderService()
	client.getOrderErr = errors.New("down")
	svc := newDetailService(client, store.New())

	_, err := svc.Open(context.Background(), "ord-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch order")
}

func TestDetailOpenToleratesItemsFailure(t *testing.T) {
	client := newFakeOrderService()
	client.listItemsErr = errors.New("items endpoint down")
	st := store.New()
	svc := newDetailService(client, st)

	detail, err := svc.Open(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", detail.Order.ID)
	assert.Empty(t, detail.Items)

	// The sibling catalog prime still ran
	assert.Equal(t, 1, client.catalogCalls)
	_, ok := st.Product("prod-1")
	assert.True(t, ok)
}

func TestDetailOpenToleratesMessageAndCatalogFailure(t *testing.T) {
	client := newFakeOrderService()
	client.getMessageErr = errors.New("boom")
	client.listCatalogErr = errors.New("boom")
	st := store.New()
	svc := newDetailService(client, st)

	detail, err := svc.Open(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Nil(t, detail.Message)
	_, ok := st.Product("prod-1")
	assert.False(t, ok)
}

func TestDetailOpenServesCatalogFromCache(t *testing.T) {
	client := newFakeOrderService()
	st := store.New()
	productCache := cache.NewInMemoryProductCache()
	defer productCache.Close()
	svc := NewDetailService(client, st, productCache, zap.NewNop())

	_, err := svc.Open(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, 1, client.catalogCalls)

	// The first open populated the cache, so the second skips the fetch
	_, err = svc.Open(context.Background(), "ord-2")
	require.NoError(t, err)
	assert.Equal(t, 1, client.catalogCalls)
}
