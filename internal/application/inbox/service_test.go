package inbox

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wady/orderhub/internal/domain/inbox"
	"github.com/wady/orderhub/internal/domain/order"
	"github.com/wady/orderhub/internal/store"
	"github.com/wady/orderhub/internal/view"
)

type fakeClient struct {
	mu             sync.Mutex
	messages       []inbox.Message
	ordersByItem   map[string][]order.Order
	listErr        error
	failOrdersFor  map[string]bool
	orderCallCount int
}

func (f *fakeClient) ListInboxItems(ctx context.Context) ([]inbox.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.messages, nil
}

func (f *fakeClient) ListOrdersForInbox(ctx context.Context, itemID string) ([]order.Order, error) {
	f.mu.Lock()
	f.orderCallCount++
	f.mu.Unlock()
	if f.failOrdersFor[itemID] {
		return nil, errors.New("boom")
	}
	return f.ordersByItem[itemID], nil
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		messages: []inbox.Message{
			{ID: "msg-1", Subject: "PO 1001", SenderName: "Acme", Status: inbox.MessageStatusOrder},
			{ID: "msg-2", Subject: "Newsletter", SenderName: "Spam Co", Status: inbox.MessageStatusNotOrder},
			{ID: "msg-3", Subject: "PO 1002", SenderName: "Beta", Status: inbox.MessageStatusOrder},
		},
		ordersByItem: map[string][]order.Order{
			"msg-1": {{ID: "ord-1", InboxItemID: "msg-1", Status: order.StatusNew}},
			"msg-3": {{ID: "ord-3", InboxItemID: "msg-3", Status: order.StatusReviewed}},
		},
		failOrdersFor: map[string]bool{},
	}
}

func TestServiceLoad(t *testing.T) {
	client := newFakeClient()
	st := store.New()
	svc := NewService(client, st, zap.NewNop())

	require.NoError(t, svc.Load(context.Background()))

	assert.Equal(t, 3, client.orderCallCount)

	snap := st.Snapshot()
	assert.Len(t, snap.Messages, 3)
	assert.Len(t, snap.Orders, 2)

	_, ok := st.Order("ord-1")
	assert.True(t, ok)
}

func TestServiceLoadListFailure(t *testing.T) {
	client := newFakeClient()
	client.listErr = errors.New("service down")
	svc := NewService(client, store.New(), zap.NewNop())

	err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load inbox")
}

func TestServiceLoadToleratesPerMessageFailure(t *testing.T) {
	client := newFakeClient()
	client.failOrdersFor["msg-1"] = true
	st := store.New()
	svc := NewService(client, st, zap.NewNop())

	require.NoError(t, svc.Load(context.Background()))

	// msg-1's orders are dropped, msg-3's still land
	snap := st.Snapshot()
	assert.Len(t, snap.Orders, 1)
	assert.Equal(t, "ord-3", snap.Orders[0].ID)
}

func TestServiceLoadDropsOrdersRemovedUpstream(t *testing.T) {
	client := newFakeClient()
	st := store.New()
	svc := NewService(client, st, zap.NewNop())

	require.NoError(t, svc.Load(context.Background()))
	_, ok := st.Order("ord-1")
	require.True(t, ok)

	// msg-1's order disappears upstream between loads
	client.ordersByItem["msg-1"] = nil
	require.NoError(t, svc.Load(context.Background()))

	_, ok = st.Order("ord-1")
	assert.False(t, ok)
	_, ok = st.Order("ord-3")
	assert.True(t, ok)
}

func TestServiceLoadFailureKeepsStoredOrders(t *testing.T) {
	client := newFakeClient()
	st := store.New()
	svc := NewService(client, st, zap.NewNop())

	require.NoError(t, svc.Load(context.Background()))

	// A failed lookup on reload keeps the previously loaded orders
	client.failOrdersFor["msg-1"] = true
	require.NoError(t, svc.Load(context.Background()))

	_, ok := st.Order("ord-1")
	assert.True(t, ok)
}

func TestServiceView(t *testing.T) {
	client := newFakeClient()
	st := store.New()
	svc := NewService(client, st, zap.NewNop())
	require.NoError(t, svc.Load(context.Background()))

	v := svc.View(view.State{})
	require.Len(t, v.Buckets, 2)
	assert.Equal(t, 3, v.Total)

	assert.Equal(t, view.BucketOrders, v.Buckets[0].Name)
	assert.Equal(t, 2, v.Buckets[0].Count())
	assert.Equal(t, view.BucketNotOrders, v.Buckets[1].Name)
	assert.Equal(t, 1, v.Buckets[1].Count())

	// Orders traced to each message ride along on the card
	assert.Len(t, v.Buckets[0].Records[0].Orders, 1)
}

func TestServiceViewFiltered(t *testing.T) {
	client := newFakeClient()
	st := store.New()
	svc := NewService(client, st, zap.NewNop())
	require.NoError(t, svc.Load(context.Background()))

	v := svc.View(view.State{Query: "acme"})
	assert.Equal(t, 1, v.Total)
	assert.Equal(t, 1, v.Buckets[0].Count())
	assert.Equal(t, 0, v.Buckets[1].Count())
}
