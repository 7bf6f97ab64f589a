package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wady/orderhub/internal/domain/inbox"
	"github.com/wady/orderhub/internal/domain/order"
	"github.com/wady/orderhub/internal/store"
)

func testSnapshot() store.Snapshot {
	received := time.Date(2025, 6, 12, 9, 30, 0, 0, time.Local)
	return store.Snapshot{
		Messages: []inbox.Message{
			{ID: "m1", Subject: "Milk order", SenderName: "Ana", SenderEmail: "ana@farm.example", ReceivedAt: &received, Status: inbox.MessageStatusOrder},
			{ID: "m2", Subject: "Newsletter", SenderName: "Marketing", SenderEmail: "news@corp.example", Status: inbox.MessageStatusNotOrder},
		},
		Orders: []order.Order{
			{ID: "o1", InboxItemID: "m1", PONumber: "PO-100", Status: order.StatusNew},
			{ID: "o2", InboxItemID: "m1", PONumber: "PO-101", Status: order.StatusReviewed},
			{ID: "o3", InboxItemID: "", PONumber: "PO-102", Status: order.StatusNew},
		},
		ItemsByOrder: map[string][]order.LineItem{
			"o1": {
				{ID: "i1", OrderID: "o1", ProductID: "p1", Quantity: 2},
				{ID: "i2", OrderID: "o1", Quantity: 1},
			},
		},
	}
}

func TestMessageCards(t *testing.T) {
	cards := MessageCards(testSnapshot())
	require.Len(t, cards, 2)

	t.Run("orders attach in discovery order", func(t *testing.T) {
		require.Len(t, cards[0].Orders, 2)
		assert.Equal(t, "o1", cards[0].Orders[0].ID)
		assert.Equal(t, "o2", cards[0].Orders[1].ID)
	})

	t.Run("message without orders gets empty list", func(t *testing.T) {
		assert.Empty(t, cards[1].Orders)
	})
}

func TestOrderRows(t *testing.T) {
	rows := OrderRows(testSnapshot())
	require.Len(t, rows, 3)

	t.Run("enriched from originating message", func(t *testing.T) {
		assert.Equal(t, "Ana", rows[0].CustomerName)
		assert.Equal(t, "ana@farm.example", rows[0].SenderEmail)
		assert.Equal(t, 2, rows[0].ItemCount)
	})

	t.Run("untraced order degrades gracefully", func(t *testing.T) {
		assert.Empty(t, rows[2].CustomerName)
		assert.Zero(t, rows[2].ItemCount)
	})

	t.Run("unfetched items yield zero count", func(t *testing.T) {
		assert.Zero(t, rows[1].ItemCount)
	})
}

func TestOrderDetailView(t *testing.T) {
	snap := testSnapshot()

	t.Run("joins items and originating message", func(t *testing.T) {
		detail, ok := OrderDetailView(snap, "o1")
		require.True(t, ok)
		assert.Equal(t, "PO-100", detail.Order.PONumber)
		require.Len(t, detail.Items, 2)
		assert.Equal(t, "i1", detail.Items[0].ID)
		require.NotNil(t, detail.Message)
		assert.Equal(t, "m1", detail.Message.ID)
	})

	t.Run("items not fetched yet render as empty", func(t *testing.T) {
		detail, ok := OrderDetailView(snap, "o2")
		require.True(t, ok)
		assert.Empty(t, detail.Items)
	})

	t.Run("untraced order has no message", func(t *testing.T) {
		detail, ok := OrderDetailView(snap, "o3")
		require.True(t, ok)
		assert.Nil(t, detail.Message)
	})

	t.Run("absent order reports not found", func(t *testing.T) {
		_, ok := OrderDetailView(snap, "missing")
		assert.False(t, ok)
	})
}
