package alert

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedNotifyAndDrain(t *testing.T) {
	feed := NewFeed(10)

	feed.Notify("failed to save delivery date")
	feed.Notify("failed to save instructions")
	assert.Equal(t, 2, feed.Pending())

	alerts := feed.Drain()
	require.Len(t, alerts, 2)
	assert.Equal(t, "failed to save delivery date", alerts[0].Message)
	assert.Equal(t, "failed to save instructions", alerts[1].Message)
	assert.NotEmpty(t, alerts[0].ID)
	assert.False(t, alerts[0].CreatedAt.IsZero())

	assert.Equal(t, 0, feed.Pending())
	assert.Empty(t, feed.Drain())
}

func TestFeedEvictsOldestAtCapacity(t *testing.T) {
	feed := NewFeed(3)

	for i := 0; i < 5; i++ {
		feed.Notify(fmt.Sprintf("alert %d", i))
	}

	alerts := feed.Drain()
	require.Len(t, alerts, 3)
	assert.Equal(t, "alert 2", alerts[0].Message)
	assert.Equal(t, "alert 4", alerts[2].Message)
}

func TestFeedConcurrentNotify(t *testing.T) {
	feed := NewFeed(1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				feed.Notify("concurrent")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 500, feed.Pending())
}
