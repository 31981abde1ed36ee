package notification

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyRecipient(t *testing.T) {
	h := NewHub()

	mine, cancelMine := h.Subscribe("u-1")
	defer cancelMine()
	other, cancelOther := h.Subscribe("u-2")
	defer cancelOther()

	delivered := h.Publish(Notification{ID: "n-1", UserID: "u-1"})
	assert.Equal(t, 1, delivered)

	got := <-mine
	assert.Equal(t, "n-1", got.ID)
	assert.Empty(t, other)
}

func TestHub_MultipleConnections(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe("u-1")
	b, cancelB := h.Subscribe("u-1")
	defer cancelB()

	assert.Equal(t, 2, h.Subscribers("u-1"))
	assert.Equal(t, 2, h.Publish(Notification{UserID: "u-1"}))
	<-a
	<-b

	cancelA()
	cancelA()
	_, open := <-a
	assert.False(t, open)
	assert.Equal(t, 1, h.Subscribers("u-1"))
}

func TestHub_SlowSubscriberDrops(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("u-1")
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		h.Publish(Notification{UserID: "u-1"})
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestHub_ConcurrentSubscribeAndPublish(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, cancel := h.Subscribe("u-1")
			cancel()
		}()
		go func() {
			defer wg.Done()
			h.Publish(Notification{UserID: "u-1"})
		}()
	}
	wg.Wait()

	require.Equal(t, 0, h.Subscribers("u-1"))
}
