package realtime

import (
	"sync"
	"testing"

	"fleetbilling/internal/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToAllSubscribers(t *testing.T) {
	h := NewHub(4)
	a, cancelA := h.Subscribe()
	b, cancelB := h.Subscribe()
	defer cancelB()

	sent := h.Publish(billing.DeleteEvent(3))
	assert.Equal(t, 2, sent)
	assert.Equal(t, int64(3), (<-a).OldID)
	assert.Equal(t, int64(3), (<-b).OldID)

	cancelA()
	cancelA()
	_, open := <-a
	assert.False(t, open)
	assert.Equal(t, 1, h.Subscribers())
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := NewHub(1)
	ch, cancel := h.Subscribe()
	defer cancel()

	require.Equal(t, 1, h.Publish(billing.DeleteEvent(1)))
	assert.Equal(t, 0, h.Publish(billing.DeleteEvent(2)))
	assert.Equal(t, int64(1), (<-ch).OldID)
}

func TestHubConcurrentPublish(t *testing.T) {
	h := NewHub(100)
	ch, cancel := h.Subscribe()
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			h.Publish(billing.DeleteEvent(id))
		}(int64(i))
	}
	wg.Wait()
	assert.Len(t, ch, 50)

	var nilHub *Hub
	assert.Equal(t, 0, nilHub.Publish(billing.DeleteEvent(1)))
}

func TestHubRelayOnlyForLocalEvents(t *testing.T) {
	h := NewHub(4)
	var relayed []billing.ChangeEvent
	h.SetRelay(func(ev billing.ChangeEvent) { relayed = append(relayed, ev) })
	events, cancel := h.Subscribe()
	defer cancel()

	h.Publish(billing.DeleteEvent(1))
	h.Deliver(billing.DeleteEvent(2))

	assert.Equal(t, int64(1), (<-events).OldID)
	assert.Equal(t, int64(2), (<-events).OldID)
	require.Len(t, relayed, 1)
	assert.Equal(t, int64(1), relayed[0].OldID)
}
