package realtime

import (
	"context"
	"testing"
	"time"

	"fleetbilling/internal/billing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelaySkipsOwnMessages(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	a := NewRedisRelay(client, "")
	b := NewRedisRelay(client, "")
	assert.Equal(t, DefaultChannel, a.channel)

	trip := billing.Trip{ID: 4, Date: "2024-01-05", Route: "R1", Price: 900}
	payload, err := a.encode(billing.InsertEvent(trip))
	require.NoError(t, err)

	_, remote, err := a.decode(string(payload))
	require.NoError(t, err)
	assert.False(t, remote)

	ev, remote, err := b.decode(string(payload))
	require.NoError(t, err)
	assert.True(t, remote)
	assert.Equal(t, billing.ChangeInsert, ev.Type)

	got := billing.ApplyChange(nil, ev)
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].ID)
	assert.Equal(t, 900.0, got[0].Price)

	_, _, err = b.decode("not json")
	assert.Error(t, err)
}

func TestRelayAttachDoesNotBlockPublish(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	relay := NewRedisRelay(client, "")
	release := make(chan struct{})
	sent := make(chan billing.ChangeEvent, 4)
	relay.send = func(ctx context.Context, ev billing.ChangeEvent) error {
		<-release
		sent <- ev
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(4)
	relay.Attach(ctx, hub)

	start := time.Now()
	hub.Publish(billing.DeleteEvent(1))
	hub.Publish(billing.DeleteEvent(2))
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	close(release)
	for _, want := range []int64{1, 2} {
		select {
		case ev := <-sent:
			assert.Equal(t, want, ev.OldID)
		case <-time.After(2 * time.Second):
			t.Fatalf("event %d was not forwarded", want)
		}
	}
}

func TestRelayDropsWhenQueueIsFull(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	relay := NewRedisRelay(client, "")
	for i := 0; i < relayBuffer; i++ {
		require.True(t, relay.enqueue(billing.DeleteEvent(int64(i))))
	}
	assert.False(t, relay.enqueue(billing.DeleteEvent(-1)))
	assert.Equal(t, relayBuffer, len(relay.outbox))
}
