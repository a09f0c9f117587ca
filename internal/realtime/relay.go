package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"fleetbilling/internal/billing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultChannel = "fleetbilling:trips"

	relayBuffer      = 256
	relaySendTimeout = 2 * time.Second
)

type envelope struct {
	Origin string              `json:"origin"`
	Event  billing.ChangeEvent `json:"event"`
}

// RedisRelay carries change events between API instances over a Redis
// pub/sub channel, so every instance's trip cache and stream clients see
// writes made elsewhere.
type RedisRelay struct {
	client  *redis.Client
	channel string
	origin  string

	outbox chan billing.ChangeEvent
	send   func(context.Context, billing.ChangeEvent) error
}

func NewRedisRelay(client *redis.Client, channel string) *RedisRelay {
	if channel == "" {
		channel = DefaultChannel
	}
	r := &RedisRelay{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		outbox:  make(chan billing.ChangeEvent, relayBuffer),
	}
	r.send = r.Send
	return r
}

func (r *RedisRelay) encode(ev billing.ChangeEvent) ([]byte, error) {
	return json.Marshal(envelope{Origin: r.origin, Event: ev})
}

// decode reports remote=false for messages this instance sent itself.
func (r *RedisRelay) decode(payload string) (ev billing.ChangeEvent, remote bool, err error) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return billing.ChangeEvent{}, false, err
	}
	if env.Origin == r.origin {
		return env.Event, false, nil
	}
	return env.Event, true, nil
}

func (r *RedisRelay) Send(ctx context.Context, ev billing.ChangeEvent) error {
	data, err := r.encode(ev)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.channel, data).Err()
}

// Attach forwards the hub's locally published events to Redis until ctx
// ends. Publishing only queues the event; a full queue drops it so HTTP
// writes never wait on Redis.
func (r *RedisRelay) Attach(ctx context.Context, h *Hub) {
	h.SetRelay(func(ev billing.ChangeEvent) {
		if !r.enqueue(ev) {
			log.Printf("[REALTIME] action=relay_drop channel=%s type=%s", r.channel, ev.Type)
		}
	})
	go r.drain(ctx)
}

func (r *RedisRelay) enqueue(ev billing.ChangeEvent) bool {
	select {
	case r.outbox <- ev:
		return true
	default:
		return false
	}
}

func (r *RedisRelay) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.outbox:
			sendCtx, cancel := context.WithTimeout(ctx, relaySendTimeout)
			if err := r.send(sendCtx, ev); err != nil {
				log.Printf("[REALTIME] action=relay_send channel=%s err=%v", r.channel, err)
			}
			cancel()
		}
	}
}

// Run hands events published by other instances to apply until ctx ends.
func (r *RedisRelay) Run(ctx context.Context, apply func(billing.ChangeEvent)) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	log.Printf("[REALTIME] action=relay_start channel=%s origin=%s", r.channel, r.origin)

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			ev, remote, err := r.decode(msg.Payload)
			if err != nil {
				log.Printf("[REALTIME] action=relay_decode err=%v", err)
				continue
			}
			if remote {
				apply(ev)
			}
		}
	}
}
