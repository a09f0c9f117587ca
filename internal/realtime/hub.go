// Package realtime fans trip change events out to connected clients.
package realtime

import (
	"sync"

	"fleetbilling/internal/billing"
)

const defaultBuffer = 32

// Hub is an in-process publish/subscribe point for change events. A slow
// subscriber misses events instead of blocking the publisher; clients
// refetch the trip list when they reconnect.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan billing.ChangeEvent
	next   int
	buffer int
	relay  func(billing.ChangeEvent)
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{subs: map[int]chan billing.ChangeEvent{}, buffer: buffer}
}

// Subscribe registers a listener. The returned cancel func closes the
// channel and is safe to call more than once.
func (h *Hub) Subscribe() (<-chan billing.ChangeEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan billing.ChangeEvent, h.buffer)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// SetRelay registers a hook that forwards locally published events to
// other instances.
func (h *Hub) SetRelay(fn func(billing.ChangeEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.relay = fn
}

// Publish delivers a locally produced event to subscribers and to the
// relay, and returns how many subscribers received it. A nil hub drops
// the event.
func (h *Hub) Publish(ev billing.ChangeEvent) int {
	if h == nil {
		return 0
	}
	n := h.Deliver(ev)

	h.mu.RLock()
	relay := h.relay
	h.mu.RUnlock()
	if relay != nil {
		relay(ev)
	}
	return n
}

// Deliver fans ev out to local subscribers only. Events received from
// other instances come in here so they are not relayed back.
func (h *Hub) Deliver(ev billing.ChangeEvent) int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, ch := range h.subs {
		select {
		case ch <- ev:
			sent++
		default:
		}
	}
	return sent
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
