package services

import (
	"context"
	"sync"

	"fleetbilling/internal/billing"
)

// TripCache holds the working set of trips. It loads lazily from the
// store and then follows successful writes through ApplyChange.
type TripCache struct {
	mu     sync.Mutex
	store  TripStore
	trips  []billing.Trip
	loaded bool
}

func NewTripCache(store TripStore) *TripCache {
	return &TripCache{store: store}
}

// Snapshot returns a copy of the cached trips, loading them first if
// needed.
func (c *TripCache) Snapshot(ctx context.Context) ([]billing.Trip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		if err := c.loadLocked(ctx); err != nil {
			return nil, err
		}
	}
	out := make([]billing.Trip, len(c.trips))
	copy(out, c.trips)
	return out, nil
}

func (c *TripCache) loadLocked(ctx context.Context) error {
	trips, err := c.store.List(ctx)
	if err != nil {
		return err
	}
	c.trips = trips
	c.loaded = true
	return nil
}

// Apply folds a confirmed change into the cache. Before the first load
// there is nothing to update; the next Snapshot reads fresh rows.
func (c *TripCache) Apply(ev billing.ChangeEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return
	}
	c.trips = billing.ApplyChange(c.trips, ev)
}
