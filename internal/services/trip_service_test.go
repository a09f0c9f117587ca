package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"
	"fleetbilling/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTripService(store *memTrips) (TripService, *realtime.Hub) {
	hub := realtime.NewHub(8)
	return TripService{
		Repo:  store,
		Cache: NewTripCache(store),
		Hub:   hub,
		Now:   func() time.Time { return time.Date(2024, time.January, 10, 9, 0, 0, 0, time.Local) },
	}, hub
}

func TestTripServiceCreateFillsBasketTierAndPublishes(t *testing.T) {
	store := &memTrips{}
	svc, hub := newTripService(store)
	events, cancel := hub.Subscribe()
	defer cancel()
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	saved, err := svc.Create(ctx, billing.RawRecord{"route": "R1", "driver_name": "A", "price": "1000", "basket_count": 95})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, "2024-01-10", saved.Date)
	assert.Equal(t, 600.0, saved.Basket)
	assert.Equal(t, 400.0, saved.BasketShare)

	ev := <-events
	assert.Equal(t, billing.ChangeInsert, ev.Type)

	trips, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, saved, trips[0])
	assert.Equal(t, 1, store.lists, "cache follows writes without reloading")
}

func TestTripServiceFailedWriteIsNotMerged(t *testing.T) {
	store := &memTrips{}
	svc, hub := newTripService(store)
	events, cancel := hub.Subscribe()
	defer cancel()
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	store.failWrite = errors.New("connection reset")
	_, err = svc.Create(ctx, billing.RawRecord{"route": "R1", "date": "2024-01-05"})
	require.Error(t, err)

	trips, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, trips)
	assert.Len(t, events, 0)
}

func TestTripServiceValidation(t *testing.T) {
	svc, _ := newTripService(&memTrips{})
	ctx := context.Background()

	_, err := svc.Create(ctx, nil)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(ctx, billing.RawRecord{"route": "R1", "date": "2024-13-40"})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(ctx, billing.RawRecord{"date": "2024-01-05"})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Update(ctx, 0, billing.RawRecord{"route": "R1"})
	assert.True(t, domain.IsValidation(err))
}

func TestTripServiceUpdateAndDelete(t *testing.T) {
	store := &memTrips{}
	svc, _ := newTripService(store)
	ctx := context.Background()

	saved, err := svc.Create(ctx, billing.RawRecord{"route": "R1", "date": "2024-01-05", "price": 500})
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, saved.ID, billing.RawRecord{"route": "R1", "date": "2024-01-05", "price": 700, "advance": 100})
	require.NoError(t, err)
	assert.Equal(t, 100.0, updated.StaffShare)

	trips, _ := svc.List(ctx)
	require.Len(t, trips, 1)
	assert.Equal(t, 700.0, trips[0].Price)

	_, err = svc.Update(ctx, 99, billing.RawRecord{"route": "R1", "date": "2024-01-05"})
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, svc.Delete(ctx, saved.ID))
	trips, _ = svc.List(ctx)
	assert.Empty(t, trips)
	assert.True(t, domain.IsNotFound(svc.Delete(ctx, saved.ID)))
}
