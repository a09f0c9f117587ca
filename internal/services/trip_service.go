package services

import (
	"context"
	"fmt"
	"time"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"
	"fleetbilling/internal/realtime"
	"fleetbilling/internal/utils"
)

type TripService struct {
	Repo      TripStore
	Cache     *TripCache
	Hub       *realtime.Hub
	RequestID string
	Now       utils.Clock
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.SystemClock()
}

func (s TripService) List(ctx context.Context) ([]billing.Trip, error) {
	trips, err := s.Cache.Snapshot(ctx)
	if err != nil {
		return nil, domain.Internal("load trips failed", err)
	}
	return trips, nil
}

// prepare normalizes user input into a storable trip.
func (s TripService) prepare(raw billing.RawRecord) (billing.Trip, error) {
	t := billing.NormalizeAt(raw, s.now())
	if t == nil {
		return billing.Trip{}, domain.Invalid("body", "trip payload required")
	}
	if !utils.IsDate(t.Date) {
		return billing.Trip{}, domain.Invalid("date", "must be YYYY-MM-DD")
	}
	if t.Route == "" {
		return billing.Trip{}, domain.Invalid("route", "required")
	}
	billing.ApplyBasketTier(t)
	return *t, nil
}

// Create stores a new trip. The cache and subscribers only see it once
// the store accepted it.
func (s TripService) Create(ctx context.Context, raw billing.RawRecord) (billing.Trip, error) {
	t, err := s.prepare(raw)
	if err != nil {
		return billing.Trip{}, err
	}
	t.ID = 0
	saved, err := s.Repo.Create(ctx, t)
	if err != nil {
		utils.LogEvent(s.RequestID, "trips", "create_failed", err.Error())
		return billing.Trip{}, err
	}
	s.publish(billing.InsertEvent(saved))
	utils.LogEvent(s.RequestID, "trips", "create", fmt.Sprintf("id=%d date=%s", saved.ID, saved.Date))
	return saved, nil
}

func (s TripService) Update(ctx context.Context, id int64, raw billing.RawRecord) (billing.Trip, error) {
	if id <= 0 {
		return billing.Trip{}, domain.Invalid("id", "must be positive")
	}
	t, err := s.prepare(raw)
	if err != nil {
		return billing.Trip{}, err
	}
	t.ID = id
	if err := s.Repo.Update(ctx, t); err != nil {
		utils.LogEvent(s.RequestID, "trips", "update_failed", fmt.Sprintf("id=%d err=%v", id, err))
		return billing.Trip{}, err
	}
	s.publish(billing.UpdateEvent(t))
	utils.LogEvent(s.RequestID, "trips", "update", fmt.Sprintf("id=%d", id))
	return t, nil
}

func (s TripService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.Invalid("id", "must be positive")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		utils.LogEvent(s.RequestID, "trips", "delete_failed", fmt.Sprintf("id=%d err=%v", id, err))
		return err
	}
	s.publish(billing.DeleteEvent(id))
	utils.LogEvent(s.RequestID, "trips", "delete", fmt.Sprintf("id=%d", id))
	return nil
}

func (s TripService) publish(ev billing.ChangeEvent) {
	if s.Cache != nil {
		s.Cache.Apply(ev)
	}
	s.Hub.Publish(ev)
}
