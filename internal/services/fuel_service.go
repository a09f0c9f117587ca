package services

import (
	"context"
	"fmt"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"
	"fleetbilling/internal/utils"
)

type FuelService struct {
	Repo      RefillStore
	Cache     *TripCache
	RequestID string
}

func (s FuelService) List(ctx context.Context) ([]billing.FuelRefill, error) {
	return s.Repo.List(ctx)
}

func (s FuelService) Add(ctx context.Context, rec billing.FuelRefill) (billing.FuelRefill, error) {
	rec.Date = billing.DatePart(rec.Date)
	rec.Notes = billing.NormalizeName(rec.Notes)
	if !utils.IsDate(rec.Date) {
		return rec, domain.Invalid("date", "must be YYYY-MM-DD")
	}
	if rec.Amount <= 0 {
		return rec, domain.Invalid("amount", "must be greater than zero")
	}
	rec.ID = 0
	saved, err := s.Repo.Create(ctx, rec)
	if err != nil {
		return rec, err
	}
	utils.LogEvent(s.RequestID, "fuel", "add_refill", fmt.Sprintf("id=%d date=%s", saved.ID, saved.Date))
	return saved, nil
}

func (s FuelService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.Invalid("id", "must be positive")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "fuel", "delete_refill", fmt.Sprintf("id=%d", id))
	return nil
}

// Ledger is the balance for one driver, or the fleet when driver is empty.
func (s FuelService) Ledger(ctx context.Context, driver string) (billing.FuelLedger, error) {
	refills, trips, err := s.load(ctx)
	if err != nil {
		return billing.FuelLedger{}, err
	}
	return billing.FuelBalance(refills, trips, driver), nil
}

func (s FuelService) Drivers(ctx context.Context) ([]string, error) {
	refills, trips, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return billing.FuelDrivers(refills, trips), nil
}

func (s FuelService) load(ctx context.Context) ([]billing.FuelRefill, []billing.Trip, error) {
	refills, err := s.Repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	trips, err := s.Cache.Snapshot(ctx)
	if err != nil {
		return nil, nil, domain.Internal("load trips failed", err)
	}
	return refills, trips, nil
}
