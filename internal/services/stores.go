package services

import (
	"context"

	"fleetbilling/internal/billing"
)

// The services depend on these narrow store contracts; the
// repositories package provides the SQL implementations.

type TripStore interface {
	List(ctx context.Context) ([]billing.Trip, error)
	Get(ctx context.Context, id int64) (billing.Trip, error)
	Create(ctx context.Context, t billing.Trip) (billing.Trip, error)
	Update(ctx context.Context, t billing.Trip) error
	Delete(ctx context.Context, id int64) error
}

type PresetStore interface {
	ListBySuffix(ctx context.Context, suffix string) ([]billing.StoredPreset, error)
	Upsert(ctx context.Context, routeName string, price, wage float64) error
	Delete(ctx context.Context, routeName string) error
}

type CNStore interface {
	List(ctx context.Context) (billing.CNMap, error)
	Set(ctx context.Context, driver string, amount float64) error
}

type RefillStore interface {
	List(ctx context.Context) ([]billing.FuelRefill, error)
	Create(ctx context.Context, rec billing.FuelRefill) (billing.FuelRefill, error)
	Delete(ctx context.Context, id int64) error
}

type PrefsStore interface {
	Get(ctx context.Context, profile string) (billing.UserPreferences, error)
	Save(ctx context.Context, profile string, prefs billing.UserPreferences) error
}
