package services

import (
	"context"
	"strings"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"
	"fleetbilling/internal/utils"
)

type PrefsService struct {
	Repo      PrefsStore
	RequestID string
}

func (s PrefsService) Get(ctx context.Context, profile string) (billing.UserPreferences, error) {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return billing.UserPreferences{}, domain.Invalid("profile", "required")
	}
	return s.Repo.Get(ctx, profile)
}

func (s PrefsService) Save(ctx context.Context, profile string, prefs billing.UserPreferences) error {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return domain.Invalid("profile", "required")
	}
	prefs.LastDriverName = billing.NormalizeName(prefs.LastDriverName)
	if err := s.Repo.Save(ctx, profile, prefs); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "prefs", "save", "profile="+profile)
	return nil
}

// RememberEntry records the driver and route values of a stored trip
// for the profile's next form session.
func (s PrefsService) RememberEntry(ctx context.Context, profile string, t billing.Trip) error {
	prefs, err := s.Get(ctx, profile)
	if err != nil {
		return err
	}
	prefs.SetDriver(t.DriverName)
	prefs.Remember(t.Route, t.Price, t.Wage)
	return s.Save(ctx, profile, prefs)
}
