package services

import (
	"context"
	"fmt"
	"strings"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"
	"fleetbilling/internal/utils"
)

type PresetService struct {
	Repo      PresetStore
	Prefs     PrefsStore
	RequestID string
}

// Resolve runs the suffix chain for a cycle. A failing lookup is logged
// and the next suffix is tried; only when every lookup fails is the
// error returned.
func (s PresetService) Resolve(ctx context.Context, c billing.Cycle) (billing.PresetMap, error) {
	suffixes := billing.PresetSuffixes(c)
	var lastErr error
	failed := 0
	for _, suffix := range suffixes {
		rows, err := s.Repo.ListBySuffix(ctx, suffix)
		if err != nil {
			failed++
			lastErr = err
			utils.LogEvent(s.RequestID, "presets", "lookup_failed", fmt.Sprintf("suffix=%q err=%v", suffix, err))
			continue
		}
		if m := billing.ResolveGroup(rows, suffix); len(m) > 0 {
			return m, nil
		}
	}
	if failed == len(suffixes) {
		return billing.PresetMap{}, domain.Internal("load presets failed", lastErr)
	}
	return billing.PresetMap{}, nil
}

func (s PresetService) Save(ctx context.Context, route string, price, wage float64, c billing.Cycle) (string, error) {
	route = strings.TrimSpace(route)
	if route == "" {
		return "", domain.Invalid("route", "required")
	}
	if price < 0 || wage < 0 {
		return "", domain.Invalid("price", "price and wage must not be negative")
	}
	key := billing.PresetKey(route, c)
	if err := s.Repo.Upsert(ctx, key, price, wage); err != nil {
		return "", err
	}
	utils.LogEvent(s.RequestID, "presets", "save", "key="+key)
	return key, nil
}

func (s PresetService) Delete(ctx context.Context, route string, c billing.Cycle) error {
	route = strings.TrimSpace(route)
	if route == "" {
		return domain.Invalid("route", "required")
	}
	key := billing.PresetKey(route, c)
	if err := s.Repo.Delete(ctx, key); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "presets", "delete", "key="+key)
	return nil
}

// FormDefaults prefills the trip form for a route: cycle preset, then the
// profile's last-used values, then blank.
func (s PresetService) FormDefaults(ctx context.Context, profile, route string, c billing.Cycle) (billing.FormDefaults, error) {
	presets, err := s.Resolve(ctx, c)
	if err != nil {
		return billing.FormDefaults{}, err
	}
	prefs := billing.UserPreferences{}
	if s.Prefs != nil && strings.TrimSpace(profile) != "" {
		prefs, err = s.Prefs.Get(ctx, strings.TrimSpace(profile))
		if err != nil {
			return billing.FormDefaults{}, err
		}
	}
	return billing.ResolveFormDefaults(route, presets, prefs), nil
}
