package services

import (
	"context"
	"fmt"
	"strings"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"
	"fleetbilling/internal/utils"

	"golang.org/x/sync/errgroup"
)

type CycleService struct {
	Cache     *TripCache
	Presets   PresetService
	CN        CNStore
	RequestID string
}

// CycleView is everything the monthly screen shows for one cycle.
type CycleView struct {
	Cycle      billing.Cycle       `json:"cycle"`
	Key        string              `json:"key"`
	Label      string              `json:"label"`
	RangeLabel string              `json:"rangeLabel"`
	StartDate  string              `json:"startDate"`
	EndDate    string              `json:"endDate"`
	Trips      []billing.Trip      `json:"trips"`
	Stats      billing.Stats       `json:"stats"`
	Yearly     billing.Stats       `json:"yearlyStats"`
	Drivers    []billing.DriverPay `json:"drivers"`
	Presets    billing.PresetMap   `json:"presets"`
}

// cycleTrips returns the cycle's trips exactly as stored.
func (s CycleService) cycleTrips(ctx context.Context, c billing.Cycle) ([]billing.Trip, error) {
	all, err := s.Cache.Snapshot(ctx)
	if err != nil {
		return nil, domain.Internal("load trips failed", err)
	}
	return billing.FilterCycle(all, c), nil
}

// cyclePresets resolves the cycle's presets for the entry form. A failed
// load leaves the map empty; no figure depends on it.
func (s CycleService) cyclePresets(ctx context.Context, c billing.Cycle) billing.PresetMap {
	presets, err := s.Presets.Resolve(ctx, c)
	if err != nil {
		utils.LogEvent(s.RequestID, "cycles", "presets_unavailable", err.Error())
		return billing.PresetMap{}
	}
	return presets
}

func (s CycleService) cnMap(ctx context.Context) (billing.CNMap, error) {
	if s.CN == nil {
		return billing.CNMap{}, nil
	}
	cn, err := s.CN.List(ctx)
	if err != nil {
		return nil, domain.Internal("load cn deductions failed", err)
	}
	return cn, nil
}

// View loads the cycle trips, CN deductions and the yearly totals
// concurrently.
func (s CycleService) View(ctx context.Context, c billing.Cycle) (CycleView, error) {
	var (
		trips   []billing.Trip
		presets billing.PresetMap
		cn      billing.CNMap
		yearly  billing.Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trips, err = s.cycleTrips(gctx, c)
		return err
	})
	g.Go(func() error {
		presets = s.cyclePresets(gctx, c)
		return nil
	})
	g.Go(func() error {
		var err error
		cn, err = s.cnMap(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		yearly, err = s.Yearly(gctx, c.Year)
		return err
	})
	if err := g.Wait(); err != nil {
		return CycleView{}, err
	}

	return CycleView{
		Cycle:      c,
		Key:        c.Key(),
		Label:      c.Label(),
		RangeLabel: c.RangeLabel(),
		StartDate:  c.StartDate(),
		EndDate:    c.EndDate(),
		Trips:      trips,
		Stats:      billing.Aggregate(trips, cn),
		Yearly:     yearly,
		Drivers:    billing.DriverPays(trips, cn),
		Presets:    presets,
	}, nil
}

func (s CycleService) Days(ctx context.Context, c billing.Cycle) ([]billing.DayRow, error) {
	trips, err := s.cycleTrips(ctx, c)
	if err != nil {
		return nil, err
	}
	return billing.DailyRows(trips, c), nil
}

// Trips returns the stored trips of a cycle, optionally for one driver.
func (s CycleService) Trips(ctx context.Context, c billing.Cycle, driver string) ([]billing.Trip, error) {
	trips, err := s.cycleTrips(ctx, c)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(driver) != "" {
		trips = billing.FilterDriver(trips, driver)
	}
	return trips, nil
}

// Summary builds the billing document. A driver copy for a named driver
// only counts that driver's trips and CN.
func (s CycleService) Summary(ctx context.Context, c billing.Cycle, side billing.CopyType, driver string) (billing.BillingSummary, error) {
	trips, err := s.Trips(ctx, c, driver)
	if err != nil {
		return billing.BillingSummary{}, err
	}
	cn := 0.0
	if billing.ParseCopyType(string(side)) == billing.CopyDriver && strings.TrimSpace(driver) != "" {
		m, err := s.cnMap(ctx)
		if err != nil {
			return billing.BillingSummary{}, err
		}
		cn = m.For(driver)
	}
	utils.LogEvent(s.RequestID, "cycles", "summary", fmt.Sprintf("cycle=%s copy=%s trips=%d", c.Key(), side, len(trips)))
	return billing.Summarize(trips, c, side, driver, cn), nil
}

func (s CycleService) TripLog(ctx context.Context, c billing.Cycle, side billing.CopyType, driver string) (billing.TripLog, error) {
	trips, err := s.Trips(ctx, c, driver)
	if err != nil {
		return billing.TripLog{}, err
	}
	return billing.BuildTripLog(trips, c, side, driver), nil
}

// Slip settles one driver for the cycle. A driver without trips in the
// cycle has no slip.
func (s CycleService) Slip(ctx context.Context, c billing.Cycle, driver string) (billing.SalarySlip, error) {
	name := billing.NormalizeName(driver)
	if name == "" {
		return billing.SalarySlip{}, domain.Invalid("driver", "required")
	}
	trips, err := s.Trips(ctx, c, name)
	if err != nil {
		return billing.SalarySlip{}, err
	}
	if len(trips) == 0 {
		return billing.SalarySlip{}, domain.NotFound("driver", name)
	}
	cn, err := s.cnMap(ctx)
	if err != nil {
		return billing.SalarySlip{}, err
	}
	return billing.BuildSalarySlip(name, trips, c, cn.For(name)), nil
}

// Yearly aggregates stored values for a calendar year; CN is cycle
// scoped and does not apply.
func (s CycleService) Yearly(ctx context.Context, year int) (billing.Stats, error) {
	if year < 1 {
		return billing.Stats{}, domain.Invalid("year", "must be positive")
	}
	all, err := s.Cache.Snapshot(ctx)
	if err != nil {
		return billing.Stats{}, domain.Internal("load trips failed", err)
	}
	return billing.YearlyStats(all, year), nil
}

func (s CycleService) CNDeductions(ctx context.Context) (billing.CNMap, error) {
	return s.cnMap(ctx)
}

func (s CycleService) SetCN(ctx context.Context, driver string, amount float64) error {
	if s.CN == nil {
		return domain.Internal("cn store not configured", nil)
	}
	if err := s.CN.Set(ctx, driver, amount); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "cycles", "set_cn", fmt.Sprintf("driver=%s amount=%s", billing.NormalizeName(driver), utils.FormatMoney(amount)))
	return nil
}
