package billing

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// HousingAllowance is the flat per-driver amount added to a cycle's pay
// when the driver logged at least one trip.
const HousingAllowance = 1000.0

// Stats are plain sums over a trip list; nothing is rounded here.
type Stats struct {
	TotalTrips        int     `json:"totalTrips"`
	TotalPrice        float64 `json:"totalPrice"`
	TotalWage         float64 `json:"totalWage"`
	TotalBasket       float64 `json:"totalBasket"`
	TotalBasketShare  float64 `json:"totalBasketShare"`
	TotalFuel         float64 `json:"totalFuel"`
	TotalMaintenance  float64 `json:"totalMaintenance"`
	TotalStaffAdvance float64 `json:"totalStaffAdvance"`
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalProfit       float64 `json:"totalProfit"`
	TotalNetPay       float64 `json:"totalNetPay"`
}

// CNMap holds per-driver CN deductions keyed by normalized driver name.
type CNMap map[string]float64

// NewCNMap normalizes the keys of a raw deduction map. Keys that collapse
// to the same driver are summed.
func NewCNMap(raw map[string]float64) CNMap {
	out := make(CNMap, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name := NormalizeName(k)
		if name == "" {
			continue
		}
		out[name] += amountOf(raw[k])
	}
	return out
}

// For returns the deduction for a driver, 0 when none is set.
func (m CNMap) For(driver string) float64 {
	if m == nil {
		return 0
	}
	return m[NormalizeName(driver)]
}

// DriverPay is one driver's settlement for a set of trips.
type DriverPay struct {
	DriverName  string  `json:"driverName"`
	Trips       int     `json:"trips"`
	Wage        float64 `json:"wage"`
	BasketShare float64 `json:"basketShare"`
	Housing     float64 `json:"housing"`
	Advance     float64 `json:"advance"`
	CN          float64 `json:"cn"`
	Income      float64 `json:"income"`
	Deductions  float64 `json:"deductions"`
	NetPay      float64 `json:"netPay"`
}

// PayFor settles one driver: (wage + basketShare + housing) - (advance + cn).
func PayFor(driver string, trips []Trip, cn float64) DriverPay {
	p := DriverPay{DriverName: NormalizeName(driver), Trips: len(trips), CN: amountOf(cn)}
	for _, t := range trips {
		p.Wage += t.Wage
		p.BasketShare += t.BasketShare
		p.Advance += t.StaffShare
	}
	if len(trips) > 0 {
		p.Housing = HousingAllowance
	}
	p.Income = p.Wage + p.BasketShare + p.Housing
	p.Deductions = p.Advance + p.CN
	p.NetPay = p.Income - p.Deductions
	return p
}

// ComputeNetPay is PayFor reduced to the net figure.
func ComputeNetPay(driverTrips []Trip, cnAmount float64) float64 {
	return PayFor("", driverTrips, cnAmount).NetPay
}

// GroupByDriver buckets trips by normalized driver name. Names come back
// sorted so callers iterate deterministically.
func GroupByDriver(trips []Trip) ([]string, map[string][]Trip) {
	groups := make(map[string][]Trip)
	for _, t := range trips {
		name := NormalizeName(t.DriverName)
		groups[name] = append(groups[name], t)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, groups
}

// DriverPays settles every driver that has trips in the list. Drivers
// without trips never appear.
func DriverPays(trips []Trip, cn CNMap) []DriverPay {
	names, groups := GroupByDriver(trips)
	out := make([]DriverPay, 0, len(names))
	for _, name := range names {
		out = append(out, PayFor(name, groups[name], cn.For(name)))
	}
	return out
}

// Aggregate folds trips into fleet totals. Net pay is summed per driver
// because the housing allowance is per driver, not per trip.
func Aggregate(trips []Trip, cn CNMap) Stats {
	var s Stats
	for _, t := range trips {
		s.TotalTrips++
		s.TotalPrice += t.Price
		s.TotalWage += t.Wage
		s.TotalBasket += t.Basket
		s.TotalBasketShare += t.BasketShare
		s.TotalFuel += t.Fuel
		s.TotalMaintenance += t.Maintenance
		s.TotalStaffAdvance += t.StaffShare
		s.TotalRevenue += t.Price + t.Basket
		s.TotalProfit += t.Profit
	}
	for _, p := range DriverPays(trips, cn) {
		s.TotalNetPay += p.NetPay
	}
	return s
}

// YearlyStats aggregates the trips dated in a calendar year, without CN
// deductions.
func YearlyStats(trips []Trip, year int) Stats {
	prefix := yearPrefix(year)
	in := make([]Trip, 0, len(trips))
	for _, t := range trips {
		if strings.HasPrefix(t.Date, prefix) {
			in = append(in, t)
		}
	}
	return Aggregate(in, nil)
}

// FilterCycle keeps the trips dated inside the cycle.
func FilterCycle(trips []Trip, c Cycle) []Trip {
	out := make([]Trip, 0, len(trips))
	for _, t := range trips {
		if c.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

func yearPrefix(year int) string {
	return fmt.Sprintf("%04d-", year)
}

func amountOf(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	return f
}
