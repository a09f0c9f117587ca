package billing

import "sort"

// FuelRefill is a cash top-up of a fuel budget. Notes carry the driver name.
type FuelRefill struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

// FuelLedger is the running fuel balance for a driver or the whole fleet.
type FuelLedger struct {
	Driver          string  `json:"driver,omitempty"`
	TotalRefills    float64 `json:"totalRefills"`
	FuelUsed        float64 `json:"fuelUsed"`
	Balance         float64 `json:"balance"`
	FirstRefillDate string  `json:"firstRefillDate,omitempty"`
	// Negative flags an overdrawn budget; it is reported, not rejected.
	Negative bool `json:"negative"`
}

// FuelBalance computes refills minus usage. An empty driver keeps every
// record. Fuel spent before the first refill is not charged to the
// ledger, and without any refill nothing is.
func FuelBalance(refills []FuelRefill, trips []Trip, driver string) FuelLedger {
	name := NormalizeName(driver)
	l := FuelLedger{Driver: name}

	for _, r := range refills {
		if name != "" && NormalizeName(r.Notes) != name {
			continue
		}
		l.TotalRefills += r.Amount
		d := DatePart(r.Date)
		if d != "" && (l.FirstRefillDate == "" || d < l.FirstRefillDate) {
			l.FirstRefillDate = d
		}
	}

	if l.FirstRefillDate != "" {
		for _, t := range trips {
			if name != "" && NormalizeName(t.DriverName) != name {
				continue
			}
			if DatePart(t.Date) >= l.FirstRefillDate {
				l.FuelUsed += t.Fuel
			}
		}
	}

	l.Balance = l.TotalRefills - l.FuelUsed
	l.Negative = l.Balance < 0
	return l
}

// FuelDrivers lists every driver named by a refill or a trip, sorted.
func FuelDrivers(refills []FuelRefill, trips []Trip) []string {
	seen := map[string]struct{}{}
	for _, r := range refills {
		if n := NormalizeName(r.Notes); n != "" {
			seen[n] = struct{}{}
		}
	}
	for _, t := range trips {
		if n := NormalizeName(t.DriverName); n != "" {
			seen[n] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
