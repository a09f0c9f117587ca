package billing

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for every stored date.
const DateLayout = "2006-01-02"

// RawRecord is a trip-like record as it arrives from a form, a JSON body or
// a database row. Field names vary between sources.
type RawRecord map[string]any

// Synonym sets, tried in order. staffShare (cash advance) and basketShare
// (basket split) read from different sets even though the store column
// "staff_share" looks like it belongs to the former.
var (
	driverNameKeys  = []string{"driverName", "driver_name", "driver", "staff", "name"}
	routeKeys       = []string{"route", "path"}
	staffShareKeys  = []string{"staffShare", "advance", "staff_advance"}
	basketShareKeys = []string{"basketShare", "basket_share", "staff_share"}
	basketCountKeys = []string{"basket_count", "basketCount"}
	fuelBillKeys    = []string{"fuel_bill_url", "fuel_url", "fuelUrl"}
	maintenanceKeys = []string{"maintenance_bill_url", "maintenance_url", "maintenanceUrl"}
	basketBillKeys  = []string{"basket_bill_url", "basket_url", "basketUrl"}
)

// Normalize converts a raw record into a canonical Trip, defaulting a
// missing date to today. It returns nil only for a nil record.
func Normalize(raw RawRecord) *Trip {
	return NormalizeAt(raw, time.Now())
}

// NormalizeAt is Normalize with an explicit "today".
func NormalizeAt(raw RawRecord, now time.Time) *Trip {
	if raw == nil {
		return nil
	}
	t := &Trip{
		ID:                 parseID(raw["id"]),
		Date:               normalizeDate(raw["date"], now),
		DriverName:         NormalizeName(firstString(raw, driverNameKeys)),
		Route:              strings.TrimSpace(firstString(raw, routeKeys)),
		Price:              amount(raw["price"]),
		Fuel:               amount(raw["fuel"]),
		Wage:               amount(raw["wage"]),
		Maintenance:        amount(raw["maintenance"]),
		Basket:             amount(raw["basket"]),
		BasketCount:        firstCount(raw, basketCountKeys),
		BasketShare:        firstAmount(raw, basketShareKeys),
		StaffShare:         firstAmount(raw, staffShareKeys),
		FuelBillURL:        strings.TrimSpace(firstString(raw, fuelBillKeys)),
		MaintenanceBillURL: strings.TrimSpace(firstString(raw, maintenanceKeys)),
		BasketBillURL:      strings.TrimSpace(firstString(raw, basketBillKeys)),
	}
	t.Recompute()
	return t
}

// NormalizeAll normalizes every record, dropping nil ones.
func NormalizeAll(raws []RawRecord) []Trip {
	out := make([]Trip, 0, len(raws))
	for _, r := range raws {
		if t := Normalize(r); t != nil {
			out = append(out, *t)
		}
	}
	return out
}

// DatePart returns the calendar-date part of an ISO date or date-time string.
func DatePart(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

func normalizeDate(v any, now time.Time) string {
	switch x := v.(type) {
	case string:
		if d := DatePart(x); d != "" {
			return d
		}
	case []byte:
		if d := DatePart(string(x)); d != "" {
			return d
		}
	case time.Time:
		if !x.IsZero() {
			return x.Local().Format(DateLayout)
		}
	case *time.Time:
		if x != nil && !x.IsZero() {
			return x.Local().Format(DateLayout)
		}
	}
	return now.Format(DateLayout)
}

func firstString(raw RawRecord, keys []string) string {
	for _, k := range keys {
		switch x := raw[k].(type) {
		case string:
			if x != "" {
				return x
			}
		case []byte:
			if len(x) > 0 {
				return string(x)
			}
		}
	}
	return ""
}

func firstAmount(raw RawRecord, keys []string) float64 {
	for _, k := range keys {
		if f := amount(raw[k]); f != 0 {
			return f
		}
	}
	return 0
}

func firstCount(raw RawRecord, keys []string) int {
	for _, k := range keys {
		if n := ParseIntOrZero(raw[k]); n > 0 {
			return n
		}
	}
	return 0
}

func parseID(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float64:
		return int64(x)
	case json.Number:
		n, _ := x.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n
	}
	return 0
}
