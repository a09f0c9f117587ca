// Package billing holds the fleet billing rules: trip normalization, the
// 20th-19th billing cycle, pay and revenue aggregation, the fuel ledger and
// route preset resolution. Everything here is pure; callers load records
// and hand them in.
package billing

import "strings"

// Trip is one logged delivery run in canonical form.
type Trip struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	DriverName  string  `json:"driverName"`
	Route       string  `json:"route"`
	Price       float64 `json:"price"`
	Fuel        float64 `json:"fuel"`
	Wage        float64 `json:"wage"`
	Maintenance float64 `json:"maintenance"`
	Basket      float64 `json:"basket"`
	BasketCount int     `json:"basketCount"`
	BasketShare float64 `json:"basketShare"`
	// StaffShare is the cash advance drawn by the driver, not a revenue split.
	StaffShare float64 `json:"staffShare"`
	Profit     float64 `json:"profit"`

	FuelBillURL        string `json:"fuel_bill_url,omitempty"`
	MaintenanceBillURL string `json:"maintenance_bill_url,omitempty"`
	BasketBillURL      string `json:"basket_bill_url,omitempty"`
}

// ComputeProfit returns (price + basket) - (fuel + wage + maintenance + basketShare).
func ComputeProfit(t Trip) float64 {
	return (t.Price + t.Basket) - (t.Fuel + t.Wage + t.Maintenance + t.BasketShare)
}

// Recompute refreshes the derived profit field.
func (t *Trip) Recompute() {
	t.Profit = ComputeProfit(*t)
}

// Raw re-emits the trip using its canonical keys so it can be fed back
// through Normalize.
func (t Trip) Raw() RawRecord {
	return RawRecord{
		"id":                   t.ID,
		"date":                 t.Date,
		"driverName":           t.DriverName,
		"route":                t.Route,
		"price":                t.Price,
		"fuel":                 t.Fuel,
		"wage":                 t.Wage,
		"maintenance":          t.Maintenance,
		"basket":               t.Basket,
		"basketCount":          t.BasketCount,
		"basketShare":          t.BasketShare,
		"staffShare":           t.StaffShare,
		"fuel_bill_url":        t.FuelBillURL,
		"maintenance_bill_url": t.MaintenanceBillURL,
		"basket_bill_url":      t.BasketBillURL,
	}
}

// NormalizeName trims a driver name and collapses inner whitespace runs.
// The result is the driver identity used for every grouping.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FilterDriver keeps the trips whose normalized driver name equals driver.
func FilterDriver(trips []Trip, driver string) []Trip {
	want := NormalizeName(driver)
	out := make([]Trip, 0, len(trips))
	for _, t := range trips {
		if NormalizeName(t.DriverName) == want {
			out = append(out, t)
		}
	}
	return out
}
