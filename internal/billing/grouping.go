package billing

import (
	"sort"
	"strings"
)

// CopyType selects which monetary leg a printed document reports.
type CopyType string

const (
	// CopyOffice reports price and basket revenue.
	CopyOffice CopyType = "office"
	// CopyDriver reports wage and basket share.
	CopyDriver CopyType = "driver"
)

// ParseCopyType defaults to the office copy.
func ParseCopyType(s string) CopyType {
	if strings.EqualFold(strings.TrimSpace(s), string(CopyDriver)) {
		return CopyDriver
	}
	return CopyOffice
}

// RowKind separates delivery rows from basket rows.
type RowKind string

const (
	RowDelivery RowKind = "delivery"
	RowBasket   RowKind = "basket"
)

var rowLabels = map[CopyType]map[RowKind]string{
	CopyOffice: {RowDelivery: "ค่าขนส่งสินค้า", RowBasket: "ค่าตะกร้าสินค้า"},
	CopyDriver: {RowDelivery: "ค่าจ้าง", RowBasket: "ค่าส่วนแบ่งตะกร้า"},
}

// RowLabel is the printed description of a row kind for a copy.
func RowLabel(side CopyType, kind RowKind) string {
	return rowLabels[ParseCopyType(string(side))][kind]
}

// GroupedRow is one printable billing line: count trips on a route at a
// uniform unit value within a calendar month.
type GroupedRow struct {
	Route        string  `json:"route"`
	Kind         RowKind `json:"kind"`
	Type         string  `json:"type"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Count        int     `json:"count"`
	TotalAmount  float64 `json:"totalAmount"`
	// Month is the 1-based calendar month of the trip dates.
	Month int `json:"month"`
	Year  int `json:"year"`
}

type groupKey struct {
	kind  RowKind
	route string
	value float64
	year  int
	month int
}

// unitValues returns the delivery and basket values a copy reports.
func unitValues(t Trip, side CopyType) (delivery, basket float64) {
	if side == CopyDriver {
		return t.Wage, t.BasketShare
	}
	return t.Price, t.Basket
}

// GroupByRouteAndPrice groups trips by (route, unit value, month, year) for
// one copy. Only positive values produce rows. Rows sort by year, month,
// route, delivery before basket, then unit value.
func GroupByRouteAndPrice(trips []Trip, side CopyType) []GroupedRow {
	side = ParseCopyType(string(side))
	idx := map[groupKey]int{}
	rows := []GroupedRow{}

	add := func(t Trip, kind RowKind, value float64, year, month int) {
		if value <= 0 {
			return
		}
		k := groupKey{kind: kind, route: t.Route, value: value, year: year, month: month}
		i, ok := idx[k]
		if !ok {
			i = len(rows)
			idx[k] = i
			rows = append(rows, GroupedRow{
				Route:        t.Route,
				Kind:         kind,
				Type:         RowLabel(side, kind),
				PricePerUnit: value,
				Month:        month,
				Year:         year,
			})
		}
		rows[i].Count++
	}

	for _, t := range trips {
		year, month, ok := splitDate(t.Date)
		if !ok {
			continue
		}
		delivery, basket := unitValues(t, side)
		add(t, RowDelivery, delivery, year, month)
		add(t, RowBasket, basket, year, month)
	}

	for i := range rows {
		rows[i].TotalAmount = float64(rows[i].Count) * rows[i].PricePerUnit
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Route != b.Route {
			return a.Route < b.Route
		}
		if a.Kind != b.Kind {
			return a.Kind == RowDelivery
		}
		return a.PricePerUnit < b.PricePerUnit
	})
	return rows
}

// BillingSummary is the printable billing document for one cycle.
type BillingSummary struct {
	Cycle           Cycle        `json:"cycle"`
	Copy            CopyType     `json:"copy"`
	DriverName      string       `json:"driverName,omitempty"`
	RangeLabel      string       `json:"rangeLabel"`
	DeliveryRows    []GroupedRow `json:"deliveryRows"`
	BasketRows      []GroupedRow `json:"basketRows"`
	TotalCount      int          `json:"totalCount"`
	TotalAllRevenue float64      `json:"totalAllRevenue"`
	Housing         float64      `json:"housing"`
	TotalAdvance    float64      `json:"totalAdvance"`
	CN              float64      `json:"cn"`
	GrandTotal      float64      `json:"grandTotal"`
}

// Summarize builds a billing summary. The office copy totals revenue only;
// the driver copy settles pay: revenue + housing - (advance + cn).
func Summarize(trips []Trip, c Cycle, side CopyType, driver string, cn float64) BillingSummary {
	side = ParseCopyType(string(side))
	s := BillingSummary{
		Cycle:        c,
		Copy:         side,
		DriverName:   NormalizeName(driver),
		RangeLabel:   c.RangeLabel(),
		DeliveryRows: []GroupedRow{},
		BasketRows:   []GroupedRow{},
	}
	for _, r := range GroupByRouteAndPrice(trips, side) {
		if r.Kind == RowBasket {
			s.BasketRows = append(s.BasketRows, r)
		} else {
			s.DeliveryRows = append(s.DeliveryRows, r)
		}
		s.TotalCount += r.Count
		s.TotalAllRevenue += r.TotalAmount
	}
	if side != CopyDriver {
		s.GrandTotal = s.TotalAllRevenue
		return s
	}
	if len(trips) > 0 {
		s.Housing = HousingAllowance
	}
	for _, t := range trips {
		s.TotalAdvance += t.StaffShare
	}
	s.CN = amountOf(cn)
	s.GrandTotal = (s.TotalAllRevenue + s.Housing) - (s.TotalAdvance + s.CN)
	return s
}

// splitDate reads year and 1-based month from a YYYY-MM-DD prefix.
func splitDate(date string) (year, month int, ok bool) {
	d := DatePart(date)
	if len(d) < 7 || d[4] != '-' {
		return 0, 0, false
	}
	year = leadingInt(d[:4])
	month = leadingInt(d[5:7])
	if year == 0 || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
