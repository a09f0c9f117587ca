package billing

import (
	"fmt"
	"strings"
)

// DayRow is one line of the monthly cycle table.
type DayRow struct {
	CycleDay
	Routes      string  `json:"route"`
	Drivers     string  `json:"driverName"`
	Count       int     `json:"count"`
	Price       float64 `json:"price"`
	Fuel        float64 `json:"fuel"`
	Wage        float64 `json:"wage"`
	Basket      float64 `json:"basket"`
	BasketShare float64 `json:"basketShare"`
	StaffShare  float64 `json:"staffShare"`
	Maintenance float64 `json:"maintenance"`
	Profit      float64 `json:"profit"`
	Items       []Trip  `json:"items"`
}

func tripsByDate(trips []Trip) map[string][]Trip {
	out := make(map[string][]Trip)
	for _, t := range trips {
		d := DatePart(t.Date)
		out[d] = append(out[d], t)
	}
	return out
}

// DailyRows produces one row per cycle day with the day's trips summed.
// Days without trips show "-" for route and driver.
func DailyRows(trips []Trip, c Cycle) []DayRow {
	byDate := tripsByDate(trips)
	days := c.Days()
	out := make([]DayRow, 0, len(days))
	for _, d := range days {
		row := DayRow{CycleDay: d, Routes: "-", Drivers: "-", Items: []Trip{}}
		items := byDate[d.Date]
		if len(items) > 0 {
			routes := make([]string, 0, len(items))
			drivers := make([]string, 0, len(items))
			for _, t := range items {
				routes = append(routes, t.Route)
				if t.DriverName != "" {
					drivers = append(drivers, t.DriverName)
				}
				row.Price += t.Price
				row.Fuel += t.Fuel
				row.Wage += t.Wage
				row.Basket += t.Basket
				row.BasketShare += t.BasketShare
				row.StaffShare += t.StaffShare
				row.Maintenance += t.Maintenance
				row.Profit += t.Profit
			}
			row.Routes = strings.Join(routes, ", ")
			if len(drivers) > 0 {
				row.Drivers = strings.Join(drivers, ", ")
			}
			row.Count = len(items)
			row.Items = items
		}
		out = append(out, row)
	}
	return out
}

// TripLogDay lists the trips of one day in a trip log.
type TripLogDay struct {
	CycleDay
	Trips []Trip `json:"trips"`
}

// TripLogSegment is one month-half of a trip log with its totals. The
// totals follow the copy: wage and basket share for drivers, price and
// basket for the office.
type TripLogSegment struct {
	Title         string       `json:"title"`
	Days          []TripLogDay `json:"days"`
	TotalDelivery float64      `json:"totalDelivery"`
	TotalBasket   float64      `json:"totalBasket"`
}

// TripLog is the per-day trip history of one driver over a cycle.
type TripLog struct {
	Cycle      Cycle            `json:"cycle"`
	Copy       CopyType         `json:"copy"`
	DriverName string           `json:"driverName,omitempty"`
	Segments   []TripLogSegment `json:"segments"`
}

// BuildTripLog lays the cycle out day by day, split at the month change.
// An empty second half is left out.
func BuildTripLog(trips []Trip, c Cycle, side CopyType, driver string) TripLog {
	side = ParseCopyType(string(side))
	byDate := tripsByDate(trips)
	first, second := SplitDays(c.Days())

	out := TripLog{Cycle: c, Copy: side, DriverName: NormalizeName(driver), Segments: []TripLogSegment{}}
	for _, part := range [][]CycleDay{first, second} {
		if len(part) == 0 {
			continue
		}
		seg := TripLogSegment{
			Title: fmt.Sprintf("%s %d", MonthNames[part[0].Month], part[0].Year),
			Days:  make([]TripLogDay, 0, len(part)),
		}
		for _, d := range part {
			items := byDate[d.Date]
			if items == nil {
				items = []Trip{}
			}
			for _, t := range items {
				delivery, basket := unitValues(t, side)
				seg.TotalDelivery += delivery
				seg.TotalBasket += basket
			}
			seg.Days = append(seg.Days, TripLogDay{CycleDay: d, Trips: items})
		}
		out.Segments = append(out.Segments, seg)
	}
	return out
}
