package billing

import (
	"fmt"
	"time"
)

// CycleStartDay is the day of month on which a billing cycle opens. The
// cycle closes on the day before, one month later.
const CycleStartDay = 20

var (
	// WeekdayLabels are indexed by time.Weekday.
	WeekdayLabels = [7]string{"อา", "จ", "อ", "พ", "พฤ", "ศ", "ส"}
	// MonthNames and MonthShortNames are indexed by 0-based month.
	MonthNames = [12]string{
		"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
		"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
	}
	MonthShortNames = [12]string{
		"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
		"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
	}
)

// Cycle identifies the window [20th of month-1, 19th of month]. Month is
// 0-based and names the month the cycle ends in.
type Cycle struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewCycle builds a cycle, rolling months outside 0..11 into the year.
func NewCycle(month, year int) Cycle {
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	return Cycle{Month: month, Year: year}
}

// CycleOf returns the cycle a calendar day belongs to: from the 20th on,
// a day counts toward the next month's cycle.
func CycleOf(t time.Time) Cycle {
	c := NewCycle(int(t.Month())-1, t.Year())
	if t.Day() >= CycleStartDay {
		return c.Next()
	}
	return c
}

// CurrentCycle is the cycle shown by default at session start.
func CurrentCycle(now time.Time) Cycle {
	return CycleOf(now)
}

// CycleOfDate parses a YYYY-MM-DD (or ISO date-time) string and returns
// its cycle.
func CycleOfDate(date string) (Cycle, bool) {
	t, err := time.Parse(DateLayout, DatePart(date))
	if err != nil {
		return Cycle{}, false
	}
	return CycleOf(t), true
}

func (c Cycle) Next() Cycle { return NewCycle(c.Month+1, c.Year) }
func (c Cycle) Prev() Cycle { return NewCycle(c.Month-1, c.Year) }

// Start is the first day of the cycle, at UTC midnight.
func (c Cycle) Start() time.Time {
	return time.Date(c.Year, time.Month(c.Month), CycleStartDay, 0, 0, 0, 0, time.UTC)
}

// End is the last day of the cycle, at UTC midnight.
func (c Cycle) End() time.Time {
	return time.Date(c.Year, time.Month(c.Month+1), CycleStartDay-1, 0, 0, 0, 0, time.UTC)
}

func (c Cycle) StartDate() string { return c.Start().Format(DateLayout) }
func (c Cycle) EndDate() string   { return c.End().Format(DateLayout) }

// Contains compares ISO dates as strings; both bounds are inclusive.
func (c Cycle) Contains(date string) bool {
	d := DatePart(date)
	return d != "" && d >= c.StartDate() && d <= c.EndDate()
}

// Key is the 1-based "YYYY-MM" form used in file names.
func (c Cycle) Key() string {
	return fmt.Sprintf("%04d-%02d", c.Year, c.Month+1)
}

// Label is "<month name> <year>".
func (c Cycle) Label() string {
	return fmt.Sprintf("%s %d", MonthNames[c.Month], c.Year)
}

// RangeLabel is "20 <previous month> - 19 <month> <year>".
func (c Cycle) RangeLabel() string {
	prev := c.Prev()
	return fmt.Sprintf("%d %s - %d %s %d", CycleStartDay, MonthNames[prev.Month], CycleStartDay-1, MonthNames[c.Month], c.Year)
}

// BuddhistYear converts a Gregorian year to the Thai calendar.
func BuddhistYear(year int) int { return year + 543 }

// CycleDay is one calendar day inside a cycle.
type CycleDay struct {
	Date       string `json:"date"`
	Day        int    `json:"day"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Weekday    string `json:"weekday"`
	MonthLabel string `json:"monthLabel"`
}

// Days enumerates every date of the cycle, start to end inclusive.
func (c Cycle) Days() []CycleDay {
	start, end := c.Start(), c.End()
	days := make([]CycleDay, 0, 32)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, CycleDay{
			Date:       d.Format(DateLayout),
			Day:        d.Day(),
			Month:      int(d.Month()) - 1,
			Year:       d.Year(),
			Weekday:    WeekdayLabels[d.Weekday()],
			MonthLabel: MonthShortNames[d.Month()-1],
		})
	}
	return days
}

// SplitDays cuts a day sequence at its first month change. Without a
// change the whole sequence is the first segment and the second is empty.
func SplitDays(days []CycleDay) (first, second []CycleDay) {
	for i := 1; i < len(days); i++ {
		if days[i].Month != days[i-1].Month {
			return days[:i], days[i:]
		}
	}
	return days, nil
}
