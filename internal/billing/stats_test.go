package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTrip(id int64, date, driver, route string, price, wage, basket, basketShare, staffShare float64) Trip {
	t := Trip{
		ID:          id,
		Date:        date,
		DriverName:  driver,
		Route:       route,
		Price:       price,
		Wage:        wage,
		Basket:      basket,
		BasketShare: basketShare,
		StaffShare:  staffShare,
	}
	t.Recompute()
	return t
}

func TestBasketTierBoundaries(t *testing.T) {
	cases := []struct {
		count          int
		revenue, share float64
	}{
		{0, 0, 0},
		{85, 0, 0},
		{86, 300, 200},
		{90, 300, 200},
		{91, 600, 400},
		{100, 600, 400},
		{101, 1000, 700},
		{1000, 1000, 700},
	}
	for _, tc := range cases {
		rev, share := BasketTier(tc.count)
		assert.Equal(t, tc.revenue, rev, "count=%d", tc.count)
		assert.Equal(t, tc.share, share, "count=%d", tc.count)
	}
}

func TestApplyBasketTierKeepsManualValues(t *testing.T) {
	auto := Trip{BasketCount: 95, Price: 1000}
	assert.True(t, ApplyBasketTier(&auto))
	assert.Equal(t, 600.0, auto.Basket)
	assert.Equal(t, 400.0, auto.BasketShare)
	assert.Equal(t, 1000.0+600-400, auto.Profit)

	manual := Trip{BasketCount: 95, Basket: 123}
	assert.False(t, ApplyBasketTier(&manual))
	assert.Equal(t, 123.0, manual.Basket)
}

func TestNetPayScenario(t *testing.T) {
	trips := []Trip{
		mkTrip(1, "2024-01-05", "สมชาย", "A", 0, 500, 0, 100, 200),
		mkTrip(2, "2024-01-06", "สมชาย", "A", 0, 500, 0, 0, 0),
	}
	assert.Equal(t, 1850.0, ComputeNetPay(trips, 50))

	pay := PayFor("สมชาย", trips, 50)
	assert.Equal(t, 2100.0, pay.Income)
	assert.Equal(t, 250.0, pay.Deductions)
	assert.Equal(t, HousingAllowance, pay.Housing)
}

func TestHousingAllowanceGating(t *testing.T) {
	assert.Equal(t, 0.0, PayFor("nobody", nil, 0).Housing)
	assert.Equal(t, -300.0, ComputeNetPay(nil, 300))

	trips := []Trip{mkTrip(1, "2024-01-05", "A", "R", 0, 100, 0, 0, 0)}
	pays := DriverPays(trips, CNMap{"B": 500})
	require.Len(t, pays, 1)
	assert.Equal(t, "A", pays[0].DriverName)
}

func TestDriverGroupingUsesNormalizedNames(t *testing.T) {
	trips := []Trip{
		mkTrip(1, "2024-01-05", "  สมชาย   ใจดี ", "R", 0, 100, 0, 0, 0),
		mkTrip(2, "2024-01-06", "สมชาย ใจดี", "R", 0, 200, 0, 0, 0),
	}
	cn := NewCNMap(map[string]float64{"สมชาย  ใจดี": 50})
	pays := DriverPays(trips, cn)
	require.Len(t, pays, 1)
	assert.Equal(t, "สมชาย ใจดี", pays[0].DriverName)
	assert.Equal(t, 2, pays[0].Trips)
	assert.Equal(t, 300.0+1000-50, pays[0].NetPay)
}

func TestAggregateFleetStats(t *testing.T) {
	trips := []Trip{
		mkTrip(1, "2024-01-05", "A", "R1", 1000, 400, 300, 200, 100),
		mkTrip(2, "2024-01-06", "A", "R1", 1000, 400, 0, 0, 0),
		mkTrip(3, "2024-01-06", "B", "R2", 800, 300, 600, 400, 50),
	}
	trips[0].Fuel, trips[0].Maintenance = 150, 20
	trips[0].Recompute()

	s := Aggregate(trips, CNMap{"B": 25})

	assert.Equal(t, 3, s.TotalTrips)
	assert.Equal(t, 2800.0, s.TotalPrice)
	assert.Equal(t, 1100.0, s.TotalWage)
	assert.Equal(t, 900.0, s.TotalBasket)
	assert.Equal(t, 600.0, s.TotalBasketShare)
	assert.Equal(t, 150.0, s.TotalFuel)
	assert.Equal(t, 20.0, s.TotalMaintenance)
	assert.Equal(t, 150.0, s.TotalStaffAdvance)
	assert.Equal(t, 3700.0, s.TotalRevenue)
	assert.Equal(t, 3700.0-(150+1100+20+600), s.TotalProfit)

	netA := (800.0 + 200 + 1000) - 100
	netB := (300.0 + 400 + 1000) - (50 + 25)
	assert.Equal(t, netA+netB, s.TotalNetPay)
}

func TestAggregateIsDeterministic(t *testing.T) {
	trips := []Trip{
		mkTrip(1, "2024-01-05", "A", "R1", 1000.1, 400.3, 300, 200, 100.7),
		mkTrip(2, "2024-01-06", "B", "R1", 999.9, 0.1, 0, 0, 0.2),
		mkTrip(3, "2024-01-07", "C", "R2", 0.3, 300.7, 600, 400, 50.1),
	}
	first := Aggregate(trips, CNMap{"C": 12.5})
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Aggregate(trips, CNMap{"C": 12.5}))
	}
}

func TestYearlyStatsIgnoresCN(t *testing.T) {
	trips := []Trip{
		mkTrip(1, "2024-01-05", "A", "R1", 1000, 400, 0, 0, 0),
		mkTrip(2, "2023-12-25", "A", "R1", 1000, 400, 0, 0, 0),
	}
	s := YearlyStats(trips, 2024)
	assert.Equal(t, 1, s.TotalTrips)
	assert.Equal(t, 1400.0, s.TotalNetPay)
}

func TestFilterCycleAndDriver(t *testing.T) {
	trips := []Trip{
		mkTrip(1, "2023-12-20", "A", "R", 1, 1, 0, 0, 0),
		mkTrip(2, "2024-01-19", "B", "R", 1, 1, 0, 0, 0),
		mkTrip(3, "2024-01-20", "A", "R", 1, 1, 0, 0, 0),
	}
	in := FilterCycle(trips, Cycle{Month: 0, Year: 2024})
	require.Len(t, in, 2)
	assert.Equal(t, int64(1), in[0].ID)
	assert.Equal(t, int64(2), in[1].ID)

	assert.Len(t, FilterDriver(trips, " A "), 2)
}

func TestSalarySlip(t *testing.T) {
	trips := []Trip{mkTrip(1, "2024-01-05", "A", "R", 0, 700, 0, 200, 300)}
	slip := BuildSalarySlip("A", trips, Cycle{Month: 0, Year: 2024}, 100)
	assert.Equal(t, 1900.0, slip.Income)
	assert.Equal(t, 400.0, slip.Deductions)
	assert.Equal(t, 1500.0, slip.NetPay)
	assert.Equal(t, "20 ธันวาคม - 19 มกราคม 2024", slip.Period)
}
