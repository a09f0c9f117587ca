package services

import (
	"bytes"
	"testing"

	"fleetbilling/internal/billing"
)

func sampleTrips() []billing.Trip {
	mk := func(id int64, date, driver, route string, price, wage, basket, share, advance float64) billing.Trip {
		t := billing.Trip{ID: id, Date: date, DriverName: driver, Route: route, Price: price, Wage: wage,
			Basket: basket, BasketShare: share, StaffShare: advance}
		t.Recompute()
		return t
	}
	return []billing.Trip{
		mk(1, "2023-12-22", "สมชาย", "ลำปาง", 1000, 400, 300, 200, 100),
		mk(2, "2024-01-03", "สมชาย", "ลำปาง", 1000, 400, 0, 0, 0),
		mk(3, "2024-01-04", "B", "เชียงใหม่", 0, 0, 0, 0, 0),
	}
}

func TestDocsServiceGenerate(t *testing.T) {
	c := billing.Cycle{Month: 0, Year: 2024}
	trips := sampleTrips()
	svc := DocsService{CompanyName: "Fleet Co", CompanyAddress: "Lampang", FontPath: "/nonexistent/font.ttf"}

	slip := billing.BuildSalarySlip("สมชาย", trips[:2], c, 50)
	pdf, name, err := svc.SalarySlipPDF(slip)
	if err != nil {
		t.Fatalf("SalarySlipPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) || name == "" {
		t.Fatalf("SalarySlipPDF returned invalid data (name=%q)", name)
	}

	for _, side := range []billing.CopyType{billing.CopyOffice, billing.CopyDriver} {
		sum := billing.Summarize(trips, c, side, "", 0)
		pdf, name, err := svc.SummaryPDF(sum)
		if err != nil {
			t.Fatalf("SummaryPDF(%s) returned error: %v", side, err)
		}
		if !bytes.HasPrefix(pdf, []byte("%PDF")) || name == "" {
			t.Fatalf("SummaryPDF(%s) returned invalid data", side)
		}
	}

	log := billing.BuildTripLog(trips, c, billing.CopyDriver, "สมชาย")
	pdf, name, err = svc.TripLogPDF(log)
	if err != nil {
		t.Fatalf("TripLogPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) || name != "trip-log-2024-01-สมชาย.pdf" {
		t.Fatalf("TripLogPDF returned invalid data (name=%q)", name)
	}
}
