package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"
	"fleetbilling/internal/utils"

	"github.com/xuri/excelize/v2"
)

var csvHeaders = []string{
	"วันที่", "สายงาน", "ค่าเที่ยว (+)", "ค่าน้ำมัน (-)", "ค่าซ่อมบำรุง (-)",
	"ค่าจ้างคนขับ (-)", "รายได้ตะกร้า (+)", "ยอดเบิกทั้งหมด (ลูกน้อง)", "กำไรสุทธิ",
}

const utf8BOM = "\ufeff"

const (
	sheetTrips   = "trips"
	sheetDrivers = "driver pay"
	sheetBilling = "billing rows"
)

type ExportService struct {
	RequestID string
	Now       utils.Clock
}

func (s ExportService) stamp() string {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return utils.FormatDate(now)
}

// CSV renders the trip table with a BOM so spreadsheet apps detect UTF-8.
// Profit is rounded to a whole amount.
func (s ExportService) CSV(trips []billing.Trip) ([]byte, string, error) {
	if len(trips) == 0 {
		return nil, "", domain.Invalid("trips", "nothing to export")
	}

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeaders); err != nil {
		return nil, "", err
	}
	for _, t := range trips {
		rec := []string{
			t.Date,
			t.Route,
			num(t.Price),
			num(t.Fuel),
			num(t.Maintenance),
			num(t.Wage),
			num(t.Basket),
			num(t.StaffShare),
			num(utils.RoundWhole(t.Profit)),
		}
		if err := w.Write(rec); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "export", "csv", fmt.Sprintf("rows=%d", len(trips)))
	return buf.Bytes(), fmt.Sprintf("logistics-fleet-%s.csv", s.stamp()), nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// XLSX builds the cycle workbook: the trip table, one pay line per
// driver, and the office billing rows.
func (s ExportService) XLSX(trips []billing.Trip, c billing.Cycle, cn billing.CNMap) ([]byte, string, error) {
	if len(trips) == 0 {
		return nil, "", domain.Invalid("trips", "nothing to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetTrips); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(sheetDrivers); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(sheetBilling); err != nil {
		return nil, "", err
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", err
	}

	rows := [][]any{}
	for _, t := range trips {
		rows = append(rows, []any{
			t.Date, t.DriverName, t.Route, t.Price, t.Fuel, t.Maintenance, t.Wage,
			t.Basket, t.BasketCount, t.BasketShare, t.StaffShare, utils.RoundWhole(t.Profit),
		})
	}
	if err := writeSheet(f, sheetTrips, headStyle, []any{
		"วันที่", "คนขับ", "สายงาน", "ค่าเที่ยว", "ค่าน้ำมัน", "ค่าซ่อมบำรุง", "ค่าจ้าง",
		"ค่าตะกร้า", "จำนวนตะกร้า", "ส่วนแบ่งตะกร้า", "เงินเบิก", "กำไรสุทธิ",
	}, rows); err != nil {
		return nil, "", err
	}

	rows = rows[:0]
	for _, p := range billing.DriverPays(trips, cn) {
		rows = append(rows, []any{
			p.DriverName, p.Trips, p.Wage, p.BasketShare, p.Housing, p.Advance, p.CN, p.Income, p.Deductions, p.NetPay,
		})
	}
	if err := writeSheet(f, sheetDrivers, headStyle, []any{
		"คนขับ", "เที่ยว", "ค่าจ้าง", "ส่วนแบ่งตะกร้า", "ค่าที่พัก", "เงินเบิก", "CN", "รายได้", "รายการหัก", "ยอดสุทธิ",
	}, rows); err != nil {
		return nil, "", err
	}

	rows = rows[:0]
	for _, r := range billing.GroupByRouteAndPrice(trips, billing.CopyOffice) {
		rows = append(rows, []any{
			fmt.Sprintf("%d-%02d", r.Year, r.Month), r.Route, r.Type, r.PricePerUnit, r.Count, r.TotalAmount,
		})
	}
	if err := writeSheet(f, sheetBilling, headStyle, []any{
		"เดือน", "สายงาน", "รายการ", "ราคา/หน่วย", "จำนวน", "รวม",
	}, rows); err != nil {
		return nil, "", err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "export", "xlsx", fmt.Sprintf("cycle=%s rows=%d", c.Key(), len(trips)))
	return buf.Bytes(), fmt.Sprintf("logistics-fleet-%s.xlsx", c.Key()), nil
}

func writeSheet(f *excelize.File, sheet string, style int, head []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(head), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "L", 14)
}
