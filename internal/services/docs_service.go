package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable PDFs: salary slips, billing summaries
// and driver trip logs.
type DocsService struct {
	CompanyName    string
	CompanyAddress string
	// FontPath points at a UTF-8 TTF with Thai glyphs. Without it the
	// core Helvetica font is used.
	FontPath  string
	RequestID string
}

const docFont = "doc"

func (s DocsService) newPDF(title, orientation string) (*gofpdf.Fpdf, string) {
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetTitle(title, true)
	family := "Helvetica"
	if s.FontPath != "" {
		if _, err := os.Stat(s.FontPath); err == nil {
			pdf.AddUTF8Font(docFont, "", s.FontPath)
			pdf.AddUTF8Font(docFont, "B", s.FontPath)
			family = docFont
		} else {
			utils.LogEvent(s.RequestID, "docs", "font_missing", s.FontPath)
		}
	}
	pdf.AddPage()
	return pdf, family
}

func (s DocsService) header(pdf *gofpdf.Fpdf, family, title string) {
	if s.CompanyName != "" {
		pdf.SetFont(family, "B", 16)
		pdf.CellFormat(0, 8, s.CompanyName, "", 1, "C", false, 0, "")
	}
	if s.CompanyAddress != "" {
		pdf.SetFont(family, "", 10)
		pdf.CellFormat(0, 6, s.CompanyAddress, "", 1, "C", false, 0, "")
	}
	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)
}

func output(pdf *gofpdf.Fpdf, filename string) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), utils.SafeFilename(filename), nil
}

func baht(v float64) string {
	return utils.FormatBaht(v)
}

func (s DocsService) SalarySlipPDF(slip billing.SalarySlip) ([]byte, string, error) {
	pdf, family := s.newPDF("Salary slip", "P")
	s.header(pdf, family, "สลิปเงินเดือน")

	line := func(label, value string) {
		pdf.CellFormat(120, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, value, "", 1, "R", false, 0, "")
	}

	pdf.SetFont(family, "", 11)
	line("ชื่อคนขับ", slip.DriverName)
	line("รอบสรุปยอด", slip.Period)
	pdf.Ln(3)

	pdf.SetFont(family, "B", 12)
	pdf.CellFormat(0, 8, "รายรับ (+)", "B", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 11)
	line(fmt.Sprintf("ค่าแรง (%d เที่ยว)", slip.Trips), baht(slip.Wage))
	line("ค่าตะกร้า", baht(slip.BasketShare))
	line("ค่าที่พัก", baht(slip.Housing))
	pdf.SetFont(family, "B", 11)
	line("รวมรายได้ทั้งหมด", baht(slip.Income))
	pdf.Ln(3)

	pdf.SetFont(family, "B", 12)
	pdf.CellFormat(0, 8, "รายการหัก (-)", "B", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 11)
	line("ยอดเงินเบิกสะสม", "-"+baht(slip.Advance))
	if slip.CN > 0 {
		line("หักค่าสินค้า (CN)", "-"+baht(slip.CN))
	}
	pdf.SetFont(family, "B", 11)
	line("รวมรายการหัก", "-"+baht(slip.Deductions))
	pdf.Ln(4)

	pdf.SetFont(family, "B", 14)
	line("ยอดจ่ายสุทธิคงเหลือ", baht(slip.NetPay))
	pdf.Ln(20)

	pdf.SetFont(family, "", 10)
	pdf.CellFormat(90, 6, "ผู้รับเงิน", "T", 0, "C", false, 0, "")
	pdf.CellFormat(10, 6, "", "", 0, "C", false, 0, "")
	pdf.CellFormat(90, 6, "บริษัท / ผู้อนุมัติจ่าย", "T", 1, "C", false, 0, "")

	utils.LogEvent(s.RequestID, "docs", "salary_slip", fmt.Sprintf("cycle=%s", slip.Cycle.Key()))
	return output(pdf, fmt.Sprintf("slip-%s-%s.pdf", slip.Cycle.Key(), slip.DriverName))
}

func (s DocsService) SummaryPDF(sum billing.BillingSummary) ([]byte, string, error) {
	pdf, family := s.newPDF("Billing summary", "P")
	title := "ใบสรุปยอดวางบิล"
	if sum.Copy == billing.CopyDriver {
		title = "ใบสรุปค่าจ้างคนขับ"
	}
	s.header(pdf, family, title)

	pdf.SetFont(family, "", 11)
	pdf.CellFormat(0, 7, "รอบ "+sum.RangeLabel, "", 1, "L", false, 0, "")
	if sum.DriverName != "" {
		pdf.CellFormat(0, 7, "คนขับ "+sum.DriverName, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	widths := []float64{12, 58, 40, 25, 20, 35}
	heads := []string{"#", "รายการ", "เส้นทาง", "ราคา/หน่วย", "จำนวน", "รวม"}
	pdf.SetFont(family, "B", 10)
	for i, h := range heads {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 10)
	n := 0
	for _, rows := range [][]billing.GroupedRow{sum.DeliveryRows, sum.BasketRows} {
		for _, r := range rows {
			n++
			label := fmt.Sprintf("%s (%s %d)", r.Type, billing.MonthShortNames[r.Month-1], r.Year)
			pdf.CellFormat(widths[0], 7, fmt.Sprint(n), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[1], 7, label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[2], 7, r.Route, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[3], 7, baht(r.PricePerUnit), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[4], 7, fmt.Sprint(r.Count), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[5], 7, baht(r.TotalAmount), "1", 1, "R", false, 0, "")
		}
	}

	total := func(label, value string) {
		pdf.CellFormat(155, 7, label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, value, "1", 1, "R", false, 0, "")
	}
	pdf.SetFont(family, "B", 10)
	total(fmt.Sprintf("รวม %d รายการ", sum.TotalCount), baht(sum.TotalAllRevenue))
	if sum.Copy == billing.CopyDriver {
		pdf.SetFont(family, "", 10)
		total("ค่าที่พัก", baht(sum.Housing))
		total("หักเงินเบิก", "-"+baht(sum.TotalAdvance))
		if sum.CN > 0 {
			total("หักค่าสินค้า (CN)", "-"+baht(sum.CN))
		}
		pdf.SetFont(family, "B", 10)
	}
	total("ยอดสุทธิ", baht(sum.GrandTotal))

	name := fmt.Sprintf("summary-%s-%s.pdf", sum.Cycle.Key(), sum.Copy)
	if sum.DriverName != "" {
		name = fmt.Sprintf("summary-%s-%s-%s.pdf", sum.Cycle.Key(), sum.Copy, sum.DriverName)
	}
	utils.LogEvent(s.RequestID, "docs", "billing_summary", fmt.Sprintf("cycle=%s copy=%s", sum.Cycle.Key(), sum.Copy))
	return output(pdf, name)
}

func (s DocsService) TripLogPDF(log billing.TripLog) ([]byte, string, error) {
	pdf, family := s.newPDF("Trip log", "P")
	title := "บันทึกการวิ่งงาน"
	if log.DriverName != "" {
		title += " " + log.DriverName
	}
	s.header(pdf, family, title)

	deliveryHead, basketHead := "ค่าเที่ยว", "ค่าตะกร้า"
	if log.Copy == billing.CopyDriver {
		deliveryHead, basketHead = "ค่าจ้าง", "ส่วนแบ่งตะกร้า"
	}

	for _, seg := range log.Segments {
		pdf.SetFont(family, "B", 12)
		pdf.CellFormat(0, 8, seg.Title, "", 1, "L", false, 0, "")
		pdf.SetFont(family, "B", 9)
		widths := []float64{18, 12, 80, 40, 40}
		for i, h := range []string{"วันที่", "วัน", "เส้นทาง", deliveryHead, basketHead} {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont(family, "", 9)
		for _, d := range seg.Days {
			routes := make([]string, 0, len(d.Trips))
			delivery, basket := 0.0, 0.0
			for _, t := range d.Trips {
				routes = append(routes, t.Route)
				if log.Copy == billing.CopyDriver {
					delivery += t.Wage
					basket += t.BasketShare
				} else {
					delivery += t.Price
					basket += t.Basket
				}
			}
			pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d %s", d.Day, d.MonthLabel), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[1], 6, d.Weekday, "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[2], 6, strings.Join(routes, ", "), "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[3], 6, blankZero(delivery), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[4], 6, blankZero(basket), "1", 1, "R", false, 0, "")
		}
		pdf.SetFont(family, "B", 9)
		pdf.CellFormat(110, 7, "รวม", "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, baht(seg.TotalDelivery), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, baht(seg.TotalBasket), "1", 1, "R", false, 0, "")
		pdf.Ln(4)
	}

	utils.LogEvent(s.RequestID, "docs", "trip_log", fmt.Sprintf("cycle=%s segments=%d", log.Cycle.Key(), len(log.Segments)))
	return output(pdf, fmt.Sprintf("trip-log-%s-%s.pdf", log.Cycle.Key(), log.DriverName))
}

func blankZero(v float64) string {
	if v == 0 {
		return ""
	}
	return baht(v)
}
