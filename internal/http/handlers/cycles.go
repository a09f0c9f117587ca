package handlers

import (
	"net/http"
	"strconv"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	contentPDF  = "application/pdf"
	contentCSV  = "text/csv; charset=utf-8"
	contentXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func cycleInfo(c billing.Cycle) gin.H {
	return gin.H{
		"year":       c.Year,
		"month":      c.Month + 1,
		"key":        c.Key(),
		"label":      c.Label(),
		"rangeLabel": c.RangeLabel(),
		"startDate":  c.StartDate(),
		"endDate":    c.EndDate(),
	}
}

// GET /cycles/current
func (h *Handlers) CurrentCycle(c *gin.Context) {
	cur := billing.CurrentCycle(h.now())
	c.JSON(http.StatusOK, gin.H{
		"current": cycleInfo(cur),
		"prev":    cycleInfo(cur.Prev()),
		"next":    cycleInfo(cur.Next()),
	})
}

// GET /cycles/:year/:month
func (h *Handlers) CycleView(c *gin.Context) {
	cyc, ok := cycleParam(c)
	if !ok {
		return
	}
	view, err := h.cycleService(c).View(c.Request.Context(), cyc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /cycles/:year/:month/days
func (h *Handlers) CycleDays(c *gin.Context) {
	cyc, ok := cycleParam(c)
	if !ok {
		return
	}
	rows, err := h.cycleService(c).Days(c.Request.Context(), cyc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycle": cycleInfo(cyc), "days": rows})
}

func (h *Handlers) summary(c *gin.Context) (billing.BillingSummary, bool) {
	cyc, ok := cycleParam(c)
	if !ok {
		return billing.BillingSummary{}, false
	}
	side := billing.ParseCopyType(c.Query("copy"))
	sum, err := h.cycleService(c).Summary(c.Request.Context(), cyc, side, c.Query("driver"))
	if err != nil {
		RespondDomainError(c, err)
		return billing.BillingSummary{}, false
	}
	return sum, true
}

// GET /cycles/:year/:month/summary?copy=office|driver&driver=
func (h *Handlers) CycleSummary(c *gin.Context) {
	if sum, ok := h.summary(c); ok {
		c.JSON(http.StatusOK, sum)
	}
}

// GET /cycles/:year/:month/summary.pdf
func (h *Handlers) CycleSummaryPDF(c *gin.Context) {
	sum, ok := h.summary(c)
	if !ok {
		return
	}
	data, name, err := h.docsService(c).SummaryPDF(sum)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	attachment(c, contentPDF, name, data)
}

func (h *Handlers) tripLog(c *gin.Context) (billing.TripLog, bool) {
	cyc, ok := cycleParam(c)
	if !ok {
		return billing.TripLog{}, false
	}
	side := billing.ParseCopyType(c.Query("copy"))
	tl, err := h.cycleService(c).TripLog(c.Request.Context(), cyc, side, c.Query("driver"))
	if err != nil {
		RespondDomainError(c, err)
		return billing.TripLog{}, false
	}
	return tl, true
}

// GET /cycles/:year/:month/trip-log?copy=&driver=
func (h *Handlers) CycleTripLog(c *gin.Context) {
	if tl, ok := h.tripLog(c); ok {
		c.JSON(http.StatusOK, tl)
	}
}

// GET /cycles/:year/:month/trip-log.pdf
func (h *Handlers) CycleTripLogPDF(c *gin.Context) {
	tl, ok := h.tripLog(c)
	if !ok {
		return
	}
	data, name, err := h.docsService(c).TripLogPDF(tl)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	attachment(c, contentPDF, name, data)
}

func (h *Handlers) slip(c *gin.Context) (billing.SalarySlip, bool) {
	cyc, ok := cycleParam(c)
	if !ok {
		return billing.SalarySlip{}, false
	}
	slip, err := h.cycleService(c).Slip(c.Request.Context(), cyc, c.Param("driver"))
	if err != nil {
		RespondDomainError(c, err)
		return billing.SalarySlip{}, false
	}
	return slip, true
}

// GET /cycles/:year/:month/slips/:driver
func (h *Handlers) SalarySlip(c *gin.Context) {
	if slip, ok := h.slip(c); ok {
		c.JSON(http.StatusOK, slip)
	}
}

// GET /cycles/:year/:month/slips/:driver/pdf
func (h *Handlers) SalarySlipPDF(c *gin.Context) {
	slip, ok := h.slip(c)
	if !ok {
		return
	}
	data, name, err := h.docsService(c).SalarySlipPDF(slip)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	attachment(c, contentPDF, name, data)
}

// GET /cycles/:year/:month/export.csv?driver=
func (h *Handlers) ExportCSV(c *gin.Context) {
	cyc, ok := cycleParam(c)
	if !ok {
		return
	}
	trips, err := h.cycleService(c).Trips(c.Request.Context(), cyc, c.Query("driver"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	data, name, err := h.exportService(c).CSV(trips)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	attachment(c, contentCSV, name, data)
}

// GET /cycles/:year/:month/export.xlsx
func (h *Handlers) ExportXLSX(c *gin.Context) {
	cyc, ok := cycleParam(c)
	if !ok {
		return
	}
	svc := h.cycleService(c)
	trips, err := svc.Trips(c.Request.Context(), cyc, "")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cn, err := svc.CNDeductions(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	data, name, err := h.exportService(c).XLSX(trips, cyc, cn)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	attachment(c, contentXLSX, name, data)
}

// GET /stats/yearly/:year
func (h *Handlers) YearlyStats(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		RespondDomainError(c, domain.Invalid("year", "must be a number"))
		return
	}
	stats, err := h.cycleService(c).Yearly(c.Request.Context(), year)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "stats": stats})
}
