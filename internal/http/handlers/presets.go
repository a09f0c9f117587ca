package handlers

import (
	"net/http"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"

	"github.com/gin-gonic/gin"
)

type presetRequest struct {
	Route string  `json:"route" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
	Wage  float64 `json:"wage" binding:"gte=0"`
	Year  int     `json:"year" binding:"required,gte=1900,lte=9999"`
	Month int     `json:"month" binding:"required,min=1,max=12"`
}

type cnRequest struct {
	Amount *float64 `json:"amount" binding:"required,gte=0"`
}

// GET /presets?year=&month=
func (h *Handlers) ListPresets(c *gin.Context) {
	cyc, ok := h.cycleQuery(c)
	if !ok {
		return
	}
	presets, err := h.presetService(c).Resolve(c.Request.Context(), cyc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycle": cycleInfo(cyc), "presets": presets})
}

// PUT /presets
func (h *Handlers) SavePreset(c *gin.Context) {
	var req presetRequest
	if !bindJSON(c, &req) {
		return
	}
	cyc := billing.Cycle{Month: req.Month - 1, Year: req.Year}
	key, err := h.presetService(c).Save(c.Request.Context(), req.Route, req.Price, req.Wage, cyc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "price": req.Price, "wage": req.Wage})
}

// DELETE /presets?route=&year=&month=
func (h *Handlers) DeletePreset(c *gin.Context) {
	cyc, ok := cycleFrom(c, c.Query("year"), c.Query("month"))
	if !ok {
		return
	}
	route := c.Query("route")
	if err := h.presetService(c).Delete(c.Request.Context(), route, cyc); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": billing.PresetKey(route, cyc)})
}

// GET /presets/form-defaults?route=&profile=&year=&month=
func (h *Handlers) FormDefaults(c *gin.Context) {
	cyc, ok := h.cycleQuery(c)
	if !ok {
		return
	}
	defaults, err := h.presetService(c).FormDefaults(c.Request.Context(), c.Query("profile"), c.Query("route"), cyc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, defaults)
}

// GET /preferences/:profile
func (h *Handlers) GetPreferences(c *gin.Context) {
	prefs, err := h.prefsService(c).Get(c.Request.Context(), c.Param("profile"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// PUT /preferences/:profile
func (h *Handlers) SavePreferences(c *gin.Context) {
	var prefs billing.UserPreferences
	if !bindJSON(c, &prefs) {
		return
	}
	if err := h.prefsService(c).Save(c.Request.Context(), c.Param("profile"), prefs); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// GET /cn-deductions
func (h *Handlers) ListCN(c *gin.Context) {
	cn, err := h.cycleService(c).CNDeductions(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cn)
}

// PUT /cn-deductions/:driver
func (h *Handlers) SetCN(c *gin.Context) {
	driver := billing.NormalizeName(c.Param("driver"))
	if driver == "" {
		RespondDomainError(c, domain.Invalid("driver", "required"))
		return
	}
	var req cnRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cycleService(c).SetCN(c.Request.Context(), driver, *req.Amount); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver, "amount": *req.Amount})
}
