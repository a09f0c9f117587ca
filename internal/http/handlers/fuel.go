package handlers

import (
	"net/http"

	"fleetbilling/internal/billing"

	"github.com/gin-gonic/gin"
)

type refillRequest struct {
	Date   string  `json:"date" binding:"required,ymd"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Notes  string  `json:"notes" binding:"max=500"`
}

// GET /fuel/refills
func (h *Handlers) ListRefills(c *gin.Context) {
	refills, err := h.fuelService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if refills == nil {
		refills = []billing.FuelRefill{}
	}
	c.JSON(http.StatusOK, refills)
}

// POST /fuel/refills
func (h *Handlers) AddRefill(c *gin.Context) {
	var req refillRequest
	if !bindJSON(c, &req) {
		return
	}
	saved, err := h.fuelService(c).Add(c.Request.Context(), billing.FuelRefill{
		Date:   req.Date,
		Amount: req.Amount,
		Notes:  req.Notes,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DELETE /fuel/refills/:id
func (h *Handlers) DeleteRefill(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.fuelService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// GET /fuel/ledger?driver=
func (h *Handlers) FuelLedger(c *gin.Context) {
	ledger, err := h.fuelService(c).Ledger(c.Request.Context(), c.Query("driver"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// GET /fuel/drivers
func (h *Handlers) FuelDrivers(c *gin.Context) {
	drivers, err := h.fuelService(c).Drivers(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if drivers == nil {
		drivers = []string{}
	}
	c.JSON(http.StatusOK, drivers)
}
