package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "fleet billing api running"})
}

// DBCheck pings the store and reports which billing tables exist.
func (h *Handlers) DBCheck(c *gin.Context) {
	if h.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database not connected", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database ping failed", err.Error())
		return
	}
	tables := gin.H{}
	for _, t := range []string{"trips", "route_presets", "cn_deductions", "fuel_refills", "user_preferences"} {
		tables[t] = h.Dialect.HasTable(ctx, h.DB, t)
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "database OK",
		"dialect": string(h.Dialect),
		"tables":  tables,
	})
}
