package handlers

import (
	"io"
	"net/http"
	"time"

	"fleetbilling/internal/billing"

	"github.com/gin-gonic/gin"
)

const streamKeepAlive = 25 * time.Second

// GET /trips
func (h *Handlers) ListTrips(c *gin.Context) {
	trips, err := h.tripService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// POST /trips accepts any of the field spellings the normalizer knows.
func (h *Handlers) CreateTrip(c *gin.Context) {
	var raw billing.RawRecord
	if !bindJSON(c, &raw) {
		return
	}
	trip, err := h.tripService(c).Create(c.Request.Context(), raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if profile := c.Query("profile"); profile != "" {
		// the trip is stored; a failed preference write only shows in the log
		if err := h.prefsService(c).RememberEntry(c.Request.Context(), profile, trip); err != nil {
			_ = c.Error(err)
		}
	}
	c.JSON(http.StatusCreated, trip)
}

// PUT /trips/:id
func (h *Handlers) UpdateTrip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var raw billing.RawRecord
	if !bindJSON(c, &raw) {
		return
	}
	trip, err := h.tripService(c).Update(c.Request.Context(), id, raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /trips/:id
func (h *Handlers) DeleteTrip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.tripService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// GET /trips/stream sends trip change events as server-sent events until
// the client goes away.
func (h *Handlers) StreamTrips(c *gin.Context) {
	if h.Hub == nil {
		respondError(c, http.StatusServiceUnavailable, "stream_unavailable", "change stream disabled", nil)
		return
	}
	events, cancel := h.Hub.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	c.SSEvent("ready", gin.H{"at": h.now().Format(time.RFC3339)})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", h.now().Unix())
			return true
		}
	})
}
