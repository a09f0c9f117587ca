package handlers

import (
	"net/http"
	"strconv"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"

	"github.com/gin-gonic/gin"
)

// POST /photos/:bucket (multipart field "file")
func (h *Handlers) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		RespondDomainError(c, domain.Invalid("file", "multipart field file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		RespondDomainError(c, domain.Internal("open upload failed", err))
		return
	}
	defer f.Close()

	photo, err := h.photoService(c).Save(c.Request.Context(), c.Param("bucket"), fh.Filename, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// GET /basket-tier?count=
func (h *Handlers) BasketTier(c *gin.Context) {
	count, err := strconv.Atoi(c.Query("count"))
	if err != nil || count < 0 {
		RespondDomainError(c, domain.Invalid("count", "must be a non-negative integer"))
		return
	}
	revenue, share := billing.BasketTier(count)
	c.JSON(http.StatusOK, gin.H{"count": count, "basket": revenue, "basketShare": share})
}
