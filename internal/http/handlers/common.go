package handlers

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"fleetbilling/internal/billing"
	"fleetbilling/internal/domain"
	"fleetbilling/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules to gin's validator:
// ymd accepts a YYYY-MM-DD calendar date.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
			return utils.IsDate(fl.Field().String())
		})
	})
}

// bindJSON ensures body is present and parsable.
func bindJSON[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "bad_request", "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.Invalid("id", "must be a positive integer"))
		return 0, false
	}
	return id, true
}

// cycleFrom reads year and a 1-12 month and returns the billing cycle
// with its 0-based month.
func cycleFrom(c *gin.Context, yearStr, monthStr string) (billing.Cycle, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil || year < 1900 || year > 9999 {
		RespondDomainError(c, domain.Invalid("year", "must be a four digit year"))
		return billing.Cycle{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(monthStr))
	if err != nil || month < 1 || month > 12 {
		RespondDomainError(c, domain.Invalid("month", "must be between 1 and 12"))
		return billing.Cycle{}, false
	}
	return billing.Cycle{Month: month - 1, Year: year}, true
}

func cycleParam(c *gin.Context) (billing.Cycle, bool) {
	return cycleFrom(c, c.Param("year"), c.Param("month"))
}

// cycleQuery falls back to the current cycle when year and month are
// both absent.
func (h *Handlers) cycleQuery(c *gin.Context) (billing.Cycle, bool) {
	y, m := c.Query("year"), c.Query("month")
	if y == "" && m == "" {
		return billing.CurrentCycle(h.now()), true
	}
	return cycleFrom(c, y, m)
}

func attachment(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": utils.SafeFilename(filename)}))
	c.Data(http.StatusOK, contentType, data)
}
