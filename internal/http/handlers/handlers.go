package handlers

import (
	"database/sql"
	"time"

	intconfig "fleetbilling/internal/config"
	intdb "fleetbilling/internal/db"
	"fleetbilling/internal/http/middleware"
	"fleetbilling/internal/realtime"
	"fleetbilling/internal/services"
	"fleetbilling/internal/storage"
	"fleetbilling/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handlers holds the long-lived dependencies. Services are cheap values
// built per request so each carries the request ID into its logs.
type Handlers struct {
	Trips   services.TripStore
	Presets services.PresetStore
	CN      services.CNStore
	Refills services.RefillStore
	Prefs   services.PrefsStore

	Cache  *services.TripCache
	Hub    *realtime.Hub
	Photos storage.Store

	DB      *sql.DB
	Dialect intdb.Dialect
	Env     intconfig.Env
	Now     utils.Clock
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return utils.SystemClock()
}

func (h *Handlers) tripService(c *gin.Context) services.TripService {
	return services.TripService{
		Repo:      h.Trips,
		Cache:     h.Cache,
		Hub:       h.Hub,
		RequestID: middleware.GetRequestID(c),
		Now:       h.Now,
	}
}

func (h *Handlers) presetService(c *gin.Context) services.PresetService {
	return services.PresetService{Repo: h.Presets, Prefs: h.Prefs, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) prefsService(c *gin.Context) services.PrefsService {
	return services.PrefsService{Repo: h.Prefs, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) cycleService(c *gin.Context) services.CycleService {
	return services.CycleService{
		Cache:     h.Cache,
		Presets:   h.presetService(c),
		CN:        h.CN,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handlers) fuelService(c *gin.Context) services.FuelService {
	return services.FuelService{Repo: h.Refills, Cache: h.Cache, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		CompanyName:    h.Env.CompanyName,
		CompanyAddress: h.Env.CompanyAddress,
		FontPath:       h.Env.PDFFontPath,
		RequestID:      middleware.GetRequestID(c),
	}
}

func (h *Handlers) exportService(c *gin.Context) services.ExportService {
	return services.ExportService{RequestID: middleware.GetRequestID(c), Now: h.Now}
}

func (h *Handlers) photoService(c *gin.Context) services.PhotoService {
	return services.PhotoService{
		Store:     h.Photos,
		Root:      h.Env.UploadDir,
		BaseURL:   h.Env.PublicBaseURL,
		RequestID: middleware.GetRequestID(c),
	}
}
