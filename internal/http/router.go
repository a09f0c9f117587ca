package api

import (
	"log"
	stdhttp "net/http"

	intconfig "fleetbilling/internal/config"
	h "fleetbilling/internal/http/handlers"
	"fleetbilling/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
)

func NewRouter(env intconfig.Env, hs *h.Handlers) *gin.Engine {
	h.RegisterValidators()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))
	if app := newRelicApp(env); app != nil {
		r.Use(nrgin.Middleware(app))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	// uploaded bill photos
	r.Static("/files", env.UploadDir)

	api := r.Group("/api")
	{
		api.GET("/health", hs.Health)
		api.GET("/db-check", hs.DBCheck)

		trips := api.Group("/trips")
		trips.GET("", hs.ListTrips)
		trips.POST("", hs.CreateTrip)
		trips.GET("/stream", hs.StreamTrips)
		trips.GET("/ws", hs.TripsSocket)
		trips.PUT("/:id", hs.UpdateTrip)
		trips.DELETE("/:id", hs.DeleteTrip)

		api.GET("/cycles/current", hs.CurrentCycle)
		mountCycle(api.Group("/cycles/:year/:month"), hs)

		api.GET("/stats/yearly/:year", hs.YearlyStats)

		cn := api.Group("/cn-deductions")
		cn.GET("", hs.ListCN)
		cn.PUT("/:driver", hs.SetCN)

		presets := api.Group("/presets")
		presets.GET("", hs.ListPresets)
		presets.PUT("", hs.SavePreset)
		presets.DELETE("", hs.DeletePreset)
		presets.GET("/form-defaults", hs.FormDefaults)

		prefs := api.Group("/preferences")
		prefs.GET("/:profile", hs.GetPreferences)
		prefs.PUT("/:profile", hs.SavePreferences)

		fuel := api.Group("/fuel")
		fuel.GET("/refills", hs.ListRefills)
		fuel.POST("/refills", hs.AddRefill)
		fuel.DELETE("/refills/:id", hs.DeleteRefill)
		fuel.GET("/ledger", hs.FuelLedger)
		fuel.GET("/drivers", hs.FuelDrivers)

		api.POST("/photos/:bucket", hs.UploadPhoto)
		api.GET("/basket-tier", hs.BasketTier)
	}

	return r
}

func mountCycle(g *gin.RouterGroup, hs *h.Handlers) {
	g.GET("", hs.CycleView)
	g.GET("/days", hs.CycleDays)
	g.GET("/summary", hs.CycleSummary)
	g.GET("/summary.pdf", hs.CycleSummaryPDF)
	g.GET("/trip-log", hs.CycleTripLog)
	g.GET("/trip-log.pdf", hs.CycleTripLogPDF)
	g.GET("/slips/:driver", hs.SalarySlip)
	g.GET("/slips/:driver/pdf", hs.SalarySlipPDF)
	g.GET("/export.csv", hs.ExportCSV)
	g.GET("/export.xlsx", hs.ExportXLSX)
}

// newRelicApp starts the APM agent when a license key is configured.
func newRelicApp(env intconfig.Env) *newrelic.Application {
	if env.NewRelicKey == "" {
		return nil
	}
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(env.NewRelicApp),
		newrelic.ConfigLicense(env.NewRelicKey),
		newrelic.ConfigAppLogForwardingEnabled(true),
	)
	if err != nil {
		log.Printf("warning: new relic disabled: %v", err)
		return nil
	}
	return app
}
