package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"casita/internal/infra/config"
	"casita/internal/infra/obs"
)

type PricingHTTP interface {
	Quote(c *gin.Context)
	Calendar(c *gin.Context)
	MonthlyCalendar(c *gin.Context)
	YearlyCalendar(c *gin.Context)
}

type PropertyHTTP interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	CreateUnit(c *gin.Context)
	UpdatePricing(c *gin.Context)
	Cascade(c *gin.Context)
	SmartPricingSync(c *gin.Context)
	SmartPricingHistory(c *gin.Context)
	AddSeasonalRule(c *gin.Context)
	SetDayOfWeekRule(c *gin.Context)
	AddLastMinuteRule(c *gin.Context)
	AddOrphanGapRule(c *gin.Context)
}

type ReservationHTTP interface {
	Create(c *gin.Context)
	List(c *gin.Context)
}

type MetricsHTTP interface {
	Daily(c *gin.Context)
	Forecast(c *gin.Context)
	YearlySummary(c *gin.Context)
}

type Handlers struct {
	Pricing     PricingHTTP
	Property    PropertyHTTP
	Reservation ReservationHTTP
	Metrics     MetricsHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Property != nil {
		api.POST("/properties", h.Property.Create)
		api.GET("/properties", h.Property.List)
		api.GET("/properties/:id", h.Property.Get)
		api.POST("/properties/:id/units", h.Property.CreateUnit)
		api.PUT("/properties/:id/pricing", h.Property.UpdatePricing)
		api.POST("/properties/:id/cascade", h.Property.Cascade)
		api.POST("/properties/:id/smart-pricing", h.Property.SmartPricingSync)
		api.GET("/properties/:id/smart-pricing", h.Property.SmartPricingHistory)
		api.POST("/properties/:id/rules/seasonal", h.Property.AddSeasonalRule)
		api.PUT("/properties/:id/rules/day-of-week", h.Property.SetDayOfWeekRule)
		api.POST("/properties/:id/rules/last-minute", h.Property.AddLastMinuteRule)
		api.POST("/properties/:id/rules/orphan-gap", h.Property.AddOrphanGapRule)
	}
	if h.Pricing != nil {
		api.GET("/units/:id/quote", h.Pricing.Quote)
		api.GET("/units/:id/calendar", h.Pricing.Calendar)
		api.GET("/units/:id/calendar/month", h.Pricing.MonthlyCalendar)
		api.GET("/units/:id/calendar/year", h.Pricing.YearlyCalendar)
	}
	if h.Reservation != nil {
		api.POST("/reservations", h.Reservation.Create)
		api.GET("/reservations", h.Reservation.List)
	}
	if h.Metrics != nil {
		api.GET("/properties/:id/metrics/daily", h.Metrics.Daily)
		api.GET("/properties/:id/metrics/forecast", h.Metrics.Forecast)
		api.GET("/properties/:id/metrics/summary", h.Metrics.YearlySummary)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug", "dev", "local":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
