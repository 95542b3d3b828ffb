package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	analyticsapp "casita/internal/app/analytics"
	"casita/internal/domain/catalog"
)

// MetricsHandler exposes occupancy and revenue analytics.
type MetricsHandler struct {
	Analytics *analyticsapp.Service
}

func (h MetricsHandler) Daily(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	date, ok := parseDateQuery(c.Query("date"))
	if !ok {
		date = time.Now().UTC()
	}
	metrics, err := h.Analytics.Daily(c.Request.Context(), catalog.PropertyID(id), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h MetricsHandler) Forecast(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	days := parseIntQuery(c.Query("days"), 0)
	forecast, err := h.Analytics.Forecast(c.Request.Context(), catalog.PropertyID(id), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_id": id, "days": len(forecast), "forecast": forecast})
}

func (h MetricsHandler) YearlySummary(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	year := parseIntQuery(c.Query("year"), time.Now().UTC().Year())
	summary, err := h.Analytics.YearlySummary(c.Request.Context(), catalog.PropertyID(id), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

var _ MetricsHTTP = MetricsHandler{}
