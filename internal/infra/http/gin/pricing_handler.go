package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"casita/internal/domain/catalog"
	"casita/internal/domain/pricing"
)

// PricingHandler wires the quote engine and calendar generation to HTTP.
type PricingHandler struct {
	Engine *pricing.Engine
}

func (h PricingHandler) Quote(c *gin.Context) {
	unitID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id must be a positive integer"})
		return
	}
	date, ok := parseDateQuery(c.Query("date"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required (YYYY-MM-DD)"})
		return
	}

	quote, err := h.Engine.Quote(c.Request.Context(), catalog.UnitID(unitID), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteBody(quote))
}

func (h PricingHandler) Calendar(c *gin.Context) {
	unitID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id must be a positive integer"})
		return
	}

	req := pricing.CalendarRequest{Days: parseIntQuery(c.Query("days"), 0)}
	if start, ok := parseDateQuery(c.Query("start")); ok {
		req.Start = start
	}
	if end, ok := parseDateQuery(c.Query("end")); ok {
		req.End = end
	}

	quotes, err := h.Engine.Calendar(c.Request.Context(), catalog.UnitID(unitID), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit_id": unitID, "days": len(quotes), "calendar": calendarBody(quotes)})
}

func (h PricingHandler) MonthlyCalendar(c *gin.Context) {
	unitID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id must be a positive integer"})
		return
	}
	now := time.Now().UTC()
	year := parseIntQuery(c.Query("year"), now.Year())
	month := parseIntQuery(c.Query("month"), int(now.Month()))
	if month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be in 1..12"})
		return
	}

	quotes, err := h.Engine.MonthlyCalendar(c.Request.Context(), catalog.UnitID(unitID), year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit_id": unitID, "year": year, "month": month, "calendar": calendarBody(quotes)})
}

func (h PricingHandler) YearlyCalendar(c *gin.Context) {
	unitID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id must be a positive integer"})
		return
	}
	year := parseIntQuery(c.Query("year"), time.Now().UTC().Year())

	quotes, err := h.Engine.YearlyCalendar(c.Request.Context(), catalog.UnitID(unitID), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit_id": unitID, "year": year, "calendar": calendarBody(quotes)})
}

var _ PricingHTTP = PricingHandler{}
