package ginserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"casita/internal/domain/catalog"
	"casita/internal/domain/pricing"
	"casita/internal/domain/reservation"
	"casita/internal/domain/rules"
	"casita/internal/domain/shared/dates"
	"casita/internal/infra/storage"
)

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrPropertyNotFound),
		errors.Is(err, catalog.ErrUnitNotFound),
		errors.Is(err, reservation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrNameRequired),
		errors.Is(err, catalog.ErrNegativePrice),
		errors.Is(err, catalog.ErrPriceBounds),
		errors.Is(err, catalog.ErrUnitNameRequired),
		errors.Is(err, catalog.ErrUnknownModifier),
		errors.Is(err, catalog.ErrPropertyIDRequired),
		errors.Is(err, rules.ErrInvalidRule),
		errors.Is(err, rules.ErrBadWeekday),
		errors.Is(err, rules.ErrBadWindow),
		errors.Is(err, reservation.ErrInvalidRange),
		errors.Is(err, reservation.ErrZeroUnit),
		errors.Is(err, dates.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseDateQuery(raw string) (time.Time, bool) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, false
	}
	t, err := dates.Parse(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseIntQuery(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}

// quotePayload flattens a quote for JSON along with its civil date.
type quotePayload struct {
	Date string `json:"date"`
	pricing.Quote
}

func quoteBody(q pricing.Quote) quotePayload {
	return quotePayload{Date: q.DateString(), Quote: q}
}

func calendarBody(quotes []pricing.Quote) []quotePayload {
	out := make([]quotePayload, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, quoteBody(q))
	}
	return out
}
