package pricing

import (
	"context"
	"time"

	"casita/internal/domain/catalog"
	"casita/internal/domain/rules"
	"casita/internal/domain/shared/dates"
)

// lastMinuteAdjustment discounts dates inside a booking window. Among rules
// whose threshold still covers the remaining lead time, the smallest
// threshold wins: the tightest window is the most conservative discount.
// Past dates never receive a last-minute discount.
func (e *Engine) lastMinuteAdjustment(ctx context.Context, propertyID catalog.PropertyID, base float64, date time.Time) (float64, bool) {
	daysUntil := dates.DaysBetween(dates.Day(e.now()), date)
	if daysUntil < 0 {
		return 0, false
	}

	lastMinute, err := e.Rules.LastMinute(ctx, propertyID)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("last-minute rules unavailable", "property_id", propertyID, "error", err)
		}
		return 0, false
	}

	var (
		best  rules.LastMinuteRule
		found bool
	)
	for _, rule := range lastMinute {
		if rule.DaysBeforeCheckIn < daysUntil {
			continue
		}
		if err := rule.Validate(); err != nil {
			e.skipRule(CategoryLastMinute, rule.ID, err)
			continue
		}
		if !found || rule.DaysBeforeCheckIn < best.DaysBeforeCheckIn {
			best = rule
			found = true
		}
	}
	if !found {
		return 0, false
	}

	// Last-minute adjustments are always percentages of the base.
	return base * (best.AdjustmentValue / 100), true
}
