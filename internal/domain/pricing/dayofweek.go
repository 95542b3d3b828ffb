package pricing

import (
	"context"
	"time"

	"casita/internal/domain/catalog"
	"casita/internal/domain/rules"
	"casita/internal/domain/shared/dates"
)

// dayOfWeekAdjustment applies the single rule configured for the date's
// weekday, if any.
func (e *Engine) dayOfWeekAdjustment(ctx context.Context, propertyID catalog.PropertyID, base float64, date time.Time) (float64, bool) {
	rule, err := e.Rules.DayOfWeek(ctx, propertyID, dates.Weekday(date))
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("day-of-week rule unavailable", "property_id", propertyID, "error", err)
		}
		return 0, false
	}
	if rule == nil {
		return 0, false
	}
	if err := rule.Validate(); err != nil {
		e.skipRule(CategoryDayOfWeek, rule.ID, err)
		return 0, false
	}

	amount, err := rules.Amount(rule.AdjustmentType, rule.AdjustmentValue, base)
	if err != nil {
		e.skipRule(CategoryDayOfWeek, rule.ID, err)
		return 0, false
	}
	return amount, true
}
