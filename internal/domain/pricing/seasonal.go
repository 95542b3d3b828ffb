package pricing

import (
	"context"
	"time"

	"casita/internal/domain/catalog"
	"casita/internal/domain/rules"
)

// seasonalAdjustment selects among the seasonal rules whose window covers
// the date. When windows overlap the highest adjustment value wins, so an
// upsell season beats a discount season covering the same night.
func (e *Engine) seasonalAdjustment(ctx context.Context, propertyID catalog.PropertyID, base float64, date time.Time) (float64, bool) {
	seasonal, err := e.Rules.Seasonal(ctx, propertyID)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("seasonal rules unavailable", "property_id", propertyID, "error", err)
		}
		return 0, false
	}

	var (
		best  *rules.SeasonalRule
		found bool
	)
	for i := range seasonal {
		rule := seasonal[i]
		if !rule.Covers(date) {
			continue
		}
		if err := rule.Validate(); err != nil {
			e.skipRule(CategorySeasonal, rule.ID, err)
			continue
		}
		if !found || rule.AdjustmentValue > best.AdjustmentValue {
			best = &seasonal[i]
			found = true
		}
	}
	if !found {
		return 0, false
	}

	amount, err := rules.Amount(best.AdjustmentType, best.AdjustmentValue, base)
	if err != nil {
		e.skipRule(CategorySeasonal, best.ID, err)
		return 0, false
	}
	return amount, true
}
