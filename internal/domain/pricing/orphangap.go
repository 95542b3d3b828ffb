package pricing

import (
	"context"
	"time"

	"casita/internal/domain/catalog"
	"casita/internal/domain/rules"
)

// orphanGapAdjustment discounts nights stranded between reservations. The
// engine only applies a configured rule when a GapDetector reports the date
// as part of a gap of matching size; without a detector the category
// contributes zero. Which calendar shapes count as an orphaned gap is still
// an open product question, so no detection heuristic lives here.
func (e *Engine) orphanGapAdjustment(ctx context.Context, unit *catalog.Unit, base float64, date time.Time) (float64, bool) {
	if e.Gaps == nil {
		return 0, false
	}

	gapNights, isGap, err := e.Gaps.GapNights(ctx, unit.ID, date)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("gap detection failed", "unit_id", unit.ID, "error", err)
		}
		return 0, false
	}
	if !isGap {
		return 0, false
	}

	orphan, err := e.Rules.OrphanGap(ctx, unit.PropertyID)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("orphan-gap rules unavailable", "property_id", unit.PropertyID, "error", err)
		}
		return 0, false
	}

	var (
		best  rules.OrphanGapRule
		found bool
	)
	for _, rule := range orphan {
		if rule.GapNights < gapNights {
			continue
		}
		if err := rule.Validate(); err != nil {
			e.skipRule(CategoryOrphanGap, rule.ID, err)
			continue
		}
		if !found || rule.GapNights < best.GapNights {
			best = rule
			found = true
		}
	}
	if !found {
		return 0, false
	}

	return base * (best.AdjustmentValue / 100), true
}
