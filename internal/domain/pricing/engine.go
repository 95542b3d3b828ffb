package pricing

import (
	"context"
	"log/slog"
	"time"

	"casita/internal/domain/catalog"
	"casita/internal/domain/rules"
	"casita/internal/domain/shared/dates"
	"casita/internal/domain/shared/money"
)

// GapDetector identifies orphaned gap nights between reservations. The
// engine treats it as an optional capability: without one, the orphan-gap
// category contributes nothing.
type GapDetector interface {
	GapNights(ctx context.Context, unitID catalog.UnitID, date time.Time) (int, bool, error)
}

// Engine composes a unit's nightly price: parent-inherited base, the four
// adjustment layers, then the property's min/max clamp.
type Engine struct {
	Properties catalog.PropertyRepository
	Units      catalog.UnitRepository
	Rules      rules.Repository
	Gaps       GapDetector
	Clock      func() time.Time
	Logger     *slog.Logger

	// MaxCalendarDays caps calendar generation; zero means MaxCalendarDays
	// from calendar.go.
	MaxCalendarDays int
}

// Quote computes the price breakdown for one unit-night.
func (e *Engine) Quote(ctx context.Context, unitID catalog.UnitID, targetDate time.Time) (Quote, error) {
	targetDate = dates.Day(targetDate)

	unit, err := e.Units.ByID(ctx, unitID)
	if err != nil {
		return Quote{}, err
	}
	property, err := e.Properties.ByID(ctx, unit.PropertyID)
	if err != nil {
		return Quote{}, err
	}

	base := unit.EffectiveBasePrice(property.BasePrice)

	adjustments := map[Category]float64{
		CategorySeasonal:   0,
		CategoryDayOfWeek:  0,
		CategoryLastMinute: 0,
		CategoryOrphanGap:  0,
	}

	if amount, ok := e.seasonalAdjustment(ctx, property.ID, base, targetDate); ok {
		adjustments[CategorySeasonal] = amount
	}
	if amount, ok := e.dayOfWeekAdjustment(ctx, property.ID, base, targetDate); ok {
		adjustments[CategoryDayOfWeek] = amount
	}
	if amount, ok := e.lastMinuteAdjustment(ctx, property.ID, base, targetDate); ok {
		adjustments[CategoryLastMinute] = amount
	}
	if amount, ok := e.orphanGapAdjustment(ctx, unit, base, targetDate); ok {
		adjustments[CategoryOrphanGap] = amount
	}

	adjusted := base
	for _, category := range Categories {
		adjusted += adjustments[category]
	}

	min, max := property.Bounds()
	final := money.Clamp(adjusted, min, max)

	source := SourceManual
	if unit.InheritParentPricing {
		source = SourceSmartPricing
	}

	rounded := make(map[Category]float64, len(adjustments))
	for category, amount := range adjustments {
		rounded[category] = money.Round2(amount)
	}

	return Quote{
		UnitID:        unit.ID,
		Date:          targetDate,
		BasePrice:     money.Round2(base),
		Adjustments:   rounded,
		AdjustedPrice: money.Round2(adjusted),
		FinalPrice:    money.Round2(final),
		PriceSource:   source,
	}, nil
}

func (e *Engine) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

func (e *Engine) skipRule(category Category, ruleID int64, err error) {
	if e.Logger == nil {
		return
	}
	e.Logger.Warn("skipping malformed pricing rule", "category", string(category), "rule_id", ruleID, "error", err)
}
