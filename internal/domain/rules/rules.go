package rules

import (
	"context"
	"errors"
	"math"
	"time"

	"casita/internal/domain/catalog"
	"casita/internal/domain/shared/dates"
)

var (
	// ErrInvalidRule marks a malformed rule. The compositor skips such rules
	// and keeps going; a single bad row never fails a whole quote.
	ErrInvalidRule = errors.New("rules: malformed adjustment rule")
	ErrBadWeekday  = errors.New("rules: weekday must be in 0..6 (Monday-based)")
	ErrBadWindow   = errors.New("rules: end date precedes start date")
)

type AdjustmentType string

const (
	AdjustPercent AdjustmentType = "percent"
	AdjustFixed   AdjustmentType = "fixed"
)

// Amount computes the adjustment a rule contributes relative to a base
// price. Percent rules scale the base; fixed rules add a flat amount.
func Amount(t AdjustmentType, value, base float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidRule
	}
	switch t {
	case AdjustPercent:
		return base * (value / 100), nil
	case AdjustFixed:
		return value, nil
	default:
		return 0, ErrInvalidRule
	}
}

// SeasonalRule raises or lowers prices inside an inclusive date window.
// Windows may overlap; selection is resolved at quote time.
type SeasonalRule struct {
	ID              int64
	PropertyID      catalog.PropertyID
	SeasonName      string
	StartDate       time.Time
	EndDate         time.Time
	AdjustmentType  AdjustmentType
	AdjustmentValue float64
	MinNights       int
}

// Covers reports whether the window contains the date, both ends inclusive.
func (r SeasonalRule) Covers(date time.Time) bool {
	d := dates.Day(date)
	return !d.Before(dates.Day(r.StartDate)) && !d.After(dates.Day(r.EndDate))
}

func (r SeasonalRule) Validate() error {
	if dates.Day(r.EndDate).Before(dates.Day(r.StartDate)) {
		return ErrBadWindow
	}
	if _, err := Amount(r.AdjustmentType, r.AdjustmentValue, 1); err != nil {
		return err
	}
	return nil
}

// DayOfWeekRule adjusts one weekday. At most one rule exists per weekday per
// property; writes use upsert semantics.
type DayOfWeekRule struct {
	ID              int64
	PropertyID      catalog.PropertyID
	DayOfWeek       int // 0=Monday .. 6=Sunday
	AdjustmentType  AdjustmentType
	AdjustmentValue float64
	MinNights       int
}

func (r DayOfWeekRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return ErrBadWeekday
	}
	if _, err := Amount(r.AdjustmentType, r.AdjustmentValue, 1); err != nil {
		return err
	}
	return nil
}

// LastMinuteRule discounts dates close to check-in. The adjustment is
// percent-only and stored non-positive.
type LastMinuteRule struct {
	ID                int64
	PropertyID        catalog.PropertyID
	DaysBeforeCheckIn int
	AdjustmentValue   float64
}

// NewLastMinuteRule normalizes the discount so the stored value is never a
// surcharge, whatever sign the caller passed.
func NewLastMinuteRule(propertyID catalog.PropertyID, daysBefore int, discountPercent float64) LastMinuteRule {
	return LastMinuteRule{
		PropertyID:        propertyID,
		DaysBeforeCheckIn: daysBefore,
		AdjustmentValue:   -math.Abs(discountPercent),
	}
}

func (r LastMinuteRule) Validate() error {
	if r.DaysBeforeCheckIn < 0 {
		return ErrInvalidRule
	}
	if math.IsNaN(r.AdjustmentValue) || math.IsInf(r.AdjustmentValue, 0) || r.AdjustmentValue > 0 {
		return ErrInvalidRule
	}
	return nil
}

// OrphanGapRule discounts short unbookable gaps between reservations. Gap
// detection itself is a separate capability; the rule only carries the
// configured discount.
type OrphanGapRule struct {
	ID              int64
	PropertyID      catalog.PropertyID
	GapNights       int
	AdjustmentValue float64
	ReduceMinStay   bool
}

func NewOrphanGapRule(propertyID catalog.PropertyID, gapNights int, discountPercent float64, reduceMinStay bool) OrphanGapRule {
	return OrphanGapRule{
		PropertyID:      propertyID,
		GapNights:       gapNights,
		AdjustmentValue: -math.Abs(discountPercent),
		ReduceMinStay:   reduceMinStay,
	}
}

func (r OrphanGapRule) Validate() error {
	if r.GapNights < 1 {
		return ErrInvalidRule
	}
	if math.IsNaN(r.AdjustmentValue) || math.IsInf(r.AdjustmentValue, 0) || r.AdjustmentValue > 0 {
		return ErrInvalidRule
	}
	return nil
}

// Repository is the rule store consumed by the pricing engine. Reads are
// keyed by property; DayOfWeek returns nil when the weekday has no rule.
type Repository interface {
	Seasonal(ctx context.Context, propertyID catalog.PropertyID) ([]SeasonalRule, error)
	DayOfWeek(ctx context.Context, propertyID catalog.PropertyID, weekday int) (*DayOfWeekRule, error)
	LastMinute(ctx context.Context, propertyID catalog.PropertyID) ([]LastMinuteRule, error)
	OrphanGap(ctx context.Context, propertyID catalog.PropertyID) ([]OrphanGapRule, error)

	AddSeasonal(ctx context.Context, rule *SeasonalRule) error
	UpsertDayOfWeek(ctx context.Context, rule *DayOfWeekRule) error
	AddLastMinute(ctx context.Context, rule *LastMinuteRule) error
	AddOrphanGap(ctx context.Context, rule *OrphanGapRule) error
}
