package catalog

import (
	"strconv"
	"time"
)

// BasePriceChanged signals that a property's base price moved, either by a
// manual edit or a smart-pricing sync. A cascade must follow.
type BasePriceChanged struct {
	PropertyID PropertyID
	OldPrice   float64
	NewPrice   float64
	At         time.Time
}

func (e BasePriceChanged) EventName() string     { return "catalog.base_price_changed" }
func (e BasePriceChanged) AggregateID() string   { return strconv.FormatInt(int64(e.PropertyID), 10) }
func (e BasePriceChanged) OccurredAt() time.Time { return e.At }

// PricingCascaded records which units had their denormalized calendar base
// price rewritten after a parent price change.
type PricingCascaded struct {
	PropertyID PropertyID
	UnitIDs    []UnitID
	BasePrice  float64
	At         time.Time
}

func (e PricingCascaded) EventName() string     { return "catalog.pricing_cascaded" }
func (e PricingCascaded) AggregateID() string   { return strconv.FormatInt(int64(e.PropertyID), 10) }
func (e PricingCascaded) OccurredAt() time.Time { return e.At }
