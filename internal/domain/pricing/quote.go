package pricing

import (
	"time"

	"casita/internal/domain/catalog"
	"casita/internal/domain/shared/dates"
)

// Category names one of the adjustment layers stacked on the base price.
type Category string

const (
	CategorySeasonal   Category = "seasonal"
	CategoryDayOfWeek  Category = "day_of_week"
	CategoryLastMinute Category = "last_minute"
	CategoryOrphanGap  Category = "orphan_day"
)

// Categories lists the adjustment layers in composition order.
var Categories = []Category{CategorySeasonal, CategoryDayOfWeek, CategoryLastMinute, CategoryOrphanGap}

// Source tells consumers where a quote's base price came from.
type Source string

const (
	SourceSmartPricing Source = "smart_pricing"
	SourceManual       Source = "manual"
)

// Quote is the price breakdown for one unit-night. It is recomputed on
// every query and never persisted as the source of truth; all currency
// fields are rounded to two decimals.
type Quote struct {
	UnitID        catalog.UnitID       `json:"unit_id"`
	Date          time.Time            `json:"-"`
	BasePrice     float64              `json:"base_price"`
	Adjustments   map[Category]float64 `json:"adjustments"`
	AdjustedPrice float64              `json:"adjusted_price"`
	FinalPrice    float64              `json:"final_price"`
	PriceSource   Source               `json:"price_source"`
}

// DateString renders the quoted date as YYYY-MM-DD for serialization.
func (q Quote) DateString() string {
	return dates.Format(q.Date)
}
