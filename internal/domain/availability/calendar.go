package availability

import (
	"context"
	"errors"
	"time"

	"casita/internal/domain/catalog"
	"casita/internal/domain/shared/dates"
)

var ErrCalendarWrite = errors.New("availability: calendar update failed")

// BlockReason explains why a calendar date is unavailable.
type BlockReason string

const (
	ReasonReservation BlockReason = "reservation"
	ReasonManual      BlockReason = "manual_block"
)

// DayEntry is one row of the denormalized pricing calendar. BasePrice is a
// projection for channel export only; quotes always recompute from the
// parent property. The cascade rewrites it whenever the parent base price
// changes.
type DayEntry struct {
	UnitID      catalog.UnitID
	Date        time.Time
	BasePrice   float64
	IsAvailable bool
	IsBlocked   bool
	BlockReason BlockReason
	UpdatedAt   time.Time
}

// Repository is the calendar projection store.
type Repository interface {
	// BlockDates marks the given nights unavailable. Re-blocking an
	// already blocked date overwrites the reason, so retries are safe.
	BlockDates(ctx context.Context, unitID catalog.UnitID, days []time.Time, reason BlockReason) error
	// SetBasePriceFrom rewrites the projected base price for every entry
	// of the unit from the given date forward.
	SetBasePriceFrom(ctx context.Context, unitID catalog.UnitID, price float64, from time.Time) error
	Entries(ctx context.Context, unitID catalog.UnitID, r dates.StayRange) ([]DayEntry, error)
	BlockedDates(ctx context.Context, unitID catalog.UnitID, r dates.StayRange) ([]time.Time, error)
}
