package analytics

import (
	"context"
	"time"

	"casita/internal/domain/catalog"
	"casita/internal/domain/pricing"
	"casita/internal/domain/reservation"
	"casita/internal/domain/shared/dates"
	"casita/internal/domain/shared/money"
)

// Metrics is one day of portfolio performance for a property.
type Metrics struct {
	PropertyID    catalog.PropertyID `json:"property_id"`
	Date          string             `json:"date"`
	TotalUnits    int                `json:"total_units"`
	OccupiedUnits int                `json:"occupied_units"`
	OccupancyRate float64            `json:"occupancy_rate"`
	DailyRevenue  float64            `json:"daily_revenue"`
	ADR           float64            `json:"adr"`
	RevPAR        float64            `json:"revpar"`
}

// Aggregator derives occupancy, ADR and RevPAR from reservations and the
// unit roster. Read-only; it shares the engine's day-iteration pattern but
// touches no pricing rules.
type Aggregator struct {
	Units        catalog.UnitRepository
	Reservations reservation.Repository
	Clock        func() time.Time
}

// Daily computes the metrics for a single date. A reservation's revenue is
// spread evenly across its nights.
func (a *Aggregator) Daily(ctx context.Context, propertyID catalog.PropertyID, date time.Time) (Metrics, error) {
	date = dates.Day(date)

	units, err := a.Units.ByProperty(ctx, propertyID)
	if err != nil {
		return Metrics{}, err
	}
	totalUnits := 0
	for _, unit := range units {
		if unit.IsActive {
			totalUnits++
		}
	}

	covering, err := a.Reservations.CoveringDate(ctx, propertyID, date)
	if err != nil {
		return Metrics{}, err
	}

	occupied := make(map[catalog.UnitID]struct{}, len(covering))
	dailyRevenue := 0.0
	for _, r := range covering {
		occupied[r.UnitID] = struct{}{}
		dailyRevenue += r.NightlyRevenue()
	}
	occupiedUnits := len(occupied)

	var occupancyRate, adr, revpar float64
	if totalUnits > 0 {
		occupancyRate = float64(occupiedUnits) / float64(totalUnits) * 100
		revpar = dailyRevenue / float64(totalUnits)
	}
	if occupiedUnits > 0 {
		adr = dailyRevenue / float64(occupiedUnits)
	}

	return Metrics{
		PropertyID:    propertyID,
		Date:          dates.Format(date),
		TotalUnits:    totalUnits,
		OccupiedUnits: occupiedUnits,
		OccupancyRate: money.Round2(occupancyRate),
		DailyRevenue:  money.Round2(dailyRevenue),
		ADR:           money.Round2(adr),
		RevPAR:        money.Round2(revpar),
	}, nil
}

// Forecast iterates the daily computation over a horizon starting today.
// Each day is computed independently; nothing carries over between days.
func (a *Aggregator) Forecast(ctx context.Context, propertyID catalog.PropertyID, days int) ([]Metrics, error) {
	if days <= 0 {
		days = pricing.DefaultCalendarDays
	}
	today := dates.Day(a.now())
	out := make([]Metrics, 0, days)
	for i := 0; i < days; i++ {
		m, err := a.Daily(ctx, propertyID, today.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (a *Aggregator) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}
