package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casita/internal/domain/analytics"
	"casita/internal/domain/catalog"
	"casita/internal/domain/reservation"
	"casita/internal/domain/shared/dates"
	"casita/internal/infra/storage/memory"
)

var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func newAggregator(t *testing.T) (*analytics.Aggregator, *memory.Factory, catalog.PropertyID, []catalog.UnitID) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewFactory()

	property, err := catalog.NewProperty(catalog.CreatePropertyParams{
		Name:      "South Beach Suites",
		BasePrice: 250,
		MinPrice:  150,
		MaxPrice:  500,
		Now:       testNow,
	})
	require.NoError(t, err)
	require.NoError(t, store.Properties.Save(ctx, property))

	names := []string{"101", "102", "103", "104"}
	unitIDs := make([]catalog.UnitID, 0, len(names))
	for _, name := range names {
		unit, err := catalog.NewUnit(catalog.CreateUnitParams{
			PropertyID:           property.ID,
			Name:                 name,
			InheritParentPricing: true,
			PriceModifierType:    catalog.ModifierPercent,
			Now:                  testNow,
		})
		require.NoError(t, err)
		require.NoError(t, store.Units.Save(ctx, unit))
		unitIDs = append(unitIDs, unit.ID)
	}

	// A fifth, inactive unit must stay out of every denominator.
	mothballed, err := catalog.NewUnit(catalog.CreateUnitParams{
		PropertyID:           property.ID,
		Name:                 "mothballed",
		InheritParentPricing: true,
		PriceModifierType:    catalog.ModifierPercent,
		Now:                  testNow,
	})
	require.NoError(t, err)
	mothballed.IsActive = false
	require.NoError(t, store.Units.Save(ctx, mothballed))

	aggregator := &analytics.Aggregator{
		Units:        store.Units,
		Reservations: store.Reservations,
		Clock:        func() time.Time { return testNow },
	}
	return aggregator, store, property.ID, unitIDs
}

func book(t *testing.T, store *memory.Factory, propertyID catalog.PropertyID, unitID catalog.UnitID, checkIn time.Time, nights int, total float64, status reservation.Status) {
	t.Helper()
	stay, err := dates.NewStayRange(checkIn, checkIn.AddDate(0, 0, nights))
	require.NoError(t, err)
	r, err := reservation.New(reservation.CreateParams{
		UnitID:     unitID,
		PropertyID: propertyID,
		Stay:       stay,
		TotalPrice: total,
		GuestName:  "guest",
		Now:        testNow,
	})
	require.NoError(t, err)
	r.Status = status
	require.NoError(t, store.Reservations.Save(context.Background(), r))
}

func TestDailyMetrics(t *testing.T) {
	aggregator, store, propertyID, unitIDs := newAggregator(t)
	night := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)

	// Two stays of 400 over 2 nights each contribute 200 of revenue apiece.
	book(t, store, propertyID, unitIDs[0], night, 2, 400, reservation.StatusConfirmed)
	book(t, store, propertyID, unitIDs[1], night, 2, 400, reservation.StatusConfirmed)
	// Cancelled stays never count.
	book(t, store, propertyID, unitIDs[2], night, 2, 999, reservation.StatusCancelled)

	metrics, err := aggregator.Daily(context.Background(), propertyID, night)
	require.NoError(t, err)

	assert.Equal(t, "2026-09-10", metrics.Date)
	assert.Equal(t, 4, metrics.TotalUnits, "inactive units are excluded")
	assert.Equal(t, 2, metrics.OccupiedUnits)
	assert.Equal(t, 50.0, metrics.OccupancyRate)
	assert.Equal(t, 400.0, metrics.DailyRevenue)
	assert.Equal(t, 200.0, metrics.ADR)
	assert.Equal(t, 100.0, metrics.RevPAR)
}

func TestDailyMetricsEmptyNight(t *testing.T) {
	aggregator, _, propertyID, _ := newAggregator(t)

	metrics, err := aggregator.Daily(context.Background(), propertyID, testNow)
	require.NoError(t, err)

	assert.Equal(t, 4, metrics.TotalUnits)
	assert.Zero(t, metrics.OccupiedUnits)
	assert.Zero(t, metrics.OccupancyRate)
	assert.Zero(t, metrics.ADR, "ADR guards against dividing by zero occupancy")
	assert.Zero(t, metrics.RevPAR)
}

func TestDailyMetricsNoUnits(t *testing.T) {
	aggregator, store, _, _ := newAggregator(t)
	ctx := context.Background()

	empty, err := catalog.NewProperty(catalog.CreatePropertyParams{
		Name:      "Empty Lot",
		BasePrice: 100,
		Now:       testNow,
	})
	require.NoError(t, err)
	require.NoError(t, store.Properties.Save(ctx, empty))

	metrics, err := aggregator.Daily(ctx, empty.ID, testNow)
	require.NoError(t, err)
	assert.Zero(t, metrics.TotalUnits)
	assert.Zero(t, metrics.OccupancyRate)
	assert.Zero(t, metrics.RevPAR)
}

func TestForecastIteratesFromToday(t *testing.T) {
	aggregator, store, propertyID, unitIDs := newAggregator(t)

	// Occupancy only on the second forecast day.
	book(t, store, propertyID, unitIDs[0], dates.Day(testNow).AddDate(0, 0, 1), 1, 180, reservation.StatusConfirmed)

	forecast, err := aggregator.Forecast(context.Background(), propertyID, 3)
	require.NoError(t, err)
	require.Len(t, forecast, 3)

	assert.Equal(t, "2026-09-01", forecast[0].Date)
	assert.Equal(t, "2026-09-02", forecast[1].Date)
	assert.Equal(t, "2026-09-03", forecast[2].Date)

	assert.Zero(t, forecast[0].OccupiedUnits)
	assert.Equal(t, 1, forecast[1].OccupiedUnits)
	assert.Equal(t, 180.0, forecast[1].DailyRevenue)
	assert.Zero(t, forecast[2].OccupiedUnits)
}
