package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsapp "casita/internal/app/analytics"
	domainanalytics "casita/internal/domain/analytics"
	"casita/internal/domain/catalog"
	"casita/internal/domain/pricing"
	"casita/internal/domain/reservation"
	"casita/internal/domain/shared/dates"
	"casita/internal/infra/cache"
	"casita/internal/infra/storage/memory"
)

var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*analyticsapp.Service, *memory.Factory, catalog.PropertyID, catalog.UnitID) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewFactory()
	clock := func() time.Time { return testNow }

	property, err := catalog.NewProperty(catalog.CreatePropertyParams{
		Name:      "South Beach Suites",
		BasePrice: 250,
		MinPrice:  150,
		MaxPrice:  500,
		Now:       testNow,
	})
	require.NoError(t, err)
	require.NoError(t, store.Properties.Save(ctx, property))

	unit, err := catalog.NewUnit(catalog.CreateUnitParams{
		PropertyID:           property.ID,
		Name:                 "Ocean View Suite",
		InheritParentPricing: true,
		PriceModifier:        20,
		PriceModifierType:    catalog.ModifierPercent,
		Now:                  testNow,
	})
	require.NoError(t, err)
	require.NoError(t, store.Units.Save(ctx, unit))

	service := &analyticsapp.Service{
		Aggregator: &domainanalytics.Aggregator{
			Units:        store.Units,
			Reservations: store.Reservations,
			Clock:        clock,
		},
		Engine: &pricing.Engine{
			Properties: store.Properties,
			Units:      store.Units,
			Rules:      store.Rules,
			Clock:      clock,
		},
		Units:    store.Units,
		Cache:    cache.NewTTLCache(),
		CacheTTL: time.Minute,
	}
	return service, store, property.ID, unit.ID
}

func bookNight(t *testing.T, store *memory.Factory, propertyID catalog.PropertyID, unitID catalog.UnitID, night time.Time) {
	t.Helper()
	stay, err := dates.NewStayRange(night, night.AddDate(0, 0, 1))
	require.NoError(t, err)
	r, err := reservation.New(reservation.CreateParams{
		UnitID:     unitID,
		PropertyID: propertyID,
		Stay:       stay,
		TotalPrice: 300,
		Now:        testNow,
	})
	require.NoError(t, err)
	require.NoError(t, store.Reservations.Save(context.Background(), r))
}

func TestForecastCachesUntilInvalidated(t *testing.T) {
	service, store, propertyID, unitID := newService(t)
	ctx := context.Background()

	first, err := service.Forecast(ctx, propertyID, 30)
	require.NoError(t, err)
	require.Len(t, first, 30)
	assert.Zero(t, first[0].OccupiedUnits)

	bookNight(t, store, propertyID, unitID, dates.Day(testNow))

	cached, err := service.Forecast(ctx, propertyID, 30)
	require.NoError(t, err)
	assert.Zero(t, cached[0].OccupiedUnits, "the cached forecast predates the booking")

	service.InvalidateForecasts(propertyID)

	fresh, err := service.Forecast(ctx, propertyID, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh[0].OccupiedUnits)
	assert.Equal(t, 300.0, fresh[0].DailyRevenue)
}

func TestInvalidateForecastsCoversEveryHorizon(t *testing.T) {
	service, store, propertyID, unitID := newService(t)
	ctx := context.Background()

	// A horizon nobody special-cases still gets purged.
	first, err := service.Forecast(ctx, propertyID, 14)
	require.NoError(t, err)
	require.Len(t, first, 14)
	assert.Zero(t, first[0].OccupiedUnits)

	bookNight(t, store, propertyID, unitID, dates.Day(testNow))
	service.InvalidateForecasts(propertyID)

	fresh, err := service.Forecast(ctx, propertyID, 14)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh[0].OccupiedUnits)
}

func TestForecastWithoutCache(t *testing.T) {
	service, _, propertyID, _ := newService(t)
	service.Cache = nil

	forecast, err := service.Forecast(context.Background(), propertyID, 7)
	require.NoError(t, err)
	assert.Len(t, forecast, 7)
}

func TestYearlySummaryUsesReferenceUnit(t *testing.T) {
	service, _, propertyID, _ := newService(t)

	// 2027 is fully ahead of the fixture clock; every night quotes at the
	// inherited 300 base.
	summary, err := service.YearlySummary(context.Background(), propertyID, 2027)
	require.NoError(t, err)

	assert.Equal(t, 2027, summary.Year)
	assert.Equal(t, 365, summary.TotalDays)
	assert.Equal(t, 300.0, summary.AvgPrice)
	assert.Equal(t, 300.0, summary.MinPrice)
	assert.Equal(t, 300.0, summary.MaxPrice)
	assert.Len(t, summary.MonthlyAverages, 12)
	assert.Equal(t, 300.0, summary.MonthlyAverages["2027-07"])
}

func TestYearlySummaryEmptyRoster(t *testing.T) {
	service, store, _, _ := newService(t)
	ctx := context.Background()

	empty, err := catalog.NewProperty(catalog.CreatePropertyParams{
		Name:      "Empty Lot",
		BasePrice: 100,
		Now:       testNow,
	})
	require.NoError(t, err)
	require.NoError(t, store.Properties.Save(ctx, empty))

	summary, err := service.YearlySummary(ctx, empty.ID, 2027)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalDays)
	assert.NotNil(t, summary.MonthlyAverages)
}
