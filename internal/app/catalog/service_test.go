package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "casita/internal/app/catalog"
	"casita/internal/domain/catalog"
	"casita/internal/domain/rules"
	"casita/internal/infra/storage/memory"
)

var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func newCatalogService(t *testing.T) (*catalogapp.Service, *memory.Factory) {
	t.Helper()
	store := memory.NewFactory()
	service := &catalogapp.Service{
		UoW:   store,
		Clock: func() time.Time { return testNow },
	}
	return service, store
}

func seedProperty(t *testing.T, service *catalogapp.Service) *catalog.Property {
	t.Helper()
	property, err := service.CreateProperty(context.Background(), catalog.CreatePropertyParams{
		Name:      "South Beach Suites",
		BasePrice: 250,
		MinPrice:  150,
		MaxPrice:  500,
	})
	require.NoError(t, err)
	return property
}

func TestCreateProperty(t *testing.T) {
	service, _ := newCatalogService(t)

	property, err := service.CreateProperty(context.Background(), catalog.CreatePropertyParams{
		Name:      "  South Beach Suites  ",
		BasePrice: 250,
	})
	require.NoError(t, err)

	assert.NotZero(t, property.ID)
	assert.Equal(t, "South Beach Suites", property.Name)
	assert.True(t, property.IsActive)
	assert.Equal(t, testNow, property.CreatedAt)
}

func TestCreatePropertyRejectsBadBounds(t *testing.T) {
	service, _ := newCatalogService(t)

	_, err := service.CreateProperty(context.Background(), catalog.CreatePropertyParams{
		Name:      "Backwards",
		BasePrice: 250,
		MinPrice:  500,
		MaxPrice:  150,
	})
	assert.ErrorIs(t, err, catalog.ErrPriceBounds)
}

func TestCreateUnitRequiresParent(t *testing.T) {
	service, _ := newCatalogService(t)

	_, err := service.CreateUnit(context.Background(), catalog.CreateUnitParams{
		PropertyID:           999,
		Name:                 "Orphan",
		InheritParentPricing: true,
		PriceModifierType:    catalog.ModifierPercent,
	})
	assert.ErrorIs(t, err, catalog.ErrPropertyNotFound)
}

func TestPropertyReturnsUnits(t *testing.T) {
	service, _ := newCatalogService(t)
	ctx := context.Background()
	property := seedProperty(t, service)

	for _, name := range []string{"Ocean View Suite", "Garden Studio"} {
		_, err := service.CreateUnit(ctx, catalog.CreateUnitParams{
			PropertyID:           property.ID,
			Name:                 name,
			InheritParentPricing: true,
			PriceModifierType:    catalog.ModifierPercent,
		})
		require.NoError(t, err)
	}

	got, units, err := service.Property(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, property.ID, got.ID)
	assert.Len(t, units, 2)
}

func TestRuleWritesValidateFirst(t *testing.T) {
	service, store := newCatalogService(t)
	ctx := context.Background()
	property := seedProperty(t, service)

	err := service.SetDayOfWeekRule(ctx, &rules.DayOfWeekRule{
		PropertyID:      property.ID,
		DayOfWeek:       9,
		AdjustmentType:  rules.AdjustPercent,
		AdjustmentValue: 10,
	})
	assert.ErrorIs(t, err, rules.ErrBadWeekday)

	err = service.AddSeasonalRule(ctx, &rules.SeasonalRule{
		PropertyID:      property.ID,
		SeasonName:      "Backwards",
		StartDate:       time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		AdjustmentType:  rules.AdjustPercent,
		AdjustmentValue: 30,
	})
	assert.ErrorIs(t, err, rules.ErrBadWindow)

	seasonal, err := store.Rules.Seasonal(ctx, property.ID)
	require.NoError(t, err)
	assert.Empty(t, seasonal, "rejected rules never reach the store")
}

func TestRuleWritesRequireProperty(t *testing.T) {
	service, _ := newCatalogService(t)

	err := service.AddLastMinuteRule(context.Background(), &rules.LastMinuteRule{
		PropertyID:        999,
		DaysBeforeCheckIn: 3,
		AdjustmentValue:   -10,
	})
	assert.ErrorIs(t, err, catalog.ErrPropertyNotFound)
}

func TestSetDayOfWeekRuleUpserts(t *testing.T) {
	service, store := newCatalogService(t)
	ctx := context.Background()
	property := seedProperty(t, service)

	require.NoError(t, service.SetDayOfWeekRule(ctx, &rules.DayOfWeekRule{
		PropertyID:      property.ID,
		DayOfWeek:       5,
		AdjustmentType:  rules.AdjustPercent,
		AdjustmentValue: 20,
	}))
	require.NoError(t, service.SetDayOfWeekRule(ctx, &rules.DayOfWeekRule{
		PropertyID:      property.ID,
		DayOfWeek:       5,
		AdjustmentType:  rules.AdjustPercent,
		AdjustmentValue: 35,
	}))

	rule, err := store.Rules.DayOfWeek(ctx, property.ID, 5)
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, 35.0, rule.AdjustmentValue, "the second write replaces the first")
}
