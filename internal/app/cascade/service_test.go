package cascade_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casita/internal/app/cascade"
	"casita/internal/domain/availability"
	"casita/internal/domain/catalog"
	"casita/internal/domain/shared/dates"
	"casita/internal/infra/storage/memory"
)

var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	service  *cascade.Service
	store    *memory.Factory
	property *catalog.Property
	percent  *catalog.Unit
	flat     *catalog.Unit
	custom   *catalog.Unit
	inactive *catalog.Unit
}

func newFixture(t *testing.T) fixture {
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

	mkUnit := func(name string, inherit bool, modifier float64, modifierType catalog.ModifierType, custom float64) *catalog.Unit {
		unit, err := catalog.NewUnit(catalog.CreateUnitParams{
			PropertyID:           property.ID,
			Name:                 name,
			InheritParentPricing: inherit,
			PriceModifier:        modifier,
			PriceModifierType:    modifierType,
			CustomBasePrice:      custom,
			Now:                  testNow,
		})
		require.NoError(t, err)
		require.NoError(t, store.Units.Save(ctx, unit))
		return unit
	}

	percent := mkUnit("percent", true, 20, catalog.ModifierPercent, 0)
	flat := mkUnit("flat", true, 0, catalog.ModifierPercent, 0)
	custom := mkUnit("custom", false, 0, catalog.ModifierPercent, 120)
	inactive := mkUnit("inactive", true, 10, catalog.ModifierPercent, 0)
	inactive.IsActive = false
	require.NoError(t, store.Units.Save(ctx, inactive))

	// Seed calendar rows the cascade can rewrite.
	future := []time.Time{dates.Day(testNow).AddDate(0, 0, 5), dates.Day(testNow).AddDate(0, 0, 6)}
	for _, unit := range []*catalog.Unit{percent, flat, custom, inactive} {
		require.NoError(t, store.Availability.BlockDates(ctx, unit.ID, future, availability.ReasonManual))
	}

	service := &cascade.Service{
		UoW:   store,
		Clock: func() time.Time { return testNow },
	}
	return fixture{service: service, store: store, property: property, percent: percent, flat: flat, custom: custom, inactive: inactive}
}

func entriesFor(t *testing.T, store *memory.Factory, unitID catalog.UnitID) []availability.DayEntry {
	t.Helper()
	stay := dates.StayRange{
		CheckIn:  dates.Day(testNow),
		CheckOut: dates.Day(testNow).AddDate(0, 0, 30),
	}
	entries, err := store.Availability.Entries(context.Background(), unitID, stay)
	require.NoError(t, err)
	return entries
}

func TestUpdatePricingCascadesToInheritingUnits(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	affected, err := fx.service.UpdatePricing(ctx, fx.property.ID, 300, 150, 600)
	require.NoError(t, err)

	assert.ElementsMatch(t, []catalog.UnitID{fx.percent.ID, fx.flat.ID}, affected,
		"custom-priced and inactive units are untouched")

	for _, entry := range entriesFor(t, fx.store, fx.percent.ID) {
		assert.Equal(t, 360.0, entry.BasePrice, "20 percent over the new base")
	}
	for _, entry := range entriesFor(t, fx.store, fx.flat.ID) {
		assert.Equal(t, 300.0, entry.BasePrice)
	}
	for _, entry := range entriesFor(t, fx.store, fx.custom.ID) {
		assert.Zero(t, entry.BasePrice)
	}

	property, err := fx.store.Properties.ByID(ctx, fx.property.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, property.BasePrice)
	assert.Equal(t, 600.0, property.MaxPrice)
}

func TestUpdatePricingValidatesBounds(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.service.UpdatePricing(ctx, fx.property.ID, 300, 700, 600)
	assert.ErrorIs(t, err, catalog.ErrPriceBounds)

	property, err := fx.store.Properties.ByID(ctx, fx.property.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, property.BasePrice, "rejected update leaves the base untouched")
}

func TestUpdatePricingUnknownProperty(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.UpdatePricing(context.Background(), 999, 300, 150, 600)
	assert.ErrorIs(t, err, catalog.ErrPropertyNotFound)
}

func TestRunIsIdempotent(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	first, err := fx.service.Run(ctx, fx.property.ID)
	require.NoError(t, err)
	second, err := fx.service.Run(ctx, fx.property.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second, "re-running the cascade touches the same units")

	for _, entry := range entriesFor(t, fx.store, fx.percent.ID) {
		assert.Equal(t, 300.0, entry.BasePrice, "cascade of the unchanged base writes the current derived price")
	}
}
