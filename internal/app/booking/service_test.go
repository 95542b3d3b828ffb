package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casita/internal/app/booking"
	"casita/internal/domain/catalog"
	"casita/internal/domain/pricing"
	"casita/internal/domain/reservation"
	"casita/internal/domain/rules"
	"casita/internal/domain/shared/dates"
	"casita/internal/domain/shared/events"
	"casita/internal/infra/storage/memory"
)

var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

type capturingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *capturingPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func newBookingService(t *testing.T) (*booking.Service, *memory.Factory, catalog.UnitID, *capturingPublisher) {
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

	// Saturday surcharge so per-night prices differ within a stay.
	require.NoError(t, store.Rules.UpsertDayOfWeek(ctx, &rules.DayOfWeekRule{
		PropertyID:      property.ID,
		DayOfWeek:       5,
		AdjustmentType:  rules.AdjustPercent,
		AdjustmentValue: 20,
	}))

	engine := &pricing.Engine{
		Properties: store.Properties,
		Units:      store.Units,
		Rules:      store.Rules,
		Clock:      func() time.Time { return testNow },
	}
	publisher := &capturingPublisher{}
	service := &booking.Service{
		UoW:       store,
		Engine:    engine,
		Publisher: publisher,
		Clock:     func() time.Time { return testNow },
	}
	return service, store, unit.ID, publisher
}

func TestBookTotalsPerNightQuotes(t *testing.T) {
	service, store, unitID, publisher := newBookingService(t)
	ctx := context.Background()

	// Fri 2026-09-04 through Sun 2026-09-06: two plain nights would be 300
	// each, but Saturday carries a 20 percent surcharge.
	checkIn := time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)

	booked, err := service.Book(ctx, booking.BookParams{
		UnitID:    unitID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		GuestName: "Ada",
		Channel:   "direct",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, booked.Nights)
	assert.Equal(t, 660.0, booked.TotalPrice, "300 for Friday plus 360 for Saturday")
	assert.Equal(t, reservation.StatusConfirmed, booked.Status)
	assert.NotZero(t, booked.ID)

	saved, err := store.Reservations.ByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, booked.TotalPrice, saved.TotalPrice)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "reservation.created", publisher.events[0].EventName())
}

func TestBookBlocksCalendarDates(t *testing.T) {
	service, store, unitID, _ := newBookingService(t)
	ctx := context.Background()

	checkIn := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.September, 13, 0, 0, 0, 0, time.UTC)

	booked, err := service.Book(ctx, booking.BookParams{UnitID: unitID, CheckIn: checkIn, CheckOut: checkOut})
	require.NoError(t, err)

	stay, err := dates.NewStayRange(checkIn, checkOut)
	require.NoError(t, err)
	blocked, err := store.Availability.BlockedDates(ctx, booked.UnitID, stay)
	require.NoError(t, err)

	require.Len(t, blocked, 3, "every night of the stay is blocked")
	assert.Equal(t, dates.Day(checkIn), blocked[0])

	// The check-out date itself stays open.
	after, err := store.Availability.BlockedDates(ctx, booked.UnitID, dates.StayRange{
		CheckIn:  dates.Day(checkOut),
		CheckOut: dates.Day(checkOut).AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestBookRejectsInvalidStay(t *testing.T) {
	service, _, unitID, publisher := newBookingService(t)
	ctx := context.Background()

	day := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)

	_, err := service.Book(ctx, booking.BookParams{UnitID: unitID, CheckIn: day, CheckOut: day})
	assert.ErrorIs(t, err, reservation.ErrInvalidRange)

	_, err = service.Book(ctx, booking.BookParams{UnitID: unitID, CheckIn: day, CheckOut: day.AddDate(0, 0, -2)})
	assert.ErrorIs(t, err, reservation.ErrInvalidRange)

	assert.Empty(t, publisher.events, "nothing publishes when validation fails")
}

func TestBookUnknownUnit(t *testing.T) {
	service, _, _, _ := newBookingService(t)
	ctx := context.Background()

	_, err := service.Book(ctx, booking.BookParams{
		UnitID:   12345,
		CheckIn:  time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, catalog.ErrUnitNotFound)
}

func TestListFiltersByUnit(t *testing.T) {
	service, _, unitID, _ := newBookingService(t)
	ctx := context.Background()

	_, err := service.Book(ctx, booking.BookParams{
		UnitID:   unitID,
		CheckIn:  time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	matching, err := service.List(ctx, reservation.Filter{UnitID: unitID})
	require.NoError(t, err)
	assert.Len(t, matching, 1)

	other, err := service.List(ctx, reservation.Filter{UnitID: unitID + 1})
	require.NoError(t, err)
	assert.Empty(t, other)
}
