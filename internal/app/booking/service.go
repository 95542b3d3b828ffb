package booking

import (
	"context"
	"log/slog"
	"time"

	"casita/internal/app/policies"
	"casita/internal/app/uow"
	"casita/internal/domain/availability"
	"casita/internal/domain/catalog"
	"casita/internal/domain/pricing"
	"casita/internal/domain/reservation"
	"casita/internal/domain/shared/dates"
)

// Service quotes and books stays. The reservation row and its calendar
// blocks land in the same transaction, so a reservation can never exist
// without its dates blocked or vice versa.
type Service struct {
	UoW       uow.Factory
	Engine    *pricing.Engine
	Publisher policies.EventPublisher
	Clock     func() time.Time
	Logger    *slog.Logger
}

type BookParams struct {
	UnitID    catalog.UnitID
	CheckIn   time.Time
	CheckOut  time.Time
	GuestName string
	Channel   string
}

// Book computes the stay's total from per-night quotes and persists the
// reservation together with its calendar blocks.
func (s *Service) Book(ctx context.Context, params BookParams) (*reservation.Reservation, error) {
	stay, err := dates.NewStayRange(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, reservation.ErrInvalidRange
	}

	// Quotes are reads; they happen before the write transaction opens.
	total := 0.0
	for _, night := range stay.Dates() {
		quote, err := s.Engine.Quote(ctx, params.UnitID, night)
		if err != nil {
			return nil, err
		}
		total += quote.FinalPrice
	}

	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	bookedUnit, err := unit.Units().ByID(ctx, params.UnitID)
	if err != nil {
		return nil, err
	}

	r, err := reservation.New(reservation.CreateParams{
		UnitID:     bookedUnit.ID,
		PropertyID: bookedUnit.PropertyID,
		Stay:       stay,
		TotalPrice: total,
		GuestName:  params.GuestName,
		Channel:    params.Channel,
		Now:        s.now(),
	})
	if err != nil {
		return nil, err
	}

	if err := unit.Reservations().Save(ctx, r); err != nil {
		return nil, err
	}
	if err := unit.Availability().BlockDates(ctx, r.UnitID, stay.Dates(), availability.ReasonReservation); err != nil {
		return nil, err
	}

	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	if s.Publisher != nil {
		for _, event := range r.PendingEvents() {
			if err := s.Publisher.Publish(ctx, event); err != nil && s.Logger != nil {
				s.Logger.Warn("event publish failed", "event", event.EventName(), "error", err)
			}
		}
	}
	r.ClearEvents()

	if s.Logger != nil {
		s.Logger.Info("reservation booked",
			"reservation_id", r.ID,
			"unit_id", r.UnitID,
			"nights", r.Nights,
			"total_price", r.TotalPrice,
		)
	}
	return r, nil
}

// List returns reservations matching the filter.
func (s *Service) List(ctx context.Context, filter reservation.Filter) ([]*reservation.Reservation, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer func() { _ = unit.Rollback(ctx) }()
	return unit.Reservations().List(ctx, filter)
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
