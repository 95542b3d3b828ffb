package cascade

import (
	"context"
	"log/slog"
	"time"

	"casita/internal/app/policies"
	"casita/internal/app/uow"
	"casita/internal/domain/catalog"
	"casita/internal/domain/shared/dates"
	"casita/internal/domain/shared/events"
)

// Service propagates a parent property's base price to the calendar
// projections of its inheriting units. The cascade is an explicit, named
// operation: it reports which units it touched and can be re-run safely
// after a partial failure, because every write is a pure function of the
// property's current state.
type Service struct {
	UoW       uow.Factory
	Publisher policies.EventPublisher
	Clock     func() time.Time
	Logger    *slog.Logger
}

// UpdatePricing replaces a property's base price and bounds and cascades
// the change, all inside one transaction.
func (s *Service) UpdatePricing(ctx context.Context, propertyID catalog.PropertyID, base, min, max float64) ([]catalog.UnitID, error) {
	now := s.now()

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

	property, err := unit.Properties().ByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if err := property.UpdatePricing(base, min, max, now); err != nil {
		return nil, err
	}
	if err := unit.Properties().Save(ctx, property); err != nil {
		return nil, err
	}

	affected, err := s.cascade(ctx, unit, property, now)
	if err != nil {
		return nil, err
	}

	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.publish(ctx, property.PendingEvents())
	property.ClearEvents()
	return affected, nil
}

// Run re-cascades the property's current base price without changing it.
// Idempotent; callers retry it after interrupted cascades.
func (s *Service) Run(ctx context.Context, propertyID catalog.PropertyID) ([]catalog.UnitID, error) {
	now := s.now()

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

	property, err := unit.Properties().ByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	affected, err := s.cascade(ctx, unit, property, now)
	if err != nil {
		return nil, err
	}

	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true
	return affected, nil
}

func (s *Service) cascade(ctx context.Context, unit uow.UnitOfWork, property *catalog.Property, now time.Time) ([]catalog.UnitID, error) {
	units, err := unit.Units().ByProperty(ctx, property.ID)
	if err != nil {
		return nil, err
	}

	today := dates.Day(now)
	affected := make([]catalog.UnitID, 0, len(units))
	for _, u := range units {
		if !u.InheritParentPricing || !u.IsActive {
			continue
		}
		price := u.EffectiveBasePrice(property.BasePrice)
		if err := unit.Availability().SetBasePriceFrom(ctx, u.ID, price, today); err != nil {
			return nil, err
		}
		affected = append(affected, u.ID)
	}

	if len(affected) > 0 {
		property.Record(catalog.PricingCascaded{
			PropertyID: property.ID,
			UnitIDs:    affected,
			BasePrice:  property.BasePrice,
			At:         now.UTC(),
		})
	}
	if s.Logger != nil {
		s.Logger.Info("pricing cascaded", "property_id", property.ID, "units", len(affected))
	}
	return affected, nil
}

func (s *Service) publish(ctx context.Context, pending []events.DomainEvent) {
	if s.Publisher == nil {
		return
	}
	for _, event := range pending {
		if err := s.Publisher.Publish(ctx, event); err != nil && s.Logger != nil {
			s.Logger.Warn("event publish failed", "event", event.EventName(), "error", err)
		}
	}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
