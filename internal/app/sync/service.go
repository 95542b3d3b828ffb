package sync

import (
	"context"
	"log/slog"
	"time"

	"casita/internal/app/cascade"
	"casita/internal/app/uow"
	"casita/internal/domain/catalog"
	"casita/internal/domain/shared/dates"
)

// Service applies smart-pricing pushes from the channel manager: record the
// sync, move the property's base price, cascade to inheriting units.
type Service struct {
	Cascade *cascade.Service
	History catalog.SmartPricingRepository
	Clock   func() time.Time
	Logger  *slog.Logger
}

// Apply records the sync and runs the price update + cascade. The history
// row is written after the cascade commits; it is append-only audit data,
// so losing it on a crash costs nothing but a log line.
func (s *Service) Apply(ctx context.Context, propertyID catalog.PropertyID, smartPrice float64, demandScore int) ([]catalog.UnitID, error) {
	min, max, err := s.currentBounds(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	affected, err := s.Cascade.UpdatePricing(ctx, propertyID, smartPrice, min, max)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &catalog.SmartPricingSync{
		PropertyID:  propertyID,
		SyncDate:    dates.Day(now),
		SmartPrice:  smartPrice,
		DemandScore: demandScore,
		SyncedAt:    now.UTC(),
	}
	if err := s.History.Record(ctx, record); err != nil && s.Logger != nil {
		s.Logger.Warn("smart pricing history write failed", "property_id", propertyID, "error", err)
	}
	return affected, nil
}

// RecentHistory returns the property's smart-pricing syncs over the last
// N days (default 30).
func (s *Service) RecentHistory(ctx context.Context, propertyID catalog.PropertyID, days int) ([]catalog.SmartPricingSync, error) {
	if days <= 0 {
		days = 30
	}
	return s.History.History(ctx, propertyID, days)
}

// currentBounds reads the property's min/max so a smart price push keeps
// the existing clamp window.
func (s *Service) currentBounds(ctx context.Context, propertyID catalog.PropertyID) (float64, float64, error) {
	unit, err := s.Cascade.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = unit.Rollback(ctx) }()

	property, err := unit.Properties().ByID(ctx, propertyID)
	if err != nil {
		return 0, 0, err
	}
	return property.MinPrice, property.MaxPrice, nil
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
