package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainanalytics "casita/internal/domain/analytics"
	"casita/internal/domain/catalog"
	"casita/internal/domain/pricing"
	"casita/internal/domain/shared/dates"
	"casita/internal/infra/cache"
)

// Service exposes the metrics aggregator to the delivery layers, with an
// optional read-through cache in front of forecasts. Single-day metrics are
// always computed fresh.
type Service struct {
	Aggregator *domainanalytics.Aggregator
	Engine     *pricing.Engine
	Units      catalog.UnitRepository
	Cache      cache.Cache
	CacheTTL   time.Duration
	Logger     *slog.Logger
}

func (s *Service) Daily(ctx context.Context, propertyID catalog.PropertyID, date time.Time) (domainanalytics.Metrics, error) {
	return s.Aggregator.Daily(ctx, propertyID, date)
}

// Forecast computes per-day metrics over the horizon. Forecasts are pure
// aggregations over slow-moving reservation data, so a short TTL cache is
// safe and saves the N-day recomputation on dashboard refreshes.
func (s *Service) Forecast(ctx context.Context, propertyID catalog.PropertyID, days int) ([]domainanalytics.Metrics, error) {
	key := s.forecastKey(propertyID, days)
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(key); ok {
			if forecast, ok := cached.([]domainanalytics.Metrics); ok {
				return forecast, nil
			}
		}
	}

	forecast, err := s.Aggregator.Forecast(ctx, propertyID, days)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Set(key, forecast, s.ttl())
	}
	return forecast, nil
}

// YearlySummary prices a full year for the property's first active unit and
// reduces it to price statistics. An empty roster yields a zero summary.
func (s *Service) YearlySummary(ctx context.Context, propertyID catalog.PropertyID, year int) (domainanalytics.YearlySummary, error) {
	units, err := s.Units.ByProperty(ctx, propertyID)
	if err != nil {
		return domainanalytics.YearlySummary{}, err
	}
	var reference *catalog.Unit
	for _, u := range units {
		if u.IsActive {
			reference = u
			break
		}
	}
	if reference == nil {
		return domainanalytics.YearlySummary{Year: year, MonthlyAverages: map[string]float64{}}, nil
	}

	calendar, err := s.Engine.YearlyCalendar(ctx, reference.ID, year)
	if err != nil {
		return domainanalytics.YearlySummary{}, err
	}
	return domainanalytics.Summarize(year, calendar), nil
}

// InvalidateForecasts drops every cached forecast for a property, whatever
// horizon it was requested with, typically after a booking changes its
// occupancy picture.
func (s *Service) InvalidateForecasts(propertyID catalog.PropertyID) {
	if s.Cache == nil {
		return
	}
	s.Cache.DeletePrefix(fmt.Sprintf("forecast:%d:", propertyID))
}

// forecastKey embeds today's date so yesterday's cached horizon can never
// answer today's request.
func (s *Service) forecastKey(propertyID catalog.PropertyID, days int) string {
	if days <= 0 {
		days = pricing.DefaultCalendarDays
	}
	now := time.Now()
	if s.Aggregator != nil && s.Aggregator.Clock != nil {
		now = s.Aggregator.Clock()
	}
	return fmt.Sprintf("forecast:%d:%d:%s", propertyID, days, dates.Format(now))
}

func (s *Service) ttl() time.Duration {
	if s.CacheTTL > 0 {
		return s.CacheTTL
	}
	return 5 * time.Minute
}
