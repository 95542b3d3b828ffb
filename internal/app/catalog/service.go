package catalog

import (
	"context"
	"log/slog"
	"time"

	"casita/internal/app/uow"
	domaincatalog "casita/internal/domain/catalog"
	domainrules "casita/internal/domain/rules"
)

// Service manages the property and unit roster and the adjustment rule
// inventory. Rule writes validate before touching the store; a malformed
// rule is rejected at the door instead of being skipped at quote time.
type Service struct {
	UoW    uow.Factory
	Clock  func() time.Time
	Logger *slog.Logger
}

func (s *Service) CreateProperty(ctx context.Context, params domaincatalog.CreatePropertyParams) (*domaincatalog.Property, error) {
	params.Now = s.now()
	property, err := domaincatalog.NewProperty(params)
	if err != nil {
		return nil, err
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

	if err := unit.Properties().Save(ctx, property); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	if s.Logger != nil {
		s.Logger.Info("property created", "property_id", property.ID, "name", property.Name)
	}
	return property, nil
}

func (s *Service) CreateUnit(ctx context.Context, params domaincatalog.CreateUnitParams) (*domaincatalog.Unit, error) {
	params.Now = s.now()
	created, err := domaincatalog.NewUnit(params)
	if err != nil {
		return nil, err
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

	// The parent must exist; a unit without one can never be priced.
	if _, err := unit.Properties().ByID(ctx, created.PropertyID); err != nil {
		return nil, err
	}
	if err := unit.Units().Save(ctx, created); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	if s.Logger != nil {
		s.Logger.Info("unit created", "unit_id", created.ID, "property_id", created.PropertyID)
	}
	return created, nil
}

// Property returns a property together with its units.
func (s *Service) Property(ctx context.Context, id domaincatalog.PropertyID) (*domaincatalog.Property, []*domaincatalog.Unit, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = unit.Rollback(ctx) }()

	property, err := unit.Properties().ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	units, err := unit.Units().ByProperty(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return property, units, nil
}

func (s *Service) ListProperties(ctx context.Context, activeOnly bool) ([]*domaincatalog.Property, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer func() { _ = unit.Rollback(ctx) }()
	return unit.Properties().List(ctx, activeOnly)
}

func (s *Service) AddSeasonalRule(ctx context.Context, rule *domainrules.SeasonalRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	return s.writeRule(ctx, rule.PropertyID, func(repo domainrules.Repository) error {
		return repo.AddSeasonal(ctx, rule)
	})
}

// SetDayOfWeekRule upserts the single rule a weekday may carry.
func (s *Service) SetDayOfWeekRule(ctx context.Context, rule *domainrules.DayOfWeekRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	return s.writeRule(ctx, rule.PropertyID, func(repo domainrules.Repository) error {
		return repo.UpsertDayOfWeek(ctx, rule)
	})
}

func (s *Service) AddLastMinuteRule(ctx context.Context, rule *domainrules.LastMinuteRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	return s.writeRule(ctx, rule.PropertyID, func(repo domainrules.Repository) error {
		return repo.AddLastMinute(ctx, rule)
	})
}

func (s *Service) AddOrphanGapRule(ctx context.Context, rule *domainrules.OrphanGapRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	return s.writeRule(ctx, rule.PropertyID, func(repo domainrules.Repository) error {
		return repo.AddOrphanGap(ctx, rule)
	})
}

func (s *Service) writeRule(ctx context.Context, propertyID domaincatalog.PropertyID, write func(domainrules.Repository) error) error {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	if _, err := unit.Properties().ByID(ctx, propertyID); err != nil {
		return err
	}
	if err := write(unit.Rules()); err != nil {
		return err
	}
	if err := unit.Commit(ctx); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
