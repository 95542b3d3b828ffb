package memory

import (
	"context"

	"casita/internal/app/uow"
	"casita/internal/domain/availability"
	"casita/internal/domain/catalog"
	"casita/internal/domain/reservation"
	"casita/internal/domain/rules"
)

// Factory hands out units of work over shared in-memory repositories. There
// is no real transaction; Commit and Rollback are no-ops. Suitable for tests
// and the demo store mode only.
type Factory struct {
	Properties   *PropertyRepository
	Units        *UnitRepository
	Rules        *RuleRepository
	Reservations *ReservationRepository
	Availability *AvailabilityRepository
	SmartPricing *SmartPricingRepository
}

func NewFactory() *Factory {
	return &Factory{
		Properties:   NewPropertyRepository(),
		Units:        NewUnitRepository(),
		Rules:        NewRuleRepository(),
		Reservations: NewReservationRepository(),
		Availability: NewAvailabilityRepository(),
		SmartPricing: NewSmartPricingRepository(),
	}
}

func (f *Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	return &unit{factory: f}, nil
}

type unit struct {
	factory *Factory
}

func (u *unit) Properties() catalog.PropertyRepository { return u.factory.Properties }
func (u *unit) Units() catalog.UnitRepository          { return u.factory.Units }
func (u *unit) Rules() rules.Repository                { return u.factory.Rules }
func (u *unit) Reservations() reservation.Repository   { return u.factory.Reservations }
func (u *unit) Availability() availability.Repository  { return u.factory.Availability }
func (u *unit) Commit(ctx context.Context) error       { return nil }
func (u *unit) Rollback(ctx context.Context) error     { return nil }
