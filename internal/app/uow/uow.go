package uow

import (
	"context"

	domainavailability "casita/internal/domain/availability"
	domaincatalog "casita/internal/domain/catalog"
	domainreservation "casita/internal/domain/reservation"
	domainrules "casita/internal/domain/rules"
)

// UnitOfWork coordinates the pricing stores inside one transaction
// boundary. Cascades and bookings require it: a reader must never observe
// a property's new base price alongside a unit's stale calendar projection,
// nor a reservation without its calendar block.
type UnitOfWork interface {
	Properties() domaincatalog.PropertyRepository
	Units() domaincatalog.UnitRepository
	Rules() domainrules.Repository
	Reservations() domainreservation.Repository
	Availability() domainavailability.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory starts unit of work instances.
type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
