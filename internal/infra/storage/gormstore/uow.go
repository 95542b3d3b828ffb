package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"casita/internal/app/uow"
	"casita/internal/domain/availability"
	"casita/internal/domain/catalog"
	"casita/internal/domain/reservation"
	"casita/internal/domain/rules"
	"casita/internal/infra/storage"
)

// Factory starts database-backed units of work. Every Begin opens a real
// transaction; the ReadOnly hint does not change isolation, it only
// documents intent at call sites.
type Factory struct {
	db *gorm.DB
}

func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

func (f *Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	tx := f.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, tx.Error)
	}
	return &unit{tx: tx}, nil
}

type unit struct {
	tx   *gorm.DB
	done bool
}

func (u *unit) Properties() catalog.PropertyRepository { return PropertyRepository{db: u.tx} }
func (u *unit) Units() catalog.UnitRepository          { return UnitRepository{db: u.tx} }
func (u *unit) Rules() rules.Repository                { return RuleRepository{db: u.tx} }
func (u *unit) Reservations() reservation.Repository   { return ReservationRepository{db: u.tx} }
func (u *unit) Availability() availability.Repository  { return AvailabilityRepository{db: u.tx} }

func (u *unit) Commit(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Commit().Error; err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

func (u *unit) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Rollback().Error; err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}
