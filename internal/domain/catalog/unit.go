package catalog

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrUnitNotFound       = errors.New("catalog: unit not found")
	ErrUnitNameRequired   = errors.New("catalog: unit name is required")
	ErrUnknownModifier    = errors.New("catalog: unknown price modifier type")
	ErrPropertyIDRequired = errors.New("catalog: unit must belong to a property")
)

type UnitID int64

type ModifierType string

const (
	ModifierPercent ModifierType = "percent"
	ModifierFixed   ModifierType = "fixed"
)

// Unit is a child listing. When InheritParentPricing is set its base price
// is always derived from the parent's current base price and the modifier;
// the unit never owns an authoritative base of its own.
type Unit struct {
	ID                   UnitID
	PropertyID           PropertyID
	Name                 string
	UnitType             string
	InheritParentPricing bool
	PriceModifier        float64
	PriceModifierType    ModifierType
	CustomBasePrice      float64
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type UnitRepository interface {
	ByID(ctx context.Context, id UnitID) (*Unit, error)
	ByProperty(ctx context.Context, id PropertyID) ([]*Unit, error)
	Save(ctx context.Context, unit *Unit) error
}

type CreateUnitParams struct {
	PropertyID           PropertyID
	Name                 string
	UnitType             string
	InheritParentPricing bool
	PriceModifier        float64
	PriceModifierType    ModifierType
	CustomBasePrice      float64
	Now                  time.Time
}

func NewUnit(params CreateUnitParams) (*Unit, error) {
	if params.PropertyID == 0 {
		return nil, ErrPropertyIDRequired
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrUnitNameRequired
	}
	modifierType := params.PriceModifierType
	if modifierType == "" {
		modifierType = ModifierPercent
	}
	if modifierType != ModifierPercent && modifierType != ModifierFixed {
		return nil, ErrUnknownModifier
	}
	now := params.Now.UTC()
	return &Unit{
		PropertyID:           params.PropertyID,
		Name:                 strings.TrimSpace(params.Name),
		UnitType:             strings.TrimSpace(params.UnitType),
		InheritParentPricing: params.InheritParentPricing,
		PriceModifier:        params.PriceModifier,
		PriceModifierType:    modifierType,
		CustomBasePrice:      params.CustomBasePrice,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// SetPriceModifier adjusts how the unit derives its price from the parent.
func (u *Unit) SetPriceModifier(modifier float64, modifierType ModifierType, now time.Time) error {
	if modifierType != ModifierPercent && modifierType != ModifierFixed {
		return ErrUnknownModifier
	}
	u.PriceModifier = modifier
	u.PriceModifierType = modifierType
	u.UpdatedAt = now.UTC()
	return nil
}

// EffectiveBasePrice computes the unit's base price given the parent's
// current base. For non-inheriting units the custom base wins and the
// parent price is ignored.
func (u *Unit) EffectiveBasePrice(parentBase float64) float64 {
	if !u.InheritParentPricing {
		return u.CustomBasePrice
	}
	switch u.PriceModifierType {
	case ModifierFixed:
		return parentBase + u.PriceModifier
	default:
		return parentBase * (1 + u.PriceModifier/100)
	}
}
