package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"casita/internal/domain/shared/events"
	"casita/internal/domain/shared/money"
)

var (
	ErrPropertyNotFound = errors.New("catalog: property not found")
	ErrNameRequired     = errors.New("catalog: property name is required")
	ErrNegativePrice    = errors.New("catalog: prices must be non-negative")
	ErrPriceBounds      = errors.New("catalog: min price must not exceed max price")
)

type PropertyID int64

// Property is a parent listing. Child units inherit its base price unless
// they opt out with a custom base price.
type Property struct {
	ID        PropertyID
	Name      string
	Nickname  string
	City      string
	State     string
	BasePrice float64
	MinPrice  float64
	MaxPrice  float64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	events.EventRecorder
}

type PropertyRepository interface {
	ByID(ctx context.Context, id PropertyID) (*Property, error)
	Save(ctx context.Context, property *Property) error
	List(ctx context.Context, activeOnly bool) ([]*Property, error)
}

type CreatePropertyParams struct {
	Name      string
	Nickname  string
	City      string
	State     string
	BasePrice float64
	MinPrice  float64
	MaxPrice  float64
	Now       time.Time
}

func NewProperty(params CreatePropertyParams) (*Property, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if err := validateBounds(params.BasePrice, params.MinPrice, params.MaxPrice); err != nil {
		return nil, err
	}
	now := params.Now.UTC()
	return &Property{
		Name:      strings.TrimSpace(params.Name),
		Nickname:  strings.TrimSpace(params.Nickname),
		City:      strings.TrimSpace(params.City),
		State:     strings.TrimSpace(params.State),
		BasePrice: params.BasePrice,
		MinPrice:  params.MinPrice,
		MaxPrice:  params.MaxPrice,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdatePricing replaces the property's base price and bounds. Callers must
// follow up with a cascade so inheriting units see the new base.
func (p *Property) UpdatePricing(base, min, max float64, now time.Time) error {
	if err := validateBounds(base, min, max); err != nil {
		return err
	}
	old := p.BasePrice
	p.BasePrice = base
	p.MinPrice = min
	p.MaxPrice = max
	p.UpdatedAt = now.UTC()
	p.Record(BasePriceChanged{PropertyID: p.ID, OldPrice: old, NewPrice: base, At: p.UpdatedAt})
	return nil
}

// Bounds returns the clamp window, substituting defaults for unset values.
func (p *Property) Bounds() (min, max float64) {
	min = p.MinPrice
	max = p.MaxPrice
	if max <= 0 {
		max = money.MaxPrice
	}
	return min, max
}

func validateBounds(base, min, max float64) error {
	if base < 0 || min < 0 || max < 0 {
		return ErrNegativePrice
	}
	if max > 0 && min > max {
		return ErrPriceBounds
	}
	return nil
}
