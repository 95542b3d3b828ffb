package reservation

import (
	"context"
	"errors"
	"strconv"
	"time"

	"casita/internal/domain/catalog"
	"casita/internal/domain/shared/dates"
	"casita/internal/domain/shared/events"
)

var (
	ErrNotFound     = errors.New("reservation: not found")
	ErrInvalidRange = errors.New("reservation: stay must cover at least one night")
	ErrZeroUnit     = errors.New("reservation: unit id required")
)

type ID int64

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Reservation is a booked stay. TotalPrice is the point-in-time quote summed
// at creation; it is never recomputed when rules or base prices change later.
type Reservation struct {
	ID         ID
	UnitID     catalog.UnitID
	PropertyID catalog.PropertyID
	Stay       dates.StayRange
	Nights     int
	TotalPrice float64
	GuestName  string
	Channel    string
	Status     Status
	CreatedAt  time.Time
	events.EventRecorder
}

type CreateParams struct {
	UnitID     catalog.UnitID
	PropertyID catalog.PropertyID
	Stay       dates.StayRange
	TotalPrice float64
	GuestName  string
	Channel    string
	Now        time.Time
}

func New(params CreateParams) (*Reservation, error) {
	if params.UnitID == 0 {
		return nil, ErrZeroUnit
	}
	if err := params.Stay.Validate(); err != nil {
		return nil, ErrInvalidRange
	}
	r := &Reservation{
		UnitID:     params.UnitID,
		PropertyID: params.PropertyID,
		Stay:       params.Stay,
		Nights:     params.Stay.Nights(),
		TotalPrice: params.TotalPrice,
		GuestName:  params.GuestName,
		Channel:    params.Channel,
		Status:     StatusConfirmed,
		CreatedAt:  params.Now.UTC(),
	}
	r.Record(Created{UnitID: r.UnitID, Stay: r.Stay, TotalPrice: r.TotalPrice, At: r.CreatedAt})
	return r, nil
}

// NightlyRevenue spreads the booked total evenly across the stay's nights.
func (r *Reservation) NightlyRevenue() float64 {
	if r.Nights <= 0 {
		return 0
	}
	return r.TotalPrice / float64(r.Nights)
}

// Filter narrows reservation listings. Zero values mean "any".
type Filter struct {
	UnitID     catalog.UnitID
	PropertyID catalog.PropertyID
	Start      time.Time // stays checking out on/after this date
	End        time.Time // stays checking in on/before this date
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
	List(ctx context.Context, filter Filter) ([]*Reservation, error)
	// CoveringDate returns the confirmed reservations of a property whose
	// stay contains the given night.
	CoveringDate(ctx context.Context, propertyID catalog.PropertyID, date time.Time) ([]*Reservation, error)
}

// Created is raised when a stay is booked and its calendar dates blocked.
type Created struct {
	UnitID     catalog.UnitID
	Stay       dates.StayRange
	TotalPrice float64
	At         time.Time
}

func (e Created) EventName() string     { return "reservation.created" }
func (e Created) AggregateID() string   { return strconv.FormatInt(int64(e.UnitID), 10) }
func (e Created) OccurredAt() time.Time { return e.At }
