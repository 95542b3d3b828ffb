package dates

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("dates: check-out must be after check-in")

// ISO is the wire format for calendar dates.
const ISO = "2006-01-02"

// Day truncates a timestamp to its civil date at UTC midnight. All pricing
// math operates on days, never on clock times.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Parse reads a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISO, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Format renders a date as YYYY-MM-DD.
func Format(t time.Time) string {
	return Day(t).Format(ISO)
}

// DaysBetween returns the whole-day distance from one date to another.
// Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)) / (24 * time.Hour))
}

// Weekday maps a date onto the Monday-based 0..6 scheme used by the
// day-of-week pricing rules.
func Weekday(t time.Time) int {
	wd := int(Day(t).Weekday())
	if wd == 0 {
		return 6 // Sunday
	}
	return wd - 1
}

// MonthBounds returns the first and last civil day of a month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// StayRange is a half-open interval [CheckIn, CheckOut) of civil dates.
type StayRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewStayRange normalizes both endpoints to civil dates and validates that
// the stay covers at least one night.
func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	r := StayRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if err := r.Validate(); err != nil {
		return StayRange{}, err
	}
	return r, nil
}

func (r StayRange) Validate() error {
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !r.CheckOut.After(r.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights is the number of bookable nights, always positive for a valid range.
func (r StayRange) Nights() int {
	return DaysBetween(r.CheckIn, r.CheckOut)
}

// ContainsDate reports whether the night starting at t falls inside the stay.
func (r StayRange) ContainsDate(t time.Time) bool {
	d := Day(t)
	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

func (r StayRange) Overlaps(other StayRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Dates enumerates each night of the stay in order, check-out excluded.
func (r StayRange) Dates() []time.Time {
	nights := r.Nights()
	if nights <= 0 {
		return nil
	}
	out := make([]time.Time, 0, nights)
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
