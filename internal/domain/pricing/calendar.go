package pricing

import (
	"context"
	"time"

	"casita/internal/domain/catalog"
	"casita/internal/domain/shared/dates"
)

const (
	// DefaultCalendarDays keeps a full year ahead open when the caller
	// gives no explicit range.
	DefaultCalendarDays = 365
	// MaxCalendarDays caps any requested horizon at two years. Longer
	// requests are truncated silently, never rejected.
	MaxCalendarDays = 730
)

// CalendarRequest selects the generation window. End (when set) overrides
// Days; Start defaults to today; Days defaults to DefaultCalendarDays.
type CalendarRequest struct {
	Start time.Time
	End   time.Time
	Days  int
}

// Calendar drives the compositor over a date range and returns one quote
// per day in strictly increasing order. A quote failure on a single day
// skips that day; the sequence is regenerated fresh on every call.
func (e *Engine) Calendar(ctx context.Context, unitID catalog.UnitID, req CalendarRequest) ([]Quote, error) {
	// Surface a missing unit once rather than silently emitting nothing.
	if _, err := e.Units.ByID(ctx, unitID); err != nil {
		return nil, err
	}

	days := req.Days
	if days <= 0 {
		days = DefaultCalendarDays
	}
	start := req.Start
	if start.IsZero() {
		start = e.now()
	}
	start = dates.Day(start)
	if !req.End.IsZero() {
		days = dates.DaysBetween(start, dates.Day(req.End)) + 1
	}
	if max := e.maxDays(); days > max {
		days = max
	}

	quotes := make([]Quote, 0, max(days, 0))
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		quote, err := e.Quote(ctx, unitID, day)
		if err != nil {
			if e.Logger != nil {
				e.Logger.Warn("calendar day skipped", "unit_id", unitID, "date", dates.Format(day), "error", err)
			}
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

// MonthlyCalendar prices one month, clipped forward to today. A month
// entirely in the past yields an empty calendar.
func (e *Engine) MonthlyCalendar(ctx context.Context, unitID catalog.UnitID, year int, month time.Month) ([]Quote, error) {
	start, end := dates.MonthBounds(year, month)
	return e.clippedCalendar(ctx, unitID, start, end)
}

// YearlyCalendar prices a full calendar year, clipped forward to today.
func (e *Engine) YearlyCalendar(ctx context.Context, unitID catalog.UnitID, year int) ([]Quote, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return e.clippedCalendar(ctx, unitID, start, end)
}

func (e *Engine) clippedCalendar(ctx context.Context, unitID catalog.UnitID, start, end time.Time) ([]Quote, error) {
	today := dates.Day(e.now())
	if start.Before(today) {
		start = today
		if start.After(end) {
			// Requested period is entirely behind us; past dates are
			// never quoted.
			return []Quote{}, nil
		}
	}
	return e.Calendar(ctx, unitID, CalendarRequest{Start: start, End: end})
}

func (e *Engine) maxDays() int {
	if e.MaxCalendarDays > 0 {
		return e.MaxCalendarDays
	}
	return MaxCalendarDays
}
