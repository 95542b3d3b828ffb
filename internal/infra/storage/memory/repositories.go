package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainavailability "casita/internal/domain/availability"
	domaincatalog "casita/internal/domain/catalog"
	domainreservation "casita/internal/domain/reservation"
	domainrules "casita/internal/domain/rules"
	"casita/internal/domain/shared/dates"
)

// PropertyRepository is an in-memory implementation for tests and the demo
// store mode.
type PropertyRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[domaincatalog.PropertyID]*domaincatalog.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: make(map[domaincatalog.PropertyID]*domaincatalog.Property)}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domaincatalog.PropertyID) (*domaincatalog.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	property, ok := r.items[id]
	if !ok {
		return nil, domaincatalog.ErrPropertyNotFound
	}
	clone := *property
	return &clone, nil
}

func (r *PropertyRepository) Save(ctx context.Context, property *domaincatalog.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if property.ID == 0 {
		r.seq++
		property.ID = domaincatalog.PropertyID(r.seq)
	}
	clone := *property
	r.items[property.ID] = &clone
	return nil
}

func (r *PropertyRepository) List(ctx context.Context, activeOnly bool) ([]*domaincatalog.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domaincatalog.Property, 0, len(r.items))
	for _, property := range r.items {
		if activeOnly && !property.IsActive {
			continue
		}
		clone := *property
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UnitRepository keeps child units in memory.
type UnitRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[domaincatalog.UnitID]*domaincatalog.Unit
}

func NewUnitRepository() *UnitRepository {
	return &UnitRepository{items: make(map[domaincatalog.UnitID]*domaincatalog.Unit)}
}

func (r *UnitRepository) ByID(ctx context.Context, id domaincatalog.UnitID) (*domaincatalog.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	unit, ok := r.items[id]
	if !ok {
		return nil, domaincatalog.ErrUnitNotFound
	}
	clone := *unit
	return &clone, nil
}

func (r *UnitRepository) ByProperty(ctx context.Context, id domaincatalog.PropertyID) ([]*domaincatalog.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domaincatalog.Unit, 0)
	for _, unit := range r.items {
		if unit.PropertyID == id {
			clone := *unit
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UnitRepository) Save(ctx context.Context, unit *domaincatalog.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if unit.ID == 0 {
		r.seq++
		unit.ID = domaincatalog.UnitID(r.seq)
	}
	clone := *unit
	r.items[unit.ID] = &clone
	return nil
}

// RuleRepository keeps all four rule variants in memory. Day-of-week writes
// are upserts keyed by (property, weekday).
type RuleRepository struct {
	mu         sync.RWMutex
	seq        int64
	seasonal   map[domaincatalog.PropertyID][]domainrules.SeasonalRule
	dayOfWeek  map[domaincatalog.PropertyID]map[int]domainrules.DayOfWeekRule
	lastMinute map[domaincatalog.PropertyID][]domainrules.LastMinuteRule
	orphanGap  map[domaincatalog.PropertyID][]domainrules.OrphanGapRule
}

func NewRuleRepository() *RuleRepository {
	return &RuleRepository{
		seasonal:   make(map[domaincatalog.PropertyID][]domainrules.SeasonalRule),
		dayOfWeek:  make(map[domaincatalog.PropertyID]map[int]domainrules.DayOfWeekRule),
		lastMinute: make(map[domaincatalog.PropertyID][]domainrules.LastMinuteRule),
		orphanGap:  make(map[domaincatalog.PropertyID][]domainrules.OrphanGapRule),
	}
}

func (r *RuleRepository) Seasonal(ctx context.Context, propertyID domaincatalog.PropertyID) ([]domainrules.SeasonalRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domainrules.SeasonalRule(nil), r.seasonal[propertyID]...), nil
}

func (r *RuleRepository) DayOfWeek(ctx context.Context, propertyID domaincatalog.PropertyID, weekday int) (*domainrules.DayOfWeekRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byDay, ok := r.dayOfWeek[propertyID]
	if !ok {
		return nil, nil
	}
	rule, ok := byDay[weekday]
	if !ok {
		return nil, nil
	}
	return &rule, nil
}

func (r *RuleRepository) LastMinute(ctx context.Context, propertyID domaincatalog.PropertyID) ([]domainrules.LastMinuteRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domainrules.LastMinuteRule(nil), r.lastMinute[propertyID]...), nil
}

func (r *RuleRepository) OrphanGap(ctx context.Context, propertyID domaincatalog.PropertyID) ([]domainrules.OrphanGapRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domainrules.OrphanGapRule(nil), r.orphanGap[propertyID]...), nil
}

func (r *RuleRepository) AddSeasonal(ctx context.Context, rule *domainrules.SeasonalRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rule.ID = r.seq
	r.seasonal[rule.PropertyID] = append(r.seasonal[rule.PropertyID], *rule)
	return nil
}

func (r *RuleRepository) UpsertDayOfWeek(ctx context.Context, rule *domainrules.DayOfWeekRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byDay, ok := r.dayOfWeek[rule.PropertyID]
	if !ok {
		byDay = make(map[int]domainrules.DayOfWeekRule)
		r.dayOfWeek[rule.PropertyID] = byDay
	}
	if existing, ok := byDay[rule.DayOfWeek]; ok {
		rule.ID = existing.ID
	} else {
		r.seq++
		rule.ID = r.seq
	}
	byDay[rule.DayOfWeek] = *rule
	return nil
}

func (r *RuleRepository) AddLastMinute(ctx context.Context, rule *domainrules.LastMinuteRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rule.ID = r.seq
	r.lastMinute[rule.PropertyID] = append(r.lastMinute[rule.PropertyID], *rule)
	return nil
}

func (r *RuleRepository) AddOrphanGap(ctx context.Context, rule *domainrules.OrphanGapRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rule.ID = r.seq
	r.orphanGap[rule.PropertyID] = append(r.orphanGap[rule.PropertyID], *rule)
	return nil
}

// ReservationRepository stores reservations in memory.
type ReservationRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[domainreservation.ID]*domainreservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[domainreservation.ID]*domainreservation.Reservation)}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ID) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domainreservation.ErrNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res.ID == 0 {
		r.seq++
		res.ID = domainreservation.ID(r.seq)
	}
	clone := *res
	r.items[res.ID] = &clone
	return nil
}

func (r *ReservationRepository) List(ctx context.Context, filter domainreservation.Filter) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainreservation.Reservation, 0)
	for _, res := range r.items {
		if filter.UnitID != 0 && res.UnitID != filter.UnitID {
			continue
		}
		if filter.PropertyID != 0 && res.PropertyID != filter.PropertyID {
			continue
		}
		if !filter.Start.IsZero() && res.Stay.CheckOut.Before(dates.Day(filter.Start)) {
			continue
		}
		if !filter.End.IsZero() && res.Stay.CheckIn.After(dates.Day(filter.End)) {
			continue
		}
		clone := *res
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stay.CheckIn.Before(out[j].Stay.CheckIn) })
	return out, nil
}

func (r *ReservationRepository) CoveringDate(ctx context.Context, propertyID domaincatalog.PropertyID, date time.Time) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	day := dates.Day(date)
	out := make([]*domainreservation.Reservation, 0)
	for _, res := range r.items {
		if res.PropertyID != propertyID || res.Status != domainreservation.StatusConfirmed {
			continue
		}
		if !res.Stay.ContainsDate(day) {
			continue
		}
		clone := *res
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AvailabilityRepository keeps the denormalized pricing calendar in memory,
// keyed by unit and civil date.
type AvailabilityRepository struct {
	mu      sync.RWMutex
	entries map[domaincatalog.UnitID]map[string]domainavailability.DayEntry
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{entries: make(map[domaincatalog.UnitID]map[string]domainavailability.DayEntry)}
}

func (r *AvailabilityRepository) BlockDates(ctx context.Context, unitID domaincatalog.UnitID, days []time.Time, reason domainavailability.BlockReason) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byDay := r.unitEntries(unitID)
	now := time.Now().UTC()
	for _, day := range days {
		key := dates.Format(day)
		entry := byDay[key]
		entry.UnitID = unitID
		entry.Date = dates.Day(day)
		entry.IsAvailable = false
		entry.IsBlocked = true
		entry.BlockReason = reason
		entry.UpdatedAt = now
		byDay[key] = entry
	}
	return nil
}

func (r *AvailabilityRepository) SetBasePriceFrom(ctx context.Context, unitID domaincatalog.UnitID, price float64, from time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byDay := r.unitEntries(unitID)
	cutoff := dates.Day(from)
	now := time.Now().UTC()
	for key, entry := range byDay {
		if entry.Date.Before(cutoff) {
			continue
		}
		entry.BasePrice = price
		entry.UpdatedAt = now
		byDay[key] = entry
	}
	return nil
}

func (r *AvailabilityRepository) Entries(ctx context.Context, unitID domaincatalog.UnitID, stay dates.StayRange) ([]domainavailability.DayEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byDay := r.entries[unitID]
	out := make([]domainavailability.DayEntry, 0)
	for _, entry := range byDay {
		if stay.ContainsDate(entry.Date) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *AvailabilityRepository) BlockedDates(ctx context.Context, unitID domaincatalog.UnitID, stay dates.StayRange) ([]time.Time, error) {
	entries, err := r.Entries(ctx, unitID, stay)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0)
	for _, entry := range entries {
		if entry.IsBlocked {
			out = append(out, entry.Date)
		}
	}
	return out, nil
}

func (r *AvailabilityRepository) unitEntries(unitID domaincatalog.UnitID) map[string]domainavailability.DayEntry {
	byDay, ok := r.entries[unitID]
	if !ok {
		byDay = make(map[string]domainavailability.DayEntry)
		r.entries[unitID] = byDay
	}
	return byDay
}

// SmartPricingRepository records smart-pricing syncs in memory.
type SmartPricingRepository struct {
	mu    sync.RWMutex
	seq   int64
	items []domaincatalog.SmartPricingSync

	// Clock feeds the history cutoff; tests pin it.
	Clock func() time.Time
}

func NewSmartPricingRepository() *SmartPricingRepository {
	return &SmartPricingRepository{Clock: time.Now}
}

func (r *SmartPricingRepository) Record(ctx context.Context, sync *domaincatalog.SmartPricingSync) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	sync.ID = r.seq
	r.items = append(r.items, *sync)
	return nil
}

func (r *SmartPricingRepository) History(ctx context.Context, propertyID domaincatalog.PropertyID, days int) ([]domaincatalog.SmartPricingSync, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cutoff := dates.Day(r.Clock()).AddDate(0, 0, -days)
	out := make([]domaincatalog.SmartPricingSync, 0)
	for _, item := range r.items {
		if item.PropertyID != propertyID || item.SyncDate.Before(cutoff) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SyncDate.After(out[j].SyncDate) })
	return out, nil
}
