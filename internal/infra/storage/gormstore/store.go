package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"casita/internal/domain/availability"
	"casita/internal/domain/catalog"
	"casita/internal/domain/reservation"
	"casita/internal/domain/rules"
	"casita/internal/domain/shared/dates"
	"casita/internal/infra/storage"
)

// wrap maps gorm's not-found onto the domain sentinel and everything else
// onto storage.ErrUnavailable.
func wrap(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
}

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository { return PropertyRepository{db: db} }

func (r PropertyRepository) ByID(ctx context.Context, id catalog.PropertyID) (*catalog.Property, error) {
	var model propertyModel
	err := r.db.WithContext(ctx).First(&model, int64(id)).Error
	if err != nil {
		return nil, wrap(err, catalog.ErrPropertyNotFound)
	}
	return model.toDomain(), nil
}

func (r PropertyRepository) Save(ctx context.Context, property *catalog.Property) error {
	model := toPropertyModel(property)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return wrap(err, catalog.ErrPropertyNotFound)
	}
	property.ID = catalog.PropertyID(model.ID)
	return nil
}

func (r PropertyRepository) List(ctx context.Context, activeOnly bool) ([]*catalog.Property, error) {
	query := r.db.WithContext(ctx).Order("id")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var models []propertyModel
	if err := query.Find(&models).Error; err != nil {
		return nil, wrap(err, catalog.ErrPropertyNotFound)
	}
	out := make([]*catalog.Property, 0, len(models))
	for _, model := range models {
		out = append(out, model.toDomain())
	}
	return out, nil
}

type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) UnitRepository { return UnitRepository{db: db} }

func (r UnitRepository) ByID(ctx context.Context, id catalog.UnitID) (*catalog.Unit, error) {
	var model unitModel
	err := r.db.WithContext(ctx).First(&model, int64(id)).Error
	if err != nil {
		return nil, wrap(err, catalog.ErrUnitNotFound)
	}
	return model.toDomain(), nil
}

func (r UnitRepository) ByProperty(ctx context.Context, id catalog.PropertyID) ([]*catalog.Unit, error) {
	var models []unitModel
	err := r.db.WithContext(ctx).Where("property_id = ?", int64(id)).Order("id").Find(&models).Error
	if err != nil {
		return nil, wrap(err, catalog.ErrUnitNotFound)
	}
	out := make([]*catalog.Unit, 0, len(models))
	for _, model := range models {
		out = append(out, model.toDomain())
	}
	return out, nil
}

func (r UnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	model := toUnitModel(unit)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return wrap(err, catalog.ErrUnitNotFound)
	}
	unit.ID = catalog.UnitID(model.ID)
	return nil
}

type RuleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) RuleRepository { return RuleRepository{db: db} }

func (r RuleRepository) Seasonal(ctx context.Context, propertyID catalog.PropertyID) ([]rules.SeasonalRule, error) {
	var models []seasonalRuleModel
	err := r.db.WithContext(ctx).Where("property_id = ?", int64(propertyID)).Order("id").Find(&models).Error
	if err != nil {
		return nil, wrap(err, rules.ErrInvalidRule)
	}
	out := make([]rules.SeasonalRule, 0, len(models))
	for _, model := range models {
		out = append(out, model.toDomain())
	}
	return out, nil
}

func (r RuleRepository) DayOfWeek(ctx context.Context, propertyID catalog.PropertyID, weekday int) (*rules.DayOfWeekRule, error) {
	var model dayOfWeekRuleModel
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND day_of_week = ?", int64(propertyID), weekday).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, rules.ErrInvalidRule)
	}
	rule := model.toDomain()
	return &rule, nil
}

func (r RuleRepository) LastMinute(ctx context.Context, propertyID catalog.PropertyID) ([]rules.LastMinuteRule, error) {
	var models []lastMinuteRuleModel
	err := r.db.WithContext(ctx).Where("property_id = ?", int64(propertyID)).Order("id").Find(&models).Error
	if err != nil {
		return nil, wrap(err, rules.ErrInvalidRule)
	}
	out := make([]rules.LastMinuteRule, 0, len(models))
	for _, model := range models {
		out = append(out, model.toDomain())
	}
	return out, nil
}

func (r RuleRepository) OrphanGap(ctx context.Context, propertyID catalog.PropertyID) ([]rules.OrphanGapRule, error) {
	var models []orphanGapRuleModel
	err := r.db.WithContext(ctx).Where("property_id = ?", int64(propertyID)).Order("id").Find(&models).Error
	if err != nil {
		return nil, wrap(err, rules.ErrInvalidRule)
	}
	out := make([]rules.OrphanGapRule, 0, len(models))
	for _, model := range models {
		out = append(out, model.toDomain())
	}
	return out, nil
}

func (r RuleRepository) AddSeasonal(ctx context.Context, rule *rules.SeasonalRule) error {
	model := seasonalRuleModel{
		PropertyID:      int64(rule.PropertyID),
		SeasonName:      rule.SeasonName,
		StartDate:       dates.Day(rule.StartDate),
		EndDate:         dates.Day(rule.EndDate),
		AdjustmentType:  string(rule.AdjustmentType),
		AdjustmentValue: rule.AdjustmentValue,
		MinNights:       rule.MinNights,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrap(err, rules.ErrInvalidRule)
	}
	rule.ID = model.ID
	return nil
}

func (r RuleRepository) UpsertDayOfWeek(ctx context.Context, rule *rules.DayOfWeekRule) error {
	model := dayOfWeekRuleModel{
		PropertyID:      int64(rule.PropertyID),
		DayOfWeek:       rule.DayOfWeek,
		AdjustmentType:  string(rule.AdjustmentType),
		AdjustmentValue: rule.AdjustmentValue,
		MinNights:       rule.MinNights,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "property_id"}, {Name: "day_of_week"}},
		DoUpdates: clause.AssignmentColumns([]string{"adjustment_type", "adjustment_value", "min_nights"}),
	}).Create(&model).Error
	if err != nil {
		return wrap(err, rules.ErrInvalidRule)
	}
	// Conflict resolution keeps the original row id, so read it back.
	var saved dayOfWeekRuleModel
	err = r.db.WithContext(ctx).
		Where("property_id = ? AND day_of_week = ?", model.PropertyID, model.DayOfWeek).
		First(&saved).Error
	if err != nil {
		return wrap(err, rules.ErrInvalidRule)
	}
	rule.ID = saved.ID
	return nil
}

func (r RuleRepository) AddLastMinute(ctx context.Context, rule *rules.LastMinuteRule) error {
	model := lastMinuteRuleModel{
		PropertyID:        int64(rule.PropertyID),
		DaysBeforeCheckIn: rule.DaysBeforeCheckIn,
		AdjustmentValue:   rule.AdjustmentValue,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrap(err, rules.ErrInvalidRule)
	}
	rule.ID = model.ID
	return nil
}

func (r RuleRepository) AddOrphanGap(ctx context.Context, rule *rules.OrphanGapRule) error {
	model := orphanGapRuleModel{
		PropertyID:      int64(rule.PropertyID),
		GapNights:       rule.GapNights,
		AdjustmentValue: rule.AdjustmentValue,
		ReduceMinStay:   rule.ReduceMinStay,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrap(err, rules.ErrInvalidRule)
	}
	rule.ID = model.ID
	return nil
}

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return ReservationRepository{db: db}
}

func (r ReservationRepository) ByID(ctx context.Context, id reservation.ID) (*reservation.Reservation, error) {
	var model reservationModel
	err := r.db.WithContext(ctx).First(&model, int64(id)).Error
	if err != nil {
		return nil, wrap(err, reservation.ErrNotFound)
	}
	return model.toDomain(), nil
}

func (r ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	model := toReservationModel(res)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return wrap(err, reservation.ErrNotFound)
	}
	res.ID = reservation.ID(model.ID)
	return nil
}

func (r ReservationRepository) List(ctx context.Context, filter reservation.Filter) ([]*reservation.Reservation, error) {
	query := r.db.WithContext(ctx).Order("check_in")
	if filter.UnitID != 0 {
		query = query.Where("unit_id = ?", int64(filter.UnitID))
	}
	if filter.PropertyID != 0 {
		query = query.Where("property_id = ?", int64(filter.PropertyID))
	}
	if !filter.Start.IsZero() {
		query = query.Where("check_out >= ?", dates.Day(filter.Start))
	}
	if !filter.End.IsZero() {
		query = query.Where("check_in <= ?", dates.Day(filter.End))
	}
	var models []reservationModel
	if err := query.Find(&models).Error; err != nil {
		return nil, wrap(err, reservation.ErrNotFound)
	}
	out := make([]*reservation.Reservation, 0, len(models))
	for _, model := range models {
		out = append(out, model.toDomain())
	}
	return out, nil
}

func (r ReservationRepository) CoveringDate(ctx context.Context, propertyID catalog.PropertyID, date time.Time) ([]*reservation.Reservation, error) {
	day := dates.Day(date)
	var models []reservationModel
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND status = ? AND check_in <= ? AND check_out > ?",
			int64(propertyID), string(reservation.StatusConfirmed), day, day).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, wrap(err, reservation.ErrNotFound)
	}
	out := make([]*reservation.Reservation, 0, len(models))
	for _, model := range models {
		out = append(out, model.toDomain())
	}
	return out, nil
}

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return AvailabilityRepository{db: db}
}

func (r AvailabilityRepository) BlockDates(ctx context.Context, unitID catalog.UnitID, days []time.Time, reason availability.BlockReason) error {
	if len(days) == 0 {
		return nil
	}
	now := time.Now().UTC()
	models := make([]calendarDayModel, 0, len(days))
	for _, day := range days {
		models = append(models, calendarDayModel{
			UnitID:      int64(unitID),
			Date:        dates.Day(day),
			IsAvailable: false,
			IsBlocked:   true,
			BlockReason: string(reason),
			UpdatedAt:   now,
		})
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unit_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_available", "is_blocked", "block_reason", "updated_at"}),
	}).Create(&models).Error
	return wrap(err, availability.ErrCalendarWrite)
}

func (r AvailabilityRepository) SetBasePriceFrom(ctx context.Context, unitID catalog.UnitID, price float64, from time.Time) error {
	err := r.db.WithContext(ctx).Model(&calendarDayModel{}).
		Where("unit_id = ? AND date >= ?", int64(unitID), dates.Day(from)).
		Updates(map[string]any{"base_price": price, "updated_at": time.Now().UTC()}).Error
	return wrap(err, availability.ErrCalendarWrite)
}

func (r AvailabilityRepository) Entries(ctx context.Context, unitID catalog.UnitID, stay dates.StayRange) ([]availability.DayEntry, error) {
	var models []calendarDayModel
	err := r.db.WithContext(ctx).
		Where("unit_id = ? AND date >= ? AND date < ?", int64(unitID), stay.CheckIn, stay.CheckOut).
		Order("date").
		Find(&models).Error
	if err != nil {
		return nil, wrap(err, availability.ErrCalendarWrite)
	}
	out := make([]availability.DayEntry, 0, len(models))
	for _, model := range models {
		out = append(out, model.toDomain())
	}
	return out, nil
}

func (r AvailabilityRepository) BlockedDates(ctx context.Context, unitID catalog.UnitID, stay dates.StayRange) ([]time.Time, error) {
	var models []calendarDayModel
	err := r.db.WithContext(ctx).
		Where("unit_id = ? AND is_blocked = ? AND date >= ? AND date < ?", int64(unitID), true, stay.CheckIn, stay.CheckOut).
		Order("date").
		Find(&models).Error
	if err != nil {
		return nil, wrap(err, availability.ErrCalendarWrite)
	}
	out := make([]time.Time, 0, len(models))
	for _, model := range models {
		out = append(out, dates.Day(model.Date))
	}
	return out, nil
}

type SmartPricingRepository struct {
	db *gorm.DB

	// Clock feeds the history cutoff; tests pin it.
	Clock func() time.Time
}

func NewSmartPricingRepository(db *gorm.DB) SmartPricingRepository {
	return SmartPricingRepository{db: db, Clock: time.Now}
}

func (r SmartPricingRepository) Record(ctx context.Context, sync *catalog.SmartPricingSync) error {
	model := smartPricingSyncModel{
		PropertyID:  int64(sync.PropertyID),
		SyncDate:    dates.Day(sync.SyncDate),
		SmartPrice:  sync.SmartPrice,
		DemandScore: sync.DemandScore,
		SyncedAt:    sync.SyncedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrap(err, catalog.ErrPropertyNotFound)
	}
	sync.ID = model.ID
	return nil
}

func (r SmartPricingRepository) History(ctx context.Context, propertyID catalog.PropertyID, days int) ([]catalog.SmartPricingSync, error) {
	cutoff := dates.Day(r.Clock()).AddDate(0, 0, -days)
	var models []smartPricingSyncModel
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND sync_date >= ?", int64(propertyID), cutoff).
		Order("sync_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, wrap(err, catalog.ErrPropertyNotFound)
	}
	out := make([]catalog.SmartPricingSync, 0, len(models))
	for _, model := range models {
		out = append(out, model.toDomain())
	}
	return out, nil
}
