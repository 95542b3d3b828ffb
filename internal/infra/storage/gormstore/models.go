package gormstore

import (
	"time"

	"casita/internal/domain/availability"
	"casita/internal/domain/catalog"
	"casita/internal/domain/reservation"
	"casita/internal/domain/rules"
	"casita/internal/domain/shared/dates"
)

type propertyModel struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
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
}

func (propertyModel) TableName() string { return "properties" }

func toPropertyModel(p *catalog.Property) propertyModel {
	return propertyModel{
		ID:        int64(p.ID),
		Name:      p.Name,
		Nickname:  p.Nickname,
		City:      p.City,
		State:     p.State,
		BasePrice: p.BasePrice,
		MinPrice:  p.MinPrice,
		MaxPrice:  p.MaxPrice,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m propertyModel) toDomain() *catalog.Property {
	return &catalog.Property{
		ID:        catalog.PropertyID(m.ID),
		Name:      m.Name,
		Nickname:  m.Nickname,
		City:      m.City,
		State:     m.State,
		BasePrice: m.BasePrice,
		MinPrice:  m.MinPrice,
		MaxPrice:  m.MaxPrice,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type unitModel struct {
	ID                   int64 `gorm:"primaryKey;autoIncrement"`
	PropertyID           int64 `gorm:"index"`
	Name                 string
	UnitType             string
	InheritParentPricing bool
	PriceModifier        float64
	PriceModifierType    string
	CustomBasePrice      float64
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (unitModel) TableName() string { return "units" }

func toUnitModel(u *catalog.Unit) unitModel {
	return unitModel{
		ID:                   int64(u.ID),
		PropertyID:           int64(u.PropertyID),
		Name:                 u.Name,
		UnitType:             u.UnitType,
		InheritParentPricing: u.InheritParentPricing,
		PriceModifier:        u.PriceModifier,
		PriceModifierType:    string(u.PriceModifierType),
		CustomBasePrice:      u.CustomBasePrice,
		IsActive:             u.IsActive,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func (m unitModel) toDomain() *catalog.Unit {
	return &catalog.Unit{
		ID:                   catalog.UnitID(m.ID),
		PropertyID:           catalog.PropertyID(m.PropertyID),
		Name:                 m.Name,
		UnitType:             m.UnitType,
		InheritParentPricing: m.InheritParentPricing,
		PriceModifier:        m.PriceModifier,
		PriceModifierType:    catalog.ModifierType(m.PriceModifierType),
		CustomBasePrice:      m.CustomBasePrice,
		IsActive:             m.IsActive,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

type seasonalRuleModel struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	PropertyID      int64 `gorm:"index"`
	SeasonName      string
	StartDate       time.Time
	EndDate         time.Time
	AdjustmentType  string
	AdjustmentValue float64
	MinNights       int
}

func (seasonalRuleModel) TableName() string { return "seasonal_rules" }

func (m seasonalRuleModel) toDomain() rules.SeasonalRule {
	return rules.SeasonalRule{
		ID:              m.ID,
		PropertyID:      catalog.PropertyID(m.PropertyID),
		SeasonName:      m.SeasonName,
		StartDate:       dates.Day(m.StartDate),
		EndDate:         dates.Day(m.EndDate),
		AdjustmentType:  rules.AdjustmentType(m.AdjustmentType),
		AdjustmentValue: m.AdjustmentValue,
		MinNights:       m.MinNights,
	}
}

type dayOfWeekRuleModel struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	PropertyID      int64 `gorm:"uniqueIndex:idx_dow_property_day"`
	DayOfWeek       int   `gorm:"uniqueIndex:idx_dow_property_day"`
	AdjustmentType  string
	AdjustmentValue float64
	MinNights       int
}

func (dayOfWeekRuleModel) TableName() string { return "day_of_week_rules" }

func (m dayOfWeekRuleModel) toDomain() rules.DayOfWeekRule {
	return rules.DayOfWeekRule{
		ID:              m.ID,
		PropertyID:      catalog.PropertyID(m.PropertyID),
		DayOfWeek:       m.DayOfWeek,
		AdjustmentType:  rules.AdjustmentType(m.AdjustmentType),
		AdjustmentValue: m.AdjustmentValue,
		MinNights:       m.MinNights,
	}
}

type lastMinuteRuleModel struct {
	ID                int64 `gorm:"primaryKey;autoIncrement"`
	PropertyID        int64 `gorm:"index"`
	DaysBeforeCheckIn int
	AdjustmentValue   float64
}

func (lastMinuteRuleModel) TableName() string { return "last_minute_rules" }

func (m lastMinuteRuleModel) toDomain() rules.LastMinuteRule {
	return rules.LastMinuteRule{
		ID:                m.ID,
		PropertyID:        catalog.PropertyID(m.PropertyID),
		DaysBeforeCheckIn: m.DaysBeforeCheckIn,
		AdjustmentValue:   m.AdjustmentValue,
	}
}

type orphanGapRuleModel struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	PropertyID      int64 `gorm:"index"`
	GapNights       int
	AdjustmentValue float64
	ReduceMinStay   bool
}

func (orphanGapRuleModel) TableName() string { return "orphan_gap_rules" }

func (m orphanGapRuleModel) toDomain() rules.OrphanGapRule {
	return rules.OrphanGapRule{
		ID:              m.ID,
		PropertyID:      catalog.PropertyID(m.PropertyID),
		GapNights:       m.GapNights,
		AdjustmentValue: m.AdjustmentValue,
		ReduceMinStay:   m.ReduceMinStay,
	}
}

type reservationModel struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	UnitID     int64 `gorm:"index"`
	PropertyID int64 `gorm:"index"`
	CheckIn    time.Time
	CheckOut   time.Time
	Nights     int
	TotalPrice float64
	GuestName  string
	Channel    string
	Status     string
	CreatedAt  time.Time
}

func (reservationModel) TableName() string { return "reservations" }

func toReservationModel(r *reservation.Reservation) reservationModel {
	return reservationModel{
		ID:         int64(r.ID),
		UnitID:     int64(r.UnitID),
		PropertyID: int64(r.PropertyID),
		CheckIn:    r.Stay.CheckIn,
		CheckOut:   r.Stay.CheckOut,
		Nights:     r.Nights,
		TotalPrice: r.TotalPrice,
		GuestName:  r.GuestName,
		Channel:    r.Channel,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

func (m reservationModel) toDomain() *reservation.Reservation {
	return &reservation.Reservation{
		ID:         reservation.ID(m.ID),
		UnitID:     catalog.UnitID(m.UnitID),
		PropertyID: catalog.PropertyID(m.PropertyID),
		Stay:       dates.StayRange{CheckIn: dates.Day(m.CheckIn), CheckOut: dates.Day(m.CheckOut)},
		Nights:     m.Nights,
		TotalPrice: m.TotalPrice,
		GuestName:  m.GuestName,
		Channel:    m.Channel,
		Status:     reservation.Status(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}

type calendarDayModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UnitID      int64     `gorm:"uniqueIndex:idx_calendar_unit_date"`
	Date        time.Time `gorm:"uniqueIndex:idx_calendar_unit_date"`
	BasePrice   float64
	IsAvailable bool
	IsBlocked   bool
	BlockReason string
	UpdatedAt   time.Time
}

func (calendarDayModel) TableName() string { return "calendar_days" }

func (m calendarDayModel) toDomain() availability.DayEntry {
	return availability.DayEntry{
		UnitID:      catalog.UnitID(m.UnitID),
		Date:        dates.Day(m.Date),
		BasePrice:   m.BasePrice,
		IsAvailable: m.IsAvailable,
		IsBlocked:   m.IsBlocked,
		BlockReason: availability.BlockReason(m.BlockReason),
		UpdatedAt:   m.UpdatedAt,
	}
}

type smartPricingSyncModel struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	PropertyID  int64 `gorm:"index"`
	SyncDate    time.Time
	SmartPrice  float64
	DemandScore int
	SyncedAt    time.Time
}

func (smartPricingSyncModel) TableName() string { return "smart_pricing_syncs" }

func (m smartPricingSyncModel) toDomain() catalog.SmartPricingSync {
	return catalog.SmartPricingSync{
		ID:          m.ID,
		PropertyID:  catalog.PropertyID(m.PropertyID),
		SyncDate:    dates.Day(m.SyncDate),
		SmartPrice:  m.SmartPrice,
		DemandScore: m.DemandScore,
		SyncedAt:    m.SyncedAt,
	}
}
