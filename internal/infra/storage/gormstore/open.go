package gormstore

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"casita/internal/infra/storage"
)

// Open connects to the configured relational store and migrates the schema.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all pricing tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&propertyModel{},
		&unitModel{},
		&seasonalRuleModel{},
		&dayOfWeekRuleModel{},
		&lastMinuteRuleModel{},
		&orphanGapRuleModel{},
		&reservationModel{},
		&calendarDayModel{},
		&smartPricingSyncModel{},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}
