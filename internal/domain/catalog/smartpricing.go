package catalog

import (
	"context"
	"time"
)

// SmartPricingSync is one recorded push from the channel manager's smart
// pricing feed. History is append-only audit data.
type SmartPricingSync struct {
	ID          int64
	PropertyID  PropertyID
	SyncDate    time.Time
	SmartPrice  float64
	DemandScore int
	SyncedAt    time.Time
}

type SmartPricingRepository interface {
	Record(ctx context.Context, sync *SmartPricingSync) error
	// History returns syncs from the last N days, newest first.
	History(ctx context.Context, propertyID PropertyID, days int) ([]SmartPricingSync, error)
}
