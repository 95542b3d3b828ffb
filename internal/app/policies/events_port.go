package policies

import (
	"context"

	"casita/internal/domain/shared/events"
)

// EventPublisher forwards committed domain events to whatever broker the
// deployment wires in. Publishing happens after commit; a publish failure
// is logged, never rolled back.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return nil
}
