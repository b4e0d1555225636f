package repository

import (
	"context"
	"errors"

	"lunchly/internal/domain/event"
)

// ErrVersionConflict is returned by optimistic appends when the expected
// version does not match the aggregate's event log. The command must be
// retried against the reloaded aggregate.
var ErrVersionConflict = errors.New("version conflict")

// ErrNotFound is returned when no events exist for an aggregate id.
var ErrNotFound = errors.New("aggregate not found")

// Entity represents any domain entity that can be persisted
type Entity interface {
	GetID() string
	SetID(id string)
	GetVersion() int
	SetVersion(version int)
}

// AggregateRoot represents an aggregate root in DDD/Event Sourcing
type AggregateRoot interface {
	Entity
	GetUncommittedEvents() []event.DomainEvent
	MarkEventsAsCommitted()
	LoadFromHistory(events []event.DomainEvent) error
}

// EventSourcedRepository provides the event-log operations every aggregate
// repository shares: load the ordered history, append with an optimistic
// version check, and stream changes.
type EventSourcedRepository interface {
	SaveEvents(ctx context.Context, aggregateID string, events []event.DomainEvent, expectedVersion int) error
	GetEvents(ctx context.Context, aggregateID string) ([]event.DomainEvent, error)
	GetEventsSince(ctx context.Context, aggregateID string, version int) ([]event.DomainEvent, error)
	GetAllEvents(ctx context.Context) ([]event.DomainEvent, error)
}
