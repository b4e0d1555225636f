package eventstore

import (
	"context"
	"sync"

	"lunchly/internal/domain/event"
	"lunchly/internal/domain/repository"
)

// InMemoryEventStore keeps one ordered event log per aggregate id with an
// optimistic version check on append. It backs the memory repositories and
// the test suites; the Mongo repositories persist the same log shape.
type InMemoryEventStore struct {
	events map[string][]event.DomainEvent
	mutex  sync.RWMutex
}

// NewInMemoryEventStore returns a new in-memory event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]event.DomainEvent),
	}
}

// SaveEvents appends events for an aggregate. expectedVersion must equal the
// current log length or ErrVersionConflict is returned and nothing is written.
func (s *InMemoryEventStore) SaveEvents(ctx context.Context, aggregateID string, events []event.DomainEvent, expectedVersion int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	currentEvents := s.events[aggregateID]
	if len(currentEvents) != expectedVersion {
		return repository.ErrVersionConflict
	}
	s.events[aggregateID] = append(currentEvents, events...)
	return nil
}

// GetEvents returns the ordered event log for an aggregate.
func (s *InMemoryEventStore) GetEvents(ctx context.Context, aggregateID string) ([]event.DomainEvent, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	evs, ok := s.events[aggregateID]
	if !ok || len(evs) == 0 {
		return nil, repository.ErrNotFound
	}
	result := make([]event.DomainEvent, len(evs))
	copy(result, evs)
	return result, nil
}

// GetEventsSince returns events for an aggregate after a given version.
func (s *InMemoryEventStore) GetEventsSince(ctx context.Context, aggregateID string, version int) ([]event.DomainEvent, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	evs, ok := s.events[aggregateID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	var result []event.DomainEvent
	for _, e := range evs {
		if e.Version() > version {
			result = append(result, e)
		}
	}
	return result, nil
}

// GetAllEvents returns all events for all aggregates.
func (s *InMemoryEventStore) GetAllEvents(ctx context.Context) ([]event.DomainEvent, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var allEvents []event.DomainEvent
	for _, evs := range s.events {
		allEvents = append(allEvents, evs...)
	}
	return allEvents, nil
}

// Exists reports whether any events are stored for the aggregate id.
func (s *InMemoryEventStore) Exists(ctx context.Context, aggregateID string) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.events[aggregateID]) > 0, nil
}
