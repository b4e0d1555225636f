// Package memory provides event-sourced repositories backed by the in-memory
// event store. They carry the same optimistic-append contract as the Mongo
// repositories and are what the tests and local development run against.
package memory

import (
	"context"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/event"
	"lunchly/internal/domain/repository"
	"lunchly/internal/infrastructure/eventstore"
)

// VendorRepository implements repository.VendorRepository in memory.
type VendorRepository struct {
	store *eventstore.InMemoryEventStore
}

// NewVendorRepository creates a vendor repository over the given store.
func NewVendorRepository(store *eventstore.InMemoryEventStore) *VendorRepository {
	return &VendorRepository{store: store}
}

// Save appends the vendor's uncommitted events with an optimistic version
// check and marks them committed.
func (r *VendorRepository) Save(ctx context.Context, vendor *aggregate.Vendor) error {
	events := vendor.GetUncommittedEvents()
	if len(events) == 0 {
		return nil
	}
	expectedVersion := vendor.GetVersion() - len(events)
	if err := r.store.SaveEvents(ctx, vendor.GetID(), events, expectedVersion); err != nil {
		return err
	}
	vendor.MarkEventsAsCommitted()
	return nil
}

// GetByID rebuilds a vendor by replaying its event log.
func (r *VendorRepository) GetByID(ctx context.Context, id string) (*aggregate.Vendor, error) {
	events, err := r.store.GetEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	return aggregate.NewVendorFromHistory(events)
}

// GetByName resolves a vendor by its current name. Vendor names are unique,
// so the first match wins.
func (r *VendorRepository) GetByName(ctx context.Context, name string) (*aggregate.Vendor, error) {
	all, err := r.store.GetAllEvents(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, e := range all {
		id := e.AggregateID()
		if seen[id] {
			continue
		}
		seen[id] = true

		vendor, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if vendor.Name() == name {
			return vendor, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *VendorRepository) SaveEvents(ctx context.Context, aggregateID string, events []event.DomainEvent, expectedVersion int) error {
	return r.store.SaveEvents(ctx, aggregateID, events, expectedVersion)
}

func (r *VendorRepository) GetEvents(ctx context.Context, aggregateID string) ([]event.DomainEvent, error) {
	return r.store.GetEvents(ctx, aggregateID)
}

func (r *VendorRepository) GetEventsSince(ctx context.Context, aggregateID string, version int) ([]event.DomainEvent, error) {
	return r.store.GetEventsSince(ctx, aggregateID, version)
}

func (r *VendorRepository) GetAllEvents(ctx context.Context) ([]event.DomainEvent, error) {
	return r.store.GetAllEvents(ctx)
}
