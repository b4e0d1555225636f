package memory

import (
	"context"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
	"lunchly/internal/infrastructure/eventstore"
)

// PurchaseOrderRepository implements repository.PurchaseOrderRepository in
// memory.
type PurchaseOrderRepository struct {
	store *eventstore.InMemoryEventStore
}

// NewPurchaseOrderRepository creates a purchase order repository over the
// given store.
func NewPurchaseOrderRepository(store *eventstore.InMemoryEventStore) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{store: store}
}

// Save appends the purchase order's uncommitted events with an optimistic
// version check and marks them committed.
func (r *PurchaseOrderRepository) Save(ctx context.Context, po *aggregate.PurchaseOrder) error {
	events := po.GetUncommittedEvents()
	if len(events) == 0 {
		return nil
	}
	expectedVersion := po.GetVersion() - len(events)
	if err := r.store.SaveEvents(ctx, po.GetID(), events, expectedVersion); err != nil {
		return err
	}
	po.MarkEventsAsCommitted()
	return nil
}

// GetByID rebuilds a purchase order by replaying its event log.
func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id model.PurchaseOrderID) (*aggregate.PurchaseOrder, error) {
	events, err := r.store.GetEvents(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return aggregate.NewPurchaseOrderFromHistory(events)
}

func (r *PurchaseOrderRepository) SaveEvents(ctx context.Context, aggregateID string, events []event.DomainEvent, expectedVersion int) error {
	return r.store.SaveEvents(ctx, aggregateID, events, expectedVersion)
}

func (r *PurchaseOrderRepository) GetEvents(ctx context.Context, aggregateID string) ([]event.DomainEvent, error) {
	return r.store.GetEvents(ctx, aggregateID)
}

func (r *PurchaseOrderRepository) GetEventsSince(ctx context.Context, aggregateID string, version int) ([]event.DomainEvent, error) {
	return r.store.GetEventsSince(ctx, aggregateID, version)
}

func (r *PurchaseOrderRepository) GetAllEvents(ctx context.Context) ([]event.DomainEvent, error) {
	return r.store.GetAllEvents(ctx)
}
