package memory

import (
	"context"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
	"lunchly/internal/infrastructure/eventstore"
)

// OrderRepository implements repository.OrderRepository in memory.
type OrderRepository struct {
	store *eventstore.InMemoryEventStore
}

// NewOrderRepository creates an order repository over the given store.
func NewOrderRepository(store *eventstore.InMemoryEventStore) *OrderRepository {
	return &OrderRepository{store: store}
}

// Save appends the order's uncommitted events with an optimistic version
// check and marks them committed.
func (r *OrderRepository) Save(ctx context.Context, order *aggregate.Order) error {
	events := order.GetUncommittedEvents()
	if len(events) == 0 {
		return nil
	}
	expectedVersion := order.GetVersion() - len(events)
	if err := r.store.SaveEvents(ctx, order.GetID(), events, expectedVersion); err != nil {
		return err
	}
	order.MarkEventsAsCommitted()
	return nil
}

// GetByID rebuilds an order by replaying its event log.
func (r *OrderRepository) GetByID(ctx context.Context, id model.OrderID) (*aggregate.Order, error) {
	events, err := r.store.GetEvents(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return aggregate.NewOrderFromHistory(events)
}

// Exists reports whether an order with the given id has been created.
func (r *OrderRepository) Exists(ctx context.Context, id model.OrderID) (bool, error) {
	return r.store.Exists(ctx, id.String())
}

func (r *OrderRepository) SaveEvents(ctx context.Context, aggregateID string, events []event.DomainEvent, expectedVersion int) error {
	return r.store.SaveEvents(ctx, aggregateID, events, expectedVersion)
}

func (r *OrderRepository) GetEvents(ctx context.Context, aggregateID string) ([]event.DomainEvent, error) {
	return r.store.GetEvents(ctx, aggregateID)
}

func (r *OrderRepository) GetEventsSince(ctx context.Context, aggregateID string, version int) ([]event.DomainEvent, error) {
	return r.store.GetEventsSince(ctx, aggregateID, version)
}

func (r *OrderRepository) GetAllEvents(ctx context.Context) ([]event.DomainEvent, error) {
	return r.store.GetAllEvents(ctx)
}
