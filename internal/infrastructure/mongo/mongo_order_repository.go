package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
)

// MongoOrderRepository implements OrderRepository with MongoDB persistence.
// Orders are keyed by the string form of their composite id.
type MongoOrderRepository struct {
	database         *mongo.Database
	entityCollection *mongo.Collection
	events           *eventLog
	session          mongo.Session
}

// NewMongoOrderRepository creates a new MongoDB order repository
func NewMongoOrderRepository(database *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		database:         database,
		entityCollection: database.Collection("orders"),
		events:           newEventLog(database.Collection("order_events")),
	}
}

// SetTransaction implements TransactionalRepository
func (r *MongoOrderRepository) SetTransaction(tx interface{}) {
	if session, ok := tx.(mongo.Session); ok {
		r.session = session
	} else {
		r.session = nil
	}
}

// GetTransaction implements TransactionalRepository
func (r *MongoOrderRepository) GetTransaction() interface{} {
	return r.session
}

// IsTransactional implements TransactionalRepository
func (r *MongoOrderRepository) IsTransactional() bool {
	return r.session != nil
}

func (r *MongoOrderRepository) sessionContext(ctx context.Context) context.Context {
	if r.session != nil {
		return mongo.NewSessionContext(ctx, r.session)
	}
	return ctx
}

// Save appends the order's uncommitted events with an optimistic version
// check and upserts the summary document.
func (r *MongoOrderRepository) Save(ctx context.Context, order *aggregate.Order) error {
	ctx = r.sessionContext(ctx)

	events := order.GetUncommittedEvents()
	if len(events) == 0 {
		return nil
	}

	expectedVersion := order.GetVersion() - len(events)
	if err := r.events.SaveEvents(ctx, order.GetID(), events, expectedVersion); err != nil {
		return err
	}

	id := order.ID()
	entityDoc := bson.M{
		"_id":        order.GetID(),
		"version":    order.GetVersion(),
		"vendor_id":  id.VendorID,
		"user_id":    id.UserID,
		"date":       id.Date.String(),
		"menu_id":    order.MenuID(),
		"status":     order.Status(),
		"dishes":     order.Dishes(),
		"created_at": order.CreatedAt(),
		"updated_at": order.UpdatedAt(),
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.entityCollection.UpdateOne(ctx, bson.M{"_id": order.GetID()}, bson.M{"$set": entityDoc}, opts); err != nil {
		return fmt.Errorf("failed to save order to MongoDB: %w", err)
	}

	order.MarkEventsAsCommitted()
	return nil
}

// GetByID rebuilds an order by replaying its event log.
func (r *MongoOrderRepository) GetByID(ctx context.Context, id model.OrderID) (*aggregate.Order, error) {
	ctx = r.sessionContext(ctx)

	events, err := r.events.GetEvents(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return aggregate.NewOrderFromHistory(events)
}

// Exists reports whether any events exist for the order id.
func (r *MongoOrderRepository) Exists(ctx context.Context, id model.OrderID) (bool, error) {
	ctx = r.sessionContext(ctx)

	count, err := r.entityCollection.CountDocuments(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, fmt.Errorf("failed to check order existence: %w", err)
	}
	return count > 0, nil
}

func (r *MongoOrderRepository) SaveEvents(ctx context.Context, aggregateID string, events []event.DomainEvent, expectedVersion int) error {
	return r.events.SaveEvents(r.sessionContext(ctx), aggregateID, events, expectedVersion)
}

func (r *MongoOrderRepository) GetEvents(ctx context.Context, aggregateID string) ([]event.DomainEvent, error) {
	return r.events.GetEvents(r.sessionContext(ctx), aggregateID)
}

func (r *MongoOrderRepository) GetEventsSince(ctx context.Context, aggregateID string, version int) ([]event.DomainEvent, error) {
	return r.events.GetEventsSince(r.sessionContext(ctx), aggregateID, version)
}

func (r *MongoOrderRepository) GetAllEvents(ctx context.Context) ([]event.DomainEvent, error) {
	return r.events.GetAllEvents(r.sessionContext(ctx))
}
