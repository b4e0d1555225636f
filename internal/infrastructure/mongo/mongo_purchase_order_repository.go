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

// MongoPurchaseOrderRepository implements PurchaseOrderRepository with MongoDB
// persistence. Purchase orders are keyed by the string form of their composite
// id.
type MongoPurchaseOrderRepository struct {
	database         *mongo.Database
	entityCollection *mongo.Collection
	events           *eventLog
	session          mongo.Session
}

// NewMongoPurchaseOrderRepository creates a new MongoDB purchase order
// repository
func NewMongoPurchaseOrderRepository(database *mongo.Database) *MongoPurchaseOrderRepository {
	return &MongoPurchaseOrderRepository{
		database:         database,
		entityCollection: database.Collection("purchase_orders"),
		events:           newEventLog(database.Collection("purchase_order_events")),
	}
}

// SetTransaction implements TransactionalRepository
func (r *MongoPurchaseOrderRepository) SetTransaction(tx interface{}) {
	if session, ok := tx.(mongo.Session); ok {
		r.session = session
	} else {
		r.session = nil
	}
}

// GetTransaction implements TransactionalRepository
func (r *MongoPurchaseOrderRepository) GetTransaction() interface{} {
	return r.session
}

// IsTransactional implements TransactionalRepository
func (r *MongoPurchaseOrderRepository) IsTransactional() bool {
	return r.session != nil
}

func (r *MongoPurchaseOrderRepository) sessionContext(ctx context.Context) context.Context {
	if r.session != nil {
		return mongo.NewSessionContext(ctx, r.session)
	}
	return ctx
}

// Save appends the purchase order's uncommitted events with an optimistic
// version check and upserts the summary document.
func (r *MongoPurchaseOrderRepository) Save(ctx context.Context, po *aggregate.PurchaseOrder) error {
	ctx = r.sessionContext(ctx)

	events := po.GetUncommittedEvents()
	if len(events) == 0 {
		return nil
	}

	expectedVersion := po.GetVersion() - len(events)
	if err := r.events.SaveEvents(ctx, po.GetID(), events, expectedVersion); err != nil {
		return err
	}

	id := po.ID()
	entityDoc := bson.M{
		"_id":           po.GetID(),
		"version":       po.GetVersion(),
		"vendor_id":     id.VendorID,
		"date":          id.Date.String(),
		"status":        po.Status(),
		"orders":        po.Orders(),
		"failures":      po.Failures(),
		"created_by":    po.CreatedBy(),
		"canceled_by":   po.CanceledBy(),
		"cancel_reason": po.CancelReason(),
		"sent_to":       po.SentTo(),
		"created_at":    po.CreatedAt(),
		"updated_at":    po.UpdatedAt(),
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.entityCollection.UpdateOne(ctx, bson.M{"_id": po.GetID()}, bson.M{"$set": entityDoc}, opts); err != nil {
		return fmt.Errorf("failed to save purchase order to MongoDB: %w", err)
	}

	po.MarkEventsAsCommitted()
	return nil
}

// GetByID rebuilds a purchase order by replaying its event log.
func (r *MongoPurchaseOrderRepository) GetByID(ctx context.Context, id model.PurchaseOrderID) (*aggregate.PurchaseOrder, error) {
	ctx = r.sessionContext(ctx)

	events, err := r.events.GetEvents(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return aggregate.NewPurchaseOrderFromHistory(events)
}

func (r *MongoPurchaseOrderRepository) SaveEvents(ctx context.Context, aggregateID string, events []event.DomainEvent, expectedVersion int) error {
	return r.events.SaveEvents(r.sessionContext(ctx), aggregateID, events, expectedVersion)
}

func (r *MongoPurchaseOrderRepository) GetEvents(ctx context.Context, aggregateID string) ([]event.DomainEvent, error) {
	return r.events.GetEvents(r.sessionContext(ctx), aggregateID)
}

func (r *MongoPurchaseOrderRepository) GetEventsSince(ctx context.Context, aggregateID string, version int) ([]event.DomainEvent, error) {
	return r.events.GetEventsSince(r.sessionContext(ctx), aggregateID, version)
}

func (r *MongoPurchaseOrderRepository) GetAllEvents(ctx context.Context) ([]event.DomainEvent, error) {
	return r.events.GetAllEvents(r.sessionContext(ctx))
}
