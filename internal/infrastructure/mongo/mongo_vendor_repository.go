package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/event"
	"lunchly/internal/domain/repository"
)

// MongoVendorRepository implements VendorRepository with MongoDB persistence.
// The event collection is the source of truth; the entity collection is an
// upserted summary used for lookups such as GetByName.
type MongoVendorRepository struct {
	database         *mongo.Database
	entityCollection *mongo.Collection
	events           *eventLog
	session          mongo.Session
}

// NewMongoVendorRepository creates a new MongoDB vendor repository
func NewMongoVendorRepository(database *mongo.Database) *MongoVendorRepository {
	return &MongoVendorRepository{
		database:         database,
		entityCollection: database.Collection("vendors"),
		events:           newEventLog(database.Collection("vendor_events")),
	}
}

// SetTransaction implements TransactionalRepository
func (r *MongoVendorRepository) SetTransaction(tx interface{}) {
	if session, ok := tx.(mongo.Session); ok {
		r.session = session
	} else {
		r.session = nil
	}
}

// GetTransaction implements TransactionalRepository
func (r *MongoVendorRepository) GetTransaction() interface{} {
	return r.session
}

// IsTransactional implements TransactionalRepository
func (r *MongoVendorRepository) IsTransactional() bool {
	return r.session != nil
}

func (r *MongoVendorRepository) sessionContext(ctx context.Context) context.Context {
	if r.session != nil {
		return mongo.NewSessionContext(ctx, r.session)
	}
	return ctx
}

// Save appends the vendor's uncommitted events with an optimistic version
// check and upserts the summary document.
func (r *MongoVendorRepository) Save(ctx context.Context, vendor *aggregate.Vendor) error {
	ctx = r.sessionContext(ctx)

	events := vendor.GetUncommittedEvents()
	if len(events) == 0 {
		return nil
	}

	expectedVersion := vendor.GetVersion() - len(events)
	if err := r.events.SaveEvents(ctx, vendor.GetID(), events, expectedVersion); err != nil {
		return err
	}

	entityDoc := bson.M{
		"_id":         vendor.GetID(),
		"version":     vendor.GetVersion(),
		"name":        vendor.Name(),
		"email":       vendor.Email(),
		"phones":      vendor.Phones(),
		"po_deadline": vendor.PODeadline(),
		"created_at":  vendor.CreatedAt(),
		"updated_at":  vendor.UpdatedAt(),
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.entityCollection.UpdateOne(ctx, bson.M{"_id": vendor.GetID()}, bson.M{"$set": entityDoc}, opts); err != nil {
		return fmt.Errorf("failed to save vendor to MongoDB: %w", err)
	}

	vendor.MarkEventsAsCommitted()
	return nil
}

// GetByID rebuilds a vendor by replaying its event log.
func (r *MongoVendorRepository) GetByID(ctx context.Context, id string) (*aggregate.Vendor, error) {
	ctx = r.sessionContext(ctx)

	events, err := r.events.GetEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	return aggregate.NewVendorFromHistory(events)
}

// GetByName resolves a vendor by its unique name via the summary collection.
func (r *MongoVendorRepository) GetByName(ctx context.Context, name string) (*aggregate.Vendor, error) {
	ctx = r.sessionContext(ctx)

	var doc bson.M
	err := r.entityCollection.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up vendor by name: %w", err)
	}

	id, _ := doc["_id"].(string)
	return r.GetByID(ctx, id)
}

func (r *MongoVendorRepository) SaveEvents(ctx context.Context, aggregateID string, events []event.DomainEvent, expectedVersion int) error {
	return r.events.SaveEvents(r.sessionContext(ctx), aggregateID, events, expectedVersion)
}

func (r *MongoVendorRepository) GetEvents(ctx context.Context, aggregateID string) ([]event.DomainEvent, error) {
	return r.events.GetEvents(r.sessionContext(ctx), aggregateID)
}

func (r *MongoVendorRepository) GetEventsSince(ctx context.Context, aggregateID string, version int) ([]event.DomainEvent, error) {
	return r.events.GetEventsSince(r.sessionContext(ctx), aggregateID, version)
}

func (r *MongoVendorRepository) GetAllEvents(ctx context.Context) ([]event.DomainEvent, error) {
	return r.events.GetAllEvents(r.sessionContext(ctx))
}
