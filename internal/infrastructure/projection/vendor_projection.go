package projection

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
)

// VendorReadModel represents the read model for vendors
type VendorReadModel struct {
	ID         string       `bson:"_id" json:"id"`
	Name       string       `bson:"name" json:"name"`
	Email      string       `bson:"email" json:"email"`
	Phones     []string     `bson:"phones" json:"phones"`
	PODeadline string       `bson:"po_deadline" json:"po_deadline,omitempty"`
	Menus      []model.Menu `bson:"menus" json:"menus"`
	CreatedAt  time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `bson:"updated_at" json:"updated_at"`
}

// MongoVendorProjection implements VendorProjection using MongoDB
type MongoVendorProjection struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoVendorProjection creates a new MongoDB vendor projection
func NewMongoVendorProjection(db *mongo.Database, logger *zap.Logger) *MongoVendorProjection {
	collection := db.Collection("vendor_read_models")

	ctx := context.Background()
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("failed to create vendor indexes", zap.Error(err))
	}

	return &MongoVendorProjection{
		collection: collection,
		logger:     logger,
	}
}

// GetByID retrieves a vendor by ID
func (p *MongoVendorProjection) GetByID(ctx context.Context, id string) (interface{}, error) {
	var vendor VendorReadModel
	err := p.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vendor)
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

// ListAll retrieves all vendors with pagination
func (p *MongoVendorProjection) ListAll(ctx context.Context, offset, limit int) ([]interface{}, error) {
	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := p.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vendors []interface{}
	for cursor.Next(ctx) {
		var vendor VendorReadModel
		if err := cursor.Decode(&vendor); err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return vendors, nil
}

// HandleVendorAdded handles VendorAdded event
func (p *MongoVendorProjection) HandleVendorAdded(ctx context.Context, evt *event.VendorAdded) error {
	vendor := VendorReadModel{
		ID:         evt.VendorID,
		Name:       evt.Name,
		Email:      evt.Email,
		Phones:     evt.Phones,
		PODeadline: evt.PODeadline,
		Menus:      []model.Menu{},
		CreatedAt:  evt.Timestamp,
		UpdatedAt:  evt.Timestamp,
	}

	_, err := p.collection.InsertOne(ctx, vendor)
	if err != nil {
		return fmt.Errorf("failed to insert vendor: %w", err)
	}

	return nil
}

// HandleVendorUpdated handles VendorUpdated event
func (p *MongoVendorProjection) HandleVendorUpdated(ctx context.Context, evt *event.VendorUpdated) error {
	update := bson.M{
		"$set": bson.M{
			"name":        evt.Name,
			"email":       evt.Email,
			"phones":      evt.Phones,
			"po_deadline": evt.PODeadline,
			"updated_at":  evt.Timestamp,
		},
	}

	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": evt.VendorID}, update)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}

	return nil
}

// HandleMenuImported handles MenuImported event
func (p *MongoVendorProjection) HandleMenuImported(ctx context.Context, evt *event.MenuImported) error {
	update := bson.M{
		"$push": bson.M{
			"menus": model.Menu{ID: evt.MenuID, Dishes: evt.Dishes},
		},
		"$set": bson.M{
			"updated_at": evt.Timestamp,
		},
	}

	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": evt.VendorID}, update)
	if err != nil {
		return fmt.Errorf("failed to import menu: %w", err)
	}

	return nil
}

// HandleDateRangeForMenuSet handles DateRangeForMenuSet event
func (p *MongoVendorProjection) HandleDateRangeForMenuSet(ctx context.Context, evt *event.DateRangeForMenuSet) error {
	filter := bson.M{"_id": evt.VendorID, "menus.id": evt.MenuID}
	update := bson.M{
		"$set": bson.M{
			"menus.$.date_range": evt.Range,
			"updated_at":         evt.Timestamp,
		},
	}

	_, err := p.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set menu date range: %w", err)
	}

	return nil
}
