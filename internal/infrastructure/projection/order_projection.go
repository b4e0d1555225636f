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

// OrderReadModel represents the read model for orders. The document id is the
// string form of the composite order id; the id parts are denormalized for
// querying.
type OrderReadModel struct {
	ID              string            `bson:"_id" json:"id"`
	VendorID        string            `bson:"vendor_id" json:"vendor_id"`
	UserID          string            `bson:"user_id" json:"user_id"`
	Date            string            `bson:"date" json:"date"`
	MenuID          string            `bson:"menu_id" json:"menu_id"`
	Status          model.OrderStatus `bson:"status" json:"status"`
	Dishes          []model.Dish      `bson:"dishes" json:"dishes"`
	PurchaseOrderID string            `bson:"purchase_order_id,omitempty" json:"purchase_order_id,omitempty"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `bson:"updated_at" json:"updated_at"`
}

// MongoOrderProjection implements OrderProjection using MongoDB
type MongoOrderProjection struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoOrderProjection creates a new MongoDB order projection
func NewMongoOrderProjection(db *mongo.Database, logger *zap.Logger) *MongoOrderProjection {
	collection := db.Collection("order_read_models")

	ctx := context.Background()
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "vendor_id", Value: 1},
				{Key: "date", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("failed to create order indexes", zap.Error(err))
	}

	return &MongoOrderProjection{
		collection: collection,
		logger:     logger,
	}
}

// GetByID retrieves an order by ID
func (p *MongoOrderProjection) GetByID(ctx context.Context, id model.OrderID) (interface{}, error) {
	var order OrderReadModel
	err := p.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListByUser retrieves a user's orders with pagination
func (p *MongoOrderProjection) ListByUser(ctx context.Context, userID string, offset, limit int) ([]interface{}, error) {
	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := p.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeOrders(ctx, cursor)
}

// ListByVendorAndDate retrieves one vendor's orders for one day
func (p *MongoOrderProjection) ListByVendorAndDate(ctx context.Context, vendorID string, date model.Date) ([]interface{}, error) {
	filter := bson.M{"vendor_id": vendorID, "date": date.String()}

	cursor, err := p.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeOrders(ctx, cursor)
}

func decodeOrders(ctx context.Context, cursor *mongo.Cursor) ([]interface{}, error) {
	var orders []interface{}
	for cursor.Next(ctx) {
		var order OrderReadModel
		if err := cursor.Decode(&order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// HandleOrderCreated handles OrderCreated event
func (p *MongoOrderProjection) HandleOrderCreated(ctx context.Context, evt *event.OrderCreated) error {
	order := OrderReadModel{
		ID:        evt.OrderID.String(),
		VendorID:  evt.OrderID.VendorID,
		UserID:    evt.OrderID.UserID,
		Date:      evt.OrderID.Date.String(),
		MenuID:    evt.MenuID,
		Status:    model.OrderStatusActive,
		Dishes:    []model.Dish{},
		CreatedAt: evt.Timestamp,
		UpdatedAt: evt.Timestamp,
	}

	_, err := p.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// HandleDishAddedToOrder handles DishAddedToOrder event
func (p *MongoOrderProjection) HandleDishAddedToOrder(ctx context.Context, evt *event.DishAddedToOrder) error {
	update := bson.M{
		"$push": bson.M{"dishes": evt.Dish},
		"$set":  bson.M{"updated_at": evt.Timestamp},
	}

	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": evt.OrderID.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to add dish to order: %w", err)
	}

	return nil
}

// HandleDishRemovedFromOrder handles DishRemovedFromOrder event. The same
// dish may appear in an order more than once and each removal takes exactly
// one occurrence, so the dish array is rewritten rather than $pull-ed ($pull
// would drop every occurrence).
func (p *MongoOrderProjection) HandleDishRemovedFromOrder(ctx context.Context, evt *event.DishRemovedFromOrder) error {
	var order OrderReadModel
	if err := p.collection.FindOne(ctx, bson.M{"_id": evt.OrderID.String()}).Decode(&order); err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}

	update := bson.M{
		"$set": bson.M{
			"dishes":     removeOneDish(order.Dishes, evt.DishID),
			"updated_at": evt.Timestamp,
		},
	}

	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": evt.OrderID.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to remove dish from order: %w", err)
	}

	return nil
}

// removeOneDish drops the first occurrence of the dish id, leaving any
// duplicates in place.
func removeOneDish(dishes []model.Dish, dishID string) []model.Dish {
	for i, d := range dishes {
		if d.ID == dishID {
			return append(dishes[:i:i], dishes[i+1:]...)
		}
	}
	return dishes
}

// HandleOrderCanceled handles OrderCanceled event
func (p *MongoOrderProjection) HandleOrderCanceled(ctx context.Context, evt *event.OrderCanceled) error {
	update := bson.M{
		"$set": bson.M{
			"status":     model.OrderStatusCanceled,
			"updated_at": evt.Timestamp,
		},
	}

	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": evt.OrderID.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	return nil
}

// HandleOrderMarkedAsProcessed handles OrderMarkedAsProcessed event
func (p *MongoOrderProjection) HandleOrderMarkedAsProcessed(ctx context.Context, evt *event.OrderMarkedAsProcessed) error {
	update := bson.M{
		"$set": bson.M{
			"status":            model.OrderStatusProcessed,
			"purchase_order_id": evt.PurchaseOrderID,
			"updated_at":        evt.Timestamp,
		},
	}

	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": evt.OrderID.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to mark order as processed: %w", err)
	}

	return nil
}
