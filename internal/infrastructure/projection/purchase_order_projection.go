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

// PurchaseOrderReadModel represents the read model for purchase orders
type PurchaseOrderReadModel struct {
	ID           string                         `bson:"_id" json:"id"`
	VendorID     string                         `bson:"vendor_id" json:"vendor_id"`
	Date         string                         `bson:"date" json:"date"`
	Status       model.PurchaseOrderStatus      `bson:"status" json:"status"`
	Orders       []model.OrderSnapshot          `bson:"orders" json:"orders"`
	Failures     []model.OrderValidationFailure `bson:"failures,omitempty" json:"failures,omitempty"`
	CreatedBy    string                         `bson:"created_by" json:"created_by"`
	SentTo       string                         `bson:"sent_to,omitempty" json:"sent_to,omitempty"`
	SendError    string                         `bson:"send_error,omitempty" json:"send_error,omitempty"`
	CanceledBy   string                         `bson:"canceled_by,omitempty" json:"canceled_by,omitempty"`
	CancelReason string                         `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`
	CreatedAt    time.Time                      `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time                      `bson:"updated_at" json:"updated_at"`
}

// MongoPurchaseOrderProjection implements PurchaseOrderProjection using MongoDB
type MongoPurchaseOrderProjection struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoPurchaseOrderProjection creates a new MongoDB purchase order
// projection
func NewMongoPurchaseOrderProjection(db *mongo.Database, logger *zap.Logger) *MongoPurchaseOrderProjection {
	collection := db.Collection("purchase_order_read_models")

	ctx := context.Background()
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "vendor_id", Value: 1},
				{Key: "date", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("failed to create purchase order indexes", zap.Error(err))
	}

	return &MongoPurchaseOrderProjection{
		collection: collection,
		logger:     logger,
	}
}

// GetByID retrieves a purchase order by ID
func (p *MongoPurchaseOrderProjection) GetByID(ctx context.Context, id model.PurchaseOrderID) (interface{}, error) {
	var po PurchaseOrderReadModel
	err := p.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&po)
	if err != nil {
		return nil, err
	}
	return po, nil
}

// ListByVendor retrieves a vendor's purchase orders with pagination
func (p *MongoPurchaseOrderProjection) ListByVendor(ctx context.Context, vendorID string, offset, limit int) ([]interface{}, error) {
	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := p.collection.Find(ctx, bson.M{"vendor_id": vendorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pos []interface{}
	for cursor.Next(ctx) {
		var po PurchaseOrderReadModel
		if err := cursor.Decode(&po); err != nil {
			return nil, err
		}
		pos = append(pos, po)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return pos, nil
}

// HandlePurchaseOrderCreated handles PurchaseOrderCreated event
func (p *MongoPurchaseOrderProjection) HandlePurchaseOrderCreated(ctx context.Context, evt *event.PurchaseOrderCreated) error {
	po := PurchaseOrderReadModel{
		ID:        evt.PurchaseOrderID.String(),
		VendorID:  evt.PurchaseOrderID.VendorID,
		Date:      evt.PurchaseOrderID.Date.String(),
		Status:    model.PurchaseOrderStatusCreated,
		Orders:    evt.Orders,
		CreatedBy: evt.CreatedBy,
		CreatedAt: evt.Timestamp,
		UpdatedAt: evt.Timestamp,
	}

	_, err := p.collection.InsertOne(ctx, po)
	if err != nil {
		return fmt.Errorf("failed to insert purchase order: %w", err)
	}

	return nil
}

// HandlePurchaseOrderValidationPassed handles PurchaseOrderValidationPassed
// event
func (p *MongoPurchaseOrderProjection) HandlePurchaseOrderValidationPassed(ctx context.Context, evt *event.PurchaseOrderValidationPassed) error {
	return p.setStatus(ctx, evt.PurchaseOrderID, model.PurchaseOrderStatusValidated, evt.Timestamp, nil)
}

// HandlePurchaseOrderValidationFailed handles PurchaseOrderValidationFailed
// event
func (p *MongoPurchaseOrderProjection) HandlePurchaseOrderValidationFailed(ctx context.Context, evt *event.PurchaseOrderValidationFailed) error {
	update := bson.M{
		"$set": bson.M{
			"failures":   evt.Failures,
			"updated_at": evt.Timestamp,
		},
	}

	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": evt.PurchaseOrderID.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to record validation failures: %w", err)
	}

	return nil
}

// HandlePurchaseOrderValidationOverruled handles
// PurchaseOrderValidationOverruled event. The status only moves forward when
// the purchase order is still CREATED.
func (p *MongoPurchaseOrderProjection) HandlePurchaseOrderValidationOverruled(ctx context.Context, evt *event.PurchaseOrderValidationOverruled) error {
	filter := bson.M{
		"_id":    evt.PurchaseOrderID.String(),
		"status": model.PurchaseOrderStatusCreated,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     model.PurchaseOrderStatusValidated,
			"updated_at": evt.Timestamp,
		},
	}

	_, err := p.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to overrule validation: %w", err)
	}

	return nil
}

// HandlePurchaseOrderSent handles PurchaseOrderSent event
func (p *MongoPurchaseOrderProjection) HandlePurchaseOrderSent(ctx context.Context, evt *event.PurchaseOrderSent) error {
	return p.setStatus(ctx, evt.PurchaseOrderID, model.PurchaseOrderStatusSent, evt.Timestamp, bson.M{
		"sent_to": evt.SentTo,
	})
}

// HandlePurchaseOrderSendFailed handles PurchaseOrderSendFailed event
func (p *MongoPurchaseOrderProjection) HandlePurchaseOrderSendFailed(ctx context.Context, evt *event.PurchaseOrderSendFailed) error {
	update := bson.M{
		"$set": bson.M{
			"send_error": evt.Reason,
			"updated_at": evt.Timestamp,
		},
	}

	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": evt.PurchaseOrderID.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to record send failure: %w", err)
	}

	return nil
}

// HandlePurchaseOrderDelivered handles PurchaseOrderDelivered event
func (p *MongoPurchaseOrderProjection) HandlePurchaseOrderDelivered(ctx context.Context, evt *event.PurchaseOrderDelivered) error {
	return p.setStatus(ctx, evt.PurchaseOrderID, model.PurchaseOrderStatusDelivered, evt.Timestamp, nil)
}

// HandlePurchaseOrderCanceled handles PurchaseOrderCanceled event
func (p *MongoPurchaseOrderProjection) HandlePurchaseOrderCanceled(ctx context.Context, evt *event.PurchaseOrderCanceled) error {
	reason := evt.Reason
	if evt.Invalid {
		reason = "invalid"
	}

	return p.setStatus(ctx, evt.PurchaseOrderID, model.PurchaseOrderStatusCanceled, evt.Timestamp, bson.M{
		"canceled_by":   evt.CanceledBy,
		"cancel_reason": reason,
	})
}

func (p *MongoPurchaseOrderProjection) setStatus(ctx context.Context, id model.PurchaseOrderID, status model.PurchaseOrderStatus, at time.Time, extra bson.M) error {
	fields := bson.M{
		"status":     status,
		"updated_at": at,
	}
	for k, v := range extra {
		fields[k] = v
	}

	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update purchase order status: %w", err)
	}

	return nil
}
