package event

import (
	"time"

	"lunchly/internal/domain/model"
)

// OrderCreated event
type OrderCreated struct {
	OrderID   model.OrderID `json:"order_id" bson:"order_id"`
	MenuID    string        `json:"menu_id" bson:"menu_id"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
}

func (e *OrderCreated) EventType() string     { return "OrderCreated" }
func (e *OrderCreated) AggregateID() string   { return e.OrderID.String() }
func (e *OrderCreated) OccurredAt() time.Time { return e.Timestamp }
func (e *OrderCreated) Version() int          { return 1 }

// DishAddedToOrder event
type DishAddedToOrder struct {
	OrderID      model.OrderID `json:"order_id" bson:"order_id"`
	Dish         model.Dish    `json:"dish" bson:"dish"`
	EventVersion int           `json:"version" bson:"version"`
	Timestamp    time.Time     `json:"timestamp" bson:"timestamp"`
}

func (e *DishAddedToOrder) EventType() string     { return "DishAddedToOrder" }
func (e *DishAddedToOrder) AggregateID() string   { return e.OrderID.String() }
func (e *DishAddedToOrder) OccurredAt() time.Time { return e.Timestamp }
func (e *DishAddedToOrder) Version() int          { return e.EventVersion }

// DishRemovedFromOrder event
type DishRemovedFromOrder struct {
	OrderID      model.OrderID `json:"order_id" bson:"order_id"`
	DishID       string        `json:"dish_id" bson:"dish_id"`
	EventVersion int           `json:"version" bson:"version"`
	Timestamp    time.Time     `json:"timestamp" bson:"timestamp"`
}

func (e *DishRemovedFromOrder) EventType() string     { return "DishRemovedFromOrder" }
func (e *DishRemovedFromOrder) AggregateID() string   { return e.OrderID.String() }
func (e *DishRemovedFromOrder) OccurredAt() time.Time { return e.Timestamp }
func (e *DishRemovedFromOrder) Version() int          { return e.EventVersion }

// OrderCanceled event
type OrderCanceled struct {
	OrderID      model.OrderID `json:"order_id" bson:"order_id"`
	CanceledBy   string        `json:"canceled_by" bson:"canceled_by"`
	EventVersion int           `json:"version" bson:"version"`
	Timestamp    time.Time     `json:"timestamp" bson:"timestamp"`
}

func (e *OrderCanceled) EventType() string     { return "OrderCanceled" }
func (e *OrderCanceled) AggregateID() string   { return e.OrderID.String() }
func (e *OrderCanceled) OccurredAt() time.Time { return e.Timestamp }
func (e *OrderCanceled) Version() int          { return e.EventVersion }

// OrderMarkedAsProcessed event. Raised when the purchase order consolidating
// this order was created; routed to the order by the purchase-order router.
type OrderMarkedAsProcessed struct {
	OrderID         model.OrderID `json:"order_id" bson:"order_id"`
	PurchaseOrderID string        `json:"purchase_order_id" bson:"purchase_order_id"`
	EventVersion    int           `json:"version" bson:"version"`
	Timestamp       time.Time     `json:"timestamp" bson:"timestamp"`
}

func (e *OrderMarkedAsProcessed) EventType() string     { return "OrderMarkedAsProcessed" }
func (e *OrderMarkedAsProcessed) AggregateID() string   { return e.OrderID.String() }
func (e *OrderMarkedAsProcessed) OccurredAt() time.Time { return e.Timestamp }
func (e *OrderMarkedAsProcessed) Version() int          { return e.EventVersion }
