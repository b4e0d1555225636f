package event

import (
	"time"

	"lunchly/internal/domain/model"
)

// PurchaseOrderCreated event. Orders holds the snapshots that passed the
// consolidation policy; the purchase order is created even when some
// candidates failed.
type PurchaseOrderCreated struct {
	PurchaseOrderID model.PurchaseOrderID `json:"purchase_order_id" bson:"purchase_order_id"`
	CreatedBy       string                `json:"created_by" bson:"created_by"`
	Orders          []model.OrderSnapshot `json:"orders" bson:"orders"`
	Timestamp       time.Time             `json:"timestamp" bson:"timestamp"`
}

func (e *PurchaseOrderCreated) EventType() string     { return "PurchaseOrderCreated" }
func (e *PurchaseOrderCreated) AggregateID() string   { return e.PurchaseOrderID.String() }
func (e *PurchaseOrderCreated) OccurredAt() time.Time { return e.Timestamp }
func (e *PurchaseOrderCreated) Version() int          { return 1 }

// PurchaseOrderValidationPassed event
type PurchaseOrderValidationPassed struct {
	PurchaseOrderID model.PurchaseOrderID `json:"purchase_order_id" bson:"purchase_order_id"`
	EventVersion    int                   `json:"version" bson:"version"`
	Timestamp       time.Time             `json:"timestamp" bson:"timestamp"`
}

func (e *PurchaseOrderValidationPassed) EventType() string     { return "PurchaseOrderValidationPassed" }
func (e *PurchaseOrderValidationPassed) AggregateID() string   { return e.PurchaseOrderID.String() }
func (e *PurchaseOrderValidationPassed) OccurredAt() time.Time { return e.Timestamp }
func (e *PurchaseOrderValidationPassed) Version() int          { return e.EventVersion }

// PurchaseOrderValidationFailed event
type PurchaseOrderValidationFailed struct {
	PurchaseOrderID model.PurchaseOrderID          `json:"purchase_order_id" bson:"purchase_order_id"`
	Failures        []model.OrderValidationFailure `json:"failures" bson:"failures"`
	EventVersion    int                            `json:"version" bson:"version"`
	Timestamp       time.Time                      `json:"timestamp" bson:"timestamp"`
}

func (e *PurchaseOrderValidationFailed) EventType() string     { return "PurchaseOrderValidationFailed" }
func (e *PurchaseOrderValidationFailed) AggregateID() string   { return e.PurchaseOrderID.String() }
func (e *PurchaseOrderValidationFailed) OccurredAt() time.Time { return e.Timestamp }
func (e *PurchaseOrderValidationFailed) Version() int          { return e.EventVersion }

// PurchaseOrderValidationOverruled event. A manual override after automatic
// validation failed.
type PurchaseOrderValidationOverruled struct {
	PurchaseOrderID model.PurchaseOrderID `json:"purchase_order_id" bson:"purchase_order_id"`
	OverruledBy     string                `json:"overruled_by" bson:"overruled_by"`
	Reason          string                `json:"reason" bson:"reason"`
	EventVersion    int                   `json:"version" bson:"version"`
	Timestamp       time.Time             `json:"timestamp" bson:"timestamp"`
}

func (e *PurchaseOrderValidationOverruled) EventType() string {
	return "PurchaseOrderValidationOverruled"
}
func (e *PurchaseOrderValidationOverruled) AggregateID() string   { return e.PurchaseOrderID.String() }
func (e *PurchaseOrderValidationOverruled) OccurredAt() time.Time { return e.Timestamp }
func (e *PurchaseOrderValidationOverruled) Version() int          { return e.EventVersion }

// PurchaseOrderSent event
type PurchaseOrderSent struct {
	PurchaseOrderID model.PurchaseOrderID `json:"purchase_order_id" bson:"purchase_order_id"`
	SentTo          string                `json:"sent_to" bson:"sent_to"`
	EventVersion    int                   `json:"version" bson:"version"`
	Timestamp       time.Time             `json:"timestamp" bson:"timestamp"`
}

func (e *PurchaseOrderSent) EventType() string     { return "PurchaseOrderSent" }
func (e *PurchaseOrderSent) AggregateID() string   { return e.PurchaseOrderID.String() }
func (e *PurchaseOrderSent) OccurredAt() time.Time { return e.Timestamp }
func (e *PurchaseOrderSent) Version() int          { return e.EventVersion }

// PurchaseOrderSendFailed event. The sender collaborator refused the purchase
// order; the status stays where it was so sending can be retried upstream.
type PurchaseOrderSendFailed struct {
	PurchaseOrderID model.PurchaseOrderID `json:"purchase_order_id" bson:"purchase_order_id"`
	Reason          string                `json:"reason" bson:"reason"`
	EventVersion    int                   `json:"version" bson:"version"`
	Timestamp       time.Time             `json:"timestamp" bson:"timestamp"`
}

func (e *PurchaseOrderSendFailed) EventType() string     { return "PurchaseOrderSendFailed" }
func (e *PurchaseOrderSendFailed) AggregateID() string   { return e.PurchaseOrderID.String() }
func (e *PurchaseOrderSendFailed) OccurredAt() time.Time { return e.Timestamp }
func (e *PurchaseOrderSendFailed) Version() int          { return e.EventVersion }

// PurchaseOrderDelivered event
type PurchaseOrderDelivered struct {
	PurchaseOrderID model.PurchaseOrderID `json:"purchase_order_id" bson:"purchase_order_id"`
	MarkedBy        string                `json:"marked_by" bson:"marked_by"`
	EventVersion    int                   `json:"version" bson:"version"`
	Timestamp       time.Time             `json:"timestamp" bson:"timestamp"`
}

func (e *PurchaseOrderDelivered) EventType() string     { return "PurchaseOrderDelivered" }
func (e *PurchaseOrderDelivered) AggregateID() string   { return e.PurchaseOrderID.String() }
func (e *PurchaseOrderDelivered) OccurredAt() time.Time { return e.Timestamp }
func (e *PurchaseOrderDelivered) Version() int          { return e.EventVersion }

// PurchaseOrderCanceled event. The cancellation reason is a tagged choice:
// either Invalid is true (canceled because validation could not be satisfied)
// or Reason carries a custom explanation, never both.
type PurchaseOrderCanceled struct {
	PurchaseOrderID model.PurchaseOrderID `json:"purchase_order_id" bson:"purchase_order_id"`
	CanceledBy      string                `json:"canceled_by" bson:"canceled_by"`
	Invalid         bool                  `json:"invalid" bson:"invalid"`
	Reason          string                `json:"reason,omitempty" bson:"reason,omitempty"`
	OrderIDs        []string              `json:"order_ids" bson:"order_ids"`
	EventVersion    int                   `json:"version" bson:"version"`
	Timestamp       time.Time             `json:"timestamp" bson:"timestamp"`
}

func (e *PurchaseOrderCanceled) EventType() string     { return "PurchaseOrderCanceled" }
func (e *PurchaseOrderCanceled) AggregateID() string   { return e.PurchaseOrderID.String() }
func (e *PurchaseOrderCanceled) OccurredAt() time.Time { return e.Timestamp }
func (e *PurchaseOrderCanceled) Version() int          { return e.EventVersion }
