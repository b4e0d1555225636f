package aggregate

import (
	"fmt"
	"time"

	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
	"lunchly/internal/domain/rejection"
	"lunchly/internal/domain/validation"
)

// PurchaseOrder consolidates the orders of one vendor for one day into a
// single record sent to the vendor. Status machine:
// CREATED -> VALIDATED -> SENT -> DELIVERED, with CANCELED reachable from any
// non-DELIVERED state and DELIVERED from any non-CANCELED state.
type PurchaseOrder struct {
	id           model.PurchaseOrderID
	status       model.PurchaseOrderStatus
	orders       []model.OrderSnapshot
	failures     []model.OrderValidationFailure
	createdBy    string
	canceledBy   string
	cancelReason string
	sentTo       string
	version      int
	createdAt    time.Time
	updatedAt    time.Time

	uncommittedEvents []event.DomainEvent
}

// NewPurchaseOrder consolidates the candidate orders. The purchase order is
// created unconditionally; only candidates passing the validation policy are
// retained. When any candidate fails, the returned purchase order carries the
// PurchaseOrderValidationFailed event and the error is the
// CannotCreatePurchaseOrder rejection: the caller must still persist the
// aggregate before reporting the rejection.
func NewPurchaseOrder(id model.PurchaseOrderID, createdBy string, candidates []model.OrderSnapshot) (*PurchaseOrder, error) {
	if id.VendorID == "" || id.Date.IsZero() {
		return nil, fmt.Errorf("purchase order id is incomplete: %s", id)
	}

	passed, failures := validation.SplitPurchaseOrderCandidates(candidates, id)
	if len(candidates) == 0 {
		failures = append(failures, model.OrderValidationFailure{Reason: "no orders to consolidate"})
	}

	po := &PurchaseOrder{}
	po.raiseEvent(&event.PurchaseOrderCreated{
		PurchaseOrderID: id,
		CreatedBy:       createdBy,
		Orders:          passed,
		Timestamp:       now(),
	})

	if len(failures) > 0 {
		po.raiseEvent(&event.PurchaseOrderValidationFailed{
			PurchaseOrderID: id,
			Failures:        failures,
			EventVersion:    po.version + 1,
			Timestamp:       now(),
		})
		return po, rejection.NewCannotCreatePurchaseOrder(id, failures)
	}

	po.raiseEvent(&event.PurchaseOrderValidationPassed{
		PurchaseOrderID: id,
		EventVersion:    po.version + 1,
		Timestamp:       now(),
	})
	return po, nil
}

// NewPurchaseOrderFromHistory rebuilds a purchase order by replaying events.
func NewPurchaseOrderFromHistory(events []event.DomainEvent) (*PurchaseOrder, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("no events provided")
	}

	po := &PurchaseOrder{}
	if err := po.LoadFromHistory(events); err != nil {
		return nil, err
	}
	return po, nil
}

// MarkSent records that the sender collaborator accepted the purchase order.
func (po *PurchaseOrder) MarkSent(sentTo string) {
	po.raiseEvent(&event.PurchaseOrderSent{
		PurchaseOrderID: po.id,
		SentTo:          sentTo,
		EventVersion:    po.version + 1,
		Timestamp:       now(),
	})
}

// RecordSendFailure records that the sender collaborator refused the purchase
// order. The status is left unchanged.
func (po *PurchaseOrder) RecordSendFailure(reason string) {
	po.raiseEvent(&event.PurchaseOrderSendFailed{
		PurchaseOrderID: po.id,
		Reason:          reason,
		EventVersion:    po.version + 1,
		Timestamp:       now(),
	})
}

// OverruleValidation manually overrides an automatic validation failure. It
// always raises PurchaseOrderValidationOverruled; the orders list is not
// touched.
func (po *PurchaseOrder) OverruleValidation(overruledBy, reason string) error {
	po.raiseEvent(&event.PurchaseOrderValidationOverruled{
		PurchaseOrderID: po.id,
		OverruledBy:     overruledBy,
		Reason:          reason,
		EventVersion:    po.version + 1,
		Timestamp:       now(),
	})
	return nil
}

// MarkAsDelivered transitions the purchase order to DELIVERED. Canceled
// purchase orders cannot be delivered.
func (po *PurchaseOrder) MarkAsDelivered(markedBy string) error {
	if po.status == model.PurchaseOrderStatusCanceled {
		return rejection.NewCannotMarkCanceledPurchaseOrderAsDelivered(po.id)
	}

	po.raiseEvent(&event.PurchaseOrderDelivered{
		PurchaseOrderID: po.id,
		MarkedBy:        markedBy,
		EventVersion:    po.version + 1,
		Timestamp:       now(),
	})
	return nil
}

// Cancel transitions the purchase order to CANCELED. The reason is a tagged
// choice: invalid (validation could not be satisfied) or a custom text.
// Delivered purchase orders cannot be canceled.
func (po *PurchaseOrder) Cancel(canceledBy string, invalid bool, reason string) error {
	if po.status == model.PurchaseOrderStatusDelivered {
		return rejection.NewCannotCancelDeliveredPurchaseOrder(po.id)
	}

	orderIDs := make([]string, 0, len(po.orders))
	for _, o := range po.orders {
		orderIDs = append(orderIDs, o.ID.String())
	}

	po.raiseEvent(&event.PurchaseOrderCanceled{
		PurchaseOrderID: po.id,
		CanceledBy:      canceledBy,
		Invalid:         invalid,
		Reason:          reason,
		OrderIDs:        orderIDs,
		EventVersion:    po.version + 1,
		Timestamp:       now(),
	})
	return nil
}

func (po *PurchaseOrder) GetUncommittedEvents() []event.DomainEvent {
	return po.uncommittedEvents
}

func (po *PurchaseOrder) ClearUncommittedEvents() {
	po.uncommittedEvents = nil
}

func (po *PurchaseOrder) raiseEvent(ev event.DomainEvent) {
	po.uncommittedEvents = append(po.uncommittedEvents, ev)
	po.applyEvent(ev)
}

func (po *PurchaseOrder) applyEvent(ev event.DomainEvent) error {
	switch e := ev.(type) {
	case *event.PurchaseOrderCreated:
		po.id = e.PurchaseOrderID
		po.createdBy = e.CreatedBy
		po.orders = e.Orders
		po.status = model.PurchaseOrderStatusCreated
		po.createdAt = e.Timestamp
		po.updatedAt = e.Timestamp
		po.version = 1

	case *event.PurchaseOrderValidationPassed:
		po.status = model.PurchaseOrderStatusValidated
		po.version = e.EventVersion
		po.updatedAt = e.Timestamp

	case *event.PurchaseOrderValidationFailed:
		po.failures = e.Failures
		po.version = e.EventVersion
		po.updatedAt = e.Timestamp

	case *event.PurchaseOrderValidationOverruled:
		if po.status == model.PurchaseOrderStatusCreated {
			po.status = model.PurchaseOrderStatusValidated
		}
		po.version = e.EventVersion
		po.updatedAt = e.Timestamp

	case *event.PurchaseOrderSent:
		po.status = model.PurchaseOrderStatusSent
		po.sentTo = e.SentTo
		po.version = e.EventVersion
		po.updatedAt = e.Timestamp

	case *event.PurchaseOrderSendFailed:
		po.version = e.EventVersion
		po.updatedAt = e.Timestamp

	case *event.PurchaseOrderDelivered:
		po.status = model.PurchaseOrderStatusDelivered
		po.version = e.EventVersion
		po.updatedAt = e.Timestamp

	case *event.PurchaseOrderCanceled:
		po.status = model.PurchaseOrderStatusCanceled
		po.canceledBy = e.CanceledBy
		// Exactly one reason branch applies.
		if e.Invalid {
			po.cancelReason = "invalid"
		} else {
			po.cancelReason = e.Reason
		}
		po.version = e.EventVersion
		po.updatedAt = e.Timestamp

	default:
		return fmt.Errorf("unknown event type: %T", ev)
	}

	return nil
}

// Getters
func (po *PurchaseOrder) ID() model.PurchaseOrderID                { return po.id }
func (po *PurchaseOrder) Status() model.PurchaseOrderStatus        { return po.status }
func (po *PurchaseOrder) Orders() []model.OrderSnapshot            { return po.orders }
func (po *PurchaseOrder) Failures() []model.OrderValidationFailure { return po.failures }
func (po *PurchaseOrder) CreatedBy() string                        { return po.createdBy }
func (po *PurchaseOrder) CanceledBy() string                       { return po.canceledBy }
func (po *PurchaseOrder) CancelReason() string                     { return po.cancelReason }
func (po *PurchaseOrder) SentTo() string                           { return po.sentTo }
func (po *PurchaseOrder) Version() int                             { return po.version }
func (po *PurchaseOrder) CreatedAt() time.Time                     { return po.createdAt }
func (po *PurchaseOrder) UpdatedAt() time.Time                     { return po.updatedAt }

// Entity interface implementation
func (po *PurchaseOrder) GetID() string      { return po.id.String() }
func (po *PurchaseOrder) SetID(id string)    {}
func (po *PurchaseOrder) GetVersion() int    { return po.version }
func (po *PurchaseOrder) SetVersion(ver int) { po.version = ver }

// AggregateRoot interface implementation
func (po *PurchaseOrder) MarkEventsAsCommitted() {
	po.uncommittedEvents = nil
}

func (po *PurchaseOrder) LoadFromHistory(events []event.DomainEvent) error {
	for _, e := range events {
		if err := po.applyEvent(e); err != nil {
			return fmt.Errorf("failed to apply event %s: %w", e.EventType(), err)
		}
	}
	return nil
}
