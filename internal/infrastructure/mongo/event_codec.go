package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"lunchly/internal/domain/event"
)

// eventDocument is the stored shape of a domain event. The envelope fields
// support querying and ordering; event_data holds the full event payload.
type eventDocument struct {
	AggregateID  string   `bson:"aggregate_id"`
	EventType    string   `bson:"event_type"`
	EventVersion int      `bson:"event_version"`
	EventData    bson.Raw `bson:"event_data"`
}

func newEventDocument(e event.DomainEvent) (interface{}, error) {
	data, err := bson.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event %s: %w", e.EventType(), err)
	}
	return bson.M{
		"aggregate_id":  e.AggregateID(),
		"event_type":    e.EventType(),
		"event_version": e.Version(),
		"occurred_at":   e.OccurredAt(),
		"event_data":    bson.Raw(data),
	}, nil
}

// decodeEvent rebuilds the concrete event struct from a stored document.
func decodeEvent(doc eventDocument) (event.DomainEvent, error) {
	var e event.DomainEvent
	switch doc.EventType {
	case "VendorAdded":
		e = &event.VendorAdded{}
	case "VendorUpdated":
		e = &event.VendorUpdated{}
	case "MenuImported":
		e = &event.MenuImported{}
	case "DateRangeForMenuSet":
		e = &event.DateRangeForMenuSet{}
	case "OrderCreated":
		e = &event.OrderCreated{}
	case "DishAddedToOrder":
		e = &event.DishAddedToOrder{}
	case "DishRemovedFromOrder":
		e = &event.DishRemovedFromOrder{}
	case "OrderCanceled":
		e = &event.OrderCanceled{}
	case "OrderMarkedAsProcessed":
		e = &event.OrderMarkedAsProcessed{}
	case "PurchaseOrderCreated":
		e = &event.PurchaseOrderCreated{}
	case "PurchaseOrderValidationPassed":
		e = &event.PurchaseOrderValidationPassed{}
	case "PurchaseOrderValidationFailed":
		e = &event.PurchaseOrderValidationFailed{}
	case "PurchaseOrderValidationOverruled":
		e = &event.PurchaseOrderValidationOverruled{}
	case "PurchaseOrderSent":
		e = &event.PurchaseOrderSent{}
	case "PurchaseOrderSendFailed":
		e = &event.PurchaseOrderSendFailed{}
	case "PurchaseOrderDelivered":
		e = &event.PurchaseOrderDelivered{}
	case "PurchaseOrderCanceled":
		e = &event.PurchaseOrderCanceled{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", doc.EventType)
	}

	if err := bson.Unmarshal(doc.EventData, e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event %s: %w", doc.EventType, err)
	}
	return e, nil
}
