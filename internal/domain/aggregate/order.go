package aggregate

import (
	"fmt"
	"time"

	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
	"lunchly/internal/domain/rejection"
)

// Order is a single user's per-day order against a vendor's menu. Dishes may
// only change while the order is ACTIVE; the order terminates at CANCELED or,
// via purchase-order routing, at PROCESSED.
type Order struct {
	id        model.OrderID
	menuID    string
	status    model.OrderStatus
	dishes    []model.Dish
	version   int
	createdAt time.Time
	updatedAt time.Time

	uncommittedEvents []event.DomainEvent
}

// NewOrder creates an order and raises OrderCreated. Order-id uniqueness and
// menu availability are cross-aggregate facts checked by the command handler.
func NewOrder(id model.OrderID, menuID string) (*Order, error) {
	if id.VendorID == "" || id.UserID == "" || id.Date.IsZero() {
		return nil, fmt.Errorf("order id is incomplete: %s", id)
	}
	if menuID == "" {
		return nil, fmt.Errorf("menu id cannot be empty")
	}

	order := &Order{}
	order.raiseEvent(&event.OrderCreated{
		OrderID:   id,
		MenuID:    menuID,
		Timestamp: now(),
	})
	return order, nil
}

// NewOrderFromHistory rebuilds an order by replaying its events.
func NewOrderFromHistory(events []event.DomainEvent) (*Order, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("no events provided")
	}

	order := &Order{}
	if err := order.LoadFromHistory(events); err != nil {
		return nil, err
	}
	return order, nil
}

// AddDish adds a dish while the order is ACTIVE. The dish must come from a
// menu of the order's vendor.
func (o *Order) AddDish(d model.Dish) error {
	if d.VendorID != o.id.VendorID {
		return rejection.NewDishVendorMismatch(o.id, d.ID, d.VendorID)
	}
	if o.status != model.OrderStatusActive {
		return rejection.NewCannotAddDishToNotActiveOrder(o.id, d.ID, o.status)
	}

	o.raiseEvent(&event.DishAddedToOrder{
		OrderID:      o.id,
		Dish:         d,
		EventVersion: o.version + 1,
		Timestamp:    now(),
	})
	return nil
}

// RemoveDish removes a dish while the order is ACTIVE.
func (o *Order) RemoveDish(dishID string) error {
	if o.status != model.OrderStatusActive {
		return rejection.NewCannotRemoveDishFromNotActiveOrder(o.id, dishID, o.status)
	}
	if !o.hasDish(dishID) {
		return rejection.NewCannotRemoveMissingDish(o.id, dishID)
	}

	o.raiseEvent(&event.DishRemovedFromOrder{
		OrderID:      o.id,
		DishID:       dishID,
		EventVersion: o.version + 1,
		Timestamp:    now(),
	})
	return nil
}

// Cancel terminates an ACTIVE order.
func (o *Order) Cancel(canceledBy string) error {
	if o.status != model.OrderStatusActive {
		return rejection.NewCannotCancelProcessedOrder(o.id, o.status)
	}

	o.raiseEvent(&event.OrderCanceled{
		OrderID:      o.id,
		CanceledBy:   canceledBy,
		EventVersion: o.version + 1,
		Timestamp:    now(),
	})
	return nil
}

// MarkAsProcessed records that the order was folded into a purchase order.
// Routed deliveries are fire-and-forget, so an order that is no longer ACTIVE
// is left unchanged and no event is raised.
func (o *Order) MarkAsProcessed(purchaseOrderID string) {
	if o.status != model.OrderStatusActive {
		return
	}

	o.raiseEvent(&event.OrderMarkedAsProcessed{
		OrderID:         o.id,
		PurchaseOrderID: purchaseOrderID,
		EventVersion:    o.version + 1,
		Timestamp:       now(),
	})
}

// Snapshot returns the immutable view consolidated into a purchase order.
func (o *Order) Snapshot() model.OrderSnapshot {
	dishes := make([]model.Dish, len(o.dishes))
	copy(dishes, o.dishes)
	return model.OrderSnapshot{ID: o.id, Status: o.status, Dishes: dishes}
}

func (o *Order) hasDish(dishID string) bool {
	for _, d := range o.dishes {
		if d.ID == dishID {
			return true
		}
	}
	return false
}

func (o *Order) GetUncommittedEvents() []event.DomainEvent {
	return o.uncommittedEvents
}

func (o *Order) ClearUncommittedEvents() {
	o.uncommittedEvents = nil
}

func (o *Order) raiseEvent(ev event.DomainEvent) {
	o.uncommittedEvents = append(o.uncommittedEvents, ev)
	o.applyEvent(ev)
}

func (o *Order) applyEvent(ev event.DomainEvent) error {
	switch e := ev.(type) {
	case *event.OrderCreated:
		o.id = e.OrderID
		o.menuID = e.MenuID
		o.status = model.OrderStatusActive
		o.createdAt = e.Timestamp
		o.updatedAt = e.Timestamp
		o.version = 1

	case *event.DishAddedToOrder:
		o.dishes = append(o.dishes, e.Dish)
		o.version = e.EventVersion
		o.updatedAt = e.Timestamp

	case *event.DishRemovedFromOrder:
		for i, d := range o.dishes {
			if d.ID == e.DishID {
				o.dishes = append(o.dishes[:i], o.dishes[i+1:]...)
				break
			}
		}
		o.version = e.EventVersion
		o.updatedAt = e.Timestamp

	case *event.OrderCanceled:
		o.status = model.OrderStatusCanceled
		o.version = e.EventVersion
		o.updatedAt = e.Timestamp

	case *event.OrderMarkedAsProcessed:
		o.status = model.OrderStatusProcessed
		o.version = e.EventVersion
		o.updatedAt = e.Timestamp

	default:
		return fmt.Errorf("unknown event type: %T", ev)
	}

	return nil
}

// Getters
func (o *Order) ID() model.OrderID         { return o.id }
func (o *Order) MenuID() string            { return o.menuID }
func (o *Order) Status() model.OrderStatus { return o.status }
func (o *Order) Dishes() []model.Dish      { return o.dishes }
func (o *Order) Version() int              { return o.version }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }

// Entity interface implementation
func (o *Order) GetID() string      { return o.id.String() }
func (o *Order) SetID(id string)    {}
func (o *Order) GetVersion() int    { return o.version }
func (o *Order) SetVersion(ver int) { o.version = ver }

// AggregateRoot interface implementation
func (o *Order) MarkEventsAsCommitted() {
	o.uncommittedEvents = nil
}

func (o *Order) LoadFromHistory(events []event.DomainEvent) error {
	for _, e := range events {
		if err := o.applyEvent(e); err != nil {
			return fmt.Errorf("failed to apply event %s: %w", e.EventType(), err)
		}
	}
	return nil
}
