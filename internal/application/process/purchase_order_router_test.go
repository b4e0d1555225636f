package process

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
	"lunchly/internal/infrastructure/bus"
	"lunchly/internal/infrastructure/memory"
)

func routerOrderID(userID string) model.OrderID {
	return model.OrderID{VendorID: "vendor-1", UserID: userID, Date: model.NewDate(2018, time.March, 16)}
}

func routerPOID() model.PurchaseOrderID {
	return model.PurchaseOrderID{VendorID: "vendor-1", Date: model.NewDate(2018, time.March, 16)}
}

// seedOrder persists an active order through the shared stores.
func seedOrder(t *testing.T, factory *memory.UnitOfWorkFactory, userID string) model.OrderID {
	t.Helper()
	ctx := context.Background()
	orderID := routerOrderID(userID)

	order, err := aggregate.NewOrder(orderID, "menu-1")
	require.NoError(t, err)

	uow := factory.CreateUnitOfWork()
	defer uow.Close()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Save(ctx, order))
	require.NoError(t, uow.Commit(ctx))

	return orderID
}

func orderStatus(t *testing.T, factory *memory.UnitOfWorkFactory, orderID model.OrderID) model.OrderStatus {
	t.Helper()
	order, err := factory.CreateUnitOfWork().OrderRepository().GetByID(context.Background(), orderID)
	require.NoError(t, err)
	return order.Status()
}

func TestTargetOrderIDs(t *testing.T) {
	created := &event.PurchaseOrderCreated{
		PurchaseOrderID: routerPOID(),
		Orders: []model.OrderSnapshot{
			{ID: routerOrderID("user-1")},
			{ID: routerOrderID("user-2")},
		},
	}
	assert.Equal(t, []model.OrderID{routerOrderID("user-1"), routerOrderID("user-2")}, TargetOrderIDs(created))

	canceled := &event.PurchaseOrderCanceled{
		PurchaseOrderID: routerPOID(),
		OrderIDs:        []string{"vendor-1/user-1/2018-03-16", "not-an-order-id"},
	}
	assert.Equal(t, []model.OrderID{routerOrderID("user-1")}, TargetOrderIDs(canceled), "unparsable ids are skipped")

	assert.Nil(t, TargetOrderIDs(&event.PurchaseOrderSent{PurchaseOrderID: routerPOID()}))
}

func TestRouterMarksOrdersProcessed(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	eventBus := bus.NewInMemoryEventBus()
	router := NewPurchaseOrderRouter(factory, eventBus, zap.NewNop())

	var published []string
	eventBus.Subscribe("OrderMarkedAsProcessed", bus.EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		published = append(published, evt.AggregateID())
		return nil
	}))

	order1 := seedOrder(t, factory, "user-1")
	order2 := seedOrder(t, factory, "user-2")

	require.NoError(t, router.Handle(context.Background(), &event.PurchaseOrderCreated{
		PurchaseOrderID: routerPOID(),
		Orders: []model.OrderSnapshot{
			{ID: order1, Status: model.OrderStatusActive},
			{ID: order2, Status: model.OrderStatusActive},
		},
		Timestamp: time.Now(),
	}))

	assert.Equal(t, model.OrderStatusProcessed, orderStatus(t, factory, order1))
	assert.Equal(t, model.OrderStatusProcessed, orderStatus(t, factory, order2))
	assert.ElementsMatch(t, []string{order1.String(), order2.String()}, published)
}

func TestRouterToleratesMissingOrders(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	eventBus := bus.NewInMemoryEventBus()
	router := NewPurchaseOrderRouter(factory, eventBus, zap.NewNop())

	existing := seedOrder(t, factory, "user-1")

	require.NoError(t, router.Handle(context.Background(), &event.PurchaseOrderCreated{
		PurchaseOrderID: routerPOID(),
		Orders: []model.OrderSnapshot{
			{ID: routerOrderID("user-404"), Status: model.OrderStatusActive},
			{ID: existing, Status: model.OrderStatusActive},
		},
		Timestamp: time.Now(),
	}))

	assert.Equal(t, model.OrderStatusProcessed, orderStatus(t, factory, existing))
}

func TestRouterSkipsNotActiveOrders(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	eventBus := bus.NewInMemoryEventBus()
	router := NewPurchaseOrderRouter(factory, eventBus, zap.NewNop())

	ctx := context.Background()
	orderID := seedOrder(t, factory, "user-1")

	// Cancel between consolidation and routed delivery.
	uow := factory.CreateUnitOfWork()
	require.NoError(t, uow.Begin(ctx))
	order, err := uow.OrderRepository().GetByID(ctx, orderID)
	require.NoError(t, err)
	require.NoError(t, order.Cancel("user-1"))
	require.NoError(t, uow.OrderRepository().Save(ctx, order))
	require.NoError(t, uow.Commit(ctx))
	uow.Close()

	require.NoError(t, router.Handle(ctx, &event.PurchaseOrderCreated{
		PurchaseOrderID: routerPOID(),
		Orders:          []model.OrderSnapshot{{ID: orderID, Status: model.OrderStatusActive}},
		Timestamp:       time.Now(),
	}))

	assert.Equal(t, model.OrderStatusCanceled, orderStatus(t, factory, orderID))
}

func TestRouterLeavesOrdersOnCancellation(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	eventBus := bus.NewInMemoryEventBus()
	router := NewPurchaseOrderRouter(factory, eventBus, zap.NewNop())

	orderID := seedOrder(t, factory, "user-1")

	require.NoError(t, router.Handle(context.Background(), &event.PurchaseOrderCanceled{
		PurchaseOrderID: routerPOID(),
		CanceledBy:      "admin",
		Reason:          "vendor closed",
		OrderIDs:        []string{orderID.String()},
		EventVersion:    2,
		Timestamp:       time.Now(),
	}))

	assert.Equal(t, model.OrderStatusActive, orderStatus(t, factory, orderID), "cancellation does not reopen or touch orders")
}

func TestRouterRegister(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	eventBus := bus.NewInMemoryEventBus()
	router := NewPurchaseOrderRouter(factory, eventBus, zap.NewNop())

	require.NoError(t, router.Register(eventBus))

	orderID := seedOrder(t, factory, "user-1")
	require.NoError(t, eventBus.Publish(context.Background(), &event.PurchaseOrderCreated{
		PurchaseOrderID: routerPOID(),
		Orders:          []model.OrderSnapshot{{ID: orderID, Status: model.OrderStatusActive}},
		Timestamp:       time.Now(),
	}))

	assert.Equal(t, model.OrderStatusProcessed, orderStatus(t, factory, orderID))
}
