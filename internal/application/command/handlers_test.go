package command

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
	"lunchly/internal/domain/rejection"
	"lunchly/internal/infrastructure/bus"
	"lunchly/internal/infrastructure/memory"
)

// fakeSender records send attempts and can be told to fail.
type fakeSender struct {
	err   error
	calls int
	from  string
	to    string
}

func (s *fakeSender) SendPurchaseOrder(ctx context.Context, po *aggregate.PurchaseOrder, fromEmail, toEmail string) error {
	s.calls++
	s.from = fromEmail
	s.to = toEmail
	return s.err
}

type testEnv struct {
	factory *memory.UnitOfWorkFactory
	bus     *bus.InMemoryEventBus
	sender  *fakeSender

	addVendor        *AddVendorHandler
	updateVendor     *UpdateVendorHandler
	importMenu       *ImportMenuHandler
	setMenuDateRange *SetMenuDateRangeHandler
	createOrder      *CreateOrderHandler
	addDish          *AddDishToOrderHandler
	removeDish       *RemoveDishFromOrderHandler
	cancelOrder      *CancelOrderHandler
	createPO         *CreatePurchaseOrderHandler
	markPOValid      *MarkPurchaseOrderAsValidHandler
	markPODelivered  *MarkPurchaseOrderAsDeliveredHandler
	cancelPO         *CancelPurchaseOrderHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	factory := memory.NewUnitOfWorkFactory()
	eventBus := bus.NewInMemoryEventBus()
	sender := &fakeSender{}
	logger := zap.NewNop()

	return &testEnv{
		factory:          factory,
		bus:              eventBus,
		sender:           sender,
		addVendor:        NewAddVendorHandler(factory, eventBus, logger),
		updateVendor:     NewUpdateVendorHandler(factory, eventBus, logger),
		importMenu:       NewImportMenuHandler(factory, eventBus, logger),
		setMenuDateRange: NewSetMenuDateRangeHandler(factory, eventBus, logger),
		createOrder:      NewCreateOrderHandler(factory, eventBus, logger),
		addDish:          NewAddDishToOrderHandler(factory, eventBus, logger),
		removeDish:       NewRemoveDishFromOrderHandler(factory, eventBus, logger),
		cancelOrder:      NewCancelOrderHandler(factory, eventBus, logger),
		createPO:         NewCreatePurchaseOrderHandler(factory, eventBus, sender, "po@lunchly.example", logger),
		markPOValid:      NewMarkPurchaseOrderAsValidHandler(factory, eventBus, logger),
		markPODelivered:  NewMarkPurchaseOrderAsDeliveredHandler(factory, eventBus, logger),
		cancelPO:         NewCancelPurchaseOrderHandler(factory, eventBus, logger),
	}
}

// futureDate keeps menu ranges ahead of the wall clock the date validation
// checks against.
func futureDate(day int) model.Date {
	return model.NewDate(2100, time.March, day)
}

// setupVendorWithMenu registers vendor-1 with menu-1 effective over March 2100.
func (env *testEnv) setupVendorWithMenu(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, env.addVendor.Handle(ctx, &AddVendor{
		VendorID:   "vendor-1",
		Name:       "Roma Trattoria",
		Email:      "orders@roma.example",
		Phones:     []string{"555-0100"},
		PODeadline: "10:30",
		ActingUser: "admin",
	}))

	require.NoError(t, env.importMenu.Handle(ctx, &ImportMenu{
		VendorID:   "vendor-1",
		MenuID:     "menu-1",
		Dishes:     []model.Dish{{ID: "dish-1", Name: "Minestrone"}},
		ActingUser: "admin",
	}))

	require.NoError(t, env.setMenuDateRange.Handle(ctx, &SetMenuDateRange{
		VendorID:   "vendor-1",
		MenuID:     "menu-1",
		Range:      model.MenuDateRange{Start: futureDate(1), End: futureDate(31)},
		ActingUser: "admin",
	}))
}

// createActiveOrder opens an order for the user and puts one dish in it.
func (env *testEnv) createActiveOrder(t *testing.T, userID string) model.OrderID {
	t.Helper()
	ctx := context.Background()
	orderID := model.OrderID{VendorID: "vendor-1", UserID: userID, Date: futureDate(16)}

	require.NoError(t, env.createOrder.Handle(ctx, &CreateOrder{OrderID: orderID, MenuID: "menu-1"}))
	require.NoError(t, env.addDish.Handle(ctx, &AddDishToOrder{
		OrderID: orderID,
		Dish:    model.Dish{ID: "dish-1", Name: "Minestrone", VendorID: "vendor-1", MenuID: "menu-1"},
	}))
	return orderID
}

func TestAddVendor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cmd := &AddVendor{Name: "Roma Trattoria", Email: "orders@roma.example", ActingUser: "admin"}
	require.NoError(t, env.addVendor.Handle(ctx, cmd))
	assert.NotEmpty(t, cmd.VendorID, "a vendor id is generated when missing")

	vendor, err := env.factory.CreateUnitOfWork().VendorRepository().GetByID(ctx, cmd.VendorID)
	require.NoError(t, err)
	assert.Equal(t, "Roma Trattoria", vendor.Name())
}

func TestAddVendorDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.addVendor.Handle(ctx, &AddVendor{Name: "Roma Trattoria", Email: "a@roma.example", ActingUser: "admin"}))

	err := env.addVendor.Handle(ctx, &AddVendor{Name: "Roma Trattoria", Email: "b@roma.example", ActingUser: "admin"})
	var rej rejection.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "VendorAlreadyExists", rej.RejectionKind())
}

func TestAddVendorValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Error(t, env.addVendor.Handle(ctx, nil))
	assert.Error(t, env.addVendor.Handle(ctx, &AddVendor{Email: "a@b.example"}))
	assert.Error(t, env.addVendor.Handle(ctx, &AddVendor{Name: "Roma"}))
}

func TestUpdateVendor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)

	require.NoError(t, env.updateVendor.Handle(ctx, &UpdateVendor{
		VendorID:   "vendor-1",
		Name:       "Roma Trattoria",
		Email:      "kitchen@roma.example",
		ActingUser: "admin",
	}))

	vendor, err := env.factory.CreateUnitOfWork().VendorRepository().GetByID(ctx, "vendor-1")
	require.NoError(t, err)
	assert.Equal(t, "kitchen@roma.example", vendor.Email())
}

func TestUpdateUnknownVendor(t *testing.T) {
	env := newTestEnv(t)

	err := env.updateVendor.Handle(context.Background(), &UpdateVendor{
		VendorID: "vendor-404", Name: "Ghost", Email: "ghost@example", ActingUser: "admin",
	})
	assert.Error(t, err)
}

func TestImportMenuStampsDishes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)

	cmd := &ImportMenu{
		VendorID:   "vendor-1",
		Dishes:     []model.Dish{{Name: "Tiramisu"}},
		ActingUser: "admin",
	}
	require.NoError(t, env.importMenu.Handle(ctx, cmd))
	assert.NotEmpty(t, cmd.MenuID)

	vendor, err := env.factory.CreateUnitOfWork().VendorRepository().GetByID(ctx, "vendor-1")
	require.NoError(t, err)
	require.Len(t, vendor.Menus(), 2)

	imported := vendor.Menus()[1]
	require.Len(t, imported.Dishes, 1)
	assert.NotEmpty(t, imported.Dishes[0].ID)
	assert.Equal(t, "vendor-1", imported.Dishes[0].VendorID)
	assert.Equal(t, cmd.MenuID, imported.Dishes[0].MenuID)
}

func TestSetMenuDateRangeRejectionPropagates(t *testing.T) {
	env := newTestEnv(t)
	env.setupVendorWithMenu(t)

	err := env.setMenuDateRange.Handle(context.Background(), &SetMenuDateRange{
		VendorID:   "vendor-1",
		MenuID:     "menu-404",
		Range:      model.MenuDateRange{Start: futureDate(1), End: futureDate(2)},
		ActingUser: "admin",
	})

	var rej rejection.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "CannotSetDateRange", rej.RejectionKind())
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)

	var created []string
	env.bus.Subscribe("OrderCreated", bus.EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		created = append(created, evt.AggregateID())
		return nil
	}))

	orderID := env.createActiveOrder(t, "user-1")

	order, err := env.factory.CreateUnitOfWork().OrderRepository().GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusActive, order.Status())
	assert.Len(t, order.Dishes(), 1)
	assert.Equal(t, []string{orderID.String()}, created, "events are published after commit")
}

func TestCreateOrderDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)
	orderID := env.createActiveOrder(t, "user-1")

	err := env.createOrder.Handle(ctx, &CreateOrder{OrderID: orderID, MenuID: "menu-1"})
	var rej rejection.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "OrderAlreadyExists", rej.RejectionKind())
}

func TestCreateOrderMenuNotAvailable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)

	// 2100-04-01 is outside the effective range of menu-1.
	orderID := model.OrderID{VendorID: "vendor-1", UserID: "user-1", Date: model.NewDate(2100, time.April, 1)}
	err := env.createOrder.Handle(ctx, &CreateOrder{OrderID: orderID, MenuID: "menu-1"})

	var rej rejection.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "MenuNotAvailable", rej.RejectionKind())
}

func TestRemoveDishFromOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)
	orderID := env.createActiveOrder(t, "user-1")

	require.NoError(t, env.removeDish.Handle(ctx, &RemoveDishFromOrder{OrderID: orderID, DishID: "dish-1"}))

	order, err := env.factory.CreateUnitOfWork().OrderRepository().GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Empty(t, order.Dishes())
}

func TestCancelOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)
	orderID := env.createActiveOrder(t, "user-1")

	require.NoError(t, env.cancelOrder.Handle(ctx, &CancelOrder{OrderID: orderID, ActingUser: "user-1"}))

	order, err := env.factory.CreateUnitOfWork().OrderRepository().GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCanceled, order.Status())

	var rej rejection.Rejection
	require.ErrorAs(t, env.cancelOrder.Handle(ctx, &CancelOrder{OrderID: orderID, ActingUser: "user-1"}), &rej)
	assert.Equal(t, "CannotCancelProcessedOrder", rej.RejectionKind())
}

func TestCreatePurchaseOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)

	order1 := env.createActiveOrder(t, "user-1")
	order2 := env.createActiveOrder(t, "user-2")
	poID := model.PurchaseOrderID{VendorID: "vendor-1", Date: futureDate(16)}

	require.NoError(t, env.createPO.Handle(ctx, &CreatePurchaseOrder{
		PurchaseOrderID: poID,
		OrderIDs:        []model.OrderID{order1, order2},
		ActingUser:      "admin",
	}))

	assert.Equal(t, 1, env.sender.calls)
	assert.Equal(t, "po@lunchly.example", env.sender.from)
	assert.Equal(t, "orders@roma.example", env.sender.to)

	po, err := env.factory.CreateUnitOfWork().PurchaseOrderRepository().GetByID(ctx, poID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseOrderStatusSent, po.Status())
	assert.Equal(t, "orders@roma.example", po.SentTo())
	assert.Len(t, po.Orders(), 2)
}

func TestCreatePurchaseOrderSendFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)
	env.sender.err = fmt.Errorf("smtp connection refused")

	orderID := env.createActiveOrder(t, "user-1")
	poID := model.PurchaseOrderID{VendorID: "vendor-1", Date: futureDate(16)}

	// A failed send is recorded on the purchase order, not surfaced as a
	// command failure.
	require.NoError(t, env.createPO.Handle(ctx, &CreatePurchaseOrder{
		PurchaseOrderID: poID,
		OrderIDs:        []model.OrderID{orderID},
		ActingUser:      "admin",
	}))

	po, err := env.factory.CreateUnitOfWork().PurchaseOrderRepository().GetByID(ctx, poID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseOrderStatusValidated, po.Status())
	assert.Empty(t, po.SentTo())
}

func TestCreatePurchaseOrderPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)

	good := env.createActiveOrder(t, "user-1")
	canceled := env.createActiveOrder(t, "user-2")
	require.NoError(t, env.cancelOrder.Handle(ctx, &CancelOrder{OrderID: canceled, ActingUser: "user-2"}))

	poID := model.PurchaseOrderID{VendorID: "vendor-1", Date: futureDate(16)}
	err := env.createPO.Handle(ctx, &CreatePurchaseOrder{
		PurchaseOrderID: poID,
		OrderIDs:        []model.OrderID{good, canceled},
		ActingUser:      "admin",
	})

	var rej rejection.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "CannotCreatePurchaseOrder", rej.RejectionKind())
	assert.Zero(t, env.sender.calls, "failed validation is never sent")

	// The purchase order is persisted with its failures despite the rejection.
	po, getErr := env.factory.CreateUnitOfWork().PurchaseOrderRepository().GetByID(ctx, poID)
	require.NoError(t, getErr)
	assert.Equal(t, model.PurchaseOrderStatusCreated, po.Status())
	assert.Len(t, po.Orders(), 1)
	assert.Len(t, po.Failures(), 1)
}

func TestCreatePurchaseOrderUnknownCandidate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)

	missing := model.OrderID{VendorID: "vendor-1", UserID: "user-404", Date: futureDate(16)}
	poID := model.PurchaseOrderID{VendorID: "vendor-1", Date: futureDate(16)}

	err := env.createPO.Handle(ctx, &CreatePurchaseOrder{
		PurchaseOrderID: poID,
		OrderIDs:        []model.OrderID{missing},
		ActingUser:      "admin",
	})

	var rej rejection.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "CannotCreatePurchaseOrder", rej.RejectionKind())
}

func TestMarkPurchaseOrderAsValid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)

	good := env.createActiveOrder(t, "user-1")
	canceled := env.createActiveOrder(t, "user-2")
	require.NoError(t, env.cancelOrder.Handle(ctx, &CancelOrder{OrderID: canceled, ActingUser: "user-2"}))

	poID := model.PurchaseOrderID{VendorID: "vendor-1", Date: futureDate(16)}
	require.Error(t, env.createPO.Handle(ctx, &CreatePurchaseOrder{
		PurchaseOrderID: poID,
		OrderIDs:        []model.OrderID{good, canceled},
		ActingUser:      "admin",
	}))

	require.NoError(t, env.markPOValid.Handle(ctx, &MarkPurchaseOrderAsValid{
		PurchaseOrderID: poID,
		Reason:          "vendor confirmed by phone",
		ActingUser:      "admin",
	}))

	po, err := env.factory.CreateUnitOfWork().PurchaseOrderRepository().GetByID(ctx, poID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseOrderStatusValidated, po.Status())
}

func TestMarkPurchaseOrderAsDelivered(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)

	orderID := env.createActiveOrder(t, "user-1")
	poID := model.PurchaseOrderID{VendorID: "vendor-1", Date: futureDate(16)}
	require.NoError(t, env.createPO.Handle(ctx, &CreatePurchaseOrder{
		PurchaseOrderID: poID,
		OrderIDs:        []model.OrderID{orderID},
		ActingUser:      "admin",
	}))

	require.NoError(t, env.markPODelivered.Handle(ctx, &MarkPurchaseOrderAsDelivered{
		PurchaseOrderID: poID,
		ActingUser:      "admin",
	}))

	po, err := env.factory.CreateUnitOfWork().PurchaseOrderRepository().GetByID(ctx, poID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseOrderStatusDelivered, po.Status())
}

func TestCancelPurchaseOrderReasonValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Error(t, env.cancelPO.Handle(ctx, &CancelPurchaseOrder{
		PurchaseOrderID: model.PurchaseOrderID{VendorID: "vendor-1", Date: futureDate(16)},
	}), "a reason is required")

	assert.Error(t, env.cancelPO.Handle(ctx, &CancelPurchaseOrder{
		PurchaseOrderID: model.PurchaseOrderID{VendorID: "vendor-1", Date: futureDate(16)},
		Invalid:         true,
		Reason:          "both set",
	}), "invalid and reason are mutually exclusive")
}

func TestCancelPurchaseOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupVendorWithMenu(t)

	orderID := env.createActiveOrder(t, "user-1")
	poID := model.PurchaseOrderID{VendorID: "vendor-1", Date: futureDate(16)}
	require.NoError(t, env.createPO.Handle(ctx, &CreatePurchaseOrder{
		PurchaseOrderID: poID,
		OrderIDs:        []model.OrderID{orderID},
		ActingUser:      "admin",
	}))

	require.NoError(t, env.cancelPO.Handle(ctx, &CancelPurchaseOrder{
		PurchaseOrderID: poID,
		Reason:          "vendor closed",
		ActingUser:      "admin",
	}))

	po, err := env.factory.CreateUnitOfWork().PurchaseOrderRepository().GetByID(ctx, poID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseOrderStatusCanceled, po.Status())
	assert.Equal(t, "vendor closed", po.CancelReason())
}
