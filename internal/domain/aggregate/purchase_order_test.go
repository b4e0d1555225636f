package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
	"lunchly/internal/domain/rejection"
)

func testPurchaseOrderID() model.PurchaseOrderID {
	return model.PurchaseOrderID{VendorID: "vendor-1", Date: marchDate(16)}
}

func activeSnapshot(userID string) model.OrderSnapshot {
	return model.OrderSnapshot{
		ID:     model.OrderID{VendorID: "vendor-1", UserID: userID, Date: marchDate(16)},
		Status: model.OrderStatusActive,
		Dishes: []model.Dish{{ID: "dish-1", Name: "Minestrone", VendorID: "vendor-1", MenuID: "menu-1"}},
	}
}

func newValidPurchaseOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	po, err := NewPurchaseOrder(testPurchaseOrderID(), "admin", []model.OrderSnapshot{
		activeSnapshot("user-1"),
		activeSnapshot("user-2"),
	})
	require.NoError(t, err)
	return po
}

func TestNewPurchaseOrderAllCandidatesPass(t *testing.T) {
	po := newValidPurchaseOrder(t)

	assert.Equal(t, model.PurchaseOrderStatusValidated, po.Status())
	assert.Len(t, po.Orders(), 2)
	assert.Empty(t, po.Failures())

	events := po.GetUncommittedEvents()
	require.Len(t, events, 2)
	assert.IsType(t, &event.PurchaseOrderCreated{}, events[0])
	assert.IsType(t, &event.PurchaseOrderValidationPassed{}, events[1])
}

func TestNewPurchaseOrderPartialFailure(t *testing.T) {
	canceled := activeSnapshot("user-2")
	canceled.Status = model.OrderStatusCanceled

	po, err := NewPurchaseOrder(testPurchaseOrderID(), "admin", []model.OrderSnapshot{
		activeSnapshot("user-1"),
		canceled,
	})

	var rej rejection.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "CannotCreatePurchaseOrder", rej.RejectionKind())

	// The aggregate is returned alongside the rejection and must be persisted.
	require.NotNil(t, po)
	assert.Equal(t, model.PurchaseOrderStatusCreated, po.Status())
	assert.Len(t, po.Orders(), 1, "only passing candidates are retained")
	assert.Len(t, po.Failures(), 1)

	events := po.GetUncommittedEvents()
	require.Len(t, events, 2)
	assert.IsType(t, &event.PurchaseOrderCreated{}, events[0])
	assert.IsType(t, &event.PurchaseOrderValidationFailed{}, events[1])
}

func TestNewPurchaseOrderWithoutCandidates(t *testing.T) {
	po, err := NewPurchaseOrder(testPurchaseOrderID(), "admin", nil)

	var rej rejection.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "CannotCreatePurchaseOrder", rej.RejectionKind())

	require.NotNil(t, po)
	require.Len(t, po.Failures(), 1)
	assert.Equal(t, "no orders to consolidate", po.Failures()[0].Reason)
}

func TestNewPurchaseOrderRequiresCompleteID(t *testing.T) {
	_, err := NewPurchaseOrder(model.PurchaseOrderID{Date: marchDate(16)}, "admin", nil)
	assert.Error(t, err)

	_, err = NewPurchaseOrder(model.PurchaseOrderID{VendorID: "vendor-1"}, "admin", nil)
	assert.Error(t, err)
}

func TestMarkSent(t *testing.T) {
	po := newValidPurchaseOrder(t)

	po.MarkSent("orders@roma.example")

	assert.Equal(t, model.PurchaseOrderStatusSent, po.Status())
	assert.Equal(t, "orders@roma.example", po.SentTo())
}

func TestRecordSendFailureKeepsStatus(t *testing.T) {
	po := newValidPurchaseOrder(t)
	before := po.Status()

	po.RecordSendFailure("smtp connection refused")

	assert.Equal(t, before, po.Status())
	events := po.GetUncommittedEvents()
	assert.IsType(t, &event.PurchaseOrderSendFailed{}, events[len(events)-1])
}

func TestOverruleValidation(t *testing.T) {
	canceled := activeSnapshot("user-2")
	canceled.Status = model.OrderStatusCanceled

	po, _ := NewPurchaseOrder(testPurchaseOrderID(), "admin", []model.OrderSnapshot{
		activeSnapshot("user-1"),
		canceled,
	})
	require.Equal(t, model.PurchaseOrderStatusCreated, po.Status())

	require.NoError(t, po.OverruleValidation("admin", "vendor confirmed by phone"))
	assert.Equal(t, model.PurchaseOrderStatusValidated, po.Status())
	assert.Len(t, po.Orders(), 1, "overruling does not restore failed orders")
}

func TestOverruleValidationAfterSentKeepsStatus(t *testing.T) {
	po := newValidPurchaseOrder(t)
	po.MarkSent("orders@roma.example")

	require.NoError(t, po.OverruleValidation("admin", "late overrule"))

	assert.Equal(t, model.PurchaseOrderStatusSent, po.Status())
	events := po.GetUncommittedEvents()
	assert.IsType(t, &event.PurchaseOrderValidationOverruled{}, events[len(events)-1])
}

func TestMarkAsDelivered(t *testing.T) {
	po := newValidPurchaseOrder(t)
	po.MarkSent("orders@roma.example")

	require.NoError(t, po.MarkAsDelivered("admin"))
	assert.Equal(t, model.PurchaseOrderStatusDelivered, po.Status())
}

func TestMarkCanceledAsDelivered(t *testing.T) {
	po := newValidPurchaseOrder(t)
	require.NoError(t, po.Cancel("admin", false, "vendor closed"))

	var rej rejection.Rejection
	require.ErrorAs(t, po.MarkAsDelivered("admin"), &rej)
	assert.Equal(t, "CannotMarkCanceledPurchaseOrderAsDelivered", rej.RejectionKind())
}

func TestCancelWithCustomReason(t *testing.T) {
	po := newValidPurchaseOrder(t)

	require.NoError(t, po.Cancel("admin", false, "vendor closed"))

	assert.Equal(t, model.PurchaseOrderStatusCanceled, po.Status())
	assert.Equal(t, "admin", po.CanceledBy())
	assert.Equal(t, "vendor closed", po.CancelReason())
}

func TestCancelAsInvalid(t *testing.T) {
	po := newValidPurchaseOrder(t)

	require.NoError(t, po.Cancel("admin", true, "ignored text"))
	assert.Equal(t, "invalid", po.CancelReason())
}

func TestCancelCarriesRetainedOrderIDs(t *testing.T) {
	po := newValidPurchaseOrder(t)
	require.NoError(t, po.Cancel("admin", false, "vendor closed"))

	events := po.GetUncommittedEvents()
	canceled, ok := events[len(events)-1].(*event.PurchaseOrderCanceled)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{
		"vendor-1/user-1/2018-03-16",
		"vendor-1/user-2/2018-03-16",
	}, canceled.OrderIDs)
}

func TestCancelDeliveredPurchaseOrder(t *testing.T) {
	po := newValidPurchaseOrder(t)
	require.NoError(t, po.MarkAsDelivered("admin"))

	var rej rejection.Rejection
	require.ErrorAs(t, po.Cancel("admin", false, "too late"), &rej)
	assert.Equal(t, "CannotCancelDeliveredPurchaseOrder", rej.RejectionKind())
}

func TestPurchaseOrderReplay(t *testing.T) {
	po := newValidPurchaseOrder(t)
	po.MarkSent("orders@roma.example")
	require.NoError(t, po.MarkAsDelivered("admin"))

	replayed, err := NewPurchaseOrderFromHistory(po.GetUncommittedEvents())
	require.NoError(t, err)

	assert.Equal(t, po.ID(), replayed.ID())
	assert.Equal(t, po.Version(), replayed.Version())
	assert.Equal(t, po.Status(), replayed.Status())
	assert.Equal(t, po.SentTo(), replayed.SentTo())
	assert.Empty(t, replayed.GetUncommittedEvents())
}
