// Package rejection defines the expected business-rule failures a command can
// produce. A rejection is returned to the command submitter instead of events;
// it never corrupts aggregate state. Unlike pkg/errors (application plumbing
// failures), every rejection carries the offending identifiers and the time
// the command was refused.
package rejection

import (
	"fmt"
	"time"

	"lunchly/internal/domain/model"
)

// clock is overridable in tests.
var clock = time.Now

// Rejection is implemented by every business-rule failure.
type Rejection interface {
	error
	RejectionKind() string
	OccurredAt() time.Time
}

// VendorAlreadyExists is returned when adding a vendor whose name is taken.
type VendorAlreadyExists struct {
	VendorName string
	Timestamp  time.Time
}

func NewVendorAlreadyExists(name string) *VendorAlreadyExists {
	return &VendorAlreadyExists{VendorName: name, Timestamp: clock()}
}

func (r *VendorAlreadyExists) Error() string {
	return fmt.Sprintf("vendor %q already exists", r.VendorName)
}
func (r *VendorAlreadyExists) RejectionKind() string { return "VendorAlreadyExists" }
func (r *VendorAlreadyExists) OccurredAt() time.Time { return r.Timestamp }

// CannotSetDateRange is returned when a menu date range is invalid or would
// overlap another menu's effective range.
type CannotSetDateRange struct {
	VendorID  string
	MenuID    string
	Range     model.MenuDateRange
	Reason    string
	Timestamp time.Time
}

func NewCannotSetDateRange(vendorID, menuID string, r model.MenuDateRange, reason string) *CannotSetDateRange {
	return &CannotSetDateRange{VendorID: vendorID, MenuID: menuID, Range: r, Reason: reason, Timestamp: clock()}
}

func (r *CannotSetDateRange) Error() string {
	return fmt.Sprintf("cannot set date range %s for menu %s of vendor %s: %s", r.Range, r.MenuID, r.VendorID, r.Reason)
}
func (r *CannotSetDateRange) RejectionKind() string { return "CannotSetDateRange" }
func (r *CannotSetDateRange) OccurredAt() time.Time { return r.Timestamp }

// OrderAlreadyExists is returned when creating an order whose id is taken.
type OrderAlreadyExists struct {
	OrderID   model.OrderID
	Timestamp time.Time
}

func NewOrderAlreadyExists(id model.OrderID) *OrderAlreadyExists {
	return &OrderAlreadyExists{OrderID: id, Timestamp: clock()}
}

func (r *OrderAlreadyExists) Error() string {
	return fmt.Sprintf("order %s already exists", r.OrderID)
}
func (r *OrderAlreadyExists) RejectionKind() string { return "OrderAlreadyExists" }
func (r *OrderAlreadyExists) OccurredAt() time.Time { return r.Timestamp }

// MenuNotAvailable is returned when no menu of the vendor covers the order's
// date.
type MenuNotAvailable struct {
	OrderID   model.OrderID
	MenuID    string
	Timestamp time.Time
}

func NewMenuNotAvailable(id model.OrderID, menuID string) *MenuNotAvailable {
	return &MenuNotAvailable{OrderID: id, MenuID: menuID, Timestamp: clock()}
}

func (r *MenuNotAvailable) Error() string {
	return fmt.Sprintf("menu %s of vendor %s is not available on %s", r.MenuID, r.OrderID.VendorID, r.OrderID.Date)
}
func (r *MenuNotAvailable) RejectionKind() string { return "MenuNotAvailable" }
func (r *MenuNotAvailable) OccurredAt() time.Time { return r.Timestamp }

// DishVendorMismatch is returned when a dish from another vendor's menu is
// added to an order.
type DishVendorMismatch struct {
	OrderID      model.OrderID
	DishID       string
	DishVendorID string
	Timestamp    time.Time
}

func NewDishVendorMismatch(id model.OrderID, dishID, dishVendorID string) *DishVendorMismatch {
	return &DishVendorMismatch{OrderID: id, DishID: dishID, DishVendorID: dishVendorID, Timestamp: clock()}
}

func (r *DishVendorMismatch) Error() string {
	return fmt.Sprintf("dish %s belongs to vendor %s, not to order vendor %s", r.DishID, r.DishVendorID, r.OrderID.VendorID)
}
func (r *DishVendorMismatch) RejectionKind() string { return "DishVendorMismatch" }
func (r *DishVendorMismatch) OccurredAt() time.Time { return r.Timestamp }

// CannotAddDishToNotActiveOrder is returned when adding a dish to an order
// that is no longer ACTIVE.
type CannotAddDishToNotActiveOrder struct {
	OrderID   model.OrderID
	DishID    string
	Status    model.OrderStatus
	Timestamp time.Time
}

func NewCannotAddDishToNotActiveOrder(id model.OrderID, dishID string, status model.OrderStatus) *CannotAddDishToNotActiveOrder {
	return &CannotAddDishToNotActiveOrder{OrderID: id, DishID: dishID, Status: status, Timestamp: clock()}
}

func (r *CannotAddDishToNotActiveOrder) Error() string {
	return fmt.Sprintf("cannot add dish %s to order %s with status %s", r.DishID, r.OrderID, r.Status)
}
func (r *CannotAddDishToNotActiveOrder) RejectionKind() string {
	return "CannotAddDishToNotActiveOrder"
}
func (r *CannotAddDishToNotActiveOrder) OccurredAt() time.Time { return r.Timestamp }

// CannotRemoveDishFromNotActiveOrder is returned when removing a dish from an
// order that is no longer ACTIVE.
type CannotRemoveDishFromNotActiveOrder struct {
	OrderID   model.OrderID
	DishID    string
	Status    model.OrderStatus
	Timestamp time.Time
}

func NewCannotRemoveDishFromNotActiveOrder(id model.OrderID, dishID string, status model.OrderStatus) *CannotRemoveDishFromNotActiveOrder {
	return &CannotRemoveDishFromNotActiveOrder{OrderID: id, DishID: dishID, Status: status, Timestamp: clock()}
}

func (r *CannotRemoveDishFromNotActiveOrder) Error() string {
	return fmt.Sprintf("cannot remove dish %s from order %s with status %s", r.DishID, r.OrderID, r.Status)
}
func (r *CannotRemoveDishFromNotActiveOrder) RejectionKind() string {
	return "CannotRemoveDishFromNotActiveOrder"
}
func (r *CannotRemoveDishFromNotActiveOrder) OccurredAt() time.Time { return r.Timestamp }

// CannotRemoveMissingDish is returned when the dish to remove is not on the
// order.
type CannotRemoveMissingDish struct {
	OrderID   model.OrderID
	DishID    string
	Timestamp time.Time
}

func NewCannotRemoveMissingDish(id model.OrderID, dishID string) *CannotRemoveMissingDish {
	return &CannotRemoveMissingDish{OrderID: id, DishID: dishID, Timestamp: clock()}
}

func (r *CannotRemoveMissingDish) Error() string {
	return fmt.Sprintf("order %s has no dish %s", r.OrderID, r.DishID)
}
func (r *CannotRemoveMissingDish) RejectionKind() string { return "CannotRemoveMissingDish" }
func (r *CannotRemoveMissingDish) OccurredAt() time.Time { return r.Timestamp }

// CannotCancelProcessedOrder is returned when canceling an order that is no
// longer ACTIVE.
type CannotCancelProcessedOrder struct {
	OrderID   model.OrderID
	Status    model.OrderStatus
	Timestamp time.Time
}

func NewCannotCancelProcessedOrder(id model.OrderID, status model.OrderStatus) *CannotCancelProcessedOrder {
	return &CannotCancelProcessedOrder{OrderID: id, Status: status, Timestamp: clock()}
}

func (r *CannotCancelProcessedOrder) Error() string {
	return fmt.Sprintf("cannot cancel order %s with status %s", r.OrderID, r.Status)
}
func (r *CannotCancelProcessedOrder) RejectionKind() string { return "CannotCancelProcessedOrder" }
func (r *CannotCancelProcessedOrder) OccurredAt() time.Time { return r.Timestamp }

// CannotCreatePurchaseOrder is returned when at least one consolidated order
// failed the purchase-order validation policy. The purchase order record
// itself is still created; only the passing orders are retained.
type CannotCreatePurchaseOrder struct {
	PurchaseOrderID model.PurchaseOrderID
	Failures        []model.OrderValidationFailure
	Timestamp       time.Time
}

func NewCannotCreatePurchaseOrder(id model.PurchaseOrderID, failures []model.OrderValidationFailure) *CannotCreatePurchaseOrder {
	return &CannotCreatePurchaseOrder{PurchaseOrderID: id, Failures: failures, Timestamp: clock()}
}

func (r *CannotCreatePurchaseOrder) Error() string {
	return fmt.Sprintf("cannot create purchase order %s: %d order(s) failed validation", r.PurchaseOrderID, len(r.Failures))
}
func (r *CannotCreatePurchaseOrder) RejectionKind() string { return "CannotCreatePurchaseOrder" }
func (r *CannotCreatePurchaseOrder) OccurredAt() time.Time { return r.Timestamp }

// CannotMarkCanceledPurchaseOrderAsDelivered is returned when delivering a
// canceled purchase order.
type CannotMarkCanceledPurchaseOrderAsDelivered struct {
	PurchaseOrderID model.PurchaseOrderID
	Timestamp       time.Time
}

func NewCannotMarkCanceledPurchaseOrderAsDelivered(id model.PurchaseOrderID) *CannotMarkCanceledPurchaseOrderAsDelivered {
	return &CannotMarkCanceledPurchaseOrderAsDelivered{PurchaseOrderID: id, Timestamp: clock()}
}

func (r *CannotMarkCanceledPurchaseOrderAsDelivered) Error() string {
	return fmt.Sprintf("purchase order %s is canceled and cannot be marked as delivered", r.PurchaseOrderID)
}
func (r *CannotMarkCanceledPurchaseOrderAsDelivered) RejectionKind() string {
	return "CannotMarkCanceledPurchaseOrderAsDelivered"
}
func (r *CannotMarkCanceledPurchaseOrderAsDelivered) OccurredAt() time.Time { return r.Timestamp }

// CannotCancelDeliveredPurchaseOrder is returned when canceling a purchase
// order that was already delivered.
type CannotCancelDeliveredPurchaseOrder struct {
	PurchaseOrderID model.PurchaseOrderID
	Timestamp       time.Time
}

func NewCannotCancelDeliveredPurchaseOrder(id model.PurchaseOrderID) *CannotCancelDeliveredPurchaseOrder {
	return &CannotCancelDeliveredPurchaseOrder{PurchaseOrderID: id, Timestamp: clock()}
}

func (r *CannotCancelDeliveredPurchaseOrder) Error() string {
	return fmt.Sprintf("purchase order %s is delivered and cannot be canceled", r.PurchaseOrderID)
}
func (r *CannotCancelDeliveredPurchaseOrder) RejectionKind() string {
	return "CannotCancelDeliveredPurchaseOrder"
}
func (r *CannotCancelDeliveredPurchaseOrder) OccurredAt() time.Time { return r.Timestamp }
