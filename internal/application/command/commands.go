package command

import "lunchly/internal/domain/model"

// ============================================
// Vendor Commands
// ============================================

// AddVendor registers a new vendor. Vendor names are unique system-wide.
type AddVendor struct {
	VendorID   string   `json:"vendor_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phones     []string `json:"phones"`
	PODeadline string   `json:"po_deadline"`
	ActingUser string   `json:"-"`
}

// UpdateVendor replaces the vendor's profile fields, last writer wins.
type UpdateVendor struct {
	VendorID   string   `json:"vendor_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phones     []string `json:"phones"`
	PODeadline string   `json:"po_deadline"`
	ActingUser string   `json:"-"`
}

// ImportMenu appends a new menu (no date range yet) to a vendor.
type ImportMenu struct {
	VendorID   string       `json:"vendor_id"`
	MenuID     string       `json:"menu_id"`
	Dishes     []model.Dish `json:"dishes"`
	ActingUser string       `json:"-"`
}

// SetMenuDateRange sets the effective date range of a vendor's menu.
type SetMenuDateRange struct {
	VendorID   string              `json:"vendor_id"`
	MenuID     string              `json:"menu_id"`
	Range      model.MenuDateRange `json:"range"`
	ActingUser string              `json:"-"`
}

// ============================================
// Order Commands
// ============================================

// CreateOrder opens a user's order for one vendor and one day.
type CreateOrder struct {
	OrderID model.OrderID `json:"order_id"`
	MenuID  string        `json:"menu_id"`
}

// AddDishToOrder adds a dish to an active order.
type AddDishToOrder struct {
	OrderID model.OrderID `json:"order_id"`
	Dish    model.Dish    `json:"dish"`
}

// RemoveDishFromOrder removes a dish from an active order.
type RemoveDishFromOrder struct {
	OrderID model.OrderID `json:"order_id"`
	DishID  string        `json:"dish_id"`
}

// CancelOrder cancels an active order.
type CancelOrder struct {
	OrderID    model.OrderID `json:"order_id"`
	ActingUser string        `json:"-"`
}

// ============================================
// Purchase Order Commands
// ============================================

// CreatePurchaseOrder consolidates the given orders into a purchase order for
// one vendor and one day and submits it to the vendor.
type CreatePurchaseOrder struct {
	PurchaseOrderID model.PurchaseOrderID `json:"purchase_order_id"`
	OrderIDs        []model.OrderID       `json:"order_ids"`
	ActingUser      string                `json:"-"`
}

// MarkPurchaseOrderAsValid manually overrules an automatic validation failure.
type MarkPurchaseOrderAsValid struct {
	PurchaseOrderID model.PurchaseOrderID `json:"purchase_order_id"`
	Reason          string                `json:"reason"`
	ActingUser      string                `json:"-"`
}

// MarkPurchaseOrderAsDelivered records the vendor fulfilled the purchase order.
type MarkPurchaseOrderAsDelivered struct {
	PurchaseOrderID model.PurchaseOrderID `json:"purchase_order_id"`
	ActingUser      string                `json:"-"`
}

// CancelPurchaseOrder cancels a purchase order. Invalid and Reason are a
// tagged choice: invalid cancellation or a custom explanation.
type CancelPurchaseOrder struct {
	PurchaseOrderID model.PurchaseOrderID `json:"purchase_order_id"`
	Invalid         bool                  `json:"invalid"`
	Reason          string                `json:"reason"`
	ActingUser      string                `json:"-"`
}
