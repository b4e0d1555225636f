package model

import (
	"fmt"
	"strings"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusProcessed OrderStatus = "PROCESSED"
	OrderStatusCanceled  OrderStatus = "CANCELED"

	// OrderStatusUnknown marks a consolidation candidate whose order id could
	// not be resolved; it always fails the purchase-order validation policy.
	OrderStatusUnknown OrderStatus = "UNKNOWN"
)

// PurchaseOrderStatus is the lifecycle state of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusCreated   PurchaseOrderStatus = "CREATED"
	PurchaseOrderStatusValidated PurchaseOrderStatus = "VALIDATED"
	PurchaseOrderStatusSent      PurchaseOrderStatus = "SENT"
	PurchaseOrderStatusCanceled  PurchaseOrderStatus = "CANCELED"
	PurchaseOrderStatusDelivered PurchaseOrderStatus = "DELIVERED"
)

// Dish is a single menu item. VendorID and MenuID identify where the dish
// comes from; orders use them to verify a dish belongs to the order's vendor.
type Dish struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	VendorID string `json:"vendor_id" bson:"vendor_id"`
	MenuID   string `json:"menu_id" bson:"menu_id"`
}

// MenuDateRange is an inclusive range of calendar dates during which a menu
// is effective. The zero value means "no range set yet".
type MenuDateRange struct {
	Start Date `json:"start" bson:"start"`
	End   Date `json:"end" bson:"end"`
}

// IsZero reports whether no range has been set.
func (r MenuDateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether d falls inside the range (inclusive).
func (r MenuDateRange) Contains(d Date) bool {
	if r.IsZero() {
		return false
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r MenuDateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}

// Menu is a vendor's list of dishes, optionally effective for a date range.
type Menu struct {
	ID        string        `json:"id" bson:"id"`
	Dishes    []Dish        `json:"dishes" bson:"dishes"`
	DateRange MenuDateRange `json:"date_range,omitempty" bson:"date_range,omitempty"`
}

// Covers reports whether the menu is effective on the given date. A menu
// without a date range covers nothing.
func (m Menu) Covers(d Date) bool {
	return m.DateRange.Contains(d)
}

// OrderID identifies an order: one user ordering from one vendor for one day.
type OrderID struct {
	VendorID string `json:"vendor_id" bson:"vendor_id"`
	UserID   string `json:"user_id" bson:"user_id"`
	Date     Date   `json:"date" bson:"date"`
}

func (id OrderID) String() string {
	return id.VendorID + "/" + id.UserID + "/" + id.Date.String()
}

// ParseOrderID parses the string form produced by OrderID.String.
func ParseOrderID(s string) (OrderID, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return OrderID{}, fmt.Errorf("invalid order id %q", s)
	}
	d, err := ParseDate(parts[2])
	if err != nil {
		return OrderID{}, fmt.Errorf("invalid order id %q: %w", s, err)
	}
	return OrderID{VendorID: parts[0], UserID: parts[1], Date: d}, nil
}

// PurchaseOrderID identifies a purchase order: one vendor, one day.
type PurchaseOrderID struct {
	VendorID string `json:"vendor_id" bson:"vendor_id"`
	Date     Date   `json:"date" bson:"date"`
}

func (id PurchaseOrderID) String() string {
	return id.VendorID + "/" + id.Date.String()
}

// ParsePurchaseOrderID parses the string form produced by PurchaseOrderID.String.
func ParsePurchaseOrderID(s string) (PurchaseOrderID, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return PurchaseOrderID{}, fmt.Errorf("invalid purchase order id %q", s)
	}
	d, err := ParseDate(parts[1])
	if err != nil {
		return PurchaseOrderID{}, fmt.Errorf("invalid purchase order id %q: %w", s, err)
	}
	return PurchaseOrderID{VendorID: parts[0], Date: d}, nil
}

// OrderSnapshot is the immutable view of an order taken when it is
// consolidated into a purchase order.
type OrderSnapshot struct {
	ID     OrderID     `json:"id" bson:"id"`
	Status OrderStatus `json:"status" bson:"status"`
	Dishes []Dish      `json:"dishes" bson:"dishes"`
}

// OrderValidationFailure names one order that failed the purchase-order
// consolidation policy and why.
type OrderValidationFailure struct {
	OrderID string `json:"order_id" bson:"order_id"`
	Reason  string `json:"reason" bson:"reason"`
}
