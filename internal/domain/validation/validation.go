// Package validation holds the pure business-rule checks shared by the
// aggregates. Validators never return errors; they return decisions the
// aggregate command handlers turn into rejections.
package validation

import (
	"fmt"

	"lunchly/internal/domain/model"
)

// IsDateRangeValid reports whether a menu date range is well formed: the
// start must not be after the end, and the range must not start in the past.
func IsDateRangeValid(r model.MenuDateRange, today model.Date) bool {
	if r.IsZero() {
		return false
	}
	return !r.Start.After(r.End) && !r.Start.Before(today)
}

// RangesOverlap reports whether two effective date ranges share at least one
// day. Unset ranges overlap nothing.
func RangesOverlap(a, b model.MenuDateRange) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// OverlapsAny reports whether r overlaps any of the given ranges.
func OverlapsAny(r model.MenuDateRange, existing []model.MenuDateRange) bool {
	for _, e := range existing {
		if RangesOverlap(r, e) {
			return true
		}
	}
	return false
}

// CheckPurchaseOrderCandidate applies the consolidation policy to a single
// candidate order: it must be ACTIVE, placed with the purchase order's
// vendor, dated on the purchase order's day, and hold at least one dish.
// The empty string means the candidate passes.
func CheckPurchaseOrderCandidate(o model.OrderSnapshot, poID model.PurchaseOrderID) string {
	switch {
	case o.Status != model.OrderStatusActive:
		return fmt.Sprintf("order is %s, not %s", o.Status, model.OrderStatusActive)
	case o.ID.VendorID != poID.VendorID:
		return fmt.Sprintf("order vendor %s does not match purchase order vendor %s", o.ID.VendorID, poID.VendorID)
	case !o.ID.Date.Equal(poID.Date):
		return fmt.Sprintf("order date %s does not match purchase order date %s", o.ID.Date, poID.Date)
	case len(o.Dishes) == 0:
		return "order has no dishes"
	default:
		return ""
	}
}

// SplitPurchaseOrderCandidates partitions the candidates into the orders that
// pass the consolidation policy and the failures for those that do not.
func SplitPurchaseOrderCandidates(candidates []model.OrderSnapshot, poID model.PurchaseOrderID) ([]model.OrderSnapshot, []model.OrderValidationFailure) {
	var passed []model.OrderSnapshot
	var failures []model.OrderValidationFailure
	for _, c := range candidates {
		if reason := CheckPurchaseOrderCandidate(c, poID); reason != "" {
			failures = append(failures, model.OrderValidationFailure{OrderID: c.ID.String(), Reason: reason})
			continue
		}
		passed = append(passed, c)
	}
	return passed, failures
}
