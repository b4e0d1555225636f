package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lunchly/internal/domain/model"
)

func date(day int) model.Date {
	return model.NewDate(2018, time.March, day)
}

func rangeOf(start, end int) model.MenuDateRange {
	return model.MenuDateRange{Start: date(start), End: date(end)}
}

func TestIsDateRangeValid(t *testing.T) {
	today := date(10)

	assert.True(t, IsDateRangeValid(rangeOf(10, 16), today))
	assert.True(t, IsDateRangeValid(rangeOf(16, 16), today), "single-day range")
	assert.False(t, IsDateRangeValid(rangeOf(16, 10), today), "start after end")
	assert.False(t, IsDateRangeValid(rangeOf(9, 16), today), "starts in the past")
	assert.False(t, IsDateRangeValid(model.MenuDateRange{}, today), "unset range")
}

func TestRangesOverlap(t *testing.T) {
	assert.True(t, RangesOverlap(rangeOf(10, 16), rangeOf(16, 20)), "shared boundary day")
	assert.True(t, RangesOverlap(rangeOf(10, 16), rangeOf(12, 14)), "contained range")
	assert.False(t, RangesOverlap(rangeOf(10, 16), rangeOf(17, 20)), "adjacent ranges")
	assert.False(t, RangesOverlap(model.MenuDateRange{}, rangeOf(10, 16)), "unset overlaps nothing")
}

func TestOverlapsAny(t *testing.T) {
	existing := []model.MenuDateRange{rangeOf(1, 5), rangeOf(20, 25)}

	assert.False(t, OverlapsAny(rangeOf(10, 16), existing))
	assert.True(t, OverlapsAny(rangeOf(5, 6), existing))
	assert.False(t, OverlapsAny(rangeOf(10, 16), nil))
}

func TestCheckPurchaseOrderCandidate(t *testing.T) {
	poID := model.PurchaseOrderID{VendorID: "vendor-1", Date: date(16)}
	good := model.OrderSnapshot{
		ID:     model.OrderID{VendorID: "vendor-1", UserID: "user-1", Date: date(16)},
		Status: model.OrderStatusActive,
		Dishes: []model.Dish{{ID: "dish-1", Name: "Soup", VendorID: "vendor-1"}},
	}

	assert.Empty(t, CheckPurchaseOrderCandidate(good, poID))

	canceled := good
	canceled.Status = model.OrderStatusCanceled
	assert.Contains(t, CheckPurchaseOrderCandidate(canceled, poID), "CANCELED")

	wrongVendor := good
	wrongVendor.ID.VendorID = "vendor-2"
	assert.Contains(t, CheckPurchaseOrderCandidate(wrongVendor, poID), "vendor")

	wrongDate := good
	wrongDate.ID.Date = date(17)
	assert.Contains(t, CheckPurchaseOrderCandidate(wrongDate, poID), "date")

	empty := good
	empty.Dishes = nil
	assert.Contains(t, CheckPurchaseOrderCandidate(empty, poID), "no dishes")
}

func TestSplitPurchaseOrderCandidates(t *testing.T) {
	poID := model.PurchaseOrderID{VendorID: "vendor-1", Date: date(16)}
	good := model.OrderSnapshot{
		ID:     model.OrderID{VendorID: "vendor-1", UserID: "user-1", Date: date(16)},
		Status: model.OrderStatusActive,
		Dishes: []model.Dish{{ID: "dish-1", Name: "Soup", VendorID: "vendor-1"}},
	}
	bad := good
	bad.ID.UserID = "user-2"
	bad.Status = model.OrderStatusCanceled

	passed, failures := SplitPurchaseOrderCandidates([]model.OrderSnapshot{good, bad}, poID)

	assert.Len(t, passed, 1)
	assert.Equal(t, good.ID, passed[0].ID)
	assert.Len(t, failures, 1)
	assert.Equal(t, bad.ID.String(), failures[0].OrderID)
	assert.NotEmpty(t, failures[0].Reason)
}
