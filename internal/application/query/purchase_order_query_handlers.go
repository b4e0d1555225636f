package query

import (
	"context"
	"fmt"

	"lunchly/internal/domain/model"
	"lunchly/pkg/errors"
)

// PurchaseOrderProjection interface for purchase order read model
type PurchaseOrderProjection interface {
	GetByID(ctx context.Context, id model.PurchaseOrderID) (interface{}, error)
	ListByVendor(ctx context.Context, vendorID string, offset, limit int) ([]interface{}, error)
}

// GetPurchaseOrderHandler handles get purchase order by ID queries
type GetPurchaseOrderHandler struct {
	projection PurchaseOrderProjection
}

// NewGetPurchaseOrderHandler creates a new get purchase order handler
func NewGetPurchaseOrderHandler(projection PurchaseOrderProjection) *GetPurchaseOrderHandler {
	return &GetPurchaseOrderHandler{
		projection: projection,
	}
}

// Handle processes the get purchase order query
func (h *GetPurchaseOrderHandler) Handle(ctx context.Context, id model.PurchaseOrderID) (interface{}, error) {
	if id.VendorID == "" || id.Date.IsZero() {
		return nil, errors.NewValidationError("purchase_order_id must carry vendor and date")
	}

	po, err := h.projection.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("purchase order")
	}

	return po, nil
}

// ListPurchaseOrdersHandler handles list purchase orders by vendor queries
type ListPurchaseOrdersHandler struct {
	projection PurchaseOrderProjection
}

// NewListPurchaseOrdersHandler creates a new list purchase orders handler
func NewListPurchaseOrdersHandler(projection PurchaseOrderProjection) *ListPurchaseOrdersHandler {
	return &ListPurchaseOrdersHandler{
		projection: projection,
	}
}

// Handle processes the list purchase orders query
func (h *ListPurchaseOrdersHandler) Handle(ctx context.Context, vendorID string, offset, limit int) ([]interface{}, error) {
	if vendorID == "" {
		return nil, errors.NewValidationError("vendor_id is required")
	}
	if limit == 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	pos, err := h.projection.ListByVendor(ctx, vendorID, offset, limit)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to list purchase orders: %v", err))
	}

	return pos, nil
}
