package query

import (
	"context"
	"fmt"

	"lunchly/internal/domain/model"
	"lunchly/pkg/errors"
)

// OrderProjection interface for order read model
type OrderProjection interface {
	GetByID(ctx context.Context, id model.OrderID) (interface{}, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]interface{}, error)
	ListByVendorAndDate(ctx context.Context, vendorID string, date model.Date) ([]interface{}, error)
}

// GetOrderHandler handles get order by ID queries
type GetOrderHandler struct {
	projection OrderProjection
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(projection OrderProjection) *GetOrderHandler {
	return &GetOrderHandler{
		projection: projection,
	}
}

// Handle processes the get order query
func (h *GetOrderHandler) Handle(ctx context.Context, orderID model.OrderID) (interface{}, error) {
	if orderID.VendorID == "" || orderID.UserID == "" || orderID.Date.IsZero() {
		return nil, errors.NewValidationError("order_id must carry vendor, user and date")
	}

	order, err := h.projection.GetByID(ctx, orderID)
	if err != nil {
		return nil, errors.NewNotFoundError("order")
	}

	return order, nil
}

// ListOrdersByUserHandler handles list orders by user queries
type ListOrdersByUserHandler struct {
	projection OrderProjection
}

// NewListOrdersByUserHandler creates a new list orders by user handler
func NewListOrdersByUserHandler(projection OrderProjection) *ListOrdersByUserHandler {
	return &ListOrdersByUserHandler{
		projection: projection,
	}
}

// Handle processes the list orders by user query
func (h *ListOrdersByUserHandler) Handle(ctx context.Context, userID string, offset, limit int) ([]interface{}, error) {
	if userID == "" {
		return nil, errors.NewValidationError("user_id is required")
	}
	if limit == 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	orders, err := h.projection.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to list orders: %v", err))
	}

	return orders, nil
}

// ListOrdersForConsolidationHandler lists the orders of one vendor for one day,
// the candidate set a purchase order is built from.
type ListOrdersForConsolidationHandler struct {
	projection OrderProjection
}

// NewListOrdersForConsolidationHandler creates a new consolidation list handler
func NewListOrdersForConsolidationHandler(projection OrderProjection) *ListOrdersForConsolidationHandler {
	return &ListOrdersForConsolidationHandler{
		projection: projection,
	}
}

// Handle processes the consolidation list query
func (h *ListOrdersForConsolidationHandler) Handle(ctx context.Context, vendorID string, date model.Date) ([]interface{}, error) {
	if vendorID == "" {
		return nil, errors.NewValidationError("vendor_id is required")
	}
	if date.IsZero() {
		return nil, errors.NewValidationError("date is required")
	}

	orders, err := h.projection.ListByVendorAndDate(ctx, vendorID, date)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to list orders: %v", err))
	}

	return orders, nil
}
