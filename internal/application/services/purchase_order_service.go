package services

import (
	"context"

	"lunchly/internal/application/command"
	"lunchly/internal/application/query"
	"lunchly/internal/domain/model"
)

// PurchaseOrderService handles purchase order operations
type PurchaseOrderService struct {
	createHandler     *command.CreatePurchaseOrderHandler
	markValidHandler  *command.MarkPurchaseOrderAsValidHandler
	deliveredHandler  *command.MarkPurchaseOrderAsDeliveredHandler
	cancelHandler     *command.CancelPurchaseOrderHandler
	getHandler        *query.GetPurchaseOrderHandler
	listByVendHandler *query.ListPurchaseOrdersHandler
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	createHandler *command.CreatePurchaseOrderHandler,
	markValidHandler *command.MarkPurchaseOrderAsValidHandler,
	deliveredHandler *command.MarkPurchaseOrderAsDeliveredHandler,
	cancelHandler *command.CancelPurchaseOrderHandler,
	getHandler *query.GetPurchaseOrderHandler,
	listByVendHandler *query.ListPurchaseOrdersHandler,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		createHandler:     createHandler,
		markValidHandler:  markValidHandler,
		deliveredHandler:  deliveredHandler,
		cancelHandler:     cancelHandler,
		getHandler:        getHandler,
		listByVendHandler: listByVendHandler,
	}
}

// CreatePurchaseOrder consolidates orders into a purchase order
func (s *PurchaseOrderService) CreatePurchaseOrder(ctx context.Context, cmd *command.CreatePurchaseOrder) error {
	return s.createHandler.Handle(ctx, cmd)
}

// MarkAsValid manually overrides a failed validation
func (s *PurchaseOrderService) MarkAsValid(ctx context.Context, cmd *command.MarkPurchaseOrderAsValid) error {
	return s.markValidHandler.Handle(ctx, cmd)
}

// MarkAsDelivered confirms delivery of a purchase order
func (s *PurchaseOrderService) MarkAsDelivered(ctx context.Context, cmd *command.MarkPurchaseOrderAsDelivered) error {
	return s.deliveredHandler.Handle(ctx, cmd)
}

// CancelPurchaseOrder cancels a purchase order
func (s *PurchaseOrderService) CancelPurchaseOrder(ctx context.Context, cmd *command.CancelPurchaseOrder) error {
	return s.cancelHandler.Handle(ctx, cmd)
}

// GetPurchaseOrder retrieves a purchase order by ID
func (s *PurchaseOrderService) GetPurchaseOrder(ctx context.Context, id model.PurchaseOrderID) (interface{}, error) {
	return s.getHandler.Handle(ctx, id)
}

// ListPurchaseOrders retrieves a vendor's purchase orders with pagination
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, vendorID string, offset, limit int) ([]interface{}, error) {
	return s.listByVendHandler.Handle(ctx, vendorID, offset, limit)
}
