package services

import (
	"context"

	"lunchly/internal/application/command"
	"lunchly/internal/application/query"
	"lunchly/internal/domain/model"
)

// OrderService handles order operations
type OrderService struct {
	createOrderHandler             *command.CreateOrderHandler
	addDishHandler                 *command.AddDishToOrderHandler
	removeDishHandler              *command.RemoveDishFromOrderHandler
	cancelOrderHandler             *command.CancelOrderHandler
	getOrderHandler                *query.GetOrderHandler
	listOrdersByUserHandler        *query.ListOrdersByUserHandler
	listOrdersConsolidationHandler *query.ListOrdersForConsolidationHandler
}

// NewOrderService creates a new order service
func NewOrderService(
	createOrderHandler *command.CreateOrderHandler,
	addDishHandler *command.AddDishToOrderHandler,
	removeDishHandler *command.RemoveDishFromOrderHandler,
	cancelOrderHandler *command.CancelOrderHandler,
	getOrderHandler *query.GetOrderHandler,
	listOrdersByUserHandler *query.ListOrdersByUserHandler,
	listOrdersConsolidationHandler *query.ListOrdersForConsolidationHandler,
) *OrderService {
	return &OrderService{
		createOrderHandler:             createOrderHandler,
		addDishHandler:                 addDishHandler,
		removeDishHandler:              removeDishHandler,
		cancelOrderHandler:             cancelOrderHandler,
		getOrderHandler:                getOrderHandler,
		listOrdersByUserHandler:        listOrdersByUserHandler,
		listOrdersConsolidationHandler: listOrdersConsolidationHandler,
	}
}

// CreateOrder creates a new order
func (s *OrderService) CreateOrder(ctx context.Context, cmd *command.CreateOrder) error {
	return s.createOrderHandler.Handle(ctx, cmd)
}

// AddDish adds a dish to an order
func (s *OrderService) AddDish(ctx context.Context, cmd *command.AddDishToOrder) error {
	return s.addDishHandler.Handle(ctx, cmd)
}

// RemoveDish removes a dish from an order
func (s *OrderService) RemoveDish(ctx context.Context, cmd *command.RemoveDishFromOrder) error {
	return s.removeDishHandler.Handle(ctx, cmd)
}

// CancelOrder cancels an order
func (s *OrderService) CancelOrder(ctx context.Context, cmd *command.CancelOrder) error {
	return s.cancelOrderHandler.Handle(ctx, cmd)
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, orderID model.OrderID) (interface{}, error) {
	return s.getOrderHandler.Handle(ctx, orderID)
}

// ListOrdersByUser retrieves a user's orders with pagination
func (s *OrderService) ListOrdersByUser(ctx context.Context, userID string, offset, limit int) ([]interface{}, error) {
	return s.listOrdersByUserHandler.Handle(ctx, userID, offset, limit)
}

// ListOrdersForConsolidation retrieves one vendor's orders for one day
func (s *OrderService) ListOrdersForConsolidation(ctx context.Context, vendorID string, date model.Date) ([]interface{}, error) {
	return s.listOrdersConsolidationHandler.Handle(ctx, vendorID, date)
}
