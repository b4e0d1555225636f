package command

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/rejection"
	"lunchly/internal/domain/repository"
	"lunchly/internal/infrastructure/bus"
	"lunchly/pkg/errors"
)

// CreateOrderHandler handles create order commands with a unit of work
type CreateOrderHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *CreateOrderHandler {
	return &CreateOrderHandler{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Handle processes the create order command. The order id must be free and
// the chosen menu must be effective on the order's date.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd *CreateOrder) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.OrderID.VendorID == "" || cmd.OrderID.UserID == "" || cmd.OrderID.Date.IsZero() {
		return errors.NewValidationError("order_id must carry vendor, user and date")
	}
	if cmd.MenuID == "" {
		return errors.NewValidationError("menu_id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	orderRepo := uow.OrderRepository()
	exists, err := orderRepo.Exists(ctx, cmd.OrderID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to check order: %v", err))
	}
	if exists {
		uow.Rollback(ctx)
		return rejection.NewOrderAlreadyExists(cmd.OrderID)
	}

	vendorRepo := uow.VendorRepository()
	vendor, err := vendorRepo.GetByID(ctx, cmd.OrderID.VendorID)
	if err != nil {
		uow.Rollback(ctx)
		return rejection.NewMenuNotAvailable(cmd.OrderID, cmd.MenuID)
	}
	if !vendor.MenuAvailableOn(cmd.MenuID, cmd.OrderID.Date) {
		uow.Rollback(ctx)
		return rejection.NewMenuNotAvailable(cmd.OrderID, cmd.MenuID)
	}

	order, err := aggregate.NewOrder(cmd.OrderID, cmd.MenuID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to create order: %v", err))
	}

	events := order.GetUncommittedEvents()

	if err := orderRepo.Save(ctx, order); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save order: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish order events", zap.Error(err))
	}

	return nil
}

// AddDishToOrderHandler handles add dish commands with a unit of work
type AddDishToOrderHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewAddDishToOrderHandler creates a new add dish handler
func NewAddDishToOrderHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *AddDishToOrderHandler {
	return &AddDishToOrderHandler{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Handle processes the add dish command
func (h *AddDishToOrderHandler) Handle(ctx context.Context, cmd *AddDishToOrder) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.Dish.ID == "" {
		return errors.NewValidationError("dish id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	orderRepo := uow.OrderRepository()
	order, err := orderRepo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("order")
	}

	if err := order.AddDish(cmd.Dish); err != nil {
		uow.Rollback(ctx)
		return err
	}

	events := order.GetUncommittedEvents()

	if err := orderRepo.Save(ctx, order); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save order: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish order events", zap.Error(err))
	}

	return nil
}

// RemoveDishFromOrderHandler handles remove dish commands with a unit of work
type RemoveDishFromOrderHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewRemoveDishFromOrderHandler creates a new remove dish handler
func NewRemoveDishFromOrderHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *RemoveDishFromOrderHandler {
	return &RemoveDishFromOrderHandler{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Handle processes the remove dish command
func (h *RemoveDishFromOrderHandler) Handle(ctx context.Context, cmd *RemoveDishFromOrder) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.DishID == "" {
		return errors.NewValidationError("dish_id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	orderRepo := uow.OrderRepository()
	order, err := orderRepo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("order")
	}

	if err := order.RemoveDish(cmd.DishID); err != nil {
		uow.Rollback(ctx)
		return err
	}

	events := order.GetUncommittedEvents()

	if err := orderRepo.Save(ctx, order); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save order: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish order events", zap.Error(err))
	}

	return nil
}

// CancelOrderHandler handles cancel order commands with a unit of work
type CancelOrderHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewCancelOrderHandler creates a new cancel order handler
func NewCancelOrderHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *CancelOrderHandler {
	return &CancelOrderHandler{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Handle processes the cancel order command
func (h *CancelOrderHandler) Handle(ctx context.Context, cmd *CancelOrder) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	orderRepo := uow.OrderRepository()
	order, err := orderRepo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("order")
	}

	if err := order.Cancel(cmd.ActingUser); err != nil {
		uow.Rollback(ctx)
		return err
	}

	events := order.GetUncommittedEvents()

	if err := orderRepo.Save(ctx, order); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save order: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish order events", zap.Error(err))
	}

	return nil
}
