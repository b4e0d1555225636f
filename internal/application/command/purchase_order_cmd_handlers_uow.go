package command

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/model"
	"lunchly/internal/domain/repository"
	"lunchly/internal/infrastructure/bus"
	"lunchly/pkg/errors"
)

// PurchaseOrderSender delivers a purchase order to the vendor. It is invoked
// synchronously inside CreatePurchaseOrder handling; a non-nil error selects
// the failed-send path, which is folded into the same command's event stream.
type PurchaseOrderSender interface {
	SendPurchaseOrder(ctx context.Context, po *aggregate.PurchaseOrder, fromEmail, toEmail string) error
}

// CreatePurchaseOrderHandler handles create purchase order commands with a
// unit of work
type CreatePurchaseOrderHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	sender     PurchaseOrderSender
	fromEmail  string
	logger     *zap.Logger
}

// NewCreatePurchaseOrderHandler creates a new create purchase order handler
func NewCreatePurchaseOrderHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, sender PurchaseOrderSender, fromEmail string, logger *zap.Logger) *CreatePurchaseOrderHandler {
	return &CreatePurchaseOrderHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
		sender:     sender,
		fromEmail:  fromEmail,
		logger:     logger,
	}
}

// Handle processes the create purchase order command. The purchase order
// record is created even when candidates fail validation: the aggregate is
// persisted with the failure event and the command reports
// CannotCreatePurchaseOrder. On success the purchase order is handed to the
// sender and the outcome is appended to the same event stream.
func (h *CreatePurchaseOrderHandler) Handle(ctx context.Context, cmd *CreatePurchaseOrder) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.PurchaseOrderID.VendorID == "" || cmd.PurchaseOrderID.Date.IsZero() {
		return errors.NewValidationError("purchase_order_id must carry vendor and date")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	orderRepo := uow.OrderRepository()
	candidates := make([]model.OrderSnapshot, 0, len(cmd.OrderIDs))
	for _, orderID := range cmd.OrderIDs {
		order, err := orderRepo.GetByID(ctx, orderID)
		if err != nil {
			// Unresolvable candidates fail the validation policy instead
			// of failing the whole command.
			candidates = append(candidates, model.OrderSnapshot{ID: orderID, Status: model.OrderStatusUnknown})
			continue
		}
		candidates = append(candidates, order.Snapshot())
	}

	po, rejErr := aggregate.NewPurchaseOrder(cmd.PurchaseOrderID, cmd.ActingUser, candidates)
	if po == nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to create purchase order: %v", rejErr))
	}

	if rejErr == nil {
		vendorRepo := uow.VendorRepository()
		vendor, err := vendorRepo.GetByID(ctx, cmd.PurchaseOrderID.VendorID)
		if err != nil {
			uow.Rollback(ctx)
			return errors.NewNotFoundError("vendor")
		}

		if err := h.sender.SendPurchaseOrder(ctx, po, h.fromEmail, vendor.Email()); err != nil {
			h.logger.Warn("purchase order send failed",
				zap.String("purchase_order_id", po.GetID()),
				zap.Error(err))
			po.RecordSendFailure(err.Error())
		} else {
			po.MarkSent(vendor.Email())
		}
	}

	events := po.GetUncommittedEvents()

	poRepo := uow.PurchaseOrderRepository()
	if err := poRepo.Save(ctx, po); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save purchase order: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish purchase order events", zap.Error(err))
	}

	if rejErr != nil {
		return rejErr
	}
	return nil
}

// MarkPurchaseOrderAsValidHandler handles manual validation overrides with a
// unit of work
type MarkPurchaseOrderAsValidHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewMarkPurchaseOrderAsValidHandler creates a new mark-as-valid handler
func NewMarkPurchaseOrderAsValidHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *MarkPurchaseOrderAsValidHandler {
	return &MarkPurchaseOrderAsValidHandler{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Handle processes the mark purchase order as valid command
func (h *MarkPurchaseOrderAsValidHandler) Handle(ctx context.Context, cmd *MarkPurchaseOrderAsValid) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	poRepo := uow.PurchaseOrderRepository()
	po, err := poRepo.GetByID(ctx, cmd.PurchaseOrderID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("purchase order")
	}

	if err := po.OverruleValidation(cmd.ActingUser, cmd.Reason); err != nil {
		uow.Rollback(ctx)
		return err
	}

	events := po.GetUncommittedEvents()

	if err := poRepo.Save(ctx, po); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save purchase order: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish purchase order events", zap.Error(err))
	}

	return nil
}

// MarkPurchaseOrderAsDeliveredHandler handles delivery confirmations with a
// unit of work
type MarkPurchaseOrderAsDeliveredHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewMarkPurchaseOrderAsDeliveredHandler creates a new mark-as-delivered
// handler
func NewMarkPurchaseOrderAsDeliveredHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *MarkPurchaseOrderAsDeliveredHandler {
	return &MarkPurchaseOrderAsDeliveredHandler{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Handle processes the mark purchase order as delivered command
func (h *MarkPurchaseOrderAsDeliveredHandler) Handle(ctx context.Context, cmd *MarkPurchaseOrderAsDelivered) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	poRepo := uow.PurchaseOrderRepository()
	po, err := poRepo.GetByID(ctx, cmd.PurchaseOrderID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("purchase order")
	}

	if err := po.MarkAsDelivered(cmd.ActingUser); err != nil {
		uow.Rollback(ctx)
		return err
	}

	events := po.GetUncommittedEvents()

	if err := poRepo.Save(ctx, po); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save purchase order: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish purchase order events", zap.Error(err))
	}

	return nil
}

// CancelPurchaseOrderHandler handles cancel purchase order commands with a
// unit of work
type CancelPurchaseOrderHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewCancelPurchaseOrderHandler creates a new cancel purchase order handler
func NewCancelPurchaseOrderHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *CancelPurchaseOrderHandler {
	return &CancelPurchaseOrderHandler{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Handle processes the cancel purchase order command
func (h *CancelPurchaseOrderHandler) Handle(ctx context.Context, cmd *CancelPurchaseOrder) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if !cmd.Invalid && cmd.Reason == "" {
		return errors.NewValidationError("a cancellation reason is required")
	}
	if cmd.Invalid && cmd.Reason != "" {
		return errors.NewValidationError("invalid and reason are mutually exclusive")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	poRepo := uow.PurchaseOrderRepository()
	po, err := poRepo.GetByID(ctx, cmd.PurchaseOrderID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("purchase order")
	}

	if err := po.Cancel(cmd.ActingUser, cmd.Invalid, cmd.Reason); err != nil {
		uow.Rollback(ctx)
		return err
	}

	events := po.GetUncommittedEvents()

	if err := poRepo.Save(ctx, po); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save purchase order: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish purchase order events", zap.Error(err))
	}

	return nil
}
