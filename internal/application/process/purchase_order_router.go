// Package process contains the cross-entity event routing that keeps Order
// aggregates consistent with the purchase orders they were folded into.
// Aggregates never share mutable state; they communicate only through routed
// events, and routed delivery is fire-and-forget relative to the originating
// command.
package process

import (
	"context"

	"go.uber.org/zap"

	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
	"lunchly/internal/domain/repository"
	"lunchly/internal/infrastructure/bus"
)

// TargetOrderIDs resolves which order aggregates a purchase-order event must
// be routed to. It is a pure function over the event's contents; events that
// do not route return nil.
func TargetOrderIDs(evt event.DomainEvent) []model.OrderID {
	switch e := evt.(type) {
	case *event.PurchaseOrderCreated:
		ids := make([]model.OrderID, 0, len(e.Orders))
		for _, o := range e.Orders {
			ids = append(ids, o.ID)
		}
		return ids
	case *event.PurchaseOrderCanceled:
		ids := make([]model.OrderID, 0, len(e.OrderIDs))
		for _, s := range e.OrderIDs {
			id, err := model.ParseOrderID(s)
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
		return ids
	default:
		return nil
	}
}

// PurchaseOrderRouter subscribes to purchase-order events and delivers
// status-sync signals to the affected order aggregates.
type PurchaseOrderRouter struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewPurchaseOrderRouter creates a new router.
func NewPurchaseOrderRouter(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *PurchaseOrderRouter {
	return &PurchaseOrderRouter{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Register subscribes the router to the purchase-order events it routes.
func (r *PurchaseOrderRouter) Register(b bus.EventBus) error {
	if err := b.Subscribe("PurchaseOrderCreated", bus.EventHandlerFunc(r.Handle)); err != nil {
		return err
	}
	return b.Subscribe("PurchaseOrderCanceled", bus.EventHandlerFunc(r.Handle))
}

// Handle routes a purchase-order event to its target orders. Each target is
// processed independently: a missing order or a version conflict on one never
// blocks the others, and errors are logged rather than propagated so the
// originating command is never failed retroactively.
func (r *PurchaseOrderRouter) Handle(ctx context.Context, evt event.DomainEvent) error {
	targets := TargetOrderIDs(evt)
	if len(targets) == 0 {
		return nil
	}

	switch e := evt.(type) {
	case *event.PurchaseOrderCreated:
		for _, orderID := range targets {
			r.markProcessed(ctx, orderID, e.PurchaseOrderID.String())
		}
	case *event.PurchaseOrderCanceled:
		// PROCESSED is terminal, so cancellation does not reopen orders.
		// Targets are still resolved and logged for traceability.
		for _, orderID := range targets {
			r.logger.Info("purchase order canceled, order left unchanged",
				zap.String("order_id", orderID.String()),
				zap.String("purchase_order_id", e.PurchaseOrderID.String()))
		}
	}
	return nil
}

func (r *PurchaseOrderRouter) markProcessed(ctx context.Context, orderID model.OrderID, purchaseOrderID string) {
	uow := r.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		r.logger.Warn("router: failed to begin transaction", zap.Error(err))
		return
	}

	orderRepo := uow.OrderRepository()
	order, err := orderRepo.GetByID(ctx, orderID)
	if err != nil {
		uow.Rollback(ctx)
		if err != repository.ErrNotFound {
			r.logger.Warn("router: failed to load order",
				zap.String("order_id", orderID.String()),
				zap.Error(err))
		}
		return
	}

	order.MarkAsProcessed(purchaseOrderID)

	events := order.GetUncommittedEvents()
	if len(events) == 0 {
		uow.Rollback(ctx)
		return
	}

	if err := orderRepo.Save(ctx, order); err != nil {
		uow.Rollback(ctx)
		r.logger.Warn("router: failed to save order",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
		return
	}

	if err := uow.Commit(ctx); err != nil {
		r.logger.Warn("router: failed to commit transaction", zap.Error(err))
		return
	}

	if err := r.eventBus.PublishBatch(ctx, events); err != nil {
		r.logger.Warn("router: failed to publish order events", zap.Error(err))
	}
}
