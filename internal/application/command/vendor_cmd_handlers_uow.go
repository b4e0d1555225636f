package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/model"
	"lunchly/internal/domain/rejection"
	"lunchly/internal/domain/repository"
	"lunchly/internal/infrastructure/bus"
	"lunchly/pkg/errors"
)

// AddVendorHandler handles add vendor commands with a unit of work
type AddVendorHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewAddVendorHandler creates a new add vendor handler
func NewAddVendorHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *AddVendorHandler {
	return &AddVendorHandler{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Handle processes the add vendor command. Vendor names are unique; adding a
// vendor under a taken name is rejected with VendorAlreadyExists.
func (h *AddVendorHandler) Handle(ctx context.Context, cmd *AddVendor) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.Name == "" {
		return errors.NewValidationError("name is required")
	}
	if cmd.Email == "" {
		return errors.NewValidationError("email is required")
	}
	if cmd.VendorID == "" {
		cmd.VendorID = uuid.New().String()
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	vendorRepo := uow.VendorRepository()
	if _, err := vendorRepo.GetByName(ctx, cmd.Name); err == nil {
		uow.Rollback(ctx)
		return rejection.NewVendorAlreadyExists(cmd.Name)
	} else if err != repository.ErrNotFound {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to check vendor name: %v", err))
	}

	vendor, err := aggregate.NewVendor(cmd.VendorID, cmd.Name, cmd.Email, cmd.Phones, cmd.PODeadline, cmd.ActingUser)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to create vendor: %v", err))
	}

	events := vendor.GetUncommittedEvents()

	if err := vendorRepo.Save(ctx, vendor); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save vendor: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	// Publish after successful commit (eventual consistency).
	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish vendor events", zap.Error(err))
	}

	return nil
}

// UpdateVendorHandler handles update vendor commands with a unit of work
type UpdateVendorHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewUpdateVendorHandler creates a new update vendor handler
func NewUpdateVendorHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *UpdateVendorHandler {
	return &UpdateVendorHandler{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Handle processes the update vendor command
func (h *UpdateVendorHandler) Handle(ctx context.Context, cmd *UpdateVendor) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.VendorID == "" {
		return errors.NewValidationError("vendor_id is required")
	}
	if cmd.Name == "" {
		return errors.NewValidationError("name is required")
	}
	if cmd.Email == "" {
		return errors.NewValidationError("email is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	vendorRepo := uow.VendorRepository()
	vendor, err := vendorRepo.GetByID(ctx, cmd.VendorID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("vendor")
	}

	if err := vendor.Update(cmd.Name, cmd.Email, cmd.Phones, cmd.PODeadline, cmd.ActingUser); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to update vendor: %v", err))
	}

	events := vendor.GetUncommittedEvents()

	if err := vendorRepo.Save(ctx, vendor); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save vendor: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish vendor events", zap.Error(err))
	}

	return nil
}

// ImportMenuHandler handles import menu commands with a unit of work
type ImportMenuHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewImportMenuHandler creates a new import menu handler
func NewImportMenuHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *ImportMenuHandler {
	return &ImportMenuHandler{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Handle processes the import menu command. Dish ids are generated when
// missing, and every dish is stamped with the target vendor and menu.
func (h *ImportMenuHandler) Handle(ctx context.Context, cmd *ImportMenu) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.VendorID == "" {
		return errors.NewValidationError("vendor_id is required")
	}
	if len(cmd.Dishes) == 0 {
		return errors.NewValidationError("at least one dish is required")
	}
	if cmd.MenuID == "" {
		cmd.MenuID = uuid.New().String()
	}

	normalized := make([]model.Dish, len(cmd.Dishes))
	for i, d := range cmd.Dishes {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		d.VendorID = cmd.VendorID
		d.MenuID = cmd.MenuID
		normalized[i] = d
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	vendorRepo := uow.VendorRepository()
	vendor, err := vendorRepo.GetByID(ctx, cmd.VendorID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("vendor")
	}

	if err := vendor.ImportMenu(cmd.MenuID, normalized, cmd.ActingUser); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to import menu: %v", err))
	}

	events := vendor.GetUncommittedEvents()

	if err := vendorRepo.Save(ctx, vendor); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save vendor: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish vendor events", zap.Error(err))
	}

	return nil
}

// SetMenuDateRangeHandler handles set menu date range commands with a unit of
// work
type SetMenuDateRangeHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
	logger     *zap.Logger
}

// NewSetMenuDateRangeHandler creates a new set menu date range handler
func NewSetMenuDateRangeHandler(uowFactory repository.UnitOfWorkFactory, eventBus bus.EventBus, logger *zap.Logger) *SetMenuDateRangeHandler {
	return &SetMenuDateRangeHandler{uowFactory: uowFactory, eventBus: eventBus, logger: logger}
}

// Handle processes the set menu date range command. Invalid or overlapping
// ranges are rejected with CannotSetDateRange.
func (h *SetMenuDateRangeHandler) Handle(ctx context.Context, cmd *SetMenuDateRange) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.VendorID == "" {
		return errors.NewValidationError("vendor_id is required")
	}
	if cmd.MenuID == "" {
		return errors.NewValidationError("menu_id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	vendorRepo := uow.VendorRepository()
	vendor, err := vendorRepo.GetByID(ctx, cmd.VendorID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("vendor")
	}

	if err := vendor.SetDateRangeForMenu(cmd.MenuID, cmd.Range, cmd.ActingUser); err != nil {
		uow.Rollback(ctx)
		return err
	}

	events := vendor.GetUncommittedEvents()

	if err := vendorRepo.Save(ctx, vendor); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save vendor: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		h.logger.Warn("failed to publish vendor events", zap.Error(err))
	}

	return nil
}
