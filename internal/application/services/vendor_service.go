package services

import (
	"context"

	"lunchly/internal/application/command"
	"lunchly/internal/application/query"
)

// VendorService handles vendor operations
type VendorService struct {
	addVendorHandler        *command.AddVendorHandler
	updateVendorHandler     *command.UpdateVendorHandler
	importMenuHandler       *command.ImportMenuHandler
	setMenuDateRangeHandler *command.SetMenuDateRangeHandler
	getVendorHandler        *query.GetVendorHandler
	listVendorsHandler      *query.ListVendorsHandler
}

// NewVendorService creates a new vendor service
func NewVendorService(
	addVendorHandler *command.AddVendorHandler,
	updateVendorHandler *command.UpdateVendorHandler,
	importMenuHandler *command.ImportMenuHandler,
	setMenuDateRangeHandler *command.SetMenuDateRangeHandler,
	getVendorHandler *query.GetVendorHandler,
	listVendorsHandler *query.ListVendorsHandler,
) *VendorService {
	return &VendorService{
		addVendorHandler:        addVendorHandler,
		updateVendorHandler:     updateVendorHandler,
		importMenuHandler:       importMenuHandler,
		setMenuDateRangeHandler: setMenuDateRangeHandler,
		getVendorHandler:        getVendorHandler,
		listVendorsHandler:      listVendorsHandler,
	}
}

// AddVendor registers a new vendor
func (s *VendorService) AddVendor(ctx context.Context, cmd *command.AddVendor) error {
	return s.addVendorHandler.Handle(ctx, cmd)
}

// UpdateVendor updates an existing vendor
func (s *VendorService) UpdateVendor(ctx context.Context, cmd *command.UpdateVendor) error {
	return s.updateVendorHandler.Handle(ctx, cmd)
}

// ImportMenu imports a new menu for a vendor
func (s *VendorService) ImportMenu(ctx context.Context, cmd *command.ImportMenu) error {
	return s.importMenuHandler.Handle(ctx, cmd)
}

// SetMenuDateRange sets the effective date range of a menu
func (s *VendorService) SetMenuDateRange(ctx context.Context, cmd *command.SetMenuDateRange) error {
	return s.setMenuDateRangeHandler.Handle(ctx, cmd)
}

// GetVendor retrieves a vendor by ID
func (s *VendorService) GetVendor(ctx context.Context, vendorID string) (interface{}, error) {
	return s.getVendorHandler.Handle(ctx, vendorID)
}

// ListVendors retrieves all vendors with pagination
func (s *VendorService) ListVendors(ctx context.Context, offset, limit int) ([]interface{}, error) {
	return s.listVendorsHandler.Handle(ctx, offset, limit)
}
