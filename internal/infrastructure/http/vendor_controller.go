package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lunchly/internal/application/command"
	"lunchly/internal/application/services"
	"lunchly/internal/domain/model"
	"lunchly/pkg/errors"
	"lunchly/pkg/middleware"
	"lunchly/pkg/response"
)

// HTTPVendorController exposes vendor operations over HTTP
type HTTPVendorController struct {
	vendorService *services.VendorService
}

// NewHTTPVendorController creates a new HTTP vendor controller
func NewHTTPVendorController(vendorService *services.VendorService) *HTTPVendorController {
	return &HTTPVendorController{
		vendorService: vendorService,
	}
}

// AddVendor handles POST /vendors
func (c *HTTPVendorController) AddVendor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string   `json:"name"`
		Email      string   `json:"email"`
		Phones     []string `json:"phones"`
		PODeadline string   `json:"po_deadline"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	cmd := &command.AddVendor{
		Name:       req.Name,
		Email:      req.Email,
		Phones:     req.Phones,
		PODeadline: req.PODeadline,
		ActingUser: actingUser(r),
	}

	if err := c.vendorService.AddVendor(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendCreated(w, r, map[string]interface{}{
		"id": cmd.VendorID,
	})
}

// UpdateVendor handles PUT /vendors/{vendorID}
func (c *HTTPVendorController) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "vendorID")

	var req struct {
		Name       string   `json:"name"`
		Email      string   `json:"email"`
		Phones     []string `json:"phones"`
		PODeadline string   `json:"po_deadline"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	cmd := &command.UpdateVendor{
		VendorID:   vendorID,
		Name:       req.Name,
		Email:      req.Email,
		Phones:     req.Phones,
		PODeadline: req.PODeadline,
		ActingUser: actingUser(r),
	}

	if err := c.vendorService.UpdateVendor(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]interface{}{
		"id": vendorID,
	})
}

// ImportMenu handles POST /vendors/{vendorID}/menus
func (c *HTTPVendorController) ImportMenu(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "vendorID")

	var req struct {
		Dishes []struct {
			Name string `json:"name"`
		} `json:"dishes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	dishes := make([]model.Dish, len(req.Dishes))
	for i, d := range req.Dishes {
		dishes[i] = model.Dish{Name: d.Name}
	}

	cmd := &command.ImportMenu{
		VendorID:   vendorID,
		Dishes:     dishes,
		ActingUser: actingUser(r),
	}

	if err := c.vendorService.ImportMenu(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendCreated(w, r, map[string]interface{}{
		"vendor_id": vendorID,
		"menu_id":   cmd.MenuID,
	})
}

// SetMenuDateRange handles PUT /vendors/{vendorID}/menus/{menuID}/date-range
func (c *HTTPVendorController) SetMenuDateRange(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "vendorID")
	menuID := chi.URLParam(r, "menuID")

	var req struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	start, err := model.ParseDate(req.Start)
	if err != nil {
		handleError(w, r, errors.NewValidationError("start must be a date in YYYY-MM-DD form"))
		return
	}
	end, err := model.ParseDate(req.End)
	if err != nil {
		handleError(w, r, errors.NewValidationError("end must be a date in YYYY-MM-DD form"))
		return
	}

	cmd := &command.SetMenuDateRange{
		VendorID:   vendorID,
		MenuID:     menuID,
		Range:      model.MenuDateRange{Start: start, End: end},
		ActingUser: actingUser(r),
	}

	if err := c.vendorService.SetMenuDateRange(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]interface{}{
		"vendor_id": vendorID,
		"menu_id":   menuID,
	})
}

// GetVendor handles GET /vendors/{vendorID}
func (c *HTTPVendorController) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "vendorID")

	vendor, err := c.vendorService.GetVendor(r.Context(), vendorID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, vendor)
}

// ListVendors handles GET /vendors
func (c *HTTPVendorController) ListVendors(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)

	vendors, err := c.vendorService.ListVendors(r.Context(), offset, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, vendors)
}

// actingUser resolves the authenticated user recorded on commands.
func actingUser(r *http.Request) string {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	return userID
}

// pagination reads offset/limit query parameters.
func pagination(r *http.Request) (int, int) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	return offset, limit
}
