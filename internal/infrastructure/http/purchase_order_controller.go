package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lunchly/internal/application/command"
	"lunchly/internal/application/services"
	"lunchly/internal/domain/model"
	"lunchly/pkg/errors"
	"lunchly/pkg/response"
)

// HTTPPurchaseOrderController exposes purchase order operations over HTTP.
// Purchase orders are addressed by /purchase-orders/{vendorID}/{date}.
type HTTPPurchaseOrderController struct {
	poService *services.PurchaseOrderService
}

// NewHTTPPurchaseOrderController creates a new HTTP purchase order controller
func NewHTTPPurchaseOrderController(poService *services.PurchaseOrderService) *HTTPPurchaseOrderController {
	return &HTTPPurchaseOrderController{
		poService: poService,
	}
}

func purchaseOrderIDFromURL(r *http.Request) (model.PurchaseOrderID, error) {
	date, err := model.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		return model.PurchaseOrderID{}, errors.NewValidationError("date must be in YYYY-MM-DD form")
	}
	return model.PurchaseOrderID{
		VendorID: chi.URLParam(r, "vendorID"),
		Date:     date,
	}, nil
}

// CreatePurchaseOrder handles POST /purchase-orders
func (c *HTTPPurchaseOrderController) CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VendorID string   `json:"vendor_id"`
		Date     string   `json:"date"`
		OrderIDs []string `json:"order_ids"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		handleError(w, r, errors.NewValidationError("date must be in YYYY-MM-DD form"))
		return
	}

	orderIDs := make([]model.OrderID, 0, len(req.OrderIDs))
	for _, s := range req.OrderIDs {
		id, err := model.ParseOrderID(s)
		if err != nil {
			handleError(w, r, errors.NewValidationError("invalid order id: "+s))
			return
		}
		orderIDs = append(orderIDs, id)
	}

	cmd := &command.CreatePurchaseOrder{
		PurchaseOrderID: model.PurchaseOrderID{VendorID: req.VendorID, Date: date},
		OrderIDs:        orderIDs,
		ActingUser:      actingUser(r),
	}

	if err := c.poService.CreatePurchaseOrder(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendCreated(w, r, map[string]interface{}{
		"id": cmd.PurchaseOrderID.String(),
	})
}

// MarkAsValid handles POST /purchase-orders/{vendorID}/{date}/validate
func (c *HTTPPurchaseOrderController) MarkAsValid(w http.ResponseWriter, r *http.Request) {
	poID, err := purchaseOrderIDFromURL(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	cmd := &command.MarkPurchaseOrderAsValid{
		PurchaseOrderID: poID,
		Reason:          req.Reason,
		ActingUser:      actingUser(r),
	}

	if err := c.poService.MarkAsValid(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]interface{}{
		"id": poID.String(),
	})
}

// MarkAsDelivered handles POST /purchase-orders/{vendorID}/{date}/delivered
func (c *HTTPPurchaseOrderController) MarkAsDelivered(w http.ResponseWriter, r *http.Request) {
	poID, err := purchaseOrderIDFromURL(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cmd := &command.MarkPurchaseOrderAsDelivered{
		PurchaseOrderID: poID,
		ActingUser:      actingUser(r),
	}

	if err := c.poService.MarkAsDelivered(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]interface{}{
		"id": poID.String(),
	})
}

// CancelPurchaseOrder handles POST /purchase-orders/{vendorID}/{date}/cancel
func (c *HTTPPurchaseOrderController) CancelPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	poID, err := purchaseOrderIDFromURL(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Invalid bool   `json:"invalid"`
		Reason  string `json:"reason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	cmd := &command.CancelPurchaseOrder{
		PurchaseOrderID: poID,
		Invalid:         req.Invalid,
		Reason:          req.Reason,
		ActingUser:      actingUser(r),
	}

	if err := c.poService.CancelPurchaseOrder(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]interface{}{
		"id": poID.String(),
	})
}

// GetPurchaseOrder handles GET /purchase-orders/{vendorID}/{date}
func (c *HTTPPurchaseOrderController) GetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	poID, err := purchaseOrderIDFromURL(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	po, err := c.poService.GetPurchaseOrder(r.Context(), poID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, po)
}

// ListPurchaseOrders handles GET /vendors/{vendorID}/purchase-orders
func (c *HTTPPurchaseOrderController) ListPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "vendorID")
	offset, limit := pagination(r)

	pos, err := c.poService.ListPurchaseOrders(r.Context(), vendorID, offset, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, pos)
}
