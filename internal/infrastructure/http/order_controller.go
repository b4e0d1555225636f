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

// HTTPOrderController exposes order operations over HTTP. Orders are addressed
// by their composite id: /orders/{vendorID}/{userID}/{date}.
type HTTPOrderController struct {
	orderService *services.OrderService
}

// NewHTTPOrderController creates a new HTTP order controller
func NewHTTPOrderController(orderService *services.OrderService) *HTTPOrderController {
	return &HTTPOrderController{
		orderService: orderService,
	}
}

func orderIDFromURL(r *http.Request) (model.OrderID, error) {
	date, err := model.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		return model.OrderID{}, errors.NewValidationError("date must be in YYYY-MM-DD form")
	}
	return model.OrderID{
		VendorID: chi.URLParam(r, "vendorID"),
		UserID:   chi.URLParam(r, "userID"),
		Date:     date,
	}, nil
}

// CreateOrder handles POST /orders
func (c *HTTPOrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VendorID string `json:"vendor_id"`
		UserID   string `json:"user_id"`
		Date     string `json:"date"`
		MenuID   string `json:"menu_id"`
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

	userID := req.UserID
	if userID == "" {
		userID = actingUser(r)
	}

	cmd := &command.CreateOrder{
		OrderID: model.OrderID{VendorID: req.VendorID, UserID: userID, Date: date},
		MenuID:  req.MenuID,
	}

	if err := c.orderService.CreateOrder(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendCreated(w, r, map[string]interface{}{
		"id": cmd.OrderID.String(),
	})
}

// AddDish handles POST /orders/{vendorID}/{userID}/{date}/dishes
func (c *HTTPOrderController) AddDish(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Dish model.Dish `json:"dish"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}

	cmd := &command.AddDishToOrder{
		OrderID: orderID,
		Dish:    req.Dish,
	}

	if err := c.orderService.AddDish(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]interface{}{
		"id": orderID.String(),
	})
}

// RemoveDish handles DELETE /orders/{vendorID}/{userID}/{date}/dishes/{dishID}
func (c *HTTPOrderController) RemoveDish(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cmd := &command.RemoveDishFromOrder{
		OrderID: orderID,
		DishID:  chi.URLParam(r, "dishID"),
	}

	if err := c.orderService.RemoveDish(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]interface{}{
		"id": orderID.String(),
	})
}

// CancelOrder handles DELETE /orders/{vendorID}/{userID}/{date}
func (c *HTTPOrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cmd := &command.CancelOrder{
		OrderID:    orderID,
		ActingUser: actingUser(r),
	}

	if err := c.orderService.CancelOrder(r.Context(), cmd); err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]interface{}{
		"id": orderID.String(),
	})
}

// GetOrder handles GET /orders/{vendorID}/{userID}/{date}
func (c *HTTPOrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	order, err := c.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, order)
}

// ListOrdersByUser handles GET /users/{userID}/orders
func (c *HTTPOrderController) ListOrdersByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	offset, limit := pagination(r)

	orders, err := c.orderService.ListOrdersByUser(r.Context(), userID, offset, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, orders)
}

// ListOrdersForConsolidation handles GET /vendors/{vendorID}/orders?date=...
func (c *HTTPOrderController) ListOrdersForConsolidation(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "vendorID")

	date, err := model.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("date must be in YYYY-MM-DD form"))
		return
	}

	orders, err := c.orderService.ListOrdersForConsolidation(r.Context(), vendorID, date)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, orders)
}
