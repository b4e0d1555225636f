package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	jwtutil "lunchly/pkg/jwt"
	"lunchly/pkg/middleware"
)

// Controllers groups the HTTP controllers mounted on the router.
type Controllers struct {
	Auth          *HTTPAuthController
	Vendor        *HTTPVendorController
	Order         *HTTPOrderController
	PurchaseOrder *HTTPPurchaseOrderController
}

// NewRouter builds the service's HTTP routing table. Token issuance and the
// health check are public; everything else requires a valid token.
func NewRouter(controllers Controllers, jwtManager *jwtutil.JWTManager) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.TimeoutMiddleware(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"lunchly"}`))
	})

	r.Post("/auth/token", controllers.Auth.IssueToken)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuthMiddleware(jwtManager))

		r.Route("/vendors", func(r chi.Router) {
			r.Post("/", controllers.Vendor.AddVendor)
			r.Get("/", controllers.Vendor.ListVendors)
			r.Get("/{vendorID}", controllers.Vendor.GetVendor)
			r.Put("/{vendorID}", controllers.Vendor.UpdateVendor)
			r.Post("/{vendorID}/menus", controllers.Vendor.ImportMenu)
			r.Put("/{vendorID}/menus/{menuID}/date-range", controllers.Vendor.SetMenuDateRange)
			r.Get("/{vendorID}/orders", controllers.Order.ListOrdersForConsolidation)
			r.Get("/{vendorID}/purchase-orders", controllers.PurchaseOrder.ListPurchaseOrders)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.Order.CreateOrder)
			r.Route("/{vendorID}/{userID}/{date}", func(r chi.Router) {
				r.Get("/", controllers.Order.GetOrder)
				r.Delete("/", controllers.Order.CancelOrder)
				r.Post("/dishes", controllers.Order.AddDish)
				r.Delete("/dishes/{dishID}", controllers.Order.RemoveDish)
			})
		})

		r.Get("/users/{userID}/orders", controllers.Order.ListOrdersByUser)

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Post("/", controllers.PurchaseOrder.CreatePurchaseOrder)
			r.Route("/{vendorID}/{date}", func(r chi.Router) {
				r.Get("/", controllers.PurchaseOrder.GetPurchaseOrder)
				r.Post("/validate", controllers.PurchaseOrder.MarkAsValid)
				r.Post("/delivered", controllers.PurchaseOrder.MarkAsDelivered)
				r.Post("/cancel", controllers.PurchaseOrder.CancelPurchaseOrder)
			})
		})
	})

	return r
}
