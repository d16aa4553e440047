// Package handlers binds the JSON endpoints to the business services.
// Each handler decodes a body, validates it, delegates to a service, and
// shapes the response envelope; no business logic lives here.
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/buildinfo"
	"github.com/ordosuite/salesbridge/internal/config"
	"github.com/ordosuite/salesbridge/internal/middleware"
	"github.com/ordosuite/salesbridge/internal/services/billing"
	"github.com/ordosuite/salesbridge/internal/services/catalog"
	"github.com/ordosuite/salesbridge/internal/services/directory"
	"github.com/ordosuite/salesbridge/internal/services/inventory"
	"github.com/ordosuite/salesbridge/internal/services/sales"
)

// Services bundles the business services the router dispatches to.
type Services struct {
	Billing   *billing.Service
	Catalog   *catalog.Service
	Inventory *inventory.Service
	Directory *directory.Service
	Sales     *sales.Service
}

// Router wraps the mux router with its dependencies
type Router struct {
	*mux.Router
	cfg    *config.Config
	logger *zap.Logger
	svc    Services
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(cfg *config.Config, logger *zap.Logger, svc Services) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		cfg:    cfg,
		logger: logger,
		svc:    svc,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Token exchange (stands in for the platform auth module)
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/token", r.issueToken).Methods("POST")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequestLog(logger))
	api.Use(middleware.Auth(cfg.JWTSecret))

	api.HandleFunc("/v1/invoice-validation", r.validateInvoice).Methods("POST")
	api.HandleFunc("/v1/create_payment", r.createPayment).Methods("POST")
	api.HandleFunc("/get-product", r.getProducts).Methods("GET")
	api.HandleFunc("/get-product-availability", r.getProductAvailability).Methods("GET")
	api.HandleFunc("/get-branch", r.getBranches).Methods("GET")
	api.HandleFunc("/contact-operation", r.contactOperation).Methods("GET", "POST")
	api.HandleFunc("/get-users", r.getUsers).Methods("GET")
	api.HandleFunc("/sales_order/operation", r.salesOrderOperation).Methods("POST")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"started": buildinfo.StartTime,
		"commit":  buildinfo.CommitHash,
	})
}
