package router

import (
	"net/http"

	"inventify-hub/internal/auth"
	"inventify-hub/internal/handler"
	"inventify-hub/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	userHandler *handler.UserHandler,
	shopHandler *handler.ShopHandler,
	productHandler *handler.ProductHandler,
	billingHandler *handler.BillingHandler,
	paymentHandler *handler.PaymentHandler,
	verifier *auth.Verifier,
	registry *prometheus.Registry,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Users and authentication
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			userHandler.Register(w, r)
			return
		}
		userHandler.List(w, r)
	})
	mux.HandleFunc("/users/role/", userHandler.GetRole)
	mux.HandleFunc("/jwt", userHandler.IssueToken)

	// Shops
	mux.HandleFunc("/addShop", shopHandler.Create)
	mux.HandleFunc("/shop", shopHandler.GetByEmployee)
	mux.HandleFunc("/shop/", shopHandler.Remove)
	mux.HandleFunc("/allShops", shopHandler.ListAll)

	// Join requests
	mux.HandleFunc("/joinRequests", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			shopHandler.CreateJoinRequest(w, r)
			return
		}
		shopHandler.ListJoinRequests(w, r)
	})
	mux.HandleFunc("/joinRequests/", shopHandler.ApproveJoinRequest)

	// Products
	mux.HandleFunc("/addProduct", productHandler.Create)
	mux.HandleFunc("/products", productHandler.ListOwn)
	mux.HandleFunc("/allProducts", productHandler.ListAll)
	mux.HandleFunc("/product/", productHandler.GetByID)
	mux.HandleFunc("/categories", productHandler.Categories)
	mux.HandleFunc("/updateProduct/", productHandler.Update)
	mux.HandleFunc("/deleteProduct/", productHandler.Delete)

	// Carts and invoices
	mux.HandleFunc("/carts", billingHandler.Carts)
	mux.HandleFunc("/saleInvoice", billingHandler.GenerateInvoice)
	mux.HandleFunc("/saleItems", billingHandler.ListSaleItems)
	mux.HandleFunc("/shopInvoice", billingHandler.ListInvoiceNumbers)
	mux.HandleFunc("/invoice", billingHandler.GetInvoice)
	mux.HandleFunc("/chartData", billingHandler.ChartData)

	// Payments
	mux.HandleFunc("/create-payment-intent", paymentHandler.CreateIntent)
	mux.HandleFunc("/payments", paymentHandler.Record)

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS -> BearerAuth
	metrics := middleware.NewMetrics(registry)

	var h http.Handler = mux
	h = middleware.BearerAuth(verifier, logger)(h)
	h = middleware.CORS(h)
	h = metrics.Instrument(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
