package handler

import (
	"encoding/json"
	"net/http"

	"inventify-hub/internal/model"
	"inventify-hub/internal/service"

	"github.com/rs/zerolog"
)

// BillingHandler handles cart and invoice HTTP requests.
type BillingHandler struct {
	billing service.BillingService
	shops   service.ShopService
	guard   *RoleGuard
	logger  zerolog.Logger
}

// NewBillingHandler creates a new billing handler.
func NewBillingHandler(billing service.BillingService, shops service.ShopService, guard *RoleGuard, logger zerolog.Logger) *BillingHandler {
	return &BillingHandler{
		billing: billing,
		shops:   shops,
		guard:   guard,
		logger:  logger.With().Str("handler", "billing").Logger(),
	}
}

// Carts routes /carts requests by method.
func (h *BillingHandler) Carts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listCart(w, r)
	case http.MethodPost:
		h.addToCart(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// addToCart handles POST /carts requests. Shop staff queue a sale; the
// product's stock is decremented immediately.
func (h *BillingHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	email, ok := h.guard.Require(w, r, model.RoleManager, model.RoleShopKeeper)
	if !ok {
		return
	}

	var req struct {
		ProductID    string `json:"productId"`
		SaleQuantity int    `json:"saleQuantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	line, err := h.billing.AddToCart(r.Context(), email, req.ProductID, req.SaleQuantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, line)
}

// listCart handles GET /carts requests. Returns the pending lines of the
// caller's shop.
func (h *BillingHandler) listCart(w http.ResponseWriter, r *http.Request) {
	email, ok := h.guard.Require(w, r, model.RoleManager, model.RoleShopKeeper)
	if !ok {
		return
	}

	lines, err := h.billing.ListCart(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

// GenerateInvoice handles POST /saleInvoice requests. Consolidates the
// caller's shop cart into invoice lines under the supplied number and date.
func (h *BillingHandler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	email, ok := h.guard.Require(w, r, model.RoleManager, model.RoleShopKeeper)
	if !ok {
		return
	}

	var req struct {
		InvoiceNumber string `json:"invoiceNumber"`
		InvoiceDate   string `json:"invoiceDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.InvoiceNumber == "" {
		writeError(w, http.StatusBadRequest, "invoice number is required", h.logger)
		return
	}

	shop, err := h.shops.GetShopByEmployee(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if shop == nil {
		writeError(w, http.StatusForbidden, model.ErrForbidden.Message, h.logger)
		return
	}

	inserted, err := h.billing.GenerateInvoice(r.Context(), shop.ShopID, req.InvoiceNumber, req.InvoiceDate)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"invoiceNumber": req.InvoiceNumber,
		"insertedCount": inserted,
	})
}

// ListSaleItems handles GET /saleItems requests. Returns every billed line
// of the caller's shop.
func (h *BillingHandler) ListSaleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	shop, ok := h.callerShop(w, r)
	if !ok {
		return
	}

	lines, err := h.billing.ListSaleItems(r.Context(), shop.ShopID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

// ListInvoiceNumbers handles GET /shopInvoice requests. Returns the
// distinct invoice refs of the caller's shop.
func (h *BillingHandler) ListInvoiceNumbers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	shop, ok := h.callerShop(w, r)
	if !ok {
		return
	}

	refs, err := h.billing.ListInvoiceNumbers(r.Context(), shop.ShopID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, refs)
}

// GetInvoice handles GET /invoice requests. The lookup is scoped to the
// caller's shop, so one shop can never read another's invoice even with a
// guessed number.
func (h *BillingHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	invoiceNumber := r.URL.Query().Get("inv")
	if invoiceNumber == "" {
		writeError(w, http.StatusBadRequest, "inv parameter is required", h.logger)
		return
	}

	shop, ok := h.callerShop(w, r)
	if !ok {
		return
	}

	lines, err := h.billing.GetInvoice(r.Context(), invoiceNumber, shop.ShopID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if len(lines) == 0 {
		writeError(w, http.StatusNotFound, model.ErrInvoiceNotFound.Message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

// ChartData handles GET /chartData requests. Per-invoice aggregates for
// the caller's shop dashboard.
func (h *BillingHandler) ChartData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	shop, ok := h.callerShop(w, r)
	if !ok {
		return
	}

	summaries, err := h.billing.ChartData(r.Context(), shop.ShopID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// callerShop authorises shop staff and resolves their shop. On failure the
// response has already been written.
func (h *BillingHandler) callerShop(w http.ResponseWriter, r *http.Request) (*model.Shop, bool) {
	email, ok := h.guard.Require(w, r, model.RoleManager, model.RoleShopKeeper)
	if !ok {
		return nil, false
	}

	shop, err := h.shops.GetShopByEmployee(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return nil, false
	}
	if shop == nil {
		writeError(w, http.StatusForbidden, model.ErrForbidden.Message, h.logger)
		return nil, false
	}
	return shop, true
}
