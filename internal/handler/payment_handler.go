package handler

import (
	"encoding/json"
	"net/http"

	"inventify-hub/internal/model"
	"inventify-hub/internal/payment"
	"inventify-hub/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles payment HTTP requests.
type PaymentHandler struct {
	shops   service.ShopService
	gateway payment.Gateway
	guard   *RoleGuard
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(shops service.ShopService, gateway payment.Gateway, guard *RoleGuard, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		shops:   shops,
		gateway: gateway,
		guard:   guard,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// CreateIntent handles POST /create-payment-intent requests. Returns the
// client secret the frontend uses to confirm the card charge.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if _, ok := h.guard.Require(w, r, model.RoleManager); !ok {
		return
	}

	var req struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "price must be positive", h.logger)
		return
	}

	clientSecret, err := h.gateway.CreateIntent(r.Context(), req.Price)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create payment intent", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

// Record handles POST /payments requests. Records a confirmed payment and
// credits the caller's shop quota by the plan-derived limit.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	email, ok := h.guard.Require(w, r, model.RoleManager)
	if !ok {
		return
	}

	var req struct {
		PaidAmount float64 `json:"paidAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.PaidAmount <= 0 {
		writeError(w, http.StatusBadRequest, "paid amount must be positive", h.logger)
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

	record, err := h.shops.ApplyPayment(r.Context(), shop.ShopID, email, req.PaidAmount)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}
