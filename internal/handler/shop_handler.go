package handler

import (
	"encoding/json"
	"net/http"

	"inventify-hub/internal/model"
	"inventify-hub/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ShopHandler handles shop and join-request HTTP requests.
type ShopHandler struct {
	shops    service.ShopService
	identity service.IdentityService
	guard    *RoleGuard
	logger   zerolog.Logger
}

// NewShopHandler creates a new shop handler.
func NewShopHandler(shops service.ShopService, identity service.IdentityService, guard *RoleGuard, logger zerolog.Logger) *ShopHandler {
	return &ShopHandler{
		shops:    shops,
		identity: identity,
		guard:    guard,
		logger:   logger.With().Str("handler", "shop").Logger(),
	}
}

// Create handles POST /addShop requests. Any signed-in user may open a
// shop; the service refuses callers who already hold a shop-bearing role.
func (h *ShopHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	email, ok := h.guard.Identify(w, r)
	if !ok {
		return
	}

	var req struct {
		ShopName string `json:"shopName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.ShopName == "" {
		writeError(w, http.StatusBadRequest, "shop name is required", h.logger)
		return
	}

	shop, err := h.shops.CreateShop(r.Context(), email, req.ShopName)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, shop)
}

// GetByEmployee handles GET /shop requests. Returns the shop whose roster
// carries the caller.
func (h *ShopHandler) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	email, ok := h.guard.Identify(w, r)
	if !ok {
		return
	}

	shop, err := h.shops.GetShopByEmployee(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if shop == nil {
		writeError(w, http.StatusNotFound, model.ErrShopNotFound.Message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, shop)
}

// ListAll handles GET /allShops requests. Admin only.
func (h *ShopHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if _, ok := h.guard.Require(w, r, model.RoleAdmin); !ok {
		return
	}

	shops, err := h.shops.ListShops(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, shops)
}

// Remove handles DELETE /shop/{id} requests. Admin only: demotes the whole
// roster and deletes the shop.
func (h *ShopHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if _, ok := h.guard.Require(w, r, model.RoleAdmin); !ok {
		return
	}

	// Expecting path: /shop/{id}
	path := r.URL.Path
	if len(path) < len("/shop/") {
		writeError(w, http.StatusBadRequest, "shop ID is required", h.logger)
		return
	}
	shopID := path[len("/shop/"):]

	if shopID == "" {
		writeError(w, http.StatusBadRequest, "shop ID is required", h.logger)
		return
	}

	if err := h.shops.RemoveShop(r.Context(), shopID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deletedShopId": shopID})
}

// CreateJoinRequest handles POST /joinRequests requests. The caller applies
// to join a shop as staff.
func (h *ShopHandler) CreateJoinRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	email, ok := h.guard.Identify(w, r)
	if !ok {
		return
	}

	var req struct {
		ShopID   string `json:"selectedShopId"`
		JoinPost string `json:"joinPost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.ShopID == "" {
		writeError(w, http.StatusBadRequest, "shop ID is required", h.logger)
		return
	}

	joinReq, err := h.identity.CreateJoinRequest(r.Context(), email, req.ShopID, req.JoinPost)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, joinReq)
}

// ListJoinRequests handles GET /joinRequests requests. Managers review the
// applications targeting their own shop.
func (h *ShopHandler) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	email, ok := h.guard.Require(w, r, model.RoleManager, model.RoleAdmin)
	if !ok {
		return
	}

	shop, err := h.shops.GetShopByEmployee(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if shop == nil {
		writeError(w, http.StatusNotFound, model.ErrShopNotFound.Message, h.logger)
		return
	}

	requests, err := h.identity.ListJoinRequests(r.Context(), shop.ShopID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

// ApproveJoinRequest handles PATCH /joinRequests/{id} requests. Manager
// only.
func (h *ShopHandler) ApproveJoinRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if _, ok := h.guard.Require(w, r, model.RoleManager); !ok {
		return
	}

	// Expecting path: /joinRequests/{id}
	path := r.URL.Path
	if len(path) < len("/joinRequests/") {
		writeError(w, http.StatusBadRequest, "request ID is required", h.logger)
		return
	}
	idStr := path[len("/joinRequests/"):]

	requestID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request ID format", h.logger)
		return
	}

	if err := h.identity.ApproveJoinRequest(r.Context(), requestID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": model.JoinRequestApproved})
}
