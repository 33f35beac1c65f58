package handler

import (
	"encoding/json"
	"net/http"

	"inventify-hub/internal/model"
	"inventify-hub/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product catalog HTTP requests.
type ProductHandler struct {
	catalog service.CatalogService
	guard   *RoleGuard
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog service.CatalogService, guard *RoleGuard, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		guard:   guard,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// Create handles POST /addProduct requests. Store managers only; the
// product is admitted against the caller's shop quota.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	email, ok := h.guard.Require(w, r, model.RoleManager)
	if !ok {
		return
	}

	var in model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "product name is required", h.logger)
		return
	}

	product, err := h.catalog.AddProduct(r.Context(), email, &in)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// ListOwn handles GET /products requests. Returns the products of the
// caller's own shop.
func (h *ProductHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	email, ok := h.guard.Require(w, r, model.RoleManager, model.RoleShopKeeper)
	if !ok {
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// ListAll handles GET /allProducts requests. Admin only.
func (h *ProductHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if _, ok := h.guard.Require(w, r, model.RoleAdmin); !ok {
		return
	}

	products, err := h.catalog.ListAllProducts(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /product/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if _, ok := h.guard.Identify(w, r); !ok {
		return
	}

	// Expecting path: /product/{id}
	path := r.URL.Path
	if len(path) < len("/product/") {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}
	productID := path[len("/product/"):]

	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Categories handles GET /categories requests. Returns the distinct
// categories of a shop's products.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if _, ok := h.guard.Identify(w, r); !ok {
		return
	}

	shopID := r.URL.Query().Get("shopId")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "shopId parameter is required", h.logger)
		return
	}

	categories, err := h.catalog.ListCategories(r.Context(), shopID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// Update handles PATCH /updateProduct/{id} requests. Store managers only.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch && r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if _, ok := h.guard.Require(w, r, model.RoleManager); !ok {
		return
	}

	// Expecting path: /updateProduct/{id}
	path := r.URL.Path
	if len(path) < len("/updateProduct/") {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}
	productID := path[len("/updateProduct/"):]

	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	var in model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.catalog.UpdateProduct(r.Context(), productID, &in); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"updatedProductId": productID})
}

// Delete handles DELETE /deleteProduct/{id} requests. Store managers only;
// removing a product releases one unit of quota.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	email, ok := h.guard.Require(w, r, model.RoleManager)
	if !ok {
		return
	}

	// Expecting path: /deleteProduct/{id}
	path := r.URL.Path
	if len(path) < len("/deleteProduct/") {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}
	productID := path[len("/deleteProduct/"):]

	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), email, productID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deletedProductId": productID})
}
