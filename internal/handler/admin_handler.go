package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"tndshop/internal/model"
	"tndshop/internal/service"
)

// AdminHandler handles the admin-gated product and order endpoints. Auth is
// enforced by middleware before these run.
type AdminHandler struct {
	products service.ProductService
	orders   service.OrderService
	logger   zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(products service.ProductService, orders service.OrderService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		products: products,
		orders:   orders,
		logger:   logger.With().Str("handler", "admin").Logger(),
	}
}

// Check handles GET /api/admin/check.
func (h *AdminHandler) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

// ListProducts handles GET /api/admin/products. Unlike the public listing
// it includes hidden products unless onlyVisible=true.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	onlyVisible := r.URL.Query().Get("onlyVisible") == "true"

	products, err := h.products.ListAdmin(r.Context(), onlyVisible)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// UpsertProduct handles POST /api/admin/products.
func (h *AdminHandler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput
	if err := decodeJSON(r, &input); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	product, err := h.products.Upsert(r.Context(), input)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteProductRequest carries the product-action key confirming deletion.
type DeleteProductRequest struct {
	Password string `json:"password"`
}

// DeleteProduct handles DELETE /api/admin/products/{id}. The body must
// carry the product-action key, which is independent of the admin key.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	var req DeleteProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id"), req.Password); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AdjustStockRequest shifts a product's stock by a signed delta.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// AdjustStock handles PATCH /api/admin/products/{id}/stock.
func (h *AdminHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req AdjustStockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	product, err := h.products.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// SetActiveRequest toggles a product's public visibility.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive handles PATCH /api/admin/products/{id}/active.
func (h *AdminHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req SetActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	product, err := h.products.SetActive(r.Context(), chi.URLParam(r, "id"), req.Active)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// ListOrders handles GET /api/admin/orders with status and search filters.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), r.URL.Query().Get("status"), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// OrderStats handles GET /api/admin/orders/stats.
func (h *AdminHandler) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// ExportOrders handles GET /api/admin/orders/export, returning the
// filtered order list as a CSV download.
func (h *AdminHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	data, err := h.orders.ExportCSV(r.Context(), r.URL.Query().Get("status"), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	filename := fmt.Sprintf("orders_%d.csv", time.Now().Unix())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// UpdateStatusRequest carries an order's new status and the restock flag.
type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Restock bool   `json:"restock"`
}

// UpdateOrderStatus handles PUT /api/admin/orders/{id}/status.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	order, err := h.orders.SetStatus(r.Context(), chi.URLParam(r, "id"), model.OrderStatus(req.Status), req.Restock)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
