package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"tndshop/internal/auth"
	"tndshop/internal/handler"
	"tndshop/internal/middleware"
)

// New creates the HTTP router with all routes and middleware configured.
// The public surface needs no credential; everything under /api/admin is
// gated by the admin key header.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	adminHandler *handler.AdminHandler,
	adminVerifier auth.Verifier,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.List)
		r.Get("/governorates", productHandler.Governorates)
		r.Post("/cart", orderHandler.Quote)
		r.Post("/orders", orderHandler.Create)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(adminVerifier, logger))

			r.Get("/check", adminHandler.Check)

			r.Get("/products", adminHandler.ListProducts)
			r.Post("/products", adminHandler.UpsertProduct)
			r.Delete("/products/{id}", adminHandler.DeleteProduct)
			r.Patch("/products/{id}/stock", adminHandler.AdjustStock)
			r.Patch("/products/{id}/active", adminHandler.SetActive)

			r.Get("/orders", adminHandler.ListOrders)
			r.Get("/orders/stats", adminHandler.OrderStats)
			r.Get("/orders/export", adminHandler.ExportOrders)
			r.Put("/orders/{id}/status", adminHandler.UpdateOrderStatus)
		})
	})

	return r
}
