package api

import (
	"net/http"

	"bazaar-be/internal/logger"
	"bazaar-be/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// NewRouter builds the HTTP router for the checkout service.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS)

	r.Get("/health", h.Health)
	r.With(middleware.ServiceAuthMiddleware).Post("/internal/settings/invalidate", h.InvalidateSettings)

	r.Group(func(r chi.Router) {
		r.Use(middleware.UserMiddleware)
		r.Use(middleware.RateLimitMiddleware)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddItem)
			r.Put("/items/{itemID}", h.UpdateItem)
			r.Delete("/items/{itemID}", h.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.Checkout)
			r.Post("/quote", h.Quote)
		})

		r.Get("/orders/{orderID}", h.GetOrder)
	})

	return r
}
