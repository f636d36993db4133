package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bazaar-be/internal/cart"
	"bazaar-be/internal/checkout"
	"bazaar-be/internal/logger"
	"bazaar-be/internal/order"
	"bazaar-be/internal/utils"

	"go.uber.org/zap"
)

// SettingsCache is the shared settings cache, present when Redis is configured.
type SettingsCache interface {
	Stats() (hits, misses int64)
	Invalidate(ctx context.Context) error
}

// Handler serves cart, checkout and order endpoints.
type Handler struct {
	carts    *cart.Store
	checkout checkout.Service
	orders   order.Service
	cache    SettingsCache
}

type HandlerOption func(*Handler)

func WithSettingsCache(c SettingsCache) HandlerOption {
	return func(h *Handler) {
		h.cache = c
	}
}

func NewHandler(carts *cart.Store, checkoutSvc checkout.Service, orders order.Service, opts ...HandlerOption) *Handler {
	h := &Handler{carts: carts, checkout: checkoutSvc, orders: orders}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type cacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":   "ok",
		"checkout": h.checkout.Stats(),
	}
	if h.cache != nil {
		hits, misses := h.cache.Stats()
		body["settingsCache"] = cacheStats{Hits: hits, Misses: misses}
	}
	utils.WriteJSON(w, http.StatusOK, body)
}

// InvalidateSettings drops the cached settings so the next checkout reads
// the configuration store.
func (h *Handler) InvalidateSettings(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		utils.WriteJSONError(w, "settings cache is not configured", http.StatusNotFound)
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		logger.FromCtx(r.Context()).Error("settings cache invalidation failed", zap.Error(err))
		utils.WriteJSONError(w, "settings cache unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON reads a single JSON object, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

func userID(r *http.Request) string {
	id, _ := utils.GetUserIDFromContext(r.Context())
	return id
}
