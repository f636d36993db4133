package api

import (
	"errors"
	"net/http"

	"bazaar-be/internal/cart"
	"bazaar-be/internal/logger"
	"bazaar-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type addItemRequest struct {
	Item         cart.Item      `json:"item"`
	OrderType    cart.OrderType `json:"orderType"`
	RestaurantID string         `json:"restaurantId,omitempty"`
}

type addItemResponse struct {
	Cart    cart.View `json:"cart"`
	Cleared bool      `json:"cleared"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.carts.Get(userID(r)).View())
}

// AddItem adds to the cart. An item of another order type or restaurant
// replaces the cart, which the response reports as cleared.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var cleared bool
	c, err := h.carts.Update(userID(r), func(c *cart.Cart) error {
		var err error
		cleared, err = c.Add(req.Item, req.OrderType, req.RestaurantID)
		return err
	})
	if err != nil {
		writeCartError(w, r, err)
		return
	}

	if cleared {
		logger.FromCtx(r.Context()).Info("cart replaced by item of another order",
			zap.String("order_type", string(req.OrderType)),
			zap.String("item_id", req.Item.ID),
		)
	}

	utils.WriteJSON(w, http.StatusOK, addItemResponse{Cart: c.View(), Cleared: cleared})
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	itemID := chi.URLParam(r, "itemID")
	c, err := h.carts.Update(userID(r), func(c *cart.Cart) error {
		return c.SetQuantity(itemID, req.Quantity)
	})
	if err != nil {
		writeCartError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, c.View())
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	c, err := h.carts.Update(userID(r), func(c *cart.Cart) error {
		return c.Remove(itemID)
	})
	if err != nil {
		writeCartError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, c.View())
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	_, _ = h.carts.Update(userID(r), func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
	w.WriteHeader(http.StatusNoContent)
}

func writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, cart.ErrCartItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, cart.ErrQuantityExceedsStock):
		status = http.StatusConflict
	}

	logger.FromCtx(r.Context()).Debug("cart update rejected", zap.Error(err))
	utils.WriteJSONError(w, err.Error(), status)
}
