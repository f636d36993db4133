package api

import (
	"errors"
	"net/http"

	"bazaar-be/internal/address"
	"bazaar-be/internal/checkout"
	"bazaar-be/internal/inventory"
	"bazaar-be/internal/logger"
	"bazaar-be/internal/order"
	"bazaar-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type checkoutRequest struct {
	Address address.Address `json:"address"`
}

type checkoutResponse struct {
	Order          *order.Order `json:"order"`
	Warning        string       `json:"warning,omitempty"`
	ConfigDegraded bool         `json:"configDegraded,omitempty"`
}

type validationResponse struct {
	Error      string                `json:"error"`
	Code       checkout.Code         `json:"code"`
	Action     checkout.Action       `json:"action"`
	Fields     []string              `json:"fields,omitempty"`
	Violations []inventory.Violation `json:"violations,omitempty"`
}

func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	c := h.carts.Get(userID(r))
	utils.WriteJSON(w, http.StatusOK, h.checkout.Quote(r.Context(), c, req.Address))
}

// Checkout places an order for the caller's cart. Only the ordered lines
// leave the stored cart, and only once the order was committed. A user
// runs one checkout at a time.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	uid := userID(r)
	snapshot, release, err := h.carts.BeginCheckout(uid)
	if err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
		return
	}
	defer release()

	res, err := h.checkout.Checkout(r.Context(), checkout.Request{
		UserID:  uid,
		Cart:    snapshot,
		Address: req.Address,
	})
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	h.carts.RemoveOrdered(uid, snapshot)

	utils.WriteJSON(w, http.StatusCreated, checkoutResponse{
		Order:          res.Order,
		Warning:        res.Warning(),
		ConfigDegraded: res.ConfigDegraded,
	})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), userID(r), chi.URLParam(r, "orderID"))
	switch {
	case err == nil:
		utils.WriteJSON(w, http.StatusOK, o)
	case errors.Is(err, order.ErrInvalidOrderID):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, order.ErrOrderNotFound), errors.Is(err, order.ErrUnauthorized):
		utils.WriteJSONError(w, order.ErrOrderNotFound.Error(), http.StatusNotFound)
	default:
		logger.FromCtx(r.Context()).Error("get order failed", zap.Error(err))
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
	}
}

func writeCheckoutError(w http.ResponseWriter, err error) {
	var (
		verr *checkout.ValidationError
		cerr *checkout.CommitError
	)
	switch {
	case errors.As(err, &verr):
		utils.WriteJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:      verr.Message,
			Code:       verr.Code,
			Action:     verr.Action,
			Fields:     verr.Fields,
			Violations: verr.Violations,
		})
	case errors.Is(err, checkout.ErrServiceUnavailable):
		utils.WriteJSONError(w, "checkout is temporarily unavailable, please try again", http.StatusServiceUnavailable)
	case errors.As(err, &cerr):
		utils.WriteJSONError(w, "order could not be placed, please try again", http.StatusBadGateway)
	default:
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
	}
}
