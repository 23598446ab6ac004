package httpapi

import (
	"net/http"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/service"
	"github.com/go-chi/chi/v5"
)

const cartPath = "/api/cart"

type checkoutSummaryJSON struct {
	Cart cartJSON `json:"cart"`
}

func (h *Handler) CheckoutSummary(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Load(r.Context(), sessionID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	summary, err := h.checkout.Summary(cart)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if summary.Outcome == service.OutcomeRedirected {
		http.Redirect(w, r, cartPath, http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusOK, checkoutSummaryJSON{Cart: toCart(summary.Cart, summary.Breakdown)})
}

// PlaceOrder holds the session lock for the whole checkout so the cart cannot change underneath it.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	input := req.toInput()

	ctx := r.Context()
	var result service.CheckoutResult
	_, err := h.carts.Update(ctx, sessionID(r), func(cart domain.Cart) (domain.Cart, error) {
		res, err := h.checkout.PlaceOrder(ctx, cart, input)
		result = res
		if err != nil {
			return cart, err
		}
		return res.Cart, nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if result.Outcome == service.OutcomeRedirected {
		http.Redirect(w, r, cartPath, http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusCreated, toOrder(result.Order))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.GetOrder(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrder(order))
}

func (h *Handler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	tracking, err := h.checkout.TrackOrder(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTracking(tracking))
}
