package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/service"
	"github.com/google/uuid"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Load(r.Context(), sessionID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusOK, cart)
}

func (h *Handler) CartCount(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Load(r.Context(), sessionID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": h.cart.Count(cart)})
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	productID, err := uuid.Parse(strings.TrimSpace(req.ProductID))
	if err != nil {
		h.writeError(w, r, domain.ErrProductNotFound)
		return
	}

	ctx := r.Context()
	cart, err := h.carts.Update(ctx, sessionID(r), func(cart domain.Cart) (domain.Cart, error) {
		return h.cart.AddItem(ctx, cart, productID, domain.ParseQuantity(string(req.Quantity)), req.Size, req.Color)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.cart.View(cart)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, addItemResponse{
		Success:   true,
		Message:   "Item added to cart",
		CartCount: view.Count,
		CartTotal: view.Breakdown.Subtotal.StringFixed(),
	})
}

// UpdateCartItem sets a line's quantity. Zero or less removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	key, err := lineKey(req.ProductID, req.Size, req.Color)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	qty, err := strconv.Atoi(strings.TrimSpace(string(req.Quantity)))
	switch {
	case errors.Is(err, strconv.ErrRange):
		h.writeError(w, r, domain.NewValidationError("quantity", fmt.Sprintf("must be at most %d", domain.MaxLineQuantity)))
		return
	case err != nil:
		h.writeError(w, r, domain.NewValidationError("quantity", "must be a whole number"))
		return
	}

	h.mutateCart(w, r, func(_ context.Context, cart domain.Cart) (domain.Cart, error) {
		return h.cart.UpdateQuantity(cart, key, qty)
	})
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	key, err := lineKey(q.Get("productId"), q.Get("size"), q.Get("color"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.mutateCart(w, r, func(_ context.Context, cart domain.Cart) (domain.Cart, error) {
		return h.cart.RemoveItem(cart, key), nil
	})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, func(_ context.Context, cart domain.Cart) (domain.Cart, error) {
		return h.cart.Clear(cart), nil
	})
}

func (h *Handler) MergeCart(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	lines := make([]service.MergeLine, 0, len(req.Items))
	for _, item := range req.Items {
		id, err := uuid.Parse(strings.TrimSpace(item.ProductID))
		if err != nil {
			h.writeError(w, r, domain.ErrProductNotFound)
			return
		}
		lines = append(lines, service.MergeLine{
			ProductID: id,
			Quantity:  domain.ParseQuantity(string(item.Quantity)),
			Size:      item.Size,
			Color:     item.Color,
		})
	}

	h.mutateCart(w, r, func(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
		return h.cart.MergeItems(ctx, cart, lines)
	})
}

// mutateCart runs fn under the session lock and responds with the resulting cart.
func (h *Handler) mutateCart(w http.ResponseWriter, r *http.Request, fn func(context.Context, domain.Cart) (domain.Cart, error)) {
	ctx := r.Context()
	cart, err := h.carts.Update(ctx, sessionID(r), func(cart domain.Cart) (domain.Cart, error) {
		return fn(ctx, cart)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusOK, cart)
}

func (h *Handler) writeCart(w http.ResponseWriter, r *http.Request, status int, cart domain.Cart) {
	view, err := h.cart.View(cart)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, status, toCartView(view))
}

func lineKey(rawID, size, color string) (domain.LineKey, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return domain.LineKey{}, domain.NewValidationError("productId", "must be a valid product id")
	}
	return domain.LineKey{ProductID: id, Size: size, Color: color}, nil
}
