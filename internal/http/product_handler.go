package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	category, err := parseCategory(q.Get("category"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	filter := domain.ProductFilter{
		Category:   category,
		Sort:       parseSort(q.Get("sort")),
		Descending: strings.EqualFold(q.Get("order"), "desc"),
		Page:       atoiOr(q.Get("page"), 1),
		PageSize:   atoiOr(q.Get("limit"), 12),
	}

	page, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, productPageJSON{
		Products:   toProducts(page.Products),
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages(),
	})
}

func (h *Handler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListFeatured(r.Context(), featuredLimit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": toProducts(products)})
}

func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := strings.TrimSpace(q.Get("q"))

	category, err := parseCategory(q.Get("category"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	products := []domain.Product{}
	if text != "" {
		products, err = h.catalog.SearchProducts(r.Context(), text, category)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":    text,
		"products": toProducts(products),
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, domain.ErrProductNotFound)
		return
	}

	detail, err := h.reviews.ProductReviews(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	related, err := h.catalog.RelatedProducts(r.Context(), detail.Product, relatedLimit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, productDetailJSON{
		Product: toProduct(detail.Product),
		Related: toProducts(related),
		Reviews: toReviews(detail.Reviews),
	})
}

func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, domain.ErrProductNotFound)
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	review, rating, err := h.reviews.AddReview(r.Context(), id, req.toInput())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, reviewResponse{
		Success: true,
		Review:  toReview(review),
		Rating:  rating.StringFixed(1),
	})
}

func parseCategory(raw string) (domain.Category, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "all" {
		return "", nil
	}

	c := domain.Category(raw)
	if !c.Valid() {
		return "", domain.NewValidationError("category", "unknown category")
	}
	return c, nil
}

func parseSort(raw string) domain.ProductSort {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "price":
		return domain.SortByPrice
	case "createdat", "created_at", "newest":
		return domain.SortByCreatedAt
	case "rating":
		return domain.SortByRating
	default:
		return domain.SortByName
	}
}

func atoiOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
