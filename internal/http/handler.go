// Package httpapi exposes the storefront as a JSON API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/asadalimcj/zearsports/internal/service"
	"go.uber.org/zap"
)

const (
	featuredLimit = 6
	relatedLimit  = 4
)

type Options struct {
	SessionCookie  string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
}

// Services groups the use cases the handler serves.
type Services struct {
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Reviews  *service.ReviewService
	Contact  *service.ContactService
	Accounts *service.AccountService
}

type Handler struct {
	catalog  port.CatalogRepository
	carts    port.CartStore
	users    port.SessionUsers
	cart     *service.CartService
	checkout *service.CheckoutService
	reviews  *service.ReviewService
	contact  *service.ContactService
	accounts *service.AccountService
	opts     Options
	logger   *zap.Logger
}

func NewHandler(
	catalog port.CatalogRepository,
	carts port.CartStore,
	users port.SessionUsers,
	services Services,
	opts Options,
	logger *zap.Logger,
) *Handler {
	if opts.SessionCookie == "" {
		opts.SessionCookie = "zs_session"
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 5 * time.Second
	}

	return &Handler{
		catalog:  catalog,
		carts:    carts,
		users:    users,
		cart:     services.Cart,
		checkout: services.Checkout,
		reviews:  services.Reviews,
		contact:  services.Contact,
		accounts: services.Accounts,
		opts:     opts,
		logger:   logger.Named("http"),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
