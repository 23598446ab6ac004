package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(h.opts.RequestTimeout))

	r.Get("/health", h.Health)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/featured", h.FeaturedProducts)
		r.Get("/search", h.SearchProducts)
		r.Get("/{id}", h.GetProduct)
		r.Post("/{id}/reviews", h.AddReview)
	})

	r.Post("/api/contact", h.SendContactMessage)

	r.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Route("/api/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Get("/count", h.CartCount)
			r.Post("/items", h.AddCartItem)
			r.Put("/items", h.UpdateCartItem)
			r.Delete("/items", h.RemoveCartItem)
			r.Post("/merge", h.MergeCart)
		})

		r.Get("/api/checkout", h.CheckoutSummary)
		r.Post("/api/orders", h.PlaceOrder)

		r.Route("/api/users", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/account", h.GetAccount)
			r.Put("/profile", h.UpdateProfile)
			r.Put("/password", h.ChangePassword)
		})
	})

	r.Route("/api/orders/{orderNumber}", func(r chi.Router) {
		r.Get("/", h.GetOrder)
		r.Get("/tracking", h.TrackOrder)
	})

	return r
}
