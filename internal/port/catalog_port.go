package port

import (
	"context"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CatalogRepository interface {
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error)
	SearchProducts(ctx context.Context, text string, category domain.Category) ([]domain.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Product, error)
	RelatedProducts(ctx context.Context, product domain.Product, limit int) ([]domain.Product, error)

	// AddReview stores the review and recomputes the product's rating as the mean of all its reviews.
	// It returns domain.ErrProductNotFound when the product does not exist.
	AddReview(ctx context.Context, review domain.Review) (domain.Review, decimal.Decimal, error)
	ListReviews(ctx context.Context, productID uuid.UUID) ([]domain.Review, error)
}
