package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ReviewService struct {
	catalog  port.CatalogRepository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewReviewService(catalog port.CatalogRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		catalog:  catalog,
		validate: newValidator(),
		logger:   logger.Named("reviews"),
	}
}

// ProductReviews is a product with its reviews, newest first.
type ProductReviews struct {
	Product domain.Product
	Reviews []domain.Review
}

// AddReview records a review and returns it with the product's new average rating.
// A blank author is stored as domain.AnonymousReviewer.
func (s *ReviewService) AddReview(ctx context.Context, productID uuid.UUID, input domain.ReviewInput) (domain.Review, decimal.Decimal, error) {
	input.Author = strings.TrimSpace(input.Author)
	input.Comment = strings.TrimSpace(input.Comment)

	if err := validateStruct(s.validate, input); err != nil {
		return domain.Review{}, decimal.Zero, err
	}

	author := input.Author
	if author == "" {
		author = domain.AnonymousReviewer
	}

	review, rating, err := s.catalog.AddReview(ctx, domain.Review{
		ID:        uuid.New(),
		ProductID: productID,
		Author:    author,
		Comment:   input.Comment,
		Rating:    input.Rating,
	})
	if err != nil {
		return domain.Review{}, decimal.Zero, fmt.Errorf("catalog.AddReview: %w", err)
	}

	s.logger.Info("review added",
		zap.Stringer("productID", productID),
		zap.Int("rating", review.Rating),
		zap.String("average", rating.StringFixed(2)))

	return review, rating, nil
}

func (s *ReviewService) ProductReviews(ctx context.Context, productID uuid.UUID) (ProductReviews, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return ProductReviews{}, fmt.Errorf("catalog.GetProduct: %w", err)
	}

	reviews, err := s.catalog.ListReviews(ctx, productID)
	if err != nil {
		return ProductReviews{}, fmt.Errorf("catalog.ListReviews: %w", err)
	}

	return ProductReviews{Product: product, Reviews: reviews}, nil
}
