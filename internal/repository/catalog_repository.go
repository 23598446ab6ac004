package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
	maxPage         = 10_000
)

const productColumns = `id, name, description, price_amount, price_currency, category, image,
	stock, sizes, colors, featured, rating, created_at`

type catalogRepository struct {
	db DBTX
}

func NewCatalog(db DBTX) port.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	if id == uuid.Nil {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product[%s]: %w", id, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("scanProduct: %w", err)
	}

	return product, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	filter = normalizeFilter(filter)

	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE ($1 = '' OR category = $1)`,
		string(filter.Category),
	).Scan(&total)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products
		WHERE ($1 = '' OR category = $1)
		ORDER BY ` + orderClause(filter) + `
		LIMIT $2 OFFSET $3`

	offset := (filter.Page - 1) * filter.PageSize

	products, err := r.queryProducts(ctx, query, string(filter.Category), filter.PageSize, offset)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("queryProducts: %w", err)
	}

	return domain.ProductPage{
		Products: products,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	}, nil
}

func (r *catalogRepository) SearchProducts(ctx context.Context, text string, category domain.Category) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products
		WHERE ($1 = '' OR search @@ plainto_tsquery('english', $1))
		  AND ($2 = '' OR category = $2)
		ORDER BY name, id`

	products, err := r.queryProducts(ctx, query, strings.TrimSpace(text), string(category))
	if err != nil {
		return nil, fmt.Errorf("queryProducts: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products
		WHERE featured
		ORDER BY created_at DESC, id
		LIMIT $1`

	products, err := r.queryProducts(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("queryProducts: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) RelatedProducts(ctx context.Context, product domain.Product, limit int) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products
		WHERE category = $1 AND id <> $2
		ORDER BY created_at DESC, id
		LIMIT $3`

	products, err := r.queryProducts(ctx, query, string(product.Category), product.ID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("queryProducts: %w", err)
	}

	return products, nil
}

type reviewResult struct {
	review domain.Review
	rating decimal.Decimal
}

func (r *catalogRepository) AddReview(ctx context.Context, review domain.Review) (domain.Review, decimal.Decimal, error) {
	if review.ProductID == uuid.Nil {
		return domain.Review{}, decimal.Zero, fmt.Errorf("productID is empty")
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	res, err := withTx(ctx, r.db, false, func(q DBTX) (reviewResult, error) {
		// row lock keeps concurrent reviews of one product from racing on the average
		var locked uuid.UUID
		err := q.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, review.ProductID).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return reviewResult{}, fmt.Errorf("product[%s]: %w", review.ProductID, domain.ErrProductNotFound)
			}
			return reviewResult{}, fmt.Errorf("lock product: %w", err)
		}

		err = q.QueryRow(ctx, `
INSERT INTO product_reviews (id, product_id, author, comment, rating)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`,
			review.ID, review.ProductID, review.Author, review.Comment, review.Rating,
		).Scan(&review.CreatedAt)
		if err != nil {
			return reviewResult{}, fmt.Errorf("insert review: %w", err)
		}

		var rating decimal.Decimal
		err = q.QueryRow(ctx, `
UPDATE products
SET rating = (SELECT ROUND(AVG(rating), 2) FROM product_reviews WHERE product_id = $1),
    updated_at = NOW()
WHERE id = $1
RETURNING rating`, review.ProductID).Scan(&rating)
		if err != nil {
			return reviewResult{}, fmt.Errorf("update rating: %w", err)
		}

		return reviewResult{review: review, rating: rating}, nil
	})
	if err != nil {
		return domain.Review{}, decimal.Zero, err
	}

	return res.review, res.rating, nil
}

func (r *catalogRepository) ListReviews(ctx context.Context, productID uuid.UUID) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, product_id, author, comment, rating, created_at
FROM product_reviews WHERE product_id = $1
ORDER BY created_at DESC, id`, productID)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Author, &rv.Comment, &rv.Rating, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return reviews, nil
}

func (r *catalogRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p             domain.Product
		priceAmount   decimal.Decimal
		priceCurrency string
		category      string
		createdAt     time.Time
	)

	err := row.Scan(&p.ID, &p.Name, &p.Description, &priceAmount, &priceCurrency, &category, &p.Image,
		&p.Stock, &p.Sizes, &p.Colors, &p.Featured, &p.Rating, &createdAt)
	if err != nil {
		return domain.Product{}, err
	}

	parsedCurrency, err := parseCurrency(priceCurrency)
	if err != nil {
		return domain.Product{}, err
	}

	p.Price = domain.Money{Amount: priceAmount, Currency: parsedCurrency}
	p.Category = domain.Category(category)
	p.CreatedAt = createdAt

	return p, nil
}

func normalizeFilter(f domain.ProductFilter) domain.ProductFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > maxPage {
		f.Page = maxPage
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
	return f
}

// orderClause only ever returns whitelisted column names.
func orderClause(f domain.ProductFilter) string {
	column := "name"
	switch f.Sort {
	case domain.SortByPrice:
		column = "price_amount"
	case domain.SortByCreatedAt:
		column = "created_at"
	case domain.SortByRating:
		column = "rating"
	}

	direction := "ASC"
	if f.Descending {
		direction = "DESC"
	}

	return column + " " + direction + ", id"
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
