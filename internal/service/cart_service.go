package service

import (
	"context"
	"fmt"
	"time"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/google/uuid"
)

type CartService struct {
	catalog port.CatalogRepository
	pricing domain.PricingPolicy
	now     func() time.Time
}

func NewCartService(catalog port.CatalogRepository, pricing domain.PricingPolicy) *CartService {
	return &CartService{
		catalog: catalog,
		pricing: pricing,
		now:     time.Now,
	}
}

// CartView is a cart as shown to the shopper, priced at read time.
type CartView struct {
	Cart      domain.Cart
	Breakdown domain.Breakdown
	Count     int
}

// MergeLine is a cart line held outside the session, e.g. by a guest's browser.
type MergeLine struct {
	ProductID uuid.UUID
	Quantity  int
	Size      string
	Color     string
}

func (s *CartService) AddItem(ctx context.Context, cart domain.Cart, productID uuid.UUID, quantity int, size, color string) (domain.Cart, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return cart, fmt.Errorf("catalog.GetProduct: %w", err)
	}

	return cart.AddItem(product, quantity, size, color, s.now()), nil
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line; more than
// domain.MaxLineQuantity is refused.
func (s *CartService) UpdateQuantity(cart domain.Cart, key domain.LineKey, quantity int) (domain.Cart, error) {
	if quantity > domain.MaxLineQuantity {
		return cart, domain.NewValidationError("quantity", fmt.Sprintf("must be at most %d", domain.MaxLineQuantity))
	}
	return cart.UpdateQuantity(key, quantity), nil
}

func (s *CartService) RemoveItem(cart domain.Cart, key domain.LineKey) domain.Cart {
	return cart.RemoveItem(key)
}

func (s *CartService) Clear(cart domain.Cart) domain.Cart {
	return cart.Clear()
}

func (s *CartService) Count(cart domain.Cart) int {
	return cart.Count()
}

// MergeItems prices the given lines from the catalog and folds them into cart.
// Nothing is merged if any product is unknown.
func (s *CartService) MergeItems(ctx context.Context, cart domain.Cart, lines []MergeLine) (domain.Cart, error) {
	incoming := domain.NewCart(cart.SessionID)

	for _, line := range lines {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return cart, fmt.Errorf("catalog.GetProduct: %w", err)
		}
		incoming = incoming.AddItem(product, line.Quantity, line.Size, line.Color, s.now())
	}

	return cart.Merge(incoming), nil
}

func (s *CartService) View(cart domain.Cart) (CartView, error) {
	breakdown, err := s.pricing.Breakdown(cart.Items)
	if err != nil {
		return CartView{}, fmt.Errorf("pricing.Breakdown: %w", err)
	}

	return CartView{
		Cart:      cart,
		Breakdown: breakdown,
		Count:     cart.Count(),
	}, nil
}
