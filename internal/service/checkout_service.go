package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Outcome string

const (
	OutcomeRedirected Outcome = "redirected"
	OutcomeCompleted  Outcome = "completed"
	OutcomeFailed     Outcome = "failed"
)

// MissingProductPolicy decides what happens to a cart line whose product left the catalog.
type MissingProductPolicy string

const (
	MissingProductDrop   MissingProductPolicy = "drop"
	MissingProductReject MissingProductPolicy = "reject"
)

func ParseMissingProductPolicy(raw string) (MissingProductPolicy, error) {
	switch p := MissingProductPolicy(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return MissingProductDrop, nil
	case MissingProductDrop, MissingProductReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown missing product policy %q", raw)
	}
}

const DefaultOrderNumberAttempts = 5

// Dispatcher delivers order confirmations in the background.
type Dispatcher interface {
	Dispatch(order domain.Order)
}

type CheckoutConfig struct {
	MissingProducts        MissingProductPolicy
	MaxOrderNumberAttempts int
}

// CheckoutResult always carries the cart the session should keep: cleared on
// completion, untouched otherwise.
type CheckoutResult struct {
	Outcome Outcome
	Order   domain.Order
	Cart    domain.Cart
}

type CheckoutSummary struct {
	Outcome   Outcome
	Cart      domain.Cart
	Breakdown domain.Breakdown
	Count     int
}

type OrderTracking struct {
	OrderNumber    string
	OrderStatus    domain.OrderStatus
	PaymentStatus  domain.PaymentStatus
	TrackingNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CheckoutService struct {
	catalog    port.CatalogRepository
	orders     port.OrderRepository
	dispatcher Dispatcher
	numbers    OrderNumberGenerator
	pricing    domain.PricingPolicy
	validate   *validator.Validate
	cfg        CheckoutConfig
	logger     *zap.Logger
}

func NewCheckoutService(
	catalog port.CatalogRepository,
	orders port.OrderRepository,
	dispatcher Dispatcher,
	numbers OrderNumberGenerator,
	pricing domain.PricingPolicy,
	cfg CheckoutConfig,
	logger *zap.Logger,
) *CheckoutService {
	if cfg.MissingProducts == "" {
		cfg.MissingProducts = MissingProductDrop
	}
	if cfg.MaxOrderNumberAttempts < 1 {
		cfg.MaxOrderNumberAttempts = DefaultOrderNumberAttempts
	}

	return &CheckoutService{
		catalog:    catalog,
		orders:     orders,
		dispatcher: dispatcher,
		numbers:    numbers,
		pricing:    pricing,
		validate:   newValidator(),
		cfg:        cfg,
		logger:     logger.Named("checkout"),
	}
}

// PlaceOrder turns the cart into a persisted order.
// An empty cart is redirected without touching any store.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cart domain.Cart, input domain.CheckoutInput) (CheckoutResult, error) {
	if cart.IsEmpty() {
		return CheckoutResult{Outcome: OutcomeRedirected, Cart: cart}, nil
	}

	failed := func(err error) (CheckoutResult, error) {
		return CheckoutResult{Outcome: OutcomeFailed, Cart: cart}, err
	}

	if err := validateStruct(s.validate, input); err != nil {
		return failed(err)
	}

	breakdown, err := s.pricing.Breakdown(cart.Items)
	if err != nil {
		return failed(fmt.Errorf("pricing.Breakdown: %w", err))
	}

	items, err := s.materializeItems(ctx, cart)
	if err != nil {
		return failed(err)
	}

	order := domain.Order{
		ID:              uuid.New(),
		Customer:        input.Customer(),
		ShippingAddress: input.ShippingAddress(),
		BillingAddress:  input.BillingAddress(),
		Items:           items,
		Subtotal:        breakdown.Subtotal,
		ShippingFee:     breakdown.ShippingFee,
		Tax:             breakdown.Tax,
		Total:           breakdown.Total,
		PaymentMethod:   input.Payment(),
		PaymentStatus:   domain.PaymentStatusPending,
		OrderStatus:     domain.OrderStatusConfirmed,
		Notes:           strings.TrimSpace(input.Notes),
	}

	created, err := s.persist(ctx, order)
	if err != nil {
		return failed(err)
	}

	s.logger.Info("order placed",
		zap.String("orderNumber", created.OrderNumber),
		zap.String("sessionID", cart.SessionID),
		zap.Int("items", created.ItemCount()),
		zap.String("total", created.Total.StringFixed()))

	s.dispatcher.Dispatch(created)

	return CheckoutResult{Outcome: OutcomeCompleted, Order: created, Cart: cart.Clear()}, nil
}

func (s *CheckoutService) Summary(cart domain.Cart) (CheckoutSummary, error) {
	if cart.IsEmpty() {
		return CheckoutSummary{Outcome: OutcomeRedirected, Cart: cart}, nil
	}

	breakdown, err := s.pricing.Breakdown(cart.Items)
	if err != nil {
		return CheckoutSummary{}, fmt.Errorf("pricing.Breakdown: %w", err)
	}

	return CheckoutSummary{
		Cart:      cart,
		Breakdown: breakdown,
		Count:     cart.Count(),
	}, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, orderNumber string) (domain.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return domain.Order{}, domain.NewValidationError("orderNumber", "is required")
	}

	order, err := s.orders.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrderByNumber: %w", err)
	}

	return order, nil
}

func (s *CheckoutService) TrackOrder(ctx context.Context, orderNumber string) (OrderTracking, error) {
	order, err := s.GetOrder(ctx, orderNumber)
	if err != nil {
		return OrderTracking{}, err
	}

	return OrderTracking{
		OrderNumber:    order.OrderNumber,
		OrderStatus:    order.OrderStatus,
		PaymentStatus:  order.PaymentStatus,
		TrackingNumber: order.TrackingNumber,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}, nil
}

func (s *CheckoutService) materializeItems(ctx context.Context, cart domain.Cart) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(cart.Items))
	missing := &domain.ValidationError{}

	for _, line := range cart.Items {
		_, err := s.catalog.GetProduct(ctx, line.ProductID)
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			if s.cfg.MissingProducts == MissingProductReject {
				missing.Add("items."+line.ProductID.String(), line.Name+" is no longer available")
				continue
			}
			s.logger.Warn("dropping cart line for missing product",
				zap.String("sessionID", cart.SessionID),
				zap.Stringer("productID", line.ProductID),
				zap.String("name", line.Name))
			continue
		case err != nil:
			return nil, fmt.Errorf("%w: catalog.GetProduct: %w", domain.ErrPersistence, err)
		}

		items = append(items, domain.OrderItemFromCart(line))
	}

	if missing.HasErrors() {
		return nil, missing
	}
	if len(items) == 0 {
		return nil, domain.NewValidationError("items", "none of the products in your cart are available anymore")
	}

	return items, nil
}

func (s *CheckoutService) persist(ctx context.Context, order domain.Order) (domain.Order, error) {
	for attempt := 1; ; attempt++ {
		order.OrderNumber = s.numbers.Next()

		created, err := s.orders.CreateOrder(ctx, order)
		if err == nil {
			return created, nil
		}

		if !errors.Is(err, domain.ErrOrderNumberCollision) {
			return domain.Order{}, fmt.Errorf("%w: orders.CreateOrder: %w", domain.ErrPersistence, err)
		}

		if attempt >= s.cfg.MaxOrderNumberAttempts {
			return domain.Order{}, fmt.Errorf("%w: no free order number after %d attempts: %w",
				domain.ErrPersistence, attempt, err)
		}

		s.logger.Warn("order number collision, retrying",
			zap.String("orderNumber", order.OrderNumber),
			zap.Int("attempt", attempt))
	}
}
