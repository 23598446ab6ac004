package service_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type fakeCatalog struct {
	products map[uuid.UUID]domain.Product
	reviews  map[uuid.UUID][]domain.Review
	err      error
	lookups  int
}

func newFakeCatalog(products ...domain.Product) *fakeCatalog {
	c := &fakeCatalog{
		products: make(map[uuid.UUID]domain.Product),
		reviews:  make(map[uuid.UUID][]domain.Review),
	}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) GetProduct(_ context.Context, id uuid.UUID) (domain.Product, error) {
	c.lookups++
	if c.err != nil {
		return domain.Product{}, c.err
	}
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (c *fakeCatalog) ListProducts(context.Context, domain.ProductFilter) (domain.ProductPage, error) {
	return domain.ProductPage{}, nil
}

func (c *fakeCatalog) SearchProducts(context.Context, string, domain.Category) ([]domain.Product, error) {
	return nil, nil
}

func (c *fakeCatalog) ListFeatured(context.Context, int) ([]domain.Product, error) {
	return nil, nil
}

func (c *fakeCatalog) RelatedProducts(context.Context, domain.Product, int) ([]domain.Product, error) {
	return nil, nil
}

func (c *fakeCatalog) AddReview(_ context.Context, review domain.Review) (domain.Review, decimal.Decimal, error) {
	if c.err != nil {
		return domain.Review{}, decimal.Zero, c.err
	}
	product, ok := c.products[review.ProductID]
	if !ok {
		return domain.Review{}, decimal.Zero, domain.ErrProductNotFound
	}

	review.CreatedAt = time.Now()
	c.reviews[review.ProductID] = append([]domain.Review{review}, c.reviews[review.ProductID]...)

	sum := 0
	for _, r := range c.reviews[review.ProductID] {
		sum += r.Rating
	}
	product.Rating = decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(c.reviews[review.ProductID])))).Round(2)
	c.products[product.ID] = product

	return review, product.Rating, nil
}

func (c *fakeCatalog) ListReviews(_ context.Context, productID uuid.UUID) ([]domain.Review, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.reviews[productID], nil
}

type fakeOrders struct {
	mu       sync.Mutex
	byNumber map[string]domain.Order
	attempts []string
	err      error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{byNumber: make(map[string]domain.Order)}
}

func (o *fakeOrders) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.attempts = append(o.attempts, order.OrderNumber)
	if o.err != nil {
		return domain.Order{}, o.err
	}
	if _, taken := o.byNumber[order.OrderNumber]; taken {
		return domain.Order{}, domain.ErrOrderNumberCollision
	}

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	order.CreatedAt, order.UpdatedAt = now, now
	o.byNumber[order.OrderNumber] = order
	return order, nil
}

func (o *fakeOrders) GetOrderByNumber(_ context.Context, orderNumber string) (domain.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	order, ok := o.byNumber[orderNumber]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (o *fakeOrders) ListOrdersByEmail(_ context.Context, email string, limit int) ([]domain.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.err != nil {
		return nil, o.err
	}

	var out []domain.Order
	for _, order := range o.byNumber {
		if domain.NormalizeEmail(order.Customer.Email) == domain.NormalizeEmail(email) {
			out = append(out, order)
		}
	}
	slices.SortFunc(out, func(a, b domain.Order) int { return strings.Compare(b.OrderNumber, a.OrderNumber) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (o *fakeOrders) saved() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.byNumber)
}

type fakeDispatcher struct {
	mu     sync.Mutex
	orders []domain.Order
}

func (d *fakeDispatcher) Dispatch(order domain.Order) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orders = append(d.orders, order)
}

func (d *fakeDispatcher) dispatched() []domain.Order {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.orders
}

type fakeUsers struct {
	byID map[uuid.UUID]domain.User
	err  error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[uuid.UUID]domain.User)}
}

func (u *fakeUsers) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	if u.err != nil {
		return domain.User{}, u.err
	}
	for _, existing := range u.byID {
		if existing.Email == domain.NormalizeEmail(user.Email) {
			return domain.User{}, domain.ErrEmailTaken
		}
	}
	user.Email = domain.NormalizeEmail(user.Email)
	u.byID[user.ID] = user
	return user, nil
}

func (u *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	if u.err != nil {
		return domain.User{}, u.err
	}
	user, ok := u.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (u *fakeUsers) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	if u.err != nil {
		return domain.User{}, u.err
	}
	for _, user := range u.byID {
		if user.Email == domain.NormalizeEmail(email) {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (u *fakeUsers) UpdateProfile(_ context.Context, user domain.User) (domain.User, error) {
	existing, ok := u.byID[user.ID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	existing.FirstName, existing.LastName, existing.Phone, existing.Address = user.FirstName, user.LastName, user.Phone, user.Address
	u.byID[user.ID] = existing
	return existing, nil
}

func (u *fakeUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash []byte) error {
	existing, ok := u.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	existing.PasswordHash = hash
	u.byID[id] = existing
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	contacts []domain.ContactMessage
	err      error
}

func (n *fakeNotifier) SendOrderConfirmation(context.Context, domain.Order) error {
	return n.err
}

func (n *fakeNotifier) SendContactMessage(_ context.Context, msg domain.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.contacts = append(n.contacts, msg)
	return nil
}

func usd(amount string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), currency.USD)
}

func randomProduct(price string) domain.Product {
	return domain.Product{
		ID:       uuid.New(),
		Name:     gofakeit.ProductName(),
		Price:    usd(price),
		Category: domain.CategoryGloves,
		Image:    gofakeit.URL(),
		Stock:    gofakeit.IntRange(1, 50),
		Sizes:    []string{"S", "M", "L"},
		Colors:   []string{"black", "red"},
	}
}

func validInput() domain.CheckoutInput {
	return domain.CheckoutInput{
		FirstName:       gofakeit.FirstName(),
		LastName:        gofakeit.LastName(),
		Email:           gofakeit.Email(),
		Phone:           gofakeit.Phone(),
		ShippingStreet:  gofakeit.Street(),
		ShippingCity:    gofakeit.City(),
		ShippingState:   gofakeit.State(),
		ShippingZip:     gofakeit.Zip(),
		ShippingCountry: gofakeit.Country(),
	}
}
