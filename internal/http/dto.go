package httpapi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/service"
	"github.com/google/uuid"
)

// quantity keeps whatever the client sent, number or string, for lenient parsing later.
type quantity string

func (q *quantity) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*q = quantity(s)
		return nil
	}
	*q = quantity(strings.TrimSpace(string(b)))
	return nil
}

type lineRequest struct {
	ProductID string   `json:"productId"`
	Quantity  quantity `json:"quantity"`
	Size      string   `json:"size"`
	Color     string   `json:"color"`
}

type mergeRequest struct {
	Items []lineRequest `json:"items"`
}

type addressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type checkoutRequest struct {
	FirstName       string         `json:"firstName"`
	LastName        string         `json:"lastName"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	ShippingAddress addressRequest `json:"shippingAddress"`
	BillingAddress  addressRequest `json:"billingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	Notes           string         `json:"notes"`
}

func (req checkoutRequest) toInput() domain.CheckoutInput {
	return domain.CheckoutInput{
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		ShippingStreet:  strings.TrimSpace(req.ShippingAddress.Street),
		ShippingCity:    strings.TrimSpace(req.ShippingAddress.City),
		ShippingState:   strings.TrimSpace(req.ShippingAddress.State),
		ShippingZip:     strings.TrimSpace(req.ShippingAddress.ZipCode),
		ShippingCountry: strings.TrimSpace(req.ShippingAddress.Country),
		BillingStreet:   strings.TrimSpace(req.BillingAddress.Street),
		BillingCity:     strings.TrimSpace(req.BillingAddress.City),
		BillingState:    strings.TrimSpace(req.BillingAddress.State),
		BillingZip:      strings.TrimSpace(req.BillingAddress.ZipCode),
		BillingCountry:  strings.TrimSpace(req.BillingAddress.Country),
		PaymentMethod:   domain.PaymentMethod(strings.TrimSpace(req.PaymentMethod)),
		Notes:           req.Notes,
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type registerRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Phone     string         `json:"phone"`
	Address   addressRequest `json:"address"`
}

func (req profileRequest) toInput() domain.ProfileInput {
	return domain.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Street:    req.Address.Street,
		City:      req.Address.City,
		State:     req.Address.State,
		ZipCode:   req.Address.ZipCode,
		Country:   req.Address.Country,
	}
}

type passwordRequest struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func toMoney(m domain.Money) moneyJSON {
	return moneyJSON{Amount: m.StringFixed(), Currency: m.Currency.String()}
}

type productJSON struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       moneyJSON `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Stock       int       `json:"stock"`
	InStock     bool      `json:"inStock"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	Featured    bool      `json:"featured"`
	Rating      string    `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProduct(p domain.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       toMoney(p.Price),
		Category:    string(p.Category),
		Image:       p.Image,
		Stock:       p.Stock,
		InStock:     p.Stock > 0,
		Sizes:       nonNil(p.Sizes),
		Colors:      nonNil(p.Colors),
		Featured:    p.Featured,
		Rating:      p.Rating.StringFixed(1),
		CreatedAt:   p.CreatedAt,
	}
}

func toProducts(products []domain.Product) []productJSON {
	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toProduct(p))
	}
	return out
}

type productPageJSON struct {
	Products   []productJSON `json:"products"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
}

type productDetailJSON struct {
	Product productJSON   `json:"product"`
	Related []productJSON `json:"related"`
	Reviews []reviewJSON  `json:"reviews"`
}

// reviewRequest.Rating accepts a number or a numeric string, as form posts send.
// User is the older name of Author.
type reviewRequest struct {
	Author  string   `json:"author"`
	User    string   `json:"user"`
	Comment string   `json:"comment"`
	Rating  quantity `json:"rating"`
}

func (req reviewRequest) toInput() domain.ReviewInput {
	rating, err := strconv.Atoi(strings.TrimSpace(string(req.Rating)))
	if err != nil {
		rating = 0
	}

	author := req.Author
	if strings.TrimSpace(author) == "" {
		author = req.User
	}
	return domain.ReviewInput{Author: author, Comment: req.Comment, Rating: rating}
}

type reviewJSON struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReview(r domain.Review) reviewJSON {
	return reviewJSON{ID: r.ID, Author: r.Author, Comment: r.Comment, Rating: r.Rating, CreatedAt: r.CreatedAt}
}

func toReviews(reviews []domain.Review) []reviewJSON {
	out := make([]reviewJSON, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReview(r))
	}
	return out
}

type reviewResponse struct {
	Success bool       `json:"success"`
	Review  reviewJSON `json:"review"`
	Rating  string     `json:"rating"`
}

type cartItemJSON struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     moneyJSON `json:"price"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	Image     string    `json:"image"`
	LineTotal moneyJSON `json:"lineTotal"`
}

type totalsJSON struct {
	Subtotal    moneyJSON `json:"subtotal"`
	ShippingFee moneyJSON `json:"shippingFee"`
	Tax         moneyJSON `json:"tax"`
	Total       moneyJSON `json:"total"`
}

func toTotals(b domain.Breakdown) totalsJSON {
	return totalsJSON{
		Subtotal:    toMoney(b.Subtotal),
		ShippingFee: toMoney(b.ShippingFee),
		Tax:         toMoney(b.Tax),
		Total:       toMoney(b.Total),
	}
}

type cartJSON struct {
	Items  []cartItemJSON `json:"items"`
	Count  int            `json:"count"`
	Totals totalsJSON     `json:"totals"`
}

func toCart(cart domain.Cart, breakdown domain.Breakdown) cartJSON {
	items := make([]cartItemJSON, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemJSON{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     toMoney(item.Price),
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Image:     item.Image,
			LineTotal: toMoney(item.LineTotal()),
		})
	}
	return cartJSON{Items: items, Count: cart.Count(), Totals: toTotals(breakdown)}
}

func toCartView(view service.CartView) cartJSON {
	return toCart(view.Cart, view.Breakdown)
}

type addItemResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	CartCount int    `json:"cartCount"`
	CartTotal string `json:"cartTotal"`
}

type addressJSON struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func toAddress(a domain.Address) addressJSON {
	return addressJSON{Street: a.Street, City: a.City, State: a.State, ZipCode: a.ZipCode, Country: a.Country}
}

type customerJSON struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type orderItemJSON struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     moneyJSON `json:"price"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	Image     string    `json:"image"`
}

type orderJSON struct {
	OrderNumber     string          `json:"orderNumber"`
	Customer        customerJSON    `json:"customer"`
	ShippingAddress addressJSON     `json:"shippingAddress"`
	BillingAddress  addressJSON     `json:"billingAddress"`
	Items           []orderItemJSON `json:"items"`
	Totals          totalsJSON      `json:"totals"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	OrderStatus     string          `json:"orderStatus"`
	Notes           string          `json:"notes,omitempty"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func toOrder(o domain.Order) orderJSON {
	items := make([]orderItemJSON, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemJSON{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     toMoney(item.Price),
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Image:     item.Image,
		})
	}

	return orderJSON{
		OrderNumber: o.OrderNumber,
		Customer: customerJSON{
			FirstName: o.Customer.FirstName,
			LastName:  o.Customer.LastName,
			Email:     o.Customer.Email,
			Phone:     o.Customer.Phone,
		},
		ShippingAddress: toAddress(o.ShippingAddress),
		BillingAddress:  toAddress(o.BillingAddress),
		Items:           items,
		Totals: totalsJSON{
			Subtotal:    toMoney(o.Subtotal),
			ShippingFee: toMoney(o.ShippingFee),
			Tax:         toMoney(o.Tax),
			Total:       toMoney(o.Total),
		},
		PaymentMethod:  string(o.PaymentMethod),
		PaymentStatus:  string(o.PaymentStatus),
		OrderStatus:    string(o.OrderStatus),
		Notes:          o.Notes,
		TrackingNumber: o.TrackingNumber,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

type userJSON struct {
	ID        uuid.UUID   `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Address   addressJSON `json:"address"`
	CreatedAt time.Time   `json:"createdAt"`
}

func toUser(u domain.User) userJSON {
	return userJSON{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   toAddress(u.Address),
		CreatedAt: u.CreatedAt,
	}
}

type userResponse struct {
	Success bool     `json:"success"`
	User    userJSON `json:"user"`
}

type accountJSON struct {
	User   userJSON    `json:"user"`
	Orders []orderJSON `json:"orders"`
}

func toAccount(a service.Account) accountJSON {
	orders := make([]orderJSON, 0, len(a.Orders))
	for _, o := range a.Orders {
		orders = append(orders, toOrder(o))
	}
	return accountJSON{User: toUser(a.User), Orders: orders}
}

type trackingJSON struct {
	OrderNumber    string    `json:"orderNumber"`
	OrderStatus    string    `json:"orderStatus"`
	PaymentStatus  string    `json:"paymentStatus"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toTracking(t service.OrderTracking) trackingJSON {
	return trackingJSON{
		OrderNumber:    t.OrderNumber,
		OrderStatus:    string(t.OrderStatus),
		PaymentStatus:  string(t.PaymentStatus),
		TrackingNumber: t.TrackingNumber,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
