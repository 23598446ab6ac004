package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "credit_card"
	PaymentPayPal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// OrderItem is a cart line frozen at checkout. It does not follow later catalog changes.
type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	Price     Money
	Quantity  int
	Size      string
	Color     string
	Image     string
}

type Order struct {
	ID              uuid.UUID
	OrderNumber     string
	Customer        Customer
	ShippingAddress Address
	BillingAddress  Address
	Items           []OrderItem

	Subtotal    Money
	ShippingFee Money
	Tax         Money
	Total       Money

	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	OrderStatus    OrderStatus
	Notes          string
	TrackingNumber string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

func OrderItemFromCart(item CartItem) OrderItem {
	return OrderItem{
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     item.Price,
		Quantity:  item.Quantity,
		Size:      item.Size,
		Color:     item.Color,
		Image:     item.Image,
	}
}

// CheckoutInput is what the shopper submits on the checkout form.
type CheckoutInput struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"required,max=40"`

	ShippingStreet  string `validate:"required"`
	ShippingCity    string `validate:"required"`
	ShippingState   string `validate:"required"`
	ShippingZip     string `validate:"required"`
	ShippingCountry string `validate:"required"`

	BillingStreet  string
	BillingCity    string
	BillingState   string
	BillingZip     string
	BillingCountry string

	PaymentMethod PaymentMethod `validate:"omitempty,oneof=credit_card paypal cash_on_delivery"`
	Notes         string        `validate:"max=1000"`
}

func (in CheckoutInput) Customer() Customer {
	return Customer{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone}
}

func (in CheckoutInput) ShippingAddress() Address {
	return Address{
		Street:  in.ShippingStreet,
		City:    in.ShippingCity,
		State:   in.ShippingState,
		ZipCode: in.ShippingZip,
		Country: in.ShippingCountry,
	}
}

// BillingAddress falls back to the shipping value field by field.
func (in CheckoutInput) BillingAddress() Address {
	return Address{
		Street:  firstNonEmpty(in.BillingStreet, in.ShippingStreet),
		City:    firstNonEmpty(in.BillingCity, in.ShippingCity),
		State:   firstNonEmpty(in.BillingState, in.ShippingState),
		ZipCode: firstNonEmpty(in.BillingZip, in.ShippingZip),
		Country: firstNonEmpty(in.BillingCountry, in.ShippingCountry),
	}
}

func (in CheckoutInput) Payment() PaymentMethod {
	if in.PaymentMethod == "" {
		return PaymentCreditCard
	}
	return in.PaymentMethod
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
