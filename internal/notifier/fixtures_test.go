package notifier_test

import (
	"time"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func usd(amount string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), currency.USD)
}

func randomOrder() domain.Order {
	return domain.Order{
		ID:          uuid.New(),
		OrderNumber: "ZS" + gofakeit.DigitN(9),
		Customer: domain.Customer{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Email:     gofakeit.Email(),
			Phone:     gofakeit.Phone(),
		},
		ShippingAddress: domain.Address{
			Street:  gofakeit.Street(),
			City:    gofakeit.City(),
			State:   gofakeit.State(),
			ZipCode: gofakeit.Zip(),
			Country: gofakeit.Country(),
		},
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), Name: "Race Gloves", Price: usd("10.00"), Quantity: 2, Size: "M", Color: "black"},
			{ProductID: uuid.New(), Name: "Touring Boots", Price: usd("90.00"), Quantity: 1},
		},
		Subtotal:      usd("110.00"),
		ShippingFee:   usd("0"),
		Tax:           usd("8.80"),
		Total:         usd("118.80"),
		PaymentMethod: domain.PaymentCreditCard,
		PaymentStatus: domain.PaymentStatusPending,
		OrderStatus:   domain.OrderStatusConfirmed,
		CreatedAt:     time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
	}
}

func randomContact() domain.ContactMessage {
	return domain.ContactMessage{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Subject: gofakeit.Sentence(3),
		Message: gofakeit.Paragraph(1, 2, 8, "\n"),
	}
}
