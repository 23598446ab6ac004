package port

import (
	"context"

	"github.com/asadalimcj/zearsports/internal/domain"
)

type OrderRepository interface {
	// CreateOrder returns domain.ErrOrderNumberCollision when the order number is taken.
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (domain.Order, error)
	// ListOrdersByEmail returns the newest orders placed with the email, case-insensitively.
	ListOrdersByEmail(ctx context.Context, email string, limit int) ([]domain.Order, error)
}

type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order domain.Order) error
	SendContactMessage(ctx context.Context, msg domain.ContactMessage) error
}
