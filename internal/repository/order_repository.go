package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	uniqueViolation             = "23505"
	orderNumberUniqueConstraint = "orders_order_number_key"
)

type orderRepository struct {
	db   DBTX
	inTx bool
}

func NewOrder(db DBTX) port.OrderRepository {
	return &orderRepository{db: db}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		db:   tx,
		inTx: true, // use provided transaction instead
	}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.OrderNumber == "" {
		return domain.Order{}, fmt.Errorf("orderNumber is empty")
	}
	if len(order.Items) == 0 {
		return domain.Order{}, fmt.Errorf("order has no items")
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	return withTx(ctx, r.db, r.inTx, func(q DBTX) (domain.Order, error) {
		// amounts are read back so callers see what the NUMERIC columns kept
		var subtotal, shippingFee, tax, total decimal.Decimal

		err := q.QueryRow(ctx, `
INSERT INTO orders (
    id, order_number, first_name, last_name, email, phone,
    shipping_street, shipping_city, shipping_state, shipping_zip, shipping_country,
    billing_street, billing_city, billing_state, billing_zip, billing_country,
    subtotal, shipping_fee, tax, total, currency,
    payment_method, payment_status, order_status, notes, tracking_number
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
          $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
RETURNING created_at, updated_at, subtotal, shipping_fee, tax, total`,
			order.ID, order.OrderNumber,
			order.Customer.FirstName, order.Customer.LastName, order.Customer.Email, order.Customer.Phone,
			order.ShippingAddress.Street, order.ShippingAddress.City, order.ShippingAddress.State,
			order.ShippingAddress.ZipCode, order.ShippingAddress.Country,
			order.BillingAddress.Street, order.BillingAddress.City, order.BillingAddress.State,
			order.BillingAddress.ZipCode, order.BillingAddress.Country,
			order.Subtotal.Amount, order.ShippingFee.Amount, order.Tax.Amount, order.Total.Amount,
			order.Total.Currency.String(),
			string(order.PaymentMethod), string(order.PaymentStatus), string(order.OrderStatus),
			order.Notes, order.TrackingNumber,
		).Scan(&order.CreatedAt, &order.UpdatedAt, &subtotal, &shippingFee, &tax, &total)
		if err != nil {
			if isOrderNumberCollision(err) {
				return domain.Order{}, fmt.Errorf("order[%s]: %w", order.OrderNumber, domain.ErrOrderNumberCollision)
			}
			return domain.Order{}, fmt.Errorf("insert order: %w", err)
		}

		order.Subtotal.Amount = subtotal
		order.ShippingFee.Amount = shippingFee
		order.Tax.Amount = tax
		order.Total.Amount = total

		for i, item := range order.Items {
			_, err := q.Exec(ctx, `
INSERT INTO order_items (order_id, position, product_id, name, price_amount, price_currency, quantity, size, color, image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				order.ID, i, item.ProductID, item.Name, item.Price.Amount, item.Price.Currency.String(),
				item.Quantity, item.Size, item.Color, item.Image,
			)
			if err != nil {
				return domain.Order{}, fmt.Errorf("insert order_item[%d]: %w", i, err)
			}
		}

		return order, nil
	})
}

const orderColumns = `id, order_number, first_name, last_name, email, phone,
       shipping_street, shipping_city, shipping_state, shipping_zip, shipping_country,
       billing_street, billing_city, billing_state, billing_zip, billing_country,
       subtotal, shipping_fee, tax, total, currency,
       payment_method, payment_status, order_status, notes, tracking_number,
       created_at, updated_at`

func (r *orderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (domain.Order, error) {
	if orderNumber == "" {
		return domain.Order{}, fmt.Errorf("orderNumber is empty")
	}

	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("order[%s]: %w", orderNumber, domain.ErrOrderNotFound)
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	items, err := r.orderItems(ctx, o.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orderItems: %w", err)
	}
	o.Items = items

	return o, nil
}

func (r *orderRepository) ListOrdersByEmail(ctx context.Context, email string, limit int) ([]domain.Order, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email is empty")
	}

	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders
WHERE lower(email) = $1
ORDER BY created_at DESC, id
LIMIT $2`, email, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanOrder: %w", err)
		}
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	// items are loaded once the order rows are released, the connection serves one query at a time
	for i := range orders {
		items, err := r.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("orderItems: %w", err)
		}
		orders[i].Items = items
	}

	return orders, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o            domain.Order
		subtotal     decimal.Decimal
		shippingFee  decimal.Decimal
		tax          decimal.Decimal
		total        decimal.Decimal
		currencyCode string
		payment      string
		paymentState string
		orderState   string
	)

	err := row.Scan(
		&o.ID, &o.OrderNumber,
		&o.Customer.FirstName, &o.Customer.LastName, &o.Customer.Email, &o.Customer.Phone,
		&o.ShippingAddress.Street, &o.ShippingAddress.City, &o.ShippingAddress.State,
		&o.ShippingAddress.ZipCode, &o.ShippingAddress.Country,
		&o.BillingAddress.Street, &o.BillingAddress.City, &o.BillingAddress.State,
		&o.BillingAddress.ZipCode, &o.BillingAddress.Country,
		&subtotal, &shippingFee, &tax, &total, &currencyCode,
		&payment, &paymentState, &orderState, &o.Notes, &o.TrackingNumber,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}

	unit, err := parseCurrency(currencyCode)
	if err != nil {
		return domain.Order{}, err
	}

	o.Subtotal = domain.Money{Amount: subtotal, Currency: unit}
	o.ShippingFee = domain.Money{Amount: shippingFee, Currency: unit}
	o.Tax = domain.Money{Amount: tax, Currency: unit}
	o.Total = domain.Money{Amount: total, Currency: unit}
	o.PaymentMethod = domain.PaymentMethod(payment)
	o.PaymentStatus = domain.PaymentStatus(paymentState)
	o.OrderStatus = domain.OrderStatus(orderState)

	return o, nil
}

func (r *orderRepository) orderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
SELECT product_id, name, price_amount, price_currency, quantity, size, color, image
FROM order_items WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item         domain.OrderItem
			amount       decimal.Decimal
			currencyCode string
		)
		if err := rows.Scan(&item.ProductID, &item.Name, &amount, &currencyCode,
			&item.Quantity, &item.Size, &item.Color, &item.Image); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}

		unit, err := parseCurrency(currencyCode)
		if err != nil {
			return nil, err
		}
		item.Price = domain.Money{Amount: amount, Currency: unit}

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return items, nil
}

func isOrderNumberCollision(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == orderNumberUniqueConstraint
}

func parseCurrency(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}
	return unit, nil
}
