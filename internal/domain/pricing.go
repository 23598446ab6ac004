package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type PricingPolicy struct {
	Currency              currency.Unit
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		Currency:              currency.USD,
		ShippingFee:           decimal.RequireFromString("15.00"),
		FreeShippingThreshold: decimal.RequireFromString("100.00"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

type Breakdown struct {
	Subtotal    Money
	ShippingFee Money
	Tax         Money
	Total       Money
}

// Breakdown prices the given lines. Amounts keep full precision; round only when presenting.
func (p PricingPolicy) Breakdown(items []CartItem) (Breakdown, error) {
	subtotal := decimal.Zero

	for _, item := range items {
		if item.Price.Currency != p.Currency {
			return Breakdown{}, fmt.Errorf("product[%s] priced in %s, store currency is %s: %w",
				item.ProductID, item.Price.Currency, p.Currency, ErrCurrencyMismatch)
		}
		subtotal = subtotal.Add(item.Price.Amount.Mul(decimalFromInt(item.Quantity)))
	}

	shipping := p.ShippingFee
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(p.TaxRate)
	total := subtotal.Add(shipping).Add(tax)

	return Breakdown{
		Subtotal:    p.money(subtotal),
		ShippingFee: p.money(shipping),
		Tax:         p.money(tax),
		Total:       p.money(total),
	}, nil
}

func (p PricingPolicy) money(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: p.Currency}
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
