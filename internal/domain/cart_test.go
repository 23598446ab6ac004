package domain_test

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestCart_AddItem(t *testing.T) {
	now := time.Now()
	product := randomProduct()

	tests := []struct {
		name      string
		adds      []int
		size      string
		color     string
		wantLines int
		wantQty   int
	}{
		{
			name:      "single add: ok",
			adds:      []int{2},
			wantLines: 1,
			wantQty:   2,
		},
		{
			name:      "same key twice: merged",
			adds:      []int{2, 3},
			size:      "L",
			color:     "black",
			wantLines: 1,
			wantQty:   5,
		},
		{
			name:      "non-positive quantity: coerced to 1",
			adds:      []int{0, -4},
			wantLines: 1,
			wantQty:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := domain.NewCart(gofakeit.UUID())
			for _, qty := range tt.adds {
				cart = cart.AddItem(product, qty, tt.size, tt.color, now)
			}

			require.Len(t, cart.Items, tt.wantLines)
			assert.Equal(t, tt.wantQty, cart.Items[0].Quantity)
			assert.Equal(t, tt.wantQty, cart.Count())
		})
	}
}

func TestCart_AddItem_VariantsAreSeparateLines(t *testing.T) {
	product := randomProduct()

	cart := domain.NewCart(gofakeit.UUID()).
		AddItem(product, 1, "M", "red", time.Now()).
		AddItem(product, 1, "L", "red", time.Now()).
		AddItem(product, 1, "L", "blue", time.Now())

	assert.Len(t, cart.Items, 3)
	assert.Equal(t, 3, cart.Count())
}

func TestCart_AddItem_CapturesPriceAtAddTime(t *testing.T) {
	product := randomProduct()
	cart := domain.NewCart(gofakeit.UUID()).AddItem(product, 1, "", "", time.Now())

	repriced := product
	repriced.Price.Amount = product.Price.Amount.Add(decimal.NewFromInt(10))
	cart = cart.AddItem(repriced, 1, "", "", time.Now())

	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Items[0].Price.Amount.Equal(product.Price.Amount))
	assert.Equal(t, product.Name, cart.Items[0].Name)
	assert.Equal(t, product.Image, cart.Items[0].Image)
}

func TestCart_AddItem_DoesNotMutateInput(t *testing.T) {
	product := randomProduct()
	before := domain.NewCart(gofakeit.UUID()).AddItem(product, 1, "", "", time.Now())

	after := before.AddItem(product, 4, "", "", time.Now())

	assert.Equal(t, 1, before.Items[0].Quantity)
	assert.Equal(t, 5, after.Items[0].Quantity)
}

func TestCart_UpdateQuantity(t *testing.T) {
	product := randomProduct()
	key := domain.LineKey{ProductID: product.ID, Size: "M", Color: "black"}

	tests := []struct {
		name      string
		quantity  int
		wantFound bool
		wantQty   int
	}{
		{name: "absolute set: ok", quantity: 7, wantFound: true, wantQty: 7},
		{name: "zero: removed", quantity: 0},
		{name: "negative: removed", quantity: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := domain.NewCart(gofakeit.UUID()).AddItem(product, 3, "M", "black", time.Now())

			cart = cart.UpdateQuantity(key, tt.quantity)

			item, found := cart.Find(key)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantQty, item.Quantity)
			}
		})
	}
}

func TestCart_UpdateQuantity_UnknownKey(t *testing.T) {
	cart := domain.NewCart(gofakeit.UUID()).AddItem(randomProduct(), 2, "", "", time.Now())

	updated := cart.UpdateQuantity(domain.LineKey{ProductID: uuid.New()}, 9)

	assert.Equal(t, cart.Items, updated.Items)
}

func TestCart_RemoveItem(t *testing.T) {
	first, second := randomProduct(), randomProduct()
	cart := domain.NewCart(gofakeit.UUID()).
		AddItem(first, 1, "S", "", time.Now()).
		AddItem(second, 2, "", "", time.Now())

	cart = cart.RemoveItem(domain.LineKey{ProductID: first.ID, Size: "S"})
	require.Len(t, cart.Items, 1)
	assert.Equal(t, second.ID, cart.Items[0].ProductID)

	// removing twice is a no-op
	cart = cart.RemoveItem(domain.LineKey{ProductID: first.ID, Size: "S"})
	assert.Len(t, cart.Items, 1)
}

func TestCart_Clear(t *testing.T) {
	sessionID := gofakeit.UUID()
	cart := domain.NewCart(sessionID).AddItem(randomProduct(), 3, "", "", time.Now())

	cleared := cart.Clear()

	assert.True(t, cleared.IsEmpty())
	assert.Zero(t, cleared.Count())
	assert.Equal(t, sessionID, cleared.SessionID)
	assert.Equal(t, 3, cart.Count())
}

func TestCart_Merge(t *testing.T) {
	shared, guestOnly := randomProduct(), randomProduct()

	session := domain.NewCart(gofakeit.UUID()).AddItem(shared, 1, "L", "", time.Now())

	repriced := shared
	repriced.Price.Amount = decimal.NewFromInt(999)
	guest := domain.NewCart("").
		AddItem(repriced, 2, "L", "", time.Now()).
		AddItem(guestOnly, 1, "", "", time.Now())

	merged := session.Merge(guest)

	require.Len(t, merged.Items, 2)
	assert.Equal(t, 3, merged.Items[0].Quantity)
	assert.True(t, merged.Items[0].Price.Amount.Equal(shared.Price.Amount))
	assert.Equal(t, guestOnly.ID, merged.Items[1].ProductID)
	assert.Equal(t, 4, merged.Count())
	assert.Equal(t, session.SessionID, merged.SessionID)
}

func TestCart_CountMatchesQuantities(t *testing.T) {
	cart := domain.NewCart(gofakeit.UUID())
	for range 50 {
		product := randomProduct()
		cart = cart.AddItem(product, gofakeit.IntRange(-2, 9), gofakeit.RandomString([]string{"", "M", "L"}), "", time.Now())
	}

	sum := 0
	for _, item := range cart.Items {
		require.GreaterOrEqual(t, item.Quantity, 1)
		sum += item.Quantity
	}
	assert.Equal(t, sum, cart.Count())
}

func TestCart_QuantityIsBounded(t *testing.T) {
	product := randomProduct()
	key := domain.LineKey{ProductID: product.ID}
	huge := domain.ParseQuantity(strconv.Itoa(math.MaxInt))

	tests := []struct {
		name    string
		build   func() domain.Cart
		wantQty int
	}{
		{
			name: "huge add twice: capped",
			build: func() domain.Cart {
				return domain.NewCart("s").
					AddItem(product, huge, "", "", time.Now()).
					AddItem(product, huge, "", "", time.Now())
			},
			wantQty: domain.MaxLineQuantity,
		},
		{
			name: "raw max int add: capped",
			build: func() domain.Cart {
				return domain.NewCart("s").
					AddItem(product, 5, "", "", time.Now()).
					AddItem(product, math.MaxInt, "", "", time.Now())
			},
			wantQty: domain.MaxLineQuantity,
		},
		{
			name: "adds up to the limit: exact",
			build: func() domain.Cart {
				return domain.NewCart("s").
					AddItem(product, 90, "", "", time.Now()).
					AddItem(product, 9, "", "", time.Now())
			},
			wantQty: 99,
		},
		{
			name: "update above limit: capped",
			build: func() domain.Cart {
				return domain.NewCart("s").
					AddItem(product, 1, "", "", time.Now()).
					UpdateQuantity(key, math.MaxInt)
			},
			wantQty: domain.MaxLineQuantity,
		},
		{
			name: "merge of two full lines: capped",
			build: func() domain.Cart {
				full := domain.NewCart("s").AddItem(product, domain.MaxLineQuantity, "", "", time.Now())
				return full.Merge(full)
			},
			wantQty: domain.MaxLineQuantity,
		},
		{
			name: "merge of oversized foreign line: capped",
			build: func() domain.Cart {
				foreign := domain.Cart{Items: []domain.CartItem{{ProductID: product.ID, Price: product.Price, Quantity: math.MaxInt}}}
				return domain.NewCart("s").Merge(foreign)
			},
			wantQty: domain.MaxLineQuantity,
		},
	}

	policy := domain.DefaultPricingPolicy()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := tt.build()

			require.Len(t, cart.Items, 1)
			assert.Equal(t, tt.wantQty, cart.Items[0].Quantity)
			assert.Equal(t, tt.wantQty, cart.Count())

			breakdown, err := policy.Breakdown(cart.Items)
			require.NoError(t, err)
			assert.True(t, breakdown.Subtotal.Amount.IsPositive())
			assert.True(t, breakdown.Total.Amount.IsPositive())
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := map[string]int{
		"3":                     3,
		" 12 ":                  12,
		"0":                     1,
		"-5":                    1,
		"abc":                   1,
		"":                      1,
		"2.5":                   1,
		"99":                    domain.MaxLineQuantity,
		"100":                   domain.MaxLineQuantity,
		"9223372036854775807":   domain.MaxLineQuantity,
		"99999999999999999999":  domain.MaxLineQuantity,
		"-99999999999999999999": 1,
	}

	for raw, want := range tests {
		assert.Equal(t, want, domain.ParseQuantity(raw), "raw=%q", raw)
	}
}

func randomProduct() domain.Product {
	return domain.Product{
		ID:       uuid.MustParse(gofakeit.UUID()),
		Name:     gofakeit.ProductName(),
		Price:    domain.Money{Amount: decimal.NewFromFloat(gofakeit.Price(1, 100)), Currency: currency.USD},
		Category: domain.CategoryGloves,
		Image:    gofakeit.URL(),
		Stock:    gofakeit.IntRange(0, 50),
	}
}
