package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	SessionID string
	Items     []CartItem
}

type CartItem struct {
	ProductID uuid.UUID
	Name      string
	Price     Money
	Quantity  int
	Size      string
	Color     string
	Image     string

	CreatedAt time.Time
}

// LineKey identifies a cart line: the same product in the same variant is one line.
type LineKey struct {
	ProductID uuid.UUID
	Size      string
	Color     string
}

func (i CartItem) Key() LineKey {
	return LineKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

func (i CartItem) LineTotal() Money {
	return i.Price.Mul(decimalFromInt(i.Quantity))
}

func NewCart(sessionID string) Cart {
	return Cart{SessionID: sessionID}
}

func (c Cart) Clone() Cart {
	return Cart{SessionID: c.SessionID, Items: slices.Clone(c.Items)}
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c Cart) Find(key LineKey) (CartItem, bool) {
	idx := c.indexOf(key)
	if idx < 0 {
		return CartItem{}, false
	}
	return c.Items[idx], true
}

// AddItem grows the matching line or appends a new one priced from the product as it is now.
// Prices of existing lines are not re-synced with the catalog. A line never grows past MaxLineQuantity.
func (c Cart) AddItem(product Product, quantity int, size, color string, now time.Time) Cart {
	quantity = min(max(quantity, 1), MaxLineQuantity)

	out := c.Clone()
	key := LineKey{ProductID: product.ID, Size: size, Color: color}

	if idx := out.indexOf(key); idx >= 0 {
		out.Items[idx].Quantity = addQuantity(out.Items[idx].Quantity, quantity)
		return out
	}

	out.Items = append(out.Items, CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
		Image:     product.Image,
		CreatedAt: now,
	})

	return out
}

// UpdateQuantity sets the quantity of a line; zero or negative removes it.
// Values above MaxLineQuantity are capped.
func (c Cart) UpdateQuantity(key LineKey, quantity int) Cart {
	if quantity <= 0 {
		return c.RemoveItem(key)
	}
	quantity = min(quantity, MaxLineQuantity)

	out := c.Clone()
	if idx := out.indexOf(key); idx >= 0 {
		out.Items[idx].Quantity = quantity
	}

	return out
}

func (c Cart) RemoveItem(key LineKey) Cart {
	out := c.Clone()
	out.Items = slices.DeleteFunc(out.Items, func(item CartItem) bool {
		return item.Key() == key
	})
	return out
}

func (c Cart) Clear() Cart {
	return Cart{SessionID: c.SessionID}
}

// Merge folds other's lines into c, summing quantities per key.
// Lines already in c keep their captured price.
func (c Cart) Merge(other Cart) Cart {
	out := c.Clone()

	for _, item := range other.Items {
		if item.Quantity < 1 {
			continue
		}
		if idx := out.indexOf(item.Key()); idx >= 0 {
			out.Items[idx].Quantity = addQuantity(out.Items[idx].Quantity, item.Quantity)
			continue
		}
		item.Quantity = min(item.Quantity, MaxLineQuantity)
		out.Items = append(out.Items, item)
	}

	return out
}

func (c Cart) indexOf(key LineKey) int {
	return slices.IndexFunc(c.Items, func(item CartItem) bool {
		return item.Key() == key
	})
}
