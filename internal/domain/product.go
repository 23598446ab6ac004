package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategorySuits   Category = "suits"
	CategoryGloves  Category = "gloves"
	CategoryBoots   Category = "boots"
	CategoryJackets Category = "jackets"
)

var Categories = []Category{CategorySuits, CategoryGloves, CategoryBoots, CategoryJackets}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       Money
	Category    Category
	Image       string
	Stock       int
	Sizes       []string
	Colors      []string
	Featured    bool
	Rating      decimal.Decimal

	CreatedAt time.Time
}

type ProductSort string

const (
	SortByName      ProductSort = "name"
	SortByPrice     ProductSort = "price"
	SortByCreatedAt ProductSort = "created_at"
	SortByRating    ProductSort = "rating"
)

type ProductFilter struct {
	Category   Category // empty means all categories
	Sort       ProductSort
	Descending bool
	Page       int
	PageSize   int
}

type ProductPage struct {
	Products []Product
	Page     int
	PageSize int
	Total    int
}

func (p ProductPage) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}
