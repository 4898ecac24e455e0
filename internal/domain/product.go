package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryUncategorized is assigned to catalog records that arrive without a
// category so grouping in the catalog view never drops them.
const CategoryUncategorized = "Uncategorized"

var (
	ErrMissingProductID   = errors.New("product id is required")
	ErrMissingProductName = errors.New("product name is required")
	ErrNegativePrice      = errors.New("product price cannot be negative")
	ErrNegativeStock      = errors.New("product stock cannot be negative")
)

// Product is a catalog record. The catalog service owns it; the storefront
// treats it as read-only for the duration of a checkout.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	Description string          `json:"description"`
}

// Normalize trims field whitespace and fills in the fallback category.
func (p *Product) Normalize() {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = CategoryUncategorized
	}
}

// Validate reports the first missing or out-of-range field. Records that fail
// validation must never reach the checkout workflow.
func (p *Product) Validate() error {
	if p.ID == "" {
		return ErrMissingProductID
	}
	if p.Name == "" {
		return ErrMissingProductName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
