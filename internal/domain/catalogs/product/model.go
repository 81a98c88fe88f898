// Package product is the catalog of sellable packaging products.
package product

import (
	"strings"

	"github.com/shopspring/decimal"

	"packquote/internal/core/apperror"
	"packquote/internal/core/entity"
	"packquote/internal/core/types"
)

// Category drives the tax treatment of a line item.
type Category string

const (
	CategoryPot Category = "POT"
	CategoryBox Category = "BOX"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryPot || c == CategoryBox
}

// Product is a catalog entry. Prices are captured onto quotations at
// creation time, so later edits here never alter existing quotations.
type Product struct {
	entity.Catalog

	Category  Category    `json:"category" db:"category"`
	BasePrice types.Money `json:"base_price" db:"base_price"`

	// Packing metadata consumed by the freight quoter, opaque to pricing.
	UnitsPerBox   int             `json:"units_per_box" db:"units_per_box"`
	BoxWeightKg   decimal.Decimal `json:"box_weight_kg" db:"box_weight_kg"`
	BoxDimensions string          `json:"box_dimensions" db:"box_dimensions"` // "LxWxH" in cm
}

// TableName returns the storage table.
func (Product) TableName() string { return "cat_products" }

// Validate enforces the catalog invariants.
func (p *Product) Validate() error {
	p.NormalizeCode()
	p.Name = strings.TrimSpace(p.Name)

	if p.Code == "" {
		return apperror.NewValidation("product code is required")
	}
	if p.Name == "" {
		return apperror.NewValidation("product name is required")
	}
	if !p.Category.Valid() {
		return apperror.NewValidation("product category must be POT or BOX").
			WithDetail("category", string(p.Category))
	}
	if p.BasePrice.IsNegative() {
		return apperror.NewValidation("product base price must not be negative")
	}
	if p.UnitsPerBox < 1 {
		return apperror.NewValidation("units per box must be at least 1")
	}
	return nil
}
