package dto

import (
	"github.com/shopspring/decimal"

	"packquote/internal/domain/catalogs/product"
)

// CreateProductRequest creates a catalog entry.
type CreateProductRequest struct {
	Code          string          `json:"code" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Category      string          `json:"category" binding:"required"`
	BasePrice     decimal.Decimal `json:"base_price"`
	UnitsPerBox   int             `json:"units_per_box"`
	BoxWeightKg   decimal.Decimal `json:"box_weight_kg"`
	BoxDimensions string          `json:"box_dimensions"`
}

// ToEntity maps the request to a product.
func (r CreateProductRequest) ToEntity() *product.Product {
	p := &product.Product{
		Category:      product.Category(r.Category),
		BasePrice:     r.BasePrice,
		UnitsPerBox:   r.UnitsPerBox,
		BoxWeightKg:   r.BoxWeightKg,
		BoxDimensions: r.BoxDimensions,
	}
	p.Code = r.Code
	p.Name = r.Name
	p.Description = r.Description
	return p
}

// UpdateProductRequest updates a catalog entry. Version enables
// optimistic locking.
type UpdateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Category      string          `json:"category" binding:"required"`
	BasePrice     decimal.Decimal `json:"base_price"`
	UnitsPerBox   int             `json:"units_per_box"`
	BoxWeightKg   decimal.Decimal `json:"box_weight_kg"`
	BoxDimensions string          `json:"box_dimensions"`
	Version       int             `json:"version" binding:"required"`
}

// ApplyTo copies updatable fields onto the loaded product.
func (r UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.Category = product.Category(r.Category)
	p.BasePrice = r.BasePrice
	p.UnitsPerBox = r.UnitsPerBox
	p.BoxWeightKg = r.BoxWeightKg
	p.BoxDimensions = r.BoxDimensions
	p.Version = r.Version
}
