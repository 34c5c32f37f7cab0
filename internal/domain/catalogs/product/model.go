// Package product provides the product catalog (inventory items).
package product

import (
	"context"
	"time"

	"karobar/internal/core/apperror"
	"karobar/internal/core/entity"
	"karobar/internal/core/types"
)

// Product represents an inventory item.
// Stock is counted in boxes; PiecesPerBox describes the box contents.
type Product struct {
	entity.BaseEntity

	Name         string      `db:"name" json:"name"`
	SKU          string      `db:"sku" json:"sku"`
	PiecesPerBox int         `db:"pieces_per_box" json:"piecesPerBox"`
	Stock        int         `db:"stock" json:"stock"`
	CostPrice    types.Money `db:"cost_price" json:"costPrice"`
	SalePrice    types.Money `db:"sale_price" json:"salePrice"`
	ExpiryDate   *time.Time  `db:"expiry_date" json:"expiryDate,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
}

// New creates a new Product with required fields.
func New(name, sku string, piecesPerBox, stock int, costPrice, salePrice types.Money) *Product {
	return &Product{
		BaseEntity:   entity.NewBaseEntity(),
		Name:         name,
		SKU:          sku,
		PiecesPerBox: piecesPerBox,
		Stock:        stock,
		CostPrice:    costPrice,
		SalePrice:    salePrice,
		CreatedAt:    time.Now().UTC(),
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}
	if p.PiecesPerBox <= 0 {
		return apperror.NewValidation("pieces per box must be positive").
			WithDetail("field", "piecesPerBox")
	}
	if p.Stock < 0 {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock")
	}
	if p.CostPrice.IsNegative() {
		return apperror.NewValidation("cost price cannot be negative").
			WithDetail("field", "costPrice")
	}
	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "salePrice")
	}
	return nil
}

// IsExpired reports whether the product is past its expiry date.
func (p *Product) IsExpired(now time.Time) bool {
	return p.ExpiryDate != nil && p.ExpiryDate.Before(now)
}
