package product

import (
	"context"

	"karobar/internal/core/id"
	"karobar/internal/domain"
)

// Repository defines persistence operations for products.
type Repository interface {
	Create(ctx context.Context, p *Product) error

	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// GetForUpdate reads a product with a row lock. Used by the ledger
	// engine for stock checks inside its transaction.
	GetForUpdate(ctx context.Context, productID id.ID) (*Product, error)

	GetBySKU(ctx context.Context, sku string) (*Product, error)

	Update(ctx context.Context, p *Product) error

	// AdjustStock changes stock by delta (negative for sales). The store
	// enforces the non-negative constraint; a violation surfaces as an error.
	AdjustStock(ctx context.Context, productID id.ID, delta int) error

	Delete(ctx context.Context, productID id.ID) error

	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)
}
