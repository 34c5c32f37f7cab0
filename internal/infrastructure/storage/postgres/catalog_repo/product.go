package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"karobar/internal/core/apperror"
	"karobar/internal/core/id"
	"karobar/internal/domain/catalogs/product"
	"karobar/internal/infrastructure/storage/postgres"
)

// ProductRepo is the PostgreSQL product repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

var productCols = postgres.ExtractDBColumns[product.Product]()

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"products",
			productCols,
			func() *product.Product { return &product.Product{} },
		),
	}
}

var _ product.Repository = (*ProductRepo)(nil)

// GetBySKU retrieves a product by its SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	q := r.Builder().
		Select(productCols...).
		From("products").
		Where(squirrel.Eq{"sku": sku}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// AdjustStock changes stock by delta. The stock >= 0 table constraint is
// the final guard; a violation surfaces as InsufficientStock.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta int) error {
	q := r.Builder().
		Update("products").
		Set("stock", squirrel.Expr("stock + ?", delta)).
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.GtOrEq{"stock": -delta})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build adjust stock: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Either the product is gone or the decrement would go negative.
		p, getErr := r.GetByID(ctx, productID)
		if getErr != nil {
			return getErr
		}
		return apperror.NewInsufficientStock(productID.String(), -delta, p.Stock)
	}

	return nil
}
