package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"karobar/internal/core/apperror"
	"karobar/internal/core/id"
	"karobar/internal/core/types"
	"karobar/internal/domain"
	"karobar/internal/domain/catalogs/customer"
	"karobar/internal/infrastructure/storage/postgres"
)

// CustomerRepo is the PostgreSQL customer repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

var customerCols = postgres.ExtractDBColumns[customer.Customer]()

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"customers",
			customerCols,
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

var _ customer.Repository = (*CustomerRepo)(nil)

// AddToTotalDue shifts the customer's materialized due balance by delta.
// Callers run inside a ledger transaction.
func (r *CustomerRepo) AddToTotalDue(ctx context.Context, customerID id.ID, delta types.Money) error {
	q := r.Builder().
		Update("customers").
		Set("total_due", squirrel.Expr("total_due + ?", delta)).
		Where(squirrel.Eq{"id": customerID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update due: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update due: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customers", customerID.String())
	}

	return nil
}

// List retrieves customers, optionally narrowed to one salesman's book
// or to customers carrying a due balance.
func (r *CustomerRepo) List(ctx context.Context, filter customer.ListFilter) (domain.ListResult[*customer.Customer], error) {
	q := r.Builder().
		Select(customerCols...).
		From("customers")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"phone": pattern},
		})
	}
	if filter.SalesmanID != "" {
		q = q.Where(squirrel.Eq{"salesman_id": filter.SalesmanID})
	}
	if filter.WithDueOnly {
		q = q.Where(squirrel.Gt{"total_due": 0})
	}

	return r.ListQuery(ctx, q, filter.ListFilter)
}
