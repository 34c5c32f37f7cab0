package ledger_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"karobar/internal/domain"
	"karobar/internal/domain/ledger"
	"karobar/internal/infrastructure/storage/postgres"
)

// PaymentRepo is the PostgreSQL payment repository. Payments are
// append-only: there is no update or delete.
type PaymentRepo struct {
	*BaseDocumentRepo[*ledger.Payment]
}

var paymentCols = postgres.ExtractDBColumns[ledger.Payment]()

// NewPaymentRepo creates a new payment repository.
func NewPaymentRepo(txManager *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			"payments",
			paymentCols,
			func() *ledger.Payment { return &ledger.Payment{} },
		),
	}
}

var _ ledger.PaymentRepository = (*PaymentRepo)(nil)

// List retrieves payments with filtering.
func (r *PaymentRepo) List(ctx context.Context, filter ledger.PaymentListFilter) (domain.ListResult[*ledger.Payment], error) {
	q := r.Builder().
		Select(paymentCols...).
		From("payments")

	if filter.SaleID != nil {
		q = q.Where(squirrel.Eq{"sale_id": *filter.SaleID})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.SalesmanID != "" {
		q = q.Where(squirrel.Eq{"salesman_id": filter.SalesmanID})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.ToDate})
	}

	return r.ListQuery(ctx, q, filter.ListFilter)
}
