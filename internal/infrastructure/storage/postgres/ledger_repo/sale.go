package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"karobar/internal/core/apperror"
	"karobar/internal/core/id"
	"karobar/internal/core/types"
	"karobar/internal/domain"
	"karobar/internal/domain/ledger"
	"karobar/internal/infrastructure/storage/postgres"
)

// SaleRepo is the PostgreSQL sale repository. Sale lines live in a
// separate sale_lines table keyed by sale_id.
type SaleRepo struct {
	*BaseDocumentRepo[*ledger.Sale]
}

var (
	saleCols     = postgres.ExtractDBColumns[ledger.Sale]()
	saleLineCols = postgres.ExtractDBColumns[ledger.SaleLine]()
)

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			"sales",
			saleCols,
			func() *ledger.Sale { return &ledger.Sale{} },
		),
	}
}

var _ ledger.SaleRepository = (*SaleRepo)(nil)

// SaveLines inserts the sale's lines. Lines are written once at sale
// creation and never updated.
func (r *SaleRepo) SaveLines(ctx context.Context, saleID id.ID, lines []ledger.SaleLine) error {
	if len(lines) == 0 {
		return nil
	}

	cols := append([]string{"sale_id"}, saleLineCols...)
	q := r.Builder().
		Insert("sale_lines").
		Columns(cols...)

	for _, line := range lines {
		data := postgres.StructToMap(line)
		values := make([]any, 0, len(cols))
		values = append(values, saleID)
		for _, col := range saleLineCols {
			values = append(values, data[col])
		}
		q = q.Values(values...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale lines: %w", err)
	}

	return nil
}

// GetLines retrieves the sale's lines ordered by line number.
func (r *SaleRepo) GetLines(ctx context.Context, saleID id.ID) ([]ledger.SaleLine, error) {
	q := r.Builder().
		Select(saleLineCols...).
		From("sale_lines").
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []ledger.SaleLine
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// UpdateAmounts sets the sale's paid/due pair. Called only inside a
// ledger transaction holding the sale's row lock.
func (r *SaleRepo) UpdateAmounts(ctx context.Context, saleID id.ID, paidAmount, dueAmount types.Money) error {
	q := r.Builder().
		Update("sales").
		Set("paid_amount", paidAmount).
		Set("due_amount", dueAmount).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update amounts: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update amounts: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("sales", saleID.String())
	}

	return nil
}

// List retrieves sales with filtering.
func (r *SaleRepo) List(ctx context.Context, filter ledger.SaleListFilter) (domain.ListResult[*ledger.Sale], error) {
	q := r.Builder().
		Select(saleCols...).
		From("sales")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"customer_name": pattern},
		})
	}
	if filter.SalesmanID != "" {
		q = q.Where(squirrel.Eq{"salesman_id": filter.SalesmanID})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.ToDate})
	}
	if filter.WithDue {
		q = q.Where(squirrel.Gt{"due_amount": 0})
	}

	return r.ListQuery(ctx, q, filter.ListFilter)
}
