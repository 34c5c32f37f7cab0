package ledger

import (
	"context"
	"time"

	"karobar/internal/core/id"
	"karobar/internal/core/types"
	"karobar/internal/domain"
)

// SaleListFilter extends the common filter with sale-specific criteria.
type SaleListFilter struct {
	domain.ListFilter

	SalesmanID string
	CustomerID *id.ID
	FromDate   *time.Time
	ToDate     *time.Time
	WithDue    bool
}

// SaleRepository defines persistence operations for sales.
type SaleRepository interface {
	Create(ctx context.Context, s *Sale) error

	SaveLines(ctx context.Context, saleID id.ID, lines []SaleLine) error

	GetByID(ctx context.Context, saleID id.ID) (*Sale, error)

	// GetForUpdate reads a sale with a row lock so concurrent payment
	// applications against the same sale serialize.
	GetForUpdate(ctx context.Context, saleID id.ID) (*Sale, error)

	GetLines(ctx context.Context, saleID id.ID) ([]SaleLine, error)

	// UpdateAmounts persists the paid/due mutation of payment application.
	// The only permitted write to a sale after creation.
	UpdateAmounts(ctx context.Context, saleID id.ID, paidAmount, dueAmount types.Money) error

	List(ctx context.Context, filter SaleListFilter) (domain.ListResult[*Sale], error)
}

// PaymentListFilter filters the payment audit trail.
type PaymentListFilter struct {
	domain.ListFilter

	SaleID     *id.ID
	CustomerID *id.ID
	SalesmanID string
	FromDate   *time.Time
	ToDate     *time.Time
}

// PaymentRepository defines persistence operations for payments.
// Payments are append-only: no update or delete operations exist.
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error

	GetByID(ctx context.Context, paymentID id.ID) (*Payment, error)

	List(ctx context.Context, filter PaymentListFilter) (domain.ListResult[*Payment], error)
}
