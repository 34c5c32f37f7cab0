package ledger

import (
	"context"
	"fmt"
	"time"

	"karobar/internal/core/apperror"
	appcontext "karobar/internal/core/context"
	"karobar/internal/core/id"
	"karobar/internal/core/tx"
	"karobar/internal/core/types"
	"karobar/internal/domain"
	"karobar/internal/domain/audit"
	"karobar/internal/domain/catalogs/customer"
	"karobar/internal/domain/catalogs/product"
	"karobar/pkg/logger"
	"karobar/pkg/numerator"
)

// Numberer mints receipt numbers for sales.
type Numberer interface {
	NextNumber(ctx context.Context, prefix string, at time.Time) (string, error)
}

var _ Numberer = (*numerator.Service)(nil)

// Service is the ledger reconciliation engine. Both operations run as one
// atomic transaction; concurrency control is row locking inside the store,
// the engine holds no locks and no shared mutable state of its own.
type Service struct {
	sales     SaleRepository
	payments  PaymentRepository
	products  product.Repository
	customers customer.Repository
	numberer  Numberer
	audit     audit.Recorder
	txManager tx.Manager
}

// NewService creates the ledger engine.
func NewService(
	sales SaleRepository,
	payments PaymentRepository,
	products product.Repository,
	customers customer.Repository,
	numberer Numberer,
	auditRec audit.Recorder,
	txManager tx.Manager,
) *Service {
	return &Service{
		sales:     sales,
		payments:  payments,
		products:  products,
		customers: customers,
		numberer:  numberer,
		audit:     auditRec,
		txManager: txManager,
	}
}

// SaleLineInput is one requested line of a new sale.
type SaleLineInput struct {
	ProductID id.ID
	Quantity  int
	UnitPrice types.Money
}

// NewCustomerInput describes a customer created inline during sale entry.
type NewCustomerInput struct {
	Name    string
	Phone   string
	Address string
}

// CreateSaleInput is the request for the sale creation operation.
// Exactly one of CustomerID / NewCustomer must be set.
type CreateSaleInput struct {
	Date           time.Time
	SalesmanID     string
	CustomerID     *id.ID
	NewCustomer    *NewCustomerInput
	Lines          []SaleLineInput
	Discount       types.Money
	AmountReceived types.Money
}

func (in *CreateSaleInput) validate() error {
	if in.SalesmanID == "" {
		return apperror.NewValidation("salesman is required").
			WithDetail("field", "salesmanId")
	}
	if len(in.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	if in.CustomerID == nil && in.NewCustomer == nil {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if in.CustomerID != nil && in.NewCustomer != nil {
		return apperror.NewValidation("specify either an existing or a new customer, not both")
	}
	if nc := in.NewCustomer; nc != nil {
		if nc.Name == "" || nc.Phone == "" {
			return apperror.NewValidation("new customer name and phone are required")
		}
	}
	if in.Discount.IsNegative() {
		return apperror.NewInvalidAmount("discount cannot be negative")
	}
	if in.AmountReceived.IsNegative() {
		return apperror.NewInvalidAmount("amount received cannot be negative")
	}
	for i, line := range in.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewInvalidAmount("unit price cannot be negative")
		}
	}
	return nil
}

// CreateSale records a sale: stock check, total computation, customer due
// increment (or inline customer creation), sale + lines insert, optional
// first payment, stock decrement. All writes commit atomically or not at all.
func (s *Service) CreateSale(ctx context.Context, in CreateSaleInput) (*Sale, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	// Receipt numbers are allocated outside the transaction; a rollback
	// leaves a gap, never a duplicate.
	number, err := s.numberer.NextNumber(ctx, "SAL", date)
	if err != nil {
		return nil, fmt.Errorf("generate number: %w", err)
	}

	sale := NewSale(in.SalesmanID, date)
	sale.Number = number
	sale.Discount = in.Discount
	sale.CreatedBy = appcontext.GetUserID(ctx)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// 1. Stock check with row locks. Any shortfall aborts before a
		// single write is issued.
		for _, line := range in.Lines {
			p, err := s.products.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p.Stock < line.Quantity {
				return apperror.NewInsufficientStock(p.ID.String(), line.Quantity, p.Stock)
			}
			sale.AddLine(p.ID, p.Name, line.Quantity, line.UnitPrice)
		}

		// 2. Totals.
		if in.AmountReceived.GreaterThan(sale.TotalAmount) {
			return apperror.NewInvalidAmount("amount received cannot exceed the total amount").
				WithDetail("total_amount", sale.TotalAmount.String()).
				WithDetail("amount_received", in.AmountReceived.String())
		}
		sale.PaidAmount = in.AmountReceived
		sale.DueAmount = sale.TotalAmount.Sub(in.AmountReceived)

		// 3. Customer resolution.
		var cust *customer.Customer
		if in.NewCustomer != nil {
			cust = customer.New(in.NewCustomer.Name, in.NewCustomer.Phone, in.NewCustomer.Address, in.SalesmanID)
			cust.TotalDue = sale.DueAmount
			if err := s.customers.Create(ctx, cust); err != nil {
				return fmt.Errorf("create customer: %w", err)
			}
		} else {
			cust, err = s.customers.GetForUpdate(ctx, *in.CustomerID)
			if err != nil {
				return err
			}
			if err := s.customers.AddToTotalDue(ctx, cust.ID, sale.DueAmount); err != nil {
				return fmt.Errorf("update customer due: %w", err)
			}
		}
		sale.CustomerID = cust.ID
		sale.CustomerName = cust.Name
		sale.CustomerPhone = cust.Phone
		sale.CustomerAddress = cust.Address

		// 4. Sale document.
		if err := s.sales.Create(ctx, sale); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		if err := s.sales.SaveLines(ctx, sale.ID, sale.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		// 5. First payment, when money changed hands at the counter.
		if in.AmountReceived.IsPositive() {
			pay := NewPayment(sale.ID, cust.ID, in.SalesmanID, in.AmountReceived, sale.Date)
			pay.CreatedBy = sale.CreatedBy
			if err := s.payments.Create(ctx, pay); err != nil {
				return fmt.Errorf("create payment: %w", err)
			}
		}

		// 6. Stock decrement.
		for _, line := range sale.Lines {
			if err := s.products.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
				return fmt.Errorf("adjust stock: %w", err)
			}
		}

		return s.audit.RecordChange(ctx, "sale", sale.ID, audit.ActionCreate, map[string]any{
			"number":       sale.Number,
			"customer_id":  sale.CustomerID.String(),
			"total_amount": sale.TotalAmount.String(),
			"paid_amount":  sale.PaidAmount.String(),
			"due_amount":   sale.DueAmount.String(),
			"lines":        len(sale.Lines),
		})
	})

	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale recorded",
		"id", sale.ID,
		"number", sale.Number,
		"total", sale.TotalAmount,
		"due", sale.DueAmount,
	)
	return sale, nil
}

// ApplyPaymentInput is the request for the payment application operation.
type ApplyPaymentInput struct {
	SaleID     id.ID
	CustomerID id.ID
	Amount     types.Money
}

// ApplyPayment records a received payment against a sale: sale paid/due
// mutation, customer due decrement, appended payment row. One transaction.
func (s *Service) ApplyPayment(ctx context.Context, in ApplyPaymentInput) (*Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, apperror.NewInvalidAmount("payment amount must be positive")
	}

	var pay *Payment

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Fresh reads inside the transaction; the due amount seen here is
		// the one the cap applies to.
		sale, err := s.sales.GetForUpdate(ctx, in.SaleID)
		if err != nil {
			return err
		}

		cust, err := s.customers.GetForUpdate(ctx, in.CustomerID)
		if err != nil {
			return err
		}

		if sale.CustomerID != cust.ID {
			return apperror.NewValidation("payment customer does not match the sale").
				WithDetail("sale_customer_id", sale.CustomerID.String()).
				WithDetail("customer_id", cust.ID.String())
		}

		if in.Amount.GreaterThan(sale.DueAmount) {
			return apperror.NewInvalidAmount("payment cannot be more than the due amount").
				WithDetail("due_amount", sale.DueAmount.String()).
				WithDetail("amount", in.Amount.String())
		}

		newPaid := sale.PaidAmount.Add(in.Amount)
		newDue := sale.DueAmount.Sub(in.Amount)
		if err := s.sales.UpdateAmounts(ctx, sale.ID, newPaid, newDue); err != nil {
			return fmt.Errorf("update sale amounts: %w", err)
		}

		if err := s.customers.AddToTotalDue(ctx, cust.ID, in.Amount.Neg()); err != nil {
			return fmt.Errorf("update customer due: %w", err)
		}

		pay = NewPayment(sale.ID, cust.ID, sale.SalesmanID, in.Amount, time.Now().UTC())
		pay.CreatedBy = appcontext.GetUserID(ctx)
		if err := s.payments.Create(ctx, pay); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		return s.audit.RecordChange(ctx, "payment", pay.ID, audit.ActionPayment, map[string]any{
			"sale_id":     sale.ID.String(),
			"customer_id": cust.ID.String(),
			"amount":      in.Amount.String(),
			"new_due":     newDue.String(),
		})
	})

	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "payment applied",
		"id", pay.ID,
		"sale_id", pay.SaleID,
		"amount", pay.Amount,
	)
	return pay, nil
}

// GetSale retrieves a sale with lines.
func (s *Service) GetSale(ctx context.Context, saleID id.ID) (*Sale, error) {
	sale, err := s.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	lines, err := s.sales.GetLines(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	sale.Lines = lines

	return sale, nil
}

// ListSales retrieves sales with filtering.
func (s *Service) ListSales(ctx context.Context, filter SaleListFilter) (domain.ListResult[*Sale], error) {
	return s.sales.List(ctx, filter)
}

// ListPayments retrieves payments with filtering.
func (s *Service) ListPayments(ctx context.Context, filter PaymentListFilter) (domain.ListResult[*Payment], error) {
	return s.payments.List(ctx, filter)
}
