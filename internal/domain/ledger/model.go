// Package ledger provides the sale/payment reconciliation engine.
//
// The ledger is the combination of Sale, Payment and Customer.TotalDue
// records. Its invariants:
//
//   - Sale: totalAmount == sum(quantity*unitPrice) - discount
//   - Sale: paidAmount + dueAmount == totalAmount, dueAmount >= 0
//   - Customer: totalDue == sum(dueAmount) over the customer's sales
//   - Payment: append-only, 0 < amount <= sale.dueAmount at application time
//
// All mutations happen inside a single database transaction per operation.
package ledger

import (
	"context"
	"time"

	"karobar/internal/core/apperror"
	"karobar/internal/core/entity"
	"karobar/internal/core/id"
	"karobar/internal/core/types"
)

// Sale is the document recording a completed sale.
// PaidAmount and DueAmount are the only mutable fields after creation;
// they change exclusively through payment application.
type Sale struct {
	entity.BaseDocument

	// Number is the auto-generated receipt number
	Number string `db:"number" json:"number"`

	// Date is the business date of the sale
	Date time.Time `db:"date" json:"date"`

	SalesmanID string `db:"salesman_id" json:"salesmanId"`
	CustomerID id.ID  `db:"customer_id" json:"customerId"`

	// Customer contact snapshot at sale time
	CustomerName    string `db:"customer_name" json:"customerName"`
	CustomerPhone   string `db:"customer_phone" json:"customerPhone"`
	CustomerAddress string `db:"customer_address" json:"customerAddress"`

	Discount    types.Money `db:"discount" json:"discount"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
	PaidAmount  types.Money `db:"paid_amount" json:"paidAmount"`
	DueAmount   types.Money `db:"due_amount" json:"dueAmount"`

	// Table part: sold items
	Lines []SaleLine `db:"-" json:"lines"`
}

// SaleLine represents one sold product.
// ProductName is a denormalized snapshot; later product renames do not
// rewrite history.
type SaleLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID   id.ID       `db:"product_id" json:"productId"`
	ProductName string      `db:"product_name" json:"productName"`
	Quantity    int         `db:"quantity" json:"quantity"`
	UnitPrice   types.Money `db:"unit_price" json:"unitPrice"`
	Amount      types.Money `db:"amount" json:"amount"`
}

// NewSale creates a sale document shell; lines are added via AddLine.
func NewSale(salesmanID string, date time.Time) *Sale {
	return &Sale{
		BaseDocument: entity.NewBaseDocument(),
		Date:         date,
		SalesmanID:   salesmanID,
		Discount:     types.Zero(),
		TotalAmount:  types.Zero(),
		PaidAmount:   types.Zero(),
		DueAmount:    types.Zero(),
		Lines:        make([]SaleLine, 0),
	}
}

// AddLine appends a line and recalculates the total.
func (s *Sale) AddLine(productID id.ID, productName string, quantity int, unitPrice types.Money) {
	line := SaleLine{
		LineID:      id.New(),
		LineNo:      len(s.Lines) + 1,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      unitPrice.Mul(types.NewMoneyFromInt(int64(quantity))),
	}

	s.Lines = append(s.Lines, line)
	s.recalculateTotal()
}

func (s *Sale) recalculateTotal() {
	total := types.Zero()
	for _, line := range s.Lines {
		total = total.Add(line.Amount)
	}
	s.TotalAmount = total.Sub(s.Discount)
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if s.SalesmanID == "" {
		return apperror.NewValidation("salesman is required").
			WithDetail("field", "salesmanId")
	}

	if s.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	if len(s.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range s.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	if s.Discount.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discount")
	}

	return nil
}

// Payment is the append-only record justifying the current due amounts.
// Never mutated or deleted after creation.
type Payment struct {
	entity.BaseDocument

	SaleID     id.ID       `db:"sale_id" json:"saleId"`
	CustomerID id.ID       `db:"customer_id" json:"customerId"`
	SalesmanID string      `db:"salesman_id" json:"salesmanId"`
	Amount     types.Money `db:"amount" json:"amount"`
	Date       time.Time   `db:"date" json:"date"`
}

// NewPayment creates a payment record.
func NewPayment(saleID, customerID id.ID, salesmanID string, amount types.Money, date time.Time) *Payment {
	return &Payment{
		BaseDocument: entity.NewBaseDocument(),
		SaleID:       saleID,
		CustomerID:   customerID,
		SalesmanID:   salesmanID,
		Amount:       amount,
		Date:         date,
	}
}
