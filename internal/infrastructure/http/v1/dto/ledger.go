package dto

import (
	"time"

	"karobar/internal/core/apperror"
	"karobar/internal/core/id"
	"karobar/internal/core/types"
	"karobar/internal/domain/ledger"
)

// --- Sale ---

// SaleLineRequest is one line of a new sale.
type SaleLineRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Quantity  int         `json:"quantity" binding:"required,gt=0"`
	UnitPrice types.Money `json:"unitPrice"`
}

// NewCustomerRequest describes a customer created inline with the sale.
type NewCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

// CreateSaleRequest records a sale. Exactly one of customerId /
// newCustomer must be present.
type CreateSaleRequest struct {
	Date           time.Time           `json:"date" binding:"required"`
	CustomerID     string              `json:"customerId,omitempty"`
	NewCustomer    *NewCustomerRequest `json:"newCustomer,omitempty"`
	Lines          []SaleLineRequest   `json:"lines" binding:"required,min=1,dive"`
	Discount       types.Money         `json:"discount"`
	AmountReceived types.Money         `json:"amountReceived"`
}

// ToInput converts request to the ledger operation input. SalesmanID
// comes from the authenticated user, not the payload.
func (r *CreateSaleRequest) ToInput(salesmanID string) (ledger.CreateSaleInput, error) {
	in := ledger.CreateSaleInput{
		Date:           r.Date,
		SalesmanID:     salesmanID,
		Discount:       r.Discount,
		AmountReceived: r.AmountReceived,
	}

	if r.CustomerID != "" {
		customerID, err := id.Parse(r.CustomerID)
		if err != nil {
			return in, apperror.NewValidation("invalid customer id").
				WithDetail("customerId", r.CustomerID)
		}
		in.CustomerID = &customerID
	}
	if r.NewCustomer != nil {
		in.NewCustomer = &ledger.NewCustomerInput{
			Name:    r.NewCustomer.Name,
			Phone:   r.NewCustomer.Phone,
			Address: r.NewCustomer.Address,
		}
	}

	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return in, apperror.NewValidation("invalid product id").
				WithDetail("lineNo", i+1)
		}
		in.Lines = append(in.Lines, ledger.SaleLineInput{
			ProductID: productID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	return in, nil
}

// --- Payment ---

// ApplyPaymentRequest records a payment against a sale.
type ApplyPaymentRequest struct {
	SaleID     string      `json:"saleId" binding:"required"`
	CustomerID string      `json:"customerId" binding:"required"`
	Amount     types.Money `json:"amount"`
}

// ToInput converts request to the ledger operation input.
func (r *ApplyPaymentRequest) ToInput() (ledger.ApplyPaymentInput, error) {
	saleID, err := id.Parse(r.SaleID)
	if err != nil {
		return ledger.ApplyPaymentInput{}, apperror.NewValidation("invalid sale id").
			WithDetail("saleId", r.SaleID)
	}
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return ledger.ApplyPaymentInput{}, apperror.NewValidation("invalid customer id").
			WithDetail("customerId", r.CustomerID)
	}
	return ledger.ApplyPaymentInput{
		SaleID:     saleID,
		CustomerID: customerID,
		Amount:     r.Amount,
	}, nil
}
