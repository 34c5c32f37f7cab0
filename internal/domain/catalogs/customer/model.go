// Package customer provides the customer catalog.
package customer

import (
	"context"
	"time"

	"karobar/internal/core/apperror"
	"karobar/internal/core/entity"
	"karobar/internal/core/types"
)

// Customer represents a buyer owned by a salesman.
// TotalDue is a materialized aggregate: the sum of dueAmount over the
// customer's sales. It is mutated only inside ledger transactions, never
// through plain customer updates.
type Customer struct {
	entity.BaseEntity

	Name       string      `db:"name" json:"name"`
	Phone      string      `db:"phone" json:"phone"`
	Address    string      `db:"address" json:"address"`
	SalesmanID string      `db:"salesman_id" json:"salesmanId"`
	TotalDue   types.Money `db:"total_due" json:"totalDue"`
	CreatedAt  time.Time   `db:"created_at" json:"createdAt"`
}

// New creates a new Customer with required fields.
func New(name, phone, address, salesmanID string) *Customer {
	return &Customer{
		BaseEntity: entity.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		Address:    address,
		SalesmanID: salesmanID,
		TotalDue:   types.Zero(),
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if c.Phone == "" {
		return apperror.NewValidation("phone is required").
			WithDetail("field", "phone")
	}
	if c.SalesmanID == "" {
		return apperror.NewValidation("salesman is required").
			WithDetail("field", "salesmanId")
	}
	if c.TotalDue.IsNegative() {
		return apperror.NewValidation("total due cannot be negative").
			WithDetail("field", "totalDue")
	}
	return nil
}
