package dto

import (
	"time"

	"karobar/internal/core/types"
	"karobar/internal/domain/expense"
)

// CreateExpenseRequest for recording an expense.
type CreateExpenseRequest struct {
	Title       string           `json:"title" binding:"required"`
	Category    expense.Category `json:"category" binding:"required"`
	Amount      types.Money      `json:"amount"`
	Date        time.Time        `json:"date" binding:"required"`
	Description string           `json:"description"`
}

// ToEntity converts request to domain entity.
func (r *CreateExpenseRequest) ToEntity() *expense.Expense {
	e := expense.New(r.Title, r.Category, r.Amount, r.Date)
	e.Description = r.Description
	return e
}

// UpdateExpenseRequest for editing an expense.
type UpdateExpenseRequest struct {
	Title       *string           `json:"title"`
	Category    *expense.Category `json:"category"`
	Amount      *types.Money      `json:"amount"`
	Date        *time.Time        `json:"date"`
	Description *string           `json:"description"`
	Version     int               `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateExpenseRequest) ApplyTo(e *expense.Expense) {
	if r.Title != nil {
		e.Title = *r.Title
	}
	if r.Category != nil {
		e.Category = *r.Category
	}
	if r.Amount != nil {
		e.Amount = *r.Amount
	}
	if r.Date != nil {
		e.Date = *r.Date
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	e.Version = r.Version
}
