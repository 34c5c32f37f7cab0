// Package expense tracks business spending outside the sales ledger.
// Expenses reduce reported profit but never touch customer dues or stock.
package expense

import (
	"context"
	"time"

	"karobar/internal/core/apperror"
	"karobar/internal/core/entity"
	"karobar/internal/core/types"
)

// Category is a coarse grouping for expense reporting.
type Category string

const (
	CategorySalaries  Category = "salaries"
	CategoryRent      Category = "rent"
	CategoryUtilities Category = "utilities"
	CategoryTransport Category = "transport"
	CategoryPurchases Category = "purchases"
	CategoryOther     Category = "other"
)

// ValidCategory reports whether c is a known category.
func ValidCategory(c Category) bool {
	switch c {
	case CategorySalaries, CategoryRent, CategoryUtilities,
		CategoryTransport, CategoryPurchases, CategoryOther:
		return true
	}
	return false
}

// Expense is a single spending record.
type Expense struct {
	entity.BaseEntity
	Title       string      `db:"title" json:"title"`
	Category    Category    `db:"category" json:"category"`
	Amount      types.Money `db:"amount" json:"amount"`
	Date        time.Time   `db:"date" json:"date"`
	Description string      `db:"description" json:"description"`
	CreatedBy   string      `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
}

// New creates an expense with a generated ID.
func New(title string, category Category, amount types.Money, date time.Time) *Expense {
	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}
	return &Expense{
		BaseEntity: entity.NewBaseEntity(),
		Title:      title,
		Category:   category,
		Amount:     amount,
		Date:       date,
		CreatedAt:  now,
	}
}

// Validate checks required fields.
func (e *Expense) Validate(ctx context.Context) error {
	if e.Title == "" {
		return apperror.NewValidation("expense title is required").
			WithDetail("field", "title")
	}
	if !ValidCategory(e.Category) {
		return apperror.NewValidation("unknown expense category").
			WithDetail("category", string(e.Category))
	}
	if !e.Amount.IsPositive() {
		return apperror.NewInvalidAmount("expense amount must be positive")
	}
	return nil
}

var _ entity.Validatable = (*Expense)(nil)
