// Package reports computes date-range aggregates over the ledger and
// expense records. Reports are read-only and derived; nothing here
// mutates documents.
package reports

import (
	"time"

	"karobar/internal/core/types"
	"karobar/internal/domain/expense"
)

// Period is the inclusive date range a report covers.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SalesSummary aggregates sales over a period.
type SalesSummary struct {
	Period        Period      `json:"period"`
	SalesmanID    string      `json:"salesmanId,omitempty"`
	SaleCount     int         `json:"saleCount"`
	TotalRevenue  types.Money `json:"totalRevenue"`
	TotalDiscount types.Money `json:"totalDiscount"`
	TotalPaid     types.Money `json:"totalPaid"`
	TotalDue      types.Money `json:"totalDue"`
}

// SalesmanBreakdown is one salesman's share of a sales summary.
type SalesmanBreakdown struct {
	SalesmanID   string      `db:"salesman_id" json:"salesmanId"`
	SaleCount    int         `db:"sale_count" json:"saleCount"`
	TotalRevenue types.Money `db:"total_revenue" json:"totalRevenue"`
	TotalDue     types.Money `db:"total_due" json:"totalDue"`
}

// ExpenseSummary aggregates expenses over a period.
type ExpenseSummary struct {
	Period        Period                  `json:"period"`
	ExpenseCount  int                     `json:"expenseCount"`
	TotalExpenses types.Money             `json:"totalExpenses"`
	ByCategory    []expense.CategoryTotal `json:"byCategory"`
}

// ProfitLoss is the period's bottom line: revenue minus expenses.
// Negative NetProfitOrLoss means a loss.
type ProfitLoss struct {
	Period          Period      `json:"period"`
	TotalRevenue    types.Money `json:"totalRevenue"`
	TotalExpenses   types.Money `json:"totalExpenses"`
	NetProfitOrLoss types.Money `json:"netProfitOrLoss"`
}

// WorkerActivity summarizes one worker's completed tasks over a period.
type WorkerActivity struct {
	WorkerID       string `db:"worker_id" json:"workerId"`
	WorkerName     string `db:"worker_name" json:"workerName"`
	CompletedTasks int    `db:"completed_tasks" json:"completedTasks"`
}
