package dto

import (
	"karobar/internal/core/types"
)

// TaskDescriptionRequest asks for a Roman Urdu task description.
type TaskDescriptionRequest struct {
	Prompt       string `json:"prompt" binding:"required"`
	WorkerGender string `json:"workerGender" binding:"required"`
}

// PlanItemsRequest asks for a Roman Urdu salesman plan message.
type PlanItemsRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// FinancialSummaryRequest asks for a Roman Urdu narration of period numbers.
type FinancialSummaryRequest struct {
	PeriodLabel   string      `json:"periodLabel" binding:"required"`
	TotalRevenue  types.Money `json:"totalRevenue"`
	TotalExpenses types.Money `json:"totalExpenses"`
	NetResult     types.Money `json:"netResult"`
}

// AnomalyDetectionRequest asks for a discrepancy check on one sale record.
type AnomalyDetectionRequest struct {
	SalesmanName    string      `json:"salesmanName" binding:"required"`
	SaleDate        string      `json:"saleDate"`
	SaleTime        string      `json:"saleTime"`
	CustomerName    string      `json:"customerName"`
	Location        string      `json:"location" binding:"required"`
	ProductsSold    string      `json:"productsSold"`
	TotalSaleAmount types.Money `json:"totalSaleAmount"`
}

// AssistResponse carries generated text.
type AssistResponse struct {
	Text string `json:"text"`
}
