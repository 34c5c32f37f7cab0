// Package assist turns short keyword prompts into ready-to-use Roman Urdu
// text via a hosted text-generation API. The model call is opaque: prompt
// in, text out, errors propagate without retries.
package assist

import (
	"context"
	"fmt"
	"strings"

	"karobar/internal/core/apperror"
	"karobar/internal/core/types"
	"karobar/pkg/logger"
)

// Generator runs one text-generation call against the hosted model.
type Generator interface {
	Generate(ctx context.Context, instructions, input string) (string, error)
}

// Service builds prompts for the fixed set of assist operations.
type Service struct {
	generator Generator
}

// NewService creates a new assist service.
func NewService(generator Generator) *Service {
	return &Service{generator: generator}
}

const taskDescriptionInstructions = `You are an expert logistics and warehouse manager who is fluent in Roman Urdu. Convert simple keywords into a clear, concise, and professional task description for a warehouse worker, in Roman Urdu. Address the worker with grammar matching the given gender. Keep it professional and direct. Respond with the task description only.`

// TaskDescription expands task keywords into a worker instruction.
// Worker gender keeps the Roman Urdu grammatically correct.
func (s *Service) TaskDescription(ctx context.Context, prompt, workerGender string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", apperror.NewValidation("prompt is required").WithDetail("field", "prompt")
	}
	if workerGender != "male" && workerGender != "female" {
		return "", apperror.NewValidation("worker gender must be male or female").
			WithDetail("gender", workerGender)
	}

	input := fmt.Sprintf("Keywords: %s\nWorker gender: %s", prompt, workerGender)
	out, err := s.generator.Generate(ctx, taskDescriptionInstructions, input)
	if err != nil {
		return "", fmt.Errorf("generate task description: %w", err)
	}

	logger.Debug(ctx, "task description generated", "prompt_len", len(prompt))
	return strings.TrimSpace(out), nil
}

const planItemsInstructions = `You are an expert sales manager who is fluent in Roman Urdu. Convert simple keywords into a clear, concise, and professional list of items for a salesman to carry for the day, in Roman Urdu. Use a direct and instructional tone. Do not use overly formal or begging language like "guzarish hai". Respond with the item list only.`

// PlanItems expands item keywords into a salesman's carry list.
func (s *Service) PlanItems(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", apperror.NewValidation("prompt is required").WithDetail("field", "prompt")
	}

	out, err := s.generator.Generate(ctx, planItemsInstructions, "Keywords: "+prompt)
	if err != nil {
		return "", fmt.Errorf("generate plan items: %w", err)
	}
	return strings.TrimSpace(out), nil
}

const financialSummaryInstructions = `You are an expert business analyst for a small-to-medium-sized enterprise. Analyze the provided financial data and give a clear, concise, and actionable summary in Roman Urdu: state whether the business is in profit or loss, write a brief summary mentioning the net result, and give 2-3 practical suggestions for improvement. Everything must be in Roman Urdu.`

// FinancialInput is the data the financial summary narrates.
type FinancialInput struct {
	PeriodLabel   string
	TotalRevenue  types.Money
	TotalExpenses types.Money
	NetResult     types.Money
}

// FinancialSummary narrates a profit-loss report.
func (s *Service) FinancialSummary(ctx context.Context, in FinancialInput) (string, error) {
	input := fmt.Sprintf(
		"Period: %s\nTotal revenue: %s\nTotal expenses: %s\nNet result: %s",
		in.PeriodLabel, in.TotalRevenue, in.TotalExpenses, in.NetResult,
	)

	out, err := s.generator.Generate(ctx, financialSummaryInstructions, input)
	if err != nil {
		return "", fmt.Errorf("generate financial summary: %w", err)
	}
	return strings.TrimSpace(out), nil
}

const anomalyDetectionInstructions = `You are an analyst who reviews field sales records for a distribution company. Analyze the sale below and decide whether the salesman's location or timing looks inconsistent with a normal sale, for example a location far outside the expected sales region or a sale recorded at an unusual time of day. Reply with exactly one line: "ANOMALY: <short description of the discrepancy>" when something looks wrong, or "OK: No anomalies detected." when it does not.`

// AnomalyInput describes one field sale for discrepancy checking.
type AnomalyInput struct {
	SalesmanName    string
	SaleDate        string
	SaleTime        string
	CustomerName    string
	Location        string
	ProductsSold    string
	TotalSaleAmount types.Money
}

// AnomalyResult is the verdict for one checked sale.
type AnomalyResult struct {
	AnomalyDetected bool   `json:"anomalyDetected"`
	Description     string `json:"description"`
}

// DetectAnomaly checks one sale record for location or timing discrepancies.
func (s *Service) DetectAnomaly(ctx context.Context, in AnomalyInput) (AnomalyResult, error) {
	if strings.TrimSpace(in.SalesmanName) == "" {
		return AnomalyResult{}, apperror.NewValidation("salesman name is required").
			WithDetail("field", "salesmanName")
	}
	if strings.TrimSpace(in.Location) == "" {
		return AnomalyResult{}, apperror.NewValidation("location data is required").
			WithDetail("field", "location")
	}

	input := fmt.Sprintf(
		"Salesman: %s\nSale date: %s\nSale time: %s\nCustomer: %s\nLocation: %s\nProducts sold: %s\nTotal sale amount: %s",
		in.SalesmanName, in.SaleDate, in.SaleTime, in.CustomerName, in.Location, in.ProductsSold, in.TotalSaleAmount,
	)

	out, err := s.generator.Generate(ctx, anomalyDetectionInstructions, input)
	if err != nil {
		return AnomalyResult{}, fmt.Errorf("detect anomaly: %w", err)
	}

	result := parseAnomalyVerdict(out)
	if result.AnomalyDetected {
		logger.Info(ctx, "sale anomaly flagged", "salesman", in.SalesmanName)
	}
	return result, nil
}

// parseAnomalyVerdict maps the model's one-line verdict onto a result.
// Replies that ignore the format are treated as anomalies so they are
// never silently dropped.
func parseAnomalyVerdict(out string) AnomalyResult {
	verdict := strings.TrimSpace(out)
	switch {
	case strings.HasPrefix(verdict, "ANOMALY:"):
		return AnomalyResult{
			AnomalyDetected: true,
			Description:     strings.TrimSpace(strings.TrimPrefix(verdict, "ANOMALY:")),
		}
	case strings.HasPrefix(verdict, "OK:"):
		return AnomalyResult{
			Description: strings.TrimSpace(strings.TrimPrefix(verdict, "OK:")),
		}
	default:
		return AnomalyResult{AnomalyDetected: true, Description: verdict}
	}
}
