package handlers

import (
	"github.com/gin-gonic/gin"

	"karobar/internal/domain/assist"
	"karobar/internal/infrastructure/http/v1/dto"
)

// AssistHandler handles HTTP requests for generated Roman Urdu texts.
type AssistHandler struct {
	*BaseHandler
	service *assist.Service
}

// NewAssistHandler creates a new assist handler.
func NewAssistHandler(base *BaseHandler, service *assist.Service) *AssistHandler {
	return &AssistHandler{
		BaseHandler: base,
		service:     service,
	}
}

// TaskDescription handles POST /assist/task-description
func (h *AssistHandler) TaskDescription(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.TaskDescriptionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	text, err := h.service.TaskDescription(ctx, req.Prompt, req.WorkerGender)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AssistResponse{Text: text})
}

// FinancialSummary handles POST /assist/financial-summary
func (h *AssistHandler) FinancialSummary(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.FinancialSummaryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	text, err := h.service.FinancialSummary(ctx, assist.FinancialInput{
		PeriodLabel:   req.PeriodLabel,
		TotalRevenue:  req.TotalRevenue,
		TotalExpenses: req.TotalExpenses,
		NetResult:     req.NetResult,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AssistResponse{Text: text})
}

// AnomalyDetection handles POST /assist/anomaly-detection
func (h *AssistHandler) AnomalyDetection(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AnomalyDetectionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.DetectAnomaly(ctx, assist.AnomalyInput{
		SalesmanName:    req.SalesmanName,
		SaleDate:        req.SaleDate,
		SaleTime:        req.SaleTime,
		CustomerName:    req.CustomerName,
		Location:        req.Location,
		ProductsSold:    req.ProductsSold,
		TotalSaleAmount: req.TotalSaleAmount,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// PlanItems handles POST /assist/plan-items
func (h *AssistHandler) PlanItems(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PlanItemsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	text, err := h.service.PlanItems(ctx, req.Prompt)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AssistResponse{Text: text})
}
