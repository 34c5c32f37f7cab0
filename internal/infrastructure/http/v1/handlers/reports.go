package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"karobar/internal/domain/assist"
	"karobar/internal/domain/reports"
)

// ReportsHandler handles HTTP requests for aggregate reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
	assist  *assist.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service, assistSvc *assist.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
		assist:      assistSvc,
	}
}

func (h *ReportsHandler) period(c *gin.Context) (time.Time, time.Time) {
	var from, to time.Time
	if t := h.ParseTimeQuery(c, "from"); t != nil {
		from = *t
	}
	if t := h.ParseTimeQuery(c, "to"); t != nil {
		to = *t
	}
	return from, to
}

// Sales handles GET /reports/sales
func (h *ReportsHandler) Sales(c *gin.Context) {
	ctx := c.Request.Context()
	from, to := h.period(c)

	if c.Query("bySalesman") == "true" {
		breakdown, err := h.service.SalesBySalesman(ctx, from, to)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, breakdown)
		return
	}

	summary, err := h.service.Sales(ctx, from, to, c.Query("salesmanId"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}

// Expenses handles GET /reports/expenses
func (h *ReportsHandler) Expenses(c *gin.Context) {
	ctx := c.Request.Context()
	from, to := h.period(c)

	summary, err := h.service.Expenses(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}

// ProfitLoss handles GET /reports/profit-loss
// With ?summary=true the numbers are also narrated in Roman Urdu.
func (h *ReportsHandler) ProfitLoss(c *gin.Context) {
	ctx := c.Request.Context()
	from, to := h.period(c)

	report, err := h.service.ProfitLoss(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	if c.Query("summary") != "true" || h.assist == nil {
		h.OK(c, report)
		return
	}

	text, err := h.assist.FinancialSummary(ctx, assist.FinancialInput{
		PeriodLabel:   from.Format("2006-01-02") + " to " + to.Format("2006-01-02"),
		TotalRevenue:  report.TotalRevenue,
		TotalExpenses: report.TotalExpenses,
		NetResult:     report.NetProfitOrLoss,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{
		"report":  report,
		"summary": text,
	})
}

// WorkerTasks handles GET /reports/worker-tasks
func (h *ReportsHandler) WorkerTasks(c *gin.Context) {
	ctx := c.Request.Context()
	from, to := h.period(c)

	activity, err := h.service.WorkerActivity(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, activity)
}
