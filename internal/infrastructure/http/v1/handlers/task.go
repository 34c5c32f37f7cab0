package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appctx "karobar/internal/core/context"
	"karobar/internal/domain"
	"karobar/internal/domain/tasks"
	"karobar/internal/infrastructure/http/v1/dto"
)

// TaskHandler handles HTTP requests for worker tasks and salesman plans.
type TaskHandler struct {
	*BaseHandler
	service *tasks.Service
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(base *BaseHandler, service *tasks.Service) *TaskHandler {
	return &TaskHandler{
		BaseHandler: base,
		service:     service,
	}
}

// AssignWorkerTask handles PUT /tasks/worker/:workerId
func (h *TaskHandler) AssignWorkerTask(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AssignWorkerTaskRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t := req.ToEntity(c.Param("workerId"))
	if err := h.service.AssignWorkerTask(ctx, t); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// GetWorkerTask handles GET /tasks/worker/:workerId
func (h *TaskHandler) GetWorkerTask(c *gin.Context) {
	ctx := c.Request.Context()

	t, err := h.service.GetWorkerTask(ctx, c.Param("workerId"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, t)
}

// UpdateProgress handles PATCH /tasks/worker/:workerId/progress
func (h *TaskHandler) UpdateProgress(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateProgressRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateProgress(ctx, c.Param("workerId"), req.Progress); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "progress updated")
}

// CompleteWorkerTask handles POST /tasks/worker/:workerId/complete
func (h *TaskHandler) CompleteWorkerTask(c *gin.Context) {
	ctx := c.Request.Context()

	entry, err := h.service.CompleteWorkerTask(ctx, c.Param("workerId"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entry)
}

// ListWorkerTasks handles GET /tasks/worker
func (h *TaskHandler) ListWorkerTasks(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.ListWorkerTasks(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// ListHistory handles GET /tasks/history
// Workers see only their own completed tasks.
func (h *TaskHandler) ListHistory(c *gin.Context) {
	ctx := c.Request.Context()

	filter := tasks.HistoryFilter{ListFilter: domain.DefaultListFilter()}
	filter.WorkerID = c.Query("workerId")
	filter.FromDate = h.ParseTimeQuery(c, "from")
	filter.ToDate = h.ParseTimeQuery(c, "to")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	if user := h.CurrentUser(c); user != nil && user.Role == appctx.RoleWorker {
		filter.WorkerID = user.UserID
	}

	result, err := h.service.ListHistory(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// AssignSalesmanPlan handles PUT /plans/salesman/:salesmanId
func (h *TaskHandler) AssignSalesmanPlan(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AssignSalesmanPlanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity(c.Param("salesmanId"))
	if err := h.service.AssignSalesmanPlan(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// GetSalesmanPlan handles GET /plans/salesman/:salesmanId
func (h *TaskHandler) GetSalesmanPlan(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.service.GetSalesmanPlan(ctx, c.Param("salesmanId"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}
