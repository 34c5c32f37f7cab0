package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"karobar/internal/core/apperror"
	"karobar/internal/core/id"
	"karobar/internal/domain"
	"karobar/internal/domain/expense"
	"karobar/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler handles HTTP requests for expenses.
type ExpenseHandler struct {
	*BaseHandler
	service *expense.Service
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(base *BaseHandler, service *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e := req.ToEntity()
	if err := h.service.Create(ctx, e); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, e)
}

// Get handles GET /expenses/:id
func (h *ExpenseHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	expenseID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	e, err := h.service.GetByID(ctx, expenseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, e)
}

// Update handles PUT /expenses/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	expenseID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.service.GetByID(ctx, expenseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(e)

	if err := h.service.Update(ctx, e); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, e)
}

// Delete handles DELETE /expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	expenseID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, expenseID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// List handles GET /expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := expense.ListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Search = c.Query("search")
	filter.Category = expense.Category(c.Query("category"))
	filter.FromDate = h.ParseTimeQuery(c, "from")
	filter.ToDate = h.ParseTimeQuery(c, "to")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}
