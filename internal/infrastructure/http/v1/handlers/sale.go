package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"karobar/internal/core/apperror"
	appctx "karobar/internal/core/context"
	"karobar/internal/core/id"
	"karobar/internal/domain"
	"karobar/internal/domain/ledger"
	"karobar/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles HTTP requests for sale documents.
type SaleHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *ledger.Service) *SaleHandler {
	return &SaleHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /sales
func (h *SaleHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	user := h.CurrentUser(c)
	if user == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput(user.UserID)
	if err != nil {
		h.Error(c, err)
		return
	}

	sale, err := h.service.CreateSale(ctx, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// Get handles GET /sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	saleID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	sale, err := h.service.GetSale(ctx, saleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, sale)
}

// List handles GET /sales
// Salesmen see only their own sales; other roles see everything.
func (h *SaleHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := ledger.SaleListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Search = c.Query("search")
	filter.SalesmanID = c.Query("salesmanId")
	filter.WithDue = c.Query("withDue") == "true"
	filter.FromDate = h.ParseTimeQuery(c, "from")
	filter.ToDate = h.ParseTimeQuery(c, "to")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")

	if v := c.Query("customerId"); v != "" {
		customerID, err := id.Parse(v)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customer id"))
			return
		}
		filter.CustomerID = &customerID
	}

	if user := h.CurrentUser(c); user != nil && user.Role == appctx.RoleSalesman {
		filter.SalesmanID = user.UserID
	}

	result, err := h.service.ListSales(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}
