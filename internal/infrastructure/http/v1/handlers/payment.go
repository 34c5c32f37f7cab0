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

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(base *BaseHandler, service *ledger.Service) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /payments
func (h *PaymentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ApplyPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	payment, err := h.service.ApplyPayment(ctx, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// List handles GET /payments
// Salesmen see only their own collected payments.
func (h *PaymentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := ledger.PaymentListFilter{ListFilter: domain.DefaultListFilter()}
	filter.SalesmanID = c.Query("salesmanId")
	filter.FromDate = h.ParseTimeQuery(c, "from")
	filter.ToDate = h.ParseTimeQuery(c, "to")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")

	if v := c.Query("saleId"); v != "" {
		saleID, err := id.Parse(v)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid sale id"))
			return
		}
		filter.SaleID = &saleID
	}
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

	result, err := h.service.ListPayments(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}
