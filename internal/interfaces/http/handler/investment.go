package handler

import (
	"time"

	appinvestment "github.com/retailpos/backend/internal/application/investment"
	"github.com/retailpos/backend/internal/domain/investment"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// InvestmentHandler handles investment read endpoints and the manual
// accrual trigger.
type InvestmentHandler struct {
	BaseHandler
	investmentService *appinvestment.InvestmentService
	accrualService    *appinvestment.AccrualService
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(
	investmentService *appinvestment.InvestmentService,
	accrualService *appinvestment.AccrualService,
) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
		accrualService:    accrualService,
	}
}

// RegisterRoutes registers investment routes
func (h *InvestmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	investments := rg.Group("/investments")
	{
		investments.GET("", h.ListInvestments)
		investments.GET("/:id", h.GetInvestment)
		investments.GET("/:id/returns", h.ListReturns)
		investments.POST("/accrual-runs", h.RunAccrual)
	}
}

// ListInvestmentsRequest extends the common list request with investment filters
type ListInvestmentsRequest struct {
	dto.ListRequest
	Status       string `form:"status" binding:"omitempty,oneof=ACTIVE CLOSED COMPLETED"`
	InvestorName string `form:"investor_name"`
}

// ListInvestments lists investments visible to the actor
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	var req ListInvestmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := investment.InvestmentFilter{Filter: toFilter(req.ListRequest)}
	if req.Status != "" {
		status := investment.InvestmentStatus(req.Status)
		filter.Status = &status
	}
	if req.InvestorName != "" {
		filter.InvestorName = &req.InvestorName
	}

	investments, total, err := h.investmentService.ListInvestments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, investments, total, filter.Page, filter.PageSize)
}

// GetInvestment fetches one investment by ID
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	inv, err := h.investmentService.GetInvestment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// ListReturns lists the returns accrued for one investment
func (h *InvestmentHandler) ListReturns(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	returns, err := h.investmentService.ListReturns(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, returns)
}

// RunAccrualRequest is the request body for a manual accrual run
type RunAccrualRequest struct {
	// PeriodEnd is optional and defaults to the last day of the current month.
	PeriodEnd string `json:"period_end" binding:"omitempty,datetime=2006-01-02"`
}

// RunAccrual triggers a monthly accrual run. Restricted to super admins; the
// run itself is idempotent, so a repeated call is safe.
func (h *InvestmentHandler) RunAccrual(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok || !actor.SuperAdmin {
		h.Forbidden(c, "Accrual runs require super admin access")
		return
	}

	var req RunAccrualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	periodEnd := investment.LastDayOfMonth(time.Now())
	if req.PeriodEnd != "" {
		parsed, err := time.Parse("2006-01-02", req.PeriodEnd)
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		periodEnd = parsed
	}

	result, err := h.accrualService.ProcessMonthlyReturns(c.Request.Context(), periodEnd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
