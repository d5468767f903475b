package handler

import (
	apptrade "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TradeHandler handles sale, purchase and installment read endpoints
type TradeHandler struct {
	BaseHandler
	queryService *apptrade.QueryService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(queryService *apptrade.QueryService) *TradeHandler {
	return &TradeHandler{queryService: queryService}
}

// RegisterRoutes registers trade routes
func (h *TradeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.GET("", h.ListSales)
		sales.GET("/:id", h.GetSale)
	}
	purchases := rg.Group("/purchases")
	{
		purchases.GET("", h.ListPurchases)
		purchases.GET("/:id", h.GetPurchase)
	}
	installments := rg.Group("/installments")
	{
		installments.GET("", h.ListInstallments)
		installments.GET("/:id", h.GetInstallment)
	}
}

// ListSales lists sales visible to the actor
func (h *TradeHandler) ListSales(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toFilter(req)
	sales, total, err := h.queryService.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// GetSale fetches one sale by ID
func (h *TradeHandler) GetSale(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	sale, err := h.queryService.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// ListPurchases lists purchases visible to the actor
func (h *TradeHandler) ListPurchases(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toFilter(req)
	purchases, total, err := h.queryService.ListPurchases(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, purchases, total, filter.Page, filter.PageSize)
}

// GetPurchase fetches one purchase by ID
func (h *TradeHandler) GetPurchase(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	purchase, err := h.queryService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// ListInstallmentsRequest extends the common list request with installment filters
type ListInstallmentsRequest struct {
	dto.ListRequest
	SourceType string `form:"source_type" binding:"omitempty,oneof=SALE PURCHASE"`
	SourceID   string `form:"source_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=DUE PAID"`
}

// ListInstallments lists installments visible to the actor
func (h *TradeHandler) ListInstallments(c *gin.Context) {
	var req ListInstallmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := trade.InstallmentFilter{Filter: toFilter(req.ListRequest)}
	if req.SourceType != "" {
		sourceType := trade.InstallmentSourceType(req.SourceType)
		filter.SourceType = &sourceType
	}
	if req.SourceID != "" {
		sourceID := uuid.MustParse(req.SourceID)
		filter.SourceID = &sourceID
	}
	if req.Status != "" {
		status := trade.InstallmentStatus(req.Status)
		filter.Status = &status
	}

	installments, total, err := h.queryService.ListInstallments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, installments, total, filter.Page, filter.PageSize)
}

// GetInstallment fetches one installment by ID
func (h *TradeHandler) GetInstallment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	installment, err := h.queryService.GetInstallment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, installment)
}
