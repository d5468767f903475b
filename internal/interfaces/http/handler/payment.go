package handler

import (
	"time"

	appfinance "github.com/retailpos/backend/internal/application/finance"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles installment payment endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *appfinance.PaymentApplicationService
	accountService *appfinance.AccountService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(
	paymentService *appfinance.PaymentApplicationService,
	accountService *appfinance.AccountService,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		accountService: accountService,
	}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("/sale-installments", h.ApplySaleInstallment)
		payments.POST("/purchase-installments", h.ApplyPurchaseInstallment)
		payments.GET("", h.ListPayments)
		payments.GET("/:id", h.GetPayment)
	}
}

// ApplyInstallmentPaymentRequest is the request body for applying a payment
// to an installment.
type ApplyInstallmentPaymentRequest struct {
	InstallmentID string `json:"installment_id" binding:"required,uuid"`
	AccountID     string `json:"account_id" binding:"required,uuid"`
	Amount        string `json:"amount" binding:"required,decimal_positive"`
	// PaymentDate is optional and defaults to today (RFC 3339 date).
	PaymentDate string `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r *ApplyInstallmentPaymentRequest) toServiceRequest() (appfinance.ApplyInstallmentRequest, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return appfinance.ApplyInstallmentRequest{}, err
	}

	paymentDate := time.Now()
	if r.PaymentDate != "" {
		paymentDate, err = time.Parse("2006-01-02", r.PaymentDate)
		if err != nil {
			return appfinance.ApplyInstallmentRequest{}, err
		}
	}

	return appfinance.ApplyInstallmentRequest{
		InstallmentID: uuid.MustParse(r.InstallmentID),
		AccountID:     uuid.MustParse(r.AccountID),
		Amount:        amount,
		PaymentDate:   paymentDate,
	}, nil
}

// ApplySaleInstallment applies a payment to a sale installment
func (h *PaymentHandler) ApplySaleInstallment(c *gin.Context) {
	var req ApplyInstallmentPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	serviceReq, err := req.toServiceRequest()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.ApplySaleInstallment(c.Request.Context(), serviceReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ApplyPurchaseInstallment applies a payment to a purchase installment
func (h *PaymentHandler) ApplyPurchaseInstallment(c *gin.Context) {
	var req ApplyInstallmentPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	serviceReq, err := req.toServiceRequest()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.ApplyPurchaseInstallment(c.Request.Context(), serviceReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListPaymentsRequest extends the common list request with payment filters
type ListPaymentsRequest struct {
	dto.ListRequest
	AccountID string `form:"account_id" binding:"omitempty,uuid"`
	SourceID  string `form:"source_id" binding:"omitempty,uuid"`
}

// ListPayments lists payments visible to the actor
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var req ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := finance.PaymentFilter{Filter: toFilter(req.ListRequest)}
	if req.AccountID != "" {
		accountID := uuid.MustParse(req.AccountID)
		filter.AccountID = &accountID
	}
	if req.SourceID != "" {
		sourceID := uuid.MustParse(req.SourceID)
		filter.SourceID = &sourceID
	}

	payments, total, err := h.accountService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// GetPayment fetches one payment by ID
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	payment, err := h.accountService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}
