package handler

import (
	appfinance "github.com/retailpos/backend/internal/application/finance"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles account read endpoints
type AccountHandler struct {
	BaseHandler
	accountService *appfinance.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *appfinance.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// RegisterRoutes registers account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.GET("/:id/balance", h.GetAccountBalance)
	}
}

// ListAccounts lists accounts visible to the actor
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// GetAccount fetches one account by ID
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// GetAccountBalance fetches an account balance verified against its ledger
func (h *AccountHandler) GetAccountBalance(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	balance, err := h.accountService.GetAccountBalance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}
