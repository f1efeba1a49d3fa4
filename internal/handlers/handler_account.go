package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PATCH("/:account_id", h.updateAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the tenant's chart of accounts
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 409 {object} dto.ErrorResponse "Account code already exists"
// @Failure 422 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, scope.logger, err, "request format")
		return
	}

	logger := scope.logger.With(slog.String("code", req.Code))
	logger.Info("Received request to create account")

	account, err := h.accountService.CreateAccount(c.Request.Context(), scope.tenantID, req, scope.actor)
	if err != nil {
		respondError(c, logger, err, "create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), scope.tenantID, accountID)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("account_id", accountID)), err, "retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the tenant's chart of accounts ordered by code
// @Tags accounts
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), scope.tenantID)
	if err != nil {
		respondError(c, scope.logger, err, "list accounts")
		return
	}

	scope.logger.Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates name, description, category, parent or active flag. The type is fixed once lines reference the account.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   account_id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts/{account_id} [patch]
func (h *accountHandler) updateAccount(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	accountID := c.Param("account_id")
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, scope.logger, err, "request format")
		return
	}

	logger := scope.logger.With(slog.String("account_id", accountID))
	account, err := h.accountService.UpdateAccount(c.Request.Context(), scope.tenantID, accountID, req, scope.actor)
	if err != nil {
		respondError(c, logger, err, "update account")
		return
	}

	logger.Info("Account updated successfully")
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
