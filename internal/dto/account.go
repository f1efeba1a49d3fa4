package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string                 `json:"code" binding:"required,max=32"`
	Name            string                 `json:"name" binding:"required,max=255"`
	AccountType     domain.AccountType     `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Category        domain.AccountCategory `json:"category" binding:"omitempty,oneof=CASH BANK RECEIVABLE PAYABLE COGS"`
	ParentAccountID *string                `json:"parentAccountID"`
	Description     string                 `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string                 `json:"name" binding:"omitempty,max=255"`
	Description *string                 `json:"description"`
	AccountType *domain.AccountType     `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Category    *domain.AccountCategory `json:"category" binding:"omitempty,oneof=CASH BANK RECEIVABLE PAYABLE COGS"`
	// ParentAccountID set to an empty string detaches the account from its parent.
	ParentAccountID *string `json:"parentAccountID"`
	IsActive        *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string                 `json:"accountID"`
	TenantID        string                 `json:"tenantID"`
	Code            string                 `json:"code"`
	Name            string                 `json:"name"`
	AccountType     domain.AccountType     `json:"accountType"`
	Category        domain.AccountCategory `json:"category,omitempty"`
	ParentAccountID *string                `json:"parentAccountID,omitempty"`
	Description     string                 `json:"description"`
	IsActive        bool                   `json:"isActive"`
	Balance         decimal.Decimal        `json:"balance"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy   string                 `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		TenantID:        acc.TenantID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		Category:        acc.Category,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		Balance:         acc.Balance,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
