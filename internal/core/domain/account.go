package domain

import (
	"strings"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether debits increase accounts of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// AccountCategory is an optional sub-classification used by the reporting views.
type AccountCategory string

const (
	CategoryNone       AccountCategory = ""
	CategoryCash       AccountCategory = "CASH"
	CategoryBank       AccountCategory = "BANK"
	CategoryReceivable AccountCategory = "RECEIVABLE"
	CategoryPayable    AccountCategory = "PAYABLE"
	CategoryCOGS       AccountCategory = "COGS"
)

// IsValid reports whether c is a known category (empty is allowed).
func (c AccountCategory) IsValid() bool {
	switch c {
	case CategoryNone, CategoryCash, CategoryBank, CategoryReceivable, CategoryPayable, CategoryCOGS:
		return true
	}
	return false
}

// AllowedFor reports whether the category makes sense for the given account type.
func (c AccountCategory) AllowedFor(t AccountType) bool {
	switch c {
	case CategoryCash, CategoryBank, CategoryReceivable:
		return t == Asset
	case CategoryPayable:
		return t == Liability
	case CategoryCOGS:
		return t == Expense
	}
	return true
}

// Account represents a node of a tenant's chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"`
	TenantID        string          `json:"tenantID"`
	Code            string          `json:"code"` // unique per tenant
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	Category        AccountCategory `json:"category,omitempty"`
	ParentAccountID *string         `json:"parentAccountID,omitempty"`
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	AuditFields
	// Balance is cached and signed in the account's normal direction.
	Balance decimal.Decimal `json:"balance"`
}

// Validate checks the static invariants of an account.
func (a Account) Validate() error {
	if strings.TrimSpace(a.Code) == "" {
		return apperrors.NewValidationError("account code is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return apperrors.NewValidationError("account name is required")
	}
	if !a.AccountType.IsValid() {
		return apperrors.NewValidationError("invalid account type %q", a.AccountType)
	}
	if !a.Category.IsValid() {
		return apperrors.NewValidationError("invalid account category %q", a.Category)
	}
	if !a.Category.AllowedFor(a.AccountType) {
		return apperrors.NewValidationError("category %s is not allowed for %s accounts", a.Category, a.AccountType)
	}
	if a.ParentAccountID != nil && *a.ParentAccountID == a.AccountID {
		return apperrors.NewValidationError("account cannot be its own parent")
	}
	return nil
}
