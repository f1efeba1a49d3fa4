package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account of a tenant.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its tenant-unique code.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing ids are absent from the map.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts lists the chart of accounts of a tenant ordered by code.
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)

	// AccountHasLines reports whether any journal line references the account.
	AccountHasLines(ctx context.Context, tenantID, accountID string) (bool, error)

	// ListTenantIDs returns every tenant that owns at least one account.
	ListTenantIDs(ctx context.Context) ([]string, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Duplicate codes fail with apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details (not its balance).
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations used by the posting engine inside a transaction.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate loads and exclusively locks an account.
	FindAccountByIDForUpdate(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountsByIDsForShare selects accounts with a shared lock in id order, blocking
	// concurrent account updates until the transaction ends. Missing ids are absent from the map.
	FindAccountsByIDsForShare(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByIDsForUpdate selects accounts and locks them in id order.
	FindAccountsByIDsForUpdate(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalances applies signed deltas to cached balances.
	UpdateAccountBalances(ctx context.Context, tenantID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
