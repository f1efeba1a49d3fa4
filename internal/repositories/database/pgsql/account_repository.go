package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type accountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountRepositoryFacade = accountRepository{}

const accountColumns = `account_id, tenant_id, code, name, account_type, category, parent_account_id, description,
	is_active, created_at, created_by, last_updated_at, last_updated_by, balance`

func (r accountRepository) queryAccounts(ctx context.Context, what, query string, args ...any) ([]models.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, what)
	}
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, translateError(err, what)
	}
	return accounts, nil
}

func (r accountRepository) queryAccount(ctx context.Context, what, query string, args ...any) (*domain.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, what)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, translateError(err, what)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// SaveAccount inserts a new account.
func (r accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.db.Exec(ctx, query,
		m.AccountID,
		m.TenantID,
		m.Code,
		m.Name,
		m.AccountType,
		m.Category,
		m.ParentAccountID,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Balance,
	)
	return translateError(err, "account "+account.Code)
}

// UpdateAccount updates the editable fields. The cached balance is only changed by UpdateAccountBalances.
func (r accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $3, account_type = $4, category = $5, parent_account_id = $6, description = $7,
			is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE tenant_id = $1 AND account_id = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		m.TenantID,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.Category,
		m.ParentAccountID,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "account "+account.AccountID)
	}
	return expectRows(tag, 1, "account "+account.AccountID)
}

func (r accountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`
	return r.queryAccount(ctx, "account "+accountID, query, tenantID, accountID)
}

func (r accountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`
	return r.queryAccount(ctx, "account code "+code, query, tenantID, code)
}

func (r accountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2);`
	ms, err := r.queryAccounts(ctx, "accounts", query, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountMap(ms), nil
}

// FindAccountByIDForUpdate serializes account updates against line inserts holding FOR SHARE.
func (r accountRepository) FindAccountByIDForUpdate(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2` + r.lockClause("FOR UPDATE") + `;`
	return r.queryAccount(ctx, "account "+accountID, query, tenantID, accountID)
}

func (r accountRepository) FindAccountsByIDsForShare(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE tenant_id = $1 AND account_id = ANY($2)
		ORDER BY account_id` + r.lockClause("FOR SHARE") + `;`
	ms, err := r.queryAccounts(ctx, "accounts", query, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountMap(ms), nil
}

// FindAccountsByIDsForUpdate locks the accounts in id order so concurrent posts touching the
// same accounts cannot deadlock.
func (r accountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE tenant_id = $1 AND account_id = ANY($2)
		ORDER BY account_id` + r.lockClause("FOR UPDATE") + `;`
	ms, err := r.queryAccounts(ctx, "accounts", query, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	accounts := mapping.ToDomainAccountMap(ms)
	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, apperrors.NewNotFoundError("account " + id)
		}
	}
	return accounts, nil
}

func (r accountRepository) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 ORDER BY code;`
	ms, err := r.queryAccounts(ctx, "accounts", query, tenantID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func (r accountRepository) AccountHasLines(ctx context.Context, tenantID, accountID string) (bool, error) {
	var used bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM journal_lines WHERE tenant_id = $1 AND account_id = $2);`,
		tenantID, accountID,
	).Scan(&used)
	return used, translateError(err, "account lines")
}

func (r accountRepository) ListTenantIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT tenant_id FROM accounts ORDER BY tenant_id;`)
	if err != nil {
		return nil, translateError(err, "tenants")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return ids, translateError(err, "tenants")
}

// UpdateAccountBalances applies the deltas in one batch, in account id order.
func (r accountRepository) UpdateAccountBalances(ctx context.Context, tenantID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	query := `
		UPDATE accounts
		SET balance = balance + $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND account_id = $2;
	`
	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(query, tenantID, id, balanceChanges[id], now, userID)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for _, id := range ids {
		tag, err := results.Exec()
		if err != nil {
			return translateError(err, "balance of account "+id)
		}
		if err := expectRows(tag, 1, "account "+id); err != nil {
			return err
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to update account balances: %w", err)
	}
	return nil
}
