package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

type accountRepo struct{ repos }

func (r accountRepo) SaveAccount(ctx context.Context, account domain.Account) error {
	return r.with(ctx, func(st *state) error {
		if _, exists := st.accounts[account.AccountID]; exists {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
		}
		if codeTaken(st, account) {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (r accountRepo) UpdateAccount(ctx context.Context, account domain.Account) error {
	return r.with(ctx, func(st *state) error {
		existing, ok := st.accounts[account.AccountID]
		if !ok || existing.TenantID != account.TenantID {
			return apperrors.NewNotFoundError("account " + account.AccountID)
		}
		if codeTaken(st, account) {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
		account.Balance = existing.Balance
		account.CreatedAt, account.CreatedBy = existing.CreatedAt, existing.CreatedBy
		st.accounts[account.AccountID] = account
		return nil
	})
}

func codeTaken(st *state, account domain.Account) bool {
	for _, a := range st.accounts {
		if a.TenantID == account.TenantID && a.Code == account.Code && a.AccountID != account.AccountID {
			return true
		}
	}
	return false
}

func (r accountRepo) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	var out *domain.Account
	err := r.with(ctx, func(st *state) error {
		a, ok := st.accounts[accountID]
		if !ok || a.TenantID != tenantID {
			return apperrors.NewNotFoundError("account " + accountID)
		}
		out = &a
		return nil
	})
	return out, err
}

func (r accountRepo) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	var out *domain.Account
	err := r.with(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if a.TenantID == tenantID && a.Code == code {
				out = &a
				return nil
			}
		}
		return apperrors.NewNotFoundError("account code " + code)
	})
	return out, err
}

func (r accountRepo) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	err := r.with(ctx, func(st *state) error {
		for _, id := range accountIDs {
			if a, ok := st.accounts[id]; ok && a.TenantID == tenantID {
				out[id] = a
			}
		}
		return nil
	})
	return out, err
}

// Writers hold the store mutex for the whole transaction, so the locking reads are plain reads.
func (r accountRepo) FindAccountByIDForUpdate(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	return r.FindAccountByID(ctx, tenantID, accountID)
}

func (r accountRepo) FindAccountsByIDsForShare(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	return r.FindAccountsByIDs(ctx, tenantID, accountIDs)
}

func (r accountRepo) FindAccountsByIDsForUpdate(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	found, err := r.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		if _, ok := found[id]; !ok {
			return nil, apperrors.NewNotFoundError("account " + id)
		}
	}
	return found, nil
}

func (r accountRepo) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	var out []domain.Account
	err := r.with(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if a.TenantID == tenantID {
				out = append(out, a)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}

func (r accountRepo) AccountHasLines(ctx context.Context, tenantID, accountID string) (bool, error) {
	found := false
	err := r.with(ctx, func(st *state) error {
		for _, e := range st.entries {
			if e.TenantID != tenantID || e.IsDeleted() {
				continue
			}
			for _, l := range e.Lines {
				if l.AccountID == accountID {
					found = true
					return nil
				}
			}
		}
		return nil
	})
	return found, err
}

func (r accountRepo) ListTenantIDs(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	err := r.with(ctx, func(st *state) error {
		for _, a := range st.accounts {
			seen[a.TenantID] = struct{}{}
		}
		return nil
	})
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, err
}

func (r accountRepo) UpdateAccountBalances(ctx context.Context, tenantID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	return r.with(ctx, func(st *state) error {
		for id, delta := range balanceChanges {
			a, ok := st.accounts[id]
			if !ok || a.TenantID != tenantID {
				return apperrors.NewNotFoundError("account " + id)
			}
			a.Balance = a.Balance.Add(delta)
			a.Touch(userID, now)
			st.accounts[id] = a
		}
		return nil
	})
}
