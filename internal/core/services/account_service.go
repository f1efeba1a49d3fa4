package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	store portsrepo.LedgerStore
}

// NewAccountService creates the chart of accounts service.
func NewAccountService(store portsrepo.LedgerStore, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	if err := s.AuthorizeWrite(ctx, tenantID, actor); err != nil {
		return nil, err
	}

	now := s.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        tenantID,
		Code:            strings.TrimSpace(req.Code),
		Name:            strings.TrimSpace(req.Name),
		AccountType:     req.AccountType,
		Category:        req.Category,
		ParentAccountID: nonEmpty(req.ParentAccountID),
		Description:     req.Description,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(actor.UserID, now),
		Balance:         decimal.Zero,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	err := s.store.WithinTx(ctx, func(tx portsrepo.TxRepositories) error {
		accounts := tx.Accounts()
		if _, err := accounts.FindAccountByCode(ctx, tenantID, account.Code); err == nil {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if account.ParentAccountID != nil {
			if _, err := s.findParent(ctx, accounts, tenantID, *account.ParentAccountID); err != nil {
				return err
			}
		}
		return accounts.SaveAccount(ctx, account)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to create account",
				slog.String("tenant_id", tenantID),
				slog.String("code", account.Code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("tenant_id", tenantID),
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	account, err := s.store.Accounts().FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	accounts, err := s.store.Accounts().ListAccounts(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount applies the provided fields. The account type cannot change once lines reference
// the account and a new parent must not create a cycle.
func (s *accountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	if err := s.AuthorizeWrite(ctx, tenantID, actor); err != nil {
		return nil, err
	}

	var updated *domain.Account
	err := s.store.WithinTx(ctx, func(tx portsrepo.TxRepositories) error {
		accounts := tx.Accounts()
		// The row lock makes the type check below wait for drafts adding lines to this account.
		account, err := accounts.FindAccountByIDForUpdate(ctx, tenantID, accountID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			account.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			account.Description = *req.Description
		}
		if req.Category != nil {
			account.Category = *req.Category
		}
		if req.IsActive != nil {
			account.IsActive = *req.IsActive
		}
		if req.AccountType != nil && *req.AccountType != account.AccountType {
			used, err := accounts.AccountHasLines(ctx, tenantID, accountID)
			if err != nil {
				return err
			}
			if used {
				return apperrors.NewValidationError("account type of %s cannot change once journal lines reference it", account.Code)
			}
			account.AccountType = *req.AccountType
		}
		if req.ParentAccountID != nil {
			account.ParentAccountID = nonEmpty(req.ParentAccountID)
			if account.ParentAccountID != nil {
				if err := s.checkAcyclic(ctx, accounts, tenantID, accountID, *account.ParentAccountID); err != nil {
					return err
				}
			}
		}

		if err := account.Validate(); err != nil {
			return err
		}
		account.Touch(actor.UserID, s.Now())
		if err := accounts.UpdateAccount(ctx, *account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return updated, nil
}

func (s *accountService) findParent(ctx context.Context, accounts portsrepo.AccountReader, tenantID, parentID string) (*domain.Account, error) {
	parent, err := accounts.FindAccountByID(ctx, tenantID, parentID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewValidationError("parent account %s not found", parentID)
	}
	return parent, err
}

// checkAcyclic walks the ancestors of parentID and fails when accountID is one of them.
func (s *accountService) checkAcyclic(ctx context.Context, accounts portsrepo.AccountReader, tenantID, accountID, parentID string) error {
	visited := map[string]struct{}{}
	for current := parentID; ; {
		if current == accountID {
			return apperrors.NewValidationError("parent %s would create a cycle", parentID)
		}
		if _, seen := visited[current]; seen {
			return apperrors.NewValidationError("account hierarchy of %s already contains a cycle", parentID)
		}
		visited[current] = struct{}{}

		parent, err := s.findParent(ctx, accounts, tenantID, current)
		if err != nil {
			return err
		}
		if parent.ParentAccountID == nil {
			return nil
		}
		current = *parent.ParentAccountID
	}
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
