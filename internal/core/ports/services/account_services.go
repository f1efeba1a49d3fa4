package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// AccountReaderSvc defines read operations of the chart of accounts.
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations of the chart of accounts.
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error)
	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error)
}

// AccountSvcFacade combines all account service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
