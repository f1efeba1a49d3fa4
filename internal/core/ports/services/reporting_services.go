package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingService derives the canonical views from posted journal lines.
type ReportingService interface {
	GetTrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalance, error)
	GetProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitAndLoss, error)
	GetCashPosition(ctx context.Context, tenantID string, asOf time.Time) (*domain.CashPosition, error)
	GetARAging(ctx context.Context, tenantID string, asOf time.Time) (*domain.AgingReport, error)
	GetAPAging(ctx context.Context, tenantID string, asOf time.Time) (*domain.AgingReport, error)
	// GetControlBalance sums the normal-signed balance of the tenant's accounts in category.
	// A zero asOf includes every posted line regardless of posting date.
	// It fails with apperrors.ErrNotFound when the tenant has no such account.
	GetControlBalance(ctx context.Context, tenantID string, category domain.AccountCategory, asOf time.Time) (decimal.Decimal, error)
}
