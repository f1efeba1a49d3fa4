package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationReader defines read operations for runs and alerts.
type ReconciliationReader interface {
	// FindLatestRun returns the most recent run or apperrors.ErrNotFound.
	FindLatestRun(ctx context.Context, tenantID string) (*domain.ReconciliationRun, error)
	FindAlertByID(ctx context.Context, tenantID, alertID string) (*domain.Alert, error)
	ListAlerts(ctx context.Context, tenantID string, openOnly bool) ([]domain.Alert, error)
	CountOpenAlerts(ctx context.Context, tenantID string) (int, error)
}

// ReconciliationWriter defines write operations for runs and alerts. Alerts are append-only.
type ReconciliationWriter interface {
	SaveRun(ctx context.Context, run domain.ReconciliationRun) error
	SaveAlerts(ctx context.Context, alerts []domain.Alert) error

	// ResolveAlert sets the resolution fields of an open alert. An already resolved alert
	// fails with apperrors.ErrConflict.
	ResolveAlert(ctx context.Context, tenantID, alertID, userID, notes string, now time.Time) error
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}

// SubledgerSource supplies the open balances of the subledgers owned by collaborators.
type SubledgerSource interface {
	OpenReceivablesTotal(ctx context.Context, tenantID string) (decimal.Decimal, error)
	OpenPayablesTotal(ctx context.Context, tenantID string) (decimal.Decimal, error)
}
