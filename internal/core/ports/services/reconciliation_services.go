package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// Reconciler runs the subledger checks of a tenant.
type Reconciler interface {
	Reconcile(ctx context.Context, tenantID string, actor domain.Actor) ([]domain.CheckResult, error)
}

// ReconciliationSvcFacade combines reconciliation runs and alert management.
type ReconciliationSvcFacade interface {
	Reconciler
	GetLatestReconciliationStatus(ctx context.Context, tenantID string) (*domain.ReconciliationSummary, error)
	ListAlerts(ctx context.Context, tenantID string, openOnly bool) ([]domain.Alert, error)
	ResolveAlert(ctx context.Context, tenantID, alertID, notes string, actor domain.Actor) (*domain.Alert, error)
}
