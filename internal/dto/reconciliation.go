package dto

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// ReconcileResponse is returned by a manual reconciliation run.
type ReconcileResponse struct {
	Status string               `json:"status"`
	Checks []domain.CheckResult `json:"checks"`
}

// ListAlertsParams defines query parameters for listing alerts.
type ListAlertsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=open all"`
}

// ResolveAlertRequest resolves an open alert.
type ResolveAlertRequest struct {
	Notes string `json:"notes" binding:"required,max=2000"`
}

// ToReconcileResponse summarizes check results.
func ToReconcileResponse(checks []domain.CheckResult) ReconcileResponse {
	status := domain.RunBalanced
	for _, c := range checks {
		if c.Status == domain.RunMismatch {
			status = domain.RunMismatch
		}
	}
	return ReconcileResponse{Status: string(status), Checks: checks}
}
