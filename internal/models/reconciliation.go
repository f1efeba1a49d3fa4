package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckResult is one element of the checks JSONB column of reconciliation_runs.
type CheckResult struct {
	CheckType       string          `json:"checkType"`
	Subledger       string          `json:"subledger"`
	ControlCategory string          `json:"controlCategory"`
	Expected        decimal.Decimal `json:"expected"`
	Actual          decimal.Decimal `json:"actual"`
	Variance        decimal.Decimal `json:"variance"`
	Status          string          `json:"status"`
	Severity        *string         `json:"severity,omitempty"`
	AlertID         *string         `json:"alertID,omitempty"`
}

// ReconciliationRun is a row of the reconciliation_runs table.
type ReconciliationRun struct {
	RunID         string          `db:"run_id"`
	TenantID      string          `db:"tenant_id"`
	Status        string          `db:"status"`
	TotalVariance decimal.Decimal `db:"total_variance"`
	DurationMS    int64           `db:"duration_ms"`
	RunBy         string          `db:"run_by"`
	StartedAt     time.Time       `db:"started_at"`
	CompletedAt   time.Time       `db:"completed_at"`
	Checks        []CheckResult   `db:"checks"`
	ErrorMessage  *string         `db:"error_message"`
}

// Alert is a row of the reconciliation_alerts table.
type Alert struct {
	AlertID         string          `db:"alert_id"`
	TenantID        string          `db:"tenant_id"`
	RunID           string          `db:"run_id"`
	CheckType       string          `db:"check_type"`
	Severity        string          `db:"severity"`
	Expected        decimal.Decimal `db:"expected"`
	Actual          decimal.Decimal `db:"actual"`
	Variance        decimal.Decimal `db:"variance"`
	Message         string          `db:"message"`
	CreatedAt       time.Time       `db:"created_at"`
	ResolvedAt      *time.Time      `db:"resolved_at"`
	ResolvedBy      *string         `db:"resolved_by"`
	ResolutionNotes *string         `db:"resolution_notes"`
}
