package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Severity ranks a reconciliation variance.
type Severity string

const (
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// RunStatus is the outcome of a reconciliation run.
type RunStatus string

const (
	RunBalanced RunStatus = "balanced"
	RunMismatch RunStatus = "mismatch"
	RunFailed   RunStatus = "failed"
)

// CheckResult is the outcome of comparing one subledger with its control account.
type CheckResult struct {
	CheckType       string          `json:"checkType"`
	Subledger       string          `json:"subledger"`
	ControlCategory AccountCategory `json:"controlCategory"`
	Expected        decimal.Decimal `json:"expected"` // subledger total
	Actual          decimal.Decimal `json:"actual"`   // control account balance
	Variance        decimal.Decimal `json:"variance"` // expected - actual
	Status          RunStatus       `json:"status"`
	Severity        *Severity       `json:"severity,omitempty"`
	AlertID         *string         `json:"alertID,omitempty"`
}

// ReconciliationRun records one execution of the reconciliation engine.
type ReconciliationRun struct {
	RunID         string          `json:"runID"`
	TenantID      string          `json:"tenantID"`
	Status        RunStatus       `json:"status"`
	TotalVariance decimal.Decimal `json:"totalVariance"`
	Duration      time.Duration   `json:"duration"`
	RunBy         string          `json:"runBy"`
	StartedAt     time.Time       `json:"startedAt"`
	CompletedAt   time.Time       `json:"completedAt"`
	Checks        []CheckResult   `json:"checks"`
	ErrorMessage  *string         `json:"errorMessage,omitempty"`
}

// Alert is an append-only record of a variance. Only the resolution fields are ever set after creation.
type Alert struct {
	AlertID         string          `json:"alertID"`
	TenantID        string          `json:"tenantID"`
	RunID           string          `json:"runID"`
	CheckType       string          `json:"checkType"`
	Severity        Severity        `json:"severity"`
	Expected        decimal.Decimal `json:"expected"`
	Actual          decimal.Decimal `json:"actual"`
	Variance        decimal.Decimal `json:"variance"`
	Message         string          `json:"message"`
	CreatedAt       time.Time       `json:"createdAt"`
	ResolvedAt      *time.Time      `json:"resolvedAt,omitempty"`
	ResolvedBy      *string         `json:"resolvedBy,omitempty"`
	ResolutionNotes *string         `json:"resolutionNotes,omitempty"`
}

// IsResolved reports whether the alert has been resolved.
func (a Alert) IsResolved() bool {
	return a.ResolvedAt != nil
}

// ReconciliationSummary is the latest status of a tenant.
type ReconciliationSummary struct {
	TenantID   string             `json:"tenantID"`
	Status     string             `json:"status"` // run status or "never_run"
	LatestRun  *ReconciliationRun `json:"latestRun,omitempty"`
	OpenAlerts int                `json:"openAlerts"`
}
