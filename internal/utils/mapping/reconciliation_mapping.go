package mapping

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelReconciliationRun converts a domain ReconciliationRun to a model ReconciliationRun
func ToModelReconciliationRun(d domain.ReconciliationRun) models.ReconciliationRun {
	checks := make([]models.CheckResult, len(d.Checks))
	for i, c := range d.Checks {
		checks[i] = models.CheckResult{
			CheckType:       c.CheckType,
			Subledger:       c.Subledger,
			ControlCategory: string(c.ControlCategory),
			Expected:        c.Expected,
			Actual:          c.Actual,
			Variance:        c.Variance,
			Status:          string(c.Status),
			AlertID:         c.AlertID,
		}
		if c.Severity != nil {
			s := string(*c.Severity)
			checks[i].Severity = &s
		}
	}
	return models.ReconciliationRun{
		RunID:         d.RunID,
		TenantID:      d.TenantID,
		Status:        string(d.Status),
		TotalVariance: d.TotalVariance,
		DurationMS:    d.Duration.Milliseconds(),
		RunBy:         d.RunBy,
		StartedAt:     d.StartedAt,
		CompletedAt:   d.CompletedAt,
		Checks:        checks,
		ErrorMessage:  d.ErrorMessage,
	}
}

// ToDomainReconciliationRun converts a model ReconciliationRun to a domain ReconciliationRun
func ToDomainReconciliationRun(m models.ReconciliationRun) domain.ReconciliationRun {
	checks := make([]domain.CheckResult, len(m.Checks))
	for i, c := range m.Checks {
		checks[i] = domain.CheckResult{
			CheckType:       c.CheckType,
			Subledger:       c.Subledger,
			ControlCategory: domain.AccountCategory(c.ControlCategory),
			Expected:        c.Expected,
			Actual:          c.Actual,
			Variance:        c.Variance,
			Status:          domain.RunStatus(c.Status),
			AlertID:         c.AlertID,
		}
		if c.Severity != nil {
			s := domain.Severity(*c.Severity)
			checks[i].Severity = &s
		}
	}
	return domain.ReconciliationRun{
		RunID:         m.RunID,
		TenantID:      m.TenantID,
		Status:        domain.RunStatus(m.Status),
		TotalVariance: m.TotalVariance,
		Duration:      time.Duration(m.DurationMS) * time.Millisecond,
		RunBy:         m.RunBy,
		StartedAt:     m.StartedAt.UTC(),
		CompletedAt:   m.CompletedAt.UTC(),
		Checks:        checks,
		ErrorMessage:  m.ErrorMessage,
	}
}

// ToModelAlert converts a domain Alert to a model Alert
func ToModelAlert(d domain.Alert) models.Alert {
	return models.Alert{
		AlertID:         d.AlertID,
		TenantID:        d.TenantID,
		RunID:           d.RunID,
		CheckType:       d.CheckType,
		Severity:        string(d.Severity),
		Expected:        d.Expected,
		Actual:          d.Actual,
		Variance:        d.Variance,
		Message:         d.Message,
		CreatedAt:       d.CreatedAt,
		ResolvedAt:      d.ResolvedAt,
		ResolvedBy:      d.ResolvedBy,
		ResolutionNotes: d.ResolutionNotes,
	}
}

// ToDomainAlert converts a model Alert to a domain Alert
func ToDomainAlert(m models.Alert) domain.Alert {
	return domain.Alert{
		AlertID:         m.AlertID,
		TenantID:        m.TenantID,
		RunID:           m.RunID,
		CheckType:       m.CheckType,
		Severity:        domain.Severity(m.Severity),
		Expected:        m.Expected,
		Actual:          m.Actual,
		Variance:        m.Variance,
		Message:         m.Message,
		CreatedAt:       m.CreatedAt.UTC(),
		ResolvedAt:      utcPtr(m.ResolvedAt),
		ResolvedBy:      m.ResolvedBy,
		ResolutionNotes: m.ResolutionNotes,
	}
}

// ToDomainAlertSlice converts a slice of model Alerts
func ToDomainAlertSlice(ms []models.Alert) []domain.Alert {
	ds := make([]domain.Alert, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAlert(m)
	}
	return ds
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
