package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

type reconciliationRepo struct{ repos }

func (r reconciliationRepo) SaveRun(ctx context.Context, run domain.ReconciliationRun) error {
	return r.with(ctx, func(st *state) error {
		st.runs = append(st.runs, run)
		return nil
	})
}

func (r reconciliationRepo) SaveAlerts(ctx context.Context, alerts []domain.Alert) error {
	return r.with(ctx, func(st *state) error {
		st.alerts = append(st.alerts, alerts...)
		return nil
	})
}

func (r reconciliationRepo) FindLatestRun(ctx context.Context, tenantID string) (*domain.ReconciliationRun, error) {
	var out *domain.ReconciliationRun
	err := r.with(ctx, func(st *state) error {
		for i := len(st.runs) - 1; i >= 0; i-- {
			if st.runs[i].TenantID == tenantID {
				run := st.runs[i]
				out = &run
				return nil
			}
		}
		return apperrors.NewNotFoundError("reconciliation run for tenant " + tenantID)
	})
	return out, err
}

func (r reconciliationRepo) FindAlertByID(ctx context.Context, tenantID, alertID string) (*domain.Alert, error) {
	var out *domain.Alert
	err := r.with(ctx, func(st *state) error {
		for _, a := range st.alerts {
			if a.AlertID == alertID && a.TenantID == tenantID {
				out = &a
				return nil
			}
		}
		return apperrors.NewNotFoundError("alert " + alertID)
	})
	return out, err
}

// ListAlerts returns alerts newest first.
func (r reconciliationRepo) ListAlerts(ctx context.Context, tenantID string, openOnly bool) ([]domain.Alert, error) {
	var out []domain.Alert
	err := r.with(ctx, func(st *state) error {
		for i := len(st.alerts) - 1; i >= 0; i-- {
			a := st.alerts[i]
			if a.TenantID != tenantID || (openOnly && a.IsResolved()) {
				continue
			}
			out = append(out, a)
		}
		return nil
	})
	return out, err
}

func (r reconciliationRepo) CountOpenAlerts(ctx context.Context, tenantID string) (int, error) {
	alerts, err := r.ListAlerts(ctx, tenantID, true)
	return len(alerts), err
}

func (r reconciliationRepo) ResolveAlert(ctx context.Context, tenantID, alertID, userID, notes string, now time.Time) error {
	return r.with(ctx, func(st *state) error {
		for i, a := range st.alerts {
			if a.AlertID != alertID || a.TenantID != tenantID {
				continue
			}
			if a.IsResolved() {
				return fmt.Errorf("%w: alert %s is already resolved", apperrors.ErrConflict, alertID)
			}
			by, n, at := userID, notes, now
			a.ResolvedAt, a.ResolvedBy, a.ResolutionNotes = &at, &by, &n
			st.alerts[i] = a
			return nil
		}
		return apperrors.NewNotFoundError("alert " + alertID)
	})
}
