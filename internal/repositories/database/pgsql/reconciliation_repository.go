package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type reconciliationRepository struct {
	BaseRepository
}

var _ portsrepo.ReconciliationRepositoryFacade = reconciliationRepository{}

const runColumns = `run_id, tenant_id, status, total_variance, duration_ms, run_by, started_at, completed_at,
	checks, error_message`

const alertColumns = `alert_id, tenant_id, run_id, check_type, severity, expected, actual, variance, message,
	created_at, resolved_at, resolved_by, resolution_notes`

func (r reconciliationRepository) SaveRun(ctx context.Context, run domain.ReconciliationRun) error {
	m := mapping.ToModelReconciliationRun(run)
	_, err := r.db.Exec(ctx, `
		INSERT INTO reconciliation_runs (`+runColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.RunID,
		m.TenantID,
		m.Status,
		m.TotalVariance,
		m.DurationMS,
		m.RunBy,
		m.StartedAt,
		m.CompletedAt,
		m.Checks,
		m.ErrorMessage,
	)
	return translateError(err, "reconciliation run "+run.RunID)
}

func (r reconciliationRepository) SaveAlerts(ctx context.Context, alerts []domain.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, a := range alerts {
		m := mapping.ToModelAlert(a)
		batch.Queue(`INSERT INTO reconciliation_alerts (`+alertColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
			m.AlertID, m.TenantID, m.RunID, m.CheckType, m.Severity, m.Expected, m.Actual, m.Variance,
			m.Message, m.CreatedAt, m.ResolvedAt, m.ResolvedBy, m.ResolutionNotes)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return translateError(err, "reconciliation alerts")
	}
	return nil
}

func (r reconciliationRepository) FindLatestRun(ctx context.Context, tenantID string) (*domain.ReconciliationRun, error) {
	rows, err := r.db.Query(ctx, `SELECT `+runColumns+` FROM reconciliation_runs
		WHERE tenant_id = $1 ORDER BY completed_at DESC, started_at DESC LIMIT 1;`, tenantID)
	if err != nil {
		return nil, translateError(err, "reconciliation run")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ReconciliationRun])
	if err != nil {
		return nil, translateError(err, "reconciliation run for tenant "+tenantID)
	}
	run := mapping.ToDomainReconciliationRun(m)
	return &run, nil
}

func (r reconciliationRepository) FindAlertByID(ctx context.Context, tenantID, alertID string) (*domain.Alert, error) {
	rows, err := r.db.Query(ctx, `SELECT `+alertColumns+` FROM reconciliation_alerts
		WHERE tenant_id = $1 AND alert_id = $2;`, tenantID, alertID)
	if err != nil {
		return nil, translateError(err, "alert "+alertID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Alert])
	if err != nil {
		return nil, translateError(err, "alert "+alertID)
	}
	alert := mapping.ToDomainAlert(m)
	return &alert, nil
}

func (r reconciliationRepository) ListAlerts(ctx context.Context, tenantID string, openOnly bool) ([]domain.Alert, error) {
	rows, err := r.db.Query(ctx, `SELECT `+alertColumns+` FROM reconciliation_alerts
		WHERE tenant_id = $1 AND (NOT $2 OR resolved_at IS NULL)
		ORDER BY created_at DESC, alert_id;`, tenantID, openOnly)
	if err != nil {
		return nil, translateError(err, "alerts")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Alert])
	if err != nil {
		return nil, translateError(err, "alerts")
	}
	return mapping.ToDomainAlertSlice(ms), nil
}

func (r reconciliationRepository) CountOpenAlerts(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reconciliation_alerts WHERE tenant_id = $1 AND resolved_at IS NULL;`,
		tenantID).Scan(&n)
	return n, translateError(err, "open alerts")
}

// ResolveAlert sets the resolution once; the WHERE clause makes a second resolution a no-op
// that is reported as ErrConflict.
func (r reconciliationRepository) ResolveAlert(ctx context.Context, tenantID, alertID, userID, notes string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reconciliation_alerts SET resolved_at = $3, resolved_by = $4, resolution_notes = $5
		WHERE tenant_id = $1 AND alert_id = $2 AND resolved_at IS NULL;`,
		tenantID, alertID, now, userID, notes)
	if err != nil {
		return translateError(err, "alert "+alertID)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.FindAlertByID(ctx, tenantID, alertID); err != nil {
		return err
	}
	return fmt.Errorf("%w: alert %s is already resolved", apperrors.ErrConflict, alertID)
}
