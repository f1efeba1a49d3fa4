package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type fiscalPeriodRepository struct {
	BaseRepository
}

var _ portsrepo.FiscalPeriodRepositoryFacade = fiscalPeriodRepository{}

const periodColumns = `period_id, tenant_id, name, fiscal_year, period_number, start_date, end_date, status,
	closed_by, closed_at, locked_by, locked_at, created_at, created_by, last_updated_at, last_updated_by`

func (r fiscalPeriodRepository) queryPeriods(ctx context.Context, query string, args ...any) ([]domain.FiscalPeriod, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "fiscal periods")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FiscalPeriod])
	if err != nil {
		return nil, translateError(err, "fiscal periods")
	}
	return mapping.ToDomainFiscalPeriodSlice(ms), nil
}

func (r fiscalPeriodRepository) queryPeriod(ctx context.Context, what, query string, args ...any) (*domain.FiscalPeriod, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, what)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.FiscalPeriod])
	if err != nil {
		return nil, translateError(err, what)
	}
	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

func (r fiscalPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE tenant_id = $1 AND period_id = $2;`
	return r.queryPeriod(ctx, "fiscal period "+periodID, query, tenantID, periodID)
}

func (r fiscalPeriodRepository) FindPeriodByIDForUpdate(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE tenant_id = $1 AND period_id = $2` +
		r.lockClause("FOR UPDATE") + `;`
	return r.queryPeriod(ctx, "fiscal period "+periodID, query, tenantID, periodID)
}

// FindPeriodCoveringDate share-locks the period inside a transaction, so a concurrent close
// waits for writes dated in the period to commit.
func (r fiscalPeriodRepository) FindPeriodCoveringDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods
		WHERE tenant_id = $1 AND start_date <= $2::date AND end_date >= $2::date
		ORDER BY start_date LIMIT 1` + r.lockClause("FOR SHARE") + `;`
	return r.queryPeriod(ctx, "fiscal period covering "+domain.DateString(date), query, tenantID, domain.DateOf(date))
}

func (r fiscalPeriodRepository) FindOverlappingPeriods(ctx context.Context, tenantID string, start, end time.Time) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods
		WHERE tenant_id = $1 AND start_date <= $3::date AND end_date >= $2::date
		ORDER BY start_date;`
	return r.queryPeriods(ctx, query, tenantID, domain.DateOf(start), domain.DateOf(end))
}

func (r fiscalPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE tenant_id = $1 ORDER BY start_date;`
	return r.queryPeriods(ctx, query, tenantID)
}

func (r fiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.db.Exec(ctx, query,
		m.PeriodID,
		m.TenantID,
		m.Name,
		m.Year,
		m.PeriodNumber,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.ClosedBy,
		m.ClosedAt,
		m.LockedBy,
		m.LockedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return translateError(err, "fiscal period "+period.Name)
}

func (r fiscalPeriodRepository) UpdatePeriodStatus(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	tag, err := r.db.Exec(ctx, `
		UPDATE fiscal_periods
		SET status = $3, closed_by = $4, closed_at = $5, locked_by = $6, locked_at = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE tenant_id = $1 AND period_id = $2;`,
		m.TenantID,
		m.PeriodID,
		m.Status,
		m.ClosedBy,
		m.ClosedAt,
		m.LockedBy,
		m.LockedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "fiscal period "+period.PeriodID)
	}
	return expectRows(tag, 1, "fiscal period "+period.PeriodID)
}
