package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type reportingRepository struct {
	BaseRepository
}

var _ portsrepo.ReportingRepository = reportingRepository{}

// ListPostedLines reads posted lines that are neither reversed nor reversals, joined with
// their entry and account.
func (r reportingRepository) ListPostedLines(ctx context.Context, tenantID string, filter domain.LedgerLineFilter) ([]domain.LedgerLine, error) {
	var args queryArgs
	query := `
		SELECT e.entry_id, e.entry_number, e.posting_date, l.line_id, l.account_id,
			a.code AS account_code, a.name AS account_name, a.account_type, a.category, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.tenant_id = l.tenant_id AND e.entry_id = l.entry_id
		JOIN accounts a ON a.tenant_id = l.tenant_id AND a.account_id = l.account_id
		WHERE l.tenant_id = ` + args.add(tenantID) + `
			AND e.is_posted AND e.deleted_at IS NULL
			AND NOT e.is_reversed AND e.reversal_of IS NULL`

	if filter.From != nil {
		query += ` AND e.posting_date >= ` + args.add(domain.DateOf(*filter.From)) + `::date`
	}
	if filter.To != nil {
		query += ` AND e.posting_date <= ` + args.add(domain.DateOf(*filter.To)) + `::date`
	}
	if len(filter.AccountTypes) > 0 {
		types := make([]string, len(filter.AccountTypes))
		for i, t := range filter.AccountTypes {
			types[i] = string(t)
		}
		query += ` AND a.account_type = ANY(` + args.add(types) + `)`
	}
	if len(filter.Categories) > 0 {
		categories := make([]string, len(filter.Categories))
		for i, c := range filter.Categories {
			categories[i] = string(c)
		}
		query += ` AND a.category = ANY(` + args.add(categories) + `)`
	}
	if len(filter.AccountIDs) > 0 {
		query += ` AND l.account_id = ANY(` + args.add(filter.AccountIDs) + `)`
	}
	query += ` ORDER BY e.posting_date, e.entry_number, l.line_id;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "posted lines")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerLine])
	if err != nil {
		return nil, translateError(err, "posted lines")
	}
	lines := make([]domain.LedgerLine, len(ms))
	for i, m := range ms {
		lines[i] = mapping.ToDomainLedgerLine(m)
	}
	return lines, nil
}
