package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/SscSPs/ledger_core/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type journalRepository struct {
	BaseRepository
}

var _ portsrepo.JournalRepositoryFacade = journalRepository{}

const entryColumns = `entry_id, tenant_id, entry_number, entry_date, posting_date, description, reference_type,
	reference_id, is_posted, posted_by, posted_at, is_reversed, reversal_of, reversed_by, deleted_at,
	created_at, created_by, last_updated_at, last_updated_by`

var lineColumns = []string{
	"line_id", "entry_id", "tenant_id", "account_id", "line_number", "debit", "credit", "currency_code",
	"exchange_rate", "base_amount", "memo", "created_at", "created_by", "last_updated_at", "last_updated_by",
}

const lineSelect = `SELECT line_id, entry_id, tenant_id, account_id, line_number, debit, credit, currency_code,
	exchange_rate, base_amount, memo, created_at, created_by, last_updated_at, last_updated_by
	FROM journal_lines`

func (r journalRepository) findEntry(ctx context.Context, tenantID, entryID, lock string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries
		WHERE tenant_id = $1 AND entry_id = $2 AND deleted_at IS NULL` + r.lockClause(lock) + `;`
	rows, err := r.db.Query(ctx, query, tenantID, entryID)
	if err != nil {
		return nil, translateError(err, "journal entry "+entryID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, translateError(err, "journal entry "+entryID)
	}
	entry := mapping.ToDomainJournalEntry(m)

	lines, err := r.db.Query(ctx, lineSelect+` WHERE tenant_id = $1 AND entry_id = $2 ORDER BY line_number;`, tenantID, entryID)
	if err != nil {
		return nil, translateError(err, "journal lines of "+entryID)
	}
	ms, err := pgx.CollectRows(lines, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, translateError(err, "journal lines of "+entryID)
	}
	entry.Lines = mapping.ToDomainJournalLineSlice(ms)
	return &entry, nil
}

func (r journalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, tenantID, entryID, "")
}

func (r journalRepository) FindEntryByIDForUpdate(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, tenantID, entryID, "FOR UPDATE")
}

// ListEntries pages entries by (posting_date, created_at, entry_id) descending. Lines are not loaded.
func (r journalRepository) ListEntries(ctx context.Context, tenantID string, filter portsrepo.EntryListFilter) ([]domain.JournalEntry, *string, error) {
	limit := pagination.NormalizeLimit(filter.Limit)
	var args queryArgs
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = ` + args.add(tenantID) + ` AND deleted_at IS NULL`

	if filter.Posted != nil {
		query += ` AND is_posted = ` + args.add(*filter.Posted)
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		query += ` AND (posting_date, created_at, entry_id) < (` +
			args.add(cursor.PostingDate) + `::date, ` + args.add(cursor.CreatedAt) + `, ` + args.add(cursor.EntryID) + `)`
	}
	query += ` ORDER BY posting_date DESC, created_at DESC, entry_id DESC LIMIT ` + args.add(limit+1) + `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "journal entries")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, nil, translateError(err, "journal entries")
	}
	entries := mapping.ToDomainJournalEntrySlice(ms)

	if len(entries) <= limit {
		return entries, nil, nil
	}
	page := entries[:limit]
	last := page[limit-1]
	token := pagination.EncodeToken(pagination.Cursor{PostingDate: last.PostingDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
	return page, &token, nil
}

func (r journalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.db.Exec(ctx, query,
		m.EntryID,
		m.TenantID,
		m.EntryNumber,
		m.EntryDate,
		m.PostingDate,
		m.Description,
		m.ReferenceType,
		m.ReferenceID,
		m.IsPosted,
		m.PostedBy,
		m.PostedAt,
		m.IsReversed,
		m.ReversalOf,
		m.ReversedBy,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return translateError(err, "journal entry "+entry.EntryID)
}

// UpdateEntryHeader only touches drafts.
func (r journalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $3, posting_date = $4, description = $5, reference_type = $6, reference_id = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE tenant_id = $1 AND entry_id = $2 AND is_posted = FALSE AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		m.TenantID,
		m.EntryID,
		m.EntryDate,
		m.PostingDate,
		m.Description,
		m.ReferenceType,
		m.ReferenceID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "journal entry "+entry.EntryID)
	}
	return expectRows(tag, 1, "draft journal entry "+entry.EntryID)
}

// InsertLines bulk loads lines with COPY.
func (r journalRepository) InsertLines(ctx context.Context, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	_, err := r.db.CopyFrom(ctx, pgx.Identifier{"journal_lines"}, lineColumns,
		pgx.CopyFromSlice(len(lines), func(i int) ([]any, error) {
			m := mapping.ToModelJournalLine(lines[i])
			return []any{
				m.LineID, m.EntryID, m.TenantID, m.AccountID, m.LineNumber, m.Debit, m.Credit, m.CurrencyCode,
				m.ExchangeRate, m.BaseAmount, m.Memo, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
			}, nil
		}))
	return translateError(err, "journal lines of "+lines[0].EntryID)
}

// DeleteLines removes every listed line or fails with ErrNotFound.
func (r journalRepository) DeleteLines(ctx context.Context, tenantID, entryID string, lineIDs []string) error {
	if len(lineIDs) == 0 {
		return nil
	}
	tag, err := r.db.Exec(ctx,
		`DELETE FROM journal_lines WHERE tenant_id = $1 AND entry_id = $2 AND line_id = ANY($3);`,
		tenantID, entryID, lineIDs)
	if err != nil {
		return translateError(err, "journal lines of "+entryID)
	}
	return expectRows(tag, int64(len(lineIDs)), "journal line of entry "+entryID)
}

func (r journalRepository) SoftDeleteEntry(ctx context.Context, tenantID, entryID, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE journal_entries SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND entry_id = $2 AND is_posted = FALSE AND deleted_at IS NULL;`,
		tenantID, entryID, now, userID)
	if err != nil {
		return translateError(err, "journal entry "+entryID)
	}
	return expectRows(tag, 1, "draft journal entry "+entryID)
}

// NextEntrySequence increments the per-tenant, per-year counter atomically. The counter row
// stays locked until the transaction ends.
func (r journalRepository) NextEntrySequence(ctx context.Context, tenantID string, year int) (int64, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO entry_sequences (tenant_id, fiscal_year, last_value) VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, fiscal_year) DO UPDATE SET last_value = entry_sequences.last_value + 1
		RETURNING last_value;`,
		tenantID, year).Scan(&seq)
	return seq, translateError(err, "entry sequence")
}

func (r journalRepository) MarkPosted(ctx context.Context, tenantID, entryID, entryNumber, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE journal_entries
		SET entry_number = $3, is_posted = TRUE, posted_by = $4, posted_at = $5, last_updated_at = $5, last_updated_by = $4
		WHERE tenant_id = $1 AND entry_id = $2 AND is_posted = FALSE;`,
		tenantID, entryID, entryNumber, userID, now)
	if err != nil {
		return translateError(err, "entry number "+entryNumber)
	}
	return expectRows(tag, 1, "draft journal entry "+entryID)
}

func (r journalRepository) MarkReversed(ctx context.Context, tenantID, entryID, reversalID, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE journal_entries
		SET is_reversed = TRUE, reversed_by = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND entry_id = $2 AND is_posted = TRUE AND is_reversed = FALSE;`,
		tenantID, entryID, reversalID, now, userID)
	if err != nil {
		return translateError(err, "journal entry "+entryID)
	}
	return expectRows(tag, 1, "posted journal entry "+entryID)
}
