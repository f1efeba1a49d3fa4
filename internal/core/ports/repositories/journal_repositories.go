package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// EntryListFilter narrows ListEntries.
type EntryListFilter struct {
	Posted    *bool
	Limit     int
	NextToken *string
}

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntryByID loads a non-deleted entry of the tenant with its lines.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListEntries returns a page of non-deleted entries and the token of the next page.
	ListEntries(ctx context.Context, tenantID string, filter EntryListFilter) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// FindEntryByIDForUpdate loads an entry and locks its header row.
	FindEntryByIDForUpdate(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// SaveEntry inserts the entry header.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryHeader persists dates, description and reference of a draft.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error

	// InsertLines appends lines to an entry.
	InsertLines(ctx context.Context, lines []domain.JournalLine) error

	// DeleteLines removes lines of a draft.
	DeleteLines(ctx context.Context, tenantID, entryID string, lineIDs []string) error

	// SoftDeleteEntry marks a draft deleted.
	SoftDeleteEntry(ctx context.Context, tenantID, entryID, userID string, now time.Time) error

	// NextEntrySequence allocates the next sequence value for the tenant and year.
	NextEntrySequence(ctx context.Context, tenantID string, year int) (int64, error)

	// MarkPosted sets the entry number and posted fields. A number collision fails with
	// apperrors.ErrDuplicateNumber.
	MarkPosted(ctx context.Context, tenantID, entryID, entryNumber, userID string, now time.Time) error

	// MarkReversed links a posted entry to its reversal.
	MarkReversed(ctx context.Context, tenantID, entryID, reversalID, userID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
