package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/utils/numbering"
	"github.com/SscSPs/ledger_core/internal/utils/pagination"
)

type journalRepo struct{ repos }

func entryOf(st *state, tenantID, entryID string) (domain.JournalEntry, error) {
	e, ok := st.entries[entryID]
	if !ok || e.TenantID != tenantID || e.IsDeleted() {
		return domain.JournalEntry{}, apperrors.NewNotFoundError("journal entry " + entryID)
	}
	return e, nil
}

func detached(e domain.JournalEntry) *domain.JournalEntry {
	e.Lines = slices.Clone(e.Lines)
	sort.Slice(e.Lines, func(i, j int) bool { return e.Lines[i].LineNumber < e.Lines[j].LineNumber })
	return &e
}

func (r journalRepo) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	var out *domain.JournalEntry
	err := r.with(ctx, func(st *state) error {
		e, err := entryOf(st, tenantID, entryID)
		if err != nil {
			return err
		}
		out = detached(e)
		return nil
	})
	return out, err
}

// FindEntryByIDForUpdate needs no extra locking: writers already hold the store mutex.
func (r journalRepo) FindEntryByIDForUpdate(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return r.FindEntryByID(ctx, tenantID, entryID)
}

func (r journalRepo) ListEntries(ctx context.Context, tenantID string, filter portsrepo.EntryListFilter) ([]domain.JournalEntry, *string, error) {
	var cursor *pagination.Cursor
	if filter.NextToken != nil && *filter.NextToken != "" {
		c, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		cursor = &c
	}
	limit := pagination.NormalizeLimit(filter.Limit)

	var all []domain.JournalEntry
	err := r.with(ctx, func(st *state) error {
		for _, e := range st.entries {
			if e.TenantID != tenantID || e.IsDeleted() {
				continue
			}
			if filter.Posted != nil && e.IsPosted != *filter.Posted {
				continue
			}
			if cursor != nil && !cursor.After(e.PostingDate, e.CreatedAt, e.EntryID) {
				continue
			}
			all = append(all, *detached(e))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if !a.PostingDate.Equal(b.PostingDate) {
			return a.PostingDate.After(b.PostingDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.EntryID > b.EntryID
	})

	if len(all) <= limit {
		return all, nil, nil
	}
	page := all[:limit]
	last := page[limit-1]
	token := pagination.EncodeToken(pagination.Cursor{PostingDate: last.PostingDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
	return page, &token, nil
}

func (r journalRepo) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.with(ctx, func(st *state) error {
		if _, exists := st.entries[entry.EntryID]; exists {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, entry.EntryID)
		}
		entry.Lines = nil
		st.entries[entry.EntryID] = entry
		return nil
	})
}

func (r journalRepo) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	return r.with(ctx, func(st *state) error {
		e, err := entryOf(st, entry.TenantID, entry.EntryID)
		if err != nil {
			return err
		}
		e.EntryDate = entry.EntryDate
		e.PostingDate = entry.PostingDate
		e.Description = entry.Description
		e.Reference = entry.Reference
		e.LastUpdatedAt = entry.LastUpdatedAt
		e.LastUpdatedBy = entry.LastUpdatedBy
		st.entries[e.EntryID] = e
		return nil
	})
}

func (r journalRepo) InsertLines(ctx context.Context, lines []domain.JournalLine) error {
	return r.with(ctx, func(st *state) error {
		for _, l := range lines {
			e, err := entryOf(st, l.TenantID, l.EntryID)
			if err != nil {
				return err
			}
			e.Lines = append(e.Lines, l)
			st.entries[e.EntryID] = e
		}
		return nil
	})
}

func (r journalRepo) DeleteLines(ctx context.Context, tenantID, entryID string, lineIDs []string) error {
	return r.with(ctx, func(st *state) error {
		e, err := entryOf(st, tenantID, entryID)
		if err != nil {
			return err
		}
		for _, id := range lineIDs {
			idx := slices.IndexFunc(e.Lines, func(l domain.JournalLine) bool { return l.LineID == id })
			if idx < 0 {
				return apperrors.NewNotFoundError("journal line " + id)
			}
			e.Lines = slices.Delete(e.Lines, idx, idx+1)
		}
		st.entries[entryID] = e
		return nil
	})
}

func (r journalRepo) SoftDeleteEntry(ctx context.Context, tenantID, entryID, userID string, now time.Time) error {
	return r.with(ctx, func(st *state) error {
		e, err := entryOf(st, tenantID, entryID)
		if err != nil {
			return err
		}
		e.DeletedAt = &now
		e.Touch(userID, now)
		st.entries[entryID] = e
		return nil
	})
}

// NextEntrySequence scans the highest allocated number of the tenant and year.
func (r journalRepo) NextEntrySequence(ctx context.Context, tenantID string, year int) (int64, error) {
	var max int64
	err := r.with(ctx, func(st *state) error {
		for _, e := range st.entries {
			if e.TenantID != tenantID || e.EntryNumber == nil {
				continue
			}
			y, seq, err := numbering.ParseEntryNumber(*e.EntryNumber)
			if err != nil || y != year {
				continue
			}
			if seq > max {
				max = seq
			}
		}
		return nil
	})
	return max + 1, err
}

func (r journalRepo) MarkPosted(ctx context.Context, tenantID, entryID, entryNumber, userID string, now time.Time) error {
	return r.with(ctx, func(st *state) error {
		e, err := entryOf(st, tenantID, entryID)
		if err != nil {
			return err
		}
		for _, other := range st.entries {
			if other.TenantID == tenantID && other.EntryNumber != nil && *other.EntryNumber == entryNumber {
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicateNumber, entryNumber)
			}
		}
		number, by, at := entryNumber, userID, now
		e.EntryNumber = &number
		e.IsPosted = true
		e.PostedBy = &by
		e.PostedAt = &at
		e.Touch(userID, now)
		st.entries[entryID] = e
		return nil
	})
}

func (r journalRepo) MarkReversed(ctx context.Context, tenantID, entryID, reversalID, userID string, now time.Time) error {
	return r.with(ctx, func(st *state) error {
		e, err := entryOf(st, tenantID, entryID)
		if err != nil {
			return err
		}
		rev := reversalID
		e.IsReversed = true
		e.ReversedBy = &rev
		e.Touch(userID, now)
		st.entries[entryID] = e
		return nil
	})
}
