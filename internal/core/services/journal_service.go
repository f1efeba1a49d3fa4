package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// journalService owns the draft lifecycle of journal entries.
type journalService struct {
	BaseService
	store portsrepo.LedgerStore
}

// NewJournalService creates a new JournalService.
func NewJournalService(store portsrepo.LedgerStore, options ...ServiceOption) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.store.Journals().FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	entries, nextToken, err := s.store.Journals().ListEntries(ctx, tenantID, portsrepo.EntryListFilter{
		Posted:    params.PostedFilter(),
		Limit:     params.Limit,
		NextToken: params.NextToken,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list journal entries", slog.String("tenant_id", tenantID))
		}
		return nil, err
	}

	s.LogDebug(ctx, "Journal entries listed", slog.String("tenant_id", tenantID), slog.Int("count", len(entries)))
	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// CreateDraftEntry creates a draft. Initial lines are optional and must balance as a batch.
func (s *journalService) CreateDraftEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	if err := s.AuthorizeWrite(ctx, tenantID, actor); err != nil {
		return nil, err
	}
	entryDate, err := dto.ParseDate("entryDate", req.EntryDate)
	if err != nil {
		return nil, err
	}
	postingDate, err := dto.ParseOptionalDate("postingDate", req.PostingDate, entryDate)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		TenantID:    tenantID,
		EntryDate:   entryDate,
		PostingDate: postingDate,
		Description: req.Description,
		Reference:   domain.Reference{Type: req.ReferenceType, ID: req.ReferenceID},
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}

	err = s.store.WithinTx(ctx, func(tx portsrepo.TxRepositories) error {
		if err := checkPeriodOpen(ctx, tx.Periods(), tenantID, postingDate); err != nil {
			return err
		}
		if err := tx.Journals().SaveEntry(ctx, entry); err != nil {
			return err
		}
		if len(req.Lines) == 0 {
			return nil
		}
		return s.appendLines(ctx, tx, &entry, req.Lines, actor, now)
	})
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to create journal entry", tenantID, entry.EntryID)
		return nil, err
	}

	s.LogInfo(ctx, "Draft journal entry created",
		slog.String("tenant_id", tenantID),
		slog.String("entry_id", entry.EntryID),
		slog.Int("lines", len(entry.Lines)))
	return &entry, nil
}

// mutateDraft is the single write path of an existing draft. It locks the entry, rejects posted
// entries and closed periods, runs fn and rejects results that are neither empty nor balanced.
func (s *journalService) mutateDraft(ctx context.Context, tenantID, entryID string, actor domain.Actor, op string, fn func(tx portsrepo.TxRepositories, entry *domain.JournalEntry, now time.Time) error) (*domain.JournalEntry, error) {
	if err := s.AuthorizeWrite(ctx, tenantID, actor); err != nil {
		return nil, err
	}

	var out *domain.JournalEntry
	err := s.store.WithinTx(ctx, func(tx portsrepo.TxRepositories) error {
		entry, err := tx.Journals().FindEntryByIDForUpdate(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if entry.IsPosted {
			return apperrors.NewImmutableEntryError(entryID)
		}
		if err := checkPeriodOpen(ctx, tx.Periods(), tenantID, entry.PostingDate); err != nil {
			return err
		}
		if err := fn(tx, entry, s.Now()); err != nil {
			return err
		}
		if err := entry.CheckDraftBalance(); err != nil {
			return err
		}
		out = entry
		return nil
	})
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to "+op, tenantID, entryID)
		return nil, err
	}

	s.LogInfo(ctx, "Draft journal entry changed",
		slog.String("operation", op),
		slog.String("tenant_id", tenantID),
		slog.String("entry_id", entryID),
		slog.String("user_id", actor.UserID))
	return out, nil
}

// logWriteFailure logs mutations of posted entries and unexpected failures at error level.
// Expected rejections go to debug.
func (s *journalService) logWriteFailure(ctx context.Context, err error, msg, tenantID, entryID string) {
	attrs := []any{slog.String("tenant_id", tenantID), slog.String("entry_id", entryID)}
	switch {
	case apperrors.IsLogicBug(err):
		s.LogError(ctx, err, msg+": caller attempted to modify a posted entry", attrs...)
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnbalancedEntry),
		errors.Is(err, apperrors.ErrPeriodLocked),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrForbidden):
		s.LogDebug(ctx, msg, append(attrs, slog.String("error", err.Error()))...)
	default:
		s.LogError(ctx, err, msg, attrs...)
	}
}

func (s *journalService) UpdateDraft(ctx context.Context, tenantID, entryID string, req dto.UpdateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	return s.mutateDraft(ctx, tenantID, entryID, actor, "update draft", func(tx portsrepo.TxRepositories, entry *domain.JournalEntry, now time.Time) error {
		entryDate, err := dto.ParseOptionalDate("entryDate", req.EntryDate, entry.EntryDate)
		if err != nil {
			return err
		}
		postingDate, err := dto.ParseOptionalDate("postingDate", req.PostingDate, entry.PostingDate)
		if err != nil {
			return err
		}
		if !postingDate.Equal(entry.PostingDate) {
			if err := checkPeriodOpen(ctx, tx.Periods(), tenantID, postingDate); err != nil {
				return err
			}
		}

		entry.EntryDate = entryDate
		entry.PostingDate = postingDate
		if req.Description != nil {
			entry.Description = *req.Description
		}
		if req.ReferenceType != nil {
			entry.Reference.Type = *req.ReferenceType
		}
		if req.ReferenceID != nil {
			entry.Reference.ID = *req.ReferenceID
		}
		entry.Touch(actor.UserID, now)
		return tx.Journals().UpdateEntryHeader(ctx, *entry)
	})
}

// DeleteDraft soft-deletes a draft created by the actor.
func (s *journalService) DeleteDraft(ctx context.Context, tenantID, entryID string, actor domain.Actor) error {
	_, err := s.mutateDraft(ctx, tenantID, entryID, actor, "delete draft", func(tx portsrepo.TxRepositories, entry *domain.JournalEntry, now time.Time) error {
		if entry.CreatedBy != actor.UserID {
			return fmt.Errorf("%w: entry %s belongs to another user", apperrors.ErrForbidden, entryID)
		}
		return tx.Journals().SoftDeleteEntry(ctx, tenantID, entryID, actor.UserID, now)
	})
	return err
}

func (s *journalService) AddLine(ctx context.Context, tenantID, entryID string, line dto.LineInput, actor domain.Actor) (*domain.JournalEntry, error) {
	return s.AddLines(ctx, tenantID, entryID, []dto.LineInput{line}, actor)
}

// AddLines appends a batch atomically; the entry must balance (or stay empty) afterwards.
func (s *journalService) AddLines(ctx context.Context, tenantID, entryID string, lines []dto.LineInput, actor domain.Actor) (*domain.JournalEntry, error) {
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("at least one line is required")
	}
	return s.mutateDraft(ctx, tenantID, entryID, actor, "add lines", func(tx portsrepo.TxRepositories, entry *domain.JournalEntry, now time.Time) error {
		return s.appendLines(ctx, tx, entry, lines, actor, now)
	})
}

func (s *journalService) appendLines(ctx context.Context, tx portsrepo.TxRepositories, entry *domain.JournalEntry, inputs []dto.LineInput, actor domain.Actor, now time.Time) error {
	next := entry.NextLineNumber()
	lines := make([]domain.JournalLine, len(inputs))
	accountIDs := make([]string, 0, len(inputs))
	for i, in := range inputs {
		line := domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entry.EntryID,
			TenantID:     entry.TenantID,
			AccountID:    in.AccountID,
			LineNumber:   next + i,
			Debit:        in.Debit,
			Credit:       in.Credit,
			CurrencyCode: in.CurrencyCode,
			ExchangeRate: in.ExchangeRate,
			Memo:         in.Memo,
			AuditFields:  domain.NewAuditFields(actor.UserID, now),
		}
		if err := line.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		lines[i] = line.WithBaseAmount()
		if !slices.Contains(accountIDs, in.AccountID) {
			accountIDs = append(accountIDs, in.AccountID)
		}
	}

	accounts, err := tx.Accounts().FindAccountsByIDsForShare(ctx, entry.TenantID, accountIDs)
	if err != nil {
		return err
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found {
			return apperrors.NewValidationError("account %s not found", id)
		}
		if !acc.IsActive {
			return apperrors.NewValidationError("account %s is inactive", acc.Code)
		}
	}

	if err := tx.Journals().InsertLines(ctx, lines); err != nil {
		return err
	}
	entry.Lines = append(entry.Lines, lines...)
	if err := entry.CheckDraftBalance(); err != nil {
		return err
	}
	entry.Touch(actor.UserID, now)
	return tx.Journals().UpdateEntryHeader(ctx, *entry)
}

func (s *journalService) RemoveLine(ctx context.Context, tenantID, entryID, lineID string, actor domain.Actor) (*domain.JournalEntry, error) {
	return s.RemoveLines(ctx, tenantID, entryID, []string{lineID}, actor)
}

// RemoveLines deletes a batch atomically; the remaining lines must balance (or be empty).
func (s *journalService) RemoveLines(ctx context.Context, tenantID, entryID string, lineIDs []string, actor domain.Actor) (*domain.JournalEntry, error) {
	if len(lineIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one line id is required")
	}
	return s.mutateDraft(ctx, tenantID, entryID, actor, "remove lines", func(tx portsrepo.TxRepositories, entry *domain.JournalEntry, now time.Time) error {
		for _, id := range lineIDs {
			idx := slices.IndexFunc(entry.Lines, func(l domain.JournalLine) bool { return l.LineID == id })
			if idx < 0 {
				return apperrors.NewNotFoundError("journal line " + id)
			}
			entry.Lines = slices.Delete(entry.Lines, idx, idx+1)
		}
		if err := tx.Journals().DeleteLines(ctx, tenantID, entryID, lineIDs); err != nil {
			return err
		}
		entry.Touch(actor.UserID, now)
		return tx.Journals().UpdateEntryHeader(ctx, *entry)
	})
}
