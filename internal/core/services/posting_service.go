package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/SscSPs/ledger_core/internal/utils/numbering"
)

// DefaultPostRetryAttempts bounds the internal retries after an entry number collision.
const DefaultPostRetryAttempts = 5

type postingService struct {
	BaseService
	store         portsrepo.LedgerStore
	retryAttempts int
}

// NewPostingService creates the posting engine.
func NewPostingService(store portsrepo.LedgerStore, retryAttempts int, options ...ServiceOption) portssvc.PostingService {
	if retryAttempts < 1 {
		retryAttempts = DefaultPostRetryAttempts
	}
	return &postingService{
		BaseService:   newBaseService(options),
		store:         store,
		retryAttempts: retryAttempts,
	}
}

var _ portssvc.PostingService = (*postingService)(nil)

// Post validates a draft, allocates its entry number and applies its balance changes.
func (s *postingService) Post(ctx context.Context, tenantID, entryID string, actor domain.Actor) (*domain.JournalEntry, error) {
	if err := s.AuthorizeWrite(ctx, tenantID, actor); err != nil {
		return nil, err
	}

	var posted *domain.JournalEntry
	err := s.withNumberRetry(ctx, entryID, func() error {
		return s.store.WithinTx(ctx, func(tx portsrepo.TxRepositories) error {
			entry, err := s.postInTx(ctx, tx, tenantID, entryID, actor)
			if err != nil {
				return err
			}
			posted = entry
			return nil
		})
	})
	if err != nil {
		s.Metrics.PostRejected(err)
		s.logRejection(ctx, err, "Failed to post journal entry", tenantID, entryID)
		return nil, err
	}

	s.Metrics.EntryPosted("entry")
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("tenant_id", tenantID),
		slog.String("entry_id", entryID),
		slog.String("entry_number", *posted.EntryNumber),
		slog.String("posted_by", actor.UserID))
	return posted, nil
}

// Reverse posts a mirror image of a posted entry dated reversalDate and links the two.
func (s *postingService) Reverse(ctx context.Context, tenantID, entryID string, req dto.ReverseEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	if err := s.AuthorizeWrite(ctx, tenantID, actor); err != nil {
		return nil, err
	}
	reversalDate, err := dto.ParseDate("reversalDate", req.ReversalDate)
	if err != nil {
		return nil, err
	}

	var reversal *domain.JournalEntry
	err = s.withNumberRetry(ctx, entryID, func() error {
		return s.store.WithinTx(ctx, func(tx portsrepo.TxRepositories) error {
			original, err := tx.Journals().FindEntryByIDForUpdate(ctx, tenantID, entryID)
			if err != nil {
				return err
			}
			switch {
			case !original.IsPosted:
				return fmt.Errorf("%w: entry %s", apperrors.ErrNotPosted, entryID)
			case original.IsReversed:
				return fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, entryID)
			case original.IsReversal():
				return apperrors.NewValidationError("entry %s is a reversal and cannot be reversed", entryID)
			}
			if err := checkPeriodOpen(ctx, tx.Periods(), tenantID, reversalDate); err != nil {
				return err
			}

			now := s.Now()
			draft := buildReversal(original, reversalDate, req.Reason, actor, now)
			if err := tx.Journals().SaveEntry(ctx, draft); err != nil {
				return err
			}
			if err := tx.Journals().InsertLines(ctx, draft.Lines); err != nil {
				return err
			}
			posted, err := s.postInTx(ctx, tx, tenantID, draft.EntryID, actor)
			if err != nil {
				return err
			}
			if err := tx.Journals().MarkReversed(ctx, tenantID, entryID, posted.EntryID, actor.UserID, now); err != nil {
				return err
			}
			reversal = posted
			return nil
		})
	})
	if err != nil {
		s.Metrics.PostRejected(err)
		s.logRejection(ctx, err, "Failed to reverse journal entry", tenantID, entryID)
		return nil, err
	}

	s.Metrics.EntryPosted("reversal")
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("tenant_id", tenantID),
		slog.String("entry_id", entryID),
		slog.String("reversal_id", reversal.EntryID),
		slog.String("entry_number", *reversal.EntryNumber))
	return reversal, nil
}

func buildReversal(original *domain.JournalEntry, date time.Time, reason string, actor domain.Actor, now time.Time) domain.JournalEntry {
	description := "REVERSAL: " + original.Description
	if reason != "" {
		description = fmt.Sprintf("%s (%s)", description, reason)
	}
	originalID := original.EntryID
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		TenantID:    original.TenantID,
		EntryDate:   date,
		PostingDate: date,
		Description: description,
		Reference:   original.Reference,
		ReversalOf:  &originalID,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}
	entry.Lines = make([]domain.JournalLine, len(original.Lines))
	for i, l := range original.Lines {
		line := l.Swapped()
		line.LineID = uuid.NewString()
		line.EntryID = entry.EntryID
		line.LineNumber = i + 1
		line.AuditFields = domain.NewAuditFields(actor.UserID, now)
		entry.Lines[i] = line
	}
	return entry
}

// postInTx runs the posting steps against an open transaction and returns the posted entry.
func (s *postingService) postInTx(ctx context.Context, tx portsrepo.TxRepositories, tenantID, entryID string, actor domain.Actor) (*domain.JournalEntry, error) {
	entry, err := tx.Journals().FindEntryByIDForUpdate(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsPosted {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyPosted, entryID)
	}
	if err := entry.CheckPostable(); err != nil {
		return nil, err
	}
	if err := checkPeriodOpen(ctx, tx.Periods(), tenantID, entry.PostingDate); err != nil {
		return nil, err
	}

	accountIDs := entry.AccountIDs()
	sort.Strings(accountIDs)
	accounts, err := tx.Accounts().FindAccountsByIDsForUpdate(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	if !entry.IsReversal() {
		for _, id := range accountIDs {
			if !accounts[id].IsActive {
				return nil, apperrors.NewValidationError("account %s is inactive", accounts[id].Code)
			}
		}
	}
	changes, err := accounting.BalanceChanges(entry.Lines, accounts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	now := s.Now()
	year := entry.PostingDate.UTC().Year()
	seq, err := tx.Journals().NextEntrySequence(ctx, tenantID, year)
	if err != nil {
		return nil, err
	}
	number := numbering.FormatEntryNumber(year, seq)
	if err := tx.Journals().MarkPosted(ctx, tenantID, entryID, number, actor.UserID, now); err != nil {
		return nil, err
	}
	if err := tx.Accounts().UpdateAccountBalances(ctx, tenantID, changes, actor.UserID, now); err != nil {
		return nil, err
	}

	postedBy, postedAt := actor.UserID, now
	entry.EntryNumber = &number
	entry.IsPosted = true
	entry.PostedBy = &postedBy
	entry.PostedAt = &postedAt
	entry.Touch(actor.UserID, now)
	return entry, nil
}

// withNumberRetry reruns fn while entry number allocation collides. Callers never see
// ErrDuplicateNumber; exhausting the attempts yields ErrConcurrencyConflict.
func (s *postingService) withNumberRetry(ctx context.Context, entryID string, fn func() error) error {
	for attempt := 1; ; attempt++ {
		err := fn()
		if !errors.Is(err, apperrors.ErrDuplicateNumber) {
			return err
		}
		if attempt >= s.retryAttempts {
			return fmt.Errorf("%w: entry number allocation collided %d times: %v", apperrors.ErrConcurrencyConflict, attempt, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.Metrics.PostRetried()
		s.LogDebug(ctx, "Entry number collision, retrying post",
			slog.String("entry_id", entryID),
			slog.Int("attempt", attempt))
	}
}

func (s *postingService) logRejection(ctx context.Context, err error, msg, tenantID, entryID string) {
	attrs := []any{slog.String("tenant_id", tenantID), slog.String("entry_id", entryID)}
	switch {
	case apperrors.IsLogicBug(err):
		s.LogError(ctx, err, msg+": entry is already posted", attrs...)
	case errors.Is(err, apperrors.ErrConcurrencyConflict), apperrors.HTTPStatus(err) >= 500:
		s.LogError(ctx, err, msg, attrs...)
	default:
		s.LogInfo(ctx, msg, append(attrs, slog.String("error", err.Error()))...)
	}
}
