package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// JournalReaderSvc defines read operations of the journal store.
type JournalReaderSvc interface {
	GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines the guarded write path of draft entries.
type JournalWriterSvc interface {
	CreateDraftEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error)
	UpdateDraft(ctx context.Context, tenantID, entryID string, req dto.UpdateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error)
	DeleteDraft(ctx context.Context, tenantID, entryID string, actor domain.Actor) error
	AddLine(ctx context.Context, tenantID, entryID string, line dto.LineInput, actor domain.Actor) (*domain.JournalEntry, error)
	AddLines(ctx context.Context, tenantID, entryID string, lines []dto.LineInput, actor domain.Actor) (*domain.JournalEntry, error)
	RemoveLine(ctx context.Context, tenantID, entryID, lineID string, actor domain.Actor) (*domain.JournalEntry, error)
	RemoveLines(ctx context.Context, tenantID, entryID string, lineIDs []string, actor domain.Actor) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// PostingService turns drafts into immutable posted entries.
type PostingService interface {
	Post(ctx context.Context, tenantID, entryID string, actor domain.Actor) (*domain.JournalEntry, error)
	Reverse(ctx context.Context, tenantID, entryID string, req dto.ReverseEntryRequest, actor domain.Actor) (*domain.JournalEntry, error)
}
