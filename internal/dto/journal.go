package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineInput describes one line to add to a draft entry.
type LineInput struct {
	AccountID    string           `json:"accountID" binding:"required"`
	Debit        decimal.Decimal  `json:"debit"`
	Credit       decimal.Decimal  `json:"credit"`
	CurrencyCode *string          `json:"currencyCode" binding:"omitempty,len=3"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`
	Memo         string           `json:"memo" binding:"max=500"`
}

// CreateEntryRequest creates a draft entry, optionally with its first lines.
type CreateEntryRequest struct {
	EntryDate     string      `json:"entryDate" binding:"required,datetime=2006-01-02"`
	PostingDate   *string     `json:"postingDate" binding:"omitempty,datetime=2006-01-02"` // defaults to entryDate
	Description   string      `json:"description" binding:"max=1000"`
	ReferenceType string      `json:"referenceType" binding:"max=50"`
	ReferenceID   string      `json:"referenceID" binding:"max=100"`
	Lines         []LineInput `json:"lines" binding:"omitempty,dive"`
}

// UpdateEntryRequest changes the header of a draft entry.
type UpdateEntryRequest struct {
	EntryDate     *string `json:"entryDate" binding:"omitempty,datetime=2006-01-02"`
	PostingDate   *string `json:"postingDate" binding:"omitempty,datetime=2006-01-02"`
	Description   *string `json:"description" binding:"omitempty,max=1000"`
	ReferenceType *string `json:"referenceType" binding:"omitempty,max=50"`
	ReferenceID   *string `json:"referenceID" binding:"omitempty,max=100"`
}

// AddLinesRequest appends a batch of lines atomically.
type AddLinesRequest struct {
	Lines []LineInput `json:"lines" binding:"required,min=1,dive"`
}

// ReverseEntryRequest reverses a posted entry.
type ReverseEntryRequest struct {
	ReversalDate string `json:"reversalDate" binding:"required,datetime=2006-01-02"`
	Reason       string `json:"reason" binding:"max=500"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=0,max=200"`
	NextToken *string `form:"nextToken"`
	Status    string  `form:"status" binding:"omitempty,oneof=posted draft"`
}

// PostedFilter converts the status parameter into a repository filter value.
func (p ListEntriesParams) PostedFilter() *bool {
	switch p.Status {
	case "posted":
		v := true
		return &v
	case "draft":
		v := false
		return &v
	}
	return nil
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID       string           `json:"lineID"`
	LineNumber   int              `json:"lineNumber"`
	AccountID    string           `json:"accountID"`
	Debit        decimal.Decimal  `json:"debit"`
	Credit       decimal.Decimal  `json:"credit"`
	CurrencyCode *string          `json:"currencyCode,omitempty"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	BaseAmount   decimal.Decimal  `json:"baseAmount"`
	Memo         string           `json:"memo,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID       string          `json:"entryID"`
	TenantID      string          `json:"tenantID"`
	EntryNumber   *string         `json:"entryNumber,omitempty"`
	EntryDate     string          `json:"entryDate"`
	PostingDate   string          `json:"postingDate"`
	Description   string          `json:"description"`
	ReferenceType string          `json:"referenceType,omitempty"`
	ReferenceID   string          `json:"referenceID,omitempty"`
	Status        string          `json:"status"`
	IsPosted      bool            `json:"isPosted"`
	PostedBy      *string         `json:"postedBy,omitempty"`
	PostedAt      *time.Time      `json:"postedAt,omitempty"`
	IsReversed    bool            `json:"isReversed"`
	ReversalOf    *string         `json:"reversalOf,omitempty"`
	ReversedBy    *string         `json:"reversedBy,omitempty"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Lines         []LineResponse  `json:"lines"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ListEntriesResponse is a page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

func entryStatus(e *domain.JournalEntry) string {
	switch {
	case e.IsReversed:
		return "REVERSED"
	case e.IsPosted:
		return "POSTED"
	default:
		return "DRAFT"
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	debit, credit := e.Totals()
	lines := make([]LineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = LineResponse{
			LineID:       l.LineID,
			LineNumber:   l.LineNumber,
			AccountID:    l.AccountID,
			Debit:        l.Debit,
			Credit:       l.Credit,
			CurrencyCode: l.CurrencyCode,
			ExchangeRate: l.ExchangeRate,
			BaseAmount:   l.BaseAmount,
			Memo:         l.Memo,
		}
	}
	return EntryResponse{
		EntryID:       e.EntryID,
		TenantID:      e.TenantID,
		EntryNumber:   e.EntryNumber,
		EntryDate:     FormatDate(e.EntryDate),
		PostingDate:   FormatDate(e.PostingDate),
		Description:   e.Description,
		ReferenceType: e.Reference.Type,
		ReferenceID:   e.Reference.ID,
		Status:        entryStatus(e),
		IsPosted:      e.IsPosted,
		PostedBy:      e.PostedBy,
		PostedAt:      e.PostedAt,
		IsReversed:    e.IsReversed,
		ReversalOf:    e.ReversalOf,
		ReversedBy:    e.ReversedBy,
		TotalDebit:    debit,
		TotalCredit:   credit,
		Lines:         lines,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}
