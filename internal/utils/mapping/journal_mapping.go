package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		TenantID:      d.TenantID,
		EntryNumber:   d.EntryNumber,
		EntryDate:     domain.DateOf(d.EntryDate),
		PostingDate:   domain.DateOf(d.PostingDate),
		Description:   d.Description,
		ReferenceType: d.Reference.Type,
		ReferenceID:   d.Reference.ID,
		IsPosted:      d.IsPosted,
		PostedBy:      d.PostedBy,
		PostedAt:      d.PostedAt,
		IsReversed:    d.IsReversed,
		ReversalOf:    d.ReversalOf,
		ReversedBy:    d.ReversedBy,
		DeletedAt:     d.DeletedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		TenantID:    m.TenantID,
		EntryNumber: m.EntryNumber,
		EntryDate:   domain.DateOf(m.EntryDate),
		PostingDate: domain.DateOf(m.PostingDate),
		Description: m.Description,
		Reference:   domain.Reference{Type: m.ReferenceType, ID: m.ReferenceID},
		IsPosted:    m.IsPosted,
		PostedBy:    m.PostedBy,
		PostedAt:    utcPtr(m.PostedAt),
		IsReversed:  m.IsReversed,
		ReversalOf:  m.ReversalOf,
		ReversedBy:  m.ReversedBy,
		DeletedAt:   utcPtr(m.DeletedAt),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model JournalEntries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		TenantID:     d.TenantID,
		AccountID:    d.AccountID,
		LineNumber:   d.LineNumber,
		Debit:        d.Debit,
		Credit:       d.Credit,
		CurrencyCode: d.CurrencyCode,
		ExchangeRate: d.ExchangeRate,
		BaseAmount:   d.BaseAmount,
		Memo:         d.Memo,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		TenantID:     m.TenantID,
		AccountID:    m.AccountID,
		LineNumber:   m.LineNumber,
		Debit:        m.Debit,
		Credit:       m.Credit,
		CurrencyCode: m.CurrencyCode,
		ExchangeRate: m.ExchangeRate,
		BaseAmount:   m.BaseAmount,
		Memo:         m.Memo,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

// ToDomainLedgerLine converts a reporting row to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		EntryID:     m.EntryID,
		EntryNumber: m.EntryNumber,
		PostingDate: domain.DateOf(m.PostingDate),
		LineID:      m.LineID,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		AccountType: domain.AccountType(m.AccountType),
		Category:    domain.AccountCategory(m.Category),
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}
