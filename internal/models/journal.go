package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID       string     `db:"entry_id"`
	TenantID      string     `db:"tenant_id"`
	EntryNumber   *string    `db:"entry_number"` // NULL until posted
	EntryDate     time.Time  `db:"entry_date"`
	PostingDate   time.Time  `db:"posting_date"`
	Description   string     `db:"description"`
	ReferenceType string     `db:"reference_type"`
	ReferenceID   string     `db:"reference_id"`
	IsPosted      bool       `db:"is_posted"`
	PostedBy      *string    `db:"posted_by"`
	PostedAt      *time.Time `db:"posted_at"`
	IsReversed    bool       `db:"is_reversed"`
	ReversalOf    *string    `db:"reversal_of"`
	ReversedBy    *string    `db:"reversed_by"`
	DeletedAt     *time.Time `db:"deleted_at"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID       string           `db:"line_id"`
	EntryID      string           `db:"entry_id"`
	TenantID     string           `db:"tenant_id"`
	AccountID    string           `db:"account_id"`
	LineNumber   int              `db:"line_number"`
	Debit        decimal.Decimal  `db:"debit"`
	Credit       decimal.Decimal  `db:"credit"`
	CurrencyCode *string          `db:"currency_code"`
	ExchangeRate *decimal.Decimal `db:"exchange_rate"`
	BaseAmount   decimal.Decimal  `db:"base_amount"`
	Memo         string           `db:"memo"`
	AuditFields
}

// LedgerLine is a posted line joined with its entry and account, read by the reporting views.
type LedgerLine struct {
	EntryID     string          `db:"entry_id"`
	EntryNumber string          `db:"entry_number"`
	PostingDate time.Time       `db:"posting_date"`
	LineID      string          `db:"line_id"`
	AccountID   string          `db:"account_id"`
	AccountCode string          `db:"account_code"`
	AccountName string          `db:"account_name"`
	AccountType string          `db:"account_type"`
	Category    string          `db:"category"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
}
