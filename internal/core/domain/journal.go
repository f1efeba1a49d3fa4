package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Reference links an entry to the document that originated it (invoice, bill, payroll run).
type Reference struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`
}

// JournalEntry is a dated set of lines. Posted entries are immutable.
type JournalEntry struct {
	EntryID     string     `json:"entryID"`
	TenantID    string     `json:"tenantID"`
	EntryNumber *string    `json:"entryNumber,omitempty"` // allocated at post
	EntryDate   time.Time  `json:"entryDate"`
	PostingDate time.Time  `json:"postingDate"`
	Description string     `json:"description"`
	Reference   Reference  `json:"reference"`
	IsPosted    bool       `json:"isPosted"`
	PostedBy    *string    `json:"postedBy,omitempty"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`
	IsReversed  bool       `json:"isReversed"`
	ReversalOf  *string    `json:"reversalOf,omitempty"`
	ReversedBy  *string    `json:"reversedBy,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	AuditFields
	Lines []JournalLine `json:"lines"`
}

// Totals returns the debit and credit column sums.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// CheckDraftBalance is the journal store invariant: an entry is either empty or balanced.
func (e JournalEntry) CheckDraftBalance() error {
	debit, credit := e.Totals()
	if debit.IsZero() && credit.IsZero() {
		return nil
	}
	if !debit.Equal(credit) {
		return fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalancedEntry, debit.StringFixed(2), credit.StringFixed(2))
	}
	return nil
}

// CheckPostable is the posting invariant: a non-empty balanced entry.
func (e JournalEntry) CheckPostable() error {
	debit, credit := e.Totals()
	if len(e.Lines) == 0 || (debit.IsZero() && credit.IsZero()) {
		return fmt.Errorf("%w: entry %s", apperrors.ErrEmptyEntry, e.EntryID)
	}
	return e.CheckDraftBalance()
}

// IsReversal reports whether the entry was generated by reversing another entry.
func (e JournalEntry) IsReversal() bool {
	return e.ReversalOf != nil
}

// IsDeleted reports whether the draft was soft-deleted.
func (e JournalEntry) IsDeleted() bool {
	return e.DeletedAt != nil
}

// AccountIDs returns the distinct accounts referenced by the lines.
func (e JournalEntry) AccountIDs() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	ids := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	return ids
}

// NextLineNumber returns the line number for the next appended line.
func (e JournalEntry) NextLineNumber() int {
	max := 0
	for _, l := range e.Lines {
		if l.LineNumber > max {
			max = l.LineNumber
		}
	}
	return max + 1
}

// Scales of the stored NUMERIC columns. Amounts with more fractional digits would be
// rounded by storage after the balance check.
const (
	AmountScale       int32 = 4
	ExchangeRateScale int32 = 10
)

// fitsScale reports whether d has no significant digits beyond scale decimal places.
func fitsScale(d decimal.Decimal, scale int32) bool {
	return d.Round(scale).Equal(d)
}

// JournalLine is one side of an entry. Exactly one of Debit and Credit is positive.
type JournalLine struct {
	LineID       string           `json:"lineID"`
	EntryID      string           `json:"entryID"`
	TenantID     string           `json:"tenantID"`
	AccountID    string           `json:"accountID"`
	LineNumber   int              `json:"lineNumber"`
	Debit        decimal.Decimal  `json:"debit"`
	Credit       decimal.Decimal  `json:"credit"`
	CurrencyCode *string          `json:"currencyCode,omitempty"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	BaseAmount   decimal.Decimal  `json:"baseAmount"`
	Memo         string           `json:"memo,omitempty"`
	AuditFields
}

// Validate checks the per-line amount rules.
func (l JournalLine) Validate() error {
	if l.AccountID == "" {
		return apperrors.NewValidationError("line account is required")
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return apperrors.NewValidationError("line amounts cannot be negative")
	}
	if l.Debit.IsPositive() && l.Credit.IsPositive() {
		return apperrors.NewValidationError("line cannot have both debit and credit")
	}
	if l.Debit.IsZero() && l.Credit.IsZero() {
		return apperrors.NewValidationError("line must have a non-zero debit or credit")
	}
	if !fitsScale(l.Debit, AmountScale) || !fitsScale(l.Credit, AmountScale) {
		return apperrors.NewValidationError("line amounts cannot have more than %d decimal places", AmountScale)
	}
	if l.ExchangeRate != nil {
		if !l.ExchangeRate.IsPositive() {
			return apperrors.NewValidationError("exchange rate must be positive")
		}
		if !fitsScale(*l.ExchangeRate, ExchangeRateScale) {
			return apperrors.NewValidationError("exchange rate cannot have more than %d decimal places", ExchangeRateScale)
		}
	}
	return nil
}

// IsDebit reports whether the line is on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount is the positive side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// WithBaseAmount derives BaseAmount as amount × rate (rate defaults to 1), rounded to AmountScale.
func (l JournalLine) WithBaseAmount() JournalLine {
	rate := decimal.NewFromInt(1)
	if l.ExchangeRate != nil {
		rate = *l.ExchangeRate
	}
	l.BaseAmount = l.Amount().Mul(rate).Round(AmountScale)
	return l
}

// Swapped returns a copy of the line with debit and credit exchanged.
func (l JournalLine) Swapped() JournalLine {
	l.Debit, l.Credit = l.Credit, l.Debit
	return l
}
