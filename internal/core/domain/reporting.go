package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is a posted journal line joined with its entry and account metadata.
// It is the single input of every reporting view.
type LedgerLine struct {
	EntryID     string          `json:"entryID"`
	EntryNumber string          `json:"entryNumber"`
	PostingDate time.Time       `json:"postingDate"`
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Category    AccountCategory `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// LedgerLineFilter narrows ListPostedLines. Zero values mean no restriction.
type LedgerLineFilter struct {
	From         *time.Time
	To           *time.Time
	AccountTypes []AccountType
	Categories   []AccountCategory
	AccountIDs   []string
}

// TrialBalanceRow is one account line of the trial balance.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"` // normal-signed
}

// TrialBalance lists debit/credit totals per account as of a date.
type TrialBalance struct {
	TenantID    string            `json:"tenantID"`
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// IsBalanced reports whether the debit and credit columns agree.
func (tb TrialBalance) IsBalanced() bool {
	return tb.TotalDebit.Equal(tb.TotalCredit)
}

// AccountAmount is an account with a derived amount.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitAndLoss is the income statement over a date range.
type ProfitAndLoss struct {
	TenantID        string          `json:"tenantID"`
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	Revenue         []AccountAmount `json:"revenue"`
	CostOfGoodsSold []AccountAmount `json:"costOfGoodsSold"`
	Expenses        []AccountAmount `json:"expenses"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalCOGS       decimal.Decimal `json:"totalCOGS"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	NetProfit       decimal.Decimal `json:"netProfit"`
}

// CashPosition sums cash and bank balances.
type CashPosition struct {
	TenantID string          `json:"tenantID"`
	AsOf     time.Time       `json:"asOf"`
	Accounts []AccountAmount `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

// AgingKind selects receivables or payables.
type AgingKind string

const (
	AgingReceivables AgingKind = "AR"
	AgingPayables    AgingKind = "AP"
)

// AgingRow holds bucketed amounts for one control account.
type AgingRow struct {
	AccountID   string          `json:"accountID,omitempty"`
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	Current     decimal.Decimal `json:"current"`   // 0-30 days
	Days31To60  decimal.Decimal `json:"days31To60"`
	Days61To90  decimal.Decimal `json:"days61To90"`
	Over90      decimal.Decimal `json:"over90"`
	Total       decimal.Decimal `json:"total"`
}

// Add puts amount into the bucket for the given age in days.
func (r *AgingRow) Add(ageDays int, amount decimal.Decimal) {
	switch {
	case ageDays <= 30:
		r.Current = r.Current.Add(amount)
	case ageDays <= 60:
		r.Days31To60 = r.Days31To60.Add(amount)
	case ageDays <= 90:
		r.Days61To90 = r.Days61To90.Add(amount)
	default:
		r.Over90 = r.Over90.Add(amount)
	}
	r.Total = r.Total.Add(amount)
}

// AgingReport is the AR or AP aging as of a date.
type AgingReport struct {
	TenantID string     `json:"tenantID"`
	Kind     AgingKind  `json:"kind"`
	AsOf     time.Time  `json:"asOf"`
	Rows     []AgingRow `json:"rows"`
	Totals   AgingRow   `json:"totals"`
}
