package dto

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AsOfParams is the query of point-in-time reports.
type AsOfParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// DateRangeParams is the query of period reports.
type DateRangeParams struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	IsBalanced bool `json:"isBalanced"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	FromDate        string                  `json:"fromDate"`
	ToDate          string                  `json:"toDate"`
	Revenue         []AccountAmountResponse `json:"revenue"`
	CostOfGoodsSold []AccountAmountResponse `json:"costOfGoodsSold"`
	Expenses        []AccountAmountResponse `json:"expenses"`
	TotalRevenue    decimal.Decimal         `json:"totalRevenue"`
	TotalCOGS       decimal.Decimal         `json:"totalCOGS"`
	TotalExpenses   decimal.Decimal         `json:"totalExpenses"`
	GrossProfit     decimal.Decimal         `json:"grossProfit"`
	NetProfit       decimal.Decimal         `json:"netProfit"`
}

// CashPositionResponse represents the cash position report response
type CashPositionResponse struct {
	AsOf     string                  `json:"asOf"`
	Accounts []AccountAmountResponse `json:"accounts"`
	Total    decimal.Decimal         `json:"total"`
}

// AgingReportResponse represents an AR or AP aging report
type AgingReportResponse struct {
	Kind   domain.AgingKind  `json:"kind"`
	AsOf   string            `json:"asOf"`
	Rows   []domain.AgingRow `json:"rows"`
	Totals domain.AgingRow   `json:"totals"`
}

func toAccountAmounts(in []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(in))
	for i, a := range in {
		out[i] = AccountAmountResponse{AccountID: a.AccountID, Code: a.AccountCode, Name: a.AccountName, Amount: a.Amount}
	}
	return out
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	res := TrialBalanceResponse{AsOf: FormatDate(tb.AsOf), Rows: make([]TrialBalanceRowResponse, len(tb.Rows))}
	for i, r := range tb.Rows {
		res.Rows[i] = TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			AccountCode: r.AccountCode,
			AccountName: r.AccountName,
			AccountType: string(r.AccountType),
			Debit:       r.Debit,
			Credit:      r.Credit,
			Balance:     r.Balance,
		}
	}
	res.Totals.Debit = tb.TotalDebit
	res.Totals.Credit = tb.TotalCredit
	res.IsBalanced = tb.IsBalanced()
	return res
}

// ToProfitAndLossResponse converts a domain.ProfitAndLoss to its DTO.
func ToProfitAndLossResponse(pl *domain.ProfitAndLoss) ProfitAndLossResponse {
	return ProfitAndLossResponse{
		FromDate:        FormatDate(pl.From),
		ToDate:          FormatDate(pl.To),
		Revenue:         toAccountAmounts(pl.Revenue),
		CostOfGoodsSold: toAccountAmounts(pl.CostOfGoodsSold),
		Expenses:        toAccountAmounts(pl.Expenses),
		TotalRevenue:    pl.TotalRevenue,
		TotalCOGS:       pl.TotalCOGS,
		TotalExpenses:   pl.TotalExpenses,
		GrossProfit:     pl.GrossProfit,
		NetProfit:       pl.NetProfit,
	}
}

// ToCashPositionResponse converts a domain.CashPosition to its DTO.
func ToCashPositionResponse(cp *domain.CashPosition) CashPositionResponse {
	return CashPositionResponse{AsOf: FormatDate(cp.AsOf), Accounts: toAccountAmounts(cp.Accounts), Total: cp.Total}
}

// ToAgingReportResponse converts a domain.AgingReport to its DTO.
func ToAgingReportResponse(r *domain.AgingReport) AgingReportResponse {
	return AgingReportResponse{Kind: r.Kind, AsOf: FormatDate(r.AsOf), Rows: r.Rows, Totals: r.Totals}
}
