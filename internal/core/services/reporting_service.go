package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService derives every view from ListPostedLines.
type reportingService struct {
	BaseService
	store portsrepo.LedgerStore
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(store portsrepo.LedgerStore, options ...ServiceOption) portssvc.ReportingService {
	return &reportingService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) postedLines(ctx context.Context, tenantID string, filter domain.LedgerLineFilter) ([]domain.LedgerLine, error) {
	lines, err := s.store.Reporting().ListPostedLines(ctx, tenantID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load posted lines", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to load posted lines: %w", err)
	}
	return lines, nil
}

// GetTrialBalance generates a trial balance report as of a specific date
func (s *reportingService) GetTrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalance, error) {
	asOf = domain.DateOf(asOf)
	lines, err := s.postedLines(ctx, tenantID, domain.LedgerLineFilter{To: &asOf})
	if err != nil {
		return nil, err
	}

	rows := map[string]*domain.TrialBalanceRow{}
	tb := &domain.TrialBalance{TenantID: tenantID, AsOf: asOf, Rows: []domain.TrialBalanceRow{}, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, l := range lines {
		row, ok := rows[l.AccountID]
		if !ok {
			row = &domain.TrialBalanceRow{
				AccountID:   l.AccountID,
				AccountCode: l.AccountCode,
				AccountName: l.AccountName,
				AccountType: l.AccountType,
				Debit:       decimal.Zero,
				Credit:      decimal.Zero,
			}
			rows[l.AccountID] = row
		}
		row.Debit = row.Debit.Add(l.Debit)
		row.Credit = row.Credit.Add(l.Credit)
		tb.TotalDebit = tb.TotalDebit.Add(l.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(l.Credit)
	}
	for _, row := range rows {
		row.Balance = accounting.NormalBalance(row.Debit, row.Credit, row.AccountType)
		tb.Rows = append(tb.Rows, *row)
	}
	sort.Slice(tb.Rows, func(i, j int) bool { return tb.Rows[i].AccountCode < tb.Rows[j].AccountCode })

	if !tb.IsBalanced() {
		// Posted entries are balanced, so this means storage was modified outside the engine.
		s.LogError(ctx, apperrors.ErrUnbalancedEntry, "Trial balance does not balance",
			slog.String("tenant_id", tenantID),
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()))
	}
	return tb, nil
}

// GetProfitAndLoss reports revenue and expenses posted within [from, to].
func (s *reportingService) GetProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitAndLoss, error) {
	from, to = domain.DateOf(from), domain.DateOf(to)
	if to.Before(from) {
		return nil, apperrors.NewValidationError("to date %s is before from date %s", domain.DateString(to), domain.DateString(from))
	}
	lines, err := s.postedLines(ctx, tenantID, domain.LedgerLineFilter{
		From:         &from,
		To:           &to,
		AccountTypes: []domain.AccountType{domain.Revenue, domain.Expense},
	})
	if err != nil {
		return nil, err
	}

	revenue, cogs, expenses := newAmounts(), newAmounts(), newAmounts()
	for _, l := range lines {
		switch {
		case l.AccountType == domain.Revenue:
			revenue.add(l)
		case l.Category == domain.CategoryCOGS:
			cogs.add(l)
		default:
			expenses.add(l)
		}
	}

	pl := &domain.ProfitAndLoss{
		TenantID:        tenantID,
		From:            from,
		To:              to,
		Revenue:         revenue.sorted(),
		CostOfGoodsSold: cogs.sorted(),
		Expenses:        expenses.sorted(),
		TotalRevenue:    revenue.total,
		TotalCOGS:       cogs.total,
		TotalExpenses:   expenses.total,
	}
	pl.GrossProfit = pl.TotalRevenue.Sub(pl.TotalCOGS)
	pl.NetProfit = pl.GrossProfit.Sub(pl.TotalExpenses)
	return pl, nil
}

// GetCashPosition sums cash and bank accounts as of a date.
func (s *reportingService) GetCashPosition(ctx context.Context, tenantID string, asOf time.Time) (*domain.CashPosition, error) {
	asOf = domain.DateOf(asOf)
	lines, err := s.postedLines(ctx, tenantID, domain.LedgerLineFilter{
		To:           &asOf,
		AccountTypes: []domain.AccountType{domain.Asset},
		Categories:   []domain.AccountCategory{domain.CategoryCash, domain.CategoryBank},
	})
	if err != nil {
		return nil, err
	}
	cash := newAmounts()
	for _, l := range lines {
		cash.add(l)
	}
	return &domain.CashPosition{TenantID: tenantID, AsOf: asOf, Accounts: cash.sorted(), Total: cash.total}, nil
}

func (s *reportingService) GetARAging(ctx context.Context, tenantID string, asOf time.Time) (*domain.AgingReport, error) {
	return s.aging(ctx, tenantID, domain.AgingReceivables, domain.CategoryReceivable, asOf)
}

func (s *reportingService) GetAPAging(ctx context.Context, tenantID string, asOf time.Time) (*domain.AgingReport, error) {
	return s.aging(ctx, tenantID, domain.AgingPayables, domain.CategoryPayable, asOf)
}

// aging buckets control account lines by the days between their posting date and asOf.
func (s *reportingService) aging(ctx context.Context, tenantID string, kind domain.AgingKind, category domain.AccountCategory, asOf time.Time) (*domain.AgingReport, error) {
	asOf = domain.DateOf(asOf)
	lines, err := s.postedLines(ctx, tenantID, domain.LedgerLineFilter{
		To:         &asOf,
		Categories: []domain.AccountCategory{category},
	})
	if err != nil {
		return nil, err
	}

	report := &domain.AgingReport{TenantID: tenantID, Kind: kind, AsOf: asOf, Rows: []domain.AgingRow{}}
	rows := map[string]*domain.AgingRow{}
	for _, l := range lines {
		amount, err := accounting.CalculateSignedAmount(l.Debit, l.Credit, l.AccountType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
		row, ok := rows[l.AccountID]
		if !ok {
			row = &domain.AgingRow{AccountID: l.AccountID, AccountCode: l.AccountCode, AccountName: l.AccountName}
			rows[l.AccountID] = row
		}
		age := int(asOf.Sub(domain.DateOf(l.PostingDate)).Hours() / 24)
		row.Add(age, amount)
		report.Totals.Add(age, amount)
	}
	for _, row := range rows {
		report.Rows = append(report.Rows, *row)
	}
	sort.Slice(report.Rows, func(i, j int) bool { return report.Rows[i].AccountCode < report.Rows[j].AccountCode })
	return report, nil
}

// GetControlBalance sums the normal-signed balance of the tenant's accounts in category as of a date.
// A zero asOf leaves the posting date unbounded.
func (s *reportingService) GetControlBalance(ctx context.Context, tenantID string, category domain.AccountCategory, asOf time.Time) (decimal.Decimal, error) {
	accounts, err := s.store.Accounts().ListAccounts(ctx, tenantID)
	if err != nil {
		return decimal.Zero, err
	}
	found := false
	for _, a := range accounts {
		if a.Category == category {
			found = true
			break
		}
	}
	if !found {
		return decimal.Zero, apperrors.NewNotFoundError(fmt.Sprintf("no %s control account for tenant %s", category, tenantID))
	}

	filter := domain.LedgerLineFilter{Categories: []domain.AccountCategory{category}}
	if !asOf.IsZero() {
		asOf = domain.DateOf(asOf)
		filter.To = &asOf
	}
	lines, err := s.postedLines(ctx, tenantID, filter)
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, l := range lines {
		amount, err := accounting.CalculateSignedAmount(l.Debit, l.Credit, l.AccountType)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
		balance = balance.Add(amount)
	}
	return balance, nil
}

// amounts accumulates normal-signed amounts per account.
type amounts struct {
	byAccount map[string]*domain.AccountAmount
	total     decimal.Decimal
}

func newAmounts() *amounts {
	return &amounts{byAccount: map[string]*domain.AccountAmount{}, total: decimal.Zero}
}

func (a *amounts) add(l domain.LedgerLine) {
	amount := accounting.NormalBalance(l.Debit, l.Credit, l.AccountType)
	acc, ok := a.byAccount[l.AccountID]
	if !ok {
		acc = &domain.AccountAmount{AccountID: l.AccountID, AccountCode: l.AccountCode, AccountName: l.AccountName, Amount: decimal.Zero}
		a.byAccount[l.AccountID] = acc
	}
	acc.Amount = acc.Amount.Add(amount)
	a.total = a.total.Add(amount)
}

func (a *amounts) sorted() []domain.AccountAmount {
	out := make([]domain.AccountAmount, 0, len(a.byAccount))
	for _, acc := range a.byAccount {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountCode < out[j].AccountCode })
	return out
}
