package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID))
}
func (m *MockJournalService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockJournalService) CreateDraftEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, req, actor))
}
func (m *MockJournalService) UpdateDraft(ctx context.Context, tenantID, entryID string, req dto.UpdateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID, req, actor))
}
func (m *MockJournalService) DeleteDraft(ctx context.Context, tenantID, entryID string, actor domain.Actor) error {
	return m.Called(ctx, tenantID, entryID, actor).Error(0)
}
func (m *MockJournalService) AddLine(ctx context.Context, tenantID, entryID string, line dto.LineInput, actor domain.Actor) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID, line, actor))
}
func (m *MockJournalService) AddLines(ctx context.Context, tenantID, entryID string, lines []dto.LineInput, actor domain.Actor) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID, lines, actor))
}
func (m *MockJournalService) RemoveLine(ctx context.Context, tenantID, entryID, lineID string, actor domain.Actor) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID, lineID, actor))
}
func (m *MockJournalService) RemoveLines(ctx context.Context, tenantID, entryID string, lineIDs []string, actor domain.Actor) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID, lineIDs, actor))
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) Post(ctx context.Context, tenantID, entryID string, actor domain.Actor) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) Reverse(ctx context.Context, tenantID, entryID string, req dto.ReverseEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.PostingService = (*MockPostingService)(nil)

// --- Mock FiscalService ---
type MockFiscalService struct {
	mock.Mock
}

func (m *MockFiscalService) period(args mock.Arguments) (*domain.FiscalPeriod, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalService) IsLocked(ctx context.Context, tenantID string, date time.Time) (bool, error) {
	args := m.Called(ctx, tenantID, date)
	return args.Bool(0), args.Error(1)
}
func (m *MockFiscalService) CreatePeriod(ctx context.Context, tenantID string, req dto.CreatePeriodRequest, actor domain.Actor) (*domain.FiscalPeriod, error) {
	return m.period(m.Called(ctx, tenantID, req, actor))
}
func (m *MockFiscalService) ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}
func (m *MockFiscalService) ClosePeriod(ctx context.Context, tenantID, periodID string, actor domain.Actor) (*domain.FiscalPeriod, error) {
	return m.period(m.Called(ctx, tenantID, periodID, actor))
}
func (m *MockFiscalService) ReopenPeriod(ctx context.Context, tenantID, periodID string, actor domain.Actor) (*domain.FiscalPeriod, error) {
	return m.period(m.Called(ctx, tenantID, periodID, actor))
}
func (m *MockFiscalService) LockPeriod(ctx context.Context, tenantID, periodID string, actor domain.Actor) (*domain.FiscalPeriod, error) {
	return m.period(m.Called(ctx, tenantID, periodID, actor))
}

var _ portssvc.FiscalSvcFacade = (*MockFiscalService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetTrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockReportingService) GetProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitAndLoss, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitAndLoss), args.Error(1)
}
func (m *MockReportingService) GetCashPosition(ctx context.Context, tenantID string, asOf time.Time) (*domain.CashPosition, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashPosition), args.Error(1)
}
func (m *MockReportingService) GetARAging(ctx context.Context, tenantID string, asOf time.Time) (*domain.AgingReport, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgingReport), args.Error(1)
}
func (m *MockReportingService) GetAPAging(ctx context.Context, tenantID string, asOf time.Time) (*domain.AgingReport, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgingReport), args.Error(1)
}
func (m *MockReportingService) GetControlBalance(ctx context.Context, tenantID string, category domain.AccountCategory, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, category, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Reconcile(ctx context.Context, tenantID string, actor domain.Actor) ([]domain.CheckResult, error) {
	args := m.Called(ctx, tenantID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CheckResult), args.Error(1)
}
func (m *MockReconciliationService) GetLatestReconciliationStatus(ctx context.Context, tenantID string) (*domain.ReconciliationSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationSummary), args.Error(1)
}
func (m *MockReconciliationService) ListAlerts(ctx context.Context, tenantID string, openOnly bool) ([]domain.Alert, error) {
	args := m.Called(ctx, tenantID, openOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}
func (m *MockReconciliationService) ResolveAlert(ctx context.Context, tenantID, alertID, notes string, actor domain.Actor) (*domain.Alert, error) {
	args := m.Called(ctx, tenantID, alertID, notes, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)
