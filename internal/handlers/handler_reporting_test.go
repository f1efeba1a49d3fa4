package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestTrialBalance() {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	tb := &domain.TrialBalance{
		TenantID: tenantID,
		AsOf:     asOf,
		Rows: []domain.TrialBalanceRow{
			{AccountID: "cash", AccountCode: "1000", AccountType: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero, Balance: decimal.NewFromInt(500)},
			{AccountID: "eq", AccountCode: "3000", AccountType: domain.Equity, Debit: decimal.Zero, Credit: decimal.NewFromInt(500), Balance: decimal.NewFromInt(500)},
		},
		TotalDebit:  decimal.NewFromInt(500),
		TotalCredit: decimal.NewFromInt(500),
	}
	suite.reporting.On("GetTrialBalance", mock.Anything, tenantID, asOf).Return(tb, nil).Once()

	w := suite.request(http.MethodGet, "/reports/trial-balance?asOf=2026-06-30", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.decode(w, &resp)
	suite.True(resp.IsBalanced)
	suite.Len(resp.Rows, 2)
	suite.Equal("2026-06-30", resp.AsOf)

	w = suite.request(http.MethodGet, "/reports/trial-balance?asOf=30-06-2026", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestTrialBalance_DefaultsToToday() {
	suite.reporting.On("GetTrialBalance", mock.Anything, tenantID, mock.MatchedBy(func(asOf time.Time) bool {
		return time.Since(asOf) >= 0 && time.Since(asOf) < 24*time.Hour
	})).Return(&domain.TrialBalance{TenantID: tenantID, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}, nil).Once()

	w := suite.request(http.MethodGet, "/reports/trial-balance", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestProfitAndLoss() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.reporting.On("GetProfitAndLoss", mock.Anything, tenantID, from, to).Return(&domain.ProfitAndLoss{
		TenantID:      tenantID,
		From:          from,
		To:            to,
		TotalRevenue:  decimal.NewFromInt(1100),
		TotalCOGS:     decimal.NewFromInt(250),
		TotalExpenses: decimal.NewFromInt(150),
		GrossProfit:   decimal.NewFromInt(850),
		NetProfit:     decimal.NewFromInt(700),
	}, nil).Once()
	suite.reporting.On("GetProfitAndLoss", mock.Anything, tenantID, to, from).
		Return(nil, apperrors.NewValidationError("to date is before from date")).Once()

	w := suite.request(http.MethodGet, "/reports/profit-and-loss?from=2026-01-01&to=2026-06-30", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProfitAndLossResponse
	suite.decode(w, &resp)
	suite.True(resp.NetProfit.Equal(decimal.NewFromInt(700)))

	w = suite.request(http.MethodGet, "/reports/profit-and-loss?from=2026-06-30&to=2026-01-01", nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	w = suite.request(http.MethodGet, "/reports/profit-and-loss?from=2026-01-01", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCashPositionAndAging() {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.reporting.On("GetCashPosition", mock.Anything, tenantID, asOf).
		Return(&domain.CashPosition{TenantID: tenantID, AsOf: asOf, Total: decimal.NewFromInt(850)}, nil).Once()
	suite.reporting.On("GetARAging", mock.Anything, tenantID, asOf).Return(&domain.AgingReport{
		TenantID: tenantID,
		Kind:     domain.AgingReceivables,
		AsOf:     asOf,
		Totals:   domain.AgingRow{Current: decimal.NewFromInt(200), Over90: decimal.NewFromInt(500)},
	}, nil).Once()
	suite.reporting.On("GetAPAging", mock.Anything, tenantID, asOf).Return(&domain.AgingReport{
		TenantID: tenantID,
		Kind:     domain.AgingPayables,
		AsOf:     asOf,
	}, nil).Once()

	w := suite.request(http.MethodGet, "/reports/cash-position?asOf=2026-06-30", nil)
	suite.Equal(http.StatusOK, w.Code)
	var cash dto.CashPositionResponse
	suite.decode(w, &cash)
	suite.True(cash.Total.Equal(decimal.NewFromInt(850)))

	w = suite.request(http.MethodGet, "/reports/ar-aging?asOf=2026-06-30", nil)
	suite.Equal(http.StatusOK, w.Code)
	var ar dto.AgingReportResponse
	suite.decode(w, &ar)
	suite.Equal(domain.AgingReceivables, ar.Kind)
	suite.True(ar.Totals.Over90.Equal(decimal.NewFromInt(500)))

	w = suite.request(http.MethodGet, "/reports/ap-aging?asOf=2026-06-30", nil)
	suite.Equal(http.StatusOK, w.Code)
}
