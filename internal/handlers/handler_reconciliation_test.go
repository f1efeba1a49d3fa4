package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestRunReconciliation() {
	medium, alertID := domain.SeverityMedium, "alert-1"
	suite.reconciliation.On("Reconcile", mock.Anything, tenantID, suite.admin).Return([]domain.CheckResult{
		{
			CheckType: "ar_mismatch",
			Expected:  decimal.RequireFromString("1335.00"),
			Actual:    decimal.RequireFromString("1285.00"),
			Variance:  decimal.RequireFromString("50.00"),
			Status:    domain.RunMismatch,
			Severity:  &medium,
			AlertID:   &alertID,
		},
		{CheckType: "ap_mismatch", Status: domain.RunBalanced},
	}, nil).Once()

	w := suite.request(http.MethodPost, "/reconciliation/runs", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ReconcileResponse
	suite.decode(w, &resp)
	suite.Equal(string(domain.RunMismatch), resp.Status)
	suite.Require().Len(resp.Checks, 2)
	suite.True(resp.Checks[0].Variance.Equal(decimal.NewFromInt(50)))
}

func (suite *HandlerTestSuite) TestRunReconciliation_MissingControlAccount() {
	suite.reconciliation.On("Reconcile", mock.Anything, tenantID, suite.admin).
		Return(nil, apperrors.NewNotFoundError("no PAYABLE control account for tenant tenant-a")).Once()

	w := suite.request(http.MethodPost, "/reconciliation/runs", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestReconciliationStatus() {
	suite.reconciliation.On("GetLatestReconciliationStatus", mock.Anything, tenantID).
		Return(&domain.ReconciliationSummary{TenantID: tenantID, Status: "never_run"}, nil).Once()

	w := suite.requestAs(suite.generateTestToken(domain.RoleReadOnly, tenantID), http.MethodGet, "/reconciliation/status", nil)
	suite.Equal(http.StatusOK, w.Code)
	var summary domain.ReconciliationSummary
	suite.decode(w, &summary)
	suite.Equal("never_run", summary.Status)
}

func (suite *HandlerTestSuite) TestListAlerts() {
	suite.reconciliation.On("ListAlerts", mock.Anything, tenantID, true).Return([]domain.Alert{{AlertID: "a-1"}}, nil).Once()
	suite.reconciliation.On("ListAlerts", mock.Anything, tenantID, false).Return([]domain.Alert{{AlertID: "a-1"}, {AlertID: "a-0"}}, nil).Once()

	w := suite.request(http.MethodGet, "/alerts", nil)
	suite.Equal(http.StatusOK, w.Code)
	var open []domain.Alert
	suite.decode(w, &open)
	suite.Len(open, 1)

	w = suite.request(http.MethodGet, "/alerts?status=all", nil)
	suite.Equal(http.StatusOK, w.Code)
	var all []domain.Alert
	suite.decode(w, &all)
	suite.Len(all, 2)

	w = suite.request(http.MethodGet, "/alerts?status=closed", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestResolveAlert() {
	notes := "credit memo CM-7 posted"
	resolved := &domain.Alert{AlertID: "a-1", TenantID: tenantID, ResolutionNotes: &notes}
	suite.reconciliation.On("ResolveAlert", mock.Anything, tenantID, "a-1", notes, suite.admin).Return(resolved, nil).Once()
	suite.reconciliation.On("ResolveAlert", mock.Anything, tenantID, "a-2", notes, suite.admin).
		Return(nil, fmt.Errorf("%w: alert a-2 is already resolved", apperrors.ErrConflict)).Once()

	w := suite.request(http.MethodPost, "/alerts/a-1/resolve", dto.ResolveAlertRequest{Notes: notes})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/alerts/a-2/resolve", dto.ResolveAlertRequest{Notes: notes})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodPost, "/alerts/a-3/resolve", `{}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}
