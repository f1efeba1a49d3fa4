package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/stretchr/testify/mock"
)

func samplePeriod(status domain.PeriodStatus) *domain.FiscalPeriod {
	return &domain.FiscalPeriod{
		PeriodID:     "p-1",
		TenantID:     tenantID,
		Name:         "FY2026-P01",
		Year:         2026,
		PeriodNumber: 1,
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
}

func (suite *HandlerTestSuite) TestCreateAndListPeriods() {
	req := dto.CreatePeriodRequest{Year: 2026, PeriodNumber: 1, StartDate: "2026-01-01", EndDate: "2026-01-31"}
	suite.fiscal.On("CreatePeriod", mock.Anything, tenantID, req, suite.admin).Return(samplePeriod(domain.PeriodOpen), nil).Once()
	suite.fiscal.On("ListPeriods", mock.Anything, tenantID).Return([]domain.FiscalPeriod{*samplePeriod(domain.PeriodOpen)}, nil).Once()

	w := suite.request(http.MethodPost, "/periods", req)
	suite.Equal(http.StatusCreated, w.Code)
	var created dto.PeriodResponse
	suite.decode(w, &created)
	suite.Equal("FY2026-P01", created.Name)
	suite.Equal("2026-01-31", created.EndDate)

	w = suite.request(http.MethodPost, "/periods", `{"year":2026,"periodNumber":13,"startDate":"2026-01-01","endDate":"2026-01-31"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, "/periods", nil)
	suite.Equal(http.StatusOK, w.Code)
	var list []dto.PeriodResponse
	suite.decode(w, &list)
	suite.Len(list, 1)
}

func (suite *HandlerTestSuite) TestIsLocked() {
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	suite.fiscal.On("IsLocked", mock.Anything, tenantID, day).Return(true, nil).Once()

	w := suite.request(http.MethodGet, "/periods/locked?date=2026-01-15", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PeriodLockResponse
	suite.decode(w, &resp)
	suite.True(resp.Locked)
	suite.Equal("2026-01-15", resp.Date)

	w = suite.request(http.MethodGet, "/periods/locked?date=yesterday", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	w = suite.request(http.MethodGet, "/periods/locked", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestPeriodTransitions() {
	suite.fiscal.On("ClosePeriod", mock.Anything, tenantID, "p-1", suite.admin).Return(samplePeriod(domain.PeriodClosed), nil).Once()
	suite.fiscal.On("ReopenPeriod", mock.Anything, tenantID, "p-2", suite.admin).
		Return(nil, apperrors.NewPeriodLockedError(tenantID, "2025-12-01")).Once()
	suite.fiscal.On("LockPeriod", mock.Anything, tenantID, "p-3", suite.admin).
		Return(nil, apperrors.NewValidationError("only CLOSED periods can be locked")).Once()

	w := suite.request(http.MethodPost, "/periods/p-1/close", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PeriodResponse
	suite.decode(w, &resp)
	suite.Equal(domain.PeriodClosed, resp.Status)

	w = suite.request(http.MethodPost, "/periods/p-2/reopen", nil)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodPost, "/periods/p-3/lock", nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestPeriodTransitions_AccountantForbidden() {
	accountant := domain.Actor{UserID: userID, Role: domain.RoleAccountant}
	suite.fiscal.On("LockPeriod", mock.Anything, tenantID, "p-1", accountant).
		Return(nil, fmt.Errorf("%w: role ACCOUNTANT is not privileged", apperrors.ErrForbidden)).Once()

	w := suite.requestAs(suite.generateTestToken(domain.RoleAccountant, tenantID), http.MethodPost, "/periods/p-1/lock", nil)
	suite.Equal(http.StatusForbidden, w.Code)
}
