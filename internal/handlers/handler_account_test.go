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

func sampleAccount() *domain.Account {
	return &domain.Account{
		AccountID:   "acc-1",
		TenantID:    tenantID,
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		Category:    domain.CategoryCash,
		IsActive:    true,
		Balance:     decimal.NewFromInt(250),
	}
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset, Category: domain.CategoryCash}
	suite.accounts.On("CreateAccount", mock.Anything, tenantID, req, suite.admin).Return(sampleAccount(), nil).Once()

	w := suite.request(http.MethodPost, "/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal("acc-1", resp.AccountID)
	suite.Equal(domain.CategoryCash, resp.Category)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(250)))
}

func (suite *HandlerTestSuite) TestCreateAccount_BindingErrors() {
	cases := map[string]string{
		"malformed json": `{"code":`,
		"missing name":   `{"code":"1000","accountType":"ASSET"}`,
		"bad type":       `{"code":"1000","name":"Cash","accountType":"MONEY"}`,
		"bad category":   `{"code":"1000","name":"Cash","accountType":"ASSET","category":"SAFE"}`,
	}
	for name, body := range cases {
		w := suite.request(http.MethodPost, "/accounts", body)
		suite.Equal(http.StatusBadRequest, w.Code, name)
	}
	suite.accounts.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *HandlerTestSuite) TestCreateAccount_ServiceErrors() {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: account code 1000", apperrors.ErrDuplicate), http.StatusConflict},
		{apperrors.NewValidationError("category CASH is not allowed for EXPENSE"), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: role READONLY cannot modify ledger data", apperrors.ErrForbidden), http.StatusForbidden},
	}
	for _, tc := range cases {
		suite.accounts.On("CreateAccount", mock.Anything, tenantID, mock.Anything, suite.admin).Return(nil, tc.err).Once()
		w := suite.request(http.MethodPost, "/accounts", dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset})
		suite.Equal(tc.status, w.Code, tc.err.Error())
	}
}

func (suite *HandlerTestSuite) TestCreateAccount_InternalErrorIsHidden() {
	suite.accounts.On("CreateAccount", mock.Anything, tenantID, mock.Anything, suite.admin).
		Return(nil, fmt.Errorf("dial tcp 10.0.0.1:5432: connection refused")).Once()

	w := suite.request(http.MethodPost, "/accounts", dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset})

	suite.Equal(http.StatusInternalServerError, w.Code)
	var resp dto.ErrorResponse
	suite.decode(w, &resp)
	suite.Equal("Failed to create account", resp.Error)
}

func (suite *HandlerTestSuite) TestGetAccount() {
	suite.accounts.On("GetAccountByID", mock.Anything, tenantID, "acc-1").Return(sampleAccount(), nil).Once()
	suite.accounts.On("GetAccountByID", mock.Anything, tenantID, "missing").Return(nil, apperrors.NewNotFoundError("account missing")).Once()

	w := suite.request(http.MethodGet, "/accounts/acc-1", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/accounts/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts_ReadOnlyAllowed() {
	suite.accounts.On("ListAccounts", mock.Anything, tenantID).Return([]domain.Account{*sampleAccount()}, nil).Once()

	w := suite.requestAs(suite.generateTestToken(domain.RoleReadOnly, "*"), http.MethodGet, "/accounts", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	suite.decode(w, &resp)
	suite.Len(resp, 1)
}

func (suite *HandlerTestSuite) TestUpdateAccount() {
	name := "Petty cash"
	req := dto.UpdateAccountRequest{Name: &name}
	updated := sampleAccount()
	updated.Name = name
	suite.accounts.On("UpdateAccount", mock.Anything, tenantID, "acc-1", req, suite.admin).Return(updated, nil).Once()
	suite.accounts.On("UpdateAccount", mock.Anything, tenantID, "acc-2", mock.Anything, suite.admin).
		Return(nil, apperrors.NewValidationError("parent acc-1 would create a cycle")).Once()

	w := suite.request(http.MethodPatch, "/accounts/acc-1", req)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal(name, resp.Name)

	parent := "acc-1"
	w = suite.request(http.MethodPatch, "/accounts/acc-2", dto.UpdateAccountRequest{ParentAccountID: &parent})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}
