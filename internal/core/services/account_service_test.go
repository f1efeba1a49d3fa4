package services_test

import (
	"testing"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	ledgerSuite
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	acc := suite.account("1000", domain.Asset, domain.CategoryCash)

	suite.NotEmpty(acc.AccountID)
	suite.Equal(suite.tenantID, acc.TenantID)
	suite.Equal("1000", acc.Code)
	suite.True(acc.IsActive)
	suite.True(acc.Balance.IsZero())
	suite.Equal(suite.actor.UserID, acc.CreatedBy)
	suite.Equal(suite.now, acc.CreatedAt)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	suite.account("1000", domain.Asset, domain.CategoryNone)

	_, err := suite.svc.Account.CreateAccount(suite.ctx, suite.tenantID, dto.CreateAccountRequest{
		Code: "1000", Name: "Again", AccountType: domain.Asset,
	}, suite.actor)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	// Codes are unique per tenant only.
	other := suite.accountFor("tenant-b", "1000", domain.Asset, domain.CategoryNone)
	suite.Equal("tenant-b", other.TenantID)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidCategory() {
	_, err := suite.svc.Account.CreateAccount(suite.ctx, suite.tenantID, dto.CreateAccountRequest{
		Code: "2000", Name: "Payables", AccountType: domain.Asset, Category: domain.CategoryPayable,
	}, suite.actor)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ReadOnlyForbidden() {
	_, err := suite.svc.Account.CreateAccount(suite.ctx, suite.tenantID, dto.CreateAccountRequest{
		Code: "1000", Name: "Cash", AccountType: domain.Asset,
	}, domain.Actor{UserID: "viewer", Role: domain.RoleReadOnly})
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentInOtherTenant() {
	foreign := suite.accountFor("tenant-b", "1000", domain.Asset, domain.CategoryNone)

	_, err := suite.svc.Account.CreateAccount(suite.ctx, suite.tenantID, dto.CreateAccountRequest{
		Code: "1100", Name: "Child", AccountType: domain.Asset, ParentAccountID: &foreign.AccountID,
	}, suite.actor)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RejectsCycle() {
	root := suite.account("1000", domain.Asset, domain.CategoryNone)
	child, err := suite.svc.Account.CreateAccount(suite.ctx, suite.tenantID, dto.CreateAccountRequest{
		Code: "1100", Name: "Child", AccountType: domain.Asset, ParentAccountID: &root.AccountID,
	}, suite.actor)
	suite.Require().NoError(err)
	grandchild, err := suite.svc.Account.CreateAccount(suite.ctx, suite.tenantID, dto.CreateAccountRequest{
		Code: "1110", Name: "Grandchild", AccountType: domain.Asset, ParentAccountID: &child.AccountID,
	}, suite.actor)
	suite.Require().NoError(err)

	_, err = suite.svc.Account.UpdateAccount(suite.ctx, suite.tenantID, root.AccountID, dto.UpdateAccountRequest{
		ParentAccountID: &grandchild.AccountID,
	}, suite.actor)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Account.UpdateAccount(suite.ctx, suite.tenantID, root.AccountID, dto.UpdateAccountRequest{
		ParentAccountID: &root.AccountID,
	}, suite.actor)
	suite.ErrorIs(err, apperrors.ErrValidation)

	detach := ""
	updated, err := suite.svc.Account.UpdateAccount(suite.ctx, suite.tenantID, grandchild.AccountID, dto.UpdateAccountRequest{
		ParentAccountID: &detach,
	}, suite.actor)
	suite.Require().NoError(err)
	suite.Nil(updated.ParentAccountID)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeImmutableOnceUsed() {
	cash := suite.account("1000", domain.Asset, domain.CategoryNone)
	equity := suite.account("3000", domain.Equity, domain.CategoryNone)
	unused := suite.account("5000", domain.Expense, domain.CategoryNone)
	suite.draft("2026-06-01", dr(cash.AccountID, "10"), cr(equity.AccountID, "10"))

	liability := domain.Liability
	_, err := suite.svc.Account.UpdateAccount(suite.ctx, suite.tenantID, cash.AccountID, dto.UpdateAccountRequest{AccountType: &liability}, suite.actor)
	suite.ErrorIs(err, apperrors.ErrValidation)

	updated, err := suite.svc.Account.UpdateAccount(suite.ctx, suite.tenantID, unused.AccountID, dto.UpdateAccountRequest{AccountType: &liability}, suite.actor)
	suite.Require().NoError(err)
	suite.Equal(domain.Liability, updated.AccountType)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_KeepsBalance() {
	cash := suite.account("1000", domain.Asset, domain.CategoryNone)
	equity := suite.account("3000", domain.Equity, domain.CategoryNone)
	suite.book("2026-06-01", cash.AccountID, equity.AccountID, "250")

	name := "Petty cash"
	updated, err := suite.svc.Account.UpdateAccount(suite.ctx, suite.tenantID, cash.AccountID, dto.UpdateAccountRequest{Name: &name}, suite.actor)
	suite.Require().NoError(err)
	suite.Equal(name, updated.Name)
	suite.decEqual("250", suite.balanceOf(cash.AccountID))
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_OtherTenantNotFound() {
	acc := suite.account("1000", domain.Asset, domain.CategoryNone)
	_, err := suite.svc.Account.GetAccountByID(suite.ctx, "tenant-b", acc.AccountID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_OrderedByCode() {
	suite.account("3000", domain.Equity, domain.CategoryNone)
	suite.account("1000", domain.Asset, domain.CategoryNone)

	accounts, err := suite.svc.Account.ListAccounts(suite.ctx, suite.tenantID)
	suite.Require().NoError(err)
	suite.Require().Len(accounts, 2)
	suite.Equal("1000", accounts[0].Code)

	empty, err := suite.svc.Account.ListAccounts(suite.ctx, "tenant-empty")
	suite.Require().NoError(err)
	suite.NotNil(empty)
	suite.Empty(empty)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
