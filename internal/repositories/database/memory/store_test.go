package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/repositories/database/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type MemoryStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	now   time.Time
}

func (suite *MemoryStoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.New()
	suite.now = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
}

func (suite *MemoryStoreTestSuite) account(tenantID, code string, t domain.AccountType) domain.Account {
	acc := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    tenantID,
		Code:        code,
		Name:        "Account " + code,
		AccountType: t,
		IsActive:    true,
		AuditFields: domain.NewAuditFields("u1", suite.now),
		Balance:     decimal.Zero,
	}
	suite.Require().NoError(suite.store.Accounts().SaveAccount(suite.ctx, acc))
	return acc
}

func (suite *MemoryStoreTestSuite) draft(tenantID string, lines ...domain.JournalLine) domain.JournalEntry {
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		TenantID:    tenantID,
		EntryDate:   suite.now,
		PostingDate: domain.DateOf(suite.now),
		Description: "test entry",
		AuditFields: domain.NewAuditFields("u1", suite.now),
	}
	suite.Require().NoError(suite.store.Journals().SaveEntry(suite.ctx, entry))
	for i := range lines {
		lines[i].EntryID = entry.EntryID
		lines[i].TenantID = tenantID
		lines[i].LineNumber = i + 1
	}
	if len(lines) > 0 {
		suite.Require().NoError(suite.store.Journals().InsertLines(suite.ctx, lines))
	}
	entry.Lines = lines
	return entry
}

func line(accountID string, debit, credit int64) domain.JournalLine {
	return domain.JournalLine{
		LineID:    uuid.NewString(),
		AccountID: accountID,
		Debit:     decimal.NewFromInt(debit),
		Credit:    decimal.NewFromInt(credit),
	}.WithBaseAmount()
}

func (suite *MemoryStoreTestSuite) TestWithinTx_RollsBackOnError() {
	cash := suite.account("t1", "1000", domain.Asset)

	err := suite.store.WithinTx(suite.ctx, func(tx portsrepo.TxRepositories) error {
		changes := map[string]decimal.Decimal{cash.AccountID: decimal.NewFromInt(500)}
		if err := tx.Accounts().UpdateAccountBalances(suite.ctx, "t1", changes, "u1", suite.now); err != nil {
			return err
		}
		return apperrors.ErrValidation
	})
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	got, err := suite.store.Accounts().FindAccountByID(suite.ctx, "t1", cash.AccountID)
	suite.Require().NoError(err)
	suite.True(got.Balance.IsZero(), "balance change must be rolled back")
}

func (suite *MemoryStoreTestSuite) TestWithinTx_Commits() {
	cash := suite.account("t1", "1000", domain.Asset)

	err := suite.store.WithinTx(suite.ctx, func(tx portsrepo.TxRepositories) error {
		changes := map[string]decimal.Decimal{cash.AccountID: decimal.NewFromInt(500)}
		return tx.Accounts().UpdateAccountBalances(suite.ctx, "t1", changes, "u1", suite.now)
	})
	suite.Require().NoError(err)

	got, err := suite.store.Accounts().FindAccountByID(suite.ctx, "t1", cash.AccountID)
	suite.Require().NoError(err)
	suite.True(got.Balance.Equal(decimal.NewFromInt(500)))
}

func (suite *MemoryStoreTestSuite) TestLockingReads() {
	cash := suite.account("t1", "1000", domain.Asset)

	err := suite.store.WithinTx(suite.ctx, func(tx portsrepo.TxRepositories) error {
		got, err := tx.Accounts().FindAccountByIDForUpdate(suite.ctx, "t1", cash.AccountID)
		suite.Require().NoError(err)
		suite.Equal(cash.Code, got.Code)

		_, err = tx.Accounts().FindAccountByIDForUpdate(suite.ctx, "t2", cash.AccountID)
		suite.ErrorIs(err, apperrors.ErrNotFound)

		shared, err := tx.Accounts().FindAccountsByIDsForShare(suite.ctx, "t1", []string{cash.AccountID, "missing"})
		suite.Require().NoError(err)
		suite.Len(shared, 1)
		suite.Contains(shared, cash.AccountID)
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *MemoryStoreTestSuite) TestTenantIsolation() {
	cash := suite.account("t1", "1000", domain.Asset)
	suite.account("t2", "1000", domain.Asset)

	_, err := suite.store.Accounts().FindAccountByID(suite.ctx, "t2", cash.AccountID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	entry := suite.draft("t1")
	_, err = suite.store.Journals().FindEntryByID(suite.ctx, "t2", entry.EntryID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	tenants, err := suite.store.Accounts().ListTenantIDs(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal([]string{"t1", "t2"}, tenants)
}

func (suite *MemoryStoreTestSuite) TestSaveAccount_DuplicateCode() {
	suite.account("t1", "1000", domain.Asset)
	dup := domain.Account{AccountID: uuid.NewString(), TenantID: "t1", Code: "1000", Name: "dup", AccountType: domain.Asset}
	err := suite.store.Accounts().SaveAccount(suite.ctx, dup)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *MemoryStoreTestSuite) TestMarkPosted_DuplicateNumber() {
	cash := suite.account("t1", "1000", domain.Asset)
	equity := suite.account("t1", "3000", domain.Equity)
	first := suite.draft("t1", line(cash.AccountID, 10, 0), line(equity.AccountID, 0, 10))
	second := suite.draft("t1", line(cash.AccountID, 10, 0), line(equity.AccountID, 0, 10))

	journals := suite.store.Journals()
	seq, err := journals.NextEntrySequence(suite.ctx, "t1", 2026)
	suite.Require().NoError(err)
	suite.Equal(int64(1), seq)

	suite.Require().NoError(journals.MarkPosted(suite.ctx, "t1", first.EntryID, "JE-2026-000001", "u1", suite.now))
	err = journals.MarkPosted(suite.ctx, "t1", second.EntryID, "JE-2026-000001", "u1", suite.now)
	suite.ErrorIs(err, apperrors.ErrDuplicateNumber)

	seq, err = journals.NextEntrySequence(suite.ctx, "t1", 2026)
	suite.Require().NoError(err)
	suite.Equal(int64(2), seq)

	seq, err = journals.NextEntrySequence(suite.ctx, "t1", 2027)
	suite.Require().NoError(err)
	suite.Equal(int64(1), seq, "sequences restart per year")
}

func (suite *MemoryStoreTestSuite) TestListEntries_Paginates() {
	for i := 0; i < 5; i++ {
		suite.draft("t1")
	}
	journals := suite.store.Journals()

	page, token, err := journals.ListEntries(suite.ctx, "t1", portsrepo.EntryListFilter{Limit: 3})
	suite.Require().NoError(err)
	suite.Len(page, 3)
	suite.Require().NotNil(token)

	rest, token, err := journals.ListEntries(suite.ctx, "t1", portsrepo.EntryListFilter{Limit: 3, NextToken: token})
	suite.Require().NoError(err)
	suite.Len(rest, 2)
	suite.Nil(token)

	seen := map[string]bool{}
	for _, e := range append(page, rest...) {
		suite.False(seen[e.EntryID], "entry returned twice")
		seen[e.EntryID] = true
	}

	bad := "not-a-token!"
	_, _, err = journals.ListEntries(suite.ctx, "t1", portsrepo.EntryListFilter{NextToken: &bad})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MemoryStoreTestSuite) TestDeleteLines_UnknownLine() {
	cash := suite.account("t1", "1000", domain.Asset)
	entry := suite.draft("t1", line(cash.AccountID, 10, 0))
	err := suite.store.Journals().DeleteLines(suite.ctx, "t1", entry.EntryID, []string{uuid.NewString()})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MemoryStoreTestSuite) TestSoftDeletedEntryIsHidden() {
	entry := suite.draft("t1")
	suite.Require().NoError(suite.store.Journals().SoftDeleteEntry(suite.ctx, "t1", entry.EntryID, "u1", suite.now))
	_, err := suite.store.Journals().FindEntryByID(suite.ctx, "t1", entry.EntryID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MemoryStoreTestSuite) TestListPostedLines_ExcludesDraftsAndReversals() {
	cash := suite.account("t1", "1000", domain.Asset)
	revenue := suite.account("t1", "4000", domain.Revenue)
	posted := suite.draft("t1", line(cash.AccountID, 10, 0), line(revenue.AccountID, 0, 10))
	suite.draft("t1", line(cash.AccountID, 99, 0), line(revenue.AccountID, 0, 99))

	journals := suite.store.Journals()
	suite.Require().NoError(journals.MarkPosted(suite.ctx, "t1", posted.EntryID, "JE-2026-000001", "u1", suite.now))

	lines, err := suite.store.Reporting().ListPostedLines(suite.ctx, "t1", domain.LedgerLineFilter{})
	suite.Require().NoError(err)
	suite.Len(lines, 2)

	onlyRevenue, err := suite.store.Reporting().ListPostedLines(suite.ctx, "t1", domain.LedgerLineFilter{AccountTypes: []domain.AccountType{domain.Revenue}})
	suite.Require().NoError(err)
	suite.Require().Len(onlyRevenue, 1)
	suite.Equal("4000", onlyRevenue[0].AccountCode)

	suite.Require().NoError(journals.MarkReversed(suite.ctx, "t1", posted.EntryID, uuid.NewString(), "u1", suite.now))
	lines, err = suite.store.Reporting().ListPostedLines(suite.ctx, "t1", domain.LedgerLineFilter{})
	suite.Require().NoError(err)
	suite.Empty(lines)
}

func (suite *MemoryStoreTestSuite) TestResolveAlert_Twice() {
	alert := domain.Alert{AlertID: uuid.NewString(), TenantID: "t1", RunID: "r1", CheckType: "ar_mismatch", Severity: domain.SeverityMedium, CreatedAt: suite.now}
	repo := suite.store.Reconciliation()
	suite.Require().NoError(repo.SaveAlerts(suite.ctx, []domain.Alert{alert}))

	count, err := repo.CountOpenAlerts(suite.ctx, "t1")
	suite.Require().NoError(err)
	suite.Equal(1, count)

	suite.Require().NoError(repo.ResolveAlert(suite.ctx, "t1", alert.AlertID, "u1", "fixed", suite.now))
	err = repo.ResolveAlert(suite.ctx, "t1", alert.AlertID, "u1", "again", suite.now)
	suite.ErrorIs(err, apperrors.ErrConflict)

	open, err := repo.ListAlerts(suite.ctx, "t1", true)
	suite.Require().NoError(err)
	suite.Empty(open)
}

func TestMemoryStoreTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}
