package services_test

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/core/subledger"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// ledgerSuite wires every service to a fresh in-memory store.
type ledgerSuite struct {
	suite.Suite
	ctx        context.Context
	store      *memory.Store
	subledgers *subledger.StaticSource
	svc        *portssvc.ServiceContainer
	tenantID   string
	actor      domain.Actor
	admin      domain.Actor
	now        time.Time
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.subledgers = subledger.NewStaticSource()
	s.now = time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
	s.tenantID = "tenant-a"
	s.actor = domain.Actor{UserID: "user-1", Role: domain.RoleAccountant}
	s.admin = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	s.svc = services.NewServiceContainer(nil,
		portsrepo.RepositoryProvider{Store: s.store, Subledgers: s.subledgers},
		services.WithClock(func() time.Time { return s.now }),
		services.WithLogger(slog.New(slog.DiscardHandler)),
	)
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func date(v string) time.Time {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		panic(err)
	}
	return t
}

func dr(accountID, amount string) dto.LineInput {
	return dto.LineInput{AccountID: accountID, Debit: d(amount), Credit: decimal.Zero}
}

func cr(accountID, amount string) dto.LineInput {
	return dto.LineInput{AccountID: accountID, Debit: decimal.Zero, Credit: d(amount)}
}

func (s *ledgerSuite) account(code string, t domain.AccountType, category domain.AccountCategory) *domain.Account {
	return s.accountFor(s.tenantID, code, t, category)
}

func (s *ledgerSuite) accountFor(tenantID, code string, t domain.AccountType, category domain.AccountCategory) *domain.Account {
	acc, err := s.svc.Account.CreateAccount(s.ctx, tenantID, dto.CreateAccountRequest{
		Code:        code,
		Name:        "Account " + code,
		AccountType: t,
		Category:    category,
	}, s.actor)
	s.Require().NoError(err)
	return acc
}

func (s *ledgerSuite) draft(date string, lines ...dto.LineInput) *domain.JournalEntry {
	entry, err := s.svc.Journal.CreateDraftEntry(s.ctx, s.tenantID, dto.CreateEntryRequest{
		EntryDate:   date,
		Description: "entry of " + date,
		Lines:       lines,
	}, s.actor)
	s.Require().NoError(err)
	return entry
}

func (s *ledgerSuite) post(entryID string) *domain.JournalEntry {
	entry, err := s.svc.Posting.Post(s.ctx, s.tenantID, entryID, s.actor)
	s.Require().NoError(err)
	return entry
}

// book drafts and posts a two-line entry.
func (s *ledgerSuite) book(date, debitAccountID, creditAccountID, amount string) *domain.JournalEntry {
	entry := s.draft(date, dr(debitAccountID, amount), cr(creditAccountID, amount))
	return s.post(entry.EntryID)
}

func (s *ledgerSuite) balanceOf(accountID string) decimal.Decimal {
	acc, err := s.svc.Account.GetAccountByID(s.ctx, s.tenantID, accountID)
	s.Require().NoError(err)
	return acc.Balance
}

func (s *ledgerSuite) period(year, number int, start, end string) *domain.FiscalPeriod {
	p, err := s.svc.Fiscal.CreatePeriod(s.ctx, s.tenantID, dto.CreatePeriodRequest{
		Year:         year,
		PeriodNumber: number,
		StartDate:    start,
		EndDate:      end,
	}, s.actor)
	s.Require().NoError(err)
	return p
}

func (s *ledgerSuite) decEqual(expected string, actual decimal.Decimal, msgAndArgs ...any) {
	s.Truef(d(expected).Equal(actual), "expected %s, got %s %v", expected, actual.String(), msgAndArgs)
}
