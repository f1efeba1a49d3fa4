// Package memory is an in-process LedgerStore. A transaction holds the store mutex for
// its whole duration and restores a snapshot when it fails, so transactions are serializable.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
)

type state struct {
	accounts map[string]domain.Account
	entries  map[string]domain.JournalEntry
	periods  map[string]domain.FiscalPeriod
	runs     []domain.ReconciliationRun
	alerts   []domain.Alert
}

func newState() *state {
	return &state{
		accounts: make(map[string]domain.Account),
		entries:  make(map[string]domain.JournalEntry),
		periods:  make(map[string]domain.FiscalPeriod),
	}
}

// clone copies everything a transaction can mutate. Pointer fields of the domain types are
// never written through, so copying the structs is enough.
func (s *state) clone() *state {
	c := &state{
		accounts: make(map[string]domain.Account, len(s.accounts)),
		entries:  make(map[string]domain.JournalEntry, len(s.entries)),
		periods:  make(map[string]domain.FiscalPeriod, len(s.periods)),
		runs:     slices.Clone(s.runs),
		alerts:   slices.Clone(s.alerts),
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.entries {
		v.Lines = slices.Clone(v.Lines)
		c.entries[k] = v
	}
	for k, v := range s.periods {
		c.periods[k] = v
	}
	return c
}

// Store is the in-memory LedgerStore.
type Store struct {
	mu sync.Mutex
	st *state
}

// New creates an empty store.
func New() *Store {
	return &Store{st: newState()}
}

var _ portsrepo.LedgerStore = (*Store)(nil)

// WithinTx runs fn with exclusive access to the store and rolls back on error.
func (s *Store) WithinTx(ctx context.Context, fn func(tx portsrepo.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(repos{store: s, inTx: true}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) Accounts() portsrepo.AccountRepositoryFacade { return repos{store: s}.Accounts() }
func (s *Store) Journals() portsrepo.JournalRepositoryFacade { return repos{store: s}.Journals() }
func (s *Store) Periods() portsrepo.FiscalPeriodRepositoryFacade {
	return repos{store: s}.Periods()
}
func (s *Store) Reporting() portsrepo.ReportingRepository { return repos{store: s}.Reporting() }
func (s *Store) Reconciliation() portsrepo.ReconciliationRepositoryFacade {
	return repos{store: s}.Reconciliation()
}

// repos binds the repositories either to a running transaction or to auto-locking calls.
type repos struct {
	store *Store
	inTx  bool
}

func (r repos) Accounts() portsrepo.AccountRepositoryFacade { return accountRepo{r} }
func (r repos) Journals() portsrepo.JournalRepositoryFacade { return journalRepo{r} }
func (r repos) Periods() portsrepo.FiscalPeriodRepositoryFacade { return periodRepo{r} }
func (r repos) Reporting() portsrepo.ReportingRepository { return reportingRepo{r} }
func (r repos) Reconciliation() portsrepo.ReconciliationRepositoryFacade { return reconciliationRepo{r} }

// with runs fn against the live state, taking the store lock unless a transaction holds it.
func (r repos) with(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	return fn(r.store.st)
}
