package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL LedgerStore. Outside WithinTx every call runs on the pool.
type Store struct {
	txRepositories
	pool *pgxpool.Pool
}

var _ portsrepo.LedgerStore = (*Store)(nil)

// NewStore creates a Store over pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		txRepositories: txRepositories{base: BaseRepository{db: pool}},
		pool:           pool,
	}
}

// WithinTx runs fn in a READ COMMITTED transaction. Consistency of the posting path comes
// from the row locks the repositories take, not from the isolation level.
func (s *Store) WithinTx(ctx context.Context, fn func(tx portsrepo.TxRepositories) error) error {
	fnFailed := false
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		if err := fn(txRepositories{base: BaseRepository{db: tx, inTx: true}}); err != nil {
			fnFailed = true
			return err
		}
		return nil
	})
	if fnFailed {
		return err
	}
	// begin and commit failures
	return translateError(err, "transaction")
}

// NewRepositoryProvider wires the PostgreSQL store and subledger source.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Store:      NewStore(pool),
		Subledgers: newSubledgerSource(pool),
	}
}

type txRepositories struct {
	base BaseRepository
}

func (t txRepositories) Accounts() portsrepo.AccountRepositoryFacade {
	return accountRepository{t.base}
}

func (t txRepositories) Journals() portsrepo.JournalRepositoryFacade {
	return journalRepository{t.base}
}

func (t txRepositories) Periods() portsrepo.FiscalPeriodRepositoryFacade {
	return fiscalPeriodRepository{t.base}
}

func (t txRepositories) Reporting() portsrepo.ReportingRepository {
	return reportingRepository{t.base}
}

func (t txRepositories) Reconciliation() portsrepo.ReconciliationRepositoryFacade {
	return reconciliationRepository{t.base}
}
