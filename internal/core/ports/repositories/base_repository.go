package repositories

import "context"

// TxRepositories exposes the repositories bound to one storage transaction.
// Outside WithinTx the same accessors run each call in its own implicit transaction.
type TxRepositories interface {
	Accounts() AccountRepositoryFacade
	Journals() JournalRepositoryFacade
	Periods() FiscalPeriodRepositoryFacade
	Reporting() ReportingRepository
	Reconciliation() ReconciliationRepositoryFacade
}

// Transactor runs fn inside a single storage transaction. The transaction commits when fn
// returns nil and rolls back otherwise. Row locks taken through the tx repositories are held
// until fn returns.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx TxRepositories) error) error
}

// LedgerStore is the persistence port used by every service.
type LedgerStore interface {
	TxRepositories
	Transactor
}
