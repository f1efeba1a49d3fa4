package repositories

// RepositoryProvider bundles the storage backend handed to the service container.
type RepositoryProvider struct {
	Store LedgerStore
	// Subledgers is optional; the service container falls back to an empty registry.
	Subledgers SubledgerSource
}
