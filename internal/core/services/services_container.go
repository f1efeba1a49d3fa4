package services

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/subledger"
	"github.com/SscSPs/ledger_core/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// A nil cfg uses the default retry attempts and reconciliation thresholds.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	retryAttempts := DefaultPostRetryAttempts
	thresholds := DefaultThresholds()
	if cfg != nil {
		retryAttempts = cfg.PostRetryAttempts
		thresholds = Thresholds{
			Epsilon:  cfg.Reconciliation.Epsilon,
			High:     cfg.Reconciliation.HighThreshold,
			Critical: cfg.Reconciliation.CriticalThreshold,
		}
	}

	var registry *subledger.Registry
	if repos.Subledgers != nil {
		registry = subledger.FromSource(repos.Subledgers)
	}

	container := &portssvc.ServiceContainer{}
	container.Account = NewAccountService(repos.Store, options...)
	container.Fiscal = NewFiscalService(repos.Store, options...)
	container.Journal = NewJournalService(repos.Store, options...)
	container.Posting = NewPostingService(repos.Store, retryAttempts, options...)
	container.Reporting = NewReportingService(repos.Store, options...)
	// Reconciliation reads control balances through the reporting views.
	container.Reconciliation = NewReconciliationService(repos.Store, container.Reporting, registry, thresholds, options...)

	return container
}
