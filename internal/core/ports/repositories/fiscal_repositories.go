package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// FiscalPeriodReader defines read operations for fiscal periods.
type FiscalPeriodReader interface {
	FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodCoveringDate returns the period containing date or apperrors.ErrNotFound.
	// Inside a transaction the row is share-locked so it cannot transition concurrently.
	FindPeriodCoveringDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)

	// FindOverlappingPeriods returns periods intersecting [start, end].
	FindOverlappingPeriods(ctx context.Context, tenantID string, start, end time.Time) ([]domain.FiscalPeriod, error)

	ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error)
}

// FiscalPeriodWriter defines write operations for fiscal periods.
type FiscalPeriodWriter interface {
	// FindPeriodByIDForUpdate loads and exclusively locks a period.
	FindPeriodByIDForUpdate(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error)

	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// UpdatePeriodStatus persists status and closure/lock metadata.
	UpdatePeriodStatus(ctx context.Context, period domain.FiscalPeriod) error
}

// FiscalPeriodRepositoryFacade combines all fiscal period repository interfaces
type FiscalPeriodRepositoryFacade interface {
	FiscalPeriodReader
	FiscalPeriodWriter
}
