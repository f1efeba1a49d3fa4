package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// ReportingRepository is the single read path of the reporting views.
type ReportingRepository interface {
	// ListPostedLines returns lines of posted, non-deleted entries that are neither reversed
	// nor reversals, ordered by posting date then entry number.
	ListPostedLines(ctx context.Context, tenantID string, filter domain.LedgerLineFilter) ([]domain.LedgerLine, error)
}
