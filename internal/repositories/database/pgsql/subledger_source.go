package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// subledgerSource reads open document balances from the invoices and bills tables, which are
// written by the billing collaborators.
type subledgerSource struct {
	pool *pgxpool.Pool
}

var _ portsrepo.SubledgerSource = (*subledgerSource)(nil)

func newSubledgerSource(pool *pgxpool.Pool) *subledgerSource {
	return &subledgerSource{pool: pool}
}

func (s *subledgerSource) OpenReceivablesTotal(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	return s.sum(ctx, "open invoices", `
		SELECT COALESCE(SUM(balance_due), 0) FROM invoices
		WHERE tenant_id = $1 AND status NOT IN ('DRAFT', 'VOID');`, tenantID)
}

func (s *subledgerSource) OpenPayablesTotal(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	return s.sum(ctx, "open bills", `
		SELECT COALESCE(SUM(balance_due), 0) FROM bills
		WHERE tenant_id = $1 AND status NOT IN ('DRAFT', 'VOID');`, tenantID)
}

func (s *subledgerSource) sum(ctx context.Context, what, query, tenantID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := s.pool.QueryRow(ctx, query, tenantID).Scan(&total); err != nil {
		return decimal.Zero, translateError(err, what)
	}
	return total, nil
}
