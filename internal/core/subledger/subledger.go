// Package subledger defines the registry of subledgers audited by the reconciliation engine.
package subledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Check types of the built-in subledgers.
const (
	CheckReceivables = "ar_mismatch"
	CheckPayables    = "ap_mismatch"
)

// Subledger is a source of detail balances that must agree with a control account category.
type Subledger interface {
	Name() string
	CheckType() string
	ControlCategory() domain.AccountCategory
	Total(ctx context.Context, tenantID string) (decimal.Decimal, error)
}

// TotalFunc computes the open balance of a subledger for a tenant.
type TotalFunc func(ctx context.Context, tenantID string) (decimal.Decimal, error)

type funcSubledger struct {
	name      string
	checkType string
	category  domain.AccountCategory
	total     TotalFunc
}

func (s funcSubledger) Name() string                            { return s.name }
func (s funcSubledger) CheckType() string                       { return s.checkType }
func (s funcSubledger) ControlCategory() domain.AccountCategory { return s.category }
func (s funcSubledger) Total(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	return s.total(ctx, tenantID)
}

// New wraps a total function as a Subledger.
func New(name, checkType string, category domain.AccountCategory, total TotalFunc) Subledger {
	return funcSubledger{name: name, checkType: checkType, category: category, total: total}
}

// Receivables is the open-invoices subledger reconciled against RECEIVABLE accounts.
func Receivables(total TotalFunc) Subledger {
	return New("accounts_receivable", CheckReceivables, domain.CategoryReceivable, total)
}

// Payables is the open-bills subledger reconciled against PAYABLE accounts.
func Payables(total TotalFunc) Subledger {
	return New("accounts_payable", CheckPayables, domain.CategoryPayable, total)
}

// Registry is the static list of subledgers iterated by the engine.
type Registry struct {
	subledgers []Subledger
}

// NewRegistry builds a registry. Names and check types must be unique.
func NewRegistry(subledgers ...Subledger) (*Registry, error) {
	names := make(map[string]struct{}, len(subledgers))
	checks := make(map[string]struct{}, len(subledgers))
	for _, s := range subledgers {
		if _, dup := names[s.Name()]; dup {
			return nil, fmt.Errorf("duplicate subledger %q", s.Name())
		}
		if _, dup := checks[s.CheckType()]; dup {
			return nil, fmt.Errorf("duplicate check type %q", s.CheckType())
		}
		names[s.Name()] = struct{}{}
		checks[s.CheckType()] = struct{}{}
	}
	return &Registry{subledgers: append([]Subledger(nil), subledgers...)}, nil
}

// FromSource registers the receivables and payables subledgers of a storage source.
func FromSource(src portsrepo.SubledgerSource) *Registry {
	r, _ := NewRegistry(Receivables(src.OpenReceivablesTotal), Payables(src.OpenPayablesTotal))
	return r
}

// Subledgers returns the registered subledgers in registration order.
func (r *Registry) Subledgers() []Subledger {
	if r == nil {
		return nil
	}
	return append([]Subledger(nil), r.subledgers...)
}

// StaticSource is an in-memory SubledgerSource whose totals are set by the caller.
// It backs the memory storage driver and tests.
type StaticSource struct {
	mu          sync.RWMutex
	receivables map[string]decimal.Decimal
	payables    map[string]decimal.Decimal
}

// NewStaticSource creates an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{
		receivables: make(map[string]decimal.Decimal),
		payables:    make(map[string]decimal.Decimal),
	}
}

var _ portsrepo.SubledgerSource = (*StaticSource)(nil)

// SetReceivables sets the open invoices total of a tenant.
func (s *StaticSource) SetReceivables(tenantID string, total decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receivables[tenantID] = total
}

// SetPayables sets the open bills total of a tenant.
func (s *StaticSource) SetPayables(tenantID string, total decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payables[tenantID] = total
}

func (s *StaticSource) OpenReceivablesTotal(_ context.Context, tenantID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.receivables[tenantID], nil
}

func (s *StaticSource) OpenPayablesTotal(_ context.Context, tenantID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payables[tenantID], nil
}
