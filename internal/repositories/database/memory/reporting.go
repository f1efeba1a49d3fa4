package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

type reportingRepo struct{ repos }

func (r reportingRepo) ListPostedLines(ctx context.Context, tenantID string, filter domain.LedgerLineFilter) ([]domain.LedgerLine, error) {
	var out []domain.LedgerLine
	err := r.with(ctx, func(st *state) error {
		for _, e := range st.entries {
			if e.TenantID != tenantID || !e.IsPosted || e.IsDeleted() || e.IsReversed || e.IsReversal() {
				continue
			}
			date := domain.DateOf(e.PostingDate)
			if filter.From != nil && date.Before(domain.DateOf(*filter.From)) {
				continue
			}
			if filter.To != nil && date.After(domain.DateOf(*filter.To)) {
				continue
			}
			for _, l := range e.Lines {
				acc, ok := st.accounts[l.AccountID]
				if !ok || !matches(acc, filter) {
					continue
				}
				out = append(out, domain.LedgerLine{
					EntryID:     e.EntryID,
					EntryNumber: *e.EntryNumber,
					PostingDate: date,
					LineID:      l.LineID,
					AccountID:   acc.AccountID,
					AccountCode: acc.Code,
					AccountName: acc.Name,
					AccountType: acc.AccountType,
					Category:    acc.Category,
					Debit:       l.Debit,
					Credit:      l.Credit,
				})
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PostingDate.Equal(out[j].PostingDate) {
			return out[i].PostingDate.Before(out[j].PostingDate)
		}
		if out[i].EntryNumber != out[j].EntryNumber {
			return out[i].EntryNumber < out[j].EntryNumber
		}
		return out[i].LineID < out[j].LineID
	})
	return out, err
}

func matches(acc domain.Account, f domain.LedgerLineFilter) bool {
	if len(f.AccountTypes) > 0 && !slices.Contains(f.AccountTypes, acc.AccountType) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, acc.Category) {
		return false
	}
	if len(f.AccountIDs) > 0 && !slices.Contains(f.AccountIDs, acc.AccountID) {
		return false
	}
	return true
}
