package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

type periodRepo struct{ repos }

func (r periodRepo) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	var out *domain.FiscalPeriod
	err := r.with(ctx, func(st *state) error {
		p, ok := st.periods[periodID]
		if !ok || p.TenantID != tenantID {
			return apperrors.NewNotFoundError("fiscal period " + periodID)
		}
		out = &p
		return nil
	})
	return out, err
}

func (r periodRepo) FindPeriodByIDForUpdate(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	return r.FindPeriodByID(ctx, tenantID, periodID)
}

func (r periodRepo) FindPeriodCoveringDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	var out *domain.FiscalPeriod
	err := r.with(ctx, func(st *state) error {
		for _, p := range st.periods {
			if p.TenantID == tenantID && p.Contains(date) {
				out = &p
				return nil
			}
		}
		return apperrors.NewNotFoundError("fiscal period covering " + domain.DateString(date))
	})
	return out, err
}

func (r periodRepo) FindOverlappingPeriods(ctx context.Context, tenantID string, start, end time.Time) ([]domain.FiscalPeriod, error) {
	var out []domain.FiscalPeriod
	err := r.with(ctx, func(st *state) error {
		for _, p := range st.periods {
			if p.TenantID == tenantID && p.Overlaps(start, end) {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

func (r periodRepo) ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error) {
	var out []domain.FiscalPeriod
	err := r.with(ctx, func(st *state) error {
		for _, p := range st.periods {
			if p.TenantID == tenantID {
				out = append(out, p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, err
}

func (r periodRepo) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	return r.with(ctx, func(st *state) error {
		for _, p := range st.periods {
			if p.TenantID == period.TenantID && p.Year == period.Year && p.PeriodNumber == period.PeriodNumber {
				return fmt.Errorf("%w: fiscal period %d/%d", apperrors.ErrDuplicate, period.Year, period.PeriodNumber)
			}
		}
		st.periods[period.PeriodID] = period
		return nil
	})
}

func (r periodRepo) UpdatePeriodStatus(ctx context.Context, period domain.FiscalPeriod) error {
	return r.with(ctx, func(st *state) error {
		p, ok := st.periods[period.PeriodID]
		if !ok || p.TenantID != period.TenantID {
			return apperrors.NewNotFoundError("fiscal period " + period.PeriodID)
		}
		p.Status = period.Status
		p.ClosedBy, p.ClosedAt = period.ClosedBy, period.ClosedAt
		p.LockedBy, p.LockedAt = period.LockedBy, period.LockedAt
		p.LastUpdatedAt, p.LastUpdatedBy = period.LastUpdatedAt, period.LastUpdatedBy
		st.periods[p.PeriodID] = p
		return nil
	})
}
