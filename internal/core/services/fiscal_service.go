package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
)

type fiscalService struct {
	BaseService
	store portsrepo.LedgerStore
}

// NewFiscalService creates the fiscal calendar service.
func NewFiscalService(store portsrepo.LedgerStore, options ...ServiceOption) portssvc.FiscalSvcFacade {
	return &fiscalService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

var _ portssvc.FiscalSvcFacade = (*fiscalService)(nil)

// checkPeriodOpen fails with ErrPeriodLocked when a closed or locked period covers date.
// Dates outside every period are open.
func checkPeriodOpen(ctx context.Context, periods portsrepo.FiscalPeriodReader, tenantID string, date time.Time) error {
	period, err := periods.FindPeriodCoveringDate(ctx, tenantID, date)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check fiscal period: %w", err)
	}
	if period.IsLocked() {
		return apperrors.NewPeriodLockedError(tenantID, domain.DateString(date))
	}
	return nil
}

func (s *fiscalService) IsLocked(ctx context.Context, tenantID string, date time.Time) (bool, error) {
	err := checkPeriodOpen(ctx, s.store.Periods(), tenantID, date)
	if errors.Is(err, apperrors.ErrPeriodLocked) {
		return true, nil
	}
	return false, err
}

func (s *fiscalService) CreatePeriod(ctx context.Context, tenantID string, req dto.CreatePeriodRequest, actor domain.Actor) (*domain.FiscalPeriod, error) {
	if err := s.AuthorizeWrite(ctx, tenantID, actor); err != nil {
		return nil, err
	}
	start, err := dto.ParseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = domain.PeriodName(req.Year, req.PeriodNumber)
	}
	period := domain.FiscalPeriod{
		PeriodID:     uuid.NewString(),
		TenantID:     tenantID,
		Name:         name,
		Year:         req.Year,
		PeriodNumber: req.PeriodNumber,
		StartDate:    start,
		EndDate:      end,
		Status:       domain.PeriodOpen,
		AuditFields:  domain.NewAuditFields(actor.UserID, s.Now()),
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	err = s.store.WithinTx(ctx, func(tx portsrepo.TxRepositories) error {
		overlapping, err := tx.Periods().FindOverlappingPeriods(ctx, tenantID, start, end)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return apperrors.NewValidationError("period %s overlaps %s", period.Name, overlapping[0].Name)
		}
		return tx.Periods().SavePeriod(ctx, period)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal period created",
		slog.String("tenant_id", tenantID),
		slog.String("period_id", period.PeriodID),
		slog.String("name", period.Name))
	return &period, nil
}

func (s *fiscalService) ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error) {
	periods, err := s.store.Periods().ListPeriods(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal periods", slog.String("tenant_id", tenantID))
		return nil, err
	}
	if periods == nil {
		return []domain.FiscalPeriod{}, nil
	}
	return periods, nil
}

// transition locks the period row and applies fn, which mutates the status fields.
func (s *fiscalService) transition(ctx context.Context, tenantID, periodID string, fn func(tx portsrepo.TxRepositories, p *domain.FiscalPeriod) error) (*domain.FiscalPeriod, error) {
	var out *domain.FiscalPeriod
	err := s.store.WithinTx(ctx, func(tx portsrepo.TxRepositories) error {
		period, err := tx.Periods().FindPeriodByIDForUpdate(ctx, tenantID, periodID)
		if err != nil {
			return err
		}
		if err := fn(tx, period); err != nil {
			return err
		}
		if err := tx.Periods().UpdatePeriodStatus(ctx, *period); err != nil {
			return err
		}
		out = period
		return nil
	})
	return out, err
}

// ClosePeriod closes an open period and opens the following month when no period covers it yet.
func (s *fiscalService) ClosePeriod(ctx context.Context, tenantID, periodID string, actor domain.Actor) (*domain.FiscalPeriod, error) {
	if err := s.AuthorizeWrite(ctx, tenantID, actor); err != nil {
		return nil, err
	}
	now := s.Now()
	var created *domain.FiscalPeriod

	period, err := s.transition(ctx, tenantID, periodID, func(tx portsrepo.TxRepositories, p *domain.FiscalPeriod) error {
		switch p.Status {
		case domain.PeriodLocked:
			return fmt.Errorf("%w: period %s is locked", apperrors.ErrPeriodLocked, p.Name)
		case domain.PeriodClosed:
			return apperrors.NewValidationError("period %s is already closed", p.Name)
		}
		by, at := actor.UserID, now
		p.Status = domain.PeriodClosed
		p.ClosedBy, p.ClosedAt = &by, &at
		p.Touch(actor.UserID, now)

		next := p.Next()
		overlapping, err := tx.Periods().FindOverlappingPeriods(ctx, tenantID, next.StartDate, next.EndDate)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return nil
		}
		next.PeriodID = uuid.NewString()
		next.AuditFields = domain.NewAuditFields(actor.UserID, now)
		if err := tx.Periods().SavePeriod(ctx, next); err != nil {
			return err
		}
		created = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal period closed",
		slog.String("tenant_id", tenantID),
		slog.String("period_id", periodID),
		slog.String("closed_by", actor.UserID))
	if created != nil {
		s.LogInfo(ctx, "Next fiscal period opened",
			slog.String("tenant_id", tenantID),
			slog.String("period_id", created.PeriodID),
			slog.String("name", created.Name))
	}
	return period, nil
}

func (s *fiscalService) ReopenPeriod(ctx context.Context, tenantID, periodID string, actor domain.Actor) (*domain.FiscalPeriod, error) {
	if err := s.AuthorizePrivileged(ctx, tenantID, actor); err != nil {
		return nil, err
	}
	now := s.Now()

	period, err := s.transition(ctx, tenantID, periodID, func(_ portsrepo.TxRepositories, p *domain.FiscalPeriod) error {
		switch p.Status {
		case domain.PeriodLocked:
			return fmt.Errorf("%w: period %s is locked", apperrors.ErrPeriodLocked, p.Name)
		case domain.PeriodOpen:
			return apperrors.NewValidationError("period %s is already open", p.Name)
		}
		p.Status = domain.PeriodOpen
		p.ClosedBy, p.ClosedAt = nil, nil
		p.Touch(actor.UserID, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal period reopened",
		slog.String("tenant_id", tenantID),
		slog.String("period_id", periodID),
		slog.String("reopened_by", actor.UserID))
	return period, nil
}

// LockPeriod makes a closed period permanently read-only.
func (s *fiscalService) LockPeriod(ctx context.Context, tenantID, periodID string, actor domain.Actor) (*domain.FiscalPeriod, error) {
	if err := s.AuthorizePrivileged(ctx, tenantID, actor); err != nil {
		return nil, err
	}
	now := s.Now()

	period, err := s.transition(ctx, tenantID, periodID, func(_ portsrepo.TxRepositories, p *domain.FiscalPeriod) error {
		if p.Status != domain.PeriodClosed {
			return apperrors.NewValidationError("only closed periods can be locked, %s is %s", p.Name, p.Status)
		}
		by, at := actor.UserID, now
		p.Status = domain.PeriodLocked
		p.LockedBy, p.LockedAt = &by, &at
		p.Touch(actor.UserID, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal period locked",
		slog.String("tenant_id", tenantID),
		slog.String("period_id", periodID),
		slog.String("locked_by", actor.UserID))
	return period, nil
}
