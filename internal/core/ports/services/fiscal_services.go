package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// PeriodGate answers whether writes dated on a given day are rejected.
type PeriodGate interface {
	IsLocked(ctx context.Context, tenantID string, date time.Time) (bool, error)
}

// FiscalSvcFacade manages the fiscal calendar.
type FiscalSvcFacade interface {
	PeriodGate
	CreatePeriod(ctx context.Context, tenantID string, req dto.CreatePeriodRequest, actor domain.Actor) (*domain.FiscalPeriod, error)
	ListPeriods(ctx context.Context, tenantID string) ([]domain.FiscalPeriod, error)
	ClosePeriod(ctx context.Context, tenantID, periodID string, actor domain.Actor) (*domain.FiscalPeriod, error)
	ReopenPeriod(ctx context.Context, tenantID, periodID string, actor domain.Actor) (*domain.FiscalPeriod, error)
	LockPeriod(ctx context.Context, tenantID, periodID string, actor domain.Actor) (*domain.FiscalPeriod, error)
}
