package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/subledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Thresholds classify reconciliation variances.
type Thresholds struct {
	Epsilon  decimal.Decimal
	High     decimal.Decimal
	Critical decimal.Decimal
}

// DefaultThresholds are 0.01, 100 and 1000.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Epsilon:  decimal.RequireFromString("0.01"),
		High:     decimal.NewFromInt(100),
		Critical: decimal.NewFromInt(1000),
	}
}

// Severity returns the alert severity of a variance, or false when it is within epsilon.
func (t Thresholds) Severity(variance decimal.Decimal) (domain.Severity, bool) {
	abs := variance.Abs()
	switch {
	case !abs.GreaterThan(t.Epsilon):
		return "", false
	case abs.GreaterThan(t.Critical):
		return domain.SeverityCritical, true
	case abs.GreaterThan(t.High):
		return domain.SeverityHigh, true
	default:
		return domain.SeverityMedium, true
	}
}

type reconciliationService struct {
	BaseService
	store      portsrepo.LedgerStore
	reporting  portssvc.ReportingService
	registry   *subledger.Registry
	thresholds Thresholds
}

// NewReconciliationService creates the reconciliation engine over the subledgers of registry.
func NewReconciliationService(store portsrepo.LedgerStore, reporting portssvc.ReportingService, registry *subledger.Registry, thresholds Thresholds, options ...ServiceOption) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		BaseService: newBaseService(options),
		store:       store,
		reporting:   reporting,
		registry:    registry,
		thresholds:  thresholds,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// Reconcile compares every subledger with its control balance and records the run and its alerts.
// It never writes ledger data.
func (s *reconciliationService) Reconcile(ctx context.Context, tenantID string, actor domain.Actor) ([]domain.CheckResult, error) {
	if err := s.AuthorizeWrite(ctx, tenantID, actor); err != nil {
		return nil, err
	}

	started := s.Now()
	subledgers := s.registry.Subledgers()
	results := make([]domain.CheckResult, len(subledgers))

	g, gctx := errgroup.WithContext(ctx)
	for i, sl := range subledgers {
		g.Go(func() error {
			result, err := s.runCheck(gctx, tenantID, sl)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	checkErr := g.Wait()

	completed := s.Now()
	run := domain.ReconciliationRun{
		RunID:         uuid.NewString(),
		TenantID:      tenantID,
		RunBy:         actor.UserID,
		StartedAt:     started,
		CompletedAt:   completed,
		Duration:      completed.Sub(started),
		TotalVariance: decimal.Zero,
	}

	if checkErr != nil {
		msg := checkErr.Error()
		run.Status = domain.RunFailed
		run.ErrorMessage = &msg
		if err := s.store.Reconciliation().SaveRun(ctx, run); err != nil {
			s.LogError(ctx, err, "Failed to record failed reconciliation run", slog.String("tenant_id", tenantID))
		}
		s.Metrics.ReconciliationCompleted(string(domain.RunFailed), run.Duration, nil)
		s.LogError(ctx, checkErr, "Reconciliation failed", slog.String("tenant_id", tenantID), slog.String("run_id", run.RunID))
		return nil, fmt.Errorf("reconciliation of tenant %s failed: %w", tenantID, checkErr)
	}

	run.Status = domain.RunBalanced
	var alerts []domain.Alert
	raised := map[string]string{}
	for i := range results {
		r := &results[i]
		run.TotalVariance = run.TotalVariance.Add(r.Variance.Abs())
		severity, ok := s.thresholds.Severity(r.Variance)
		if !ok {
			continue
		}
		alert := domain.Alert{
			AlertID:   uuid.NewString(),
			TenantID:  tenantID,
			RunID:     run.RunID,
			CheckType: r.CheckType,
			Severity:  severity,
			Expected:  r.Expected,
			Actual:    r.Actual,
			Variance:  r.Variance,
			Message: fmt.Sprintf("%s total %s differs from %s control balance %s by %s",
				r.Subledger, r.Expected.StringFixed(2), r.ControlCategory, r.Actual.StringFixed(2), r.Variance.StringFixed(2)),
			CreatedAt: completed,
		}
		r.Status = domain.RunMismatch
		r.Severity = &alert.Severity
		r.AlertID = &alert.AlertID
		alerts = append(alerts, alert)
		raised[r.CheckType] = string(severity)
		run.Status = domain.RunMismatch
	}
	run.Checks = results

	err := s.store.WithinTx(ctx, func(tx portsrepo.TxRepositories) error {
		if err := tx.Reconciliation().SaveRun(ctx, run); err != nil {
			return err
		}
		if len(alerts) == 0 {
			return nil
		}
		return tx.Reconciliation().SaveAlerts(ctx, alerts)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record reconciliation run", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to record reconciliation run: %w", err)
	}

	s.Metrics.ReconciliationCompleted(string(run.Status), run.Duration, raised)
	s.LogInfo(ctx, "Reconciliation completed",
		slog.String("tenant_id", tenantID),
		slog.String("run_id", run.RunID),
		slog.String("status", string(run.Status)),
		slog.String("total_variance", run.TotalVariance.String()),
		slog.Int("alerts", len(alerts)))
	return results, nil
}

// runCheck compares a subledger with the full control balance. Subledger documents carry no posting
// date filter, so lines posted with a future date are included on both sides.
func (s *reconciliationService) runCheck(ctx context.Context, tenantID string, sl subledger.Subledger) (domain.CheckResult, error) {
	expected, err := sl.Total(ctx, tenantID)
	if err != nil {
		return domain.CheckResult{}, fmt.Errorf("subledger %s: %w", sl.Name(), err)
	}
	actual, err := s.reporting.GetControlBalance(ctx, tenantID, sl.ControlCategory(), time.Time{})
	if err != nil {
		return domain.CheckResult{}, fmt.Errorf("check %s: %w", sl.CheckType(), err)
	}
	return domain.CheckResult{
		CheckType:       sl.CheckType(),
		Subledger:       sl.Name(),
		ControlCategory: sl.ControlCategory(),
		Expected:        expected,
		Actual:          actual,
		Variance:        expected.Sub(actual),
		Status:          domain.RunBalanced,
	}, nil
}

func (s *reconciliationService) GetLatestReconciliationStatus(ctx context.Context, tenantID string) (*domain.ReconciliationSummary, error) {
	summary := &domain.ReconciliationSummary{TenantID: tenantID, Status: "never_run"}
	run, err := s.store.Reconciliation().FindLatestRun(ctx, tenantID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
	case err != nil:
		s.LogError(ctx, err, "Failed to load latest reconciliation run", slog.String("tenant_id", tenantID))
		return nil, err
	default:
		summary.LatestRun = run
		summary.Status = string(run.Status)
	}

	open, err := s.store.Reconciliation().CountOpenAlerts(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	summary.OpenAlerts = open
	return summary, nil
}

func (s *reconciliationService) ListAlerts(ctx context.Context, tenantID string, openOnly bool) ([]domain.Alert, error) {
	alerts, err := s.store.Reconciliation().ListAlerts(ctx, tenantID, openOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list alerts", slog.String("tenant_id", tenantID))
		return nil, err
	}
	if alerts == nil {
		return []domain.Alert{}, nil
	}
	return alerts, nil
}

// ResolveAlert records the resolution of an open alert. Resolution is set once.
func (s *reconciliationService) ResolveAlert(ctx context.Context, tenantID, alertID, notes string, actor domain.Actor) (*domain.Alert, error) {
	if err := s.AuthorizeWrite(ctx, tenantID, actor); err != nil {
		return nil, err
	}
	var resolved *domain.Alert
	err := s.store.WithinTx(ctx, func(tx portsrepo.TxRepositories) error {
		if err := tx.Reconciliation().ResolveAlert(ctx, tenantID, alertID, actor.UserID, notes, s.Now()); err != nil {
			return err
		}
		alert, err := tx.Reconciliation().FindAlertByID(ctx, tenantID, alertID)
		if err != nil {
			return err
		}
		resolved = alert
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Alert resolved",
		slog.String("tenant_id", tenantID),
		slog.String("alert_id", alertID),
		slog.String("resolved_by", actor.UserID))
	return resolved, nil
}
