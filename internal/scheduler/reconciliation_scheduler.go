// Package scheduler runs reconciliation for every tenant on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// TenantLister returns the tenants to reconcile on each tick.
type TenantLister interface {
	ListTenantIDs(ctx context.Context) ([]string, error)
}

// StaticTenants is a fixed tenant list.
type StaticTenants []string

func (s StaticTenants) ListTenantIDs(context.Context) ([]string, error) {
	return append([]string(nil), s...), nil
}

// ReconciliationScheduler periodically reconciles every tenant as the system actor.
type ReconciliationScheduler struct {
	reconciler  portssvc.Reconciler
	tenants     TenantLister
	interval    time.Duration
	concurrency int
	logger      *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewReconciliationScheduler creates a scheduler. An interval of zero or less disables it.
func NewReconciliationScheduler(reconciler portssvc.Reconciler, tenants TenantLister, interval time.Duration, logger *slog.Logger) *ReconciliationScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconciliationScheduler{
		reconciler:  reconciler,
		tenants:     tenants,
		interval:    interval,
		concurrency: 4,
		logger:      logger.With(slog.String("component", "reconciliation_scheduler")),
	}
}

// Start runs the scheduler in a goroutine until Stop is called or ctx is done.
func (s *ReconciliationScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.interval <= 0 {
		s.logger.Info("Reconciliation scheduler disabled")
		return
	}
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.Run(ctx)
	}()
	s.logger.Info("Reconciliation scheduler started", slog.Duration("interval", s.interval))
}

// Stop cancels the running loop and waits for the in-flight tick to finish.
func (s *ReconciliationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel, s.done = nil, nil
	s.logger.Info("Reconciliation scheduler stopped")
}

// Run reconciles once immediately and then on every tick until ctx is done.
func (s *ReconciliationScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick reconciles every listed tenant. A failing tenant does not stop the others.
// It returns the number of tenants whose run failed.
func (s *ReconciliationScheduler) Tick(ctx context.Context) int {
	tenants, err := s.tenants.ListTenantIDs(ctx)
	if err != nil {
		s.logger.Error("Failed to list tenants for reconciliation", slog.String("error", err.Error()))
		return 0
	}

	var (
		mu     sync.Mutex
		failed int
	)
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	actor := domain.SystemActor()
	for _, tenantID := range tenants {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			checks, err := s.reconciler.Reconcile(ctx, tenantID, actor)
			if err != nil {
				s.logger.Error("Scheduled reconciliation failed",
					slog.String("tenant_id", tenantID),
					slog.String("error", err.Error()))
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			s.logger.Debug("Scheduled reconciliation completed",
				slog.String("tenant_id", tenantID),
				slog.Int("check_count", len(checks)))
			return nil
		})
	}
	_ = g.Wait()
	return failed
}
