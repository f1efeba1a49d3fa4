package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	Clock   func() time.Time
}

// ServiceOption is a functional option shared by every service constructor
type ServiceOption func(*BaseService)

// WithMetrics records ledger metrics on m.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *BaseService) {
		s.Logger = logger
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func newBaseService(options []ServiceOption) BaseService {
	var b BaseService
	for _, option := range options {
		option(&b)
	}
	return b
}

// Now returns the current UTC time of the service clock.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	if logger := middleware.GetLoggerFromCtx(ctx); logger != nil {
		return logger
	}
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeWrite rejects actors that may not mutate ledger data.
func (s *BaseService) AuthorizeWrite(ctx context.Context, tenantID string, actor domain.Actor) error {
	if actor.CanWrite() {
		return nil
	}
	err := fmt.Errorf("%w: role %s cannot modify ledger data", apperrors.ErrForbidden, actor.Role)
	s.LogDebug(ctx, "Write rejected",
		slog.String("user_id", actor.UserID),
		slog.String("tenant_id", tenantID),
		slog.String("role", string(actor.Role)))
	return err
}

// AuthorizePrivileged rejects actors that may not reopen or lock periods.
func (s *BaseService) AuthorizePrivileged(ctx context.Context, tenantID string, actor domain.Actor) error {
	if actor.IsPrivileged() {
		return nil
	}
	s.LogDebug(ctx, "Privileged operation rejected",
		slog.String("user_id", actor.UserID),
		slog.String("tenant_id", tenantID),
		slog.String("role", string(actor.Role)))
	return fmt.Errorf("%w: role %s is not privileged", apperrors.ErrForbidden, actor.Role)
}
