package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	"github.com/SscSPs/pos_ledger_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now      func() time.Time
	location *time.Location
}

// ServiceOption is a functional option shared by the services in this package.
type ServiceOption func(*BaseService)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.now = now
	}
}

// WithLocation sets the time zone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *BaseService) {
		s.location = loc
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{now: time.Now, location: time.Local}
	for _, option := range options {
		option(&base)
	}
	if base.location == nil {
		base.location = time.Local
	}
	return base
}

// Now returns the current time of the service clock.
func (s *BaseService) Now() time.Time {
	return s.now()
}

// Today returns the store's current calendar date key.
func (s *BaseService) Today() string {
	return s.DateKey(s.now())
}

// DateKey formats t as a calendar date in the store's time zone.
func (s *BaseService) DateKey(t time.Time) string {
	return domain.DateKey(t, s.location)
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
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
