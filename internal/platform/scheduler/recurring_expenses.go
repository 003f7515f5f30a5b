package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
)

const defaultRunTimeout = time.Minute

// RecurringExpensePoster posts every recurring expense that has fallen due.
type RecurringExpensePoster interface {
	PostDueRecurringExpenses(ctx context.Context) ([]domain.Transaction, error)
}

// RecurringExpenseScheduler runs the recurring expense poster on a cron schedule.
type RecurringExpenseScheduler struct {
	cron           *cron.Cron
	poster         RecurringExpensePoster
	schedule       string
	runImmediately bool
	runTimeout     time.Duration
	logger         *slog.Logger
	jobID          cron.EntryID
	mu             sync.Mutex
}

// NewRecurringExpenseScheduler creates a scheduler for poster. schedule accepts the
// standard five-field cron syntax and descriptors such as "@hourly".
func NewRecurringExpenseScheduler(poster RecurringExpensePoster, schedule string, runImmediately bool, logger *slog.Logger) *RecurringExpenseScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecurringExpenseScheduler{
		cron:           cron.New(),
		poster:         poster,
		schedule:       schedule,
		runImmediately: runImmediately,
		runTimeout:     defaultRunTimeout,
		logger:         logger.With(slog.String("job", "recurring_expenses")),
	}
}

// Start registers the job and starts the cron scheduler.
func (s *RecurringExpenseScheduler) Start() error {
	id, err := s.cron.AddFunc(s.schedule, s.RunOnce)
	if err != nil {
		return fmt.Errorf("error scheduling recurring expenses %q: %w", s.schedule, err)
	}
	s.jobID = id
	s.cron.Start()
	s.logger.Info("Recurring expense scheduler started", slog.String("schedule", s.schedule))

	if s.runImmediately {
		go s.RunOnce()
	}
	return nil
}

// Stop stops the scheduler and waits for a running job to finish or ctx to end.
func (s *RecurringExpenseScheduler) Stop(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		<-s.cron.Stop().Done()
		// an immediate run started by Start is not tracked by cron
		s.mu.Lock()
		s.mu.Unlock()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("Recurring expense scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Recurring expense scheduler stop timed out", slog.String("error", ctx.Err().Error()))
	}
}

// RunOnce posts due expenses now. Overlapping runs are serialized.
func (s *RecurringExpenseScheduler) RunOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	posted, err := s.poster.PostDueRecurringExpenses(ctx)
	if err != nil {
		s.logger.Error("Failed to post recurring expenses", slog.String("error", err.Error()))
		return
	}
	if len(posted) > 0 {
		s.logger.Info("Posted recurring expenses", slog.Int("count", len(posted)))
	}
}

// NextRun reports when the job fires next. It is zero before Start.
func (s *RecurringExpenseScheduler) NextRun() time.Time {
	if s.jobID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.jobID).Next
}
