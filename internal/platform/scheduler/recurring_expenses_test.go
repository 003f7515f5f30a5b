package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	"github.com/SscSPs/pos_ledger_app/internal/platform/scheduler"
)

type MockPoster struct {
	mock.Mock
}

func (m *MockPoster) PostDueRecurringExpenses(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func TestRecurringExpenseScheduler_RunsAtStart(t *testing.T) {
	poster := new(MockPoster)
	ran := make(chan struct{}, 1)
	poster.On("PostDueRecurringExpenses", mock.Anything).
		Return([]domain.Transaction{{ID: "t1", Type: domain.Expense}}, nil).
		Run(func(mock.Arguments) { ran <- struct{}{} }).
		Once()

	s := scheduler.NewRecurringExpenseScheduler(poster, "@hourly", true, nil)
	require.NoError(t, s.Start())
	defer s.Stop(context.Background())

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("recurring expenses were not posted at start")
	}
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.NextRun(), time.Hour)
	poster.AssertExpectations(t)
}

func TestRecurringExpenseScheduler_NoRunAtStartWhenDisabled(t *testing.T) {
	poster := new(MockPoster)

	s := scheduler.NewRecurringExpenseScheduler(poster, "@hourly", false, nil)
	require.NoError(t, s.Start())
	s.Stop(context.Background())

	poster.AssertNotCalled(t, "PostDueRecurringExpenses", mock.Anything)
}

func TestRecurringExpenseScheduler_InvalidSchedule(t *testing.T) {
	s := scheduler.NewRecurringExpenseScheduler(new(MockPoster), "every so often", true, nil)
	assert.Error(t, s.Start())
	assert.True(t, s.NextRun().IsZero())
}

func TestRecurringExpenseScheduler_RunOnceSurvivesErrors(t *testing.T) {
	poster := new(MockPoster)
	poster.On("PostDueRecurringExpenses", mock.Anything).Return(nil, errors.New("store unavailable")).Once()

	s := scheduler.NewRecurringExpenseScheduler(poster, "@hourly", false, nil)
	assert.NotPanics(t, s.RunOnce)
	poster.AssertExpectations(t)
}
