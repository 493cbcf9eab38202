package workers_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	"github.com/SscSPs/savings_loan_app/internal/workers"
	"github.com/SscSPs/savings_loan_app/pkg/metrics"
)

// --- Mock OverdueProcessor ---

type MockOverdueProcessor struct {
	mock.Mock
}

var _ workers.OverdueProcessor = (*MockOverdueProcessor)(nil)

func (m *MockOverdueProcessor) ProcessAllOverdue(ctx context.Context, asOf time.Time) (*domain.OverdueRunReport, error) {
	args := m.Called(ctx, asOf)
	report, _ := args.Get(0).(*domain.OverdueRunReport)
	return report, args.Error(1)
}

// --- Test Cases ---

func TestRunNow_ReportsSweepOutcome(t *testing.T) {
	processor := new(MockOverdueProcessor)
	sweeper := workers.NewOverdueSweeper(processor, slog.Default(), metrics.NewMetricsCollector(slog.Default()), "")

	report := &domain.OverdueRunReport{
		LoansChecked:  3,
		LoansCharged:  1,
		TotalInterest: decimal.RequireFromString("200.00"),
		Results: []domain.LoanOverdueResult{
			{LoanID: "loan-1", Charges: []domain.OverdueCharge{{PeriodIndex: 1, ChargeAmount: decimal.RequireFromString("200.00")}}},
			{LoanID: "loan-2"},
			{LoanID: "loan-3"},
		},
	}

	// The sweep always runs against a midnight-UTC date.
	processor.On("ProcessAllOverdue", mock.Anything, mock.MatchedBy(func(asOf time.Time) bool {
		return asOf.Equal(asOf.Truncate(24*time.Hour)) && asOf.Location() == time.UTC
	})).Return(report, nil).Once()

	got, err := sweeper.RunNow(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, got.LoansChecked)
	assert.Equal(t, 1, got.LoansCharged)
	processor.AssertExpectations(t)
}

func TestRunNow_PropagatesProcessorError(t *testing.T) {
	processor := new(MockOverdueProcessor)
	sweeper := workers.NewOverdueSweeper(processor, slog.Default(), nil, "")

	processor.On("ProcessAllOverdue", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	report, err := sweeper.RunNow(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, report)
	processor.AssertExpectations(t)
}

func TestStart_RejectsInvalidSchedule(t *testing.T) {
	sweeper := workers.NewOverdueSweeper(new(MockOverdueProcessor), slog.Default(), nil, "not-a-cron-spec")

	err := sweeper.Start()

	assert.Error(t, err)
}

func TestStart_EmptyScheduleDisablesJob(t *testing.T) {
	processor := new(MockOverdueProcessor)
	sweeper := workers.NewOverdueSweeper(processor, slog.Default(), nil, "")

	require.NoError(t, sweeper.Start())
	// Stop must be safe when nothing was scheduled.
	sweeper.Stop()

	processor.AssertNotCalled(t, "ProcessAllOverdue", mock.Anything, mock.Anything)
}

func TestStartStop_ValidSchedule(t *testing.T) {
	processor := new(MockOverdueProcessor)
	sweeper := workers.NewOverdueSweeper(processor, slog.Default(), nil, "0 2 * * *")

	require.NoError(t, sweeper.Start())
	sweeper.Stop()

	// 02:00 never fires within the test window.
	processor.AssertNotCalled(t, "ProcessAllOverdue", mock.Anything, mock.Anything)
}
