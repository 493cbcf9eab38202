package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	"github.com/SscSPs/savings_loan_app/internal/middleware"
	"github.com/SscSPs/savings_loan_app/pkg/metrics"
)

// OverdueProcessor is the slice of the loan service the sweeper needs.
type OverdueProcessor interface {
	ProcessAllOverdue(ctx context.Context, asOf time.Time) (*domain.OverdueRunReport, error)
}

// OverdueSweeper periodically applies overdue interest across the whole loan
// book. The sweep itself is idempotent per day, so an extra run (manual
// trigger plus schedule) charges nothing twice.
type OverdueSweeper struct {
	processor OverdueProcessor
	logger    *slog.Logger
	metrics   *metrics.MetricsCollector
	schedule  string
	cron      *cron.Cron
}

// NewOverdueSweeper creates a sweeper that runs on the given cron schedule.
// An empty schedule disables the background job; RunNow still works.
func NewOverdueSweeper(processor OverdueProcessor, logger *slog.Logger, collector *metrics.MetricsCollector, schedule string) *OverdueSweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &OverdueSweeper{
		processor: processor,
		logger:    logger.With(slog.String("job", "overdue_sweep")),
		metrics:   collector,
		schedule:  schedule,
	}
}

// Start registers the sweep with the cron scheduler and starts it.
func (w *OverdueSweeper) Start() error {
	if w.schedule == "" {
		w.logger.Info("Overdue sweep schedule is empty, background job disabled")
		return nil
	}

	w.cron = cron.New()
	if _, err := w.cron.AddFunc(w.schedule, func() {
		if _, err := w.RunNow(context.Background()); err != nil {
			w.logger.Error("Scheduled overdue sweep failed", slog.String("error", err.Error()))
		}
	}); err != nil {
		return fmt.Errorf("invalid overdue sweep schedule %q: %w", w.schedule, err)
	}

	w.cron.Start()
	w.logger.Info("Overdue sweep scheduled", slog.String("schedule", w.schedule))
	return nil
}

// Stop halts the scheduler and waits for an in-flight sweep to finish.
func (w *OverdueSweeper) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
	w.logger.Info("Overdue sweep stopped")
}

// RunNow executes one sweep for today's date and returns the run report.
func (w *OverdueSweeper) RunNow(ctx context.Context) (*domain.OverdueRunReport, error) {
	ctx = middleware.WithLogger(ctx, w.logger)
	asOf := time.Now().UTC().Truncate(24 * time.Hour)

	start := time.Now()
	report, err := w.processor.ProcessAllOverdue(ctx, asOf)
	if w.metrics != nil {
		w.metrics.RecordOverdueSweep(time.Since(start))
	}
	if err != nil {
		w.logger.Error("Overdue sweep failed", slog.String("error", err.Error()))
		return nil, err
	}

	if w.metrics != nil {
		chargeCount := 0
		for _, result := range report.Results {
			chargeCount += len(result.Charges)
		}
		w.metrics.RecordOverdueCharges(chargeCount, report.TotalInterest.InexactFloat64())
		// A sweep never closes loans, so checked equals currently active.
		w.metrics.SetActiveLoans(int64(report.LoansChecked))
	}

	w.logger.Info("Overdue sweep completed",
		slog.Int("loans_checked", report.LoansChecked),
		slog.Int("loans_charged", report.LoansCharged),
		slog.Int("loans_failed", report.LoansFailed),
		slog.String("total_interest", report.TotalInterest.StringFixed(2)))
	return report, nil
}
