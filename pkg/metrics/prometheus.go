package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector owns the application's Prometheus registry and the
// collectors for the loan book: issuance, repayments, overdue sweeps and
// the HTTP surface.
type MetricsCollector struct {
	registry *prometheus.Registry
	logger   *slog.Logger

	loansIssued     prometheus.Counter
	loanRepayments  prometheus.Counter
	savingsPayments prometheus.Counter

	overdueChargesApplied  prometheus.Counter
	overdueInterestCharged prometheus.Counter
	overdueSweepDuration   prometheus.Histogram
	activeLoans            prometheus.Gauge

	httpRequests *prometheus.CounterVec
}

// NewMetricsCollector creates a collector with its own registry so tests can
// run several instances side by side.
func NewMetricsCollector(logger *slog.Logger) *MetricsCollector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	return &MetricsCollector{
		registry: registry,
		logger:   logger,
		loansIssued: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "loans_issued_total",
			Help: "Total number of loans issued",
		}),
		loanRepayments: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "loan_repayments_total",
			Help: "Total number of loan repayments recorded",
		}),
		savingsPayments: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "savings_payments_total",
			Help: "Total number of savings payments recorded",
		}),
		overdueChargesApplied: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "overdue_charges_applied_total",
			Help: "Total number of overdue interest charges written to loan ledgers",
		}),
		overdueInterestCharged: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "overdue_interest_charged_total",
			Help: "Total overdue interest amount charged, in currency units",
		}),
		overdueSweepDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "overdue_sweep_duration_seconds",
			Help:    "Time taken by a full overdue interest sweep",
			Buckets: prometheus.DefBuckets,
		}),
		activeLoans: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "active_loans",
			Help: "Number of currently active loans",
		}),
		httpRequests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
	}
}

// RecordLoanIssued counts a successful loan issuance.
func (m *MetricsCollector) RecordLoanIssued() {
	m.loansIssued.Inc()
}

// RecordLoanRepayment counts a successful repayment.
func (m *MetricsCollector) RecordLoanRepayment() {
	m.loanRepayments.Inc()
}

// RecordSavingsPayment counts a recorded savings payment.
func (m *MetricsCollector) RecordSavingsPayment() {
	m.savingsPayments.Inc()
}

// RecordOverdueCharges counts ledger charges and accumulates the charged
// interest amount.
func (m *MetricsCollector) RecordOverdueCharges(charges int, totalInterest float64) {
	if charges <= 0 {
		return
	}
	m.overdueChargesApplied.Add(float64(charges))
	m.overdueInterestCharged.Add(totalInterest)
}

// RecordOverdueSweep observes the duration of a full overdue sweep.
func (m *MetricsCollector) RecordOverdueSweep(duration time.Duration) {
	m.overdueSweepDuration.Observe(duration.Seconds())
}

// SetActiveLoans updates the active loan gauge.
func (m *MetricsCollector) SetActiveLoans(count int64) {
	m.activeLoans.Set(float64(count))
}

// RecordHTTPRequest counts one handled HTTP request.
func (m *MetricsCollector) RecordHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// GetHandler exposes the registry for mounting at /metrics.
func (m *MetricsCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
