package services

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
)

// ReportingService defines operations for generating reports and exports
type ReportingService interface {
	// MemberSummary combines a member's savings position, active loan and
	// overdue status as of a specific date
	MemberSummary(ctx context.Context, memberID string, asOf time.Time) (*domain.MemberSummary, error)

	// Dashboard aggregates book-wide totals as of a specific date
	Dashboard(ctx context.Context, asOf time.Time) (*domain.DashboardReport, error)

	// ExportMembersCSV streams the member register as CSV
	ExportMembersCSV(ctx context.Context, w io.Writer) error

	// ExportTransactionsCSV streams the merged savings and loan ledgers as
	// CSV, newest entries first
	ExportTransactionsCSV(ctx context.Context, w io.Writer) error
}
