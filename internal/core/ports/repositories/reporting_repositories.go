package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
)

// ReportingRepository defines operations for retrieving aggregate report and
// export data
type ReportingRepository interface {
	// GetDashboardData retrieves book-wide totals as of a specific date.
	GetDashboardData(ctx context.Context, asOf time.Time) (*domain.DashboardReport, error)

	// ListMemberExportRows retrieves every member joined with their active
	// loan (if any), ordered by member number.
	ListMemberExportRows(ctx context.Context) ([]domain.MemberExportRow, error)

	// ListTransactionExportRows retrieves the combined savings and loan
	// ledgers joined with member details, newest first.
	ListTransactionExportRows(ctx context.Context) ([]domain.TransactionExportRow, error)
}
