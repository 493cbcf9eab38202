package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetDashboardData retrieves book-wide totals as of a specific date. A loan
// counts as overdue when its next due date has passed the as-of date.
func (r *reportingRepository) GetDashboardData(ctx context.Context, asOf time.Time) (*domain.DashboardReport, error) {
	report := &domain.DashboardReport{AsOf: asOf}

	memberQuery := `
		SELECT COUNT(*), COALESCE(SUM(savings_balance), 0)
		FROM members;
	`
	if err := r.Pool.QueryRow(ctx, memberQuery).Scan(&report.TotalMembers, &report.TotalSavings); err != nil {
		return nil, fmt.Errorf("error querying member totals: %w", err)
	}

	loanQuery := `
		SELECT
			COUNT(*) FILTER (WHERE is_active),
			COALESCE(SUM(current_balance) FILTER (WHERE is_active), 0),
			COUNT(*) FILTER (WHERE is_active AND next_due_date < $1)
		FROM loans;
	`
	if err := r.Pool.QueryRow(ctx, loanQuery, asOf).Scan(
		&report.ActiveLoanCount,
		&report.OutstandingLoanBalance,
		&report.OverdueLoanCount,
	); err != nil {
		return nil, fmt.Errorf("error querying loan totals: %w", err)
	}

	return report, nil
}

// ListMemberExportRows retrieves every member joined with their active loan
// (if any), ordered by member number.
func (r *reportingRepository) ListMemberExportRows(ctx context.Context) ([]domain.MemberExportRow, error) {
	query := `
		SELECT
			m.member_number,
			m.full_name,
			m.date_joined,
			m.savings_balance,
			COALESCE(l.current_balance, 0) AS loan_balance,
			l.loan_id IS NOT NULL AS has_active_loan,
			l.issue_date,
			l.next_due_date
		FROM members m
		LEFT JOIN loans l ON l.member_id = m.member_id AND l.is_active
		ORDER BY m.member_number;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying member export rows: %w", err)
	}
	defer rows.Close()

	var result []domain.MemberExportRow
	for rows.Next() {
		var row domain.MemberExportRow
		if err := rows.Scan(
			&row.MemberNumber,
			&row.FullName,
			&row.DateJoined,
			&row.SavingsBalance,
			&row.LoanBalance,
			&row.HasActiveLoan,
			&row.LoanIssueDate,
			&row.LoanNextDueDate,
		); err != nil {
			return nil, fmt.Errorf("error scanning member export row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member export rows: %w", err)
	}
	return result, nil
}

// ListTransactionExportRows retrieves the combined savings and loan ledgers
// joined with member details, newest first.
func (r *reportingRepository) ListTransactionExportRows(ctx context.Context) ([]domain.TransactionExportRow, error) {
	// created_at is selected only to break ties within a business day.
	query := `
		SELECT st.transaction_date, m.member_number, m.full_name, st.transaction_type, 'SAVINGS' AS category, st.amount, st.notes, NULL::numeric AS loan_balance, st.created_at
		FROM savings_transactions st
		JOIN members m ON m.member_id = st.member_id
		UNION ALL
		SELECT lt.transaction_date, m.member_number, m.full_name, lt.transaction_type, 'LOAN' AS category, lt.amount, lt.notes, l.current_balance, lt.created_at
		FROM loan_transactions lt
		JOIN loans l ON l.loan_id = lt.loan_id
		JOIN members m ON m.member_id = l.member_id
		ORDER BY 1 DESC, 9 DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying transaction export rows: %w", err)
	}
	defer rows.Close()

	var result []domain.TransactionExportRow
	for rows.Next() {
		var row domain.TransactionExportRow
		var createdAt time.Time
		if err := rows.Scan(
			&row.TransactionDate,
			&row.MemberNumber,
			&row.MemberName,
			&row.TransactionType,
			&row.Category,
			&row.Amount,
			&row.Notes,
			&row.LoanBalance,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning transaction export row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction export rows: %w", err)
	}
	return result, nil
}
