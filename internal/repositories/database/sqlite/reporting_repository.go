package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// sqliteReportingRepository implements the ReportingRepository interface.
// Decimals live as TEXT in SQLite, so monetary totals are summed in Go
// rather than with SQL aggregates, which would coerce to floats.
type sqliteReportingRepository struct {
	db *sql.DB
}

func newSQLiteReportingRepository(db *sql.DB) portsrepo.ReportingRepository {
	return &sqliteReportingRepository{db: db}
}

// GetDashboardData retrieves book-wide totals as of a specific date. A loan
// counts as overdue when its next due date has passed the as-of date.
func (r *sqliteReportingRepository) GetDashboardData(ctx context.Context, asOf time.Time) (*domain.DashboardReport, error) {
	report := &domain.DashboardReport{
		AsOf:                   asOf,
		TotalSavings:           decimal.Zero,
		OutstandingLoanBalance: decimal.Zero,
	}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&report.TotalMembers); err != nil {
		return nil, fmt.Errorf("error counting members: %w", err)
	}

	savingsRows, err := r.db.QueryContext(ctx, `SELECT savings_balance FROM members`)
	if err != nil {
		return nil, fmt.Errorf("error querying savings balances: %w", err)
	}
	defer savingsRows.Close()
	for savingsRows.Next() {
		var balance decimal.Decimal
		if err := savingsRows.Scan(&balance); err != nil {
			return nil, fmt.Errorf("error scanning savings balance: %w", err)
		}
		report.TotalSavings = report.TotalSavings.Add(balance)
	}
	if err := savingsRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings balances: %w", err)
	}

	loanRows, err := r.db.QueryContext(ctx, `SELECT current_balance, next_due_date FROM loans WHERE is_active`)
	if err != nil {
		return nil, fmt.Errorf("error querying active loans: %w", err)
	}
	defer loanRows.Close()
	for loanRows.Next() {
		var balance decimal.Decimal
		var nextDue time.Time
		if err := loanRows.Scan(&balance, &nextDue); err != nil {
			return nil, fmt.Errorf("error scanning active loan: %w", err)
		}
		report.ActiveLoanCount++
		report.OutstandingLoanBalance = report.OutstandingLoanBalance.Add(balance)
		if asOf.After(nextDue) {
			report.OverdueLoanCount++
		}
	}
	if err := loanRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active loans: %w", err)
	}

	return report, nil
}

// ListMemberExportRows retrieves every member joined with their active loan
// (if any), ordered by member number.
func (r *sqliteReportingRepository) ListMemberExportRows(ctx context.Context) ([]domain.MemberExportRow, error) {
	query := `
		SELECT
			m.member_number,
			m.full_name,
			m.date_joined,
			m.savings_balance,
			l.current_balance,
			l.loan_id IS NOT NULL AS has_active_loan,
			l.issue_date,
			l.next_due_date
		FROM members m
		LEFT JOIN loans l ON l.member_id = m.member_id AND l.is_active
		ORDER BY m.member_number
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying member export rows: %w", err)
	}
	defer rows.Close()

	var result []domain.MemberExportRow
	for rows.Next() {
		var row domain.MemberExportRow
		var loanBalance decimal.NullDecimal
		var issueDate, nextDueDate sql.NullTime
		if err := rows.Scan(
			&row.MemberNumber,
			&row.FullName,
			&row.DateJoined,
			&row.SavingsBalance,
			&loanBalance,
			&row.HasActiveLoan,
			&issueDate,
			&nextDueDate,
		); err != nil {
			return nil, fmt.Errorf("error scanning member export row: %w", err)
		}
		row.LoanBalance = decimal.Zero
		if loanBalance.Valid {
			row.LoanBalance = loanBalance.Decimal
		}
		if issueDate.Valid {
			row.LoanIssueDate = &issueDate.Time
		}
		if nextDueDate.Valid {
			row.LoanNextDueDate = &nextDueDate.Time
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
func (r *sqliteReportingRepository) ListTransactionExportRows(ctx context.Context) ([]domain.TransactionExportRow, error) {
	// created_at is selected only to break ties within a business day.
	query := `
		SELECT st.transaction_date, m.member_number, m.full_name, st.transaction_type, 'SAVINGS' AS category, st.amount, st.notes, NULL AS loan_balance, st.created_at
		FROM savings_transactions st
		JOIN members m ON m.member_id = st.member_id
		UNION ALL
		SELECT lt.transaction_date, m.member_number, m.full_name, lt.transaction_type, 'LOAN' AS category, lt.amount, lt.notes, l.current_balance, lt.created_at
		FROM loan_transactions lt
		JOIN loans l ON l.loan_id = lt.loan_id
		JOIN members m ON m.member_id = l.member_id
		ORDER BY 1 DESC, 9 DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying transaction export rows: %w", err)
	}
	defer rows.Close()

	var result []domain.TransactionExportRow
	for rows.Next() {
		var row domain.TransactionExportRow
		var loanBalance decimal.NullDecimal
		var createdAt time.Time
		if err := rows.Scan(
			&row.TransactionDate,
			&row.MemberNumber,
			&row.MemberName,
			&row.TransactionType,
			&row.Category,
			&row.Amount,
			&row.Notes,
			&loanBalance,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning transaction export row: %w", err)
		}
		if loanBalance.Valid {
			row.LoanBalance = &loanBalance.Decimal
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction export rows: %w", err)
	}
	return result, nil
}
