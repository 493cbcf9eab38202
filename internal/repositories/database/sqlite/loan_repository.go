package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/savings_loan_app/internal/apperrors"
	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
)

// SQLiteLoanRepository implements the loan repository on SQLite.
type SQLiteLoanRepository struct {
	db *sql.DB
}

func newSQLiteLoanRepository(db *sql.DB) portsrepo.LoanRepositoryFacade {
	return &SQLiteLoanRepository{db: db}
}

var _ portsrepo.LoanRepositoryFacade = (*SQLiteLoanRepository)(nil)

const loanColumns = `loan_id, member_id, principal, interest_rate, interest_amount, total_amount, current_balance, issue_date, next_due_date, is_active, version, created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row scannable) (*domain.Loan, error) {
	var l domain.Loan
	err := row.Scan(
		&l.LoanID,
		&l.MemberID,
		&l.Principal,
		&l.InterestRate,
		&l.InterestAmount,
		&l.TotalAmount,
		&l.CurrentBalance,
		&l.IssueDate,
		&l.NextDueDate,
		&l.IsActive,
		&l.Version,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// SaveLoan inserts a new loan and its issuance ledger entry within one
// database transaction. The partial unique index on active loans makes a
// concurrent second issuance for the same member fail here even when the
// service-level check passed.
func (r *SQLiteLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan, issued domain.LoanTransaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO loans (loan_id, member_id, principal, interest_rate, interest_amount, total_amount, current_balance, issue_date, next_due_date, is_active, version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		loan.LoanID,
		loan.MemberID,
		loan.Principal,
		loan.InterestRate,
		loan.InterestAmount,
		loan.TotalAmount,
		loan.CurrentBalance,
		loan.IssueDate,
		loan.NextDueDate,
		loan.IsActive,
		loan.Version,
		loan.CreatedAt,
		loan.CreatedBy,
		loan.LastUpdatedAt,
		loan.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: member %s already has an active loan", apperrors.ErrConflict, loan.MemberID)
		}
		return fmt.Errorf("failed to save loan %s: %w", loan.LoanID, err)
	}

	if err := insertLoanTransactions(ctx, tx, []domain.LoanTransaction{issued}); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateLoanWithTransactions updates the loan's mutable state and appends the
// given ledger entries in one database transaction. The update is guarded by
// the loan's version; a lost optimistic locking race writes nothing and
// returns apperrors.ErrConflict.
func (r *SQLiteLoanRepository) UpdateLoanWithTransactions(ctx context.Context, loan domain.Loan, txns []domain.LoanTransaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE loans
		SET current_balance = ?, next_due_date = ?, is_active = ?, last_updated_at = ?, last_updated_by = ?, version = version + 1
		WHERE loan_id = ? AND version = ?`,
		loan.CurrentBalance,
		loan.NextDueDate,
		loan.IsActive,
		loan.LastUpdatedAt,
		loan.LastUpdatedBy,
		loan.LoanID,
		loan.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan %s: %w", loan.LoanID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: loan %s was modified concurrently", apperrors.ErrConflict, loan.LoanID)
	}

	if err := insertLoanTransactions(ctx, tx, txns); err != nil {
		return err
	}

	return tx.Commit()
}

func insertLoanTransactions(ctx context.Context, tx *sql.Tx, txns []domain.LoanTransaction) error {
	for _, txn := range txns {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO loan_transactions (transaction_id, loan_id, amount, transaction_type, notes, transaction_date, created_at, created_by, last_updated_at, last_updated_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			txn.TransactionID,
			txn.LoanID,
			txn.Amount,
			txn.TransactionType,
			txn.Notes,
			txn.TransactionDate,
			txn.CreatedAt,
			txn.CreatedBy,
			txn.LastUpdatedAt,
			txn.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert loan transaction %s: %w", txn.TransactionID, err)
		}
	}
	return nil
}

// FindLoanByID retrieves a loan by its ID.
func (r *SQLiteLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := scanLoan(r.db.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE loan_id = ?`, loanID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan by ID %s: %w", loanID, err)
	}
	return loan, nil
}

// FindActiveLoanByMemberID retrieves the member's active loan. The partial
// unique index guarantees at most one row.
func (r *SQLiteLoanRepository) FindActiveLoanByMemberID(ctx context.Context, memberID string) (*domain.Loan, error) {
	loan, err := scanLoan(r.db.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE member_id = ? AND is_active`, memberID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active loan for member %s: %w", memberID, err)
	}
	return loan, nil
}

// ListActiveLoans retrieves every active loan ordered by due date, earliest
// first.
func (r *SQLiteLoanRepository) ListActiveLoans(ctx context.Context) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE is_active ORDER BY next_due_date, loan_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active loans: %w", err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return loans, nil
}

// FindLoanTransactionsByLoanID retrieves a loan's ledger, oldest first.
func (r *SQLiteLoanRepository) FindLoanTransactionsByLoanID(ctx context.Context, loanID string) ([]domain.LoanTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT transaction_id, loan_id, amount, transaction_type, notes, transaction_date, created_at, created_by, last_updated_at, last_updated_by
		FROM loan_transactions WHERE loan_id = ? ORDER BY transaction_date, created_at`,
		loanID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan transactions for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	txns := []domain.LoanTransaction{}
	for rows.Next() {
		var txn domain.LoanTransaction
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.LoanID,
			&txn.Amount,
			&txn.TransactionType,
			&txn.Notes,
			&txn.TransactionDate,
			&txn.CreatedAt,
			&txn.CreatedBy,
			&txn.LastUpdatedAt,
			&txn.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan transaction row for loan %s: %w", loanID, err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan transaction rows for loan %s: %w", loanID, err)
	}
	return txns, nil
}
