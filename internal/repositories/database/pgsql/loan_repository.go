package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/savings_loan_app/internal/apperrors"
	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan and loan ledger data.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLoanRepository implements portsrepo.LoanRepositoryFacade
var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, member_id, principal, interest_rate, interest_amount, total_amount, current_balance, issue_date, next_due_date, is_active, version, created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row pgx.Row) (*domain.Loan, error) {
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
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan, issued domain.LoanTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	loanQuery := `
		INSERT INTO loans (loan_id, member_id, principal, interest_rate, interest_amount, total_amount, current_balance, issue_date, next_due_date, is_active, version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, loanQuery,
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
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: member %s already has an active loan", apperrors.ErrConflict, loan.MemberID)
		}
		return apperrors.NewAppError(500, "failed to save loan "+loan.LoanID, err)
	}

	if err := insertLoanTransactions(ctx, tx, []domain.LoanTransaction{issued}); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateLoanWithTransactions updates the loan's mutable state and appends the
// given ledger entries in one database transaction. The update is guarded by
// the loan's version; a lost optimistic locking race writes nothing and
// returns apperrors.ErrConflict.
func (r *PgxLoanRepository) UpdateLoanWithTransactions(ctx context.Context, loan domain.Loan, txns []domain.LoanTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE loans
		SET current_balance = $1, next_due_date = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE loan_id = $6 AND version = $7;
	`
	result, err := tx.Exec(ctx, updateQuery,
		loan.CurrentBalance,
		loan.NextDueDate,
		loan.IsActive,
		loan.LastUpdatedAt,
		loan.LastUpdatedBy,
		loan.LoanID,
		loan.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update loan "+loan.LoanID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %s was modified concurrently", apperrors.ErrConflict, loan.LoanID)
	}

	if err := insertLoanTransactions(ctx, tx, txns); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertLoanTransactions(ctx context.Context, tx pgx.Tx, txns []domain.LoanTransaction) error {
	if len(txns) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO loan_transactions (transaction_id, loan_id, amount, transaction_type, notes, transaction_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, txn := range txns {
		batch.Queue(query,
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
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert loan transaction batch", err)
	}
	return nil
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	loan, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan by ID %s: %w", loanID, err)
	}
	return loan, nil
}

// FindActiveLoanByMemberID retrieves the member's active loan. The partial
// unique index guarantees at most one row.
func (r *PgxLoanRepository) FindActiveLoanByMemberID(ctx context.Context, memberID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE member_id = $1 AND is_active;`
	loan, err := scanLoan(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active loan for member %s: %w", memberID, err)
	}
	return loan, nil
}

// ListActiveLoans retrieves every active loan ordered by due date, earliest
// first, so the overdue sweep processes the most overdue loans first.
func (r *PgxLoanRepository) ListActiveLoans(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE is_active ORDER BY next_due_date, loan_id;`
	rows, err := r.Pool.Query(ctx, query)
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
func (r *PgxLoanRepository) FindLoanTransactionsByLoanID(ctx context.Context, loanID string) ([]domain.LoanTransaction, error) {
	query := `
		SELECT transaction_id, loan_id, amount, transaction_type, notes, transaction_date, created_at, created_by, last_updated_at, last_updated_by
		FROM loan_transactions
		WHERE loan_id = $1
		ORDER BY transaction_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
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
