package repositories

import (
	"context"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
)

// LoanReader defines read operations for loan data
type LoanReader interface {
	// FindLoanByID retrieves a specific loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindActiveLoanByMemberID retrieves the member's active loan, or
	// apperrors.ErrNotFound when the member has none.
	FindActiveLoanByMemberID(ctx context.Context, memberID string) (*domain.Loan, error)

	// ListActiveLoans retrieves every active loan, for batch overdue processing.
	ListActiveLoans(ctx context.Context) ([]domain.Loan, error)

	// FindLoanTransactionsByLoanID retrieves a loan's ledger, oldest first.
	FindLoanTransactionsByLoanID(ctx context.Context, loanID string) ([]domain.LoanTransaction, error)
}

// LoanWriter defines write operations for loan data
type LoanWriter interface {
	// SaveLoan persists a new loan together with its issuance ledger entry,
	// atomically. A second active loan for the member returns
	// apperrors.ErrConflict.
	SaveLoan(ctx context.Context, loan domain.Loan, issued domain.LoanTransaction) error

	// UpdateLoanWithTransactions updates the loan's mutable state (balance,
	// due date, active flag) and appends the given ledger entries in one
	// database transaction. The update is guarded by the loan's Version;
	// a lost optimistic locking race returns apperrors.ErrConflict and
	// writes nothing.
	UpdateLoanWithTransactions(ctx context.Context, loan domain.Loan, txns []domain.LoanTransaction) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
// This is a facade for clients that need access to all operations
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
