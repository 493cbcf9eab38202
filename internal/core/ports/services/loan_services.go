package services

import (
	"context"
	"time"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	"github.com/SscSPs/savings_loan_app/internal/dto"
)

// LoanReaderSvc defines read operations for loan data
type LoanReaderSvc interface {
	// GetLoanByID retrieves a specific loan by its unique identifier.
	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// GetActiveLoanForMember retrieves the member's active loan, or
	// apperrors.ErrNotFound when the member has none.
	GetActiveLoanForMember(ctx context.Context, memberID string) (*domain.Loan, error)

	// GetLoanTransactions retrieves a loan's ledger, oldest first.
	GetLoanTransactions(ctx context.Context, loanID string) ([]domain.LoanTransaction, error)
}

// LoanWriterSvc defines operations that mutate loan state
type LoanWriterSvc interface {
	// IssueLoan creates a new loan for a member: fixed interest is added at
	// issue, the balance starts at principal plus interest, and the first due
	// date is derived from the request's as-of date.
	IssueLoan(ctx context.Context, req dto.IssueLoanRequest) (*domain.Loan, error)

	// RepayLoan applies any overdue interest as of the payment date, then the
	// payment itself. It returns the updated loan and the interest charges
	// that were applied before the payment.
	RepayLoan(ctx context.Context, loanID string, req dto.RepayLoanRequest) (*domain.Loan, []domain.OverdueCharge, error)

	// ApplyOverdueInterest compounds interest for every due-date cycle missed
	// as of the given date. Calling it again with the same date is a no-op.
	ApplyOverdueInterest(ctx context.Context, loanID string, asOf time.Time) (*domain.Loan, []domain.OverdueCharge, error)

	// ProcessAllOverdue applies overdue interest across every active loan,
	// isolating per-loan failures, and returns the aggregate run report.
	ProcessAllOverdue(ctx context.Context, asOf time.Time) (*domain.OverdueRunReport, error)
}

// LoanSvcFacade combines all loan-related service interfaces
// This is a facade for clients that need access to all operations
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}
