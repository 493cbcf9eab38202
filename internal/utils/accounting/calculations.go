package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TruncateToDate normalizes a timestamp to its UTC calendar date. All due-date
// arithmetic works on whole days; callers may pass timestamps with a time
// component (e.g. time.Now()).
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextDueDate computes the next loan due date relative to a reference date:
// the dueDay of the reference month when the reference falls on or before the
// dueDay, otherwise the dueDay of the following month. time.Date normalizes
// month 13, so December rolls into January of the next year.
func NextDueDate(reference time.Time, dueDay int) time.Time {
	ref := TruncateToDate(reference)
	if ref.Day() <= dueDay {
		return time.Date(ref.Year(), ref.Month(), dueDay, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(ref.Year(), ref.Month()+1, dueDay, 0, 0, 0, 0, time.UTC)
}

// MonthsOverdue counts the due-day boundaries crossed between a loan's next
// due date and an as-of date: zero when the as-of date is on or before the
// due date, otherwise the number of whole due-date cycles in
// [nextDueDate, asOf), which is always at least one. Both arguments are
// truncated to dates before comparison.
func MonthsOverdue(nextDueDate, asOf time.Time, dueDay int) int {
	due := TruncateToDate(nextDueDate)
	ref := TruncateToDate(asOf)
	if !ref.After(due) {
		return 0
	}
	// The boundary count equals the month span from the missed due date to
	// the due date that follows asOf.
	next := NextDueDate(ref, dueDay)
	return (next.Year()-due.Year())*12 + int(next.Month()) - int(due.Month())
}

// DaysOverdue returns the number of whole days the as-of date is past the due
// date, or zero when not overdue.
func DaysOverdue(nextDueDate, asOf time.Time) int {
	due := TruncateToDate(nextDueDate)
	ref := TruncateToDate(asOf)
	if !ref.After(due) {
		return 0
	}
	return int(ref.Sub(due).Hours() / 24)
}

// SignedLoanAmount applies the ledger sign convention to a loan transaction:
// issuance and overdue interest increase the outstanding balance, repayments
// decrease it. Amounts are stored as positive magnitudes.
func SignedLoanAmount(txn domain.LoanTransaction) (decimal.Decimal, error) {
	switch txn.TransactionType {
	case domain.LoanIssued, domain.OverdueInterest:
		return txn.Amount, nil
	case domain.Repayment:
		return txn.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown loan transaction type '%s' for transaction ID %s", txn.TransactionType, txn.TransactionID)
	}
}

// ReconstructLoanBalance left-folds a loan's ledger from zero. The result
// must equal the loan's cached CurrentBalance; the ledger is the source of
// truth.
func ReconstructLoanBalance(transactions []domain.LoanTransaction) (decimal.Decimal, error) {
	balance := decimal.Zero
	for _, txn := range transactions {
		if txn.Amount.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, fmt.Errorf("transaction amount must be positive for transaction ID %s", txn.TransactionID)
		}
		signed, err := SignedLoanAmount(txn)
		if err != nil {
			return decimal.Zero, err
		}
		balance = balance.Add(signed)
	}
	return balance, nil
}

// ValidateLoanLedger checks that a loan's cached balance matches the fold of
// its ledger.
func ValidateLoanLedger(loan domain.Loan, transactions []domain.LoanTransaction) error {
	reconstructed, err := ReconstructLoanBalance(transactions)
	if err != nil {
		return err
	}
	if !reconstructed.Equal(loan.CurrentBalance) {
		return fmt.Errorf("loan %s ledger reconstructs to %s but cached balance is %s",
			loan.LoanID, reconstructed.String(), loan.CurrentBalance.String())
	}
	return nil
}
