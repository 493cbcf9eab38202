package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanTransactionType identifies the kind of loan ledger entry.
type LoanTransactionType string

const (
	LoanIssued      LoanTransactionType = "LOAN_ISSUED"
	Repayment       LoanTransactionType = "REPAYMENT"
	OverdueInterest LoanTransactionType = "OVERDUE_INTEREST"
)

// Loan is the primary state machine of the system. The loan ledger is the
// source of truth; CurrentBalance is a cached projection that must equal
// issued + overdue interest - repayments at all times.
type Loan struct {
	LoanID         string          `json:"loanID"`         // Primary Key (e.g., UUID)
	MemberID       string          `json:"memberID"`       // FK -> Member.memberID (Not Null)
	Principal      decimal.Decimal `json:"principal"`      // Original amount lent, > 0
	InterestRate   decimal.Decimal `json:"interestRate"`   // Fraction fixed at issue (e.g. 0.20)
	InterestAmount decimal.Decimal `json:"interestAmount"` // Principal * InterestRate, computed once at issue
	TotalAmount    decimal.Decimal `json:"totalAmount"`    // Principal + InterestAmount, immutable
	CurrentBalance decimal.Decimal `json:"currentBalance"` // Outstanding amount, never negative
	IssueDate      time.Time       `json:"issueDate"`      // Business date the loan was issued
	NextDueDate    time.Time       `json:"nextDueDate"`    // Always lands on the policy due day
	IsActive       bool            `json:"isActive"`       // False exactly when CurrentBalance is zero
	Version        int64           `json:"version"`        // Optimistic locking version
	AuditFields
}

// LoanTransaction is one append-only entry in a loan's ledger. Amounts are
// recorded as positive magnitudes; TransactionType carries the sign
// convention (issuance and interest increase the balance, repayments
// decrease it).
type LoanTransaction struct {
	TransactionID   string              `json:"transactionID"`   // Primary Key (e.g., UUID)
	LoanID          string              `json:"loanID"`          // FK -> Loan.loanID (Not Null)
	Amount          decimal.Decimal     `json:"amount"`          // Positive magnitude
	TransactionType LoanTransactionType `json:"transactionType"` // LOAN_ISSUED, REPAYMENT or OVERDUE_INTEREST
	Notes           string              `json:"notes"`           // Nullable
	TransactionDate time.Time           `json:"transactionDate"` // Business date supplied by the caller
	AuditFields
}

// OverdueCharge describes one compounded interest period applied to a loan.
type OverdueCharge struct {
	PeriodIndex  int             `json:"periodIndex"`  // 1-based position within the overdue episode
	ChargeAmount decimal.Decimal `json:"chargeAmount"` // Balance * rate for this period
	NewBalance   decimal.Decimal `json:"newBalance"`   // Balance after the charge was added
}
