package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberSummary combines a member's savings position with their active loan,
// evaluated against an explicit as-of date.
type MemberSummary struct {
	Member      Member          `json:"member"`
	ActiveLoan  *Loan           `json:"activeLoan,omitempty"` // Nil when the member has no active loan
	DaysOverdue int             `json:"daysOverdue"`          // 0 when not overdue or no active loan
	TotalSaved  decimal.Decimal `json:"totalSaved"`           // Sum of the member's savings ledger
}

// DashboardReport aggregates the whole book as of a date.
type DashboardReport struct {
	AsOf                   time.Time       `json:"asOf"`
	TotalMembers           int64           `json:"totalMembers"`
	TotalSavings           decimal.Decimal `json:"totalSavings"`
	ActiveLoanCount        int64           `json:"activeLoanCount"`
	OutstandingLoanBalance decimal.Decimal `json:"outstandingLoanBalance"`
	OverdueLoanCount       int64           `json:"overdueLoanCount"`
}

// MemberExportRow is one line of the members CSV export, a member joined
// with their active loan if they have one.
type MemberExportRow struct {
	MemberNumber    string
	FullName        string
	DateJoined      time.Time
	SavingsBalance  decimal.Decimal
	LoanBalance     decimal.Decimal
	HasActiveLoan   bool
	LoanIssueDate   *time.Time
	LoanNextDueDate *time.Time
}

// TransactionExportRow is one line of the combined transactions CSV export.
// Savings and loan ledger entries are flattened into a single shape;
// LoanBalance is nil for savings rows.
type TransactionExportRow struct {
	TransactionDate time.Time
	MemberNumber    string
	MemberName      string
	TransactionType string
	Category        string
	Amount          decimal.Decimal
	Notes           string
	LoanBalance     *decimal.Decimal
}

// LoanOverdueResult records the outcome of applying overdue interest to one
// loan during a batch sweep.
type LoanOverdueResult struct {
	LoanID   string          `json:"loanID"`
	MemberID string          `json:"memberID"`
	Charges  []OverdueCharge `json:"charges"`
	Error    string          `json:"error,omitempty"` // Set when processing this loan failed; other loans continue
}

// OverdueRunReport aggregates a full overdue-interest sweep.
type OverdueRunReport struct {
	AsOf          time.Time           `json:"asOf"`
	LoansChecked  int                 `json:"loansChecked"`
	LoansCharged  int                 `json:"loansCharged"`
	LoansFailed   int                 `json:"loansFailed"`
	TotalInterest decimal.Decimal     `json:"totalInterest"`
	Results       []LoanOverdueResult `json:"results"`
}
