package dto

import (
	"time"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssueLoanRequest defines the data needed to issue a loan to a member.
type IssueLoanRequest struct {
	MemberID  string          `json:"memberID" binding:"required"`
	Principal decimal.Decimal `json:"principal" binding:"required"`
	AsOfDate  string          `json:"asOfDate" binding:"required"` // YYYY-MM-DD
}

// RepayLoanRequest defines the data needed to record a repayment.
type RepayLoanRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Notes    string          `json:"notes"`
	AsOfDate string          `json:"asOfDate" binding:"required"` // YYYY-MM-DD
}

// ApplyOverdueRequest defines the data needed to bring a single loan
// current on overdue interest.
type ApplyOverdueRequest struct {
	AsOfDate string `json:"asOfDate" binding:"required"` // YYYY-MM-DD
}

// ProcessOverdueRequest defines the data needed to run the overdue sweep
// across all active loans.
type ProcessOverdueRequest struct {
	AsOfDate string `json:"asOfDate" binding:"required"` // YYYY-MM-DD
}

// LoanResponse defines the data returned for a loan.
// Mirrors domain.Loan.
type LoanResponse struct {
	LoanID         string          `json:"loanID"`
	MemberID       string          `json:"memberID"`
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	InterestAmount decimal.Decimal `json:"interestAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IssueDate      string          `json:"issueDate"`
	NextDueDate    string          `json:"nextDueDate"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse DTO
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:         l.LoanID,
		MemberID:       l.MemberID,
		Principal:      l.Principal,
		InterestRate:   l.InterestRate,
		InterestAmount: l.InterestAmount,
		TotalAmount:    l.TotalAmount,
		CurrentBalance: l.CurrentBalance,
		IssueDate:      l.IssueDate.Format("2006-01-02"),
		NextDueDate:    l.NextDueDate.Format("2006-01-02"),
		IsActive:       l.IsActive,
		CreatedAt:      l.CreatedAt,
		LastUpdatedAt:  l.LastUpdatedAt,
	}
}

// LoanTransactionResponse defines the data returned for a loan ledger entry.
type LoanTransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	LoanID          string          `json:"loanID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	Notes           string          `json:"notes,omitempty"`
	TransactionDate string          `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToLoanTransactionResponse converts a domain.LoanTransaction to its DTO
func ToLoanTransactionResponse(txn *domain.LoanTransaction) LoanTransactionResponse {
	return LoanTransactionResponse{
		TransactionID:   txn.TransactionID,
		LoanID:          txn.LoanID,
		Amount:          txn.Amount,
		TransactionType: string(txn.TransactionType),
		Notes:           txn.Notes,
		TransactionDate: txn.TransactionDate.Format("2006-01-02"),
		CreatedAt:       txn.CreatedAt,
	}
}

// ListLoanTransactionsResponse wraps a loan's ledger.
type ListLoanTransactionsResponse struct {
	Transactions []LoanTransactionResponse `json:"transactions"`
}

// OverdueChargeResponse describes one compounding period applied to a loan.
type OverdueChargeResponse struct {
	PeriodIndex  int             `json:"periodIndex"`
	ChargeAmount decimal.Decimal `json:"chargeAmount"`
	NewBalance   decimal.Decimal `json:"newBalance"`
}

// ToOverdueChargeResponses converts a slice of domain.OverdueCharge to DTOs
func ToOverdueChargeResponses(charges []domain.OverdueCharge) []OverdueChargeResponse {
	out := make([]OverdueChargeResponse, len(charges))
	for i, c := range charges {
		out[i] = OverdueChargeResponse{
			PeriodIndex:  c.PeriodIndex,
			ChargeAmount: c.ChargeAmount,
			NewBalance:   c.NewBalance,
		}
	}
	return out
}

// RepayLoanResponse returns the loan after a repayment, along with any
// overdue interest charges that were applied before the payment.
type RepayLoanResponse struct {
	Loan           LoanResponse            `json:"loan"`
	ChargesApplied []OverdueChargeResponse `json:"chargesApplied"`
}

// ApplyOverdueResponse returns the loan after overdue interest was applied.
type ApplyOverdueResponse struct {
	Loan           LoanResponse            `json:"loan"`
	ChargesApplied []OverdueChargeResponse `json:"chargesApplied"`
}

// LoanOverdueResultResponse describes the sweep outcome for a single loan.
type LoanOverdueResultResponse struct {
	LoanID   string                  `json:"loanID"`
	MemberID string                  `json:"memberID"`
	Charges  []OverdueChargeResponse `json:"charges,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

// OverdueRunReportResponse summarizes one overdue sweep across all
// active loans.
type OverdueRunReportResponse struct {
	AsOf          string                      `json:"asOf"`
	LoansChecked  int                         `json:"loansChecked"`
	LoansCharged  int                         `json:"loansCharged"`
	LoansFailed   int                         `json:"loansFailed"`
	TotalInterest decimal.Decimal             `json:"totalInterest"`
	Results       []LoanOverdueResultResponse `json:"results"`
}

// ToOverdueRunReportResponse converts a domain.OverdueRunReport to its DTO
func ToOverdueRunReportResponse(r *domain.OverdueRunReport) OverdueRunReportResponse {
	results := make([]LoanOverdueResultResponse, len(r.Results))
	for i, res := range r.Results {
		results[i] = LoanOverdueResultResponse{
			LoanID:   res.LoanID,
			MemberID: res.MemberID,
			Charges:  ToOverdueChargeResponses(res.Charges),
			Error:    res.Error,
		}
	}
	return OverdueRunReportResponse{
		AsOf:          r.AsOf.Format("2006-01-02"),
		LoansChecked:  r.LoansChecked,
		LoansCharged:  r.LoansCharged,
		LoansFailed:   r.LoansFailed,
		TotalInterest: r.TotalInterest,
		Results:       results,
	}
}
