package dto

import (
	"time"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordSavingsPaymentRequest defines the data needed to record a savings
// payment against a member.
type RecordSavingsPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionType string          `json:"transactionType" binding:"required,oneof=INITIAL_DEPOSIT SUBSCRIPTION"`
	Notes           string          `json:"notes"`
	AsOfDate        string          `json:"asOfDate" binding:"required"` // YYYY-MM-DD
}

// SavingsTransactionResponse defines the data returned for a savings
// ledger entry.
type SavingsTransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	MemberID        string          `json:"memberID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	Notes           string          `json:"notes,omitempty"`
	TransactionDate string          `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToSavingsTransactionResponse converts a domain.SavingsTransaction to its DTO
func ToSavingsTransactionResponse(txn *domain.SavingsTransaction) SavingsTransactionResponse {
	return SavingsTransactionResponse{
		TransactionID:   txn.TransactionID,
		MemberID:        txn.MemberID,
		Amount:          txn.Amount,
		TransactionType: string(txn.TransactionType),
		Notes:           txn.Notes,
		TransactionDate: txn.TransactionDate.Format("2006-01-02"),
		CreatedAt:       txn.CreatedAt,
	}
}

// RecordSavingsPaymentResponse returns the recorded entry along with the
// member carrying the updated savings balance.
type RecordSavingsPaymentResponse struct {
	Transaction SavingsTransactionResponse `json:"transaction"`
	Member      MemberResponse             `json:"member"`
}

// ListSavingsTransactionsResponse wraps a member's savings ledger.
type ListSavingsTransactionsResponse struct {
	Transactions []SavingsTransactionResponse `json:"transactions"`
}
