package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsTransactionType identifies the kind of savings ledger entry.
type SavingsTransactionType string

const (
	InitialDeposit SavingsTransactionType = "INITIAL_DEPOSIT"
	Subscription   SavingsTransactionType = "SUBSCRIPTION"
)

// SavingsTransaction is one append-only entry in a member's savings ledger.
// Entries are immutable once recorded; the member's SavingsBalance is a
// cached sum over them.
type SavingsTransaction struct {
	TransactionID   string                 `json:"transactionID"`   // Primary Key (e.g., UUID)
	MemberID        string                 `json:"memberID"`        // FK -> Member.memberID (Not Null)
	Amount          decimal.Decimal        `json:"amount"`          // Positive value; precise decimal type
	TransactionType SavingsTransactionType `json:"transactionType"` // INITIAL_DEPOSIT or SUBSCRIPTION
	Notes           string                 `json:"notes"`           // Nullable
	TransactionDate time.Time              `json:"transactionDate"` // Business date supplied by the caller
	AuditFields
}
