package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member represents a registered savings group member within the core domain.
// This is the primary representation used by services.
type Member struct {
	MemberID       string          `json:"memberID"`       // Primary Key (e.g., UUID)
	MemberNumber   string          `json:"memberNumber"`   // Business identifier, unique (e.g., "MEM001")
	FullName       string          `json:"fullName"`       // Member's full name
	DateJoined     time.Time       `json:"dateJoined"`     // Registration date
	SavingsBalance decimal.Decimal `json:"savingsBalance"` // Cached projection of the savings ledger
	AuditFields                    // Embed CreatedAt, CreatedBy, etc.
}
