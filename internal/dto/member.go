package dto

import (
	"time"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMemberRequest defines the data needed to register a new member.
// Registration also records the policy's initial deposit in the savings
// ledger, dated with dateJoined.
type CreateMemberRequest struct {
	MemberNumber string `json:"memberNumber" binding:"required"`
	FullName     string `json:"fullName" binding:"required"`
	DateJoined   string `json:"dateJoined" binding:"required"` // YYYY-MM-DD
}

// MemberResponse defines the data returned for a member.
// Mirrors domain.Member.
type MemberResponse struct {
	MemberID       string          `json:"memberID"`
	MemberNumber   string          `json:"memberNumber"`
	FullName       string          `json:"fullName"`
	DateJoined     string          `json:"dateJoined"`
	SavingsBalance decimal.Decimal `json:"savingsBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToMemberResponse converts a domain.Member to MemberResponse DTO
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:       m.MemberID,
		MemberNumber:   m.MemberNumber,
		FullName:       m.FullName,
		DateJoined:     m.DateJoined.Format("2006-01-02"),
		SavingsBalance: m.SavingsBalance,
		CreatedAt:      m.CreatedAt,
		LastUpdatedAt:  m.LastUpdatedAt,
	}
}

// ListMembersParams defines query parameters for listing members.
type ListMembersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListMembersResponse wraps the list of members.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}
