package dto

import (
	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MemberSummaryResponse combines a member's profile, savings position and
// active loan (if any) into one view.
type MemberSummaryResponse struct {
	Member      MemberResponse  `json:"member"`
	TotalSaved  decimal.Decimal `json:"totalSaved"`
	ActiveLoan  *LoanResponse   `json:"activeLoan,omitempty"`
	DaysOverdue int             `json:"daysOverdue"`
}

// ToMemberSummaryResponse converts a domain.MemberSummary to its DTO
func ToMemberSummaryResponse(s *domain.MemberSummary) MemberSummaryResponse {
	resp := MemberSummaryResponse{
		Member:      ToMemberResponse(&s.Member),
		TotalSaved:  s.TotalSaved,
		DaysOverdue: s.DaysOverdue,
	}
	if s.ActiveLoan != nil {
		loan := ToLoanResponse(s.ActiveLoan)
		resp.ActiveLoan = &loan
	}
	return resp
}

// DashboardResponse summarizes the society's position as of a date.
type DashboardResponse struct {
	AsOf                   string          `json:"asOf"`
	TotalMembers           int64           `json:"totalMembers"`
	TotalSavings           decimal.Decimal `json:"totalSavings"`
	ActiveLoanCount        int64           `json:"activeLoanCount"`
	OutstandingLoanBalance decimal.Decimal `json:"outstandingLoanBalance"`
	OverdueLoanCount       int64           `json:"overdueLoanCount"`
}

// ToDashboardResponse converts a domain.DashboardReport to its DTO
func ToDashboardResponse(r *domain.DashboardReport) DashboardResponse {
	return DashboardResponse{
		AsOf:                   r.AsOf.Format("2006-01-02"),
		TotalMembers:           r.TotalMembers,
		TotalSavings:           r.TotalSavings,
		ActiveLoanCount:        r.ActiveLoanCount,
		OutstandingLoanBalance: r.OutstandingLoanBalance,
		OverdueLoanCount:       r.OverdueLoanCount,
	}
}
