package services

import (
	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_loan_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(policy domain.LoanPolicy, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Member = NewMemberService(repos.MemberRepo, policy)
	container.Loan = NewLoanService(repos.LoanRepo, repos.MemberRepo, policy)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.MemberRepo, repos.LoanRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MemberSvcFacade  = (*memberService)(nil)
	_ portssvc.LoanSvcFacade    = (*loanService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
)
