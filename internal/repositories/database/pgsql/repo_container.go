package pgsql

import (
	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	memberRepo := newPgxMemberRepository(dbPool)
	loanRepo := newPgxLoanRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		MemberRepo:    memberRepo,
		LoanRepo:      loanRepo,
		ReportingRepo: reportingRepo,
	}
}
