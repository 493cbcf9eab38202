package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
)

// NewRepositoryProvider initializes the SQLite schema and builds the
// repository set on top of the given connection.
func NewRepositoryProvider(db *sql.DB) (portsrepo.RepositoryProvider, error) {
	if err := initSchema(db); err != nil {
		return portsrepo.RepositoryProvider{}, err
	}

	return portsrepo.RepositoryProvider{
		MemberRepo:    newSQLiteMemberRepository(db),
		LoanRepo:      newSQLiteLoanRepository(db),
		ReportingRepo: newSQLiteReportingRepository(db),
	}, nil
}
