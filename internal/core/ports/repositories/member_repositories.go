package repositories

import (
	"context"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
)

// MemberReader defines read operations for member data
type MemberReader interface {
	// FindMemberByID retrieves a specific member by its unique identifier.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByNumber retrieves a member by its business member number.
	FindMemberByNumber(ctx context.Context, memberNumber string) (*domain.Member, error)

	// ListMembers retrieves a paginated list of members ordered by date joined.
	ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error)

	// FindSavingsTransactionsByMemberID retrieves a member's savings ledger, oldest first.
	FindSavingsTransactionsByMemberID(ctx context.Context, memberID string) ([]domain.SavingsTransaction, error)
}

// MemberWriter defines write operations for member data
type MemberWriter interface {
	// SaveMember persists a new member together with the optional initial
	// deposit ledger entry, atomically. A duplicate member number returns
	// apperrors.ErrDuplicate.
	SaveMember(ctx context.Context, member domain.Member, initialDeposit *domain.SavingsTransaction) error

	// SaveSavingsPayment appends a savings ledger entry and increments the
	// member's cached savings balance in the same database transaction,
	// returning the refreshed member.
	SaveSavingsPayment(ctx context.Context, txn domain.SavingsTransaction) (*domain.Member, error)
}

// MemberRepositoryFacade combines all member-related repository interfaces
// This is a facade for clients that need access to all operations
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
