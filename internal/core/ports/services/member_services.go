package services

import (
	"context"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	"github.com/SscSPs/savings_loan_app/internal/dto"
)

// MemberReaderSvc defines read operations for member data
type MemberReaderSvc interface {
	// GetMemberByID retrieves a specific member by its unique identifier.
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// ListMembers retrieves a paginated list of members.
	ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error)

	// GetSavingsTransactions retrieves a member's savings ledger, oldest first.
	GetSavingsTransactions(ctx context.Context, memberID string) ([]domain.SavingsTransaction, error)
}

// MemberWriterSvc defines write operations for member data
type MemberWriterSvc interface {
	// CreateMember registers a new member and records the policy's initial
	// deposit in the savings ledger.
	CreateMember(ctx context.Context, req dto.CreateMemberRequest) (*domain.Member, error)

	// RecordSavingsPayment appends a savings transaction and updates the
	// member's savings balance. The returned member reflects the new balance.
	RecordSavingsPayment(ctx context.Context, memberID string, req dto.RecordSavingsPaymentRequest) (*domain.SavingsTransaction, *domain.Member, error)
}

// MemberSvcFacade combines all member-related service interfaces
// This is a facade for clients that need access to all operations
type MemberSvcFacade interface {
	MemberReaderSvc
	MemberWriterSvc
}
