package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/savings_loan_app/internal/apperrors"
	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_loan_app/internal/core/ports/services"
	"github.com/SscSPs/savings_loan_app/internal/dto"
	"github.com/SscSPs/savings_loan_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// memberService provides member registry and savings account operations.
type memberService struct {
	memberRepo portsrepo.MemberRepositoryFacade
	policy     domain.LoanPolicy
}

// NewMemberService creates a new MemberService.
func NewMemberService(memberRepo portsrepo.MemberRepositoryFacade, policy domain.LoanPolicy) portssvc.MemberSvcFacade {
	return &memberService{
		memberRepo: memberRepo,
		policy:     policy,
	}
}

// Ensure memberService implements the portssvc.MemberSvcFacade interface
var _ portssvc.MemberSvcFacade = (*memberService)(nil)

// parseDate parses a YYYY-MM-DD request field into a date.
// Shared by all services that accept as-of dates in request bodies.
func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a valid YYYY-MM-DD date", apperrors.ErrValidation, field)
	}
	return d.UTC(), nil
}

// CreateMember registers a new member. The policy's initial deposit is
// credited to the savings balance and recorded in the savings ledger in the
// same database transaction, dated with the joining date.
func (s *memberService) CreateMember(ctx context.Context, req dto.CreateMemberRequest) (*domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	dateJoined, err := parseDate("dateJoined", req.DateJoined)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	member := domain.Member{
		MemberID:       uuid.NewString(),
		MemberNumber:   req.MemberNumber,
		FullName:       req.FullName,
		DateJoined:     dateJoined,
		SavingsBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.SystemActor,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.SystemActor,
		},
	}

	var initialDeposit *domain.SavingsTransaction
	if s.policy.InitialDeposit.IsPositive() {
		member.SavingsBalance = s.policy.InitialDeposit
		initialDeposit = &domain.SavingsTransaction{
			TransactionID:   uuid.NewString(),
			MemberID:        member.MemberID,
			Amount:          s.policy.InitialDeposit,
			TransactionType: domain.InitialDeposit,
			Notes:           fmt.Sprintf("Initial deposit of %s %s", s.policy.CurrencyCode, s.policy.InitialDeposit.StringFixed(2)),
			TransactionDate: dateJoined,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     domain.SystemActor,
				LastUpdatedAt: now,
				LastUpdatedBy: domain.SystemActor,
			},
		}
	}

	if err := s.memberRepo.SaveMember(ctx, member, initialDeposit); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Member number already registered", slog.String("member_number", req.MemberNumber))
			return nil, fmt.Errorf("%w: member number %s already exists", apperrors.ErrDuplicate, req.MemberNumber)
		}
		logger.Error("Failed to save member in repository", slog.String("error", err.Error()), slog.String("member_number", req.MemberNumber))
		return nil, err
	}

	logger.Info("Member registered successfully", slog.String("member_id", member.MemberID), slog.String("member_number", member.MemberNumber))
	return &member, nil
}

// GetMemberByID retrieves a single member.
func (s *memberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find member by ID in repository", slog.String("error", err.Error()), slog.String("member_id", memberID))
		}
		return nil, err
	}
	return member, nil
}

// ListMembers retrieves a paginated list of members.
func (s *memberService) ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if limit <= 0 {
		limit = 20 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	members, err := s.memberRepo.ListMembers(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list members from repository", slog.String("error", err.Error()), slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	if members == nil {
		return []domain.Member{}, nil // Return empty slice if repo returns nil
	}
	return members, nil
}

// GetSavingsTransactions retrieves a member's savings ledger, oldest first.
func (s *memberService) GetSavingsTransactions(ctx context.Context, memberID string) ([]domain.SavingsTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Confirm the member exists so an unknown ID reports NotFound rather
	// than an empty ledger.
	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		return nil, err
	}

	txns, err := s.memberRepo.FindSavingsTransactionsByMemberID(ctx, memberID)
	if err != nil {
		logger.Error("Failed to list savings transactions from repository", slog.String("error", err.Error()), slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to list savings transactions: %w", err)
	}

	if txns == nil {
		return []domain.SavingsTransaction{}, nil
	}
	return txns, nil
}

// RecordSavingsPayment appends a savings ledger entry and increments the
// member's savings balance. Savings never accrue interest or go overdue.
func (s *memberService) RecordSavingsPayment(ctx context.Context, memberID string, req dto.RecordSavingsPaymentRequest) (*domain.SavingsTransaction, *domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	asOf, err := parseDate("asOfDate", req.AsOfDate)
	if err != nil {
		return nil, nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	txnType := domain.SavingsTransactionType(req.TransactionType)
	if txnType != domain.InitialDeposit && txnType != domain.Subscription {
		// Already constrained by request binding, but guard direct callers too.
		return nil, nil, fmt.Errorf("%w: unknown savings transaction type %s", apperrors.ErrValidation, req.TransactionType)
	}

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find member for savings payment", slog.String("error", err.Error()), slog.String("member_id", memberID))
		}
		return nil, nil, err
	}

	notes := req.Notes
	if notes == "" {
		switch txnType {
		case domain.InitialDeposit:
			notes = fmt.Sprintf("Initial deposit of %s %s", s.policy.CurrencyCode, req.Amount.StringFixed(2))
		case domain.Subscription:
			notes = fmt.Sprintf("Monthly subscription payment of %s %s", s.policy.CurrencyCode, req.Amount.StringFixed(2))
		}
	}

	now := time.Now()
	txn := domain.SavingsTransaction{
		TransactionID:   uuid.NewString(),
		MemberID:        member.MemberID,
		Amount:          req.Amount,
		TransactionType: txnType,
		Notes:           notes,
		TransactionDate: asOf,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.SystemActor,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.SystemActor,
		},
	}

	updated, err := s.memberRepo.SaveSavingsPayment(ctx, txn)
	if err != nil {
		logger.Error("Failed to save savings payment", slog.String("error", err.Error()), slog.String("member_id", memberID))
		return nil, nil, fmt.Errorf("failed to save savings payment: %w", err)
	}

	logger.Info("Savings payment recorded",
		slog.String("member_id", member.MemberID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", req.Amount.StringFixed(2)),
		slog.String("type", string(txnType)))
	return &txn, updated, nil
}
