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
	"github.com/SscSPs/savings_loan_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// loanService provides loan issuance, repayment and the overdue interest
// engine. Every mutation is computed in memory first and persisted as one
// atomic repository call, so a failed precondition never leaves partial
// ledger writes behind.
type loanService struct {
	loanRepo   portsrepo.LoanRepositoryFacade
	memberRepo portsrepo.MemberReader
	policy     domain.LoanPolicy
}

// NewLoanService creates a new LoanService.
func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade, memberRepo portsrepo.MemberReader, policy domain.LoanPolicy) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:   loanRepo,
		memberRepo: memberRepo,
		policy:     policy,
	}
}

// Ensure loanService implements the portssvc.LoanSvcFacade interface
var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// IssueLoan creates a loan for a member. Interest is fixed at issue:
// interest = principal * rate, and the opening balance is principal plus
// interest. The issuance is recorded in the loan ledger for that full amount
// so the ledger folds back to the balance from zero.
func (s *loanService) IssueLoan(ctx context.Context, req dto.IssueLoanRequest) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	issueDate, err := parseDate("asOfDate", req.AsOfDate)
	if err != nil {
		return nil, err
	}
	if !req.Principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal must be greater than zero", apperrors.ErrValidation)
	}

	member, err := s.memberRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find member for loan issue", slog.String("error", err.Error()), slog.String("member_id", req.MemberID))
		}
		return nil, err
	}

	// Reject early when the member already holds an active loan. The
	// repository enforces the same rule on save, which closes the race
	// between this check and the insert.
	if _, err := s.loanRepo.FindActiveLoanByMemberID(ctx, member.MemberID); err == nil {
		return nil, fmt.Errorf("%w: member %s already has an active loan", apperrors.ErrConflict, member.MemberID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing active loan", slog.String("error", err.Error()), slog.String("member_id", member.MemberID))
		return nil, fmt.Errorf("failed to check for existing active loan: %w", err)
	}

	interest := req.Principal.Mul(s.policy.InterestRate).Round(2)
	total := req.Principal.Add(interest)
	now := time.Now()

	loan := domain.Loan{
		LoanID:         uuid.NewString(),
		MemberID:       member.MemberID,
		Principal:      req.Principal,
		InterestRate:   s.policy.InterestRate,
		InterestAmount: interest,
		TotalAmount:    total,
		CurrentBalance: total,
		IssueDate:      issueDate,
		NextDueDate:    accounting.NextDueDate(issueDate, s.policy.DueDay),
		IsActive:       true,
		Version:        1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.SystemActor,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.SystemActor,
		},
	}

	issued := domain.LoanTransaction{
		TransactionID:   uuid.NewString(),
		LoanID:          loan.LoanID,
		Amount:          total,
		TransactionType: domain.LoanIssued,
		Notes: fmt.Sprintf("Loan issued: principal %s %s, interest %s %s",
			s.policy.CurrencyCode, req.Principal.StringFixed(2), s.policy.CurrencyCode, interest.StringFixed(2)),
		TransactionDate: issueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.SystemActor,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.SystemActor,
		},
	}

	if err := s.loanRepo.SaveLoan(ctx, loan, issued); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Active loan already exists for member", slog.String("member_id", member.MemberID))
			return nil, fmt.Errorf("%w: member %s already has an active loan", apperrors.ErrConflict, member.MemberID)
		}
		logger.Error("Failed to save loan", slog.String("error", err.Error()), slog.String("member_id", member.MemberID))
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	logger.Info("Loan issued successfully",
		slog.String("loan_id", loan.LoanID),
		slog.String("member_id", member.MemberID),
		slog.String("principal", req.Principal.StringFixed(2)),
		slog.String("total_amount", total.StringFixed(2)),
		slog.String("next_due_date", loan.NextDueDate.Format("2006-01-02")))
	return &loan, nil
}

// computeOverdueCharges compounds the loan's balance through every due-date
// cycle missed as of the given date, without persisting anything. Each
// period's charge is computed on the balance that already includes the
// previous period's charge. Returns the charges in period order, the final
// balance, and the advanced due date; an inactive or not-yet-overdue loan
// yields no charges and its state unchanged.
func (s *loanService) computeOverdueCharges(loan *domain.Loan, asOf time.Time) ([]domain.OverdueCharge, decimal.Decimal, time.Time) {
	balance := loan.CurrentBalance
	if !loan.IsActive {
		return nil, balance, loan.NextDueDate
	}

	months := accounting.MonthsOverdue(loan.NextDueDate, asOf, s.policy.DueDay)
	if months == 0 {
		return nil, balance, loan.NextDueDate
	}

	charges := make([]domain.OverdueCharge, 0, months)
	for period := 1; period <= months; period++ {
		charge := balance.Mul(s.policy.InterestRate).Round(2)
		balance = balance.Add(charge)
		charges = append(charges, domain.OverdueCharge{
			PeriodIndex:  period,
			ChargeAmount: charge,
			NewBalance:   balance,
		})
	}
	return charges, balance, accounting.NextDueDate(asOf, s.policy.DueDay)
}

// chargeTransactions builds the ledger entries for a sequence of overdue
// charges.
func (s *loanService) chargeTransactions(loanID string, charges []domain.OverdueCharge, asOf time.Time, now time.Time) []domain.LoanTransaction {
	txns := make([]domain.LoanTransaction, len(charges))
	for i, c := range charges {
		txns[i] = domain.LoanTransaction{
			TransactionID:   uuid.NewString(),
			LoanID:          loanID,
			Amount:          c.ChargeAmount,
			TransactionType: domain.OverdueInterest,
			Notes: fmt.Sprintf("Overdue interest (month %d): %s %s",
				c.PeriodIndex, s.policy.CurrencyCode, c.ChargeAmount.StringFixed(2)),
			TransactionDate: asOf,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     domain.SystemActor,
				LastUpdatedAt: now,
				LastUpdatedBy: domain.SystemActor,
			},
		}
	}
	return txns
}

// applyOverdueToLoan compounds and persists overdue interest for one loan.
// A loan that is inactive or not yet overdue is returned as-is with no
// charges, which also makes a repeated call with the same date a no-op once
// the due date has been advanced.
func (s *loanService) applyOverdueToLoan(ctx context.Context, loan *domain.Loan, asOf time.Time) (*domain.Loan, []domain.OverdueCharge, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	charges, newBalance, newDueDate := s.computeOverdueCharges(loan, asOf)
	if len(charges) == 0 {
		return loan, nil, nil
	}

	now := time.Now()
	updated := *loan
	updated.CurrentBalance = newBalance
	updated.NextDueDate = newDueDate
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = domain.SystemActor

	txns := s.chargeTransactions(loan.LoanID, charges, asOf, now)
	if err := s.loanRepo.UpdateLoanWithTransactions(ctx, updated, txns); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent update detected while applying overdue interest", slog.String("loan_id", loan.LoanID))
			return nil, nil, fmt.Errorf("%w: loan %s was modified concurrently", apperrors.ErrConflict, loan.LoanID)
		}
		logger.Error("Failed to persist overdue interest", slog.String("error", err.Error()), slog.String("loan_id", loan.LoanID))
		return nil, nil, fmt.Errorf("failed to persist overdue interest: %w", err)
	}
	updated.Version++ // mirror the version bump applied by the guarded update

	logger.Info("Overdue interest applied",
		slog.String("loan_id", loan.LoanID),
		slog.Int("periods", len(charges)),
		slog.String("new_balance", newBalance.StringFixed(2)),
		slog.String("next_due_date", newDueDate.Format("2006-01-02")))
	return &updated, charges, nil
}

// ApplyOverdueInterest brings a single loan current on overdue interest as
// of the given date.
func (s *loanService) ApplyOverdueInterest(ctx context.Context, loanID string, asOf time.Time) (*domain.Loan, []domain.OverdueCharge, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find loan for overdue interest", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		}
		return nil, nil, err
	}

	return s.applyOverdueToLoan(ctx, loan, accounting.TruncateToDate(asOf))
}

// RepayLoan records a payment against an active loan. Overdue interest as of
// the payment date is settled first, then the payment must not exceed the
// post-interest balance. Charges and the repayment are written together; a
// rejected payment therefore persists nothing, not even the interest
// computed on the way in.
func (s *loanService) RepayLoan(ctx context.Context, loanID string, req dto.RepayLoanRequest) (*domain.Loan, []domain.OverdueCharge, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	asOf, err := parseDate("asOfDate", req.AsOfDate)
	if err != nil {
		return nil, nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrValidation)
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find loan for repayment", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		}
		return nil, nil, err
	}

	if !loan.IsActive {
		return nil, nil, fmt.Errorf("%w: loan %s is not active", apperrors.ErrInvalidState, loanID)
	}

	charges, balance, dueDate := s.computeOverdueCharges(loan, asOf)

	if req.Amount.GreaterThan(balance) {
		return nil, nil, fmt.Errorf("%w: payment %s exceeds outstanding balance %s",
			apperrors.ErrValidation, req.Amount.StringFixed(2), balance.StringFixed(2))
	}

	now := time.Now()
	balance = balance.Sub(req.Amount)

	updated := *loan
	updated.CurrentBalance = balance
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = domain.SystemActor
	if balance.IsZero() {
		// Fully settled; the due date stays where the overdue engine left it.
		updated.IsActive = false
		updated.NextDueDate = dueDate
	} else {
		updated.NextDueDate = accounting.NextDueDate(asOf, s.policy.DueDay)
	}

	notes := req.Notes
	if notes == "" {
		notes = fmt.Sprintf("Loan repayment of %s %s", s.policy.CurrencyCode, req.Amount.StringFixed(2))
	}

	txns := s.chargeTransactions(loan.LoanID, charges, asOf, now)
	txns = append(txns, domain.LoanTransaction{
		TransactionID:   uuid.NewString(),
		LoanID:          loan.LoanID,
		Amount:          req.Amount,
		TransactionType: domain.Repayment,
		Notes:           notes,
		TransactionDate: asOf,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.SystemActor,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.SystemActor,
		},
	})

	if err := s.loanRepo.UpdateLoanWithTransactions(ctx, updated, txns); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent update detected while repaying loan", slog.String("loan_id", loanID))
			return nil, nil, fmt.Errorf("%w: loan %s was modified concurrently, retry the payment", apperrors.ErrConflict, loanID)
		}
		logger.Error("Failed to persist loan repayment", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		return nil, nil, fmt.Errorf("failed to persist loan repayment: %w", err)
	}
	updated.Version++ // mirror the version bump applied by the guarded update

	if updated.IsActive {
		logger.Info("Loan repayment recorded",
			slog.String("loan_id", loan.LoanID),
			slog.String("amount", req.Amount.StringFixed(2)),
			slog.String("remaining_balance", balance.StringFixed(2)),
			slog.Int("overdue_periods_applied", len(charges)))
	} else {
		logger.Info("Loan fully repaid and closed",
			slog.String("loan_id", loan.LoanID),
			slog.String("amount", req.Amount.StringFixed(2)),
			slog.Int("overdue_periods_applied", len(charges)))
	}
	return &updated, charges, nil
}

// ProcessAllOverdue applies overdue interest across every active loan.
// Failures are isolated per loan: one loan's error is recorded in the run
// report and the sweep continues with the rest.
func (s *loanService) ProcessAllOverdue(ctx context.Context, asOf time.Time) (*domain.OverdueRunReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	asOf = accounting.TruncateToDate(asOf)

	loans, err := s.loanRepo.ListActiveLoans(ctx)
	if err != nil {
		logger.Error("Failed to list active loans for overdue run", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}

	report := &domain.OverdueRunReport{
		AsOf:          asOf,
		LoansChecked:  len(loans),
		TotalInterest: decimal.Zero,
		Results:       make([]domain.LoanOverdueResult, 0, len(loans)),
	}

	for i := range loans {
		loan := loans[i]
		result := domain.LoanOverdueResult{
			LoanID:   loan.LoanID,
			MemberID: loan.MemberID,
		}

		_, charges, err := s.applyOverdueToLoan(ctx, &loan, asOf)
		if err != nil {
			logger.Error("Overdue processing failed for loan", slog.String("error", err.Error()), slog.String("loan_id", loan.LoanID))
			result.Error = err.Error()
			report.LoansFailed++
		} else if len(charges) > 0 {
			result.Charges = charges
			report.LoansCharged++
			for _, c := range charges {
				report.TotalInterest = report.TotalInterest.Add(c.ChargeAmount)
			}
		}
		report.Results = append(report.Results, result)
	}

	logger.Info("Overdue processing run completed",
		slog.String("as_of", asOf.Format("2006-01-02")),
		slog.Int("loans_checked", report.LoansChecked),
		slog.Int("loans_charged", report.LoansCharged),
		slog.Int("loans_failed", report.LoansFailed),
		slog.String("total_interest", report.TotalInterest.StringFixed(2)))
	return report, nil
}

// GetLoanByID retrieves a single loan.
func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find loan by ID in repository", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		}
		return nil, err
	}
	return loan, nil
}

// GetActiveLoanForMember retrieves the member's active loan, or
// apperrors.ErrNotFound when the member has none.
func (s *loanService) GetActiveLoanForMember(ctx context.Context, memberID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	loan, err := s.loanRepo.FindActiveLoanByMemberID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find active loan for member", slog.String("error", err.Error()), slog.String("member_id", memberID))
		}
		return nil, err
	}
	return loan, nil
}

// GetLoanTransactions retrieves a loan's ledger, oldest first.
func (s *loanService) GetLoanTransactions(ctx context.Context, loanID string) ([]domain.LoanTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Confirm the loan exists so an unknown ID reports NotFound rather than
	// an empty ledger.
	if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
		return nil, err
	}

	txns, err := s.loanRepo.FindLoanTransactionsByLoanID(ctx, loanID)
	if err != nil {
		logger.Error("Failed to list loan transactions from repository", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to list loan transactions: %w", err)
	}

	if txns == nil {
		return []domain.LoanTransaction{}, nil
	}
	return txns, nil
}
