package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/savings_loan_app/internal/apperrors"
	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_loan_app/internal/core/ports/services"
	"github.com/SscSPs/savings_loan_app/internal/middleware"
	"github.com/SscSPs/savings_loan_app/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	memberRepo    portsrepo.MemberReader
	loanRepo      portsrepo.LoanReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, memberRepo portsrepo.MemberReader, loanRepo portsrepo.LoanReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		memberRepo:    memberRepo,
		loanRepo:      loanRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// MemberSummary combines a member's profile, savings position and active
// loan with its overdue status as of a specific date.
func (s *reportingService) MemberSummary(ctx context.Context, memberID string, asOf time.Time) (*domain.MemberSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find member for summary", slog.String("error", err.Error()), slog.String("member_id", memberID))
		}
		return nil, err
	}

	summary := &domain.MemberSummary{
		Member:     *member,
		TotalSaved: member.SavingsBalance,
	}

	loan, err := s.loanRepo.FindActiveLoanByMemberID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find active loan for summary", slog.String("error", err.Error()), slog.String("member_id", memberID))
			return nil, fmt.Errorf("failed to find active loan: %w", err)
		}
		// No active loan is a perfectly normal summary.
		return summary, nil
	}

	summary.ActiveLoan = loan
	summary.DaysOverdue = accounting.DaysOverdue(loan.NextDueDate, asOf)
	return summary, nil
}

// Dashboard aggregates book-wide totals as of a specific date.
func (s *reportingService) Dashboard(ctx context.Context, asOf time.Time) (*domain.DashboardReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	report, err := s.reportingRepo.GetDashboardData(ctx, accounting.TruncateToDate(asOf))
	if err != nil {
		logger.Error("Failed to retrieve dashboard data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve dashboard data: %w", err)
	}

	logger.Debug("Dashboard generated",
		slog.Int64("total_members", report.TotalMembers),
		slog.Int64("active_loans", report.ActiveLoanCount),
		slog.Int64("overdue_loans", report.OverdueLoanCount))
	return report, nil
}

// ExportMembersCSV streams the member register, one row per member with
// their active loan position, as CSV.
func (s *reportingService) ExportMembersCSV(ctx context.Context, w io.Writer) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.ListMemberExportRows(ctx)
	if err != nil {
		logger.Error("Failed to retrieve member export rows", slog.String("error", err.Error()))
		return fmt.Errorf("failed to retrieve member export rows: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"Member ID", "Full Name", "Date Joined", "Savings Balance",
		"Loan Balance", "Active Loan", "Loan Issue Date", "Next Due Date"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write members CSV header: %w", err)
	}

	for _, row := range rows {
		activeLoan := "No"
		issueDate := ""
		nextDueDate := ""
		if row.HasActiveLoan {
			activeLoan = "Yes"
			if row.LoanIssueDate != nil {
				issueDate = row.LoanIssueDate.Format("2006-01-02")
			}
			if row.LoanNextDueDate != nil {
				nextDueDate = row.LoanNextDueDate.Format("2006-01-02")
			}
		}
		record := []string{
			row.MemberNumber,
			row.FullName,
			row.DateJoined.Format("2006-01-02"),
			row.SavingsBalance.StringFixed(2),
			row.LoanBalance.StringFixed(2),
			activeLoan,
			issueDate,
			nextDueDate,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write members CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush members CSV: %w", err)
	}

	logger.Info("Members CSV export generated", slog.Int("rows", len(rows)))
	return nil
}

// ExportTransactionsCSV streams the combined savings and loan ledgers,
// newest entries first, as CSV.
func (s *reportingService) ExportTransactionsCSV(ctx context.Context, w io.Writer) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.ListTransactionExportRows(ctx)
	if err != nil {
		logger.Error("Failed to retrieve transaction export rows", slog.String("error", err.Error()))
		return fmt.Errorf("failed to retrieve transaction export rows: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"Date", "Member ID", "Member Name", "Transaction Type",
		"Category", "Amount", "Description", "Loan Balance (if applicable)"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write transactions CSV header: %w", err)
	}

	for _, row := range rows {
		loanBalance := ""
		if row.LoanBalance != nil {
			loanBalance = row.LoanBalance.StringFixed(2)
		}
		record := []string{
			row.TransactionDate.Format("2006-01-02 15:04:05"),
			row.MemberNumber,
			row.MemberName,
			row.TransactionType,
			row.Category,
			row.Amount.StringFixed(2),
			row.Notes,
			loanBalance,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write transactions CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush transactions CSV: %w", err)
	}

	logger.Info("Transactions CSV export generated", slog.Int("rows", len(rows)))
	return nil
}
