package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/savings_loan_app/internal/apperrors"
	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portssvc "github.com/SscSPs/savings_loan_app/internal/core/ports/services"
	"github.com/SscSPs/savings_loan_app/internal/dto"
	"github.com/SscSPs/savings_loan_app/internal/middleware"
	"github.com/SscSPs/savings_loan_app/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// loanHandler handles HTTP requests related to loans.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
	metrics     *metrics.MetricsCollector
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(ls portssvc.LoanSvcFacade, mc *metrics.MetricsCollector) *loanHandler {
	return &loanHandler{
		loanService: ls,
		metrics:     mc,
	}
}

// RegisterLoanRoutes registers routes related to loans and overdue processing.
func RegisterLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, mc *metrics.MetricsCollector) {
	h := newLoanHandler(loanService, mc)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.issueLoan)
		loans.GET("/:loan_id", h.getLoan)
		loans.GET("/:loan_id/transactions", h.listLoanTransactions)
		loans.POST("/:loan_id/repayments", h.repayLoan)
		loans.POST("/:loan_id/overdue-interest", h.applyOverdueInterest)
	}

	// The sweep acts on the whole book, not a single loan, so it gets its own
	// resource.
	rg.POST("/overdue-runs", h.processAllOverdue)

	// A member's active loan, addressed from the member side.
	rg.GET("/members/:member_id/loan", h.getActiveLoanForMember)
}

// chargesTotal sums a batch of overdue charges for metrics reporting.
func chargesTotal(charges []domain.OverdueCharge) float64 {
	total := decimal.Zero
	for _, c := range charges {
		total = total.Add(c.ChargeAmount)
	}
	return total.InexactFloat64()
}

// issueLoan godoc
// @Summary Issue a loan
// @Description Issues a loan to a member with fixed interest added at issuance
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.IssueLoanRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 409 {object} map[string]string "Member already has an active loan"
// @Failure 500 {object} map[string]string "Failed to issue loan"
// @Router /loans [post]
func (h *loanHandler) issueLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("member_id", req.MemberID))
	logger.Info("Received request to issue loan", slog.String("principal", req.Principal.String()))

	loan, err := h.loanService.IssueLoan(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error issuing loan", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Member not found for loan issue")
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Member already has an active loan")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to issue loan in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue loan"})
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLoanIssued()
	}

	logger.Info("Loan issued successfully", slog.String("loan_id", loan.LoanID))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// getLoan godoc
// @Summary Get a loan by ID
// @Description Retrieves details for a specific loan by its ID
// @Tags loans
// @Produce  json
// @Param   loan_id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 500 {object} map[string]string "Failed to retrieve loan"
// @Router /loans/{loan_id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loan_id")

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Loan not found", slog.String("loan_id", loanID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		} else {
			logger.Error("Failed to get loan from service", slog.String("error", err.Error()), slog.String("loan_id", loanID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// getActiveLoanForMember godoc
// @Summary Get a member's active loan
// @Description Retrieves the member's currently active loan, if any
// @Tags loans
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} map[string]string "No active loan for member"
// @Failure 500 {object} map[string]string "Failed to retrieve loan"
// @Router /members/{member_id}/loan [get]
func (h *loanHandler) getActiveLoanForMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("member_id")

	loan, err := h.loanService.GetActiveLoanForMember(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No active loan for member", slog.String("member_id", memberID))
			c.JSON(http.StatusNotFound, gin.H{"error": "No active loan for member"})
		} else {
			logger.Error("Failed to get active loan from service", slog.String("error", err.Error()), slog.String("member_id", memberID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// listLoanTransactions godoc
// @Summary List a loan's transactions
// @Description Retrieves the loan's ledger, oldest entries first
// @Tags loans
// @Produce  json
// @Param   loan_id path string true "Loan ID"
// @Success 200 {object} dto.ListLoanTransactionsResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 500 {object} map[string]string "Failed to list loan transactions"
// @Router /loans/{loan_id}/transactions [get]
func (h *loanHandler) listLoanTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loan_id")

	txns, err := h.loanService.GetLoanTransactions(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Loan not found for transactions", slog.String("loan_id", loanID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		} else {
			logger.Error("Failed to list loan transactions from service", slog.String("error", err.Error()), slog.String("loan_id", loanID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list loan transactions"})
		}
		return
	}

	txnResponses := make([]dto.LoanTransactionResponse, len(txns))
	for i, txn := range txns {
		txnResponses[i] = dto.ToLoanTransactionResponse(&txn)
	}

	c.JSON(http.StatusOK, dto.ListLoanTransactionsResponse{Transactions: txnResponses})
}

// repayLoan godoc
// @Summary Record a loan repayment
// @Description Settles any overdue interest as of the payment date, then applies the payment; a full payoff closes the loan
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan_id path string true "Loan ID"
// @Param   payment body dto.RepayLoanRequest true "Payment details"
// @Success 200 {object} dto.RepayLoanResponse
// @Failure 400 {object} map[string]string "Invalid input or payment exceeds balance"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 409 {object} map[string]string "Loan was modified concurrently"
// @Failure 422 {object} map[string]string "Loan is not active"
// @Failure 500 {object} map[string]string "Failed to record repayment"
// @Router /loans/{loan_id}/repayments [post]
func (h *loanHandler) repayLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loan_id")

	var req dto.RepayLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RepayLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("loan_id", loanID))
	logger.Info("Received request to repay loan", slog.String("amount", req.Amount.String()))

	loan, charges, err := h.loanService.RepayLoan(c.Request.Context(), loanID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error repaying loan", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Loan not found for repayment")
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Loan not active for repayment", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent modification while repaying loan")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to repay loan in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record repayment"})
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLoanRepayment()
		if len(charges) > 0 {
			h.metrics.RecordOverdueCharges(len(charges), chargesTotal(charges))
		}
	}

	logger.Info("Loan repayment recorded successfully",
		slog.String("remaining_balance", loan.CurrentBalance.String()),
		slog.Bool("loan_closed", !loan.IsActive))
	c.JSON(http.StatusOK, dto.RepayLoanResponse{
		Loan:           dto.ToLoanResponse(loan),
		ChargesApplied: dto.ToOverdueChargeResponses(charges),
	})
}

// applyOverdueInterest godoc
// @Summary Apply overdue interest to a loan
// @Description Compounds interest for every due-date cycle missed as of the given date; calling again with the same date is a no-op
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan_id path string true "Loan ID"
// @Param   request body dto.ApplyOverdueRequest true "As-of date"
// @Success 200 {object} dto.ApplyOverdueResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 409 {object} map[string]string "Loan was modified concurrently"
// @Failure 500 {object} map[string]string "Failed to apply overdue interest"
// @Router /loans/{loan_id}/overdue-interest [post]
func (h *loanHandler) applyOverdueInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loan_id")

	var req dto.ApplyOverdueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyOverdueInterest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	asOf, err := time.Parse("2006-01-02", req.AsOfDate)
	if err != nil {
		logger.Warn("Invalid asOfDate format", slog.String("asOfDate", req.AsOfDate))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("loan_id", loanID), slog.String("as_of", req.AsOfDate))
	logger.Info("Received request to apply overdue interest")

	loan, charges, err := h.loanService.ApplyOverdueInterest(c.Request.Context(), loanID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Loan not found for overdue interest")
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent modification while applying overdue interest")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to apply overdue interest in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply overdue interest"})
		}
		return
	}

	if h.metrics != nil && len(charges) > 0 {
		h.metrics.RecordOverdueCharges(len(charges), chargesTotal(charges))
	}

	logger.Info("Overdue interest applied successfully", slog.Int("periods", len(charges)))
	c.JSON(http.StatusOK, dto.ApplyOverdueResponse{
		Loan:           dto.ToLoanResponse(loan),
		ChargesApplied: dto.ToOverdueChargeResponses(charges),
	})
}

// processAllOverdue godoc
// @Summary Run the overdue interest sweep
// @Description Applies overdue interest across every active loan; per-loan failures are reported without aborting the run
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   request body dto.ProcessOverdueRequest true "As-of date"
// @Success 200 {object} dto.OverdueRunReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to process overdue loans"
// @Router /overdue-runs [post]
func (h *loanHandler) processAllOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProcessOverdueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessAllOverdue", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	asOf, err := time.Parse("2006-01-02", req.AsOfDate)
	if err != nil {
		logger.Warn("Invalid asOfDate format", slog.String("asOfDate", req.AsOfDate))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger.Info("Received request to process all overdue loans", slog.String("as_of", req.AsOfDate))

	start := time.Now()
	report, err := h.loanService.ProcessAllOverdue(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to process overdue loans in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process overdue loans"})
		return
	}

	if h.metrics != nil {
		h.metrics.RecordOverdueSweep(time.Since(start))
		chargeCount := 0
		for _, r := range report.Results {
			chargeCount += len(r.Charges)
		}
		if chargeCount > 0 {
			h.metrics.RecordOverdueCharges(chargeCount, report.TotalInterest.InexactFloat64())
		}
	}

	logger.Info("Overdue run completed",
		slog.Int("loans_checked", report.LoansChecked),
		slog.Int("loans_charged", report.LoansCharged),
		slog.Int("loans_failed", report.LoansFailed))
	c.JSON(http.StatusOK, dto.ToOverdueRunReportResponse(report))
}
