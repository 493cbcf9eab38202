package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/savings_loan_app/internal/apperrors"
	portssvc "github.com/SscSPs/savings_loan_app/internal/core/ports/services"
	"github.com/SscSPs/savings_loan_app/internal/dto"
	"github.com/SscSPs/savings_loan_app/internal/middleware"
	"github.com/SscSPs/savings_loan_app/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// memberHandler handles HTTP requests related to members and their savings.
type memberHandler struct {
	memberService portssvc.MemberSvcFacade
	metrics       *metrics.MetricsCollector
}

// newMemberHandler creates a new memberHandler.
func newMemberHandler(ms portssvc.MemberSvcFacade, mc *metrics.MetricsCollector) *memberHandler {
	return &memberHandler{
		memberService: ms,
		metrics:       mc,
	}
}

// RegisterMemberRoutes registers routes related to members and savings.
func RegisterMemberRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvcFacade, mc *metrics.MetricsCollector) {
	h := newMemberHandler(memberService, mc)

	members := rg.Group("/members")
	{
		members.POST("", h.createMember)
		members.GET("", h.listMembers)
		members.GET("/:member_id", h.getMember)
		members.POST("/:member_id/savings", h.recordSavingsPayment)
		members.GET("/:member_id/savings", h.listSavingsTransactions)
	}
}

// createMember godoc
// @Summary Register a new member
// @Description Registers a member and records the policy's initial deposit in their savings ledger
// @Tags members
// @Accept  json
// @Produce  json
// @Param   member body dto.CreateMemberRequest true "Member details"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Member number already exists"
// @Failure 500 {object} map[string]string "Failed to register member"
// @Router /members [post]
func (h *memberHandler) createMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to register member", slog.String("member_number", req.MemberNumber))

	member, err := h.memberService.CreateMember(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error registering member", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Member number already exists", slog.String("member_number", req.MemberNumber))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to register member in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register member"})
		}
		return
	}

	logger.Info("Member registered successfully", slog.String("member_id", member.MemberID))
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

// getMember godoc
// @Summary Get a member by ID
// @Description Retrieves details for a specific member by their ID
// @Tags members
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to retrieve member"
// @Router /members/{member_id} [get]
func (h *memberHandler) getMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("member_id")

	member, err := h.memberService.GetMemberByID(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Member not found", slog.String("member_id", memberID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			logger.Error("Failed to get member from service", slog.String("error", err.Error()), slog.String("member_id", memberID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// listMembers godoc
// @Summary List members
// @Description Retrieves a paginated list of members
// @Tags members
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListMembersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list members"
// @Router /members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMembersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListMembers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	members, err := h.memberService.ListMembers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list members from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
		return
	}

	memberResponses := make([]dto.MemberResponse, len(members))
	for i, m := range members {
		memberResponses[i] = dto.ToMemberResponse(&m)
	}

	logger.Info("Members listed successfully", slog.Int("count", len(memberResponses)))
	c.JSON(http.StatusOK, dto.ListMembersResponse{Members: memberResponses})
}

// recordSavingsPayment godoc
// @Summary Record a savings payment
// @Description Appends a savings ledger entry and updates the member's savings balance
// @Tags members
// @Accept  json
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Param   payment body dto.RecordSavingsPaymentRequest true "Payment details"
// @Success 201 {object} dto.RecordSavingsPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to record savings payment"
// @Router /members/{member_id}/savings [post]
func (h *memberHandler) recordSavingsPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("member_id")

	var req dto.RecordSavingsPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSavingsPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("member_id", memberID))
	logger.Info("Received request to record savings payment", slog.String("type", req.TransactionType))

	txn, member, err := h.memberService.RecordSavingsPayment(c.Request.Context(), memberID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error recording savings payment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Member not found for savings payment")
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			logger.Error("Failed to record savings payment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record savings payment"})
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSavingsPayment()
	}

	logger.Info("Savings payment recorded successfully", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.RecordSavingsPaymentResponse{
		Transaction: dto.ToSavingsTransactionResponse(txn),
		Member:      dto.ToMemberResponse(member),
	})
}

// listSavingsTransactions godoc
// @Summary List a member's savings transactions
// @Description Retrieves the member's savings ledger, oldest entries first
// @Tags members
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Success 200 {object} dto.ListSavingsTransactionsResponse
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to list savings transactions"
// @Router /members/{member_id}/savings [get]
func (h *memberHandler) listSavingsTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("member_id")

	txns, err := h.memberService.GetSavingsTransactions(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Member not found for savings transactions", slog.String("member_id", memberID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			logger.Error("Failed to list savings transactions from service", slog.String("error", err.Error()), slog.String("member_id", memberID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list savings transactions"})
		}
		return
	}

	txnResponses := make([]dto.SavingsTransactionResponse, len(txns))
	for i, txn := range txns {
		txnResponses[i] = dto.ToSavingsTransactionResponse(&txn)
	}

	c.JSON(http.StatusOK, dto.ListSavingsTransactionsResponse{Transactions: txnResponses})
}
