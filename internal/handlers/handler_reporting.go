package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/savings_loan_app/internal/apperrors"
	portssvc "github.com/SscSPs/savings_loan_app/internal/core/ports/services"
	"github.com/SscSPs/savings_loan_app/internal/dto"
	"github.com/SscSPs/savings_loan_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to reports and exports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to reports and exports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/export/members", h.exportMembers)
		reports.GET("/export/transactions", h.exportTransactions)
	}

	// The per-member summary lives on the member resource.
	rg.GET("/members/:member_id/summary", h.getMemberSummary)
}

// parseAsOfQuery reads the optional asOf query parameter, defaulting to today.
func parseAsOfQuery(c *gin.Context) (time.Time, error) {
	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	return time.Parse("2006-01-02", asOfStr)
}

// getMemberSummary godoc
// @Summary Get a member summary
// @Description Combines a member's savings position, active loan and overdue status as of a date
// @Tags reports
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Param   asOf query string false "Summary date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.MemberSummaryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to generate summary"
// @Router /members/{member_id}/summary [get]
func (h *reportingHandler) getMemberSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("member_id")

	asOf, err := parseAsOfQuery(c)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	summary, err := h.reportingService.MemberSummary(c.Request.Context(), memberID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Member not found for summary", slog.String("member_id", memberID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			logger.Error("Failed to generate member summary", slog.String("error", err.Error()), slog.String("member_id", memberID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberSummaryResponse(summary))
}

// getDashboard godoc
// @Summary Get the dashboard report
// @Description Aggregates member, savings and loan totals as of a date
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate dashboard"
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := parseAsOfQuery(c)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.Dashboard(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to generate dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate dashboard"})
		return
	}

	logger.Info("Dashboard generated successfully")
	c.JSON(http.StatusOK, dto.ToDashboardResponse(report))
}

// exportMembers godoc
// @Summary Export the member register as CSV
// @Description Streams one row per member with their savings and loan position
// @Tags reports
// @Produce  text/csv
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} map[string]string "Failed to export members"
// @Router /reports/export/members [get]
func (h *reportingHandler) exportMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// Render into a buffer first so a mid-export failure still returns a
	// clean JSON error instead of a truncated file.
	var buf bytes.Buffer
	if err := h.reportingService.ExportMembersCSV(c.Request.Context(), &buf); err != nil {
		logger.Error("Failed to export members CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export members"})
		return
	}

	filename := fmt.Sprintf("members_export_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// exportTransactions godoc
// @Summary Export all transactions as CSV
// @Description Streams the combined savings and loan ledgers, newest entries first
// @Tags reports
// @Produce  text/csv
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} map[string]string "Failed to export transactions"
// @Router /reports/export/transactions [get]
func (h *reportingHandler) exportTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var buf bytes.Buffer
	if err := h.reportingService.ExportTransactionsCSV(c.Request.Context(), &buf); err != nil {
		logger.Error("Failed to export transactions CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export transactions"})
		return
	}

	filename := fmt.Sprintf("transactions_export_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
