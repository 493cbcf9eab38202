package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/savings_loan_app/internal/apperrors"
	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portssvc "github.com/SscSPs/savings_loan_app/internal/core/ports/services"
	"github.com/SscSPs/savings_loan_app/internal/dto"
	"github.com/SscSPs/savings_loan_app/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LoanService ---

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) GetActiveLoanForMember(ctx context.Context, memberID string) (*domain.Loan, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) GetLoanTransactions(ctx context.Context, loanID string) ([]domain.LoanTransaction, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanTransaction), args.Error(1)
}

func (m *MockLoanService) IssueLoan(ctx context.Context, req dto.IssueLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) RepayLoan(ctx context.Context, loanID string, req dto.RepayLoanRequest) (*domain.Loan, []domain.OverdueCharge, error) {
	args := m.Called(ctx, loanID, req)
	var loan *domain.Loan
	if args.Get(0) != nil {
		loan = args.Get(0).(*domain.Loan)
	}
	var charges []domain.OverdueCharge
	if args.Get(1) != nil {
		charges = args.Get(1).([]domain.OverdueCharge)
	}
	return loan, charges, args.Error(2)
}

func (m *MockLoanService) ApplyOverdueInterest(ctx context.Context, loanID string, asOf time.Time) (*domain.Loan, []domain.OverdueCharge, error) {
	args := m.Called(ctx, loanID, asOf)
	var loan *domain.Loan
	if args.Get(0) != nil {
		loan = args.Get(0).(*domain.Loan)
	}
	var charges []domain.OverdueCharge
	if args.Get(1) != nil {
		charges = args.Get(1).([]domain.OverdueCharge)
	}
	return loan, charges, args.Error(2)
}

func (m *MockLoanService) ProcessAllOverdue(ctx context.Context, asOf time.Time) (*domain.OverdueRunReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OverdueRunReport), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Test Suite ---

type LoanHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockLoanService *MockLoanService
}

func (suite *LoanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockLoanService = new(MockLoanService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLoanRoutes(v1, suite.mockLoanService, nil)
}

// newTestLoan builds a freshly issued loan: 1000 principal at 20% gives a
// 1200 opening balance, first due date on the policy due day of the next
// month.
func (suite *LoanHandlerTestSuite) newTestLoan() *domain.Loan {
	now := time.Now().UTC()
	return &domain.Loan{
		LoanID:         uuid.NewString(),
		MemberID:       uuid.NewString(),
		Principal:      decimal.NewFromInt(1000),
		InterestRate:   decimal.NewFromFloat(0.20),
		InterestAmount: decimal.NewFromInt(200),
		TotalAmount:    decimal.NewFromInt(1200),
		CurrentBalance: decimal.NewFromInt(1200),
		IssueDate:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		NextDueDate:    time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
		Version:        1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.SystemActor,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.SystemActor,
		},
	}
}

// --- Issue Loan ---

func (suite *LoanHandlerTestSuite) TestIssueLoan_Success() {
	loan := suite.newTestLoan()

	suite.mockLoanService.On("IssueLoan",
		mock.Anything,
		mock.MatchedBy(func(req dto.IssueLoanRequest) bool {
			return req.MemberID == loan.MemberID &&
				req.Principal.Equal(decimal.NewFromInt(1000)) &&
				req.AsOfDate == "2024-03-10"
		}),
	).Return(loan, nil).Once()

	body := fmt.Sprintf(`{"memberID":%q,"principal":1000,"asOfDate":"2024-03-10"}`, loan.MemberID)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/loans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.LoanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(loan.LoanID, resp.LoanID)
	suite.True(resp.TotalAmount.Equal(decimal.NewFromInt(1200)),
		"Expected total 1200, got %s", resp.TotalAmount)
	suite.True(resp.CurrentBalance.Equal(decimal.NewFromInt(1200)))
	suite.Equal("2024-04-05", resp.NextDueDate)
	suite.True(resp.IsActive)

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestIssueLoan_MalformedJSON() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/loans", bytes.NewBufferString(`{"memberID":`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLoanService.AssertNotCalled(suite.T(), "IssueLoan")
}

func (suite *LoanHandlerTestSuite) TestIssueLoan_ValidationError() {
	suite.mockLoanService.On("IssueLoan", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: principal must be positive", apperrors.ErrValidation)).Once()

	body := fmt.Sprintf(`{"memberID":%q,"principal":-1000,"asOfDate":"2024-03-10"}`, uuid.NewString())
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/loans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var errResp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &errResp))
	suite.Contains(errResp["error"], "principal must be positive")

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestIssueLoan_MemberNotFound() {
	suite.mockLoanService.On("IssueLoan", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	body := fmt.Sprintf(`{"memberID":%q,"principal":1000,"asOfDate":"2024-03-10"}`, uuid.NewString())
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/loans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestIssueLoan_ActiveLoanExists() {
	memberID := uuid.NewString()
	suite.mockLoanService.On("IssueLoan", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: member %s already has an active loan", apperrors.ErrConflict, memberID)).Once()

	body := fmt.Sprintf(`{"memberID":%q,"principal":1000,"asOfDate":"2024-03-10"}`, memberID)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/loans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)

	var errResp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &errResp))
	suite.Contains(errResp["error"], "already has an active loan")

	suite.mockLoanService.AssertExpectations(suite.T())
}

// --- Get Loan ---

func (suite *LoanHandlerTestSuite) TestGetLoan_Success() {
	loan := suite.newTestLoan()

	suite.mockLoanService.On("GetLoanByID", mock.Anything, loan.LoanID).
		Return(loan, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/loans/"+loan.LoanID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LoanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(loan.LoanID, resp.LoanID)
	suite.Equal(loan.MemberID, resp.MemberID)
	suite.Equal("2024-03-10", resp.IssueDate)

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestGetLoan_NotFound() {
	loanID := uuid.NewString()
	suite.mockLoanService.On("GetLoanByID", mock.Anything, loanID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/loans/"+loanID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLoanService.AssertExpectations(suite.T())
}

// --- Member's Active Loan ---

func (suite *LoanHandlerTestSuite) TestGetActiveLoanForMember_Success() {
	loan := suite.newTestLoan()

	suite.mockLoanService.On("GetActiveLoanForMember", mock.Anything, loan.MemberID).
		Return(loan, nil).Once()

	url := fmt.Sprintf("/api/v1/members/%s/loan", loan.MemberID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LoanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(loan.LoanID, resp.LoanID)
	suite.True(resp.IsActive)

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestGetActiveLoanForMember_NoActiveLoan() {
	memberID := uuid.NewString()
	suite.mockLoanService.On("GetActiveLoanForMember", mock.Anything, memberID).
		Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/members/%s/loan", memberID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)

	var errResp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &errResp))
	suite.Equal("No active loan for member", errResp["error"])

	suite.mockLoanService.AssertExpectations(suite.T())
}

// --- Loan Transactions ---

func (suite *LoanHandlerTestSuite) TestListLoanTransactions_Success() {
	loanID := uuid.NewString()
	txns := []domain.LoanTransaction{
		{
			TransactionID:   uuid.NewString(),
			LoanID:          loanID,
			Amount:          decimal.NewFromInt(1200),
			TransactionType: domain.LoanIssued,
			TransactionDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			TransactionID:   uuid.NewString(),
			LoanID:          loanID,
			Amount:          decimal.NewFromInt(500),
			TransactionType: domain.Repayment,
			TransactionDate: time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	suite.mockLoanService.On("GetLoanTransactions", mock.Anything, loanID).
		Return(txns, nil).Once()

	url := fmt.Sprintf("/api/v1/loans/%s/transactions", loanID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListLoanTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 2)
	suite.Equal("LOAN_ISSUED", resp.Transactions[0].TransactionType)
	// The issuance entry records the full amount owed, not just principal.
	suite.True(resp.Transactions[0].Amount.Equal(decimal.NewFromInt(1200)),
		"Expected issuance amount 1200, got %s", resp.Transactions[0].Amount)
	suite.Equal("REPAYMENT", resp.Transactions[1].TransactionType)

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestListLoanTransactions_LoanNotFound() {
	loanID := uuid.NewString()
	suite.mockLoanService.On("GetLoanTransactions", mock.Anything, loanID).
		Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/loans/%s/transactions", loanID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLoanService.AssertExpectations(suite.T())
}

// --- Repay Loan ---

func (suite *LoanHandlerTestSuite) TestRepayLoan_Success() {
	loan := suite.newTestLoan()
	loan.CurrentBalance = decimal.NewFromInt(700)
	loan.NextDueDate = time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)

	suite.mockLoanService.On("RepayLoan",
		mock.Anything,
		loan.LoanID,
		mock.MatchedBy(func(req dto.RepayLoanRequest) bool {
			return req.Amount.Equal(decimal.NewFromInt(500)) && req.AsOfDate == "2024-04-03"
		}),
	).Return(loan, []domain.OverdueCharge{}, nil).Once()

	body := `{"amount":500,"asOfDate":"2024-04-03"}`
	url := fmt.Sprintf("/api/v1/loans/%s/repayments", loan.LoanID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.RepayLoanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Loan.CurrentBalance.Equal(decimal.NewFromInt(700)),
		"Expected balance 700, got %s", resp.Loan.CurrentBalance)
	suite.True(resp.Loan.IsActive)
	suite.Equal("2024-05-05", resp.Loan.NextDueDate)
	suite.Empty(resp.ChargesApplied)

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestRepayLoan_SettlesOverdueInterestFirst() {
	// Payment arrives two cycles late. The service compounds twice off the
	// 1200 balance before applying the payment.
	loan := suite.newTestLoan()
	loan.CurrentBalance = decimal.NewFromFloat(1228)
	charges := []domain.OverdueCharge{
		{PeriodIndex: 1, ChargeAmount: decimal.NewFromInt(240), NewBalance: decimal.NewFromInt(1440)},
		{PeriodIndex: 2, ChargeAmount: decimal.NewFromInt(288), NewBalance: decimal.NewFromInt(1728)},
	}

	suite.mockLoanService.On("RepayLoan", mock.Anything, loan.LoanID, mock.Anything).
		Return(loan, charges, nil).Once()

	body := `{"amount":500,"asOfDate":"2024-06-10"}`
	url := fmt.Sprintf("/api/v1/loans/%s/repayments", loan.LoanID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.RepayLoanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.ChargesApplied, 2)
	suite.Equal(1, resp.ChargesApplied[0].PeriodIndex)
	suite.True(resp.ChargesApplied[0].ChargeAmount.Equal(decimal.NewFromInt(240)))
	suite.Equal(2, resp.ChargesApplied[1].PeriodIndex)
	suite.True(resp.ChargesApplied[1].NewBalance.Equal(decimal.NewFromInt(1728)))

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestRepayLoan_FullPayoffClosesLoan() {
	loan := suite.newTestLoan()
	loan.CurrentBalance = decimal.Zero
	loan.IsActive = false

	suite.mockLoanService.On("RepayLoan", mock.Anything, loan.LoanID, mock.Anything).
		Return(loan, []domain.OverdueCharge{}, nil).Once()

	body := `{"amount":1200,"asOfDate":"2024-04-03"}`
	url := fmt.Sprintf("/api/v1/loans/%s/repayments", loan.LoanID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.RepayLoanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Loan.IsActive)
	suite.True(resp.Loan.CurrentBalance.IsZero())

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestRepayLoan_PaymentExceedsBalance() {
	loanID := uuid.NewString()
	suite.mockLoanService.On("RepayLoan", mock.Anything, loanID, mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: payment 2000 exceeds outstanding balance 1200", apperrors.ErrValidation)).Once()

	body := `{"amount":2000,"asOfDate":"2024-04-03"}`
	url := fmt.Sprintf("/api/v1/loans/%s/repayments", loanID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var errResp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &errResp))
	suite.Contains(errResp["error"], "exceeds outstanding balance")

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestRepayLoan_InactiveLoan() {
	loanID := uuid.NewString()
	suite.mockLoanService.On("RepayLoan", mock.Anything, loanID, mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: loan %s is not active", apperrors.ErrInvalidState, loanID)).Once()

	body := `{"amount":500,"asOfDate":"2024-04-03"}`
	url := fmt.Sprintf("/api/v1/loans/%s/repayments", loanID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var errResp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &errResp))
	suite.Contains(errResp["error"], "is not active")

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestRepayLoan_ConcurrentModification() {
	loanID := uuid.NewString()
	suite.mockLoanService.On("RepayLoan", mock.Anything, loanID, mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: loan %s was modified concurrently", apperrors.ErrConflict, loanID)).Once()

	body := `{"amount":500,"asOfDate":"2024-04-03"}`
	url := fmt.Sprintf("/api/v1/loans/%s/repayments", loanID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestRepayLoan_LoanNotFound() {
	loanID := uuid.NewString()
	suite.mockLoanService.On("RepayLoan", mock.Anything, loanID, mock.Anything).
		Return(nil, nil, apperrors.ErrNotFound).Once()

	body := `{"amount":500,"asOfDate":"2024-04-03"}`
	url := fmt.Sprintf("/api/v1/loans/%s/repayments", loanID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLoanService.AssertExpectations(suite.T())
}

// --- Apply Overdue Interest ---

func (suite *LoanHandlerTestSuite) TestApplyOverdueInterest_Success() {
	loan := suite.newTestLoan()
	loan.CurrentBalance = decimal.NewFromInt(1728)
	loan.NextDueDate = time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)
	charges := []domain.OverdueCharge{
		{PeriodIndex: 1, ChargeAmount: decimal.NewFromInt(240), NewBalance: decimal.NewFromInt(1440)},
		{PeriodIndex: 2, ChargeAmount: decimal.NewFromInt(288), NewBalance: decimal.NewFromInt(1728)},
	}

	suite.mockLoanService.On("ApplyOverdueInterest",
		mock.Anything,
		loan.LoanID,
		mock.MatchedBy(func(asOf time.Time) bool {
			return asOf.Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
		}),
	).Return(loan, charges, nil).Once()

	body := `{"asOfDate":"2024-06-10"}`
	url := fmt.Sprintf("/api/v1/loans/%s/overdue-interest", loan.LoanID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ApplyOverdueResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.ChargesApplied, 2)
	suite.True(resp.Loan.CurrentBalance.Equal(decimal.NewFromInt(1728)),
		"Expected compounded balance 1728, got %s", resp.Loan.CurrentBalance)
	suite.Equal("2024-07-05", resp.Loan.NextDueDate)

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestApplyOverdueInterest_NotOverdue() {
	// Nothing due yet, the service reports no charges and the loan is
	// returned unchanged.
	loan := suite.newTestLoan()

	suite.mockLoanService.On("ApplyOverdueInterest", mock.Anything, loan.LoanID, mock.Anything).
		Return(loan, []domain.OverdueCharge{}, nil).Once()

	body := `{"asOfDate":"2024-03-20"}`
	url := fmt.Sprintf("/api/v1/loans/%s/overdue-interest", loan.LoanID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ApplyOverdueResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.ChargesApplied)
	suite.True(resp.Loan.CurrentBalance.Equal(decimal.NewFromInt(1200)))

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestApplyOverdueInterest_InvalidDateFormat() {
	body := `{"asOfDate":"10-06-2024"}`
	url := fmt.Sprintf("/api/v1/loans/%s/overdue-interest", uuid.NewString())
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLoanService.AssertNotCalled(suite.T(), "ApplyOverdueInterest")
}

func (suite *LoanHandlerTestSuite) TestApplyOverdueInterest_LoanNotFound() {
	loanID := uuid.NewString()
	suite.mockLoanService.On("ApplyOverdueInterest", mock.Anything, loanID, mock.Anything).
		Return(nil, nil, apperrors.ErrNotFound).Once()

	body := `{"asOfDate":"2024-06-10"}`
	url := fmt.Sprintf("/api/v1/loans/%s/overdue-interest", loanID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLoanService.AssertExpectations(suite.T())
}

// --- Overdue Runs ---

func (suite *LoanHandlerTestSuite) TestProcessAllOverdue_Success() {
	asOf := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	chargedLoanID := uuid.NewString()
	failedLoanID := uuid.NewString()
	report := &domain.OverdueRunReport{
		AsOf:          asOf,
		LoansChecked:  3,
		LoansCharged:  1,
		LoansFailed:   1,
		TotalInterest: decimal.NewFromInt(240),
		Results: []domain.LoanOverdueResult{
			{
				LoanID:   chargedLoanID,
				MemberID: uuid.NewString(),
				Charges: []domain.OverdueCharge{
					{PeriodIndex: 1, ChargeAmount: decimal.NewFromInt(240), NewBalance: decimal.NewFromInt(1440)},
				},
			},
			{
				LoanID:   failedLoanID,
				MemberID: uuid.NewString(),
				Error:    "conflict with current resource state: loan was modified concurrently",
			},
		},
	}

	suite.mockLoanService.On("ProcessAllOverdue",
		mock.Anything,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(asOf) }),
	).Return(report, nil).Once()

	body := `{"asOfDate":"2024-06-10"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/overdue-runs", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.OverdueRunReportResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-06-10", resp.AsOf)
	suite.Equal(3, resp.LoansChecked)
	suite.Equal(1, resp.LoansCharged)
	suite.Equal(1, resp.LoansFailed)
	suite.True(resp.TotalInterest.Equal(decimal.NewFromInt(240)))
	suite.Len(resp.Results, 2)
	suite.Equal(chargedLoanID, resp.Results[0].LoanID)
	suite.Len(resp.Results[0].Charges, 1)
	// The failed loan carries its error without aborting the run.
	suite.Equal(failedLoanID, resp.Results[1].LoanID)
	suite.Contains(resp.Results[1].Error, "modified concurrently")

	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestProcessAllOverdue_MissingDate() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/overdue-runs", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLoanService.AssertNotCalled(suite.T(), "ProcessAllOverdue")
}

func (suite *LoanHandlerTestSuite) TestProcessAllOverdue_ServiceFailure() {
	suite.mockLoanService.On("ProcessAllOverdue", mock.Anything, mock.Anything).
		Return(nil, assert.AnError).Once()

	body := `{"asOfDate":"2024-06-10"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/overdue-runs", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.mockLoanService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestLoanHandler(t *testing.T) {
	suite.Run(t, new(LoanHandlerTestSuite))
}
