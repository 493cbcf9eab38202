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

// --- Mock MemberService ---

type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) CreateMember(ctx context.Context, req dto.CreateMemberRequest) (*domain.Member, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberService) ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberService) GetSavingsTransactions(ctx context.Context, memberID string) ([]domain.SavingsTransaction, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsTransaction), args.Error(1)
}

func (m *MockMemberService) RecordSavingsPayment(ctx context.Context, memberID string, req dto.RecordSavingsPaymentRequest) (*domain.SavingsTransaction, *domain.Member, error) {
	args := m.Called(ctx, memberID, req)
	var txn *domain.SavingsTransaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.SavingsTransaction)
	}
	var member *domain.Member
	if args.Get(1) != nil {
		member = args.Get(1).(*domain.Member)
	}
	return txn, member, args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.MemberSvcFacade = (*MockMemberService)(nil)

// --- Test Suite ---

type MemberHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockMemberService *MockMemberService
}

func (suite *MemberHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockMemberService = new(MockMemberService)

	// Mimic the real /api/v1 grouping. Metrics are optional and stay nil here.
	v1 := suite.router.Group("/api/v1")
	handlers.RegisterMemberRoutes(v1, suite.mockMemberService, nil)
}

// newTestMember builds a member as the service would return it after
// registration, initial deposit already reflected in the balance.
func (suite *MemberHandlerTestSuite) newTestMember() *domain.Member {
	now := time.Now().UTC()
	return &domain.Member{
		MemberID:       uuid.NewString(),
		MemberNumber:   "MEM001",
		FullName:       "Thandi Dlamini",
		DateJoined:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		SavingsBalance: decimal.NewFromInt(1000),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.SystemActor,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.SystemActor,
		},
	}
}

// --- Test Cases ---

func (suite *MemberHandlerTestSuite) TestCreateMember_Success() {
	member := suite.newTestMember()

	suite.mockMemberService.On("CreateMember",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateMemberRequest) bool {
			return req.MemberNumber == "MEM001" &&
				req.FullName == "Thandi Dlamini" &&
				req.DateJoined == "2024-01-15"
		}),
	).Return(member, nil).Once()

	body := `{"memberNumber":"MEM001","fullName":"Thandi Dlamini","dateJoined":"2024-01-15"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/members", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.MemberResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(member.MemberID, resp.MemberID)
	suite.Equal("MEM001", resp.MemberNumber)
	suite.Equal("Thandi Dlamini", resp.FullName)
	suite.Equal("2024-01-15", resp.DateJoined)
	suite.True(resp.SavingsBalance.Equal(decimal.NewFromInt(1000)),
		"Expected balance 1000, got %s", resp.SavingsBalance)

	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestCreateMember_MalformedJSON() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/members", bytes.NewBufferString(`{"memberNumber":`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMemberService.AssertNotCalled(suite.T(), "CreateMember")
}

func (suite *MemberHandlerTestSuite) TestCreateMember_MissingRequiredFields() {
	// fullName and dateJoined are required and absent, binding must reject.
	body := `{"memberNumber":"MEM001"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/members", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMemberService.AssertNotCalled(suite.T(), "CreateMember")
}

func (suite *MemberHandlerTestSuite) TestCreateMember_ValidationError() {
	suite.mockMemberService.On("CreateMember", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: dateJoined must be a valid YYYY-MM-DD date", apperrors.ErrValidation)).Once()

	body := `{"memberNumber":"MEM001","fullName":"Thandi Dlamini","dateJoined":"15/01/2024"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/members", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var errResp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &errResp))
	suite.Contains(errResp["error"], "dateJoined must be a valid YYYY-MM-DD date")

	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestCreateMember_DuplicateMemberNumber() {
	suite.mockMemberService.On("CreateMember", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: member number MEM001", apperrors.ErrDuplicate)).Once()

	body := `{"memberNumber":"MEM001","fullName":"Thandi Dlamini","dateJoined":"2024-01-15"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/members", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestCreateMember_ServiceFailure() {
	suite.mockMemberService.On("CreateMember", mock.Anything, mock.Anything).
		Return(nil, assert.AnError).Once()

	body := `{"memberNumber":"MEM001","fullName":"Thandi Dlamini","dateJoined":"2024-01-15"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/members", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)

	// Internal details must not leak into the response.
	var errResp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &errResp))
	suite.Equal("Failed to register member", errResp["error"])

	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestGetMember_Success() {
	member := suite.newTestMember()

	suite.mockMemberService.On("GetMemberByID", mock.Anything, member.MemberID).
		Return(member, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/members/"+member.MemberID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.MemberResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(member.MemberID, resp.MemberID)
	suite.Equal(member.MemberNumber, resp.MemberNumber)

	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestGetMember_NotFound() {
	memberID := uuid.NewString()
	suite.mockMemberService.On("GetMemberByID", mock.Anything, memberID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/members/"+memberID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)

	var errResp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &errResp))
	suite.Equal("Member not found", errResp["error"])

	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestListMembers_DefaultPagination() {
	member := suite.newTestMember()

	// No query parameters, the handler falls back to limit 20 offset 0.
	suite.mockMemberService.On("ListMembers", mock.Anything, 20, 0).
		Return([]domain.Member{*member}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/members", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListMembersResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Members, 1)
	suite.Equal(member.MemberID, resp.Members[0].MemberID)

	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestListMembers_CustomPagination() {
	suite.mockMemberService.On("ListMembers", mock.Anything, 5, 10).
		Return([]domain.Member{}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/members?limit=5&offset=10", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListMembersResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.Members)

	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestRecordSavingsPayment_Success() {
	member := suite.newTestMember()
	member.SavingsBalance = decimal.NewFromInt(1500)
	txn := &domain.SavingsTransaction{
		TransactionID:   uuid.NewString(),
		MemberID:        member.MemberID,
		Amount:          decimal.NewFromInt(500),
		TransactionType: domain.Subscription,
		TransactionDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockMemberService.On("RecordSavingsPayment",
		mock.Anything,
		member.MemberID,
		mock.MatchedBy(func(req dto.RecordSavingsPaymentRequest) bool {
			return req.Amount.Equal(decimal.NewFromInt(500)) &&
				req.TransactionType == "SUBSCRIPTION" &&
				req.AsOfDate == "2024-02-01"
		}),
	).Return(txn, member, nil).Once()

	body := `{"amount":500,"transactionType":"SUBSCRIPTION","asOfDate":"2024-02-01"}`
	url := fmt.Sprintf("/api/v1/members/%s/savings", member.MemberID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.RecordSavingsPaymentResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txn.TransactionID, resp.Transaction.TransactionID)
	suite.Equal("SUBSCRIPTION", resp.Transaction.TransactionType)
	suite.Equal("2024-02-01", resp.Transaction.TransactionDate)
	suite.True(resp.Member.SavingsBalance.Equal(decimal.NewFromInt(1500)),
		"Expected updated balance 1500, got %s", resp.Member.SavingsBalance)

	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestRecordSavingsPayment_InvalidTransactionType() {
	// oneof binding only allows INITIAL_DEPOSIT and SUBSCRIPTION.
	body := `{"amount":500,"transactionType":"WITHDRAWAL","asOfDate":"2024-02-01"}`
	url := fmt.Sprintf("/api/v1/members/%s/savings", uuid.NewString())
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMemberService.AssertNotCalled(suite.T(), "RecordSavingsPayment")
}

func (suite *MemberHandlerTestSuite) TestRecordSavingsPayment_ValidationError() {
	memberID := uuid.NewString()
	suite.mockMemberService.On("RecordSavingsPayment", mock.Anything, memberID, mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)).Once()

	body := `{"amount":-50,"transactionType":"SUBSCRIPTION","asOfDate":"2024-02-01"}`
	url := fmt.Sprintf("/api/v1/members/%s/savings", memberID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var errResp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &errResp))
	suite.Contains(errResp["error"], "amount must be positive")

	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestRecordSavingsPayment_MemberNotFound() {
	memberID := uuid.NewString()
	suite.mockMemberService.On("RecordSavingsPayment", mock.Anything, memberID, mock.Anything).
		Return(nil, nil, apperrors.ErrNotFound).Once()

	body := `{"amount":500,"transactionType":"SUBSCRIPTION","asOfDate":"2024-02-01"}`
	url := fmt.Sprintf("/api/v1/members/%s/savings", memberID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestListSavingsTransactions_Success() {
	memberID := uuid.NewString()
	txns := []domain.SavingsTransaction{
		{
			TransactionID:   uuid.NewString(),
			MemberID:        memberID,
			Amount:          decimal.NewFromInt(1000),
			TransactionType: domain.InitialDeposit,
			TransactionDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			TransactionID:   uuid.NewString(),
			MemberID:        memberID,
			Amount:          decimal.NewFromInt(500),
			TransactionType: domain.Subscription,
			TransactionDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	suite.mockMemberService.On("GetSavingsTransactions", mock.Anything, memberID).
		Return(txns, nil).Once()

	url := fmt.Sprintf("/api/v1/members/%s/savings", memberID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListSavingsTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 2)
	// Ledger order is preserved, oldest first.
	suite.Equal("INITIAL_DEPOSIT", resp.Transactions[0].TransactionType)
	suite.Equal("SUBSCRIPTION", resp.Transactions[1].TransactionType)

	suite.mockMemberService.AssertExpectations(suite.T())
}

func (suite *MemberHandlerTestSuite) TestListSavingsTransactions_MemberNotFound() {
	memberID := uuid.NewString()
	suite.mockMemberService.On("GetSavingsTransactions", mock.Anything, memberID).
		Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/members/%s/savings", memberID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockMemberService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestMemberHandler(t *testing.T) {
	suite.Run(t, new(MemberHandlerTestSuite))
}
