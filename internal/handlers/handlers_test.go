package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/SscSPs/budget_tracker_app/internal/handlers"
	"github.com/SscSPs/budget_tracker_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (string, time.Time, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockUserService) ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateWithGoogle(ctx context.Context, idToken string) (string, time.Time, error) {
	args := m.Called(ctx, idToken)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockUserService) AuthenticateWithGoogleCode(ctx context.Context, code string) (string, time.Time, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, userID int64, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, userID int64) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, userID int64, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, userID int64, accountID int64) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID int64, filter domain.TransactionFilter, page domain.PageRequest) ([]domain.Transaction, *int, error) {
	args := m.Called(ctx, userID, filter, page)
	var next *int
	if n, ok := args.Get(1).(*int); ok {
		next = n
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID int64, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID int64, transactionID int64) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListCategories(ctx context.Context, userID int64, categoryType *domain.CategoryType) ([]domain.Category, error) {
	args := m.Called(ctx, userID, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, userID int64, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Test Suite ---

const validToken = "valid-token"

type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	cfg          *config.Config
	user         *domain.User
	mockUsers    *MockUserService
	mockAccounts *MockAccountService
	mockTxns     *MockTransactionService
	mockCats     *MockCategoryService
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.user = &domain.User{UserID: 7, Email: "a@x.com", CreatedAt: time.Now()}
	suite.mockUsers = new(MockUserService)
	suite.mockAccounts = new(MockAccountService)
	suite.mockTxns = new(MockTransactionService)
	suite.mockCats = new(MockCategoryService)

	suite.mockUsers.On("ResolveCurrentUser", mock.Anything, validToken).Return(suite.user, nil).Maybe()
	suite.mockUsers.On("ResolveCurrentUser", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUnauthorized).Maybe()

	suite.cfg = &config.Config{LoginRateLimit: "2-M", APIRateLimit: "1000-M", IsProduction: true}
	suite.router = gin.New()
	err := handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		User:        suite.mockUsers,
		Account:     suite.mockAccounts,
		Transaction: suite.mockTxns,
		Category:    suite.mockCats,
	}, handlers.Dependencies{})
	suite.Require().NoError(err)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockUsers.AssertExpectations(suite.T())
	suite.mockAccounts.AssertExpectations(suite.T())
	suite.mockTxns.AssertExpectations(suite.T())
	suite.mockCats.AssertExpectations(suite.T())
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var res dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	return res.Error
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestProtectedRoutesRequireToken() {
	w := suite.do(http.MethodGet, "/api/v1/accounts", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Bearer", w.Header().Get("WWW-Authenticate"))

	w = suite.do(http.MethodGet, "/api/v1/accounts", nil, "expired-token")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccounts.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestMe() {
	w := suite.do(http.MethodGet, "/api/v1/auth/me", nil, validToken)
	suite.Equal(http.StatusOK, w.Code)

	var res dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(int64(7), res.UserID)
	suite.Equal("a@x.com", res.Email)
}

func (suite *HandlerTestSuite) TestRegister() {
	req := dto.RegisterRequest{Email: "new@x.com", Password: "long-enough"}
	suite.mockUsers.On("RegisterUser", mock.Anything, req).Return(&domain.User{UserID: 9, Email: "new@x.com"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", req, "")
	suite.Equal(http.StatusCreated, w.Code)

	dup := dto.RegisterRequest{Email: "a@x.com", Password: "long-enough"}
	suite.mockUsers.On("RegisterUser", mock.Anything, dup).Return(nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)).Once()
	w = suite.do(http.MethodPost, "/api/v1/auth/register", dup, "")
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{Email: "not-an-email", Password: "long-enough"}, "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestRegisterWithoutSeededCatalogIs500() {
	req := dto.RegisterRequest{Email: "new@x.com", Password: "long-enough"}
	suite.mockUsers.On("RegisterUser", mock.Anything, req).
		Return(nil, fmt.Errorf("%w: currency UAH is not seeded", apperrors.ErrInternalInconsistency)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", req, "")
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to register user", suite.errorBody(w))
}

func (suite *HandlerTestSuite) TestLoginAcceptsFormAndIsRateLimited() {
	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	suite.mockUsers.On("AuthenticateUser", mock.Anything, "a@x.com", "secret").Return("signed", expiresAt, nil).Once()
	suite.mockUsers.On("AuthenticateUser", mock.Anything, "a@x.com", "wrong").
		Return("", time.Time{}, apperrors.ErrUnauthorized).Once()

	form := url.Values{"username": {"a@x.com"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusOK, w.Code)

	var token dto.TokenResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &token))
	suite.Equal("signed", token.AccessToken)
	suite.Equal("bearer", token.TokenType)
	suite.True(expiresAt.Equal(token.ExpiresAt))

	w = suite.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@x.com", "password": "wrong"}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@x.com", "password": "third"}, "")
	suite.Equal(http.StatusTooManyRequests, w.Code)
}

func (suite *HandlerTestSuite) TestGoogleRoutesDisabled() {
	suite.router = gin.New()
	google := &disabledGoogle{}
	err := handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{User: suite.mockUsers, Google: google}, handlers.Dependencies{})
	suite.Require().NoError(err)

	w := suite.do(http.MethodGet, "/api/v1/auth/google/login", nil, "")
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/auth/google/callback?code=abc&state=forged", nil, "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateAccount() {
	req := dto.CreateAccountRequest{Name: "Savings", CurrencyCodeID: 2}
	usd := &domain.Currency{CurrencyID: 2, Code: domain.USD, Name: "US Dollar", Symbol: "$"}
	suite.mockAccounts.On("CreateAccount", mock.Anything, int64(7), req).
		Return(&domain.Account{AccountID: 11, UserID: 7, CurrencyID: 2, Name: "Savings", Balance: decimal.Zero, Currency: usd}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req, validToken)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var res dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(int64(11), res.AccountID)
	suite.Equal("0.00", res.Balance)
	suite.Equal("$0.00", res.FormattedBalance)

	bad := dto.CreateAccountRequest{Name: "X", CurrencyCodeID: 999}
	suite.mockAccounts.On("CreateAccount", mock.Anything, int64(7), bad).Return(nil, apperrors.ErrInvalidReference).Once()
	w = suite.do(http.MethodPost, "/api/v1/accounts", bad, validToken)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestAccountNotFoundAndBadID() {
	suite.mockAccounts.On("GetAccountByID", mock.Anything, int64(7), int64(42)).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/42", nil, validToken)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/accounts/abc", nil, validToken)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockAccounts.On("DeleteAccount", mock.Anything, int64(7), int64(42)).Return(nil).Once()
	w = suite.do(http.MethodDelete, "/api/v1/accounts/42", nil, validToken)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTransaction() {
	suite.mockTxns.On("CreateTransaction", mock.Anything, int64(7), mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Amount.Equal(decimal.RequireFromString("50")) && req.Type == domain.Expense && req.AccountID == 3
	})).Return(&domain.Transaction{
		TransactionID: 100, UserID: 7, AccountID: 3, CategoryID: 1,
		Amount: decimal.RequireFromString("50"), Type: domain.Expense, Source: domain.SourceManual,
		Category: &domain.Category{CategoryID: 1, Name: "Food", Icon: "utensils", Type: domain.CategoryExpense},
	}, nil).Once()

	body := map[string]any{"amount": "50.00", "account_id": 3, "category_id": 1, "type": "expense"}
	w := suite.do(http.MethodPost, "/api/v1/transactions", body, validToken)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var res dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("50.00", res.Amount)
	suite.Require().NotNil(res.Category)
	suite.True(res.Category.IsShared)
}

func (suite *HandlerTestSuite) TestCreateTransactionRejectsBadInput() {
	cases := []map[string]any{
		{"amount": "1.234", "account_id": 3, "category_id": 1, "type": "expense"},
		{"amount": 0, "account_id": 3, "category_id": 1, "type": "expense"},
		{"amount": "-5", "account_id": 3, "category_id": 1, "type": "expense"},
		{"amount": "10000000000", "account_id": 3, "category_id": 1, "type": "expense"},
		{"account_id": 3, "category_id": 1, "type": "expense"},
		{"amount": "5", "account_id": 3, "category_id": 1, "type": "transfer"},
		{"amount": "5", "account_id": 3, "category_id": 1, "type": "income", "source": "scanner"},
		{"amount": "5", "category_id": 1, "type": "income"},
	}
	for i, body := range cases {
		w := suite.do(http.MethodPost, "/api/v1/transactions", body, validToken)
		suite.Equal(http.StatusBadRequest, w.Code, "case %d", i)
	}
	suite.mockTxns.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestTransactionErrorsMapToStatuses() {
	body := map[string]any{"amount": "5", "account_id": 3, "category_id": 1, "type": "income"}

	suite.mockTxns.On("CreateTransaction", mock.Anything, int64(7), mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	w := suite.do(http.MethodPost, "/api/v1/transactions", body, validToken)
	suite.Equal(http.StatusNotFound, w.Code)

	suite.mockTxns.On("UpdateTransaction", mock.Anything, int64(7), int64(5), mock.Anything).Return(nil, apperrors.ErrInvalidReference).Once()
	w = suite.do(http.MethodPut, "/api/v1/transactions/5", body, validToken)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockTxns.On("DeleteTransaction", mock.Anything, int64(7), int64(5)).Return(apperrors.NewAppError(http.StatusServiceUnavailable, "Database unavailable", nil)).Once()
	w = suite.do(http.MethodDelete, "/api/v1/transactions/5", nil, validToken)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("Database unavailable", suite.errorBody(w))

	suite.mockTxns.On("DeleteTransaction", mock.Anything, int64(7), int64(6)).Return(nil).Once()
	w = suite.do(http.MethodDelete, "/api/v1/transactions/6", nil, validToken)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestListTransactions() {
	month, year := 3, 2024
	next := 2
	suite.mockTxns.On("ListTransactions", mock.Anything, int64(7),
		domain.TransactionFilter{Month: &month, Year: &year},
		domain.PageRequest{Offset: 0, Limit: 2},
	).Return([]domain.Transaction{
		{TransactionID: 2, Amount: decimal.RequireFromString("1"), Type: domain.Income, Source: domain.SourceManual},
		{TransactionID: 1, Amount: decimal.RequireFromString("2.5"), Type: domain.Expense, Source: domain.SourceBank},
	}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?month=3&year=2024&limit=2", nil, validToken)
	suite.Require().Equal(http.StatusOK, w.Code)

	var res dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Len(res.Transactions, 2)
	suite.Equal("2.50", res.Transactions[1].Amount)
	suite.Require().NotNil(res.NextOffset)
	suite.Equal(2, *res.NextOffset)

	w = suite.do(http.MethodGet, "/api/v1/transactions?month=13", nil, validToken)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListCategoriesPassesType() {
	suite.mockCats.On("ListCategories", mock.Anything, int64(7), mock.MatchedBy(func(t *domain.CategoryType) bool {
		return t != nil && *t == domain.CategoryIncome
	})).Return([]domain.Category{{CategoryID: 1, Name: "Salary", Type: domain.CategoryIncome}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/categories?type=income", nil, validToken)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/categories?type=transfer", nil, validToken)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// disabledGoogle is a Google service with no client configured.
type disabledGoogle struct{}

func (disabledGoogle) IsEnabled() bool { return false }
func (disabledGoogle) GenerateStateString(context.Context) (string, error) {
	return "", fmt.Errorf("disabled")
}
func (disabledGoogle) GetGoogleLoginURL(context.Context, string) string { return "" }
func (disabledGoogle) ExchangeCodeForIDToken(context.Context, string) (string, error) {
	return "", fmt.Errorf("disabled")
}
func (disabledGoogle) ValidateGoogleIDToken(context.Context, string) (*domain.GoogleUserInfo, error) {
	return nil, fmt.Errorf("disabled")
}

func TestRegisterRoutesRejectsBadRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	err := handlers.RegisterRoutes(gin.New(), &config.Config{LoginRateLimit: "lots"}, &portssvc.ServiceContainer{}, handlers.Dependencies{})
	require.Error(t, err)
}
