package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vidly/vidly_backend/internal/apperrors"
	"github.com/vidly/vidly_backend/internal/core/domain"
	portssvc "github.com/vidly/vidly_backend/internal/core/ports/services"
	"github.com/vidly/vidly_backend/internal/dto"
	"github.com/vidly/vidly_backend/internal/handlers"
	"github.com/vidly/vidly_backend/internal/middleware"
)

// --- Mock RentalService ---
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) GetRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) ListRentals(ctx context.Context, limit int, offset int) ([]domain.Rental, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalService) Checkout(ctx context.Context, customerID, movieID string, userID string) (*domain.Rental, error) {
	args := m.Called(ctx, customerID, movieID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) ProcessReturn(ctx context.Context, customerID, movieID string, userID string) (*domain.Rental, error) {
	args := m.Called(ctx, customerID, movieID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.RentalSvcFacade = (*MockRentalService)(nil)

// --- Test Suite ---
type RentalHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockRentalService *MockRentalService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *RentalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "vidly-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *RentalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockRentalService = new(MockRentalService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterRentalRoutes(v1, suite.mockRentalService)
	handlers.RegisterReturnRoutes(v1, suite.mockRentalService)
}

func (suite *RentalHandlerTestSuite) postJSON(url string, body any, userID string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *RentalHandlerTestSuite) TestCheckout_Success() {
	userID := uuid.NewString()
	customerID := uuid.NewString()
	movieID := uuid.NewString()

	expected := &domain.Rental{
		RentalID: uuid.NewString(),
		Customer: domain.CustomerSnapshot{CustomerID: customerID, Name: "Ada Lovelace"},
		Movie:    domain.MovieSnapshot{MovieID: movieID, Title: "The Terminator", DailyRentalRate: decimal.NewFromInt(2)},
		DateOut:  time.Now().UTC(),
	}

	suite.mockRentalService.On("Checkout",
		mock.AnythingOfType("*context.valueCtx"),
		customerID, movieID, userID,
	).Return(expected, nil).Once()

	w := suite.postJSON("/api/v1/rentals", dto.CheckoutRequest{CustomerID: customerID, MovieID: movieID}, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.RentalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(expected.RentalID, body.RentalID)
	suite.Nil(body.DateReturned)
	suite.Nil(body.RentalFee)
	suite.mockRentalService.AssertExpectations(suite.T())
}

func (suite *RentalHandlerTestSuite) TestCheckout_OutOfStockIsBadRequest() {
	userID := uuid.NewString()
	customerID := uuid.NewString()
	movieID := uuid.NewString()

	suite.mockRentalService.On("Checkout",
		mock.AnythingOfType("*context.valueCtx"),
		customerID, movieID, userID,
	).Return(nil, apperrors.ErrOutOfStock).Once()

	w := suite.postJSON("/api/v1/rentals", dto.CheckoutRequest{CustomerID: customerID, MovieID: movieID}, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RentalHandlerTestSuite) TestCheckout_MissingCustomerIDFailsBinding() {
	userID := uuid.NewString()

	w := suite.postJSON("/api/v1/rentals", gin.H{"movieId": uuid.NewString()}, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRentalService.AssertNotCalled(suite.T(), "Checkout", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RentalHandlerTestSuite) TestCheckout_RequiresAuth() {
	payload, _ := json.Marshal(dto.CheckoutRequest{CustomerID: uuid.NewString(), MovieID: uuid.NewString()})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/rentals", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RentalHandlerTestSuite) TestReturn_Success() {
	userID := uuid.NewString()
	customerID := uuid.NewString()
	movieID := uuid.NewString()

	returnedAt := time.Now().UTC()
	fee := decimal.NewFromInt(14)
	expected := &domain.Rental{
		RentalID:     uuid.NewString(),
		Customer:     domain.CustomerSnapshot{CustomerID: customerID},
		Movie:        domain.MovieSnapshot{MovieID: movieID, DailyRentalRate: decimal.NewFromInt(2)},
		DateOut:      returnedAt.Add(-7 * 24 * time.Hour),
		DateReturned: &returnedAt,
		RentalFee:    &fee,
	}

	suite.mockRentalService.On("ProcessReturn",
		mock.AnythingOfType("*context.valueCtx"),
		customerID, movieID, userID,
	).Return(expected, nil).Once()

	w := suite.postJSON("/api/v1/returns", dto.ReturnRequest{CustomerID: customerID, MovieID: movieID}, userID)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.RentalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().NotNil(body.RentalFee)
	suite.True(fee.Equal(*body.RentalFee))
	suite.Require().NotNil(body.DateReturned)
	suite.mockRentalService.AssertExpectations(suite.T())
}

func (suite *RentalHandlerTestSuite) TestReturn_NoRentalIsNotFound() {
	userID := uuid.NewString()
	customerID := uuid.NewString()
	movieID := uuid.NewString()

	suite.mockRentalService.On("ProcessReturn",
		mock.AnythingOfType("*context.valueCtx"),
		customerID, movieID, userID,
	).Return(nil, apperrors.ErrRentalNotFound).Once()

	w := suite.postJSON("/api/v1/returns", dto.ReturnRequest{CustomerID: customerID, MovieID: movieID}, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RentalHandlerTestSuite) TestReturn_AlreadyReturnedIsBadRequest() {
	userID := uuid.NewString()
	customerID := uuid.NewString()
	movieID := uuid.NewString()

	suite.mockRentalService.On("ProcessReturn",
		mock.AnythingOfType("*context.valueCtx"),
		customerID, movieID, userID,
	).Return(nil, apperrors.ErrAlreadyReturned).Once()

	w := suite.postJSON("/api/v1/returns", dto.ReturnRequest{CustomerID: customerID, MovieID: movieID}, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Run Test Suite ---
func TestRentalHandler(t *testing.T) {
	suite.Run(t, new(RentalHandlerTestSuite))
}
