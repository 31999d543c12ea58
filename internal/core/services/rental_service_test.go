package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vidly/vidly_backend/internal/apperrors"
	"github.com/vidly/vidly_backend/internal/core/domain"
	portssvc "github.com/vidly/vidly_backend/internal/core/ports/services"
	"github.com/vidly/vidly_backend/internal/core/services"
)

// --- Mock RentalRepository ---
type MockRentalRepository struct {
	mock.Mock
}

func (m *MockRentalRepository) FindRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepository) FindActiveRentalByParty(ctx context.Context, customerID, movieID string) (*domain.Rental, error) {
	args := m.Called(ctx, customerID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepository) FindLatestRentalByParty(ctx context.Context, customerID, movieID string) (*domain.Rental, error) {
	args := m.Called(ctx, customerID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepository) ListRentals(ctx context.Context, limit int, offset int) ([]domain.Rental, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepository) ListActiveRentalsOutSince(ctx context.Context, cutoff time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepository) SaveRental(ctx context.Context, rental domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepository) CloseRental(ctx context.Context, rentalID string, returnedAt time.Time, fee decimal.Decimal, closedByUserID string) error {
	args := m.Called(ctx, rentalID, returnedAt, fee, closedByUserID)
	return args.Error(0)
}

// --- Mock MovieRepository ---
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) FindMovieByID(ctx context.Context, movieID string) (*domain.Movie, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) ListMovies(ctx context.Context, limit int, offset int) ([]domain.Movie, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) SaveMovie(ctx context.Context, movie domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) UpdateMovie(ctx context.Context, movie domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) DeleteMovie(ctx context.Context, movieID string) error {
	args := m.Called(ctx, movieID)
	return args.Error(0)
}

func (m *MockMovieRepository) ReserveUnit(ctx context.Context, movieID string) (int, error) {
	args := m.Called(ctx, movieID)
	return args.Int(0), args.Error(1)
}

func (m *MockMovieRepository) ReleaseUnit(ctx context.Context, movieID string) (int, error) {
	args := m.Called(ctx, movieID)
	return args.Int(0), args.Error(1)
}

// --- Mock CustomerReader ---
type MockCustomerReader struct {
	mock.Mock
}

func (m *MockCustomerReader) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerReader) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// --- Test Suite ---
type RentalServiceTestSuite struct {
	suite.Suite
	mockRentalRepo   *MockRentalRepository
	mockMovieRepo    *MockMovieRepository
	mockCustomerRepo *MockCustomerReader
	service          portssvc.RentalSvcFacade

	customer *domain.Customer
	movie    *domain.Movie
	userID   string
}

func (suite *RentalServiceTestSuite) SetupTest() {
	suite.mockRentalRepo = new(MockRentalRepository)
	suite.mockMovieRepo = new(MockMovieRepository)
	suite.mockCustomerRepo = new(MockCustomerReader)
	suite.service = services.NewRentalService(suite.mockRentalRepo, suite.mockMovieRepo, suite.mockCustomerRepo)

	suite.customer = &domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       "Ada Lovelace",
		Phone:      "555-0101",
		IsGold:     true,
	}
	suite.movie = &domain.Movie{
		MovieID:         uuid.NewString(),
		Title:           "The Terminator",
		NumberInStock:   3,
		DailyRentalRate: decimal.NewFromInt(2),
	}
	suite.userID = uuid.NewString()
}

// --- Checkout ---

func (suite *RentalServiceTestSuite) TestCheckout_Success() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockMovieRepo.On("FindMovieByID", ctx, suite.movie.MovieID).Return(suite.movie, nil).Once()
	suite.mockMovieRepo.On("ReserveUnit", ctx, suite.movie.MovieID).Return(2, nil).Once()
	suite.mockRentalRepo.On("SaveRental", ctx, mock.MatchedBy(func(r domain.Rental) bool {
		return r.Customer.CustomerID == suite.customer.CustomerID &&
			r.Customer.Name == suite.customer.Name &&
			r.Customer.IsGold == suite.customer.IsGold &&
			r.Movie.MovieID == suite.movie.MovieID &&
			r.Movie.DailyRentalRate.Equal(suite.movie.DailyRentalRate) &&
			r.DateReturned == nil &&
			r.RentalFee == nil &&
			r.CreatedBy == suite.userID
	})).Return(nil).Once()

	rental, err := suite.service.Checkout(ctx, suite.customer.CustomerID, suite.movie.MovieID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rental)
	suite.NotEmpty(rental.RentalID)
	suite.False(rental.IsReturned())
	suite.Equal(suite.movie.Title, rental.Movie.Title)
	suite.WithinDuration(time.Now().UTC(), rental.DateOut, 2*time.Second)

	suite.mockRentalRepo.AssertExpectations(suite.T())
	suite.mockMovieRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *RentalServiceTestSuite) TestCheckout_UnknownCustomer() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	rental, err := suite.service.Checkout(ctx, customerID, suite.movie.MovieID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(rental)
	suite.ErrorIs(err, apperrors.ErrInvalidReference)
	// Nothing was reserved, so nothing may be released.
	suite.mockMovieRepo.AssertNotCalled(suite.T(), "ReserveUnit", mock.Anything, mock.Anything)
	suite.mockMovieRepo.AssertNotCalled(suite.T(), "ReleaseUnit", mock.Anything, mock.Anything)
}

func (suite *RentalServiceTestSuite) TestCheckout_UnknownMovie() {
	ctx := context.Background()
	movieID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockMovieRepo.On("FindMovieByID", ctx, movieID).Return(nil, apperrors.ErrNotFound).Once()

	rental, err := suite.service.Checkout(ctx, suite.customer.CustomerID, movieID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(rental)
	suite.ErrorIs(err, apperrors.ErrInvalidReference)
	suite.mockRentalRepo.AssertNotCalled(suite.T(), "SaveRental", mock.Anything, mock.Anything)
}

func (suite *RentalServiceTestSuite) TestCheckout_OutOfStock() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockMovieRepo.On("FindMovieByID", ctx, suite.movie.MovieID).Return(suite.movie, nil).Once()
	suite.mockMovieRepo.On("ReserveUnit", ctx, suite.movie.MovieID).Return(0, apperrors.ErrOutOfStock).Once()

	rental, err := suite.service.Checkout(ctx, suite.customer.CustomerID, suite.movie.MovieID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(rental)
	suite.ErrorIs(err, apperrors.ErrOutOfStock)
	// A failed reservation must not create a ledger row.
	suite.mockRentalRepo.AssertNotCalled(suite.T(), "SaveRental", mock.Anything, mock.Anything)
}

func (suite *RentalServiceTestSuite) TestCheckout_SaveFailureReleasesReservedUnit() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockMovieRepo.On("FindMovieByID", ctx, suite.movie.MovieID).Return(suite.movie, nil).Once()
	suite.mockMovieRepo.On("ReserveUnit", ctx, suite.movie.MovieID).Return(2, nil).Once()
	suite.mockRentalRepo.On("SaveRental", ctx, mock.AnythingOfType("domain.Rental")).Return(assert.AnError).Once()
	suite.mockMovieRepo.On("ReleaseUnit", ctx, suite.movie.MovieID).Return(3, nil).Once()

	rental, err := suite.service.Checkout(ctx, suite.customer.CustomerID, suite.movie.MovieID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(rental)
	suite.mockMovieRepo.AssertExpectations(suite.T())
}

func (suite *RentalServiceTestSuite) TestCheckout_DuplicateActiveRentalMapsToConflict() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockMovieRepo.On("FindMovieByID", ctx, suite.movie.MovieID).Return(suite.movie, nil).Once()
	suite.mockMovieRepo.On("ReserveUnit", ctx, suite.movie.MovieID).Return(2, nil).Once()
	suite.mockRentalRepo.On("SaveRental", ctx, mock.AnythingOfType("domain.Rental")).Return(apperrors.ErrDuplicate).Once()
	suite.mockMovieRepo.On("ReleaseUnit", ctx, suite.movie.MovieID).Return(3, nil).Once()

	rental, err := suite.service.Checkout(ctx, suite.customer.CustomerID, suite.movie.MovieID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(rental)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockMovieRepo.AssertExpectations(suite.T())
}

func (suite *RentalServiceTestSuite) TestCheckout_CompensationFailureReportsInconsistency() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockMovieRepo.On("FindMovieByID", ctx, suite.movie.MovieID).Return(suite.movie, nil).Once()
	suite.mockMovieRepo.On("ReserveUnit", ctx, suite.movie.MovieID).Return(2, nil).Once()
	suite.mockRentalRepo.On("SaveRental", ctx, mock.AnythingOfType("domain.Rental")).Return(assert.AnError).Once()
	suite.mockMovieRepo.On("ReleaseUnit", ctx, suite.movie.MovieID).Return(0, assert.AnError).Once()

	rental, err := suite.service.Checkout(ctx, suite.customer.CustomerID, suite.movie.MovieID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(rental)
	suite.ErrorIs(err, apperrors.ErrInventoryInconsistency)
}

// --- ProcessReturn ---

func (suite *RentalServiceTestSuite) activeRental(dateOut time.Time) *domain.Rental {
	return &domain.Rental{
		RentalID: uuid.NewString(),
		Customer: domain.CustomerSnapshot{
			CustomerID: suite.customer.CustomerID,
			Name:       suite.customer.Name,
		},
		Movie: domain.MovieSnapshot{
			MovieID:         suite.movie.MovieID,
			Title:           suite.movie.Title,
			DailyRentalRate: decimal.NewFromInt(2),
		},
		DateOut: dateOut,
	}
}

func (suite *RentalServiceTestSuite) TestProcessReturn_SuccessComputesFeeFromSnapshotRate() {
	ctx := context.Background()
	rental := suite.activeRental(time.Now().UTC().Add(-7*24*time.Hour - 3*time.Hour))
	expectedFee := decimal.NewFromInt(14) // 7 whole days at rate 2

	suite.mockRentalRepo.On("FindActiveRentalByParty", ctx, suite.customer.CustomerID, suite.movie.MovieID).Return(rental, nil).Once()
	suite.mockRentalRepo.On("CloseRental", ctx, rental.RentalID, mock.AnythingOfType("time.Time"), mock.MatchedBy(func(fee decimal.Decimal) bool {
		return fee.Equal(expectedFee)
	}), suite.userID).Return(nil).Once()
	suite.mockMovieRepo.On("ReleaseUnit", ctx, suite.movie.MovieID).Return(1, nil).Once()

	returned, err := suite.service.ProcessReturn(ctx, suite.customer.CustomerID, suite.movie.MovieID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(returned)
	suite.Require().NotNil(returned.DateReturned)
	suite.Require().NotNil(returned.RentalFee)
	suite.True(expectedFee.Equal(*returned.RentalFee), "expected fee 14, got %s", returned.RentalFee)

	suite.mockRentalRepo.AssertExpectations(suite.T())
	suite.mockMovieRepo.AssertExpectations(suite.T())
}

func (suite *RentalServiceTestSuite) TestProcessReturn_SameDayIsFree() {
	ctx := context.Background()
	rental := suite.activeRental(time.Now().UTC().Add(-5 * time.Hour))

	suite.mockRentalRepo.On("FindActiveRentalByParty", ctx, suite.customer.CustomerID, suite.movie.MovieID).Return(rental, nil).Once()
	suite.mockRentalRepo.On("CloseRental", ctx, rental.RentalID, mock.AnythingOfType("time.Time"), mock.MatchedBy(func(fee decimal.Decimal) bool {
		return fee.IsZero()
	}), suite.userID).Return(nil).Once()
	suite.mockMovieRepo.On("ReleaseUnit", ctx, suite.movie.MovieID).Return(1, nil).Once()

	returned, err := suite.service.ProcessReturn(ctx, suite.customer.CustomerID, suite.movie.MovieID, suite.userID)

	suite.Require().NoError(err)
	suite.True(returned.RentalFee.IsZero())
	suite.mockRentalRepo.AssertExpectations(suite.T())
}

func (suite *RentalServiceTestSuite) TestProcessReturn_NoActiveRental() {
	ctx := context.Background()

	suite.mockRentalRepo.On("FindActiveRentalByParty", ctx, suite.customer.CustomerID, suite.movie.MovieID).Return(nil, apperrors.ErrNotFound).Once()

	returned, err := suite.service.ProcessReturn(ctx, suite.customer.CustomerID, suite.movie.MovieID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(returned)
	suite.ErrorIs(err, apperrors.ErrRentalNotFound)
	suite.mockMovieRepo.AssertNotCalled(suite.T(), "ReleaseUnit", mock.Anything, mock.Anything)
}

func (suite *RentalServiceTestSuite) TestProcessReturn_LostCloseRaceReportsAlreadyReturned() {
	ctx := context.Background()
	rental := suite.activeRental(time.Now().UTC().Add(-48 * time.Hour))

	closedAt := time.Now().UTC()
	fee := decimal.NewFromInt(4)
	closed := *rental
	closed.DateReturned = &closedAt
	closed.RentalFee = &fee

	suite.mockRentalRepo.On("FindActiveRentalByParty", ctx, suite.customer.CustomerID, suite.movie.MovieID).Return(rental, nil).Once()
	// A concurrent return won the guarded close; zero rows were affected.
	suite.mockRentalRepo.On("CloseRental", ctx, rental.RentalID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("decimal.Decimal"), suite.userID).Return(apperrors.ErrNotFound).Once()
	suite.mockRentalRepo.On("FindLatestRentalByParty", ctx, suite.customer.CustomerID, suite.movie.MovieID).Return(&closed, nil).Once()

	returned, err := suite.service.ProcessReturn(ctx, suite.customer.CustomerID, suite.movie.MovieID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(returned)
	suite.ErrorIs(err, apperrors.ErrAlreadyReturned)
	// The loser of the race must not release a second unit.
	suite.mockMovieRepo.AssertNotCalled(suite.T(), "ReleaseUnit", mock.Anything, mock.Anything)
}

func (suite *RentalServiceTestSuite) TestProcessReturn_LostCloseWithNoHistoryReportsNotFound() {
	ctx := context.Background()
	rental := suite.activeRental(time.Now().UTC().Add(-48 * time.Hour))

	suite.mockRentalRepo.On("FindActiveRentalByParty", ctx, suite.customer.CustomerID, suite.movie.MovieID).Return(rental, nil).Once()
	suite.mockRentalRepo.On("CloseRental", ctx, rental.RentalID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("decimal.Decimal"), suite.userID).Return(apperrors.ErrNotFound).Once()
	suite.mockRentalRepo.On("FindLatestRentalByParty", ctx, suite.customer.CustomerID, suite.movie.MovieID).Return(nil, apperrors.ErrNotFound).Once()

	returned, err := suite.service.ProcessReturn(ctx, suite.customer.CustomerID, suite.movie.MovieID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(returned)
	suite.ErrorIs(err, apperrors.ErrRentalNotFound)
}

func (suite *RentalServiceTestSuite) TestProcessReturn_MissingMovieOnReleaseReportsInconsistency() {
	ctx := context.Background()
	rental := suite.activeRental(time.Now().UTC().Add(-24 * time.Hour))

	suite.mockRentalRepo.On("FindActiveRentalByParty", ctx, suite.customer.CustomerID, suite.movie.MovieID).Return(rental, nil).Once()
	suite.mockRentalRepo.On("CloseRental", ctx, rental.RentalID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("decimal.Decimal"), suite.userID).Return(nil).Once()
	suite.mockMovieRepo.On("ReleaseUnit", ctx, suite.movie.MovieID).Return(0, apperrors.ErrNotFound).Once()

	returned, err := suite.service.ProcessReturn(ctx, suite.customer.CustomerID, suite.movie.MovieID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(returned)
	suite.ErrorIs(err, apperrors.ErrInventoryInconsistency)
}

// --- Reads ---

func (suite *RentalServiceTestSuite) TestListRentals() {
	ctx := context.Background()
	expected := []domain.Rental{*suite.activeRental(time.Now().UTC())}

	suite.mockRentalRepo.On("ListRentals", ctx, 20, 0).Return(expected, nil).Once()

	rentals, err := suite.service.ListRentals(ctx, 20, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, rentals)
}

func TestRentalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RentalServiceTestSuite))
}
