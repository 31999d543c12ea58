package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vidly/vidly_backend/internal/apperrors"
	"github.com/vidly/vidly_backend/internal/core/domain"
	portssvc "github.com/vidly/vidly_backend/internal/core/ports/services"
	"github.com/vidly/vidly_backend/internal/core/services"
	"github.com/vidly/vidly_backend/internal/dto"
)

// --- Mock GenreRepository ---
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) FindGenreByID(ctx context.Context, genreID string) (*domain.Genre, error) {
	args := m.Called(ctx, genreID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Genre), args.Error(1)
}

func (m *MockGenreRepository) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Genre), args.Error(1)
}

func (m *MockGenreRepository) SaveGenre(ctx context.Context, genre domain.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepository) UpdateGenre(ctx context.Context, genre domain.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepository) DeleteGenre(ctx context.Context, genreID string) error {
	args := m.Called(ctx, genreID)
	return args.Error(0)
}

// --- Test Suite ---
type MovieServiceTestSuite struct {
	suite.Suite
	mockMovieRepo *MockMovieRepository
	mockGenreRepo *MockGenreRepository
	service       portssvc.MovieSvcFacade

	genre  *domain.Genre
	userID string
}

const testMaxStock = 255

func (suite *MovieServiceTestSuite) SetupTest() {
	suite.mockMovieRepo = new(MockMovieRepository)
	suite.mockGenreRepo = new(MockGenreRepository)
	suite.service = services.NewMovieService(suite.mockMovieRepo, suite.mockGenreRepo, testMaxStock)

	suite.genre = &domain.Genre{
		GenreID: uuid.NewString(),
		Name:    "Action",
	}
	suite.userID = uuid.NewString()
}

func (suite *MovieServiceTestSuite) TestCreateMovie_Success() {
	ctx := context.Background()
	req := dto.CreateMovieRequest{
		Title:           "The Terminator",
		GenreID:         suite.genre.GenreID,
		NumberInStock:   5,
		DailyRentalRate: decimal.NewFromFloat(2.5),
	}

	suite.mockGenreRepo.On("FindGenreByID", ctx, suite.genre.GenreID).Return(suite.genre, nil).Once()
	suite.mockMovieRepo.On("SaveMovie", ctx, mock.MatchedBy(func(m domain.Movie) bool {
		return m.Title == req.Title &&
			m.Genre.GenreID == suite.genre.GenreID &&
			m.Genre.Name == suite.genre.Name &&
			m.NumberInStock == 5 &&
			m.DailyRentalRate.Equal(req.DailyRentalRate) &&
			m.CreatedBy == suite.userID
	})).Return(nil).Once()

	movie, err := suite.service.CreateMovie(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(movie)
	suite.NotEmpty(movie.MovieID)
	suite.Equal("Action", movie.Genre.Name)
	suite.mockMovieRepo.AssertExpectations(suite.T())
	suite.mockGenreRepo.AssertExpectations(suite.T())
}

func (suite *MovieServiceTestSuite) TestCreateMovie_StockAboveMaximum() {
	ctx := context.Background()
	req := dto.CreateMovieRequest{
		Title:           "The Terminator",
		GenreID:         suite.genre.GenreID,
		NumberInStock:   testMaxStock + 1,
		DailyRentalRate: decimal.NewFromInt(2),
	}

	movie, err := suite.service.CreateMovie(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(movie)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovieRepo.AssertNotCalled(suite.T(), "SaveMovie", mock.Anything, mock.Anything)
}

func (suite *MovieServiceTestSuite) TestCreateMovie_NonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateMovieRequest{
		Title:           "The Terminator",
		GenreID:         suite.genre.GenreID,
		NumberInStock:   1,
		DailyRentalRate: decimal.Zero,
	}

	movie, err := suite.service.CreateMovie(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(movie)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MovieServiceTestSuite) TestCreateMovie_UnknownGenre() {
	ctx := context.Background()
	genreID := uuid.NewString()
	req := dto.CreateMovieRequest{
		Title:           "The Terminator",
		GenreID:         genreID,
		NumberInStock:   1,
		DailyRentalRate: decimal.NewFromInt(2),
	}

	suite.mockGenreRepo.On("FindGenreByID", ctx, genreID).Return(nil, apperrors.ErrNotFound).Once()

	movie, err := suite.service.CreateMovie(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(movie)
	suite.ErrorIs(err, apperrors.ErrInvalidReference)
}

func (suite *MovieServiceTestSuite) TestUpdateMovie_NeverTouchesStock() {
	ctx := context.Background()
	existing := &domain.Movie{
		MovieID:         uuid.NewString(),
		Title:           "The Terminator",
		Genre:           *suite.genre,
		NumberInStock:   3,
		DailyRentalRate: decimal.NewFromInt(2),
	}
	newTitle := "Terminator 2"
	req := dto.UpdateMovieRequest{Title: &newTitle}

	suite.mockMovieRepo.On("FindMovieByID", ctx, existing.MovieID).Return(existing, nil).Once()
	suite.mockMovieRepo.On("UpdateMovie", ctx, mock.MatchedBy(func(m domain.Movie) bool {
		return m.Title == newTitle && m.NumberInStock == 3
	})).Return(nil).Once()

	movie, err := suite.service.UpdateMovie(ctx, existing.MovieID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newTitle, movie.Title)
	suite.mockMovieRepo.AssertExpectations(suite.T())
}

func (suite *MovieServiceTestSuite) TestListMovies_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockMovieRepo.On("ListMovies", ctx, 20, 0).Return(nil, nil).Once()

	movies, err := suite.service.ListMovies(ctx, 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(movies)
	suite.Empty(movies)
}

func TestMovieServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MovieServiceTestSuite))
}
