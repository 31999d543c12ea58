package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidly/vidly_backend/internal/apperrors"
	portssvc "github.com/vidly/vidly_backend/internal/core/ports/services"
	"github.com/vidly/vidly_backend/internal/dto"
	"github.com/vidly/vidly_backend/internal/middleware"
)

// movieHandler handles HTTP requests related to the movie catalog.
type movieHandler struct {
	movieService portssvc.MovieSvcFacade
}

func newMovieHandler(ms portssvc.MovieSvcFacade) *movieHandler {
	return &movieHandler{movieService: ms}
}

// registerMovieRoutes registers routes related to movies.
func registerMovieRoutes(rg *gin.RouterGroup, movieService portssvc.MovieSvcFacade) {
	h := newMovieHandler(movieService)

	movies := rg.Group("/movies")
	{
		movies.POST("", h.createMovie)
		movies.GET("", h.listMovies)
		movies.GET("/:movie_id", h.getMovieByID)
		movies.PUT("/:movie_id", h.updateMovie)
		movies.DELETE("/:movie_id", h.deleteMovie)
	}
}

// createMovie godoc
// @Summary Create a new movie
// @Description Adds a new movie to the catalog with its initial stock
// @Tags movies
// @Accept  json
// @Produce  json
// @Param   movie body dto.CreateMovieRequest true "Movie details"
// @Success 201 {object} dto.MovieResponse
// @Failure 400 {object} ErrorResponse "Invalid input or unknown genre"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create movie"
// @Security BearerAuth
// @Router /movies [post]
func (h *movieHandler) createMovie(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movie, err := h.movieService.CreateMovie(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidReference):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown genre"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create movie", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create movie"})
		}
		return
	}

	logger.Info("Movie created", slog.String("movie_id", movie.MovieID))
	c.JSON(http.StatusCreated, dto.ToMovieResponse(movie))
}

// listMovies godoc
// @Summary List movies
// @Description Retrieves a paginated list of movies ordered by title
// @Tags movies
// @Produce  json
// @Param   limit query int false "Max results" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.MovieResponse
// @Failure 500 {object} ErrorResponse "Failed to list movies"
// @Security BearerAuth
// @Router /movies [get]
func (h *movieHandler) listMovies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMoviesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	movies, err := h.movieService.ListMovies(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list movies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list movies"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListMoviesResponse(movies))
}

// getMovieByID godoc
// @Summary Get a movie by ID
// @Tags movies
// @Produce  json
// @Param   movie_id path string true "Movie ID (UUID)"
// @Success 200 {object} dto.MovieResponse
// @Failure 404 {object} ErrorResponse "Movie not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve movie"
// @Security BearerAuth
// @Router /movies/{movie_id} [get]
func (h *movieHandler) getMovieByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movieID := c.Param("movie_id")

	movie, err := h.movieService.GetMovieByID(c.Request.Context(), movieID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Movie not found"})
			return
		}
		logger.Error("Failed to get movie", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve movie"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMovieResponse(movie))
}

// updateMovie godoc
// @Summary Update a movie
// @Description Updates catalog fields of a movie. The stock counter cannot be edited here.
// @Tags movies
// @Accept  json
// @Produce  json
// @Param   movie_id path string true "Movie ID (UUID)"
// @Param   movie body dto.UpdateMovieRequest true "Movie details"
// @Success 200 {object} dto.MovieResponse
// @Failure 400 {object} ErrorResponse "Invalid input or unknown genre"
// @Failure 404 {object} ErrorResponse "Movie not found"
// @Failure 500 {object} ErrorResponse "Failed to update movie"
// @Security BearerAuth
// @Router /movies/{movie_id} [put]
func (h *movieHandler) updateMovie(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movieID := c.Param("movie_id")

	var req dto.UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movie, err := h.movieService.UpdateMovie(c.Request.Context(), movieID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Movie not found"})
		case errors.Is(err, apperrors.ErrInvalidReference):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown genre"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update movie", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update movie"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMovieResponse(movie))
}

// deleteMovie godoc
// @Summary Delete a movie
// @Tags movies
// @Produce  json
// @Param   movie_id path string true "Movie ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Movie not found"
// @Failure 500 {object} ErrorResponse "Failed to delete movie"
// @Security BearerAuth
// @Router /movies/{movie_id} [delete]
func (h *movieHandler) deleteMovie(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movieID := c.Param("movie_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.movieService.DeleteMovie(c.Request.Context(), movieID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Movie not found"})
			return
		}
		logger.Error("Failed to delete movie", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete movie"})
		return
	}

	c.Status(http.StatusNoContent)
}
