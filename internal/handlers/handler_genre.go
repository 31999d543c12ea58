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

// genreHandler handles HTTP requests related to genres.
type genreHandler struct {
	genreService portssvc.GenreSvcFacade
}

func newGenreHandler(gs portssvc.GenreSvcFacade) *genreHandler {
	return &genreHandler{genreService: gs}
}

// registerGenreRoutes registers routes related to genres.
func registerGenreRoutes(rg *gin.RouterGroup, genreService portssvc.GenreSvcFacade) {
	h := newGenreHandler(genreService)

	genres := rg.Group("/genres")
	{
		genres.POST("", h.createGenre)
		genres.GET("", h.listGenres)
		genres.GET("/:genre_id", h.getGenreByID)
		genres.PUT("/:genre_id", h.updateGenre)
		genres.DELETE("/:genre_id", h.deleteGenre)
	}
}

// createGenre godoc
// @Summary Create a new genre
// @Description Adds a new genre to the catalog
// @Tags genres
// @Accept  json
// @Produce  json
// @Param   genre body dto.CreateGenreRequest true "Genre details"
// @Success 201 {object} dto.GenreResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Genre already exists"
// @Failure 500 {object} ErrorResponse "Failed to create genre"
// @Security BearerAuth
// @Router /genres [post]
func (h *genreHandler) createGenre(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	genre, err := h.genreService.CreateGenre(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Genre already exists"})
			return
		}
		logger.Error("Failed to create genre", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create genre"})
		return
	}

	logger.Info("Genre created", slog.String("genre_id", genre.GenreID))
	c.JSON(http.StatusCreated, dto.ToGenreResponse(genre))
}

// listGenres godoc
// @Summary List all genres
// @Description Retrieves all genres ordered by name
// @Tags genres
// @Produce  json
// @Success 200 {array} dto.GenreResponse
// @Failure 500 {object} ErrorResponse "Failed to list genres"
// @Security BearerAuth
// @Router /genres [get]
func (h *genreHandler) listGenres(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	genres, err := h.genreService.ListGenres(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list genres", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list genres"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListGenresResponse(genres))
}

// getGenreByID godoc
// @Summary Get a genre by ID
// @Tags genres
// @Produce  json
// @Param   genre_id path string true "Genre ID (UUID)"
// @Success 200 {object} dto.GenreResponse
// @Failure 404 {object} ErrorResponse "Genre not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve genre"
// @Security BearerAuth
// @Router /genres/{genre_id} [get]
func (h *genreHandler) getGenreByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	genreID := c.Param("genre_id")

	genre, err := h.genreService.GetGenreByID(c.Request.Context(), genreID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Genre not found"})
			return
		}
		logger.Error("Failed to get genre", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve genre"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGenreResponse(genre))
}

// updateGenre godoc
// @Summary Update a genre
// @Tags genres
// @Accept  json
// @Produce  json
// @Param   genre_id path string true "Genre ID (UUID)"
// @Param   genre body dto.UpdateGenreRequest true "Genre details"
// @Success 200 {object} dto.GenreResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Genre not found"
// @Failure 500 {object} ErrorResponse "Failed to update genre"
// @Security BearerAuth
// @Router /genres/{genre_id} [put]
func (h *genreHandler) updateGenre(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	genreID := c.Param("genre_id")

	var req dto.UpdateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	genre, err := h.genreService.UpdateGenre(c.Request.Context(), genreID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Genre not found"})
			return
		}
		logger.Error("Failed to update genre", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update genre"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGenreResponse(genre))
}

// deleteGenre godoc
// @Summary Delete a genre
// @Tags genres
// @Produce  json
// @Param   genre_id path string true "Genre ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Genre not found"
// @Failure 500 {object} ErrorResponse "Failed to delete genre"
// @Security BearerAuth
// @Router /genres/{genre_id} [delete]
func (h *genreHandler) deleteGenre(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	genreID := c.Param("genre_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.genreService.DeleteGenre(c.Request.Context(), genreID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Genre not found"})
			return
		}
		logger.Error("Failed to delete genre", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete genre"})
		return
	}

	c.Status(http.StatusNoContent)
}
