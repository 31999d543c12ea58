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

// returnHandler handles the return side of the rental lifecycle.
type returnHandler struct {
	rentalService portssvc.RentalSvcFacade
}

func newReturnHandler(rs portssvc.RentalSvcFacade) *returnHandler {
	return &returnHandler{rentalService: rs}
}

// RegisterReturnRoutes registers the returns endpoint. Exported so tests can
// mount the routes on their own router.
func RegisterReturnRoutes(rg *gin.RouterGroup, rentalService portssvc.RentalSvcFacade) {
	h := newReturnHandler(rentalService)

	rg.POST("/returns", h.processReturn)
}

// processReturn godoc
// @Summary Return a movie
// @Description Closes the active rental for a (customer, movie) pair, computes the fee from the snapshotted daily rate, and releases the stock unit.
// @Tags returns
// @Accept  json
// @Produce  json
// @Param   return body dto.ReturnRequest true "Return details"
// @Success 200 {object} dto.RentalResponse
// @Failure 400 {object} ErrorResponse "Invalid input or rental already returned"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "No rental found for this customer and movie"
// @Failure 500 {object} ErrorResponse "Failed to process return"
// @Security BearerAuth
// @Router /returns [post]
func (h *returnHandler) processReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rental, err := h.rentalService.ProcessReturn(c.Request.Context(), req.CustomerID, req.MovieID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRentalNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No rental found for this customer and movie"})
		case errors.Is(err, apperrors.ErrAlreadyReturned):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Rental already returned"})
		case errors.Is(err, apperrors.ErrInventoryInconsistency):
			logger.Error("Return left inventory inconsistent", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process return"})
		default:
			logger.Error("Failed to process return", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process return"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRentalResponse(rental))
}
