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

// rentalHandler handles HTTP requests for the rental ledger.
type rentalHandler struct {
	rentalService portssvc.RentalSvcFacade
}

func newRentalHandler(rs portssvc.RentalSvcFacade) *rentalHandler {
	return &rentalHandler{rentalService: rs}
}

// RegisterRentalRoutes registers routes related to rentals. Exported so tests
// can mount the routes on their own router.
func RegisterRentalRoutes(rg *gin.RouterGroup, rentalService portssvc.RentalSvcFacade) {
	h := newRentalHandler(rentalService)

	rentals := rg.Group("/rentals")
	{
		rentals.POST("", h.checkout)
		rentals.GET("", h.listRentals)
		rentals.GET("/:rental_id", h.getRentalByID)
	}
}

// checkout godoc
// @Summary Check out a movie
// @Description Opens a rental for a (customer, movie) pair, reserving one unit of stock.
// @Tags rentals
// @Accept  json
// @Produce  json
// @Param   rental body dto.CheckoutRequest true "Checkout details"
// @Success 201 {object} dto.RentalResponse
// @Failure 400 {object} ErrorResponse "Invalid input, unknown customer or movie, or movie out of stock"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Customer already has this movie out"
// @Failure 500 {object} ErrorResponse "Failed to check out"
// @Security BearerAuth
// @Router /rentals [post]
func (h *rentalHandler) checkout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rental, err := h.rentalService.Checkout(c.Request.Context(), req.CustomerID, req.MovieID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidReference):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown customer or movie"})
		case errors.Is(err, apperrors.ErrOutOfStock):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Movie not in stock"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Customer already has this movie out"})
		case errors.Is(err, apperrors.ErrInventoryInconsistency):
			logger.Error("Checkout failed with inventory inconsistency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check out"})
		default:
			logger.Error("Failed to check out", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check out"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToRentalResponse(rental))
}

// listRentals godoc
// @Summary List rentals
// @Description Retrieves a paginated list of rentals, newest first.
// @Tags rentals
// @Produce  json
// @Param   limit query int false "Max results" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.RentalResponse
// @Failure 500 {object} ErrorResponse "Failed to list rentals"
// @Security BearerAuth
// @Router /rentals [get]
func (h *rentalHandler) listRentals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRentalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	rentals, err := h.rentalService.ListRentals(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list rentals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list rentals"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListRentalsResponse(rentals))
}

// getRentalByID godoc
// @Summary Get a rental by ID
// @Tags rentals
// @Produce  json
// @Param   rental_id path string true "Rental ID (UUID)"
// @Success 200 {object} dto.RentalResponse
// @Failure 404 {object} ErrorResponse "Rental not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve rental"
// @Security BearerAuth
// @Router /rentals/{rental_id} [get]
func (h *rentalHandler) getRentalByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rentalID := c.Param("rental_id")

	rental, err := h.rentalService.GetRentalByID(c.Request.Context(), rentalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Rental not found"})
			return
		}
		logger.Error("Failed to get rental", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve rental"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRentalResponse(rental))
}
