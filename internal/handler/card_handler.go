package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"swiftmint/internal/errors"
	"swiftmint/internal/service"
)

// CardHandler handles saved-card endpoints.
type CardHandler struct {
	cardService service.CardService
}

// NewCardHandler creates a new card handler.
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// CardRequest represents an add-card request.
type CardRequest struct {
	CardNumber string `json:"card_number" validate:"required"`
	CardExpiry string `json:"card_expiry" validate:"required"`
	IsDefault  bool   `json:"is_default"`
}

// AddCard godoc
// @Summary Save a payment card
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CardRequest true "Card data"
// @Success 201 {object} model.Card
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /cards [post]
func (h *CardHandler) AddCard(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	card, err := h.cardService.AddCard(c.Request().Context(), claims.UserID, req.CardNumber, req.CardExpiry, req.IsDefault)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, card)
}

// ListCards godoc
// @Summary List the current user's saved cards
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Card
// @Failure 401 {object} errors.ErrorResponse
// @Router /cards [get]
func (h *CardHandler) ListCards(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	cards, err := h.cardService.ListCards(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, cards)
}
