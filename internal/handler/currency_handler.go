package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"swiftmint/internal/errors"
	"swiftmint/internal/service"
)

// CurrencyHandler handles display-currency endpoints.
type CurrencyHandler struct {
	currencyService service.CurrencyService
}

// NewCurrencyHandler creates a new currency handler.
func NewCurrencyHandler(currencyService service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

// CurrencyRequest represents a currency upsert.
type CurrencyRequest struct {
	Code      string `json:"code" validate:"required,len=3,uppercase"`
	Symbol    string `json:"symbol" validate:"required"`
	Name      string `json:"name" validate:"required"`
	IsDefault bool   `json:"is_default"`
}

// GetCurrency godoc
// @Summary Get the display currency
// @Description Returns the default currency, bootstrapping USD on first read.
// @Tags currency
// @Produce json
// @Success 200 {object} model.Currency
// @Failure 500 {object} errors.ErrorResponse
// @Router /currency [get]
func (h *CurrencyHandler) GetCurrency(c echo.Context) error {
	currency, err := h.currencyService.GetDefault(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, currency)
}

// UpsertCurrency godoc
// @Summary Create or update the display currency
// @Tags currency
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CurrencyRequest true "Currency data"
// @Success 200 {object} model.Currency
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /currency [post]
func (h *CurrencyHandler) UpsertCurrency(c echo.Context) error {
	var req CurrencyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	currency, err := h.currencyService.Upsert(c.Request().Context(), req.Code, req.Symbol, req.Name, req.IsDefault)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, currency)
}
