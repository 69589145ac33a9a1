package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"swiftmint/internal/errors"
	"swiftmint/internal/service"
)

// WithdrawalHandler handles withdrawal endpoints.
type WithdrawalHandler struct {
	withdrawalService service.WithdrawalService
}

// NewWithdrawalHandler creates a new withdrawal handler.
func NewWithdrawalHandler(withdrawalService service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService}
}

// WithdrawalRequest represents a withdrawal request.
type WithdrawalRequest struct {
	Amount  string `json:"amount" validate:"required"`
	TaxCode string `json:"tax_code" validate:"required,min=6"`
}

// SubmitWithdrawal godoc
// @Summary Submit a withdrawal request
// @Description Records a pending withdrawal. Funds are neither debited nor
// @Description reserved; an admin verifies the tax code out of band.
// @Tags withdrawals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WithdrawalRequest true "Withdrawal data"
// @Success 201 {object} model.Withdrawal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /withdrawals [post]
func (h *WithdrawalHandler) SubmitWithdrawal(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req WithdrawalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid amount",
			Code:  "INVALID_AMOUNT",
		})
	}

	withdrawal, err := h.withdrawalService.SubmitWithdrawal(c.Request().Context(), claims.UserID, amount, req.TaxCode)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, withdrawal)
}

// ListWithdrawals godoc
// @Summary List the current user's withdrawals
// @Tags withdrawals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Withdrawal
// @Failure 401 {object} errors.ErrorResponse
// @Router /withdrawals [get]
func (h *WithdrawalHandler) ListWithdrawals(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	withdrawals, err := h.withdrawalService.ListWithdrawals(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, withdrawals)
}
