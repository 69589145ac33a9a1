package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"swiftmint/internal/errors"
	"swiftmint/internal/service"
)

// DepositHandler handles deposit and transaction-listing endpoints.
type DepositHandler struct {
	depositService service.DepositService
}

// NewDepositHandler creates a new deposit handler.
func NewDepositHandler(depositService service.DepositService) *DepositHandler {
	return &DepositHandler{depositService: depositService}
}

// DepositRequest represents a deposit request.
type DepositRequest struct {
	Amount         string                `json:"amount" validate:"required"`
	PaymentMethod  string                `json:"payment_method" validate:"required,oneof=card paypal"`
	PaymentDetails DepositPaymentDetails `json:"payment_details"`
}

// DepositPaymentDetails carries method-specific deposit fields.
type DepositPaymentDetails struct {
	CardNumber  string `json:"card_number,omitempty"`
	CardExpiry  string `json:"card_expiry,omitempty"`
	CardCVV     string `json:"card_cvv,omitempty"`
	PayPalEmail string `json:"paypal_email,omitempty"`
}

// SubmitDeposit godoc
// @Summary Submit a deposit request
// @Description Records a pending credit transaction. The balance is not
// @Description credited until the deposit settles out of band.
// @Tags deposits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DepositRequest true "Deposit data"
// @Success 201 {object} model.Transaction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /deposits [post]
func (h *DepositHandler) SubmitDeposit(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req DepositRequest
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

	transaction, err := h.depositService.SubmitDeposit(
		c.Request().Context(),
		claims.UserID,
		amount,
		req.PaymentMethod,
		service.PaymentDetails{
			CardNumber:  req.PaymentDetails.CardNumber,
			CardExpiry:  req.PaymentDetails.CardExpiry,
			CardCVV:     req.PaymentDetails.CardCVV,
			PayPalEmail: req.PaymentDetails.PayPalEmail,
		},
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, transaction)
}

// ListTransactions godoc
// @Summary List the current user's transactions
// @Tags deposits
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Transaction
// @Failure 401 {object} errors.ErrorResponse
// @Router /transactions [get]
func (h *DepositHandler) ListTransactions(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	transactions, err := h.depositService.ListTransactions(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, transactions)
}
