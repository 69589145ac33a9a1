package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"swiftmint/internal/errors"
	"swiftmint/internal/service"
)

// TransferHandler handles transfer endpoints.
type TransferHandler struct {
	transferService service.TransferService
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// InternalTransferRequest represents a transfer to another local account.
type InternalTransferRequest struct {
	RecipientAccountNumber string `json:"recipient_account_number" validate:"required,len=10"`
	Amount                 string `json:"amount" validate:"required"`
	Description            string `json:"description"`
}

// ExternalTransferRequest represents a transfer to an account at another bank.
type ExternalTransferRequest struct {
	BankName      string `json:"bank_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	AccountName   string `json:"account_name" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
	Description   string `json:"description"`
}

// TransferInternal godoc
// @Summary Transfer to another Swift Mint account
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body InternalTransferRequest true "Transfer data"
// @Success 200 {object} model.Transaction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /transfers [post]
func (h *TransferHandler) TransferInternal(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req InternalTransferRequest
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

	transaction, err := h.transferService.TransferInternal(
		c.Request().Context(),
		claims.UserID,
		req.RecipientAccountNumber,
		amount,
		req.Description,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, transaction)
}

// TransferExternal godoc
// @Summary Transfer to an account at another bank
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExternalTransferRequest true "Transfer data"
// @Success 200 {object} model.Transaction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /transfers/external [post]
func (h *TransferHandler) TransferExternal(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req ExternalTransferRequest
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

	transaction, err := h.transferService.TransferExternal(
		c.Request().Context(),
		claims.UserID,
		service.ExternalBeneficiary{
			BankName:      req.BankName,
			AccountNumber: req.AccountNumber,
			AccountName:   req.AccountName,
		},
		amount,
		req.Description,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, transaction)
}
