package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"swiftmint/internal/errors"
	"swiftmint/internal/service"
)

// AdminHandler handles back-office endpoints. Every route it serves sits
// behind the admin-role middleware; the handlers themselves assume an
// authenticated admin.
type AdminHandler struct {
	adminService      service.AdminService
	withdrawalService service.WithdrawalService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService, withdrawalService service.WithdrawalService) *AdminHandler {
	return &AdminHandler{
		adminService:      adminService,
		withdrawalService: withdrawalService,
	}
}

// AdminEditRequest represents a generic edit against a managed resource.
type AdminEditRequest struct {
	Resource string                 `json:"resource" validate:"required,oneof=users cards withdrawals"`
	ID       string                 `json:"id" validate:"required"`
	Updates  map[string]interface{} `json:"updates" validate:"required"`
}

// AdminDeleteRequest represents a generic delete against a managed resource.
type AdminDeleteRequest struct {
	Resource string `json:"resource" validate:"required,oneof=users cards withdrawals"`
	ID       string `json:"id" validate:"required"`
}

// VerifyTaxRequest represents a verify-tax action.
type VerifyTaxRequest struct {
	WithdrawalID string `json:"withdrawal_id" validate:"required,uuid"`
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// ListCards godoc
// @Summary List all cards
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Card
// @Router /admin/cards [get]
func (h *AdminHandler) ListCards(c echo.Context) error {
	cards, err := h.adminService.ListCards(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cards)
}

// ListWithdrawals godoc
// @Summary List all withdrawals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Withdrawal
// @Router /admin/withdrawals [get]
func (h *AdminHandler) ListWithdrawals(c echo.Context) error {
	withdrawals, err := h.adminService.ListWithdrawals(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, withdrawals)
}

// ListTransactions godoc
// @Summary List all transactions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Transaction
// @Router /admin/transactions [get]
func (h *AdminHandler) ListTransactions(c echo.Context) error {
	transactions, err := h.adminService.ListTransactions(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, transactions)
}

// Edit godoc
// @Summary Edit a managed record
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdminEditRequest true "Edit data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/edit [post]
func (h *AdminHandler) Edit(c echo.Context) error {
	var req AdminEditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resource, err := service.ParseAdminResource(req.Resource)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.adminService.Edit(c.Request().Context(), resource, req.ID, req.Updates); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "record updated",
	})
}

// Delete godoc
// @Summary Delete a managed record
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdminDeleteRequest true "Delete data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/delete [post]
func (h *AdminHandler) Delete(c echo.Context) error {
	var req AdminDeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resource, err := service.ParseAdminResource(req.Resource)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.adminService.Delete(c.Request().Context(), resource, req.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "record deleted",
	})
}

// VerifyTax godoc
// @Summary Mark a withdrawal's tax code as verified
// @Description Flips tax_verified only; the withdrawal status is untouched.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VerifyTaxRequest true "Withdrawal reference"
// @Success 200 {object} model.Withdrawal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/verify-tax [post]
func (h *AdminHandler) VerifyTax(c echo.Context) error {
	var req VerifyTaxRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	withdrawalID, err := uuid.Parse(req.WithdrawalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid withdrawal_id",
			Code:  "INVALID_UUID",
		})
	}

	withdrawal, err := h.withdrawalService.VerifyTax(c.Request().Context(), withdrawalID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, withdrawal)
}
