package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInsufficientBalance is returned when the account balance does not cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount is returned when an amount is zero, negative, or unparsable.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidPaymentMethod is returned when a deposit names an unsupported payment method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrInvalidTaxCode is returned when a withdrawal tax code is too short.
	ErrInvalidTaxCode = errors.New("tax code must be at least 6 characters")
	// ErrWithdrawalNotFound is returned when a withdrawal is not found.
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	// ErrCardNotFound is returned when a card is not found.
	ErrCardNotFound = errors.New("card not found")
	// ErrInvalidCard is returned when card validation fails.
	ErrInvalidCard = errors.New("invalid card")
	// ErrRecipientNotFound is returned when a transfer recipient account number does not exist.
	ErrRecipientNotFound = errors.New("recipient account not found")
	// ErrSelfTransfer is returned when the sender and recipient accounts are the same.
	ErrSelfTransfer = errors.New("cannot transfer to your own account")
	// ErrResourceNotFound is returned when an admin-managed record is not found.
	ErrResourceNotFound = errors.New("record not found")
	// ErrUnknownResource is returned when an admin request names a resource outside the managed set.
	ErrUnknownResource = errors.New("unknown resource")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unrecognized errors map
// to a generic 500 so internal details never reach the response body.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrInsufficientBalance:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INSUFFICIENT_BALANCE")
	case ErrInvalidAmount:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case ErrInvalidPaymentMethod:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PAYMENT_METHOD")
	case ErrInvalidTaxCode:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TAX_CODE")
	case ErrWithdrawalNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "WITHDRAWAL_NOT_FOUND")
	case ErrCardNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CARD_NOT_FOUND")
	case ErrInvalidCard:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CARD")
	case ErrRecipientNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "RECIPIENT_NOT_FOUND")
	case ErrSelfTransfer:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_TRANSFER")
	case ErrResourceNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case ErrUnknownResource:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_RESOURCE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
