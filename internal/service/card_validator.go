package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"swiftmint/internal/errors"
)

// CardValidator validates card information before storage. CVVs are accepted
// on input for a charge but never persisted.
type CardValidator struct{}

// NewCardValidator creates a new card validator.
func NewCardValidator() *CardValidator {
	return &CardValidator{}
}

// ValidateCard validates card number and expiry.
func (v *CardValidator) ValidateCard(cardNumber, expiry string) error {
	cardNumber = normalizeCardNumber(cardNumber)

	if !v.validateLuhn(cardNumber) {
		return errors.ErrInvalidCard
	}

	expiryRegex := regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	if !expiryRegex.MatchString(expiry) {
		return errors.ErrInvalidCard
	}

	if !v.validateExpiry(expiry) {
		return errors.ErrInvalidCard
	}

	return nil
}

// validateLuhn validates a card number using the Luhn algorithm.
func (v *CardValidator) validateLuhn(cardNumber string) bool {
	cardNumber = regexp.MustCompile(`\D`).ReplaceAllString(cardNumber, "")

	if len(cardNumber) < 13 || len(cardNumber) > 19 {
		return false
	}

	sum := 0
	isEven := false

	for i := len(cardNumber) - 1; i >= 0; i-- {
		digit, err := strconv.Atoi(string(cardNumber[i]))
		if err != nil {
			return false
		}

		if isEven {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		isEven = !isEven
	}

	return sum%10 == 0
}

// validateExpiry validates that the expiry date is not in the past.
func (v *CardValidator) validateExpiry(expiry string) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	if year < 100 {
		year += 2000
	}

	now := time.Now()
	expiryDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	// Expiry should be at least the current month
	return expiryDate.After(now.AddDate(0, -1, 0))
}

// MaskCardNumber masks a card number, showing only last 4 digits.
func (v *CardValidator) MaskCardNumber(cardNumber string) string {
	cardNumber = normalizeCardNumber(cardNumber)
	if len(cardNumber) < 4 {
		return "****"
	}
	return "****" + cardNumber[len(cardNumber)-4:]
}

// DetectCardType infers the network from the leading digits.
func (v *CardValidator) DetectCardType(cardNumber string) string {
	cardNumber = normalizeCardNumber(cardNumber)
	switch {
	case strings.HasPrefix(cardNumber, "4"):
		return "visa"
	case regexp.MustCompile(`^5[1-5]`).MatchString(cardNumber):
		return "mastercard"
	case regexp.MustCompile(`^3[47]`).MatchString(cardNumber):
		return "amex"
	default:
		return "card"
	}
}

func normalizeCardNumber(cardNumber string) string {
	return strings.ReplaceAll(strings.ReplaceAll(cardNumber, " ", ""), "-", "")
}
