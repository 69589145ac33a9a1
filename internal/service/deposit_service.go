package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "swiftmint/internal/errors"
	"swiftmint/internal/model"
	"swiftmint/internal/reference"
	"swiftmint/internal/repository"
)

// Supported deposit payment methods.
const (
	PaymentMethodCard   = "card"
	PaymentMethodPayPal = "paypal"
)

// PaymentDetails carries the method-specific fields of a deposit request.
// Card numbers are masked before anything is persisted; the CVV is dropped.
type PaymentDetails struct {
	CardNumber  string `json:"card_number,omitempty"`
	CardExpiry  string `json:"card_expiry,omitempty"`
	CardCVV     string `json:"-"`
	PayPalEmail string `json:"paypal_email,omitempty"`
}

// DepositService records deposit requests. A deposit creates a pending
// credit transaction and nothing else: the balance is not credited, because
// settlement happens out of band (or, in this demo, not at all).
type DepositService interface {
	SubmitDeposit(ctx context.Context, userID uint, amount decimal.Decimal, paymentMethod string, details PaymentDetails) (*model.Transaction, error)
	ListTransactions(ctx context.Context, userID uint) ([]model.Transaction, error)
}

type depositService struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	cardRepo        repository.CardRepository
	validator       *CardValidator
}

// NewDepositService creates a new deposit service.
func NewDepositService(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	cardRepo repository.CardRepository,
) DepositService {
	return &depositService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		cardRepo:        cardRepo,
		validator:       NewCardValidator(),
	}
}

// SubmitDeposit validates and records a deposit request. BalanceAfter is the
// user's balance at the time of the request, unchanged: the two fields are
// written together so the record is an honest snapshot, not a settlement.
func (s *depositService) SubmitDeposit(ctx context.Context, userID uint, amount decimal.Decimal, paymentMethod string, details PaymentDetails) (*model.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}
	if paymentMethod != PaymentMethodCard && paymentMethod != PaymentMethodPayPal {
		return nil, apperrors.ErrInvalidPaymentMethod
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Best-effort card save: a failure here must not block the deposit.
	if paymentMethod == PaymentMethodCard && details.CardNumber != "" {
		s.saveCardBestEffort(ctx, userID, details)
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"payment_method":  paymentMethod,
		"payment_details": s.sanitizeDetails(paymentMethod, details),
	})

	transaction := &model.Transaction{
		UserID:       userID,
		Type:         model.TransactionTypeCredit,
		Amount:       amount,
		Description:  fmt.Sprintf("Deposit via %s", paymentMethod),
		Reference:    reference.Deposit(),
		Status:       model.TransactionStatusPending,
		Category:     "deposit",
		BalanceAfter: user.Balance,
		Metadata:     string(metadata),
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	return transaction, nil
}

// ListTransactions lists the user's transactions, newest first.
func (s *depositService) ListTransactions(ctx context.Context, userID uint) ([]model.Transaction, error) {
	return s.transactionRepo.FindByUserID(ctx, userID)
}

func (s *depositService) saveCardBestEffort(ctx context.Context, userID uint, details PaymentDetails) {
	if err := s.validator.ValidateCard(details.CardNumber, details.CardExpiry); err != nil {
		log.Printf("deposit: skipping card save for user %d: %v", userID, err)
		return
	}

	card := &model.Card{
		UserID:     userID,
		CardNumber: s.validator.MaskCardNumber(details.CardNumber),
		CardType:   s.validator.DetectCardType(details.CardNumber),
		CardExpiry: details.CardExpiry,
		IsActive:   true,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		log.Printf("deposit: card save failed for user %d: %v", userID, err)
	}
}

func (s *depositService) sanitizeDetails(paymentMethod string, details PaymentDetails) map[string]string {
	out := map[string]string{}
	switch paymentMethod {
	case PaymentMethodCard:
		if details.CardNumber != "" {
			out["card_number"] = s.validator.MaskCardNumber(details.CardNumber)
			out["card_expiry"] = details.CardExpiry
		}
	case PaymentMethodPayPal:
		if details.PayPalEmail != "" {
			out["paypal_email"] = details.PayPalEmail
		}
	}
	return out
}
