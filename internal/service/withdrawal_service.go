package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "swiftmint/internal/errors"
	"swiftmint/internal/model"
	"swiftmint/internal/repository"
)

// WithdrawalService records payout requests and drives the tax-verification
// gate. Submission checks the balance against a plain read and neither
// debits nor reserves funds; approval is a manual back-office process.
type WithdrawalService interface {
	SubmitWithdrawal(ctx context.Context, userID uint, amount decimal.Decimal, taxCode string) (*model.Withdrawal, error)
	ListWithdrawals(ctx context.Context, userID uint) ([]model.Withdrawal, error)
	VerifyTax(ctx context.Context, withdrawalID uuid.UUID) (*model.Withdrawal, error)
}

type withdrawalService struct {
	userRepo       repository.UserRepository
	withdrawalRepo repository.WithdrawalRepository
}

// NewWithdrawalService creates a new withdrawal service.
func NewWithdrawalService(userRepo repository.UserRepository, withdrawalRepo repository.WithdrawalRepository) WithdrawalService {
	return &withdrawalService{
		userRepo:       userRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// SubmitWithdrawal validates and records a withdrawal request. The user's
// tax code is backfilled on first use so later requests can prefill it.
func (s *withdrawalService) SubmitWithdrawal(ctx context.Context, userID uint, amount decimal.Decimal, taxCode string) (*model.Withdrawal, error) {
	if amount.LessThan(decimal.NewFromInt(1)) {
		return nil, apperrors.ErrInvalidAmount
	}
	if len(taxCode) < 6 {
		return nil, apperrors.ErrInvalidTaxCode
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.Balance.LessThan(amount) {
		return nil, apperrors.ErrInsufficientBalance
	}

	if user.TaxCode == "" {
		user.TaxCode = taxCode
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("backfill tax code: %w", err)
		}
	}

	withdrawal := &model.Withdrawal{
		UserID:  userID,
		Amount:  amount,
		TaxCode: taxCode,
		Status:  model.WithdrawalStatusPending,
	}

	if err := s.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		return nil, fmt.Errorf("create withdrawal: %w", err)
	}

	return withdrawal, nil
}

// ListWithdrawals lists the user's withdrawals, newest first.
func (s *withdrawalService) ListWithdrawals(ctx context.Context, userID uint) ([]model.Withdrawal, error) {
	return s.withdrawalRepo.FindByUserID(ctx, userID)
}

// VerifyTax marks the withdrawal's tax code as verified. It changes nothing
// else: the status stays where it was and no money moves. Completing a
// withdrawal has no endpoint in this product.
func (s *withdrawalService) VerifyTax(ctx context.Context, withdrawalID uuid.UUID) (*model.Withdrawal, error) {
	withdrawal, err := s.withdrawalRepo.FindByID(ctx, withdrawalID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("find withdrawal: %w", err)
	}

	if err := s.withdrawalRepo.UpdateFields(ctx, withdrawalID, map[string]interface{}{
		"tax_verified": true,
	}); err != nil {
		return nil, fmt.Errorf("update withdrawal: %w", err)
	}

	withdrawal.TaxVerified = true
	return withdrawal, nil
}
