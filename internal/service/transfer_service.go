package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "swiftmint/internal/errors"
	"swiftmint/internal/model"
	"swiftmint/internal/reference"
	"swiftmint/internal/repository"
)

// ExternalBeneficiary describes the destination of an outbound transfer to
// another bank. The demo has no outbound rails, so the record is terminal.
type ExternalBeneficiary struct {
	BankName      string
	AccountNumber string
	AccountName   string
}

// TransferService moves money between accounts. This is the only path that
// mutates balances outside the admin edit bridge, so it runs under row locks
// inside a single database transaction.
type TransferService interface {
	TransferInternal(ctx context.Context, senderID uint, recipientAccountNumber string, amount decimal.Decimal, description string) (*model.Transaction, error)
	TransferExternal(ctx context.Context, senderID uint, beneficiary ExternalBeneficiary, amount decimal.Decimal, description string) (*model.Transaction, error)
}

type transferService struct {
	userRepo    repository.UserRepository
	userService UserService
}

// NewTransferService creates a new transfer service.
func NewTransferService(
	userRepo repository.UserRepository,
	userService UserService,
) TransferService {
	return &transferService{
		userRepo:    userRepo,
		userService: userService,
	}
}

// TransferInternal moves money between two local accounts. Both rows are
// locked for the duration of the balance updates, and the debit and credit
// ledger records commit in the same transaction: either everything lands or
// nothing does.
func (s *transferService) TransferInternal(ctx context.Context, senderID uint, recipientAccountNumber string, amount decimal.Decimal, description string) (*model.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	var sender, recipient *model.User
	var debit *model.Transaction

	err := s.userRepo.WithTransaction(ctx, func(ctx context.Context, users repository.UserRepository, txns repository.TransactionRepository) error {
		var err error
		sender, err = users.FindByIDForUpdate(ctx, senderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrUserNotFound
			}
			return err
		}

		if sender.AccountNumber == recipientAccountNumber {
			return apperrors.ErrSelfTransfer
		}

		if sender.Balance.LessThan(amount) {
			return apperrors.ErrInsufficientBalance
		}

		recipient, err = users.FindByAccountNumberForUpdate(ctx, recipientAccountNumber)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrRecipientNotFound
			}
			return err
		}

		senderBalance := sender.Balance.Sub(amount)
		recipientBalance := recipient.Balance.Add(amount)

		if err := users.UpdateBalance(ctx, sender.ID, senderBalance); err != nil {
			return fmt.Errorf("debit sender: %w", err)
		}
		if err := users.UpdateBalance(ctx, recipient.ID, recipientBalance); err != nil {
			return fmt.Errorf("credit recipient: %w", err)
		}

		ref := reference.Transfer()

		debit = &model.Transaction{
			UserID:           sender.ID,
			Type:             model.TransactionTypeDebit,
			Amount:           amount,
			Description:      description,
			Reference:        ref,
			Status:           model.TransactionStatusCompleted,
			Category:         "transfer",
			RecipientName:    recipient.FullName(),
			RecipientAccount: recipient.AccountNumber,
			BalanceAfter:     senderBalance,
		}
		if err := txns.Create(ctx, debit); err != nil {
			return fmt.Errorf("record debit: %w", err)
		}

		credit := &model.Transaction{
			UserID:        recipient.ID,
			Type:          model.TransactionTypeCredit,
			Amount:        amount,
			Description:   description,
			Reference:     ref + "C",
			Status:        model.TransactionStatusCompleted,
			Category:      "transfer",
			SenderName:    sender.FullName(),
			SenderAccount: sender.AccountNumber,
			BalanceAfter:  recipientBalance,
		}
		if err := txns.Create(ctx, credit); err != nil {
			return fmt.Errorf("record credit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.userService.InvalidateCache(ctx, sender.ID)
	s.userService.InvalidateCache(ctx, recipient.ID)

	return debit, nil
}

// TransferExternal debits the sender and records a terminal completed debit
// carrying the external beneficiary details. Debit and record commit together.
func (s *transferService) TransferExternal(ctx context.Context, senderID uint, beneficiary ExternalBeneficiary, amount decimal.Decimal, description string) (*model.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	var sender *model.User
	var debit *model.Transaction

	err := s.userRepo.WithTransaction(ctx, func(ctx context.Context, users repository.UserRepository, txns repository.TransactionRepository) error {
		var err error
		sender, err = users.FindByIDForUpdate(ctx, senderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrUserNotFound
			}
			return err
		}

		if sender.Balance.LessThan(amount) {
			return apperrors.ErrInsufficientBalance
		}

		senderBalance := sender.Balance.Sub(amount)
		if err := users.UpdateBalance(ctx, sender.ID, senderBalance); err != nil {
			return fmt.Errorf("debit sender: %w", err)
		}

		metadata, _ := json.Marshal(map[string]string{
			"bank_name": beneficiary.BankName,
		})

		debit = &model.Transaction{
			UserID:           sender.ID,
			Type:             model.TransactionTypeDebit,
			Amount:           amount,
			Description:      description,
			Reference:        reference.Transfer(),
			Status:           model.TransactionStatusCompleted,
			Category:         "external_transfer",
			RecipientName:    beneficiary.AccountName,
			RecipientAccount: beneficiary.AccountNumber,
			BalanceAfter:     senderBalance,
			Metadata:         string(metadata),
		}
		if err := txns.Create(ctx, debit); err != nil {
			return fmt.Errorf("record debit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.userService.InvalidateCache(ctx, sender.ID)
	return debit, nil
}
