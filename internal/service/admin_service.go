package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "swiftmint/internal/errors"
	"swiftmint/internal/model"
	"swiftmint/internal/repository"
)

// AdminResource is the closed set of record kinds the back-office edit and
// delete bridge can touch. Anything else is rejected up front; there is no
// dynamic model lookup.
type AdminResource string

const (
	ResourceUsers       AdminResource = "users"
	ResourceCards       AdminResource = "cards"
	ResourceWithdrawals AdminResource = "withdrawals"
)

// ParseAdminResource validates a resource name against the closed set.
func ParseAdminResource(s string) (AdminResource, error) {
	switch AdminResource(s) {
	case ResourceUsers, ResourceCards, ResourceWithdrawals:
		return AdminResource(s), nil
	default:
		return "", apperrors.ErrUnknownResource
	}
}

// AdminService implements the back-office: collection listings and the
// generic edit/delete bridge.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListCards(ctx context.Context) ([]model.Card, error)
	ListWithdrawals(ctx context.Context) ([]model.Withdrawal, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	Edit(ctx context.Context, resource AdminResource, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, resource AdminResource, id string) error
}

type adminService struct {
	userRepo       repository.UserRepository
	cardRepo       repository.CardRepository
	withdrawalRepo repository.WithdrawalRepository
	txnRepo        repository.TransactionRepository
	userService    UserService
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	cardRepo repository.CardRepository,
	withdrawalRepo repository.WithdrawalRepository,
	txnRepo repository.TransactionRepository,
	userService UserService,
) AdminService {
	return &adminService{
		userRepo:       userRepo,
		cardRepo:       cardRepo,
		withdrawalRepo: withdrawalRepo,
		txnRepo:        txnRepo,
		userService:    userService,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *adminService) ListCards(ctx context.Context) ([]model.Card, error) {
	return s.cardRepo.List(ctx)
}

func (s *adminService) ListWithdrawals(ctx context.Context) ([]model.Withdrawal, error) {
	return s.withdrawalRepo.List(ctx)
}

func (s *adminService) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.txnRepo.List(ctx)
}

// Edit applies a field map to one record. A "password" key is bcrypt-hashed
// into password_hash before the write; every other field passes through as a
// column update, which is the documented back-office contract.
func (s *adminService) Edit(ctx context.Context, resource AdminResource, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	if raw, ok := updates["password"]; ok {
		password, ok := raw.(string)
		if !ok || password == "" {
			return fmt.Errorf("password must be a non-empty string")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		delete(updates, "password")
		updates["password_hash"] = string(hash)
	}

	switch resource {
	case ResourceUsers:
		userID, err := parseUserID(id)
		if err != nil {
			return err
		}
		if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
			return mapNotFound(err)
		}
		if err := s.userRepo.UpdateFields(ctx, userID, updates); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		s.userService.InvalidateCache(ctx, userID)
		return nil

	case ResourceCards:
		cardID, err := parseRecordID(id)
		if err != nil {
			return err
		}
		if _, err := s.cardRepo.FindByID(ctx, cardID); err != nil {
			return mapNotFound(err)
		}
		return s.cardRepo.UpdateFields(ctx, cardID, updates)

	case ResourceWithdrawals:
		withdrawalID, err := parseRecordID(id)
		if err != nil {
			return err
		}
		if _, err := s.withdrawalRepo.FindByID(ctx, withdrawalID); err != nil {
			return mapNotFound(err)
		}
		return s.withdrawalRepo.UpdateFields(ctx, withdrawalID, updates)

	default:
		return apperrors.ErrUnknownResource
	}
}

// Delete removes one record of the given resource kind.
func (s *adminService) Delete(ctx context.Context, resource AdminResource, id string) error {
	switch resource {
	case ResourceUsers:
		userID, err := parseUserID(id)
		if err != nil {
			return err
		}
		if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
			return mapNotFound(err)
		}
		if err := s.userRepo.Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		s.userService.InvalidateCache(ctx, userID)
		return nil

	case ResourceCards:
		cardID, err := parseRecordID(id)
		if err != nil {
			return err
		}
		if _, err := s.cardRepo.FindByID(ctx, cardID); err != nil {
			return mapNotFound(err)
		}
		return s.cardRepo.Delete(ctx, cardID)

	case ResourceWithdrawals:
		withdrawalID, err := parseRecordID(id)
		if err != nil {
			return err
		}
		if _, err := s.withdrawalRepo.FindByID(ctx, withdrawalID); err != nil {
			return mapNotFound(err)
		}
		return s.withdrawalRepo.Delete(ctx, withdrawalID)

	default:
		return apperrors.ErrUnknownResource
	}
}

func parseUserID(id string) (uint, error) {
	parsed, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, apperrors.ErrResourceNotFound
	}
	return uint(parsed), nil
}

func parseRecordID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.ErrResourceNotFound
	}
	return parsed, nil
}

func mapNotFound(err error) error {
	if err == gorm.ErrRecordNotFound {
		return apperrors.ErrResourceNotFound
	}
	return err
}
