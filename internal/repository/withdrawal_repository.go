package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swiftmint/internal/model"
)

// WithdrawalRepository defines withdrawal persistence operations.
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *model.Withdrawal) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Withdrawal, error)
	FindByUserID(ctx context.Context, userID uint) ([]model.Withdrawal, error)
	List(ctx context.Context) ([]model.Withdrawal, error)
}

type withdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new withdrawal repository.
func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

// Create creates a new withdrawal record.
func (r *withdrawalRepository) Create(ctx context.Context, withdrawal *model.Withdrawal) error {
	return r.db.WithContext(ctx).Create(withdrawal).Error
}

// UpdateFields applies a column map to a withdrawal. Used by the admin edit
// bridge and the verify-tax action.
func (r *withdrawalRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Withdrawal{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes a withdrawal record.
func (r *withdrawalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Withdrawal{}, "id = ?", id).Error
}

// FindByID finds a withdrawal by ID.
func (r *withdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Withdrawal, error) {
	var withdrawal model.Withdrawal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&withdrawal).Error; err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

// FindByUserID lists a user's withdrawals, newest first.
func (r *withdrawalRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Withdrawal, error) {
	var withdrawals []model.Withdrawal
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// List lists all withdrawals, newest first.
func (r *withdrawalRepository) List(ctx context.Context) ([]model.Withdrawal, error) {
	var withdrawals []model.Withdrawal
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}
