package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"swiftmint/internal/model"
)

// UserRepository defines user persistence operations. The ForUpdate variants
// take row-level locks and exist for the transfer path, which is the only
// place balances move inside a database transaction.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, txns TransactionRepository) error) error
	FindByIDForUpdate(ctx context.Context, id uint) (*model.User, error)
	FindByAccountNumberForUpdate(ctx context.Context, accountNumber string) (*model.User, error)
	UpdateBalance(ctx context.Context, id uint, newBalance decimal.Decimal) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdateFields applies a column map to a user. Used by the admin edit bridge.
func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// WithTransaction executes a function within a database transaction. The
// callback gets user and transaction repositories bound to the same tx so
// balance updates and their ledger rows commit or roll back together.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, txns TransactionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx}, &transactionRepository{db: tx})
	})
}

// lockForUpdate adds a FOR UPDATE locking clause. SQLite has no row-level
// locks; its single-writer database lock serializes the transaction instead,
// so the clause is omitted there.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// FindByIDForUpdate finds a user by ID with a row-level lock.
func (r *userRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := lockForUpdate(r.db.WithContext(ctx)).
		Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByAccountNumberForUpdate finds a user by account number with a row-level lock.
func (r *userRepository) FindByAccountNumberForUpdate(ctx context.Context, accountNumber string) (*model.User, error) {
	var user model.User
	if err := lockForUpdate(r.db.WithContext(ctx)).
		Where("account_number = ?", accountNumber).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateBalance updates the balance of a user.
func (r *userRepository) UpdateBalance(ctx context.Context, id uint, newBalance decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("balance", newBalance).Error
}
