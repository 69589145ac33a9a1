package repository

import (
	"context"

	"gorm.io/gorm"

	"swiftmint/internal/model"
)

// CurrencyRepository defines currency persistence operations.
type CurrencyRepository interface {
	Create(ctx context.Context, currency *model.Currency) error
	Update(ctx context.Context, currency *model.Currency) error
	FindDefault(ctx context.Context) (*model.Currency, error)
	FindByCode(ctx context.Context, code string) (*model.Currency, error)
	List(ctx context.Context) ([]model.Currency, error)
}

type currencyRepository struct {
	db *gorm.DB
}

// NewCurrencyRepository creates a new currency repository.
func NewCurrencyRepository(db *gorm.DB) CurrencyRepository {
	return &currencyRepository{db: db}
}

func (r *currencyRepository) Create(ctx context.Context, currency *model.Currency) error {
	return r.db.WithContext(ctx).Create(currency).Error
}

func (r *currencyRepository) Update(ctx context.Context, currency *model.Currency) error {
	return r.db.WithContext(ctx).Save(currency).Error
}

// FindDefault returns the currency flagged as default.
func (r *currencyRepository) FindDefault(ctx context.Context) (*model.Currency, error) {
	var currency model.Currency
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&currency).Error; err != nil {
		return nil, err
	}
	return &currency, nil
}

func (r *currencyRepository) FindByCode(ctx context.Context, code string) (*model.Currency, error) {
	var currency model.Currency
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&currency).Error; err != nil {
		return nil, err
	}
	return &currency, nil
}

func (r *currencyRepository) List(ctx context.Context) ([]model.Currency, error) {
	var currencies []model.Currency
	if err := r.db.WithContext(ctx).Find(&currencies).Error; err != nil {
		return nil, err
	}
	return currencies, nil
}
