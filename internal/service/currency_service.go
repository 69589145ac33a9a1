package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"swiftmint/internal/cache"
	"swiftmint/internal/model"
	"swiftmint/internal/repository"
)

const (
	currencyCacheKey = "currency:default"
	currencyCacheTTL = 10 * time.Minute
)

// CurrencyService manages the app-wide display currency. The first read
// bootstraps a USD default so the client always has something to format with.
type CurrencyService interface {
	GetDefault(ctx context.Context) (*model.Currency, error)
	Upsert(ctx context.Context, code, symbol, name string, isDefault bool) (*model.Currency, error)
}

type currencyService struct {
	repo  repository.CurrencyRepository
	cache *cache.Client
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(repo repository.CurrencyRepository, cache *cache.Client) CurrencyService {
	return &currencyService{
		repo:  repo,
		cache: cache,
	}
}

// GetDefault returns the default currency, creating the USD row if no
// default exists yet. The bootstrap is idempotent: concurrent first reads
// race to a unique code index, and the loser re-reads.
func (s *currencyService) GetDefault(ctx context.Context) (*model.Currency, error) {
	if data, _ := s.cache.Get(ctx, currencyCacheKey); data != nil {
		var cached model.Currency
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	currency, err := s.repo.FindDefault(ctx)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("find default currency: %w", err)
		}
		currency = &model.Currency{
			Code:      "USD",
			Symbol:    "$",
			Name:      "US Dollar",
			IsDefault: true,
		}
		if createErr := s.repo.Create(ctx, currency); createErr != nil {
			// Lost the bootstrap race; the row exists now.
			currency, err = s.repo.FindDefault(ctx)
			if err != nil {
				return nil, fmt.Errorf("bootstrap currency: %w", createErr)
			}
		}
	}

	if payload, err := json.Marshal(currency); err == nil {
		_ = s.cache.Set(ctx, currencyCacheKey, payload, currencyCacheTTL)
	}

	return currency, nil
}

// Upsert creates or updates a currency by code. The model hook keeps exactly
// one default row system-wide.
func (s *currencyService) Upsert(ctx context.Context, code, symbol, name string, isDefault bool) (*model.Currency, error) {
	currency, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("find currency: %w", err)
		}
		currency = &model.Currency{
			Code:      code,
			Symbol:    symbol,
			Name:      name,
			IsDefault: isDefault,
		}
		if err := s.repo.Create(ctx, currency); err != nil {
			return nil, fmt.Errorf("create currency: %w", err)
		}
	} else {
		currency.Symbol = symbol
		currency.Name = name
		currency.IsDefault = isDefault
		if err := s.repo.Update(ctx, currency); err != nil {
			return nil, fmt.Errorf("update currency: %w", err)
		}
	}

	_ = s.cache.Delete(ctx, currencyCacheKey)
	return currency, nil
}
