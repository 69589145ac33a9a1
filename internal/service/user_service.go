package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"swiftmint/internal/cache"
	apperrors "swiftmint/internal/errors"
	"swiftmint/internal/model"
	"swiftmint/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ProfileUpdate carries the allow-listed profile fields a user may change
// about themselves. Balance, role, email, and phone are not among them.
type ProfileUpdate struct {
	FirstName          *string
	LastName           *string
	Address            *string
	City               *string
	Country            *string
	TwoFactorEnabled   *bool
	EmailNotifications *bool
}

// UserService handles user profile operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error)
	InvalidateCache(ctx context.Context, id uint)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{
		repo:  repo,
		cache: cache,
	}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser retrieves a user by ID with caching.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}

	return user, nil
}

// UpdateProfile patches the allow-listed profile fields and returns the
// updated user.
func (s *userService) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	if update.City != nil {
		user.City = *update.City
	}
	if update.Country != nil {
		user.Country = *update.Country
	}
	if update.TwoFactorEnabled != nil {
		user.TwoFactorEnabled = *update.TwoFactorEnabled
	}
	if update.EmailNotifications != nil {
		user.EmailNotifications = *update.EmailNotifications
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.InvalidateCache(ctx, id)
	return user, nil
}

// InvalidateCache drops the cached copy of a user after a balance or profile
// mutation elsewhere.
func (s *userService) InvalidateCache(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, s.cacheKey(id))
}
