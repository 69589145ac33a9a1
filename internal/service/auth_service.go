package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"swiftmint/internal/auth"
	"swiftmint/internal/model"
	"swiftmint/internal/reference"
	"swiftmint/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when the identifier or password is
	// incorrect. Deliberately generic: callers must not learn which field
	// was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailInUse is returned when registering with a taken email.
	ErrEmailInUse = errors.New("email already registered")
	// ErrPhoneInUse is returned when registering with a taken phone number.
	ErrPhoneInUse = errors.New("phone number already registered")
	// ErrInvalidToken is returned when a session token fails validation.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthService handles registration, login, and logout.
type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email, phone, password string) (*model.User, string, error)
	Login(ctx context.Context, identifier, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	bankName   string
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, bankName string) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		bankName:   bankName,
	}
}

// Register creates a new user with a zero balance, a generated account
// number, and a hashed 4-digit transaction PIN, then issues a session token.
// Both email and phone must be unused; nothing is created otherwise.
func (s *authService) Register(ctx context.Context, firstName, lastName, email, phone, password string) (*model.User, string, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", ErrEmailInUse
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	if existing, err := s.userRepo.FindByPhone(ctx, phone); err == nil && existing != nil {
		return nil, "", ErrPhoneInUse
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check phone: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	// The PIN is generated server-side, hashed, and never surfaced again.
	pinHash, err := bcrypt.GenerateFromPassword([]byte(reference.PIN()), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash pin: %w", err)
	}

	user := &model.User{
		FirstName:          firstName,
		LastName:           lastName,
		Email:              email,
		Phone:              phone,
		PasswordHash:       string(passwordHash),
		PINHash:            string(pinHash),
		AccountNumber:      reference.AccountNumber(),
		BankName:           s.bankName,
		Role:               model.RoleUser,
		EmailNotifications: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	_, token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates by email or phone and returns a session token.
func (s *authService) Login(ctx context.Context, identifier, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, identifier)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("find user: %w", err)
		}
		user, err = s.userRepo.FindByPhone(ctx, identifier)
		if err != nil {
			return nil, "", ErrInvalidCredentials
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	_, token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Logout blacklists the token until its natural expiry.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return ErrInvalidToken
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return s.tokenStore.BlacklistToken(ctx, claims.ID, ttl)
}
