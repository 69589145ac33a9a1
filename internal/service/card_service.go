package service

import (
	"context"
	"fmt"

	apperrors "swiftmint/internal/errors"
	"swiftmint/internal/model"
	"swiftmint/internal/repository"
)

// CardService handles saved payment methods.
type CardService interface {
	AddCard(ctx context.Context, userID uint, cardNumber, cardExpiry string, isDefault bool) (*model.Card, error)
	ListCards(ctx context.Context, userID uint) ([]model.Card, error)
}

type cardService struct {
	cardRepo  repository.CardRepository
	validator *CardValidator
}

// NewCardService creates a new card service.
func NewCardService(cardRepo repository.CardRepository) CardService {
	return &cardService{
		cardRepo:  cardRepo,
		validator: NewCardValidator(),
	}
}

// AddCard validates and stores a card. The number is masked before storage;
// the model hook clears any other default the user had.
func (s *cardService) AddCard(ctx context.Context, userID uint, cardNumber, cardExpiry string, isDefault bool) (*model.Card, error) {
	if err := s.validator.ValidateCard(cardNumber, cardExpiry); err != nil {
		return nil, apperrors.ErrInvalidCard
	}

	card := &model.Card{
		UserID:     userID,
		CardNumber: s.validator.MaskCardNumber(cardNumber),
		CardType:   s.validator.DetectCardType(cardNumber),
		CardExpiry: cardExpiry,
		IsDefault:  isDefault,
		IsActive:   true,
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	return card, nil
}

// ListCards lists the user's saved cards.
func (s *cardService) ListCards(ctx context.Context, userID uint) ([]model.Card, error) {
	return s.cardRepo.FindByUserID(ctx, userID)
}
