package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "swiftmint/internal/errors"
	"swiftmint/internal/repository"
	"swiftmint/internal/testutil"
)

func TestCardService_AddCard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCardService(repository.NewCardRepository(db))
	user := testutil.CreateUser(t, db, "cards@example.com", decimal.Zero)

	card, err := service.AddCard(context.Background(), user.ID, "4242 4242 4242 4242", "12/30", true)
	require.NoError(t, err)

	assert.Equal(t, "****4242", card.CardNumber)
	assert.Equal(t, "visa", card.CardType)
	assert.Equal(t, "12/30", card.CardExpiry)
	assert.True(t, card.IsDefault)
	assert.True(t, card.IsActive)

	// Adding a second default demotes the first via the model hook.
	second, err := service.AddCard(context.Background(), user.ID, "5555555555554444", "11/29", true)
	require.NoError(t, err)
	assert.Equal(t, "mastercard", second.CardType)

	cards, err := service.ListCards(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	defaults := 0
	for _, c := range cards {
		if c.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestCardService_AddCard_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCardService(repository.NewCardRepository(db))
	user := testutil.CreateUser(t, db, "cards@example.com", decimal.Zero)

	tests := []struct {
		name       string
		cardNumber string
		expiry     string
	}{
		{"fails luhn check", "4242424242424241", "12/30"},
		{"too short", "42424242", "12/30"},
		{"bad expiry format", "4242424242424242", "13/30"},
		{"expired card", "4242424242424242", "01/20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddCard(context.Background(), user.ID, tt.cardNumber, tt.expiry, false)
			assert.Equal(t, apperrors.ErrInvalidCard, err)
		})
	}
}

func TestCardValidator(t *testing.T) {
	v := NewCardValidator()

	t.Run("mask", func(t *testing.T) {
		assert.Equal(t, "****4242", v.MaskCardNumber("4242-4242-4242-4242"))
		assert.Equal(t, "****", v.MaskCardNumber("42"))
	})

	t.Run("detect type", func(t *testing.T) {
		assert.Equal(t, "visa", v.DetectCardType("4242424242424242"))
		assert.Equal(t, "mastercard", v.DetectCardType("5555555555554444"))
		assert.Equal(t, "amex", v.DetectCardType("378282246310005"))
		assert.Equal(t, "card", v.DetectCardType("6011111111111117"))
	})

	t.Run("luhn", func(t *testing.T) {
		assert.NoError(t, v.ValidateCard("378282246310005", "12/30"))
		assert.Error(t, v.ValidateCard("378282246310006", "12/30"))
	})
}
