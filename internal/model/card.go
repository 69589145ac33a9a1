package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Card represents a saved payment method. Only the masked number is stored.
type Card struct {
	ID         uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	CardNumber string         `json:"card_number" gorm:"size:19;not null"` // Masked card number
	CardType   string         `json:"card_type" gorm:"size:20"`
	CardExpiry string         `json:"card_expiry" gorm:"size:5;not null"` // MM/YY format
	IsDefault  bool           `json:"is_default" gorm:"default:false"`
	IsActive   bool           `json:"is_active" gorm:"default:true;index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps at most one default card per user: saving a card with
// IsDefault clears the flag on every other card the user owns.
func (c *Card) BeforeSave(tx *gorm.DB) error {
	if !c.IsDefault {
		return nil
	}
	return tx.Session(&gorm.Session{SkipHooks: true, NewDB: true}).
		Model(&Card{}).
		Where("user_id = ? AND id <> ?", c.UserID, c.ID).
		Update("is_default", false).Error
}
