package model

import (
	"time"

	"gorm.io/gorm"
)

// Currency is the app-wide display currency setting. It affects formatting
// only, never money math. Exactly one row carries IsDefault at a time.
type Currency struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex;size:3;not null"`
	Symbol    string    `json:"symbol" gorm:"size:8;not null"`
	Name      string    `json:"name" gorm:"size:64;not null"`
	IsDefault bool      `json:"is_default" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave clears IsDefault on all other currencies when a new default is
// saved, so the system converges to a single default row.
func (c *Currency) BeforeSave(tx *gorm.DB) error {
	if !c.IsDefault {
		return nil
	}
	return tx.Session(&gorm.Session{SkipHooks: true, NewDB: true}).
		Model(&Currency{}).
		Where("id <> ?", c.ID).
		Update("is_default", false).Error
}
