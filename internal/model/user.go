package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a bank customer (or back-office admin) and their single
// account. Balance lives directly on the user; it is written by the admin
// edit path and by transfers, and deliberately not derived from the
// transaction log.
type User struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	FirstName          string          `json:"first_name" gorm:"size:100;not null"`
	LastName           string          `json:"last_name" gorm:"size:100;not null"`
	Email              string          `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone              string          `json:"phone" gorm:"uniqueIndex;size:32;not null"`
	PasswordHash       string          `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	PINHash            string          `json:"-" gorm:"size:255"`          // Hashed 4-digit transaction PIN
	AccountNumber      string          `json:"account_number" gorm:"uniqueIndex;size:10;not null"`
	BankName           string          `json:"bank_name" gorm:"size:100"`
	Balance            decimal.Decimal `json:"balance" gorm:"type:decimal(20,2);not null;default:0"`
	TaxCode            string          `json:"tax_code,omitempty" gorm:"size:64"`
	Address            string          `json:"address,omitempty" gorm:"size:255"`
	City               string          `json:"city,omitempty" gorm:"size:100"`
	Country            string          `json:"country,omitempty" gorm:"size:100"`
	Role               string          `json:"role" gorm:"size:50;default:'user';index"`
	TwoFactorEnabled   bool            `json:"two_factor_enabled" gorm:"default:false"`
	EmailNotifications bool            `json:"email_notifications" gorm:"default:true"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Cards []Card `json:"cards,omitempty" gorm:"foreignKey:UserID"`
}

// FullName returns the display name used on transaction records.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
