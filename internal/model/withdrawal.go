package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"swiftmint/internal/reference"
)

// WithdrawalStatus represents the status of a withdrawal request.
// Only pending is ever written by the request path; verify-tax flips
// TaxVerified without advancing Status.
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusVerified  WithdrawalStatus = "verified"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
)

// Withdrawal is a payout request kept separate from the transaction log.
// Submitting one checks the balance but neither debits nor reserves funds.
type Withdrawal struct {
	ID          uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uint             `json:"user_id" gorm:"not null;index"`
	Amount      decimal.Decimal  `json:"amount" gorm:"type:decimal(20,2);not null"`
	TaxCode     string           `json:"tax_code" gorm:"size:64;not null"`
	TaxVerified bool             `json:"tax_verified" gorm:"default:false"`
	Status      WithdrawalStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Reference   string           `json:"reference" gorm:"uniqueIndex;size:32;not null"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `json:"-" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets the UUID and auto-generates the reference.
func (w *Withdrawal) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Reference == "" {
		w.Reference = reference.Withdrawal()
	}
	return nil
}
