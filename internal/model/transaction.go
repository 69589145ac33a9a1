package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// TransactionStatus represents the status of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction records a single money movement against a user. BalanceAfter
// is a snapshot taken at write time and is never recomputed; the transaction
// log and User.Balance are independent write paths.
type Transaction struct {
	ID               uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	UserID           uint              `json:"user_id" gorm:"not null;index"`
	Type             TransactionType   `json:"type" gorm:"type:varchar(10);not null;index"`
	Amount           decimal.Decimal   `json:"amount" gorm:"type:decimal(20,2);not null"`
	Description      string            `json:"description" gorm:"size:255"`
	Reference        string            `json:"reference" gorm:"uniqueIndex;size:32;not null"`
	Status           TransactionStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Category         string            `json:"category,omitempty" gorm:"size:50"`
	SenderName       string            `json:"sender_name,omitempty" gorm:"size:200"`
	SenderAccount    string            `json:"sender_account,omitempty" gorm:"size:34"`
	RecipientName    string            `json:"recipient_name,omitempty" gorm:"size:200"`
	RecipientAccount string            `json:"recipient_account,omitempty" gorm:"size:34"`
	BalanceAfter     decimal.Decimal   `json:"balance_after" gorm:"type:decimal(20,2);not null"`
	Metadata         string            `json:"metadata,omitempty" gorm:"type:text"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `json:"-" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
