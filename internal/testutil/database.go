// Package testutil provides test helpers for setting up in-memory databases
// and fixtures.
package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"swiftmint/internal/model"
	"swiftmint/internal/reference"
)

// allModels is the list of all GORM models to auto-migrate in tests.
var allModels = []interface{}{
	&model.User{},
	&model.Transaction{},
	&model.Withdrawal{},
	&model.Card{},
	&model.Currency{},
}

// SetupTestDB creates an in-memory SQLite database with all models migrated.
// Each call gets its own private database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying sql.DB: %v", err)
	}
	_ = sqlDB.Close()
}

// CreateUser inserts a user with the given email and balance.
func CreateUser(t *testing.T, db *gorm.DB, email string, balance decimal.Decimal) *model.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &model.User{
		FirstName:     "Test",
		LastName:      "User",
		Email:         email,
		Phone:         reference.AccountNumber(),
		PasswordHash:  string(passwordHash),
		AccountNumber: reference.AccountNumber(),
		BankName:      "Swift Mint Flow",
		Balance:       balance,
		Role:          model.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}
