package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"swiftmint/internal/config"
	"swiftmint/internal/db"
	"swiftmint/internal/model"
	"swiftmint/internal/reference"
	"swiftmint/internal/repository"
)

// Seeds the back-office admin user and the default display currency. Safe to
// run repeatedly: existing rows are left alone.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	if cfg.AdminPass == "" {
		log.Fatal("ADMIN_PASSWORD must be set to seed the admin user")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Currency{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	currencyRepo := repository.NewCurrencyRepository(gormDB)

	if err := seedAdmin(ctx, userRepo, cfg); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if err := seedCurrency(ctx, currencyRepo); err != nil {
		log.Fatalf("Failed to seed currency: %v", err)
	}

	log.Println("Seed completed")
}

func seedAdmin(ctx context.Context, userRepo repository.UserRepository, cfg *config.Config) error {
	if _, err := userRepo.FindByEmail(ctx, cfg.AdminEmail); err == nil {
		log.Printf("Admin user %s already exists, skipping", cfg.AdminEmail)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		FirstName:     "Swift Mint",
		LastName:      "Admin",
		Email:         cfg.AdminEmail,
		Phone:         "0000000000",
		PasswordHash:  string(passwordHash),
		AccountNumber: reference.AccountNumber(),
		BankName:      cfg.BankName,
		Role:          model.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("Created admin user %s", cfg.AdminEmail)
	return nil
}

func seedCurrency(ctx context.Context, currencyRepo repository.CurrencyRepository) error {
	if _, err := currencyRepo.FindDefault(ctx); err == nil {
		log.Println("Default currency already exists, skipping")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	currency := &model.Currency{
		Code:      "USD",
		Symbol:    "$",
		Name:      "US Dollar",
		IsDefault: true,
	}
	if err := currencyRepo.Create(ctx, currency); err != nil {
		return err
	}

	log.Println("Created default USD currency")
	return nil
}
