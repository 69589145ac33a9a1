package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"swiftmint/internal/auth"
	"swiftmint/internal/cache"
	"swiftmint/internal/config"
	"swiftmint/internal/db"
	"swiftmint/internal/handler"
	"swiftmint/internal/model"
	"swiftmint/internal/repository"
	"swiftmint/internal/router"
	"swiftmint/internal/service"
)

// @title Swift Mint Flow API
// @version 1.0
// @description Consumer banking demo API: accounts, deposits, withdrawals, transfers, cards, and an admin back-office.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Transaction{},
			&model.Withdrawal{},
			&model.Card{},
			&model.Currency{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Transaction{},
		&model.Withdrawal{},
		&model.Card{},
		&model.Currency{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	transactionRepo := repository.NewTransactionRepository(gormDB)
	withdrawalRepo := repository.NewWithdrawalRepository(gormDB)
	cardRepo := repository.NewCardRepository(gormDB)
	currencyRepo := repository.NewCurrencyRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, cfg.BankName)
	userService := service.NewUserService(userRepo, cacheClient)
	depositService := service.NewDepositService(userRepo, transactionRepo, cardRepo)
	withdrawalService := service.NewWithdrawalService(userRepo, withdrawalRepo)
	transferService := service.NewTransferService(userRepo, userService)
	cardService := service.NewCardService(cardRepo)
	currencyService := service.NewCurrencyService(currencyRepo, cacheClient)
	adminService := service.NewAdminService(userRepo, cardRepo, withdrawalRepo, transactionRepo, userService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	depositHandler := handler.NewDepositHandler(depositService)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalService)
	transferHandler := handler.NewTransferHandler(transferService)
	cardHandler := handler.NewCardHandler(cardService)
	currencyHandler := handler.NewCurrencyHandler(currencyService)
	adminHandler := handler.NewAdminHandler(adminService, withdrawalService)

	// Register routes
	router.Register(
		e,
		jwtService,
		tokenStore,
		authHandler,
		userHandler,
		depositHandler,
		withdrawalHandler,
		transferHandler,
		cardHandler,
		currencyHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
