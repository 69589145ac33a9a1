package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"swiftmint/internal/auth"
	"swiftmint/internal/handler"
	"swiftmint/internal/model"
)

// Register wires routes and middleware. Admin mutations are gated in exactly
// one place: the admin group carries the JWT middleware plus the role check,
// so no admin route can ship without both.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	depositHandler *handler.DepositHandler,
	withdrawalHandler *handler.WithdrawalHandler,
	transferHandler *handler.TransferHandler,
	cardHandler *handler.CardHandler,
	currencyHandler *handler.CurrencyHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/currency", currencyHandler.GetCurrency)

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: parseTokenFunc(jwtService, tokenStore),
	})

	// Secured routes (require a valid, non-revoked session token)
	secured := api.Group("", jwtMiddleware)

	secured.POST("/auth/logout", authHandler.Logout)

	secured.GET("/user", userHandler.GetMe)
	secured.GET("/user/profile", userHandler.GetProfile)
	secured.PUT("/user/profile", userHandler.UpdateProfile)

	secured.POST("/deposits", depositHandler.SubmitDeposit)
	secured.GET("/transactions", depositHandler.ListTransactions)

	secured.POST("/withdrawals", withdrawalHandler.SubmitWithdrawal)
	secured.GET("/withdrawals", withdrawalHandler.ListWithdrawals)

	secured.POST("/transfers", transferHandler.TransferInternal)
	secured.POST("/transfers/external", transferHandler.TransferExternal)

	secured.POST("/cards", cardHandler.AddCard)
	secured.GET("/cards", cardHandler.ListCards)

	secured.POST("/currency", currencyHandler.UpsertCurrency, RequireAdmin)

	// Admin routes
	admin := api.Group("/admin", jwtMiddleware, RequireAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/cards", adminHandler.ListCards)
	admin.GET("/withdrawals", adminHandler.ListWithdrawals)
	admin.GET("/transactions", adminHandler.ListTransactions)
	admin.POST("/edit", adminHandler.Edit)
	admin.POST("/delete", adminHandler.Delete)
	admin.POST("/verify-tax", adminHandler.VerifyTax)
}

// parseTokenFunc validates the token signature and rejects revoked tokens.
// The returned claims end up in the context under "user".
func parseTokenFunc(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) func(c echo.Context, tokenString string) (interface{}, error) {
	return func(c echo.Context, tokenString string) (interface{}, error) {
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			return nil, err
		}

		if revoked, _ := tokenStore.IsTokenBlacklisted(c.Request().Context(), claims.ID); revoked {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
		}

		return claims, nil
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.Claims)
		if !ok || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
