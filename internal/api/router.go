package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/masum-abrar/nex-trade-backend/docs"
	"github.com/masum-abrar/nex-trade-backend/internal/api/handler"
	"github.com/masum-abrar/nex-trade-backend/internal/api/middleware"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
	"github.com/masum-abrar/nex-trade-backend/internal/core/service"
	"github.com/masum-abrar/nex-trade-backend/internal/infrastructure/config"
	mongorepo "github.com/masum-abrar/nex-trade-backend/internal/infrastructure/db/mongo"
	redisrepo "github.com/masum-abrar/nex-trade-backend/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, mailQueue ports.MailQueue, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("nextrade"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	grantRepo := redisrepo.NewGrantCache(mongorepo.NewGrantRepository(db), rdb, log)
	brokerRepo := mongorepo.NewBrokerRepository(db)
	orderRepo := mongorepo.NewOrderRepository(db)
	fundsRepo := mongorepo.NewFundsRepository(db)

	authService := service.NewAuthService(userRepo, grantRepo, mailQueue, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	brokerService := service.NewBrokerService(brokerRepo, log)
	orderService := service.NewOrderService(orderRepo, log)
	fundsService := service.NewFundsService(fundsRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	brokerHandler := handler.NewBrokerHandler(brokerService)
	orderHandler := handler.NewOrderHandler(orderService)
	fundsHandler := handler.NewFundsHandler(fundsService)

	verified := middleware.Auth(cfg.JWTSecret)

	v1 := e.Group("/v1")

	// --- Auth routes ---
	v1.POST("/auth/register", authHandler.Register, verified, middleware.RequireModule("users:create"))
	v1.POST("/customer/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/send-login-otp", authHandler.SendLoginOTP)
	v1.POST("/auth/login-with-otp", authHandler.LoginWithOTP)
	v1.POST("/auth/logout", authHandler.Logout)

	// --- User management (module-gated) ---
	v1.GET("/auth/users", userHandler.List, verified, middleware.RequireModule("users:list"))
	v1.GET("/auth/user/users", userHandler.ListSubAccounts, verified, middleware.RequireModule("users:user-list"))
	v1.GET("/auth/users/:id", userHandler.Get, verified, middleware.RequireModule("users:single"))
	v1.PUT("/auth/users/:id", userHandler.Update, verified, middleware.RequireModule("users:edit"))
	v1.PUT("/users/:id/ban", userHandler.Ban, verified, middleware.RequireModule("users:ban"))
	v1.DELETE("/auth/users/:id", userHandler.Delete, verified, middleware.RequireModule("users:remove"))

	// Customers can read and edit their own profile without module grants.
	v1.GET("/customer/auth/users/:id", userHandler.Get, verified)
	v1.PUT("/customer/auth/users/:id", userHandler.Update, verified)

	// --- Broker accounts ---
	v1.POST("/brokerusers", brokerHandler.Create)
	v1.GET("/brokerusers", brokerHandler.List)
	v1.GET("/brokerusers/:userId", brokerHandler.Get)
	v1.PUT("/brokerusers/:userId", brokerHandler.Update)
	v1.PUT("/brokerusers/:userId/update-funds", brokerHandler.UpdateFunds)
	v1.POST("/loginbrokerusers", brokerHandler.Login)

	// --- Trade orders ---
	v1.POST("/tradeorder", orderHandler.Place)
	v1.GET("/executed-orders", orderHandler.ListExecuted)
	v1.GET("/limit-orders", orderHandler.ListExecuted)
	v1.DELETE("/delete-order/:id", orderHandler.Delete)

	// --- Deposits and withdraws ---
	v1.POST("/deposite", fundsHandler.CreateDeposit)
	v1.GET("/deposites", fundsHandler.ListDeposits)
	v1.PUT("/update-deposites/:id/status", fundsHandler.UpdateDepositStatus)
	v1.POST("/withdraw", fundsHandler.CreateWithdraw)
	v1.GET("/withdraws", fundsHandler.ListWithdraws)
	v1.PUT("/update-withdraws/:id/status", fundsHandler.UpdateWithdrawStatus)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
