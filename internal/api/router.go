package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/vendhub/vending-machine/docs"
	"github.com/vendhub/vending-machine/internal/api/handler"
	"github.com/vendhub/vending-machine/internal/api/middleware"
	"github.com/vendhub/vending-machine/internal/core/domain"
	"github.com/vendhub/vending-machine/internal/core/service"
	infraMongo "github.com/vendhub/vending-machine/internal/infrastructure/db/mongo"
	infraRedis "github.com/vendhub/vending-machine/internal/infrastructure/db/redis"
	"github.com/vendhub/vending-machine/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(client *mongo.Client, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("vending"))

	// --- Dependencies ---
	userRepo := infraMongo.NewUserRepository(db)
	productRepo := infraMongo.NewProductRepository(db)
	purchaseRepo := infraMongo.NewPurchaseRepository(client, db)
	receiptStore := infraRedis.NewReceiptStore(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, log)
	productService := service.NewProductService(productRepo, log)
	purchaseService := service.NewPurchaseService(productRepo, userRepo, purchaseRepo, receiptStore, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService, purchaseService)

	auth := middleware.Auth(cfg.JWTSecret)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleSeller, domain.RoleBuyer)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	sellerOnly := middleware.RBAC(domain.RoleSeller)
	buyerOnly := middleware.RBAC(domain.RoleBuyer)

	// --- Public routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/users", userHandler.Create) // sign-up needs no token

	// --- Users (ledger) ---
	users := v1.Group("/users", auth)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/profile", userHandler.Profile, anyRole)
	users.PUT("/profile", userHandler.UpdateProfile, anyRole)
	users.PUT("/deposit/:amount", userHandler.Deposit, buyerOnly)
	users.PUT("/reset", userHandler.Reset, buyerOnly)
	users.GET("/:id", userHandler.Get, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Products (catalog) ---
	products := v1.Group("/products", auth)
	products.GET("", productHandler.List, anyRole)
	products.GET("/mine", productHandler.ListMine, sellerOnly)
	products.GET("/:id", productHandler.Get, anyRole)
	products.POST("", productHandler.Create, sellerOnly)
	products.PUT("/:id", productHandler.Update, sellerOnly)
	products.DELETE("/:id", productHandler.Delete, sellerOnly)
	products.POST("/:id/buy", productHandler.Buy, buyerOnly)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
