package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gamevault/storefront-api/internal/api/handler"
	"github.com/gamevault/storefront-api/internal/api/middleware"
	"github.com/gamevault/storefront-api/internal/core/ports"
	"github.com/gamevault/storefront-api/internal/core/service"
	storemongo "github.com/gamevault/storefront-api/internal/infrastructure/db/mongo"
	"github.com/gamevault/storefront-api/internal/infrastructure/storage"
)

// RouterConfig carries the external collaborators the router wires together.
type RouterConfig struct {
	DB        *mongo.Database
	Bucket    *storage.Bucket
	Identity  ports.IdentityProvider
	JWTSecret string
	TokenTTL  time.Duration // 0 = default 30 days
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	userRepo := storemongo.NewUserRepository(cfg.DB)
	categoryRepo := storemongo.NewCategoryRepository(cfg.DB)
	productRepo := storemongo.NewProductRepository(cfg.DB)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, cfg.Identity, tokenService, cfg.Logger)
	categoryService := service.NewCategoryService(categoryRepo, cfg.Logger)
	productService := service.NewProductService(productRepo, categoryRepo, cfg.Logger)
	mediaService := service.NewMediaService(cfg.Bucket, cfg.Logger)

	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService, mediaService)

	protect := middleware.Auth(tokenService, userRepo)
	admin := middleware.RequireAdmin()

	// --- API routes ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)

	apiGroup.GET("/categories", categoryHandler.List)
	apiGroup.GET("/categories/:id", categoryHandler.Get)
	apiGroup.POST("/categories", categoryHandler.Create, protect, admin)
	apiGroup.PUT("/categories/:id", categoryHandler.Update, protect, admin)
	apiGroup.DELETE("/categories/:id", categoryHandler.Delete, protect, admin)

	apiGroup.GET("/products", productHandler.List)
	apiGroup.GET("/products/featured", productHandler.Featured)
	apiGroup.GET("/products/:id", productHandler.Get)
	apiGroup.POST("/products", productHandler.Create, protect, admin)
	apiGroup.PUT("/products/:id", productHandler.Update, protect, admin)
	apiGroup.DELETE("/products/:id", productHandler.Delete, protect, admin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.DB, cfg.Bucket)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
