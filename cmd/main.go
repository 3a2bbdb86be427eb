package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"shopcore/internal/caching"
	"shopcore/internal/config"
	"shopcore/internal/events"
	"shopcore/internal/handlers"
	"shopcore/internal/jobs"
	"shopcore/internal/middleware"
	"shopcore/internal/repositories"
	"shopcore/internal/services"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret")
	}

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	mediaSvc, err := services.NewMinioMediaService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL, cfg.MinioBucket, cfg.MediaBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}
	if err := mediaSvc.EnsureBucketExists(context.Background()); err != nil {
		log.Printf("WARN: media bucket check failed: %v", err)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, 1024)
	}
	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()
	publisher.Start(publisherCtx)

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	brandRepo := repositories.NewBrandRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	productImageRepo := repositories.NewProductImageRepo(pool)
	inventoryRepo := repositories.NewInventoryRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, jwtSecret, cfg.TokenTTL)
	productSvc := services.NewProductService(productRepo, productImageRepo, cacheSvc, cfg.CacheTTL)
	catalogSvc := services.NewCatalogService(pool, brandRepo, categoryRepo, productRepo, productImageRepo, inventoryRepo, cacheSvc)
	orderSvc := services.NewOrderService(pool, orderRepo, paymentRepo, productRepo, inventoryRepo, cacheSvc, publisher)
	paymentSvc := services.NewPaymentService(pool, orderRepo, paymentRepo, publisher)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	userHandlers := handlers.NewUserHandlers(authSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc, paymentSvc)
	adminCatalogHandlers := handlers.NewAdminCatalogHandlers(catalogSvc, mediaSvc)
	adminOrderHandlers := handlers.NewAdminOrderHandlers(orderSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	lowStockMonitor, err := jobs.NewLowStockMonitor(inventoryRepo, productRepo, cfg.LowStockThreshold, cfg.LowStockInterval)
	if err != nil {
		log.Fatalf("Failed to create low stock monitor: %v", err)
	}
	if err := lowStockMonitor.Start(); err != nil {
		log.Fatalf("Failed to start low stock monitor: %v", err)
	}
	defer lowStockMonitor.Stop()

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/healthz", healthHandlers.Live)
	e.GET("/healthz/ready", healthHandlers.Ready)

	// Public catalog
	e.GET("/products", productHandlers.ListProducts)
	e.GET("/products/:id", productHandlers.GetProduct)
	e.GET("/products/:id/images", productHandlers.GetProductImages)

	// Authentication
	auth := e.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)

	// Authenticated routes
	protected := e.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))
	protected.Use(middleware.LoadUser(userRepo))

	protected.GET("/users/me", userHandlers.Me)
	protected.POST("/orders", orderHandlers.CreateOrder)
	protected.GET("/orders/me", orderHandlers.ListMyOrders)
	protected.GET("/orders/:id", orderHandlers.GetOrder)
	protected.POST("/orders/:id/pay", orderHandlers.PayOrder)

	// Superuser routes
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireSuperuser())

	admin.GET("/brands", adminCatalogHandlers.ListBrands)
	admin.POST("/brands", adminCatalogHandlers.CreateBrand)
	admin.PATCH("/brands/:id", adminCatalogHandlers.UpdateBrand)
	admin.DELETE("/brands/:id", adminCatalogHandlers.DeleteBrand)

	admin.GET("/categories", adminCatalogHandlers.ListCategories)
	admin.POST("/categories", adminCatalogHandlers.CreateCategory)
	admin.PATCH("/categories/:id", adminCatalogHandlers.UpdateCategory)
	admin.DELETE("/categories/:id", adminCatalogHandlers.DeleteCategory)

	admin.POST("/products", adminCatalogHandlers.CreateProduct)
	admin.PATCH("/products/:id", adminCatalogHandlers.UpdateProduct)
	admin.DELETE("/products/:id", adminCatalogHandlers.DeleteProduct)
	admin.POST("/products/:id/images", adminCatalogHandlers.AddProductImage)
	admin.POST("/products/:id/images/upload", adminCatalogHandlers.UploadProductImage)
	admin.GET("/products/:id/inventory", adminCatalogHandlers.GetInventory)
	admin.PATCH("/products/:id/inventory", adminCatalogHandlers.UpsertInventory)

	admin.GET("/orders", adminOrderHandlers.ListOrders)
	admin.PATCH("/orders/:id", adminOrderHandlers.UpdateOrderStatus)

	if err := e.Start(fmt.Sprintf(":%d", cfg.HTTPPort)); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
