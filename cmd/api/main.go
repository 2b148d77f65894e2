package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/config"
	"github.com/mesahq/mesa-api/internal/infrastructure/cache"
	"github.com/mesahq/mesa-api/internal/infrastructure/database"
	"github.com/mesahq/mesa-api/internal/infrastructure/repository"
	"github.com/mesahq/mesa-api/internal/presentation/http/handler"
	"github.com/mesahq/mesa-api/internal/presentation/http/routes"
	"github.com/mesahq/mesa-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize Redis cache (nil-safe: a missing Redis degrades to no caching)
	redisCache := cache.New(&cfg.Redis)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	recipeIngredientRepo := repository.NewRecipeIngredientRepository(db)
	intendRepo := repository.NewIntendRepository(db)
	intendItemRepo := repository.NewIntendItemRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	poItemRepo := repository.NewPOItemRepository(db)
	grnRepo := repository.NewGRNRepository(db)
	grnItemRepo := repository.NewGRNItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	expensePaymentRepo := repository.NewExpensePaymentRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	stockRepo := repository.NewStockMovementRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	transactor := repository.NewTransactor(db)

	// Initialize services
	docNumbers := service.NewDocNumberService(sequenceRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)
	vendorService := service.NewVendorService(vendorRepo, poRepo, paymentRepo, analyticsRepo)
	recipeService := service.NewRecipeService(recipeRepo, recipeIngredientRepo, ingredientRepo, transactor)
	intendService := service.NewIntendService(intendRepo, intendItemRepo, ingredientRepo, vendorRepo, poRepo, poItemRepo, docNumbers, transactor)
	poService := service.NewPurchaseOrderService(poRepo, poItemRepo, vendorRepo, ingredientRepo, grnRepo, paymentRepo, docNumbers, transactor)
	grnService := service.NewGRNService(grnRepo, grnItemRepo, poRepo, poItemRepo, ingredientRepo, stockRepo, docNumbers, transactor)
	paymentService := service.NewPaymentService(paymentRepo, poRepo, grnRepo, analyticsRepo, docNumbers, transactor)
	stockService := service.NewStockService(ingredientRepo, stockRepo, analyticsRepo, transactor)
	saleService := service.NewSaleService(saleRepo, saleItemRepo, recipeRepo, ingredientRepo, stockRepo, docNumbers, transactor)
	expenseService := service.NewExpenseService(expenseRepo, expensePaymentRepo, vendorRepo, docNumbers, transactor)
	dashboardService := service.NewDashboardService(vendorRepo, ingredientRepo, recipeRepo, poRepo, saleRepo, paymentRepo, analyticsRepo, redisCache, cfg.Redis.DashboardTTL)
	adminService := service.NewAdminService(adminRepo, ingredientRepo, vendorRepo, recipeRepo, sequenceRepo, transactor, dashboardService, poService, grnService, paymentService, saleService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		User:          handler.NewUserHandler(userService),
		Ingredient:    handler.NewIngredientHandler(ingredientService),
		Vendor:        handler.NewVendorHandler(vendorService),
		Recipe:        handler.NewRecipeHandler(recipeService),
		Intend:        handler.NewIntendHandler(intendService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(poService),
		GRN:           handler.NewGRNHandler(grnService),
		Payment:       handler.NewPaymentHandler(paymentService),
		Stock:         handler.NewStockHandler(stockService),
		Sale:          handler.NewSaleHandler(saleService),
		Expense:       handler.NewExpenseHandler(expenseService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
		Admin:         handler.NewAdminHandler(adminService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
