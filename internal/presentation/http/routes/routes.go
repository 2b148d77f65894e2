package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mesahq/mesa-api/internal/config"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/internal/presentation/http/handler"
	"github.com/mesahq/mesa-api/internal/presentation/http/middleware"
	"github.com/mesahq/mesa-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Ingredient    *handler.IngredientHandler
	Vendor        *handler.VendorHandler
	Recipe        *handler.RecipeHandler
	Intend        *handler.IntendHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	GRN           *handler.GRNHandler
	Payment       *handler.PaymentHandler
	Stock         *handler.StockHandler
	Sale          *handler.SaleHandler
	Expense       *handler.ExpenseHandler
	Dashboard     *handler.DashboardHandler
	Admin         *handler.AdminHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	// Dashboards and reports
	registerDashboardRoutes(protected, h)

	// Master data
	registerUserRoutes(protected, h)
	registerIngredientRoutes(protected, h)
	registerVendorRoutes(protected, h)
	registerRecipeRoutes(protected, h)

	// Purchasing flow
	registerIntendRoutes(protected, h)
	registerPurchaseOrderRoutes(protected, h)
	registerGRNRoutes(protected, h, deps)
	registerPaymentRoutes(protected, h, deps)

	// Inventory
	registerStockRoutes(protected, h)

	// Sales and expenses
	registerSaleRoutes(protected, h)
	registerExpenseRoutes(protected, h, deps)

	// Admin maintenance
	registerAdminRoutes(protected, h)
}

func registerDashboardRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/dashboard", h.Dashboard.Stats)
	protected.GET("/reports/mtd-cogs", h.Dashboard.MTDCOGS)

	accounts := protected.Group("/accounts")
	accounts.Use(middleware.RequireRole(string(enum.RoleAdmin), string(enum.RoleAccounts)))
	{
		accounts.GET("/dashboard", h.Dashboard.Accounts)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(string(enum.RoleAdmin)))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerIngredientRoutes(protected *gin.RouterGroup, h *Handlers) {
	ingredients := protected.Group("/ingredients")
	{
		ingredients.GET("", h.Ingredient.List)
		ingredients.POST("", h.Ingredient.Create)
		ingredients.GET("/:id", h.Ingredient.Get)
		ingredients.PUT("/:id", h.Ingredient.Update)
		ingredients.DELETE("/:id", h.Ingredient.Delete)
	}
}

func registerVendorRoutes(protected *gin.RouterGroup, h *Handlers) {
	vendors := protected.Group("/vendors")
	{
		vendors.GET("", h.Vendor.List)
		vendors.POST("", h.Vendor.Create)
		vendors.GET("/:id", h.Vendor.Get)
		vendors.PUT("/:id", h.Vendor.Update)
		vendors.DELETE("/:id", h.Vendor.Delete)
		vendors.GET("/:id/dashboard", h.Vendor.Dashboard)
	}
}

func registerRecipeRoutes(protected *gin.RouterGroup, h *Handlers) {
	recipes := protected.Group("/recipes")
	{
		recipes.GET("", h.Recipe.List)
		recipes.POST("", h.Recipe.Create)
		recipes.GET("/:id", h.Recipe.Get)
		recipes.PUT("/:id", h.Recipe.Update)
		recipes.DELETE("/:id", h.Recipe.Delete)
	}
}

func registerIntendRoutes(protected *gin.RouterGroup, h *Handlers) {
	intends := protected.Group("/intends")
	{
		intends.GET("", h.Intend.List)
		intends.POST("", h.Intend.Create)
		intends.GET("/:id", h.Intend.Get)
		intends.PUT("/:id", h.Intend.Update)
		intends.DELETE("/:id", h.Intend.Delete)
		intends.POST("/:id/submit", h.Intend.Submit)
		// Approval and conversion are management actions
		intends.POST("/:id/approve", middleware.RequireRole(
			string(enum.RoleAdmin), string(enum.RoleManager)), h.Intend.Approve)
		intends.POST("/:id/convert", middleware.RequireRole(
			string(enum.RoleAdmin), string(enum.RoleManager)), h.Intend.ConvertToPO)
	}
}

func registerPurchaseOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	pos := protected.Group("/purchase-orders")
	{
		pos.GET("", h.PurchaseOrder.List)
		pos.POST("", h.PurchaseOrder.Create)
		pos.GET("/:id", h.PurchaseOrder.Get)
		pos.POST("/:id/confirm", h.PurchaseOrder.Confirm)
		pos.DELETE("/:id", middleware.RequireRole(string(enum.RoleAdmin)), h.PurchaseOrder.Delete)
		pos.GET("/:id/grns", h.GRN.ListByPO)
	}
}

func registerGRNRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	grns := protected.Group("/grns")
	{
		grns.GET("", h.GRN.List)
		// Receipt posting requires an Idempotency-Key so a retried
		// request cannot double-post stock.
		grns.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.GRN.Create)
		grns.GET("/:id", h.GRN.Get)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	payments := protected.Group("/payments")
	payments.Use(middleware.RequireRole(string(enum.RoleAdmin), string(enum.RoleAccounts)))
	{
		payments.GET("", h.Payment.List)
		payments.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Payment.Create)
		payments.GET("/outstanding", h.Payment.Outstanding)
		payments.GET("/:id", h.Payment.Get)
	}
}

func registerStockRoutes(protected *gin.RouterGroup, h *Handlers) {
	stock := protected.Group("/stock")
	{
		stock.GET("", h.Stock.Overview)
		stock.GET("/movements/:ingredientId", h.Stock.Movements)
		stock.POST("/adjust", h.Stock.Adjust)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.DELETE("/:id", middleware.RequireRole(string(enum.RoleAdmin)), h.Sale.Delete)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", middleware.RequireRole(string(enum.RoleAdmin)), h.Expense.Delete)
		expenses.POST("/:id/payments",
			middleware.RequireRole(string(enum.RoleAdmin), string(enum.RoleAccounts)),
			middleware.IdempotencyRequired(middleware.IdempotencyConfig{
				Repo: deps.IdempotencyRepo,
			}), h.Expense.Pay)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(string(enum.RoleAdmin)))
	{
		admin.DELETE("/transactions", h.Admin.WipeTransactions)
		admin.POST("/seed-transactions", h.Admin.SeedTransactions)
	}
}
