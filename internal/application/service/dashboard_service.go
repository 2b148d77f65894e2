package service

import (
	"context"
	"time"

	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
)

const accountsDashboardCacheKey = "dashboard:accounts"

// DashboardService builds the overview, accounts and MTD COGS reports
type DashboardService struct {
	vendorRepo     repository.VendorRepository
	ingredientRepo repository.IngredientRepository
	recipeRepo     repository.RecipeRepository
	poRepo         repository.PurchaseOrderRepository
	saleRepo       repository.SaleRepository
	paymentRepo    repository.PaymentRepository
	analyticsRepo  repository.AnalyticsRepository
	cache          *cache.Cache
	cacheTTL       time.Duration
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	vendorRepo repository.VendorRepository,
	ingredientRepo repository.IngredientRepository,
	recipeRepo repository.RecipeRepository,
	poRepo repository.PurchaseOrderRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	analyticsRepo repository.AnalyticsRepository,
	c *cache.Cache,
	cacheTTL time.Duration,
) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 60 * time.Second
	}
	return &DashboardService{
		vendorRepo:     vendorRepo,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		poRepo:         poRepo,
		saleRepo:       saleRepo,
		paymentRepo:    paymentRepo,
		analyticsRepo:  analyticsRepo,
		cache:          c,
		cacheTTL:       cacheTTL,
	}
}

// DashboardStats represents the overview dashboard
type DashboardStats struct {
	TotalVendors      int64                            `json:"total_vendors"`
	TotalIngredients  int64                            `json:"total_ingredients"`
	TotalRecipes      int64                            `json:"total_recipes"`
	TotalPOs          int64                            `json:"total_purchase_orders"`
	TotalSales        int64                            `json:"total_sales"`
	TotalRevenue      decimal.Decimal                  `json:"total_revenue"`
	MonthlyRevenue    decimal.Decimal                  `json:"monthly_revenue"`
	LowStockCount     int64                            `json:"low_stock_count"`
	PendingPOs        int64                            `json:"pending_purchase_orders"`
	OutstandingAmount decimal.Decimal                  `json:"outstanding_amount"`
	StockValue        decimal.Decimal                  `json:"stock_value"`
	DailySales        []repository.DailySalesResult    `json:"daily_sales"`
	CategorySales     []repository.CategorySalesResult `json:"category_sales"`
}

// GetDashboardStats builds the overview dashboard
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalVendors, err = s.vendorRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalIngredients, err = s.ingredientRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRecipes, err = s.recipeRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalPOs, err = s.poRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSales, err = s.saleRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.analyticsRepo.TotalRevenue(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if stats.MonthlyRevenue, err = s.analyticsRepo.RevenueBetween(ctx, monthStart, now); err != nil {
		return nil, err
	}

	if stats.LowStockCount, err = s.ingredientRepo.CountLowStock(ctx); err != nil {
		return nil, err
	}
	if stats.PendingPOs, err = s.poRepo.CountByStatus(ctx, enum.POStatusPending); err != nil {
		return nil, err
	}
	if stats.OutstandingAmount, err = s.analyticsRepo.TotalOutstanding(ctx); err != nil {
		return nil, err
	}
	if stats.StockValue, err = s.analyticsRepo.StockValue(ctx); err != nil {
		return nil, err
	}
	if stats.DailySales, err = s.analyticsRepo.DailySales(ctx, 7); err != nil {
		return nil, err
	}
	if stats.CategorySales, err = s.analyticsRepo.SalesByCategory(ctx, monthStart, now); err != nil {
		return nil, err
	}

	return stats, nil
}

// MTDCOGSReport is the month-to-date cost of goods sold report.
// COGS = opening stock value + purchases - closing stock value.
type MTDCOGSReport struct {
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	OpeningValue  decimal.Decimal `json:"opening_value"`
	Purchases     decimal.Decimal `json:"purchases"`
	ClosingValue  decimal.Decimal `json:"closing_value"`
	COGS          decimal.Decimal `json:"cogs"`
	Revenue       decimal.Decimal `json:"revenue"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// GetMTDCOGS builds the month-to-date COGS report. The opening
// valuation is not stored anywhere; it is walked backward from the
// current stock value by subtracting the period's signed ledger value.
func (s *DashboardService) GetMTDCOGS(ctx context.Context) (*MTDCOGSReport, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	closing, err := s.analyticsRepo.StockValue(ctx)
	if err != nil {
		return nil, err
	}

	movementValue, err := s.analyticsRepo.MovementValueBetween(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}
	opening := closing.Sub(movementValue)

	purchases, err := s.analyticsRepo.PurchasesValueBetween(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}

	revenue, err := s.analyticsRepo.RevenueBetween(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}

	cogs := opening.Add(purchases).Sub(closing).Round(2)
	grossProfit := revenue.Sub(cogs)

	margin := decimal.Zero
	if revenue.GreaterThan(decimal.Zero) {
		margin = grossProfit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &MTDCOGSReport{
		PeriodStart:   monthStart,
		PeriodEnd:     now,
		OpeningValue:  opening.Round(2),
		Purchases:     purchases.Round(2),
		ClosingValue:  closing.Round(2),
		COGS:          cogs,
		Revenue:       revenue.Round(2),
		GrossProfit:   grossProfit.Round(2),
		MarginPercent: margin,
	}, nil
}

// AccountsDashboard is the payables-focused view for the accounts role
type AccountsDashboard struct {
	TotalOutstanding   decimal.Decimal                  `json:"total_outstanding"`
	ExpenseOutstanding decimal.Decimal                  `json:"expense_outstanding"`
	OverduePOs         int64                            `json:"overdue_purchase_orders"`
	VendorPayables     []repository.VendorPayableResult `json:"vendor_payables"`
	RecentPayments     []entity.Payment                 `json:"recent_payments"`
	GeneratedAt        time.Time                        `json:"generated_at"`
}

// GetAccountsDashboard builds the accounts dashboard, cached briefly
// since it aggregates across every PO and payment.
func (s *DashboardService) GetAccountsDashboard(ctx context.Context) (*AccountsDashboard, error) {
	var cached AccountsDashboard
	if s.cache.GetJSON(ctx, accountsDashboardCacheKey, &cached) {
		return &cached, nil
	}

	dashboard := &AccountsDashboard{GeneratedAt: time.Now()}

	var err error
	if dashboard.TotalOutstanding, err = s.analyticsRepo.TotalOutstanding(ctx); err != nil {
		return nil, err
	}
	if dashboard.ExpenseOutstanding, err = s.analyticsRepo.ExpenseOutstanding(ctx); err != nil {
		return nil, err
	}
	if dashboard.VendorPayables, err = s.analyticsRepo.OutstandingPayables(ctx); err != nil {
		return nil, err
	}
	if dashboard.RecentPayments, err = s.paymentRepo.ListRecent(ctx, 10); err != nil {
		return nil, err
	}

	if dashboard.OverduePOs, err = s.poRepo.CountOverdue(ctx, time.Now()); err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, accountsDashboardCacheKey, dashboard, s.cacheTTL)

	return dashboard, nil
}

// InvalidateCache drops the cached dashboards. Called after bulk
// admin operations.
func (s *DashboardService) InvalidateCache(ctx context.Context) {
	s.cache.Invalidate(ctx, accountsDashboardCacheKey)
}
