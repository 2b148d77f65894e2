package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailySalesResult is one day's revenue/cost/profit aggregate
type DailySalesResult struct {
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
}

// CategorySalesResult is revenue grouped by recipe category
type CategorySalesResult struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

// VendorPayableResult is one vendor's outstanding payable position
type VendorPayableResult struct {
	VendorID    uuid.UUID       `json:"vendor_id"`
	VendorName  string          `json:"vendor_name"`
	Receivable  decimal.Decimal `json:"receivable"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	OpenPOCount int64           `json:"open_po_count"`
}

// VendorTotals is the per-vendor dashboard rollup
type VendorTotals struct {
	POCount     int64           `json:"po_count"`
	TotalValue  decimal.Decimal `json:"total_value"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// AnalyticsRepository runs the aggregation queries behind dashboards
// and the MTD COGS report.
type AnalyticsRepository interface {
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	DailySales(ctx context.Context, days int) ([]DailySalesResult, error)
	SalesByCategory(ctx context.Context, from, to time.Time) ([]CategorySalesResult, error)
	// StockValue is the current valuation: sum of current_stock x last_price
	StockValue(ctx context.Context) (decimal.Decimal, error)
	// PurchasesValueBetween sums GRN line totals received in the period
	PurchasesValueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	// MovementValueBetween sums signed ledger quantity x unit_cost in the
	// period; subtracting it from the closing valuation walks the stock
	// value backward to the period opening.
	MovementValueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	OutstandingPayables(ctx context.Context) ([]VendorPayableResult, error)
	TotalOutstanding(ctx context.Context) (decimal.Decimal, error)
	ExpenseOutstanding(ctx context.Context) (decimal.Decimal, error)
	VendorTotals(ctx context.Context, vendorID uuid.UUID) (*VendorTotals, error)
}
