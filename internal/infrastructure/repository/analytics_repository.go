package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := dbFrom(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(total_revenue), 0)
		FROM sales
		WHERE deleted_at IS NULL
	`).Scan(&revenue).Error
	return revenue, err
}

func (r *analyticsRepository) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := dbFrom(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(total_revenue), 0)
		FROM sales
		WHERE deleted_at IS NULL AND sale_date >= ? AND sale_date < ?
	`, from, to).Scan(&revenue).Error
	return revenue, err
}

func (r *analyticsRepository) DailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	type row struct {
		Day     time.Time
		Revenue decimal.Decimal
		Cost    decimal.Decimal
		Profit  decimal.Decimal
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	var rows []row
	err := dbFrom(ctx, r.db).Raw(`
		SELECT
			sale_date as day,
			COALESCE(SUM(total_revenue), 0) as revenue,
			COALESCE(SUM(total_cost), 0) as cost,
			COALESCE(SUM(total_profit), 0) as profit
		FROM sales
		WHERE deleted_at IS NULL AND sale_date >= ?
		GROUP BY sale_date
		ORDER BY sale_date ASC
	`, start).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]row, len(rows))
	for _, r := range rows {
		byDay[r.Day.Format("2006-01-02")] = r
	}

	// Fill missing days with zeros so the chart axis is continuous
	results := make([]domainRepo.DailySalesResult, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		res := domainRepo.DailySalesResult{
			Date:    date,
			Revenue: decimal.Zero,
			Cost:    decimal.Zero,
			Profit:  decimal.Zero,
		}
		if r, ok := byDay[date.Format("2006-01-02")]; ok {
			res.Revenue = r.Revenue
			res.Cost = r.Cost
			res.Profit = r.Profit
		}
		results = append(results, res)
	}

	return results, nil
}

func (r *analyticsRepository) SalesByCategory(ctx context.Context, from, to time.Time) ([]domainRepo.CategorySalesResult, error) {
	var results []domainRepo.CategorySalesResult
	err := dbFrom(ctx, r.db).Raw(`
		SELECT
			COALESCE(NULLIF(rc.category, ''), 'Uncategorized') as category,
			COALESCE(SUM(si.revenue), 0) as revenue,
			COALESCE(SUM(si.profit), 0) as profit
		FROM sale_items si
		JOIN recipes rc ON rc.id = si.recipe_id
		JOIN sales s ON s.id = si.sale_id
		WHERE s.deleted_at IS NULL AND s.sale_date >= ? AND s.sale_date < ?
		GROUP BY COALESCE(NULLIF(rc.category, ''), 'Uncategorized')
		ORDER BY revenue DESC
	`, from, to).Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) StockValue(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := dbFrom(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(current_stock * last_price), 0)
		FROM ingredients
		WHERE deleted_at IS NULL
	`).Scan(&value).Error
	return value, err
}

func (r *analyticsRepository) PurchasesValueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := dbFrom(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(gi.line_total), 0)
		FROM grn_items gi
		JOIN grns g ON g.id = gi.grn_id
		WHERE g.deleted_at IS NULL AND g.received_date >= ? AND g.received_date < ?
	`, from, to).Scan(&value).Error
	return value, err
}

func (r *analyticsRepository) MovementValueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := dbFrom(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(quantity * unit_cost), 0)
		FROM stock_movements
		WHERE created_at >= ? AND created_at < ?
	`, from, to).Scan(&value).Error
	return value, err
}

func (r *analyticsRepository) OutstandingPayables(ctx context.Context) ([]domainRepo.VendorPayableResult, error) {
	var results []domainRepo.VendorPayableResult
	err := dbFrom(ctx, r.db).Raw(`
		SELECT
			v.id as vendor_id,
			v.name as vendor_name,
			COALESCE(SUM(CASE WHEN po.actual_receivable_amount > 0
				THEN po.actual_receivable_amount ELSE po.total_amount END), 0) as receivable,
			COALESCE(SUM(p.paid), 0) as total_paid,
			COALESCE(SUM(CASE WHEN po.actual_receivable_amount > 0
				THEN po.actual_receivable_amount ELSE po.total_amount END), 0)
				- COALESCE(SUM(p.paid), 0) as outstanding,
			COUNT(po.id) as open_po_count
		FROM purchase_orders po
		JOIN vendors v ON v.id = po.vendor_id
		LEFT JOIN (
			SELECT purchase_order_id, SUM(amount) as paid
			FROM payments
			WHERE state = 'completed' AND deleted_at IS NULL
			GROUP BY purchase_order_id
		) p ON p.purchase_order_id = po.id
		WHERE po.deleted_at IS NULL AND po.payment_status != 'paid'
		GROUP BY v.id, v.name
		HAVING COALESCE(SUM(CASE WHEN po.actual_receivable_amount > 0
			THEN po.actual_receivable_amount ELSE po.total_amount END), 0)
			- COALESCE(SUM(p.paid), 0) > 0
		ORDER BY outstanding DESC
	`).Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) TotalOutstanding(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := dbFrom(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(GREATEST(
			CASE WHEN po.actual_receivable_amount > 0
				THEN po.actual_receivable_amount ELSE po.total_amount END
			- COALESCE(p.paid, 0), 0)), 0)
		FROM purchase_orders po
		LEFT JOIN (
			SELECT purchase_order_id, SUM(amount) as paid
			FROM payments
			WHERE state = 'completed' AND deleted_at IS NULL
			GROUP BY purchase_order_id
		) p ON p.purchase_order_id = po.id
		WHERE po.deleted_at IS NULL
	`).Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) ExpenseOutstanding(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := dbFrom(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(GREATEST(e.amount + e.tax_amount - COALESCE(p.paid, 0), 0)), 0)
		FROM other_expenses e
		LEFT JOIN (
			SELECT expense_id, SUM(amount) as paid
			FROM expense_payments
			WHERE state = 'completed' AND deleted_at IS NULL
			GROUP BY expense_id
		) p ON p.expense_id = e.id
		WHERE e.deleted_at IS NULL
	`).Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) VendorTotals(ctx context.Context, vendorID uuid.UUID) (*domainRepo.VendorTotals, error) {
	var totals domainRepo.VendorTotals
	err := dbFrom(ctx, r.db).Raw(`
		SELECT
			COUNT(po.id) as po_count,
			COALESCE(SUM(CASE WHEN po.actual_receivable_amount > 0
				THEN po.actual_receivable_amount ELSE po.total_amount END), 0) as total_value,
			COALESCE(SUM(p.paid), 0) as total_paid,
			COALESCE(SUM(GREATEST(
				CASE WHEN po.actual_receivable_amount > 0
					THEN po.actual_receivable_amount ELSE po.total_amount END
				- COALESCE(p.paid, 0), 0)), 0) as outstanding
		FROM purchase_orders po
		LEFT JOIN (
			SELECT purchase_order_id, SUM(amount) as paid
			FROM payments
			WHERE state = 'completed' AND deleted_at IS NULL
			GROUP BY purchase_order_id
		) p ON p.purchase_order_id = po.id
		WHERE po.deleted_at IS NULL AND po.vendor_id = ?
	`, vendorID).Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
