package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsRepo struct {
	stockValue    decimal.Decimal
	movementValue decimal.Decimal
	purchases     decimal.Decimal
	revenue       decimal.Decimal
}

func (r *fakeAnalyticsRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return r.revenue, nil
}

func (r *fakeAnalyticsRepo) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.revenue, nil
}

func (r *fakeAnalyticsRepo) DailySales(ctx context.Context, days int) ([]repository.DailySalesResult, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) SalesByCategory(ctx context.Context, from, to time.Time) ([]repository.CategorySalesResult, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) StockValue(ctx context.Context) (decimal.Decimal, error) {
	return r.stockValue, nil
}

func (r *fakeAnalyticsRepo) PurchasesValueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.purchases, nil
}

func (r *fakeAnalyticsRepo) MovementValueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.movementValue, nil
}

func (r *fakeAnalyticsRepo) OutstandingPayables(ctx context.Context) ([]repository.VendorPayableResult, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) TotalOutstanding(ctx context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeAnalyticsRepo) ExpenseOutstanding(ctx context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeAnalyticsRepo) VendorTotals(ctx context.Context, vendorID uuid.UUID) (*repository.VendorTotals, error) {
	return &repository.VendorTotals{}, nil
}

func TestGetMTDCOGS(t *testing.T) {
	// Opening 100, purchases 50, closing 30: COGS must come out 120.
	// The opening value is never stored; the service walks it back from
	// the closing valuation minus the period's signed ledger value.
	analytics := &fakeAnalyticsRepo{
		stockValue:    decimal.NewFromInt(30),
		movementValue: decimal.NewFromInt(-70),
		purchases:     decimal.NewFromInt(50),
		revenue:       decimal.NewFromInt(200),
	}
	svc := NewDashboardService(nil, nil, nil, nil, nil, nil, analytics, nil, time.Minute)

	report, err := svc.GetMTDCOGS(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "100", report.OpeningValue.String())
	assert.Equal(t, "50", report.Purchases.String())
	assert.Equal(t, "30", report.ClosingValue.String())
	assert.Equal(t, "120", report.COGS.String())
	assert.Equal(t, "80", report.GrossProfit.String())
	assert.Equal(t, "40", report.MarginPercent.String())
}

func TestGetMTDCOGSZeroRevenue(t *testing.T) {
	analytics := &fakeAnalyticsRepo{
		stockValue:    decimal.NewFromInt(30),
		movementValue: decimal.NewFromInt(-70),
		purchases:     decimal.NewFromInt(50),
	}
	svc := NewDashboardService(nil, nil, nil, nil, nil, nil, analytics, nil, time.Minute)

	report, err := svc.GetMTDCOGS(context.Background())
	require.NoError(t, err)

	assert.True(t, report.MarginPercent.IsZero())
	assert.Equal(t, "-120", report.GrossProfit.String())
}
