package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return dbFrom(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := dbFrom(ctx, r.db).
		Preload("PurchaseOrder.Vendor").
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Payment{})

	if params.PurchaseOrderID != nil {
		query = query.Where("purchase_order_id = ?", *params.PurchaseOrderID)
	}

	if params.VendorID != nil {
		query = query.Where(
			"purchase_order_id IN (SELECT id FROM purchase_orders WHERE vendor_id = ?)",
			*params.VendorID,
		)
	}

	if params.StartDate != nil {
		query = query.Where("payment_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("payment_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("PurchaseOrder.Vendor").
		Order("created_at DESC").
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) ListByPO(ctx context.Context, poID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFrom(ctx, r.db).
		Where("purchase_order_id = ?", poID).
		Order("payment_date ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListRecent(ctx context.Context, limit int) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFrom(ctx, r.db).
		Preload("PurchaseOrder.Vendor").
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) TotalPaidForPO(ctx context.Context, poID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := dbFrom(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE purchase_order_id = ? AND state = ? AND deleted_at IS NULL
	`, poID, entity.PaymentStateCompleted).Scan(&total).Error
	return total, err
}

type expensePaymentRepository struct {
	db *gorm.DB
}

// NewExpensePaymentRepository creates a new expense payment repository
func NewExpensePaymentRepository(db *gorm.DB) domainRepo.ExpensePaymentRepository {
	return &expensePaymentRepository{db: db}
}

func (r *expensePaymentRepository) Create(ctx context.Context, payment *entity.ExpensePayment) error {
	return dbFrom(ctx, r.db).Create(payment).Error
}

func (r *expensePaymentRepository) ListByExpense(ctx context.Context, expenseID uuid.UUID) ([]entity.ExpensePayment, error) {
	var payments []entity.ExpensePayment
	err := dbFrom(ctx, r.db).
		Where("expense_id = ?", expenseID).
		Order("payment_date ASC").
		Find(&payments).Error
	return payments, err
}

func (r *expensePaymentRepository) TotalPaidForExpense(ctx context.Context, expenseID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := dbFrom(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM expense_payments
		WHERE expense_id = ? AND state = ? AND deleted_at IS NULL
	`, expenseID, entity.PaymentStateCompleted).Scan(&total).Error
	return total, err
}
