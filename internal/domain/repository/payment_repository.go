package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PaymentFilterParams holds filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination      *pagination.PaginationParams
	PurchaseOrderID *uuid.UUID
	VendorID        *uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
}

// PaymentRepository defines the interface for vendor payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	ListByPO(ctx context.Context, poID uuid.UUID) ([]entity.Payment, error)
	ListRecent(ctx context.Context, limit int) ([]entity.Payment, error)
	// TotalPaidForPO sums completed payments against a PO
	TotalPaidForPO(ctx context.Context, poID uuid.UUID) (decimal.Decimal, error)
}

// ExpensePaymentRepository defines the interface for expense payment data access
type ExpensePaymentRepository interface {
	Create(ctx context.Context, payment *entity.ExpensePayment) error
	ListByExpense(ctx context.Context, expenseID uuid.UUID) ([]entity.ExpensePayment, error)
	TotalPaidForExpense(ctx context.Context, expenseID uuid.UUID) (decimal.Decimal, error)
}
