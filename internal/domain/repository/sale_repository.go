package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/pkg/pagination"
)

// SaleFilterParams holds filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  *time.Time
	EndDate    *time.Time
}

// SaleRepository defines the interface for sale data access
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	Count(ctx context.Context) (int64, error)
}

// SaleItemRepository defines the interface for sale line item data access
type SaleItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.SaleItem) error
	DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error
}

// ExpenseFilterParams holds filtering parameters for expense queries
type ExpenseFilterParams struct {
	Pagination    *pagination.PaginationParams
	Category      string
	PaymentStatus *string
	StartDate     *time.Time
	EndDate       *time.Time
}

// ExpenseRepository defines the interface for other-expense data access
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.OtherExpense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OtherExpense, error)
	// GetForUpdate locks the expense row; the payment ceiling check and
	// the payment insert run under it as one unit.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.OtherExpense, error)
	Update(ctx context.Context, expense *entity.OtherExpense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ExpenseFilterParams) ([]entity.OtherExpense, int64, error)
}
