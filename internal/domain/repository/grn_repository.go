package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// GRNRepository defines the interface for goods-received-note data access
type GRNRepository interface {
	Create(ctx context.Context, grn *entity.GRN) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.GRN, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.GRN, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.GRN, int64, error)
	ListByPO(ctx context.Context, poID uuid.UUID) ([]entity.GRN, error)
	// TotalReceivedValue sums the value of all GRN lines posted against
	// a PO; payments are sanity-checked against it.
	TotalReceivedValue(ctx context.Context, poID uuid.UUID) (decimal.Decimal, error)
}

// GRNItemRepository defines the interface for GRN line item data access
type GRNItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.GRNItem) error
	GetByGRNID(ctx context.Context, grnID uuid.UUID) ([]entity.GRNItem, error)
}
