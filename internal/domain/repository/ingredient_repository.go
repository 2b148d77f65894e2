package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// IngredientFilterParams holds filtering parameters for ingredient queries
type IngredientFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
}

// IngredientRepository defines the interface for ingredient data access
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Ingredient, error)
	// GetForUpdate locks the ingredient row for the duration of the
	// surrounding transaction. Ledger postings use it to keep
	// balance_after consistent under concurrency.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error)
	Update(ctx context.Context, ingredient *entity.Ingredient) error
	UpdateStockAndPrice(ctx context.Context, id uuid.UUID, newStock, lastPrice decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *IngredientFilterParams) ([]entity.Ingredient, int64, error)
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	ResetAllStock(ctx context.Context) error
}
