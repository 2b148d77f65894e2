package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/pkg/pagination"
)

// StockMovementRepository defines the interface for the stock ledger.
// The ledger is append-only: entries are created and read, never updated.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByIngredient(ctx context.Context, ingredientID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockMovement, int64, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.StockMovement, int64, error)
}
