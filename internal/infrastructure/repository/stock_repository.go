package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"gorm.io/gorm"
)

type stockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new stock movement repository
func NewStockMovementRepository(db *gorm.DB) domainRepo.StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) Create(ctx context.Context, movement *entity.StockMovement) error {
	return dbFrom(ctx, r.db).Create(movement).Error
}

func (r *stockMovementRepository) ListByIngredient(ctx context.Context, ingredientID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockMovement, int64, error) {
	var movements []entity.StockMovement
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.StockMovement{}).
		Where("ingredient_id = ?", ingredientID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&movements).Error

	return movements, total, err
}

func (r *stockMovementRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.StockMovement, int64, error) {
	var movements []entity.StockMovement
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.StockMovement{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Ingredient").
		Order("created_at DESC").
		Find(&movements).Error

	return movements, total, err
}
