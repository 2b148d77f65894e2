package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) domainRepo.IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	return dbFrom(ctx, r.db).Create(ingredient).Error
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error) {
	var ingredient entity.Ingredient
	err := dbFrom(ctx, r.db).First(&ingredient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ingredient, err
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Ingredient, error) {
	var ingredients []entity.Ingredient
	err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error) {
	var ingredient entity.Ingredient
	err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ingredient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ingredient, err
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *entity.Ingredient) error {
	return dbFrom(ctx, r.db).Save(ingredient).Error
}

func (r *ingredientRepository) UpdateStockAndPrice(ctx context.Context, id uuid.UUID, newStock, lastPrice decimal.Decimal) error {
	return dbFrom(ctx, r.db).Model(&entity.Ingredient{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_stock": newStock,
			"last_price":    lastPrice,
		}).Error
}

func (r *ingredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.Ingredient{}, "id = ?", id).Error
}

func (r *ingredientRepository) List(ctx context.Context, params *domainRepo.IngredientFilterParams) ([]entity.Ingredient, int64, error) {
	var ingredients []entity.Ingredient
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Ingredient{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if params.LowStock {
		query = query.Where("current_stock <= min_stock")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&ingredients).Error

	return ingredients, total, err
}

func (r *ingredientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.Ingredient{}).Count(&count).Error
	return count, err
}

func (r *ingredientRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.Ingredient{}).
		Where("current_stock <= min_stock").
		Count(&count).Error
	return count, err
}

func (r *ingredientRepository) ResetAllStock(ctx context.Context) error {
	return dbFrom(ctx, r.db).Model(&entity.Ingredient{}).
		Where("1 = 1").
		Update("current_stock", decimal.Zero).Error
}
