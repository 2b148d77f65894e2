package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"gorm.io/gorm"
)

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) domainRepo.RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	return dbFrom(ctx, r.db).Create(recipe).Error
}

func (r *recipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := dbFrom(ctx, r.db).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &recipe, err
}

func (r *recipeRepository) GetWithIngredients(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := dbFrom(ctx, r.db).
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &recipe, err
}

func (r *recipeRepository) GetWithIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Recipe, error) {
	var recipes []entity.Recipe
	err := dbFrom(ctx, r.db).
		Preload("Ingredients.Ingredient").
		Where("id IN ?", ids).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	return dbFrom(ctx, r.db).Save(recipe).Error
}

func (r *recipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.Recipe{}, "id = ?", id).Error
}

func (r *recipeRepository) List(ctx context.Context, params *domainRepo.RecipeFilterParams) ([]entity.Recipe, int64, error) {
	var recipes []entity.Recipe
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Recipe{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Ingredients.Ingredient").
		Order("name ASC").
		Find(&recipes).Error

	return recipes, total, err
}

func (r *recipeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.Recipe{}).Count(&count).Error
	return count, err
}

type recipeIngredientRepository struct {
	db *gorm.DB
}

// NewRecipeIngredientRepository creates a new recipe ingredient repository
func NewRecipeIngredientRepository(db *gorm.DB) domainRepo.RecipeIngredientRepository {
	return &recipeIngredientRepository{db: db}
}

func (r *recipeIngredientRepository) CreateBatch(ctx context.Context, items []entity.RecipeIngredient) error {
	return dbFrom(ctx, r.db).Create(&items).Error
}

func (r *recipeIngredientRepository) DeleteByRecipeID(ctx context.Context, recipeID uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.RecipeIngredient{}, "recipe_id = ?", recipeID).Error
}
