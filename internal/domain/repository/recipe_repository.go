package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/pkg/pagination"
)

// RecipeFilterParams holds filtering parameters for recipe queries
type RecipeFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
}

// RecipeRepository defines the interface for recipe data access
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error)
	GetWithIngredients(ctx context.Context, id uuid.UUID) (*entity.Recipe, error)
	GetWithIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Recipe, error)
	Update(ctx context.Context, recipe *entity.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *RecipeFilterParams) ([]entity.Recipe, int64, error)
	Count(ctx context.Context) (int64, error)
}

// RecipeIngredientRepository defines the interface for recipe composition data access
type RecipeIngredientRepository interface {
	CreateBatch(ctx context.Context, items []entity.RecipeIngredient) error
	DeleteByRecipeID(ctx context.Context, recipeID uuid.UUID) error
}
