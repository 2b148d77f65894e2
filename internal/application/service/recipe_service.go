package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// RecipeService handles recipes and their derived costing
type RecipeService struct {
	recipeRepo           repository.RecipeRepository
	recipeIngredientRepo repository.RecipeIngredientRepository
	ingredientRepo       repository.IngredientRepository
	transactor           repository.Transactor
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	recipeIngredientRepo repository.RecipeIngredientRepository,
	ingredientRepo repository.IngredientRepository,
	transactor repository.Transactor,
) *RecipeService {
	return &RecipeService{
		recipeRepo:           recipeRepo,
		recipeIngredientRepo: recipeIngredientRepo,
		ingredientRepo:       ingredientRepo,
		transactor:           transactor,
	}
}

// RecipeIngredientInput represents one ingredient line in a recipe
type RecipeIngredientInput struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
}

// CreateRecipeInput represents the create recipe input
type CreateRecipeInput struct {
	Name         string
	Category     string
	SellingPrice decimal.Decimal
	Ingredients  []RecipeIngredientInput
}

// RecipeCosting is a recipe with its derived cost figures. Cost is
// computed from current ingredient prices at read time, never stored.
type RecipeCosting struct {
	Recipe         *entity.Recipe  `json:"recipe"`
	CostPerPortion decimal.Decimal `json:"cost_per_portion"`
	Margin         decimal.Decimal `json:"margin"`
	MarginPercent  decimal.Decimal `json:"margin_percent"`
}

func buildCosting(recipe *entity.Recipe) *RecipeCosting {
	cost := recipe.CostPerPortion()
	margin := recipe.SellingPrice.Sub(cost)

	marginPercent := decimal.Zero
	if recipe.SellingPrice.GreaterThan(decimal.Zero) {
		marginPercent = margin.Div(recipe.SellingPrice).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &RecipeCosting{
		Recipe:         recipe,
		CostPerPortion: cost,
		Margin:         margin,
		MarginPercent:  marginPercent,
	}
}

// CreateRecipe creates a recipe with its ingredient lines
func (s *RecipeService) CreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeCosting, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Recipe name is required")
	}
	if input.SellingPrice.IsNegative() {
		return nil, apperror.NewBadRequestError("Selling price cannot be negative")
	}
	if len(input.Ingredients) == 0 {
		return nil, apperror.NewBadRequestError("Recipe must have at least one ingredient")
	}

	ingredientIDs := make([]uuid.UUID, len(input.Ingredients))
	for i, item := range input.Ingredients {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, apperror.NewBadRequestError("Ingredient quantity must be positive")
		}
		ingredientIDs[i] = item.IngredientID
	}

	if err := verifyIngredientsExist(ctx, s.ingredientRepo, ingredientIDs); err != nil {
		return nil, err
	}

	recipe := &entity.Recipe{
		Name:         input.Name,
		Category:     input.Category,
		SellingPrice: input.SellingPrice.Round(2),
		IsActive:     true,
	}

	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.recipeRepo.Create(ctx, recipe); err != nil {
			return err
		}

		lines := make([]entity.RecipeIngredient, 0, len(input.Ingredients))
		for _, item := range input.Ingredients {
			lines = append(lines, entity.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: item.IngredientID,
				Quantity:     item.Quantity.Round(3),
			})
		}
		return s.recipeIngredientRepo.CreateBatch(ctx, lines)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// GetRecipe retrieves a recipe with its costing
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*RecipeCosting, error) {
	recipe, err := s.recipeRepo.GetWithIngredients(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperror.NewNotFoundError("Recipe")
	}

	return buildCosting(recipe), nil
}

// UpdateRecipeInput represents the update recipe input
type UpdateRecipeInput struct {
	Name         *string
	Category     *string
	SellingPrice *decimal.Decimal
	IsActive     *bool
	Ingredients  []RecipeIngredientInput
}

// UpdateRecipe updates a recipe and optionally replaces its ingredient lines
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, input *UpdateRecipeInput) (*RecipeCosting, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperror.NewNotFoundError("Recipe")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Recipe name cannot be empty")
		}
		recipe.Name = *input.Name
	}
	if input.Category != nil {
		recipe.Category = *input.Category
	}
	if input.SellingPrice != nil {
		if input.SellingPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Selling price cannot be negative")
		}
		recipe.SellingPrice = input.SellingPrice.Round(2)
	}
	if input.IsActive != nil {
		recipe.IsActive = *input.IsActive
	}

	if len(input.Ingredients) > 0 {
		ingredientIDs := make([]uuid.UUID, len(input.Ingredients))
		for i, item := range input.Ingredients {
			ingredientIDs[i] = item.IngredientID
		}
		if err := verifyIngredientsExist(ctx, s.ingredientRepo, ingredientIDs); err != nil {
			return nil, err
		}
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.recipeRepo.Update(ctx, recipe); err != nil {
			return err
		}

		if input.Ingredients == nil {
			return nil
		}
		if len(input.Ingredients) == 0 {
			return apperror.NewBadRequestError("Recipe must have at least one ingredient")
		}

		if err := s.recipeIngredientRepo.DeleteByRecipeID(ctx, id); err != nil {
			return err
		}

		lines := make([]entity.RecipeIngredient, 0, len(input.Ingredients))
		for _, item := range input.Ingredients {
			if item.Quantity.LessThanOrEqual(decimal.Zero) {
				return apperror.NewBadRequestError("Ingredient quantity must be positive")
			}
			lines = append(lines, entity.RecipeIngredient{
				RecipeID:     id,
				IngredientID: item.IngredientID,
				Quantity:     item.Quantity.Round(3),
			})
		}
		return s.recipeIngredientRepo.CreateBatch(ctx, lines)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe soft-deletes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return apperror.NewNotFoundError("Recipe")
	}

	return s.recipeRepo.Delete(ctx, id)
}

// ListRecipes retrieves recipes with costing, filtering and pagination
func (s *RecipeService) ListRecipes(ctx context.Context, params *repository.RecipeFilterParams) (*pagination.PaginatedResult[RecipeCosting], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	recipes, total, err := s.recipeRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	costings := make([]RecipeCosting, 0, len(recipes))
	for i := range recipes {
		costings = append(costings, *buildCosting(&recipes[i]))
	}

	return pagination.NewPaginatedResult(costings, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}
