package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// IngredientService handles ingredient master data
type IngredientService struct {
	ingredientRepo repository.IngredientRepository
}

// NewIngredientService creates a new ingredient service
func NewIngredientService(ingredientRepo repository.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

// CreateIngredientInput represents the create ingredient input
type CreateIngredientInput struct {
	Name      string
	Unit      string
	MinStock  decimal.Decimal
	LastPrice decimal.Decimal
}

// CreateIngredient creates a new ingredient. Stock starts at zero;
// opening balances are posted through the stock ledger.
func (s *IngredientService) CreateIngredient(ctx context.Context, input *CreateIngredientInput) (*entity.Ingredient, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Ingredient name is required")
	}
	if input.Unit == "" {
		return nil, apperror.NewBadRequestError("Unit is required")
	}
	if input.MinStock.IsNegative() || input.LastPrice.IsNegative() {
		return nil, apperror.NewBadRequestError("Min stock and price cannot be negative")
	}

	ingredient := &entity.Ingredient{
		Name:         input.Name,
		Unit:         input.Unit,
		CurrentStock: decimal.Zero,
		MinStock:     input.MinStock.Round(3),
		LastPrice:    input.LastPrice.Round(2),
	}

	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		return nil, err
	}

	return ingredient, nil
}

// GetIngredient retrieves an ingredient by ID
func (s *IngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*entity.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, apperror.NewNotFoundError("Ingredient")
	}
	return ingredient, nil
}

// UpdateIngredientInput represents the update ingredient input
type UpdateIngredientInput struct {
	Name     *string
	Unit     *string
	MinStock *decimal.Decimal
}

// UpdateIngredient updates ingredient master fields. CurrentStock and
// LastPrice are not editable here; they change only through goods
// receipts and ledger postings.
func (s *IngredientService) UpdateIngredient(ctx context.Context, id uuid.UUID, input *UpdateIngredientInput) (*entity.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, apperror.NewNotFoundError("Ingredient")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Ingredient name cannot be empty")
		}
		ingredient.Name = *input.Name
	}
	if input.Unit != nil {
		ingredient.Unit = *input.Unit
	}
	if input.MinStock != nil {
		if input.MinStock.IsNegative() {
			return nil, apperror.NewBadRequestError("Min stock cannot be negative")
		}
		ingredient.MinStock = input.MinStock.Round(3)
	}

	if err := s.ingredientRepo.Update(ctx, ingredient); err != nil {
		return nil, err
	}

	return ingredient, nil
}

// DeleteIngredient soft-deletes an ingredient
func (s *IngredientService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ingredient == nil {
		return apperror.NewNotFoundError("Ingredient")
	}

	return s.ingredientRepo.Delete(ctx, id)
}

// ListIngredients retrieves ingredients with filtering and pagination
func (s *IngredientService) ListIngredients(ctx context.Context, params *repository.IngredientFilterParams) (*pagination.PaginatedResult[entity.Ingredient], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	ingredients, total, err := s.ingredientRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(ingredients, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// verifyIngredientsExist resolves ids against the ingredient master and
// fails with a not-found error naming the first unknown one. Shared by
// the services that accept ingredient line items.
func verifyIngredientsExist(ctx context.Context, repo repository.IngredientRepository, ids []uuid.UUID) error {
	ingredients, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]bool, len(ingredients))
	for _, ing := range ingredients {
		known[ing.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return apperror.NewNotFoundError(fmt.Sprintf("Ingredient %s", id))
		}
	}
	return nil
}
