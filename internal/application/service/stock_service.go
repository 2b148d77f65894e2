package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// StockService handles the stock view and manual ledger postings.
// current_stock is the running ledger balance; every change goes
// through an append-only movement.
type StockService struct {
	ingredientRepo repository.IngredientRepository
	stockRepo      repository.StockMovementRepository
	analyticsRepo  repository.AnalyticsRepository
	transactor     repository.Transactor
}

// NewStockService creates a new stock service
func NewStockService(
	ingredientRepo repository.IngredientRepository,
	stockRepo repository.StockMovementRepository,
	analyticsRepo repository.AnalyticsRepository,
	transactor repository.Transactor,
) *StockService {
	return &StockService{
		ingredientRepo: ingredientRepo,
		stockRepo:      stockRepo,
		analyticsRepo:  analyticsRepo,
		transactor:     transactor,
	}
}

// StockOverview is the stock listing with total valuation
type StockOverview struct {
	Items      *pagination.PaginatedResult[entity.Ingredient] `json:"items"`
	StockValue decimal.Decimal                                `json:"stock_value"`
	LowStock   int64                                          `json:"low_stock_count"`
}

// GetStock builds the stock listing with valuation at last purchase prices
func (s *StockService) GetStock(ctx context.Context, params *repository.IngredientFilterParams) (*StockOverview, error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	ingredients, total, err := s.ingredientRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	stockValue, err := s.analyticsRepo.StockValue(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.ingredientRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}

	return &StockOverview{
		Items:      pagination.NewPaginatedResult(ingredients, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)),
		StockValue: stockValue,
		LowStock:   lowStock,
	}, nil
}

// GetMovements retrieves the movement history for one ingredient
func (s *StockService) GetMovements(ctx context.Context, ingredientID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StockMovement], error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, apperror.NewNotFoundError("Ingredient")
	}

	params.Validate()

	movements, total, err := s.stockRepo.ListByIngredient(ctx, ingredientID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(movements, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// AdjustStockInput represents a manual ledger posting
type AdjustStockInput struct {
	IngredientID uuid.UUID
	Type         enum.MovementType
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	Notes        string
	CreatedBy    uuid.UUID
}

// AdjustStock posts a manual movement: opening balance, wastage, or a
// signed adjustment. Wastage is always outbound; opening is always
// inbound; an adjustment carries the caller's sign.
func (s *StockService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.StockMovement, error) {
	switch input.Type {
	case enum.MovementTypeOpening, enum.MovementTypeWastage, enum.MovementTypeAdjustment:
	default:
		return nil, apperror.NewBadRequestError("Movement type must be opening, wastage or adjustment")
	}
	if input.Quantity.IsZero() {
		return nil, apperror.NewBadRequestError("Quantity cannot be zero")
	}
	if input.UnitCost.IsNegative() {
		return nil, apperror.NewBadRequestError("Unit cost cannot be negative")
	}

	quantity := input.Quantity.Round(3)
	if input.Type.IsInbound() && quantity.IsNegative() {
		return nil, apperror.NewBadRequestError("Opening balance must be positive")
	}
	if input.Type == enum.MovementTypeWastage {
		// Wastage is submitted as a positive quantity and posted negative
		if quantity.IsNegative() {
			return nil, apperror.NewBadRequestError("Wastage quantity must be positive")
		}
		quantity = quantity.Neg()
	}

	var movement *entity.StockMovement
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		ingredient, err := s.ingredientRepo.GetForUpdate(ctx, input.IngredientID)
		if err != nil {
			return err
		}
		if ingredient == nil {
			return apperror.NewNotFoundError("Ingredient")
		}

		newBalance := ingredient.CurrentStock.Add(quantity)
		if newBalance.IsNegative() {
			return apperror.NewConflictError("Movement would drive stock negative")
		}

		unitCost := input.UnitCost.Round(2)
		if unitCost.IsZero() {
			unitCost = ingredient.LastPrice
		}

		movement = &entity.StockMovement{
			IngredientID: ingredient.ID,
			Type:         input.Type,
			Quantity:     quantity,
			BalanceAfter: newBalance,
			UnitCost:     unitCost,
			Notes:        input.Notes,
			CreatedByID:  &input.CreatedBy,
		}
		if err := s.stockRepo.Create(ctx, movement); err != nil {
			return err
		}

		lastPrice := ingredient.LastPrice
		if input.Type == enum.MovementTypeOpening && input.UnitCost.GreaterThan(decimal.Zero) {
			lastPrice = input.UnitCost.Round(2)
		}
		return s.ingredientRepo.UpdateStockAndPrice(ctx, ingredient.ID, newBalance, lastPrice)
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}
