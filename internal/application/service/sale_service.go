package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/mesahq/mesa-api/pkg/docnum"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleService records sales. Each line snapshots revenue, cost and
// profit at recording time and consumes recipe ingredients through
// `out` ledger postings in the same transaction.
type SaleService struct {
	saleRepo       repository.SaleRepository
	saleItemRepo   repository.SaleItemRepository
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	stockRepo      repository.StockMovementRepository
	docNumbers     *DocNumberService
	transactor     repository.Transactor
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	stockRepo repository.StockMovementRepository,
	docNumbers *DocNumberService,
	transactor repository.Transactor,
) *SaleService {
	return &SaleService{
		saleRepo:       saleRepo,
		saleItemRepo:   saleItemRepo,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		stockRepo:      stockRepo,
		docNumbers:     docNumbers,
		transactor:     transactor,
	}
}

// SaleItemInput represents one recipe line on a sale
type SaleItemInput struct {
	RecipeID  uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

// CreateSaleInput represents the record sale input
type CreateSaleInput struct {
	SaleDate   time.Time
	RecordedBy uuid.UUID
	Notes      string
	Items      []SaleItemInput
}

// CreateSale records a sale and posts ingredient consumption
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one item")
	}

	recipeIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}
		recipeIDs[i] = item.RecipeID
	}

	recipes, err := s.recipeRepo.GetWithIngredientsByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	recipeMap := make(map[uuid.UUID]*entity.Recipe, len(recipes))
	for i := range recipes {
		recipeMap[recipes[i].ID] = &recipes[i]
	}
	for _, item := range input.Items {
		if _, ok := recipeMap[item.RecipeID]; !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Recipe %s", item.RecipeID))
		}
	}

	saleDate := input.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	var sale *entity.Sale
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		saleNo, err := s.docNumbers.Next(ctx, docnum.KindSale, saleDate)
		if err != nil {
			return err
		}

		totalRevenue := decimal.Zero
		totalCost := decimal.Zero
		saleItems := make([]entity.SaleItem, 0, len(input.Items))

		// Aggregate total consumption per ingredient across all lines so
		// each ingredient is locked and posted once.
		consumed := make(map[uuid.UUID]decimal.Decimal)

		for _, item := range input.Items {
			recipe := recipeMap[item.RecipeID]

			unitPrice := recipe.SellingPrice
			if item.UnitPrice != nil {
				unitPrice = item.UnitPrice.Round(2)
			}

			qty := decimal.NewFromInt(int64(item.Quantity))
			revenue := unitPrice.Mul(qty).Round(2)
			cost := recipe.CostPerPortion().Mul(qty).Round(2)
			profit := revenue.Sub(cost)

			totalRevenue = totalRevenue.Add(revenue)
			totalCost = totalCost.Add(cost)

			saleItems = append(saleItems, entity.SaleItem{
				RecipeID:  item.RecipeID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				Revenue:   revenue,
				Cost:      cost,
				Profit:    profit,
			})

			for _, ri := range recipe.Ingredients {
				used := ri.Quantity.Mul(qty)
				consumed[ri.IngredientID] = consumed[ri.IngredientID].Add(used)
			}
		}

		sale = &entity.Sale{
			SaleNo:       saleNo,
			SaleDate:     saleDate,
			TotalRevenue: totalRevenue,
			TotalCost:    totalCost,
			TotalProfit:  totalRevenue.Sub(totalCost),
			RecordedByID: input.RecordedBy,
			Notes:        input.Notes,
		}
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		for i := range saleItems {
			saleItems[i].SaleID = sale.ID
		}
		if err := s.saleItemRepo.CreateBatch(ctx, saleItems); err != nil {
			return err
		}

		for ingredientID, quantity := range consumed {
			if quantity.LessThanOrEqual(decimal.Zero) {
				continue
			}

			ingredient, err := s.ingredientRepo.GetForUpdate(ctx, ingredientID)
			if err != nil {
				return err
			}
			if ingredient == nil {
				return apperror.NewNotFoundError(fmt.Sprintf("Ingredient %s", ingredientID))
			}

			newBalance := ingredient.CurrentStock.Sub(quantity)
			movement := &entity.StockMovement{
				IngredientID:  ingredientID,
				Type:          enum.MovementTypeOut,
				Quantity:      quantity.Neg(),
				BalanceAfter:  newBalance,
				UnitCost:      ingredient.LastPrice,
				ReferenceType: "sale",
				ReferenceID:   &sale.ID,
				CreatedByID:   &input.RecordedBy,
			}
			if err := s.stockRepo.Create(ctx, movement); err != nil {
				return err
			}
			if err := s.ingredientRepo.UpdateStockAndPrice(ctx, ingredientID, newBalance, ingredient.LastPrice); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// DeleteSale removes a sale record. Stock consumption is not reversed;
// corrections go through a manual adjustment posting.
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}

	return s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.saleItemRepo.DeleteBySaleID(ctx, id); err != nil {
			return err
		}
		return s.saleRepo.Delete(ctx, id)
	})
}

// ListSales retrieves sales with filtering and pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}
