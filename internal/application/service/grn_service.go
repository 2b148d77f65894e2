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

// GRNService handles goods receipt. A GRN posting is one transaction:
// the note and its lines, the stock ledger entries, the PO line
// received quantities and the PO rollups all commit together or not at
// all.
type GRNService struct {
	grnRepo        repository.GRNRepository
	grnItemRepo    repository.GRNItemRepository
	poRepo         repository.PurchaseOrderRepository
	poItemRepo     repository.POItemRepository
	ingredientRepo repository.IngredientRepository
	stockRepo      repository.StockMovementRepository
	docNumbers     *DocNumberService
	transactor     repository.Transactor
}

// NewGRNService creates a new GRN service
func NewGRNService(
	grnRepo repository.GRNRepository,
	grnItemRepo repository.GRNItemRepository,
	poRepo repository.PurchaseOrderRepository,
	poItemRepo repository.POItemRepository,
	ingredientRepo repository.IngredientRepository,
	stockRepo repository.StockMovementRepository,
	docNumbers *DocNumberService,
	transactor repository.Transactor,
) *GRNService {
	return &GRNService{
		grnRepo:        grnRepo,
		grnItemRepo:    grnItemRepo,
		poRepo:         poRepo,
		poItemRepo:     poItemRepo,
		ingredientRepo: ingredientRepo,
		stockRepo:      stockRepo,
		docNumbers:     docNumbers,
		transactor:     transactor,
	}
}

// GRNItemInput is one received line: how much arrived now and at what
// invoiced price.
type GRNItemInput struct {
	POItemID         uuid.UUID
	QuantityReceived decimal.Decimal
	UnitPriceActual  decimal.Decimal
}

// CreateGRNInput represents the create GRN input
type CreateGRNInput struct {
	PurchaseOrderID uuid.UUID
	ReceivedBy      uuid.UUID
	ReceivedDate    time.Time
	Notes           string
	Items           []GRNItemInput
}

// GRNLineVariance is the reconciliation view of one received line
type GRNLineVariance struct {
	POItemID         uuid.UUID       `json:"po_item_id"`
	IngredientID     uuid.UUID       `json:"ingredient_id"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	QtyVariance      decimal.Decimal `json:"qty_variance"`
	UnitPriceOrdered decimal.Decimal `json:"unit_price_ordered"`
	UnitPriceActual  decimal.Decimal `json:"unit_price_actual"`
	PriceVariance    decimal.Decimal `json:"price_variance"`
	VariancePercent  decimal.Decimal `json:"variance_percent"`
	LineTotal        decimal.Decimal `json:"line_total"`
}

// GRNResult is a posted GRN with its per-line variances and the
// updated purchase order.
type GRNResult struct {
	GRN           *entity.GRN           `json:"grn"`
	Variances     []GRNLineVariance     `json:"variances"`
	PurchaseOrder *entity.PurchaseOrder `json:"purchase_order"`
}

// CreateGRN posts a goods receipt against a purchase order
func (s *GRNService) CreateGRN(ctx context.Context, input *CreateGRNInput) (*GRNResult, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("GRN must have at least one item")
	}
	for _, item := range input.Items {
		if item.QuantityReceived.IsNegative() {
			return nil, apperror.NewBadRequestError("Received quantity cannot be negative")
		}
		if item.UnitPriceActual.IsNegative() {
			return nil, apperror.NewBadRequestError("Actual unit price cannot be negative")
		}
	}

	receivedDate := input.ReceivedDate
	if receivedDate.IsZero() {
		receivedDate = time.Now()
	}

	var result *GRNResult
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		// Lock the PO so concurrent receipts serialize on the rollups
		po, err := s.poRepo.GetForUpdate(ctx, input.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return apperror.NewNotFoundError("Purchase order")
		}
		if po.Status == enum.POStatusPending {
			return apperror.NewConflictError("Purchase order must be confirmed before receiving")
		}

		poItems, err := s.poItemRepo.GetByPOID(ctx, po.ID)
		if err != nil {
			return err
		}
		itemsByID := make(map[uuid.UUID]*entity.POItem, len(poItems))
		for i := range poItems {
			itemsByID[poItems[i].ID] = &poItems[i]
		}

		// Pre-pass: resolve lines against PO items and total the receipt
		grnTotal := decimal.Zero
		for _, item := range input.Items {
			if _, ok := itemsByID[item.POItemID]; !ok {
				return apperror.NewNotFoundError(fmt.Sprintf("PO item %s", item.POItemID))
			}
			grnTotal = grnTotal.Add(item.QuantityReceived.Round(3).Mul(item.UnitPriceActual.Round(2)).Round(2))
		}

		grnNo, err := s.docNumbers.Next(ctx, docnum.KindGRN, receivedDate)
		if err != nil {
			return err
		}

		grn := &entity.GRN{
			GRNNo:           grnNo,
			PurchaseOrderID: po.ID,
			ReceivedByID:    input.ReceivedBy,
			ReceivedDate:    receivedDate,
			TotalValue:      grnTotal,
			Notes:           input.Notes,
		}
		if err := s.grnRepo.Create(ctx, grn); err != nil {
			return err
		}
		grnItems := make([]entity.GRNItem, 0, len(input.Items))
		variances := make([]GRNLineVariance, 0, len(input.Items))

		for _, item := range input.Items {
			poItem := itemsByID[item.POItemID]

			qtyNow := item.QuantityReceived.Round(3)
			priceActual := item.UnitPriceActual.Round(2)
			lineTotal := qtyNow.Mul(priceActual).Round(2)

			if qtyNow.GreaterThan(decimal.Zero) {
				grnItems = append(grnItems, entity.GRNItem{
					GRNID:            grn.ID,
					POItemID:         poItem.ID,
					IngredientID:     poItem.IngredientID,
					QuantityReceived: qtyNow,
					UnitPriceOrdered: poItem.UnitPrice,
					UnitPriceActual:  priceActual,
					LineTotal:        lineTotal,
				})

				// Post the ledger entry under a row lock so
				// balance_after stays consistent
				ingredient, err := s.ingredientRepo.GetForUpdate(ctx, poItem.IngredientID)
				if err != nil {
					return err
				}
				if ingredient == nil {
					return apperror.NewNotFoundError(fmt.Sprintf("Ingredient %s", poItem.IngredientID))
				}

				newBalance := ingredient.CurrentStock.Add(qtyNow)
				movement := &entity.StockMovement{
					IngredientID:  ingredient.ID,
					Type:          enum.MovementTypeIn,
					Quantity:      qtyNow,
					BalanceAfter:  newBalance,
					UnitCost:      priceActual,
					ReferenceType: "grn",
					ReferenceID:   &grn.ID,
					CreatedByID:   &input.ReceivedBy,
				}
				if err := s.stockRepo.Create(ctx, movement); err != nil {
					return err
				}
				if err := s.ingredientRepo.UpdateStockAndPrice(ctx, ingredient.ID, newBalance, priceActual); err != nil {
					return err
				}

				poItem.QuantityReceived = poItem.QuantityReceived.Add(qtyNow)
				if err := s.poItemRepo.Update(ctx, poItem); err != nil {
					return err
				}
			}

			priceVariance := priceActual.Sub(poItem.UnitPrice)
			variancePercent := decimal.Zero
			if poItem.UnitPrice.GreaterThan(decimal.Zero) {
				variancePercent = priceVariance.Abs().Div(poItem.UnitPrice).Mul(decimal.NewFromInt(100)).Round(2)
			}

			variances = append(variances, GRNLineVariance{
				POItemID:         poItem.ID,
				IngredientID:     poItem.IngredientID,
				QuantityOrdered:  poItem.QuantityOrdered,
				TotalReceived:    poItem.QuantityReceived,
				QtyVariance:      poItem.QuantityReceived.Sub(poItem.QuantityOrdered),
				UnitPriceOrdered: poItem.UnitPrice,
				UnitPriceActual:  priceActual,
				PriceVariance:    priceVariance,
				VariancePercent:  variancePercent,
				LineTotal:        lineTotal,
			})
		}

		if len(grnItems) > 0 {
			if err := s.grnItemRepo.CreateBatch(ctx, grnItems); err != nil {
				return err
			}
		}

		s.recomputeRollups(po, poItems, grnTotal)
		if err := s.poRepo.Update(ctx, po); err != nil {
			return err
		}

		result = &GRNResult{
			GRN:           grn,
			Variances:     variances,
			PurchaseOrder: po,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// recomputeRollups rederives the PO's receiving rollups from its items.
// Counts, percentage, receivable and status are never edited directly.
func (s *GRNService) recomputeRollups(po *entity.PurchaseOrder, items []entity.POItem, grnValueNow decimal.Decimal) {
	fullyReceived := 0
	anyReceived := false
	for i := range items {
		if items[i].QuantityReceived.GreaterThan(decimal.Zero) {
			anyReceived = true
		}
		if items[i].IsFullyReceived() {
			fullyReceived++
		}
	}

	po.ReceivedItemsCount = fullyReceived
	po.TotalItemsCount = len(items)
	po.ActualReceivableAmount = po.ActualReceivableAmount.Add(grnValueNow)

	percentage := decimal.Zero
	if len(items) > 0 {
		percentage = decimal.NewFromInt(int64(fullyReceived)).
			Div(decimal.NewFromInt(int64(len(items)))).
			Mul(decimal.NewFromInt(100)).Round(2)
	}
	if percentage.GreaterThan(decimal.NewFromInt(100)) {
		percentage = decimal.NewFromInt(100)
	}
	po.ReceivedPercentage = percentage

	switch {
	case len(items) > 0 && fullyReceived == len(items):
		po.Status = enum.POStatusReceived
	case anyReceived:
		po.Status = enum.POStatusPartiallyReceived
	}
}

// GetGRN retrieves a GRN with its items
func (s *GRNService) GetGRN(ctx context.Context, id uuid.UUID) (*entity.GRN, error) {
	grn, err := s.grnRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if grn == nil {
		return nil, apperror.NewNotFoundError("GRN")
	}
	return grn, nil
}

// ListGRNs retrieves GRNs with pagination
func (s *GRNService) ListGRNs(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.GRN], error) {
	params.Validate()

	grns, total, err := s.grnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(grns, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ListGRNsByPO retrieves all GRNs posted against a purchase order
func (s *GRNService) ListGRNsByPO(ctx context.Context, poID uuid.UUID) ([]entity.GRN, error) {
	po, err := s.poRepo.GetByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	return s.grnRepo.ListByPO(ctx, poID)
}
