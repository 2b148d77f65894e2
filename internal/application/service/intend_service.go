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

// IntendService handles requisitions and their conversion to purchase orders
type IntendService struct {
	intendRepo     repository.IntendRepository
	intendItemRepo repository.IntendItemRepository
	ingredientRepo repository.IngredientRepository
	vendorRepo     repository.VendorRepository
	poRepo         repository.PurchaseOrderRepository
	poItemRepo     repository.POItemRepository
	docNumbers     *DocNumberService
	transactor     repository.Transactor
}

// NewIntendService creates a new intend service
func NewIntendService(
	intendRepo repository.IntendRepository,
	intendItemRepo repository.IntendItemRepository,
	ingredientRepo repository.IngredientRepository,
	vendorRepo repository.VendorRepository,
	poRepo repository.PurchaseOrderRepository,
	poItemRepo repository.POItemRepository,
	docNumbers *DocNumberService,
	transactor repository.Transactor,
) *IntendService {
	return &IntendService{
		intendRepo:     intendRepo,
		intendItemRepo: intendItemRepo,
		ingredientRepo: ingredientRepo,
		vendorRepo:     vendorRepo,
		poRepo:         poRepo,
		poItemRepo:     poItemRepo,
		docNumbers:     docNumbers,
		transactor:     transactor,
	}
}

// IntendItemInput represents one requested ingredient line
type IntendItemInput struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
}

// CreateIntendInput represents the create intend input
type CreateIntendInput struct {
	RequestedBy uuid.UUID
	VendorID    *uuid.UUID
	Notes       string
	Draft       bool
	Items       []IntendItemInput
}

// CreateIntend creates a requisition with its item lines
func (s *IntendService) CreateIntend(ctx context.Context, input *CreateIntendInput) (*entity.Intend, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Intend must have at least one item")
	}

	if input.VendorID != nil {
		vendor, err := s.vendorRepo.GetByID(ctx, *input.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, apperror.NewNotFoundError("Vendor")
		}
	}

	ingredientIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		ingredientIDs[i] = item.IngredientID
	}

	if err := verifyIngredientsExist(ctx, s.ingredientRepo, ingredientIDs); err != nil {
		return nil, err
	}

	var intend *entity.Intend
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		intendNo, err := s.docNumbers.Next(ctx, docnum.KindIntend, time.Now())
		if err != nil {
			return err
		}

		status := enum.IntendStatusPending
		if input.Draft {
			status = enum.IntendStatusDraft
		}
		intend = &entity.Intend{
			IntendNo:    intendNo,
			Status:      status,
			VendorID:    input.VendorID,
			RequestedBy: input.RequestedBy,
			Notes:       input.Notes,
		}
		if err := s.intendRepo.Create(ctx, intend); err != nil {
			return err
		}

		items := make([]entity.IntendItem, 0, len(input.Items))
		for _, item := range input.Items {
			items = append(items, entity.IntendItem{
				IntendID:          intend.ID,
				IngredientID:      item.IngredientID,
				QuantityRequested: item.Quantity.Round(3),
			})
		}
		return s.intendItemRepo.CreateBatch(ctx, items)
	})
	if err != nil {
		return nil, err
	}

	return s.intendRepo.GetWithItems(ctx, intend.ID)
}

// GetIntend retrieves an intend with its items
func (s *IntendService) GetIntend(ctx context.Context, id uuid.UUID) (*entity.Intend, error) {
	intend, err := s.intendRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if intend == nil {
		return nil, apperror.NewNotFoundError("Intend")
	}
	return intend, nil
}

// UpdateIntendInput represents the update intend input
type UpdateIntendInput struct {
	VendorID *uuid.UUID
	Notes    *string
	Items    []IntendItemInput
}

// UpdateIntend updates an intend that has not yet been approved
func (s *IntendService) UpdateIntend(ctx context.Context, id uuid.UUID, input *UpdateIntendInput) (*entity.Intend, error) {
	intend, err := s.intendRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if intend == nil {
		return nil, apperror.NewNotFoundError("Intend")
	}
	if !intend.Status.IsEditable() {
		return nil, apperror.NewConflictError(fmt.Sprintf("Intend in status %s cannot be modified", intend.Status))
	}

	if input.VendorID != nil {
		vendor, err := s.vendorRepo.GetByID(ctx, *input.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, apperror.NewNotFoundError("Vendor")
		}
		intend.VendorID = input.VendorID
	}
	if input.Notes != nil {
		intend.Notes = *input.Notes
	}

	if len(input.Items) > 0 {
		ingredientIDs := make([]uuid.UUID, len(input.Items))
		for i, item := range input.Items {
			ingredientIDs[i] = item.IngredientID
		}
		if err := verifyIngredientsExist(ctx, s.ingredientRepo, ingredientIDs); err != nil {
			return nil, err
		}
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.intendRepo.Update(ctx, intend); err != nil {
			return err
		}

		if input.Items == nil {
			return nil
		}
		if len(input.Items) == 0 {
			return apperror.NewBadRequestError("Intend must have at least one item")
		}

		if err := s.intendItemRepo.DeleteByIntendID(ctx, id); err != nil {
			return err
		}

		items := make([]entity.IntendItem, 0, len(input.Items))
		for _, item := range input.Items {
			if item.Quantity.LessThanOrEqual(decimal.Zero) {
				return apperror.NewBadRequestError("Item quantity must be positive")
			}
			items = append(items, entity.IntendItem{
				IntendID:          id,
				IngredientID:      item.IngredientID,
				QuantityRequested: item.Quantity.Round(3),
			})
		}
		return s.intendItemRepo.CreateBatch(ctx, items)
	})
	if err != nil {
		return nil, err
	}

	return s.intendRepo.GetWithItems(ctx, id)
}

// SubmitIntend moves a pending or draft intend to submitted
func (s *IntendService) SubmitIntend(ctx context.Context, id uuid.UUID) (*entity.Intend, error) {
	return s.transition(ctx, id, enum.IntendStatusSubmitted, func(status enum.IntendStatus) bool {
		return status.IsEditable()
	})
}

// ApproveIntend moves a submitted intend to approved
func (s *IntendService) ApproveIntend(ctx context.Context, id uuid.UUID) (*entity.Intend, error) {
	return s.transition(ctx, id, enum.IntendStatusApproved, func(status enum.IntendStatus) bool {
		return status == enum.IntendStatusSubmitted
	})
}

func (s *IntendService) transition(ctx context.Context, id uuid.UUID, target enum.IntendStatus, allowed func(enum.IntendStatus) bool) (*entity.Intend, error) {
	intend, err := s.intendRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if intend == nil {
		return nil, apperror.NewNotFoundError("Intend")
	}
	if !allowed(intend.Status) {
		return nil, apperror.NewConflictError(fmt.Sprintf("Intend cannot move from %s to %s", intend.Status, target))
	}

	if err := s.intendRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	return s.intendRepo.GetWithItems(ctx, id)
}

// DeleteIntend deletes an intend that has not yet been approved
func (s *IntendService) DeleteIntend(ctx context.Context, id uuid.UUID) error {
	intend, err := s.intendRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if intend == nil {
		return apperror.NewNotFoundError("Intend")
	}
	if !intend.Status.IsEditable() {
		return apperror.NewConflictError(fmt.Sprintf("Intend in status %s cannot be deleted", intend.Status))
	}

	return s.intendRepo.Delete(ctx, id)
}

// ListIntends retrieves intends with filtering and pagination
func (s *IntendService) ListIntends(ctx context.Context, params *repository.IntendFilterParams) (*pagination.PaginatedResult[entity.Intend], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	intends, total, err := s.intendRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(intends, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// ConvertItemInput overrides the unit price for one ingredient during
// conversion; quantities come from the intend lines.
type ConvertItemInput struct {
	IngredientID uuid.UUID
	UnitPrice    decimal.Decimal
}

// ConvertToPOInput represents the convert-to-purchase-order input
type ConvertToPOInput struct {
	CreatedBy    uuid.UUID
	VendorID     *uuid.UUID
	ExpectedDate *time.Time
	Notes        string
	ItemPrices   []ConvertItemInput
}

// ConvertToPO converts an approved intend into a purchase order. Every
// intend line becomes a PO line priced from the override list or the
// ingredient's last purchase price; the intend is marked fulfilled in
// the same transaction.
func (s *IntendService) ConvertToPO(ctx context.Context, id uuid.UUID, input *ConvertToPOInput) (*entity.PurchaseOrder, error) {
	intend, err := s.intendRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if intend == nil {
		return nil, apperror.NewNotFoundError("Intend")
	}
	if intend.Status != enum.IntendStatusApproved {
		return nil, apperror.NewConflictError("Only approved intends can be converted to a purchase order")
	}
	if len(intend.Items) == 0 {
		return nil, apperror.NewConflictError("Intend has no items to convert")
	}

	vendorID := intend.VendorID
	if input.VendorID != nil {
		vendorID = input.VendorID
	}
	if vendorID == nil {
		return nil, apperror.NewBadRequestError("A vendor is required to create a purchase order")
	}
	vendor, err := s.vendorRepo.GetByID(ctx, *vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}

	priceOverrides := make(map[uuid.UUID]decimal.Decimal, len(input.ItemPrices))
	for _, p := range input.ItemPrices {
		if p.UnitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}
		priceOverrides[p.IngredientID] = p.UnitPrice
	}

	ingredientIDs := make([]uuid.UUID, len(intend.Items))
	for i, item := range intend.Items {
		ingredientIDs[i] = item.IngredientID
	}
	ingredients, err := s.ingredientRepo.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}
	lastPrices := make(map[uuid.UUID]decimal.Decimal, len(ingredients))
	for _, ing := range ingredients {
		lastPrices[ing.ID] = ing.LastPrice
	}

	var po *entity.PurchaseOrder
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		poNo, err := s.docNumbers.Next(ctx, docnum.KindPurchaseOrder, time.Now())
		if err != nil {
			return err
		}

		totalAmount := decimal.Zero
		poItems := make([]entity.POItem, 0, len(intend.Items))
		for _, item := range intend.Items {
			unitPrice, ok := priceOverrides[item.IngredientID]
			if !ok {
				unitPrice = lastPrices[item.IngredientID]
			}
			lineTotal := item.QuantityRequested.Mul(unitPrice).Round(2)
			totalAmount = totalAmount.Add(lineTotal)

			poItems = append(poItems, entity.POItem{
				IngredientID:     item.IngredientID,
				QuantityOrdered:  item.QuantityRequested,
				QuantityReceived: decimal.Zero,
				UnitPrice:        unitPrice.Round(2),
				LineTotal:        lineTotal,
			})
		}

		po = &entity.PurchaseOrder{
			PONo:            poNo,
			VendorID:        *vendorID,
			IntendID:        &intend.ID,
			CreatedByID:     input.CreatedBy,
			OrderDate:       time.Now(),
			ExpectedDate:    input.ExpectedDate,
			Status:          enum.POStatusPending,
			PaymentStatus:   enum.PaymentStatusUnpaid,
			TotalAmount:     totalAmount,
			TotalItemsCount: len(poItems),
			Notes:           input.Notes,
		}
		if err := s.poRepo.Create(ctx, po); err != nil {
			return err
		}

		for i := range poItems {
			poItems[i].PurchaseOrderID = po.ID
		}
		if err := s.poItemRepo.CreateBatch(ctx, poItems); err != nil {
			return err
		}

		return s.intendRepo.UpdateStatus(ctx, intend.ID, enum.IntendStatusFulfilled)
	})
	if err != nil {
		return nil, err
	}

	return s.poRepo.GetWithItems(ctx, po.ID)
}
