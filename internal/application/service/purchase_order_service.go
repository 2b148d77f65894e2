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

// PurchaseOrderService handles purchase orders
type PurchaseOrderService struct {
	poRepo         repository.PurchaseOrderRepository
	poItemRepo     repository.POItemRepository
	vendorRepo     repository.VendorRepository
	ingredientRepo repository.IngredientRepository
	grnRepo        repository.GRNRepository
	paymentRepo    repository.PaymentRepository
	docNumbers     *DocNumberService
	transactor     repository.Transactor
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	poRepo repository.PurchaseOrderRepository,
	poItemRepo repository.POItemRepository,
	vendorRepo repository.VendorRepository,
	ingredientRepo repository.IngredientRepository,
	grnRepo repository.GRNRepository,
	paymentRepo repository.PaymentRepository,
	docNumbers *DocNumberService,
	transactor repository.Transactor,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		poRepo:         poRepo,
		poItemRepo:     poItemRepo,
		vendorRepo:     vendorRepo,
		ingredientRepo: ingredientRepo,
		grnRepo:        grnRepo,
		paymentRepo:    paymentRepo,
		docNumbers:     docNumbers,
		transactor:     transactor,
	}
}

// POItemInput represents one ordered line
type POItemInput struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
}

// CreatePOInput represents the create purchase order input
type CreatePOInput struct {
	CreatedBy    uuid.UUID
	VendorID     uuid.UUID
	OrderDate    time.Time
	ExpectedDate *time.Time
	Notes        string
	Items        []POItemInput
}

// CreatePO creates a purchase order directly, without an intend
func (s *PurchaseOrderService) CreatePO(ctx context.Context, input *CreatePOInput) (*entity.PurchaseOrder, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Purchase order must have at least one item")
	}

	vendor, err := s.vendorRepo.GetByID(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}

	ingredientIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}
		ingredientIDs[i] = item.IngredientID
	}

	ingredients, err := s.ingredientRepo.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]bool, len(ingredients))
	for _, ing := range ingredients {
		known[ing.ID] = true
	}
	for _, item := range input.Items {
		if !known[item.IngredientID] {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Ingredient %s", item.IngredientID))
		}
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	var po *entity.PurchaseOrder
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		poNo, err := s.docNumbers.Next(ctx, docnum.KindPurchaseOrder, time.Now())
		if err != nil {
			return err
		}

		totalAmount := decimal.Zero
		poItems := make([]entity.POItem, 0, len(input.Items))
		for _, item := range input.Items {
			lineTotal := item.Quantity.Mul(item.UnitPrice).Round(2)
			totalAmount = totalAmount.Add(lineTotal)

			poItems = append(poItems, entity.POItem{
				IngredientID:     item.IngredientID,
				QuantityOrdered:  item.Quantity.Round(3),
				QuantityReceived: decimal.Zero,
				UnitPrice:        item.UnitPrice.Round(2),
				LineTotal:        lineTotal,
			})
		}

		po = &entity.PurchaseOrder{
			PONo:            poNo,
			VendorID:        input.VendorID,
			CreatedByID:     input.CreatedBy,
			OrderDate:       orderDate,
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
		return s.poItemRepo.CreateBatch(ctx, poItems)
	})
	if err != nil {
		return nil, err
	}

	return s.poRepo.GetWithItems(ctx, po.ID)
}

// PODetail is a purchase order with its receiving and payment context
type PODetail struct {
	PurchaseOrder *entity.PurchaseOrder `json:"purchase_order"`
	TotalPaid     decimal.Decimal       `json:"total_paid"`
	Outstanding   decimal.Decimal       `json:"outstanding"`
	GRNs          []entity.GRN          `json:"grns"`
	Payments      []entity.Payment      `json:"payments"`
}

// GetPO retrieves a purchase order with its GRNs and payments
func (s *PurchaseOrderService) GetPO(ctx context.Context, id uuid.UUID) (*PODetail, error) {
	po, err := s.poRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	totalPaid, err := s.paymentRepo.TotalPaidForPO(ctx, id)
	if err != nil {
		return nil, err
	}

	grns, err := s.grnRepo.ListByPO(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByPO(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PODetail{
		PurchaseOrder: po,
		TotalPaid:     totalPaid,
		Outstanding:   po.ReceivableAmount().Sub(totalPaid),
		GRNs:          grns,
		Payments:      payments,
	}, nil
}

// ConfirmPO moves a pending purchase order to confirmed
func (s *PurchaseOrderService) ConfirmPO(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if po.Status != enum.POStatusPending {
		return nil, apperror.NewConflictError(fmt.Sprintf("Purchase order in status %s cannot be confirmed", po.Status))
	}

	po.Status = enum.POStatusConfirmed
	if err := s.poRepo.Update(ctx, po); err != nil {
		return nil, err
	}

	return s.poRepo.GetWithItems(ctx, id)
}

// DeletePO deletes a purchase order that has no receipts or payments.
// Anything past pending is history and stays.
func (s *PurchaseOrderService) DeletePO(ctx context.Context, id uuid.UUID) error {
	po, err := s.poRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if po == nil {
		return apperror.NewNotFoundError("Purchase order")
	}
	if po.Status != enum.POStatusPending {
		return apperror.NewConflictError("Only pending purchase orders can be deleted")
	}

	totalPaid, err := s.paymentRepo.TotalPaidForPO(ctx, id)
	if err != nil {
		return err
	}
	if totalPaid.GreaterThan(decimal.Zero) {
		return apperror.NewConflictError("Purchase order has payments and cannot be deleted")
	}

	return s.poRepo.Delete(ctx, id)
}

// ListPOs retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) ListPOs(ctx context.Context, params *repository.POFilterParams) (*pagination.PaginatedResult[entity.PurchaseOrder], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	pos, total, err := s.poRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(pos, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}
