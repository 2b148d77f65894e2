package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type purchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *gorm.DB) domainRepo.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return dbFrom(ctx, r.db).Create(po).Error
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := dbFrom(ctx, r.db).
		Preload("Vendor").
		First(&po, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &po, err
}

func (r *purchaseOrderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := dbFrom(ctx, r.db).
		Preload("Vendor").
		Preload("CreatedBy").
		Preload("Intend").
		Preload("Items.Ingredient").
		First(&po, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &po, err
}

func (r *purchaseOrderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&po, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &po, err
}

func (r *purchaseOrderRepository) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	return dbFrom(ctx, r.db).Save(po).Error
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.PurchaseOrder{}, "id = ?", id).Error
}

func (r *purchaseOrderRepository) List(ctx context.Context, params *domainRepo.POFilterParams) ([]entity.PurchaseOrder, int64, error) {
	var orders []entity.PurchaseOrder
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.PurchaseOrder{})

	if params.Search != "" {
		query = query.Where("po_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}

	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}

	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Vendor").
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *purchaseOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.PurchaseOrder{}).Count(&count).Error
	return count, err
}

func (r *purchaseOrderRepository) CountByStatus(ctx context.Context, status enum.POStatus) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.PurchaseOrder{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *purchaseOrderRepository) CountOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.PurchaseOrder{}).
		Where("expected_date IS NOT NULL AND expected_date < ?", asOf).
		Where("status NOT IN ?", []enum.POStatus{enum.POStatusReceived}).
		Count(&count).Error
	return count, err
}

func (r *purchaseOrderRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]entity.PurchaseOrder, error) {
	var orders []entity.PurchaseOrder
	err := dbFrom(ctx, r.db).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

type poItemRepository struct {
	db *gorm.DB
}

// NewPOItemRepository creates a new PO item repository
func NewPOItemRepository(db *gorm.DB) domainRepo.POItemRepository {
	return &poItemRepository{db: db}
}

func (r *poItemRepository) CreateBatch(ctx context.Context, items []entity.POItem) error {
	return dbFrom(ctx, r.db).Create(&items).Error
}

func (r *poItemRepository) GetByPOID(ctx context.Context, poID uuid.UUID) ([]entity.POItem, error) {
	var items []entity.POItem
	err := dbFrom(ctx, r.db).
		Preload("Ingredient").
		Where("purchase_order_id = ?", poID).
		Find(&items).Error
	return items, err
}

func (r *poItemRepository) Update(ctx context.Context, item *entity.POItem) error {
	return dbFrom(ctx, r.db).Save(item).Error
}

func (r *poItemRepository) DeleteByPOID(ctx context.Context, poID uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.POItem{}, "purchase_order_id = ?", poID).Error
}
