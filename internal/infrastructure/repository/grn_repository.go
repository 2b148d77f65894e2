package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type grnRepository struct {
	db *gorm.DB
}

// NewGRNRepository creates a new GRN repository
func NewGRNRepository(db *gorm.DB) domainRepo.GRNRepository {
	return &grnRepository{db: db}
}

func (r *grnRepository) Create(ctx context.Context, grn *entity.GRN) error {
	return dbFrom(ctx, r.db).Create(grn).Error
}

func (r *grnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.GRN, error) {
	var grn entity.GRN
	err := dbFrom(ctx, r.db).First(&grn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &grn, err
}

func (r *grnRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.GRN, error) {
	var grn entity.GRN
	err := dbFrom(ctx, r.db).
		Preload("PurchaseOrder.Vendor").
		Preload("ReceivedBy").
		Preload("Items.Ingredient").
		First(&grn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &grn, err
}

func (r *grnRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.GRN, int64, error) {
	var grns []entity.GRN
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.GRN{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("PurchaseOrder.Vendor").
		Order("created_at DESC").
		Find(&grns).Error

	return grns, total, err
}

func (r *grnRepository) ListByPO(ctx context.Context, poID uuid.UUID) ([]entity.GRN, error) {
	var grns []entity.GRN
	err := dbFrom(ctx, r.db).
		Preload("Items.Ingredient").
		Where("purchase_order_id = ?", poID).
		Order("received_date ASC").
		Find(&grns).Error
	return grns, err
}

func (r *grnRepository) TotalReceivedValue(ctx context.Context, poID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := dbFrom(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(gi.line_total), 0)
		FROM grn_items gi
		JOIN grns g ON g.id = gi.grn_id
		WHERE g.purchase_order_id = ? AND g.deleted_at IS NULL
	`, poID).Scan(&total).Error
	return total, err
}

type grnItemRepository struct {
	db *gorm.DB
}

// NewGRNItemRepository creates a new GRN item repository
func NewGRNItemRepository(db *gorm.DB) domainRepo.GRNItemRepository {
	return &grnItemRepository{db: db}
}

func (r *grnItemRepository) CreateBatch(ctx context.Context, items []entity.GRNItem) error {
	return dbFrom(ctx, r.db).Create(&items).Error
}

func (r *grnItemRepository) GetByGRNID(ctx context.Context, grnID uuid.UUID) ([]entity.GRNItem, error) {
	var items []entity.GRNItem
	err := dbFrom(ctx, r.db).
		Preload("Ingredient").
		Where("grn_id = ?", grnID).
		Find(&items).Error
	return items, err
}
