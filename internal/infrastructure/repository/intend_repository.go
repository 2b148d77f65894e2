package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"gorm.io/gorm"
)

type intendRepository struct {
	db *gorm.DB
}

// NewIntendRepository creates a new intend repository
func NewIntendRepository(db *gorm.DB) domainRepo.IntendRepository {
	return &intendRepository{db: db}
}

func (r *intendRepository) Create(ctx context.Context, intend *entity.Intend) error {
	return dbFrom(ctx, r.db).Create(intend).Error
}

func (r *intendRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Intend, error) {
	var intend entity.Intend
	err := dbFrom(ctx, r.db).
		Preload("Vendor").
		First(&intend, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &intend, err
}

func (r *intendRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Intend, error) {
	var intend entity.Intend
	err := dbFrom(ctx, r.db).
		Preload("Vendor").
		Preload("Requester").
		Preload("Items.Ingredient").
		First(&intend, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &intend, err
}

func (r *intendRepository) Update(ctx context.Context, intend *entity.Intend) error {
	return dbFrom(ctx, r.db).Save(intend).Error
}

func (r *intendRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.IntendStatus) error {
	return dbFrom(ctx, r.db).Model(&entity.Intend{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *intendRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.Intend{}, "id = ?", id).Error
}

func (r *intendRepository) List(ctx context.Context, params *domainRepo.IntendFilterParams) ([]entity.Intend, int64, error) {
	var intends []entity.Intend
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Intend{})

	if params.Search != "" {
		query = query.Where("intend_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Vendor").
		Order("created_at DESC").
		Find(&intends).Error

	return intends, total, err
}

type intendItemRepository struct {
	db *gorm.DB
}

// NewIntendItemRepository creates a new intend item repository
func NewIntendItemRepository(db *gorm.DB) domainRepo.IntendItemRepository {
	return &intendItemRepository{db: db}
}

func (r *intendItemRepository) CreateBatch(ctx context.Context, items []entity.IntendItem) error {
	return dbFrom(ctx, r.db).Create(&items).Error
}

func (r *intendItemRepository) GetByIntendID(ctx context.Context, intendID uuid.UUID) ([]entity.IntendItem, error) {
	var items []entity.IntendItem
	err := dbFrom(ctx, r.db).
		Preload("Ingredient").
		Where("intend_id = ?", intendID).
		Find(&items).Error
	return items, err
}

func (r *intendItemRepository) DeleteByIntendID(ctx context.Context, intendID uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.IntendItem{}, "intend_id = ?", intendID).Error
}
