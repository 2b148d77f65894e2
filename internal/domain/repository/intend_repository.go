package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/pkg/pagination"
)

// IntendFilterParams holds filtering parameters for intend queries
type IntendFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.IntendStatus
	VendorID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// IntendRepository defines the interface for intend data access
type IntendRepository interface {
	Create(ctx context.Context, intend *entity.Intend) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Intend, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Intend, error)
	Update(ctx context.Context, intend *entity.Intend) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.IntendStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *IntendFilterParams) ([]entity.Intend, int64, error)
}

// IntendItemRepository defines the interface for intend item data access
type IntendItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.IntendItem) error
	GetByIntendID(ctx context.Context, intendID uuid.UUID) ([]entity.IntendItem, error)
	DeleteByIntendID(ctx context.Context, intendID uuid.UUID) error
}
