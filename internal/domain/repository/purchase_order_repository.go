package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/pkg/pagination"
)

// POFilterParams holds filtering parameters for purchase order queries
type POFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.POStatus
	PaymentStatus *enum.PaymentStatus
	VendorID      *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}

// PurchaseOrderRepository defines the interface for purchase order data access
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	// GetForUpdate locks the PO row for the duration of the surrounding
	// transaction. Payment validation and receiving rollups run under
	// this lock so two concurrent requests cannot both pass a snapshot
	// check and jointly overpay or over-receive.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *POFilterParams) ([]entity.PurchaseOrder, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status enum.POStatus) (int64, error)
	// CountOverdue counts POs whose expected date has passed without
	// full receipt
	CountOverdue(ctx context.Context, asOf time.Time) (int64, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]entity.PurchaseOrder, error)
}

// POItemRepository defines the interface for PO line item data access
type POItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.POItem) error
	GetByPOID(ctx context.Context, poID uuid.UUID) ([]entity.POItem, error)
	Update(ctx context.Context, item *entity.POItem) error
	DeleteByPOID(ctx context.Context, poID uuid.UUID) error
}
