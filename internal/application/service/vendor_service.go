package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/mesahq/mesa-api/pkg/pagination"
)

// VendorService handles vendor master data and the per-vendor dashboard
type VendorService struct {
	vendorRepo    repository.VendorRepository
	poRepo        repository.PurchaseOrderRepository
	paymentRepo   repository.PaymentRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewVendorService creates a new vendor service
func NewVendorService(
	vendorRepo repository.VendorRepository,
	poRepo repository.PurchaseOrderRepository,
	paymentRepo repository.PaymentRepository,
	analyticsRepo repository.AnalyticsRepository,
) *VendorService {
	return &VendorService{
		vendorRepo:    vendorRepo,
		poRepo:        poRepo,
		paymentRepo:   paymentRepo,
		analyticsRepo: analyticsRepo,
	}
}

// CreateVendorInput represents the create vendor input
type CreateVendorInput struct {
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	GSTNumber     string
}

// CreateVendor creates a new vendor
func (s *VendorService) CreateVendor(ctx context.Context, input *CreateVendorInput) (*entity.Vendor, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Vendor name is required")
	}

	vendor := &entity.Vendor{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		GSTNumber:     input.GSTNumber,
		IsActive:      true,
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

// GetVendor retrieves a vendor by ID
func (s *VendorService) GetVendor(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}
	return vendor, nil
}

// UpdateVendorInput represents the update vendor input
type UpdateVendorInput struct {
	Name          *string
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
	GSTNumber     *string
	IsActive      *bool
}

// UpdateVendor updates vendor master fields
func (s *VendorService) UpdateVendor(ctx context.Context, id uuid.UUID, input *UpdateVendorInput) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Vendor name cannot be empty")
		}
		vendor.Name = *input.Name
	}
	if input.ContactPerson != nil {
		vendor.ContactPerson = *input.ContactPerson
	}
	if input.Phone != nil {
		vendor.Phone = *input.Phone
	}
	if input.Email != nil {
		vendor.Email = *input.Email
	}
	if input.Address != nil {
		vendor.Address = *input.Address
	}
	if input.GSTNumber != nil {
		vendor.GSTNumber = *input.GSTNumber
	}
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

// DeleteVendor soft-deletes a vendor
func (s *VendorService) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vendor == nil {
		return apperror.NewNotFoundError("Vendor")
	}

	return s.vendorRepo.Delete(ctx, id)
}

// ListVendors retrieves vendors with search and pagination
func (s *VendorService) ListVendors(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Vendor], error) {
	params.Validate()

	vendors, total, err := s.vendorRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(vendors, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// VendorDashboard is the per-vendor position: totals plus recent
// purchase orders and payments.
type VendorDashboard struct {
	Vendor         *entity.Vendor           `json:"vendor"`
	Totals         *repository.VendorTotals `json:"totals"`
	RecentOrders   []entity.PurchaseOrder   `json:"recent_orders"`
	RecentPayments []entity.Payment         `json:"recent_payments"`
}

// GetVendorDashboard builds the vendor detail dashboard
func (s *VendorService) GetVendorDashboard(ctx context.Context, id uuid.UUID) (*VendorDashboard, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}

	totals, err := s.analyticsRepo.VendorTotals(ctx, id)
	if err != nil {
		return nil, err
	}

	recentOrders, err := s.poRepo.ListByVendor(ctx, id, 10)
	if err != nil {
		return nil, err
	}

	payments, _, err := s.paymentRepo.List(ctx, &repository.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		VendorID:   &id,
	})
	if err != nil {
		return nil, err
	}

	return &VendorDashboard{
		Vendor:         vendor,
		Totals:         totals,
		RecentOrders:   recentOrders,
		RecentPayments: payments,
	}, nil
}
