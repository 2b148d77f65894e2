package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/presentation/http/dto/response"
	"github.com/mesahq/mesa-api/pkg/pagination"
)

// VendorHandler handles vendor HTTP requests
type VendorHandler struct {
	vendorService *service.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// Create handles creating a vendor
func (h *VendorHandler) Create(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required"`
		ContactPerson string `json:"contact_person"`
		Phone         string `json:"phone"`
		Email         string `json:"email"`
		Address       string `json:"address"`
		GSTNumber     string `json:"gst_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), &service.CreateVendorInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		GSTNumber:     req.GSTNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Vendor created successfully", vendor)
}

// Get handles retrieving a vendor
func (h *VendorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vendor ID")
		return
	}

	vendor, err := h.vendorService.GetVendor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vendor retrieved successfully", vendor)
}

// Update handles updating a vendor
func (h *VendorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vendor ID")
		return
	}

	var req struct {
		Name          *string `json:"name"`
		ContactPerson *string `json:"contact_person"`
		Phone         *string `json:"phone"`
		Email         *string `json:"email"`
		Address       *string `json:"address"`
		GSTNumber     *string `json:"gst_number"`
		IsActive      *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), id, &service.UpdateVendorInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		GSTNumber:     req.GSTNumber,
		IsActive:      req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vendor updated successfully", vendor)
}

// Delete handles deleting a vendor
func (h *VendorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vendor ID")
		return
	}

	if err := h.vendorService.DeleteVendor(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vendor deleted successfully", nil)
}

// List handles listing vendors
func (h *VendorHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.vendorService.ListVendors(c.Request.Context(), &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Vendors retrieved successfully", result)
}

// Dashboard handles the per-vendor dashboard
func (h *VendorHandler) Dashboard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vendor ID")
		return
	}

	dashboard, err := h.vendorService.GetVendorDashboard(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vendor dashboard retrieved successfully", dashboard)
}
