package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/internal/presentation/http/dto/response"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// IntendHandler handles intend (requisition) HTTP requests
type IntendHandler struct {
	intendService *service.IntendService
}

// NewIntendHandler creates a new intend handler
func NewIntendHandler(intendService *service.IntendService) *IntendHandler {
	return &IntendHandler{intendService: intendService}
}

type intendItemRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
}

// Create handles creating an intend
func (h *IntendHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		VendorID *uuid.UUID          `json:"vendor_id"`
		Notes    string              `json:"notes"`
		Draft    bool                `json:"draft"`
		Items    []intendItemRequest `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.IntendItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.IntendItemInput{
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
		}
	}

	intend, err := h.intendService.CreateIntend(c.Request.Context(), &service.CreateIntendInput{
		RequestedBy: *userID,
		VendorID:    req.VendorID,
		Notes:       req.Notes,
		Draft:       req.Draft,
		Items:       items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Intend created successfully", intend)
}

// Get handles retrieving an intend
func (h *IntendHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid intend ID")
		return
	}

	intend, err := h.intendService.GetIntend(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Intend retrieved successfully", intend)
}

// Update handles updating an intend
func (h *IntendHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid intend ID")
		return
	}

	var req struct {
		VendorID *uuid.UUID          `json:"vendor_id"`
		Notes    *string             `json:"notes"`
		Items    []intendItemRequest `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateIntendInput{
		VendorID: req.VendorID,
		Notes:    req.Notes,
	}
	if req.Items != nil {
		input.Items = make([]service.IntendItemInput, len(req.Items))
		for i, item := range req.Items {
			input.Items[i] = service.IntendItemInput{
				IngredientID: item.IngredientID,
				Quantity:     item.Quantity,
			}
		}
	}

	intend, err := h.intendService.UpdateIntend(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Intend updated successfully", intend)
}

// Submit handles submitting an intend for approval
func (h *IntendHandler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid intend ID")
		return
	}

	intend, err := h.intendService.SubmitIntend(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Intend submitted successfully", intend)
}

// Approve handles approving a submitted intend
func (h *IntendHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid intend ID")
		return
	}

	intend, err := h.intendService.ApproveIntend(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Intend approved successfully", intend)
}

// Delete handles deleting an intend
func (h *IntendHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid intend ID")
		return
	}

	if err := h.intendService.DeleteIntend(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Intend deleted successfully", nil)
}

// List handles listing intends
func (h *IntendHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.IntendFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.IntendStatus(statusStr)
		if status.IsValid() {
			params.Status = &status
		}
	}
	if vendorIDStr := c.Query("vendor_id"); vendorIDStr != "" {
		if vendorID, err := uuid.Parse(vendorIDStr); err == nil {
			params.VendorID = &vendorID
		}
	}
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.intendService.ListIntends(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Intends retrieved successfully", result)
}

// ConvertToPO handles converting an approved intend to a purchase order
func (h *IntendHandler) ConvertToPO(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid intend ID")
		return
	}

	var req struct {
		VendorID     *uuid.UUID `json:"vendor_id"`
		ExpectedDate *time.Time `json:"expected_date"`
		Notes        string     `json:"notes"`
		ItemPrices   []struct {
			IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
			UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
		} `json:"item_prices"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	itemPrices := make([]service.ConvertItemInput, len(req.ItemPrices))
	for i, p := range req.ItemPrices {
		itemPrices[i] = service.ConvertItemInput{
			IngredientID: p.IngredientID,
			UnitPrice:    p.UnitPrice,
		}
	}

	po, err := h.intendService.ConvertToPO(c.Request.Context(), id, &service.ConvertToPOInput{
		CreatedBy:    *userID,
		VendorID:     req.VendorID,
		ExpectedDate: req.ExpectedDate,
		Notes:        req.Notes,
		ItemPrices:   itemPrices,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created from intend", po)
}
