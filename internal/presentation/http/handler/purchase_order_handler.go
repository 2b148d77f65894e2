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

// PurchaseOrderHandler handles purchase order HTTP requests
type PurchaseOrderHandler struct {
	poService *service.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(poService *service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{poService: poService}
}

// Create handles creating a purchase order directly
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		VendorID     uuid.UUID  `json:"vendor_id" binding:"required"`
		OrderDate    *time.Time `json:"order_date"`
		ExpectedDate *time.Time `json:"expected_date"`
		Notes        string     `json:"notes"`
		Items        []struct {
			IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
			Quantity     decimal.Decimal `json:"quantity" binding:"required"`
			UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
		} `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	items := make([]service.POItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.POItemInput{
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
		}
	}

	po, err := h.poService.CreatePO(c.Request.Context(), &service.CreatePOInput{
		CreatedBy:    *userID,
		VendorID:     req.VendorID,
		OrderDate:    orderDate,
		ExpectedDate: req.ExpectedDate,
		Notes:        req.Notes,
		Items:        items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created successfully", po)
}

// Get handles retrieving a purchase order with its GRNs and payments
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	detail, err := h.poService.GetPO(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order retrieved successfully", detail)
}

// Confirm handles confirming a pending purchase order
func (h *PurchaseOrderHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	po, err := h.poService.ConfirmPO(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order confirmed successfully", po)
}

// Delete handles deleting a purchase order
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	if err := h.poService.DeletePO(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order deleted successfully", nil)
}

// List handles listing purchase orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.POFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.POStatus(statusStr)
		if status.IsValid() {
			params.Status = &status
		}
	}
	if psStr := c.Query("payment_status"); psStr != "" {
		ps := enum.PaymentStatus(psStr)
		if ps.IsValid() {
			params.PaymentStatus = &ps
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

	result, err := h.poService.ListPOs(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchase orders retrieved successfully", result)
}
