package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/presentation/http/dto/response"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// GRNHandler handles goods-received-note HTTP requests
type GRNHandler struct {
	grnService *service.GRNService
}

// NewGRNHandler creates a new GRN handler
func NewGRNHandler(grnService *service.GRNService) *GRNHandler {
	return &GRNHandler{grnService: grnService}
}

// Create handles recording a goods receipt against a purchase order
func (h *GRNHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		PurchaseOrderID uuid.UUID  `json:"purchase_order_id" binding:"required"`
		ReceivedDate    *time.Time `json:"received_date"`
		Notes           string     `json:"notes"`
		Items           []struct {
			POItemID         uuid.UUID       `json:"po_item_id" binding:"required"`
			QuantityReceived decimal.Decimal `json:"quantity_received"`
			UnitPriceActual  decimal.Decimal `json:"unit_price_actual" binding:"required"`
		} `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receivedDate := time.Now()
	if req.ReceivedDate != nil {
		receivedDate = *req.ReceivedDate
	}

	items := make([]service.GRNItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.GRNItemInput{
			POItemID:         item.POItemID,
			QuantityReceived: item.QuantityReceived,
			UnitPriceActual:  item.UnitPriceActual,
		}
	}

	result, err := h.grnService.CreateGRN(c.Request.Context(), &service.CreateGRNInput{
		PurchaseOrderID: req.PurchaseOrderID,
		ReceivedBy:      *userID,
		ReceivedDate:    receivedDate,
		Notes:           req.Notes,
		Items:           items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Goods receipt recorded successfully", result)
}

// Get handles retrieving a GRN with its lines
func (h *GRNHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid GRN ID")
		return
	}

	grn, err := h.grnService.GetGRN(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "GRN retrieved successfully", grn)
}

// List handles listing GRNs
func (h *GRNHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.grnService.ListGRNs(c.Request.Context(), &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "GRNs retrieved successfully", result)
}

// ListByPO handles listing every GRN recorded against one purchase order
func (h *GRNHandler) ListByPO(c *gin.Context) {
	poID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	grns, err := h.grnService.ListGRNsByPO(c.Request.Context(), poID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "GRNs retrieved successfully", grns)
}
