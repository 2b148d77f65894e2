package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/internal/presentation/http/dto/response"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// StockHandler handles stock overview and ledger HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// Overview handles the stock overview: ingredient levels plus totals
func (h *StockHandler) Overview(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.IngredientFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:   c.Query("search"),
		LowStock: c.Query("low_stock") == "true",
	}

	overview, err := h.stockService.GetStock(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock overview retrieved successfully", overview)
}

// Movements handles listing the ledger for one ingredient
func (h *StockHandler) Movements(c *gin.Context) {
	ingredientID, err := uuid.Parse(c.Param("ingredientId"))
	if err != nil {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.stockService.GetMovements(c.Request.Context(), ingredientID, &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock movements retrieved successfully", result)
}

// Adjust handles a manual ledger posting
func (h *StockHandler) Adjust(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
		Type         string          `json:"type" binding:"required"`
		Quantity     decimal.Decimal `json:"quantity" binding:"required"`
		UnitCost     decimal.Decimal `json:"unit_cost"`
		Notes        string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	movement, err := h.stockService.AdjustStock(c.Request.Context(), &service.AdjustStockInput{
		IngredientID: req.IngredientID,
		Type:         enum.MovementType(req.Type),
		Quantity:     req.Quantity,
		UnitCost:     req.UnitCost,
		Notes:        req.Notes,
		CreatedBy:    *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock adjustment posted successfully", movement)
}
