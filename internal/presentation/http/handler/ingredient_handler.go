package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/internal/presentation/http/dto/response"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// IngredientHandler handles ingredient HTTP requests
type IngredientHandler struct {
	ingredientService *service.IngredientService
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// Create handles creating an ingredient
func (h *IngredientHandler) Create(c *gin.Context) {
	var req struct {
		Name      string          `json:"name" binding:"required"`
		Unit      string          `json:"unit" binding:"required"`
		MinStock  decimal.Decimal `json:"min_stock"`
		LastPrice decimal.Decimal `json:"last_price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ingredient, err := h.ingredientService.CreateIngredient(c.Request.Context(), &service.CreateIngredientInput{
		Name:      req.Name,
		Unit:      req.Unit,
		MinStock:  req.MinStock,
		LastPrice: req.LastPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ingredient created successfully", ingredient)
}

// Get handles retrieving an ingredient
func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	ingredient, err := h.ingredientService.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ingredient retrieved successfully", ingredient)
}

// Update handles updating an ingredient
func (h *IngredientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	var req struct {
		Name     *string          `json:"name"`
		Unit     *string          `json:"unit"`
		MinStock *decimal.Decimal `json:"min_stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ingredient, err := h.ingredientService.UpdateIngredient(c.Request.Context(), id, &service.UpdateIngredientInput{
		Name:     req.Name,
		Unit:     req.Unit,
		MinStock: req.MinStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ingredient updated successfully", ingredient)
}

// Delete handles deleting an ingredient
func (h *IngredientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	if err := h.ingredientService.DeleteIngredient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ingredient deleted successfully", nil)
}

// List handles listing ingredients
func (h *IngredientHandler) List(c *gin.Context) {
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

	result, err := h.ingredientService.ListIngredients(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Ingredients retrieved successfully", result)
}
