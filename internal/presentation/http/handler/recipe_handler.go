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

// RecipeHandler handles recipe HTTP requests
type RecipeHandler struct {
	recipeService *service.RecipeService
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

type recipeIngredientRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
}

// Create handles creating a recipe
func (h *RecipeHandler) Create(c *gin.Context) {
	var req struct {
		Name         string                    `json:"name" binding:"required"`
		Category     string                    `json:"category"`
		SellingPrice decimal.Decimal           `json:"selling_price"`
		Ingredients  []recipeIngredientRequest `json:"ingredients" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ingredients := make([]service.RecipeIngredientInput, len(req.Ingredients))
	for i, item := range req.Ingredients {
		ingredients[i] = service.RecipeIngredientInput{
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
		}
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), &service.CreateRecipeInput{
		Name:         req.Name,
		Category:     req.Category,
		SellingPrice: req.SellingPrice,
		Ingredients:  ingredients,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Recipe created successfully", recipe)
}

// Get handles retrieving a recipe with its costing
func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recipe retrieved successfully", recipe)
}

// Update handles updating a recipe
func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req struct {
		Name         *string                   `json:"name"`
		Category     *string                   `json:"category"`
		SellingPrice *decimal.Decimal          `json:"selling_price"`
		IsActive     *bool                     `json:"is_active"`
		Ingredients  []recipeIngredientRequest `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateRecipeInput{
		Name:         req.Name,
		Category:     req.Category,
		SellingPrice: req.SellingPrice,
		IsActive:     req.IsActive,
	}
	if req.Ingredients != nil {
		input.Ingredients = make([]service.RecipeIngredientInput, len(req.Ingredients))
		for i, item := range req.Ingredients {
			input.Ingredients[i] = service.RecipeIngredientInput{
				IngredientID: item.IngredientID,
				Quantity:     item.Quantity,
			}
		}
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recipe updated successfully", recipe)
}

// Delete handles deleting a recipe
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recipe deleted successfully", nil)
}

// List handles listing recipes with costing
func (h *RecipeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.RecipeFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}

	result, err := h.recipeService.ListRecipes(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Recipes retrieved successfully", result)
}
