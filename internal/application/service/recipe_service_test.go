package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeWithLines(sellingPrice decimal.Decimal, lines ...entity.RecipeIngredient) *entity.Recipe {
	return &entity.Recipe{
		ID:           uuid.New(),
		Name:         "Margherita",
		Category:     "pizza",
		SellingPrice: sellingPrice,
		Ingredients:  lines,
	}
}

func TestRecipeCosting(t *testing.T) {
	// 0.2 kg flour at 40 plus 0.1 kg cheese at 300: cost 38 per portion
	recipe := recipeWithLines(decimal.NewFromInt(95),
		entity.RecipeIngredient{
			Quantity:   decimal.NewFromFloat(0.2),
			Ingredient: entity.Ingredient{LastPrice: decimal.NewFromInt(40)},
		},
		entity.RecipeIngredient{
			Quantity:   decimal.NewFromFloat(0.1),
			Ingredient: entity.Ingredient{LastPrice: decimal.NewFromInt(300)},
		},
	)

	costing := buildCosting(recipe)
	assert.Equal(t, "38", costing.CostPerPortion.String())
	assert.Equal(t, "57", costing.Margin.String())
	assert.Equal(t, "60", costing.MarginPercent.String())
}

func TestRecipeCostingZeroSellingPrice(t *testing.T) {
	recipe := recipeWithLines(decimal.Zero,
		entity.RecipeIngredient{
			Quantity:   decimal.NewFromInt(1),
			Ingredient: entity.Ingredient{LastPrice: decimal.NewFromInt(10)},
		},
	)

	costing := buildCosting(recipe)
	assert.Equal(t, "10", costing.CostPerPortion.String())
	assert.Equal(t, "-10", costing.Margin.String())
	assert.True(t, costing.MarginPercent.IsZero())
}

func TestRecipeCostingNoLines(t *testing.T) {
	costing := buildCosting(recipeWithLines(decimal.NewFromInt(50)))
	assert.True(t, costing.CostPerPortion.IsZero())
	assert.Equal(t, "50", costing.Margin.String())
	assert.Equal(t, "100", costing.MarginPercent.String())
}

func TestUpdateRecipeRejectsUnknownIngredient(t *testing.T) {
	ctx := context.Background()
	recipeRepo := newFakeRecipeRepo()
	lineRepo := &fakeRecipeIngredientRepo{}
	ingredientRepo := newFakeIngredientRepo()
	svc := NewRecipeService(recipeRepo, lineRepo, ingredientRepo, &fakeTransactor{})

	flour := &entity.Ingredient{ID: uuid.New(), Name: "Flour", Unit: "kg", LastPrice: decimal.NewFromInt(4)}
	require.NoError(t, ingredientRepo.Create(ctx, flour))

	recipe := &entity.Recipe{ID: uuid.New(), Name: "Flatbread", SellingPrice: decimal.NewFromInt(95), IsActive: true}
	require.NoError(t, recipeRepo.Create(ctx, recipe))
	require.NoError(t, lineRepo.CreateBatch(ctx, []entity.RecipeIngredient{
		{RecipeID: recipe.ID, IngredientID: flour.ID, Quantity: decimal.NewFromFloat(0.2)},
	}))

	_, err := svc.UpdateRecipe(ctx, recipe.ID, &UpdateRecipeInput{
		Ingredients: []RecipeIngredientInput{
			{IngredientID: uuid.New(), Quantity: decimal.NewFromFloat(0.3)},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	// Existing lines are untouched when the replacement is rejected
	require.Len(t, lineRepo.lines, 1)
	assert.Equal(t, flour.ID, lineRepo.lines[0].IngredientID)
}

func TestUpdateRecipeReplacesLines(t *testing.T) {
	ctx := context.Background()
	recipeRepo := newFakeRecipeRepo()
	lineRepo := &fakeRecipeIngredientRepo{}
	ingredientRepo := newFakeIngredientRepo()
	svc := NewRecipeService(recipeRepo, lineRepo, ingredientRepo, &fakeTransactor{})

	flour := &entity.Ingredient{ID: uuid.New(), Name: "Flour", Unit: "kg", LastPrice: decimal.NewFromInt(4)}
	cheese := &entity.Ingredient{ID: uuid.New(), Name: "Cheese", Unit: "kg", LastPrice: decimal.NewFromInt(300)}
	require.NoError(t, ingredientRepo.Create(ctx, flour))
	require.NoError(t, ingredientRepo.Create(ctx, cheese))

	recipe := &entity.Recipe{ID: uuid.New(), Name: "Flatbread", SellingPrice: decimal.NewFromInt(95), IsActive: true}
	require.NoError(t, recipeRepo.Create(ctx, recipe))
	require.NoError(t, lineRepo.CreateBatch(ctx, []entity.RecipeIngredient{
		{RecipeID: recipe.ID, IngredientID: flour.ID, Quantity: decimal.NewFromFloat(0.2)},
	}))

	_, err := svc.UpdateRecipe(ctx, recipe.ID, &UpdateRecipeInput{
		Ingredients: []RecipeIngredientInput{
			{IngredientID: cheese.ID, Quantity: decimal.NewFromFloat(0.1)},
		},
	})
	require.NoError(t, err)

	require.Len(t, lineRepo.lines, 1)
	assert.Equal(t, cheese.ID, lineRepo.lines[0].IngredientID)
	assert.Equal(t, "0.1", lineRepo.lines[0].Quantity.String())
}
