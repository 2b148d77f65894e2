package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	service        *SaleService
	saleRepo       *fakeSaleRepo
	saleItemRepo   *fakeSaleItemRepo
	recipeRepo     *fakeRecipeRepo
	ingredientRepo *fakeIngredientRepo
	stockRepo      *fakeStockRepo

	recipe     *entity.Recipe
	ingredient *entity.Ingredient
	userID     uuid.UUID
}

// newSaleFixture sets up a recipe selling at 95 that consumes 0.2 kg of
// an ingredient priced at 40, so cost per portion is 8.
func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	ctx := context.Background()

	f := &saleFixture{
		saleRepo:       newFakeSaleRepo(),
		saleItemRepo:   &fakeSaleItemRepo{},
		recipeRepo:     newFakeRecipeRepo(),
		ingredientRepo: newFakeIngredientRepo(),
		stockRepo:      &fakeStockRepo{},
		userID:         uuid.New(),
	}
	f.service = NewSaleService(
		f.saleRepo, f.saleItemRepo, f.recipeRepo,
		f.ingredientRepo, f.stockRepo,
		NewDocNumberService(newFakeSequenceRepo()),
		&fakeTransactor{},
	)

	f.ingredient = &entity.Ingredient{
		ID:           uuid.New(),
		Name:         "Flour",
		Unit:         "kg",
		CurrentStock: decimal.NewFromInt(10),
		LastPrice:    decimal.NewFromInt(40),
	}
	require.NoError(t, f.ingredientRepo.Create(ctx, f.ingredient))

	f.recipe = &entity.Recipe{
		ID:           uuid.New(),
		Name:         "Flatbread",
		Category:     "bakery",
		SellingPrice: decimal.NewFromInt(95),
		Ingredients: []entity.RecipeIngredient{{
			IngredientID: f.ingredient.ID,
			Quantity:     decimal.NewFromFloat(0.2),
			Ingredient:   *f.ingredient,
		}},
	}
	require.NoError(t, f.recipeRepo.Create(ctx, f.recipe))

	return f
}

func TestCreateSalePostsConsumption(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()

	sale, err := f.service.CreateSale(ctx, &CreateSaleInput{
		RecordedBy: f.userID,
		Items: []SaleItemInput{{
			RecipeID: f.recipe.ID,
			Quantity: 5,
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "475", sale.TotalRevenue.String())
	assert.Equal(t, "40", sale.TotalCost.String())
	assert.Equal(t, "435", sale.TotalProfit.String())

	require.Len(t, f.saleItemRepo.items, 1)
	line := f.saleItemRepo.items[0]
	assert.Equal(t, "95", line.UnitPrice.String())
	assert.Equal(t, "40", line.Cost.String())

	// 5 portions x 0.2 kg leaves 9 of the 10 in stock
	ing, err := f.ingredientRepo.GetByID(ctx, f.ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "9", ing.CurrentStock.String())

	require.Len(t, f.stockRepo.movements, 1)
	m := f.stockRepo.movements[0]
	assert.Equal(t, enum.MovementTypeOut, m.Type)
	assert.Equal(t, "-1", m.Quantity.String())
	assert.Equal(t, "9", m.BalanceAfter.String())
	assert.Equal(t, "sale", m.ReferenceType)
}

func TestCreateSaleAggregatesIngredientAcrossLines(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()

	// Two lines of the same recipe consume the shared ingredient once
	_, err := f.service.CreateSale(ctx, &CreateSaleInput{
		RecordedBy: f.userID,
		Items: []SaleItemInput{
			{RecipeID: f.recipe.ID, Quantity: 2},
			{RecipeID: f.recipe.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, f.stockRepo.movements, 1)
	assert.Equal(t, "-1", f.stockRepo.movements[0].Quantity.String())
}

func TestCreateSaleOverridesUnitPrice(t *testing.T) {
	f := newSaleFixture(t)

	discounted := decimal.NewFromInt(80)
	sale, err := f.service.CreateSale(context.Background(), &CreateSaleInput{
		RecordedBy: f.userID,
		Items: []SaleItemInput{{
			RecipeID:  f.recipe.ID,
			Quantity:  1,
			UnitPrice: &discounted,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "80", sale.TotalRevenue.String())
}

func TestCreateSaleAllowsNegativeStock(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()

	// Sales are recorded after the fact; stock can go negative and is
	// corrected later through a manual adjustment.
	_, err := f.service.CreateSale(ctx, &CreateSaleInput{
		RecordedBy: f.userID,
		Items: []SaleItemInput{{
			RecipeID: f.recipe.ID,
			Quantity: 100,
		}},
	})
	require.NoError(t, err)

	ing, err := f.ingredientRepo.GetByID(ctx, f.ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "-10", ing.CurrentStock.String())
}

func TestCreateSaleRejectsUnknownRecipe(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.service.CreateSale(context.Background(), &CreateSaleInput{
		RecordedBy: f.userID,
		Items: []SaleItemInput{{
			RecipeID: uuid.New(),
			Quantity: 1,
		}},
	})
	require.Error(t, err)
	assert.Empty(t, f.stockRepo.movements)
}
