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

func newStockFixture(t *testing.T) (*StockService, *fakeIngredientRepo, *fakeStockRepo, *entity.Ingredient) {
	t.Helper()

	ingredientRepo := newFakeIngredientRepo()
	stockRepo := &fakeStockRepo{}
	svc := NewStockService(ingredientRepo, stockRepo, nil, &fakeTransactor{})

	ingredient := &entity.Ingredient{
		ID:           uuid.New(),
		Name:         "Flour",
		Unit:         "kg",
		CurrentStock: decimal.NewFromInt(50),
		LastPrice:    decimal.NewFromInt(4),
	}
	require.NoError(t, ingredientRepo.Create(context.Background(), ingredient))

	return svc, ingredientRepo, stockRepo, ingredient
}

func TestAdjustStockWastagePostsNegative(t *testing.T) {
	svc, ingredientRepo, _, ingredient := newStockFixture(t)
	ctx := context.Background()

	movement, err := svc.AdjustStock(ctx, &AdjustStockInput{
		IngredientID: ingredient.ID,
		Type:         enum.MovementTypeWastage,
		Quantity:     decimal.NewFromInt(10),
		CreatedBy:    uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, "-10", movement.Quantity.String())
	assert.Equal(t, "40", movement.BalanceAfter.String())
	// Unit cost defaults to the ingredient's last price
	assert.Equal(t, "4", movement.UnitCost.String())

	ing, err := ingredientRepo.GetByID(ctx, ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "40", ing.CurrentStock.String())
}

func TestAdjustStockRejectsNegativeBalance(t *testing.T) {
	svc, ingredientRepo, stockRepo, ingredient := newStockFixture(t)
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, &AdjustStockInput{
		IngredientID: ingredient.ID,
		Type:         enum.MovementTypeWastage,
		Quantity:     decimal.NewFromInt(60),
		CreatedBy:    uuid.New(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")

	assert.Empty(t, stockRepo.movements)
	ing, err := ingredientRepo.GetByID(ctx, ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "50", ing.CurrentStock.String())
}

func TestAdjustStockOpeningSetsLastPrice(t *testing.T) {
	svc, ingredientRepo, _, ingredient := newStockFixture(t)
	ctx := context.Background()

	movement, err := svc.AdjustStock(ctx, &AdjustStockInput{
		IngredientID: ingredient.ID,
		Type:         enum.MovementTypeOpening,
		Quantity:     decimal.NewFromInt(25),
		UnitCost:     decimal.NewFromInt(5),
		CreatedBy:    uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, "25", movement.Quantity.String())
	assert.Equal(t, "75", movement.BalanceAfter.String())

	ing, err := ingredientRepo.GetByID(ctx, ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "5", ing.LastPrice.String())
}

func TestAdjustStockRejectsNegativeOpening(t *testing.T) {
	svc, ingredientRepo, _, ingredient := newStockFixture(t)
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, &AdjustStockInput{
		IngredientID: ingredient.ID,
		Type:         enum.MovementTypeOpening,
		Quantity:     decimal.NewFromInt(-5),
		CreatedBy:    uuid.New(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Opening balance must be positive")

	ing, err := ingredientRepo.GetByID(ctx, ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "50", ing.CurrentStock.String())
}

func TestAdjustStockRejectsLedgerOnlyTypes(t *testing.T) {
	svc, _, _, ingredient := newStockFixture(t)

	for _, mt := range []enum.MovementType{enum.MovementTypeIn, enum.MovementTypeOut} {
		_, err := svc.AdjustStock(context.Background(), &AdjustStockInput{
			IngredientID: ingredient.ID,
			Type:         mt,
			Quantity:     decimal.NewFromInt(5),
			CreatedBy:    uuid.New(),
		})
		require.Error(t, err, "movement type %s must not be postable manually", mt)
	}
}

func TestAdjustStockSignedAdjustment(t *testing.T) {
	svc, ingredientRepo, _, ingredient := newStockFixture(t)
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, &AdjustStockInput{
		IngredientID: ingredient.ID,
		Type:         enum.MovementTypeAdjustment,
		Quantity:     decimal.NewFromInt(-8),
		CreatedBy:    uuid.New(),
	})
	require.NoError(t, err)

	ing, err := ingredientRepo.GetByID(ctx, ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "42", ing.CurrentStock.String())
}
