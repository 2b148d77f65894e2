package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type grnFixture struct {
	service        *GRNService
	poRepo         *fakePORepo
	poItemRepo     *fakePOItemRepo
	grnRepo        *fakeGRNRepo
	grnItemRepo    *fakeGRNItemRepo
	ingredientRepo *fakeIngredientRepo
	stockRepo      *fakeStockRepo

	po         *entity.PurchaseOrder
	poItem     *entity.POItem
	ingredient *entity.Ingredient
	userID     uuid.UUID
}

// newGRNFixture sets up a confirmed PO ordering 100 units at 10.00
func newGRNFixture(t *testing.T) *grnFixture {
	t.Helper()
	ctx := context.Background()

	f := &grnFixture{
		poRepo:         newFakePORepo(),
		poItemRepo:     newFakePOItemRepo(),
		grnRepo:        newFakeGRNRepo(),
		grnItemRepo:    &fakeGRNItemRepo{},
		ingredientRepo: newFakeIngredientRepo(),
		stockRepo:      &fakeStockRepo{},
		userID:         uuid.New(),
	}
	f.service = NewGRNService(
		f.grnRepo, f.grnItemRepo, f.poRepo, f.poItemRepo,
		f.ingredientRepo, f.stockRepo,
		NewDocNumberService(newFakeSequenceRepo()),
		&fakeTransactor{},
	)

	f.ingredient = &entity.Ingredient{
		ID:   uuid.New(),
		Name: "Tomatoes",
		Unit: "kg",
	}
	require.NoError(t, f.ingredientRepo.Create(ctx, f.ingredient))

	f.po = &entity.PurchaseOrder{
		ID:              uuid.New(),
		PONo:            "PO-20260815-0001",
		VendorID:        uuid.New(),
		CreatedByID:     f.userID,
		OrderDate:       time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Status:          enum.POStatusConfirmed,
		TotalAmount:     decimal.NewFromInt(1000),
		TotalItemsCount: 1,
	}
	require.NoError(t, f.poRepo.Create(ctx, f.po))

	items := []entity.POItem{{
		PurchaseOrderID: f.po.ID,
		IngredientID:    f.ingredient.ID,
		QuantityOrdered: decimal.NewFromInt(100),
		UnitPrice:       decimal.NewFromInt(10),
		LineTotal:       decimal.NewFromInt(1000),
	}}
	require.NoError(t, f.poItemRepo.CreateBatch(ctx, items))
	f.poItem = &items[0]

	return f
}

func TestCreateGRNPartialReceiptWithPriceVariance(t *testing.T) {
	f := newGRNFixture(t)
	ctx := context.Background()

	result, err := f.service.CreateGRN(ctx, &CreateGRNInput{
		PurchaseOrderID: f.po.ID,
		ReceivedBy:      f.userID,
		ReceivedDate:    time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Items: []GRNItemInput{{
			POItemID:         f.poItem.ID,
			QuantityReceived: decimal.NewFromInt(80),
			UnitPriceActual:  decimal.NewFromInt(12),
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "960", result.GRN.TotalValue.String())
	assert.Equal(t, "GRN-20260820-0001", result.GRN.GRNNo)

	require.Len(t, result.Variances, 1)
	v := result.Variances[0]
	assert.Equal(t, "-20", v.QtyVariance.String())
	assert.Equal(t, "2", v.PriceVariance.String())
	assert.Equal(t, "20", v.VariancePercent.String())
	assert.Equal(t, "960", v.LineTotal.String())

	po := result.PurchaseOrder
	assert.Equal(t, enum.POStatusPartiallyReceived, po.Status)
	assert.Equal(t, "960", po.ActualReceivableAmount.String())
	assert.Equal(t, 0, po.ReceivedItemsCount)
	assert.True(t, po.ReceivedPercentage.IsZero())

	ing, err := f.ingredientRepo.GetByID(ctx, f.ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "80", ing.CurrentStock.String())
	assert.Equal(t, "12", ing.LastPrice.String())

	require.Len(t, f.stockRepo.movements, 1)
	m := f.stockRepo.movements[0]
	assert.Equal(t, enum.MovementTypeIn, m.Type)
	assert.Equal(t, "80", m.Quantity.String())
	assert.Equal(t, "80", m.BalanceAfter.String())
	assert.Equal(t, "12", m.UnitCost.String())
	assert.Equal(t, "grn", m.ReferenceType)
}

func TestCreateGRNSecondReceiptCompletesOrder(t *testing.T) {
	f := newGRNFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateGRN(ctx, &CreateGRNInput{
		PurchaseOrderID: f.po.ID,
		ReceivedBy:      f.userID,
		Items: []GRNItemInput{{
			POItemID:         f.poItem.ID,
			QuantityReceived: decimal.NewFromInt(80),
			UnitPriceActual:  decimal.NewFromInt(12),
		}},
	})
	require.NoError(t, err)

	result, err := f.service.CreateGRN(ctx, &CreateGRNInput{
		PurchaseOrderID: f.po.ID,
		ReceivedBy:      f.userID,
		Items: []GRNItemInput{{
			POItemID:         f.poItem.ID,
			QuantityReceived: decimal.NewFromInt(20),
			UnitPriceActual:  decimal.NewFromInt(12),
		}},
	})
	require.NoError(t, err)

	po := result.PurchaseOrder
	assert.Equal(t, enum.POStatusReceived, po.Status)
	assert.Equal(t, 1, po.ReceivedItemsCount)
	assert.Equal(t, "100", po.ReceivedPercentage.String())
	// 960 from the first receipt plus 240 from the second
	assert.Equal(t, "1200", po.ActualReceivableAmount.String())

	ing, err := f.ingredientRepo.GetByID(ctx, f.ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", ing.CurrentStock.String())
}

func TestCreateGRNRejectsPendingPO(t *testing.T) {
	f := newGRNFixture(t)
	ctx := context.Background()

	f.po.Status = enum.POStatusPending
	require.NoError(t, f.poRepo.Update(ctx, f.po))

	_, err := f.service.CreateGRN(ctx, &CreateGRNInput{
		PurchaseOrderID: f.po.ID,
		ReceivedBy:      f.userID,
		Items: []GRNItemInput{{
			POItemID:         f.poItem.ID,
			QuantityReceived: decimal.NewFromInt(10),
			UnitPriceActual:  decimal.NewFromInt(10),
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirmed before receiving")
}

func TestCreateGRNRejectsNegativeQuantity(t *testing.T) {
	f := newGRNFixture(t)

	_, err := f.service.CreateGRN(context.Background(), &CreateGRNInput{
		PurchaseOrderID: f.po.ID,
		ReceivedBy:      f.userID,
		Items: []GRNItemInput{{
			POItemID:         f.poItem.ID,
			QuantityReceived: decimal.NewFromInt(-5),
			UnitPriceActual:  decimal.NewFromInt(10),
		}},
	})
	require.Error(t, err)
}

func TestCreateGRNRejectsUnknownPOItem(t *testing.T) {
	f := newGRNFixture(t)

	_, err := f.service.CreateGRN(context.Background(), &CreateGRNInput{
		PurchaseOrderID: f.po.ID,
		ReceivedBy:      f.userID,
		Items: []GRNItemInput{{
			POItemID:         uuid.New(),
			QuantityReceived: decimal.NewFromInt(5),
			UnitPriceActual:  decimal.NewFromInt(10),
		}},
	})
	require.Error(t, err)

	// Nothing should have been posted
	assert.Empty(t, f.stockRepo.movements)
}

func TestCreateGRNZeroQuantityLinePostsNoStock(t *testing.T) {
	f := newGRNFixture(t)

	result, err := f.service.CreateGRN(context.Background(), &CreateGRNInput{
		PurchaseOrderID: f.po.ID,
		ReceivedBy:      f.userID,
		Items: []GRNItemInput{{
			POItemID:         f.poItem.ID,
			QuantityReceived: decimal.Zero,
			UnitPriceActual:  decimal.NewFromInt(12),
		}},
	})
	require.NoError(t, err)

	// The variance is still reported but no ledger entry exists
	require.Len(t, result.Variances, 1)
	assert.Equal(t, "-100", result.Variances[0].QtyVariance.String())
	assert.Empty(t, f.stockRepo.movements)
	assert.Empty(t, f.grnItemRepo.items)
	assert.True(t, result.GRN.TotalValue.IsZero())
}
